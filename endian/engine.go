// Package endian provides the byte-order engines and the bounds-checked reader
// used by the binary track codecs.
//
// Track chunks are always little-endian. Bundles record their byte order in a
// header flag so a producer on a big-endian host may write natively:
//
//	engine := endian.GetLittleEndianEngine()
//	buf = engine.AppendUint32(buf, count)
//
//	r := endian.NewReader(engine, buf)
//	count, err := r.Uint32()
//
// All functions are safe for concurrent use; a Reader is not.
package endian

import (
	"encoding/binary"
	"unsafe"
)

// EndianEngine combines binary.ByteOrder and binary.AppendByteOrder.
// binary.LittleEndian and binary.BigEndian both satisfy it.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// Byte-order flags stored in bundle headers.
const (
	FlagLittleEndian byte = 0x0
	FlagBigEndian    byte = 0x1
)

// CheckEndianness returns the host byte order.
func CheckEndianness() binary.ByteOrder {
	var i uint16 = 0x0100
	b := (*[2]byte)(unsafe.Pointer(&i))
	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// IsNativeLittleEndian reports whether the host is little-endian.
func IsNativeLittleEndian() bool {
	return CheckEndianness() == binary.LittleEndian
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// GetNativeEngine returns the engine matching the host byte order.
func GetNativeEngine() EndianEngine {
	if IsNativeLittleEndian() {
		return binary.LittleEndian
	}

	return binary.BigEndian
}

// Flag returns the header flag for engine.
func Flag(engine EndianEngine) byte {
	if engine == EndianEngine(binary.BigEndian) {
		return FlagBigEndian
	}

	return FlagLittleEndian
}

// FromFlag returns the engine for a header flag. The second result is false for unknown flags.
func FromFlag(flag byte) (EndianEngine, bool) {
	switch flag {
	case FlagLittleEndian:
		return binary.LittleEndian, true
	case FlagBigEndian:
		return binary.BigEndian, true
	default:
		return nil, false
	}
}
