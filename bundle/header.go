package bundle

import (
	"fmt"

	"github.com/arloliu/keyframe/endian"
	"github.com/arloliu/keyframe/errs"
	"github.com/arloliu/keyframe/format"
)

const (
	// HeaderSize is the fixed size of a bundle header.
	HeaderSize = 24
	// Version is the bundle layout version written by Encoder.
	Version uint8 = 1
)

// magic opens every bundle.
var magic = [4]byte{'K', 'F', 'B', 'N'}

// Header describes a bundle payload.
//
// Layout: magic[4], version u8, compression u8, byte-order flag u8, reserved u8,
// count u32, raw payload size u32, xxHash64 of the raw payload u64. Multi-byte
// fields use the byte order named by the flag.
type Header struct {
	Version     uint8
	Compression format.CompressionType
	Engine      endian.EndianEngine
	Count       uint32
	RawSize     uint32
	Checksum    uint64
}

func (h Header) appendTo(dst []byte) []byte {
	dst = append(dst, magic[:]...)
	dst = append(dst, h.Version, uint8(h.Compression), endian.Flag(h.Engine), 0)
	dst = h.Engine.AppendUint32(dst, h.Count)
	dst = h.Engine.AppendUint32(dst, h.RawSize)

	return h.Engine.AppendUint64(dst, h.Checksum)
}

// ParseHeader reads the header at the start of data.
func ParseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, fmt.Errorf("%w: %d bytes", errs.ErrInvalidHeaderSize, len(data))
	}
	if [4]byte(data[:4]) != magic {
		return Header{}, fmt.Errorf("%w: %q", errs.ErrInvalidMagicNumber, data[:4])
	}

	h := Header{
		Version:     data[4],
		Compression: format.CompressionType(data[5]),
	}
	if h.Version != Version {
		return Header{}, fmt.Errorf("unsupported bundle version %d", h.Version)
	}

	engine, ok := endian.FromFlag(data[6])
	if !ok {
		return Header{}, fmt.Errorf("unknown byte-order flag %#x", data[6])
	}
	h.Engine = engine

	r := endian.NewReader(engine, data[8:HeaderSize])
	h.Count, _ = r.Uint32()
	h.RawSize, _ = r.Uint32()
	h.Checksum, _ = r.Uint64()

	return h, nil
}
