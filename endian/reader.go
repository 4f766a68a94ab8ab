package endian

import (
	"encoding/binary"
	"io"
	"math"
)

// Reader decodes fixed-size values from a byte slice in a given byte order.
// Every method returns io.ErrUnexpectedEOF when fewer bytes remain than requested.
type Reader struct {
	engine EndianEngine
	data   []byte
	off    int
}

// NewReader creates a Reader over data.
func NewReader(engine EndianEngine, data []byte) *Reader {
	return &Reader{engine: engine, data: data}
}

// Offset returns the number of bytes consumed.
func (r *Reader) Offset() int { return r.off }

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int { return len(r.data) - r.off }

// Bytes consumes n bytes and returns them without copying.
func (r *Reader) Bytes(n int) ([]byte, error) {
	if n < 0 || r.Remaining() < n {
		return nil, io.ErrUnexpectedEOF
	}

	b := r.data[r.off : r.off+n]
	r.off += n

	return b, nil
}

// Uint8 consumes one byte.
func (r *Reader) Uint8() (uint8, error) {
	b, err := r.Bytes(1)
	if err != nil {
		return 0, err
	}

	return b[0], nil
}

// Uint16 consumes two bytes.
func (r *Reader) Uint16() (uint16, error) {
	b, err := r.Bytes(2)
	if err != nil {
		return 0, err
	}

	return r.engine.Uint16(b), nil
}

// Uint32 consumes four bytes.
func (r *Reader) Uint32() (uint32, error) {
	b, err := r.Bytes(4)
	if err != nil {
		return 0, err
	}

	return r.engine.Uint32(b), nil
}

// Int32 consumes four bytes as a two's complement integer.
func (r *Reader) Int32() (int32, error) {
	v, err := r.Uint32()
	return int32(v), err
}

// Uint64 consumes eight bytes.
func (r *Reader) Uint64() (uint64, error) {
	b, err := r.Bytes(8)
	if err != nil {
		return 0, err
	}

	return r.engine.Uint64(b), nil
}

// Uvarint consumes an unsigned varint. Varints are byte-order independent.
func (r *Reader) Uvarint() (uint64, error) {
	v, n := binary.Uvarint(r.data[r.off:])
	if n <= 0 {
		return 0, io.ErrUnexpectedEOF
	}
	r.off += n

	return v, nil
}

// Float32 consumes four bytes as an IEEE 754 single.
func (r *Reader) Float32() (float32, error) {
	v, err := r.Uint32()
	return math.Float32frombits(v), err
}

// Float32s fills dst with consecutive singles.
func (r *Reader) Float32s(dst []float32) error {
	for i := range dst {
		f, err := r.Float32()
		if err != nil {
			return err
		}
		dst[i] = f
	}

	return nil
}
