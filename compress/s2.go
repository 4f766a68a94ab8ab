package compress

import (
	"github.com/klauspost/compress/s2"

	"github.com/arloliu/keyframe/format"
)

// S2Codec uses the S2 block format.
type S2Codec struct{}

var _ Codec = S2Codec{}

func (S2Codec) Type() format.CompressionType { return format.CompressionS2 }

func (S2Codec) Compress(src []byte) ([]byte, error) {
	if len(src) == 0 {
		return nil, nil
	}

	return s2.Encode(nil, src), nil
}

func (S2Codec) Decompress(src []byte, rawSize int) ([]byte, error) {
	if len(src) == 0 {
		return nil, checkSize(format.CompressionS2, 0, rawSize)
	}

	if err := checkLimit(format.CompressionS2, len(src), rawSize, 0); err != nil {
		return nil, err
	}

	n, err := s2.DecodedLen(src)
	if err != nil {
		return nil, err
	}
	if err := checkSize(format.CompressionS2, n, rawSize); err != nil {
		return nil, err
	}

	return s2.Decode(make([]byte, rawSize), src)
}
