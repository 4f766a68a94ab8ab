package compress

import (
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"

	"github.com/arloliu/keyframe/format"
)

// Decoders and encoders run allocation-free once warmed up, so they are pooled.
var (
	zstdDecoderPool = sync.Pool{
		New: func() any {
			decoder, err := zstd.NewReader(nil,
				zstd.WithDecoderConcurrency(1),
				zstd.WithDecoderMaxMemory(MaxDecodedSize),
				zstd.WithDecodeAllCapLimit(true),
			)
			if err != nil {
				panic(fmt.Sprintf("failed to create zstd decoder: %v", err))
			}

			return decoder
		},
	}

	zstdEncoderPool = sync.Pool{
		New: func() any {
			encoder, err := zstd.NewWriter(nil,
				zstd.WithEncoderLevel(zstd.SpeedDefault),
				zstd.WithEncoderCRC(false),
			)
			if err != nil {
				panic(fmt.Sprintf("failed to create zstd encoder: %v", err))
			}

			return encoder
		},
	}
)

// zstdMaxRatio bounds expansion: every block carries a 3-byte header and decodes
// to at most 128 KiB.
const zstdMaxRatio = (128 << 10) / 3

// ZstdCodec uses Zstandard frames.
type ZstdCodec struct{}

var _ Codec = ZstdCodec{}

func (ZstdCodec) Type() format.CompressionType { return format.CompressionZstd }

func (ZstdCodec) Compress(src []byte) ([]byte, error) {
	encoder, _ := zstdEncoderPool.Get().(*zstd.Encoder)
	defer zstdEncoderPool.Put(encoder)

	return encoder.EncodeAll(src, nil), nil
}

func (ZstdCodec) Decompress(src []byte, rawSize int) ([]byte, error) {
	if len(src) == 0 {
		return nil, checkSize(format.CompressionZstd, 0, rawSize)
	}

	if err := checkLimit(format.CompressionZstd, len(src), rawSize, zstdMaxRatio); err != nil {
		return nil, err
	}

	decoder, _ := zstdDecoderPool.Get().(*zstd.Decoder)
	defer zstdDecoderPool.Put(decoder)

	// the cap limit stops decoding at rawSize bytes
	out, err := decoder.DecodeAll(src, make([]byte, 0, rawSize))
	if err != nil {
		return nil, fmt.Errorf("zstd decompression failed: %w", err)
	}
	if err := checkSize(format.CompressionZstd, len(out), rawSize); err != nil {
		return nil, err
	}

	return out, nil
}
