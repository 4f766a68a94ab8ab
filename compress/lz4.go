package compress

import (
	"sync"

	"github.com/pierrec/lz4/v4"

	"github.com/arloliu/keyframe/format"
)

var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

// lz4MaxRatio bounds expansion: a length extension byte adds at most 255 bytes.
const lz4MaxRatio = 255

// LZ4Codec uses the LZ4 block format. Blocks carry no size, so decompression
// relies on the size recorded in the bundle header.
type LZ4Codec struct{}

var _ Codec = LZ4Codec{}

func (LZ4Codec) Type() format.CompressionType { return format.CompressionLZ4 }

func (LZ4Codec) Compress(src []byte) ([]byte, error) {
	if len(src) == 0 {
		return nil, nil
	}

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	dst := make([]byte, lz4.CompressBlockBound(len(src)))
	n, err := lc.CompressBlock(src, dst)
	if err != nil {
		return nil, err
	}

	return dst[:n], nil
}

func (LZ4Codec) Decompress(src []byte, rawSize int) ([]byte, error) {
	if len(src) == 0 {
		return nil, checkSize(format.CompressionLZ4, 0, rawSize)
	}

	if err := checkLimit(format.CompressionLZ4, len(src), rawSize, lz4MaxRatio); err != nil {
		return nil, err
	}

	dst := make([]byte, rawSize)
	n, err := lz4.UncompressBlock(src, dst)
	if err != nil {
		return nil, err
	}
	if err := checkSize(format.CompressionLZ4, n, rawSize); err != nil {
		return nil, err
	}

	return dst, nil
}
