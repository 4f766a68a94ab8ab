package compress

import (
	"fmt"

	"github.com/arloliu/keyframe/errs"
	"github.com/arloliu/keyframe/format"
)

// Codec compresses and decompresses bundle payloads.
type Codec interface {
	// Type returns the compression type recorded in bundle headers.
	Type() format.CompressionType

	// Compress returns the compressed form of src. src is not modified; the
	// result may alias src for the None codec.
	Compress(src []byte) ([]byte, error)

	// Decompress restores a payload of exactly rawSize bytes.
	// It returns an error if src is corrupt or decodes to another size.
	Decompress(src []byte, rawSize int) ([]byte, error)
}

// MaxDecodedSize bounds the payload size any codec decodes.
const MaxDecodedSize = 64 << 20

var codecs = map[format.CompressionType]Codec{
	format.CompressionNone: NoneCodec{},
	format.CompressionZstd: ZstdCodec{},
	format.CompressionS2:   S2Codec{},
	format.CompressionLZ4:  LZ4Codec{},
}

// ForType returns the codec for a compression type.
func ForType(ct format.CompressionType) (Codec, error) {
	codec, ok := codecs[ct]
	if !ok {
		return nil, fmt.Errorf("%w: %d", errs.ErrInvalidCompression, uint8(ct))
	}

	return codec, nil
}

func checkSize(ct format.CompressionType, got, want int) error {
	if got != want {
		return fmt.Errorf("%s payload decoded to %d bytes, header says %d", ct, got, want)
	}

	return nil
}

// checkLimit rejects a declared size above MaxDecodedSize, or above what srcLen
// bytes can expand to when each input byte yields at most maxRatio output bytes.
// A maxRatio of 0 applies only MaxDecodedSize.
func checkLimit(ct format.CompressionType, srcLen, rawSize, maxRatio int) error {
	if rawSize < 0 || rawSize > MaxDecodedSize {
		return fmt.Errorf("%w: %s payload of %d bytes, limit %d", errs.ErrDecodedSizeLimit, ct, rawSize, MaxDecodedSize)
	}
	if maxRatio > 0 && rawSize/maxRatio > srcLen {
		return fmt.Errorf("%w: %s payload of %d bytes from %d compressed bytes", errs.ErrDecodedSizeLimit, ct, rawSize, srcLen)
	}

	return nil
}
