package bundle

import (
	"fmt"

	"github.com/arloliu/keyframe/endian"
	"github.com/arloliu/keyframe/errs"
	"github.com/arloliu/keyframe/format"
	"github.com/arloliu/keyframe/internal/options"
)

// EncoderConfig holds the settings an Encoder writes into the bundle header.
type EncoderConfig struct {
	compression format.CompressionType
	engine      endian.EndianEngine
}

func newEncoderConfig() *EncoderConfig {
	return &EncoderConfig{
		compression: format.CompressionZstd,
		engine:      endian.GetLittleEndianEngine(),
	}
}

// Option configures an Encoder.
type Option = options.Option[*EncoderConfig]

// WithCompression selects the payload codec. Zstd is the default.
func WithCompression(ct format.CompressionType) Option {
	return options.New(func(c *EncoderConfig) error {
		switch ct {
		case format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4:
			c.compression = ct
			return nil
		default:
			return fmt.Errorf("%w: %d", errs.ErrInvalidCompression, uint8(ct))
		}
	})
}

// WithLittleEndian writes header and entry fields little-endian. It is the default.
func WithLittleEndian() Option {
	return options.NoError(func(c *EncoderConfig) {
		c.engine = endian.GetLittleEndianEngine()
	})
}

// WithBigEndian writes header and entry fields big-endian. Track chunks stay little-endian.
func WithBigEndian() Option {
	return options.NoError(func(c *EncoderConfig) {
		c.engine = endian.GetBigEndianEngine()
	})
}
