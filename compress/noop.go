package compress

import "github.com/arloliu/keyframe/format"

// NoneCodec stores payloads uncompressed. Both directions return src itself.
type NoneCodec struct{}

var _ Codec = NoneCodec{}

func (NoneCodec) Type() format.CompressionType { return format.CompressionNone }

func (NoneCodec) Compress(src []byte) ([]byte, error) {
	return src, nil
}

func (NoneCodec) Decompress(src []byte, rawSize int) ([]byte, error) {
	if err := checkSize(format.CompressionNone, len(src), rawSize); err != nil {
		return nil, err
	}

	return src, nil
}
