// Package compress provides the payload codecs used by keyframe bundles.
//
// A bundle payload is the concatenation of binary track chunks. Chunks of the
// same model repeat tags, counts and near-identical float patterns, so a
// general-purpose compressor shrinks them well. Four codecs are available,
// selected by format.CompressionType:
//   - None: the payload is stored as is
//   - Zstd: best ratio, pure Go (klauspost/compress/zstd)
//   - S2: fast, Snappy-compatible block format (klauspost/compress/s2)
//   - LZ4: fastest decompression (pierrec/lz4/v4 block format)
//
// The bundle header records the uncompressed payload size, so every codec
// decompresses into an exactly sized buffer and reports a size mismatch as
// corruption:
//
//	codec, err := compress.ForType(format.CompressionZstd)
//	if err != nil {
//		return err
//	}
//	packed, err := codec.Compress(payload)
//	...
//	payload, err = codec.Decompress(packed, len(payload))
//
// All codecs are stateless values and safe for concurrent use. Zstd and LZ4
// keep their encoder and decoder state in sync.Pools.
package compress
