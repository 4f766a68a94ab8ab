// Package bundle packs many tracks into one compressed, checksummed payload.
//
// A bundle hands the tracks of a model from one tool to another, for example
// when animation is transferred between models. Each track is stored as a
// binary chunk (package mdx) under its owner, the name of the node, geoset or
// layer it animates, and is identified by hash.TrackID(owner, title):
//
//	enc, err := bundle.NewEncoder(bundle.WithCompression(format.CompressionS2))
//	if err != nil {
//		return err
//	}
//	if err := enc.Add("Bone_Root", rotation); err != nil {
//		return err
//	}
//	data, err := enc.Finish()
//
//	b, err := bundle.Decode(data)
//	rot, ok := b.Track("Bone_Root", "Rotation")
//
// The header records the codec, byte order, entry count, the uncompressed
// payload size and its xxHash64 checksum, so corruption is reported before
// any track is decoded.
package bundle
