// Package keyframe models keyframe animation tracks: timed values with optional
// tangents, evaluated under DontInterp, Linear, Hermite or Bezier interpolation.
//
// # Core Features
//
//   - Typed tracks (scalar, 3-vector, quaternion, integer id) derived from the track title
//   - Interpolation with spherical blending for rotations
//   - Global sequences: tracks looping on their own timeline
//   - Track algebra: copy, remap, time-scale, range delete, mirror, linearize
//   - Visibility comparison between two scalar tracks
//   - Text keyframe blocks, binary MDX-style chunks and compressed multi-track bundles
//
// # Basic Usage
//
// Parsing and evaluating a text block:
//
//	tracks, err := keyframe.ParseText(strings.NewReader(src))
//	if err != nil {
//	    // tracks still holds every block that parsed
//	}
//	v, ok := keyframe.Evaluate(tracks[0], 150, track.Range{Start: 0, End: 1000})
//
// Bundling tracks for storage:
//
//	enc, _ := keyframe.NewBundleEncoder(bundle.WithCompression(format.CompressionS2))
//	_ = enc.Add("Bone_Root", tracks[0])
//	data, _ := enc.Finish()
//
//	b, _ := keyframe.DecodeBundle(data)
//	t, ok := b.Track("Bone_Root", "Translation")
//
// # Package Structure
//
// The functions here wrap the track, ingest, mdx and bundle packages for the
// common cases. Use those packages directly for finer control.
package keyframe

import (
	"fmt"
	"io"

	"github.com/arloliu/keyframe/bundle"
	"github.com/arloliu/keyframe/errs"
	"github.com/arloliu/keyframe/ingest"
	"github.com/arloliu/keyframe/internal/hash"
	"github.com/arloliu/keyframe/mdx"
	"github.com/arloliu/keyframe/track"
)

// ParseText parses every keyframe block in r.
//
// Blocks that fail to parse are skipped; their errors are joined into the returned
// error while the tracks of all other blocks are still returned.
func ParseText(r io.Reader) ([]*track.Track, error) {
	return ingest.ReadAll(r)
}

// WriteText writes each track as a top-level keyframe block.
func WriteText(w io.Writer, tracks ...*track.Track) error {
	for _, t := range tracks {
		if err := ingest.WriteBlock(w, t, 0); err != nil {
			return err
		}
	}

	return nil
}

// DecodeChunk decodes one binary track chunk and returns the bytes consumed.
func DecodeChunk(data []byte) (*track.Track, int, error) {
	return mdx.DecodeTrack(data)
}

// EncodeChunk encodes t as a binary chunk under the default tag for its title.
func EncodeChunk(t *track.Track) ([]byte, error) {
	tag, ok := mdx.TagFor(t.Title())
	if !ok {
		return nil, fmt.Errorf("%w: no chunk tag for track %q", errs.ErrUnknownChunkTag, t.Title())
	}

	return mdx.EncodeTrack(tag, t)
}

// Evaluate returns the value of t at query inside the animation anim.
// The second result is false when t has no keyframes.
func Evaluate(t *track.Track, query int, anim track.Range) (track.Value, bool) {
	return t.Evaluate(query, anim)
}

// MostVisible returns whichever of two visibility tracks keeps its owner visible
// longer, or nil when their keyframes disagree. Both tracks must hold scalars.
func MostVisible(a, b *track.Track) *track.Track {
	return track.MostVisible(a, b).Pick(a, b)
}

// NewBundleEncoder creates a bundle encoder; zstd compression is the default.
func NewBundleEncoder(opts ...bundle.Option) (*bundle.Encoder, error) {
	return bundle.NewEncoder(opts...)
}

// DecodeBundle verifies and decodes a bundle.
func DecodeBundle(data []byte) (*bundle.Bundle, error) {
	return bundle.Decode(data)
}

// TrackID returns the bundle id of the track with the given title owned by owner.
func TrackID(owner, title string) uint64 {
	return hash.TrackID(owner, title)
}
