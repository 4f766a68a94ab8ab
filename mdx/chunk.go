// Package mdx decodes and encodes binary track chunks.
//
// A chunk stores one track, little-endian:
//
//	tag        [4]byte  e.g. "KGTR"
//	count      uint32   number of keys
//	interp     uint32   0 DontInterp, 1 Linear, 2 Hermite, 3 Bezier
//	globalSeq  int32    -1 when the track follows its animation
//	keys       count x { time int32, value, [inTan, outTan] }
//
// Values are one float32, one uint32 (TextureID), three float32 or four float32
// (x, y, z, w), as implied by the tag's attribute title. Tangents follow each
// value only when interp > 1.
package mdx

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/arloliu/keyframe/endian"
	"github.com/arloliu/keyframe/errs"
	"github.com/arloliu/keyframe/format"
	"github.com/arloliu/keyframe/ingest"
	"github.com/arloliu/keyframe/internal/pool"
	"github.com/arloliu/keyframe/track"
)

// HeaderSize is the size of a chunk before its first key.
const HeaderSize = TagSize + 12

var engine = endian.GetLittleEndianEngine()

// DecodeTrack decodes the chunk at the start of data and returns the track with
// the number of bytes consumed. The track is not sorted.
func DecodeTrack(data []byte) (*track.Track, int, error) {
	r := endian.NewReader(engine, data)

	t, err := decode(r)
	if err != nil {
		return nil, 0, err
	}

	return t, r.Offset(), nil
}

func decode(r *endian.Reader) (*track.Track, error) {
	if r.Remaining() < HeaderSize {
		return nil, fmt.Errorf("%w: %d bytes, header needs %d", errs.ErrTruncatedChunk, r.Remaining(), HeaderSize)
	}

	rawTag, _ := r.Bytes(TagSize)
	tag := string(rawTag)
	title, ok := TitleFor(tag)
	if !ok {
		return nil, fmt.Errorf("%w: %q", errs.ErrUnknownChunkTag, tag)
	}

	count, _ := r.Uint32()
	interp, _ := r.Uint32()
	globalSeq, _ := r.Int32()

	switch format.KindForTitle(title) {
	case format.KindScalar:
		return decodeRecord[float32](r, tag, title, count, interp, globalSeq)
	case format.KindIntegerID:
		return decodeRecord[uint32](r, tag, title, count, interp, globalSeq)
	case format.KindVector3:
		return decodeRecord[[3]float32](r, tag, title, count, interp, globalSeq)
	default:
		return decodeRecord[[4]float32](r, tag, title, count, interp, globalSeq)
	}
}

func decodeRecord[T ingest.Component](r *endian.Reader, tag, title string, count, interp uint32, globalSeq int32) (*track.Track, error) {
	rec := ingest.Record[T]{
		Title:             title,
		InterpolationType: interp,
		GlobalSequenceID:  globalSeq,
	}

	size := keySize[T](rec.HasTangents())
	if uint64(count)*uint64(size) > uint64(r.Remaining()) {
		return nil, fmt.Errorf("%w: %s declares %d keys of %d bytes, %d bytes left",
			errs.ErrTruncatedChunk, tag, count, size, r.Remaining())
	}

	rec.Keys = make([]ingest.Key[T], count)
	for i := range rec.Keys {
		k := &rec.Keys[i]

		time, err := r.Int32()
		if err == nil {
			k.Time = time
			k.Value, err = readComponent[T](r)
		}
		if err == nil && rec.HasTangents() {
			if k.InTan, err = readComponent[T](r); err == nil {
				k.OutTan, err = readComponent[T](r)
			}
		}
		if err != nil {
			return nil, truncated(tag, err)
		}
	}

	t, err := ingest.FromRecord(rec)
	if err != nil {
		return nil, fmt.Errorf("chunk %s: %w", tag, err)
	}

	return t, nil
}

// EncodeTrack encodes t as a chunk with the given tag.
//
// The tag must animate t's title. Tracks are written in storage order; sort
// them first if readers expect ascending times.
func EncodeTrack(tag string, t *track.Track) ([]byte, error) {
	bb := pool.GetChunkBuffer()
	defer pool.PutChunkBuffer(bb)

	var err error
	if bb.B, err = AppendTrack(bb.B, tag, t); err != nil {
		return nil, err
	}

	return bb.Detach(), nil
}

// AppendTrack appends the chunk for t to dst.
func AppendTrack(dst []byte, tag string, t *track.Track) ([]byte, error) {
	title, ok := TitleFor(tag)
	if !ok {
		return dst, fmt.Errorf("%w: %q", errs.ErrUnknownChunkTag, tag)
	}
	if title != t.Title() {
		return dst, fmt.Errorf("%w: %s animates %s, track is %s", errs.ErrUnknownChunkTag, tag, title, t.Title())
	}

	switch t.Kind() {
	case format.KindScalar:
		return appendRecord[float32](dst, tag, t)
	case format.KindIntegerID:
		return appendRecord[uint32](dst, tag, t)
	case format.KindVector3:
		return appendRecord[[3]float32](dst, tag, t)
	default:
		return appendRecord[[4]float32](dst, tag, t)
	}
}

func appendRecord[T ingest.Component](dst []byte, tag string, t *track.Track) ([]byte, error) {
	rec, err := ingest.ToRecord[T](t)
	if err != nil {
		return dst, err
	}

	dst = append(dst, tag...)
	dst = engine.AppendUint32(dst, uint32(len(rec.Keys)))
	dst = engine.AppendUint32(dst, rec.InterpolationType)
	dst = engine.AppendUint32(dst, uint32(rec.GlobalSequenceID))

	for _, k := range rec.Keys {
		dst = engine.AppendUint32(dst, uint32(k.Time))
		dst = appendComponent(dst, k.Value)
		if rec.HasTangents() {
			dst = appendComponent(dst, k.InTan)
			dst = appendComponent(dst, k.OutTan)
		}
	}

	return dst, nil
}

func keySize[T ingest.Component](withTans bool) int {
	var zero T
	size := 4 * componentWords(zero)
	if withTans {
		size *= 3
	}

	return 4 + size
}

func componentWords(c any) int {
	switch c.(type) {
	case [3]float32:
		return 3
	case [4]float32:
		return 4
	default:
		return 1
	}
}

func readComponent[T ingest.Component](r *endian.Reader) (T, error) {
	var out T
	var err error

	switch p := any(&out).(type) {
	case *float32:
		*p, err = r.Float32()
	case *uint32:
		*p, err = r.Uint32()
	case *[3]float32:
		err = r.Float32s(p[:])
	case *[4]float32:
		err = r.Float32s(p[:])
	}

	return out, err
}

func appendComponent[T ingest.Component](dst []byte, c T) []byte {
	switch v := any(c).(type) {
	case float32:
		return engine.AppendUint32(dst, math.Float32bits(v))
	case uint32:
		return engine.AppendUint32(dst, v)
	case [3]float32:
		for _, f := range v {
			dst = engine.AppendUint32(dst, math.Float32bits(f))
		}
	case [4]float32:
		for _, f := range v {
			dst = engine.AppendUint32(dst, math.Float32bits(f))
		}
	}

	return dst
}

func truncated(tag string, err error) error {
	if errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: %s", errs.ErrTruncatedChunk, tag)
	}

	return err
}
