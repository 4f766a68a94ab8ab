package bundle

import (
	"encoding/binary"
	"fmt"
	"math"

	log "github.com/sirupsen/logrus"

	"github.com/arloliu/keyframe/compress"
	"github.com/arloliu/keyframe/errs"
	"github.com/arloliu/keyframe/internal/collision"
	"github.com/arloliu/keyframe/internal/hash"
	"github.com/arloliu/keyframe/internal/options"
	"github.com/arloliu/keyframe/internal/pool"
	"github.com/arloliu/keyframe/mdx"
	"github.com/arloliu/keyframe/track"
)

// Encoder collects tracks into a bundle. It is not safe for concurrent use.
type Encoder struct {
	*EncoderConfig
	codec    compress.Codec
	buf      *pool.ByteBuffer
	tracker  *collision.Tracker
	count    uint32
	finished bool
}

// NewEncoder creates an Encoder.
//
// Parameters:
//   - opts: compression and byte-order options
//
// Returns:
//   - *Encoder: encoder ready for Add
//   - error: invalid option
func NewEncoder(opts ...Option) (*Encoder, error) {
	cfg := newEncoderConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	codec, err := compress.ForType(cfg.compression)
	if err != nil {
		return nil, err
	}

	return &Encoder{
		EncoderConfig: cfg,
		codec:         codec,
		buf:           pool.GetBundleBuffer(),
		tracker:       collision.NewTracker(),
	}, nil
}

// Add appends t under owner using the default chunk tag for its title.
func (e *Encoder) Add(owner string, t *track.Track) error {
	tag, ok := mdx.TagFor(t.Title())
	if !ok {
		return fmt.Errorf("%w: no chunk tag for %q", errs.ErrUnknownChunkTag, t.Title())
	}

	return e.AddWithTag(owner, tag, t)
}

// AddWithTag appends t under owner with an explicit chunk tag, e.g. "KMTA" for a
// material layer's Alpha.
//
// Each (owner, title) pair may be added once. A failed call leaves the encoder unchanged.
func (e *Encoder) AddWithTag(owner, tag string, t *track.Track) error {
	if e.finished {
		return errs.ErrBundleFinished
	}
	if owner == "" {
		return errs.ErrInvalidOwner
	}

	id := hash.TrackID(owner, t.Title())
	start := len(e.buf.B)

	b := e.engine.AppendUint64(e.buf.B, id)
	b = appendString(b, owner)
	lenPos := len(b)
	b = e.engine.AppendUint32(b, 0)

	b, err := mdx.AppendTrack(b, tag, t)
	if err != nil {
		e.buf.B = b[:start]
		return err
	}
	e.engine.PutUint32(b[lenPos:], uint32(len(b)-lenPos-4))

	if err := e.tracker.Track(owner, t.Title(), id); err != nil {
		e.buf.B = b[:start]
		return err
	}

	e.buf.B = b
	e.count++

	return nil
}

// Len returns the number of tracks added so far.
func (e *Encoder) Len() int {
	return int(e.count)
}

// Finish compresses the payload and returns the complete bundle. The encoder
// cannot be used afterwards.
func (e *Encoder) Finish() ([]byte, error) {
	if e.finished {
		return nil, errs.ErrBundleFinished
	}
	defer e.Release()

	raw := e.buf.Bytes()
	if uint64(len(raw)) > math.MaxUint32 {
		return nil, fmt.Errorf("bundle payload of %d bytes exceeds the format limit", len(raw))
	}

	packed, err := e.codec.Compress(raw)
	if err != nil {
		return nil, fmt.Errorf("compress bundle payload: %w", err)
	}

	h := Header{
		Version:     Version,
		Compression: e.compression,
		Engine:      e.engine,
		Count:       e.count,
		RawSize:     uint32(len(raw)),
		Checksum:    hash.Checksum(raw),
	}

	out := make([]byte, 0, HeaderSize+len(packed))
	out = h.appendTo(out)
	out = append(out, packed...)

	log.WithFields(log.Fields{
		"tracks":      e.count,
		"raw":         len(raw),
		"packed":      len(packed),
		"compression": e.compression,
	}).Debug("bundle finished")

	return out, nil
}

// Release abandons the bundle and returns its buffer to the pool. It is a no-op
// after Finish or a previous Release; the encoder cannot be used afterwards.
func (e *Encoder) Release() {
	e.finished = true
	if e.buf != nil {
		pool.PutBundleBuffer(e.buf)
		e.buf = nil
	}
}

func appendString(dst []byte, s string) []byte {
	dst = binary.AppendUvarint(dst, uint64(len(s)))
	return append(dst, s...)
}
