package bundle

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/arloliu/keyframe/compress"
	"github.com/arloliu/keyframe/endian"
	"github.com/arloliu/keyframe/errs"
	"github.com/arloliu/keyframe/internal/hash"
	"github.com/arloliu/keyframe/mdx"
	"github.com/arloliu/keyframe/track"
)

// Entry is one decoded track with its owner.
type Entry struct {
	ID    uint64
	Owner string
	Track *track.Track
}

// Bundle is a decoded bundle. Tracks are returned in the order they were added.
type Bundle struct {
	Header  Header
	entries []Entry
	index   map[uint64]int
}

// Decode verifies and decodes a bundle produced by Encoder.Finish.
//
// The payload checksum is verified before any track is decoded. Every track id
// must match its owner and title and appear once.
func Decode(data []byte) (*Bundle, error) {
	h, err := ParseHeader(data)
	if err != nil {
		return nil, err
	}

	codec, err := compress.ForType(h.Compression)
	if err != nil {
		return nil, err
	}

	payload, err := codec.Decompress(data[HeaderSize:], int(h.RawSize))
	if err != nil {
		return nil, fmt.Errorf("decompress bundle payload: %w", err)
	}
	if sum := hash.Checksum(payload); sum != h.Checksum {
		return nil, fmt.Errorf("%w: header %#x, payload %#x", errs.ErrChecksumMismatch, h.Checksum, sum)
	}

	// smallest entry: id, one-byte owner length, chunk length, chunk header
	capHint := min(int(h.Count), len(payload)/(8+1+4+mdx.HeaderSize))
	b := &Bundle{
		Header:  h,
		entries: make([]Entry, 0, capHint),
		index:   make(map[uint64]int, capHint),
	}

	r := endian.NewReader(h.Engine, payload)
	for i := range h.Count {
		entry, err := readEntry(r)
		if err != nil {
			return nil, fmt.Errorf("bundle entry %d: %w", i, err)
		}
		if _, dup := b.index[entry.ID]; dup {
			return nil, fmt.Errorf("%w: %s/%s", errs.ErrDuplicateTrack, entry.Owner, entry.Track.Title())
		}

		b.index[entry.ID] = len(b.entries)
		b.entries = append(b.entries, entry)
	}

	if r.Remaining() != 0 {
		return nil, fmt.Errorf("%w: %d bytes after %d entries", errs.ErrCountMismatch, r.Remaining(), h.Count)
	}

	return b, nil
}

func readEntry(r *endian.Reader) (Entry, error) {
	id, err := r.Uint64()
	if err != nil {
		return Entry{}, truncated(err)
	}

	ownerLen, err := r.Uvarint()
	if err != nil {
		return Entry{}, truncated(err)
	}
	if ownerLen > uint64(r.Remaining()) {
		return Entry{}, fmt.Errorf("%w: owner of %d bytes", errs.ErrTruncatedChunk, ownerLen)
	}
	owner, _ := r.Bytes(int(ownerLen))

	chunkLen, err := r.Uint32()
	if err != nil {
		return Entry{}, truncated(err)
	}
	chunk, err := r.Bytes(int(chunkLen))
	if err != nil {
		return Entry{}, truncated(err)
	}

	t, n, err := mdx.DecodeTrack(chunk)
	if err != nil {
		return Entry{}, err
	}
	if n != len(chunk) {
		return Entry{}, fmt.Errorf("%w: chunk has %d trailing bytes", errs.ErrMalformedEntry, len(chunk)-n)
	}

	e := Entry{ID: id, Owner: string(owner), Track: t}
	if want := hash.TrackID(e.Owner, t.Title()); want != id {
		return Entry{}, fmt.Errorf("%w: id %#x does not match %s/%s", errs.ErrTrackIDMismatch, id, e.Owner, t.Title())
	}

	return e, nil
}

func truncated(err error) error {
	if errors.Is(err, io.ErrUnexpectedEOF) {
		return errs.ErrTruncatedChunk
	}

	return err
}

// Len returns the number of tracks.
func (b *Bundle) Len() int {
	return len(b.entries)
}

// Entries returns every entry in insertion order.
func (b *Bundle) Entries() []Entry {
	return slices.Clone(b.entries)
}

// Track returns the track with the given title owned by owner.
func (b *Bundle) Track(owner, title string) (*track.Track, bool) {
	idx, ok := b.index[hash.TrackID(owner, title)]
	if !ok {
		return nil, false
	}

	return b.entries[idx].Track, true
}
