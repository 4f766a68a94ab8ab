package track

import (
	"fmt"
	"slices"

	"github.com/arloliu/keyframe/errs"
)

// Resolver looks up global sequences owned by the containing animation document.
// Implementations must be free of side effects; tracks may query them repeatedly.
type Resolver interface {
	// Duration returns the duration of the global sequence with the given id.
	Duration(id int) (int, bool)
	// ID returns the id of the first global sequence with the given duration.
	ID(duration int) (int, bool)
}

// GlobalSequences is a Resolver backed by a slice of durations; the index is the id.
type GlobalSequences []int

var _ Resolver = GlobalSequences(nil)

// Duration implements Resolver.
func (g GlobalSequences) Duration(id int) (int, bool) {
	if id < 0 || id >= len(g) {
		return 0, false
	}

	return g[id], true
}

// ID implements Resolver.
func (g GlobalSequences) ID(duration int) (int, bool) {
	idx := slices.Index(g, duration)
	return idx, idx >= 0
}

// SetGlobalSequenceID binds the track to a global sequence id. The duration is
// unknown until ResolveGlobalSequence is called.
func (t *Track) SetGlobalSequenceID(id int) {
	t.globalSeqID = id
	t.hasGlobalSeq = true
	t.durationResolved = false
}

// ClearGlobalSequence unbinds the track from its global sequence.
func (t *Track) ClearGlobalSequence() {
	t.globalSeqID = 0
	t.hasGlobalSeq = false
	t.globalSeqDuration = 0
	t.durationResolved = false
}

// HasGlobalSequence reports whether the track follows a global sequence.
func (t *Track) HasGlobalSequence() bool {
	return t.hasGlobalSeq
}

// GlobalSequenceID returns the bound global sequence id.
func (t *Track) GlobalSequenceID() (int, bool) {
	return t.globalSeqID, t.hasGlobalSeq
}

// GlobalSequenceDuration returns the resolved duration of the bound global sequence.
func (t *Track) GlobalSequenceDuration() (int, bool) {
	return t.globalSeqDuration, t.hasGlobalSeq && t.durationResolved
}

// ResolveGlobalSequence looks up the duration for the bound id. It is a no-op for
// tracks without a global sequence.
func (t *Track) ResolveGlobalSequence(r Resolver) error {
	if !t.hasGlobalSeq {
		return nil
	}

	duration, ok := r.Duration(t.globalSeqID)
	if !ok {
		return fmt.Errorf("%w: track %q references id %d", errs.ErrUnknownGlobalSequence, t.title, t.globalSeqID)
	}

	t.globalSeqDuration = duration
	t.durationResolved = true

	return nil
}

// UpdateGlobalSequenceID re-derives the id from the resolved duration, used after
// the owning document reorders or rebuilds its global sequence table.
func (t *Track) UpdateGlobalSequenceID(r Resolver) error {
	if !t.hasGlobalSeq || !t.durationResolved {
		return nil
	}

	id, ok := r.ID(t.globalSeqDuration)
	if !ok {
		return fmt.Errorf("%w: track %q references duration %d", errs.ErrUnknownGlobalSequence, t.title, t.globalSeqDuration)
	}

	t.globalSeqID = id

	return nil
}
