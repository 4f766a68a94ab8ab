// Package collision detects duplicate tracks and track id collisions while a bundle is built.
package collision

import (
	"fmt"

	"github.com/arloliu/keyframe/errs"
)

type trackKey struct {
	owner string
	title string
}

// Tracker remembers which (owner, title) pair produced each track id.
type Tracker struct {
	byID map[uint64]trackKey
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{byID: make(map[uint64]trackKey)}
}

// Track records the pair under id.
//
// It returns errs.ErrDuplicateTrack when the same pair was already recorded and
// errs.ErrTrackIDCollision when a different pair produced the same id. Readers
// look tracks up by id, so neither can be stored.
func (t *Tracker) Track(owner, title string, id uint64) error {
	key := trackKey{owner: owner, title: title}
	if existing, ok := t.byID[id]; ok {
		if existing == key {
			return fmt.Errorf("%w: %s/%s", errs.ErrDuplicateTrack, owner, title)
		}

		return fmt.Errorf("%w: %s/%s and %s/%s share id %#x",
			errs.ErrTrackIDCollision, existing.owner, existing.title, owner, title, id)
	}

	t.byID[id] = key

	return nil
}

// Count returns the number of recorded tracks.
func (t *Tracker) Count() int {
	return len(t.byID)
}

// Reset forgets every recorded track and keeps the allocated map.
func (t *Tracker) Reset() {
	clear(t.byID)
}
