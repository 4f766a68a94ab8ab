package track

import (
	"fmt"
	"iter"
	"slices"

	"github.com/arloliu/keyframe/errs"
	"github.com/arloliu/keyframe/format"
)

// Range is an animation interval in track time units, inclusive at both ends.
type Range struct {
	Start int
	End   int
}

// Contains reports whether time lies within [Start, End].
func (r Range) Contains(time int) bool {
	return time >= r.Start && time <= r.End
}

// Track holds the keyframes of one animated attribute.
//
// Times, values and tangents are stored as parallel slices. Tangent slices are
// either empty or exactly as long as the time slice. Keyframes are unique and
// ascending only after Sort; AddEntry does not maintain order.
//
// A Track is owned by a single attribute and is not safe for concurrent mutation.
type Track struct {
	title string
	kind  format.ValueKind
	tags  []string

	globalSeqID       int
	hasGlobalSeq      bool
	globalSeqDuration int
	durationResolved  bool

	times   []int
	values  []Value
	inTans  []Value
	outTans []Value
}

// Entry is a single keyframe with its tangents, when the track carries them.
type Entry struct {
	Time        int
	Value       Value
	InTan       Value
	OutTan      Value
	HasTangents bool
}

// New creates an empty track for the given attribute title.
//
// The value kind is derived from the title with format.KindForTitle. When no tags
// are given the track starts with the single "DontInterp" tag.
func New(title string, tags ...string) *Track {
	if len(tags) == 0 {
		tags = []string{format.DontInterp.String()}
	}

	return &Track{
		title: title,
		kind:  format.KindForTitle(title),
		tags:  slices.Clone(tags),
	}
}

// NewEmptyFrom creates a track with the same title, tags and global sequence as t, but no keyframes.
func NewEmptyFrom(t *Track) *Track {
	return &Track{
		title:             t.title,
		kind:              t.kind,
		tags:              slices.Clone(t.tags),
		globalSeqID:       t.globalSeqID,
		hasGlobalSeq:      t.hasGlobalSeq,
		globalSeqDuration: t.globalSeqDuration,
		durationResolved:  t.durationResolved,
	}
}

// Clone returns a deep copy of the track.
func (t *Track) Clone() *Track {
	c := NewEmptyFrom(t)
	c.times = slices.Clone(t.times)
	c.values = slices.Clone(t.values)
	c.inTans = slices.Clone(t.inTans)
	c.outTans = slices.Clone(t.outTans)

	return c
}

// Title returns the attribute name, e.g. "Translation" or "Alpha".
func (t *Track) Title() string { return t.title }

// Kind returns the value kind every keyframe of the track carries.
func (t *Track) Kind() format.ValueKind { return t.kind }

// Len returns the number of keyframes.
func (t *Track) Len() int { return len(t.times) }

// Time returns the time of keyframe i.
func (t *Track) Time(i int) int { return t.times[i] }

// Value returns the value of keyframe i.
func (t *Track) Value(i int) Value { return t.values[i] }

// InTan returns the incoming tangent of keyframe i. It panics if the track has no tangent data.
func (t *Track) InTan(i int) Value { return t.inTans[i] }

// OutTan returns the outgoing tangent of keyframe i. It panics if the track has no tangent data.
func (t *Track) OutTan(i int) Value { return t.outTans[i] }

// Times returns a copy of the keyframe times in storage order.
func (t *Track) Times() []int { return slices.Clone(t.times) }

// Tags returns a copy of the ordered tag list.
func (t *Track) Tags() []string { return slices.Clone(t.tags) }

// SetTags replaces the tag list. The interpolation mode is the first tag naming one.
func (t *Track) SetTags(tags []string) {
	t.tags = slices.Clone(tags)
}

// AddTag appends a tag.
func (t *Track) AddTag(tag string) {
	t.tags = append(t.tags, tag)
}

// Interpolation returns the mode named by the first interpolation tag, or DontInterp.
func (t *Track) Interpolation() format.Interpolation {
	for _, tag := range t.tags {
		if mode, ok := format.ParseInterpolation(tag); ok {
			return mode
		}
	}

	return format.DontInterp
}

// SetInterpolation replaces the first interpolation tag in place, or prepends one.
// Leaving a curved mode clears tangent data.
func (t *Track) SetInterpolation(mode format.Interpolation) {
	idx := slices.IndexFunc(t.tags, func(tag string) bool {
		_, ok := format.ParseInterpolation(tag)
		return ok
	})
	if idx >= 0 {
		t.tags[idx] = mode.String()
	} else {
		t.tags = slices.Insert(t.tags, 0, mode.String())
	}

	if !mode.IsCurved() {
		t.clearTangents()
	}
}

// HasTangents reports whether the track is tagged Hermite or Bezier, or already
// carries tangent data under any tag.
func (t *Track) HasTangents() bool {
	for _, tag := range t.tags {
		if tag == format.Hermite.String() || tag == format.Bezier.String() {
			return true
		}
	}

	return len(t.inTans) > 0
}

// hasTangentData reports whether every keyframe has tangents.
func (t *Track) hasTangentData() bool {
	return len(t.times) > 0 && len(t.inTans) == len(t.times)
}

func (t *Track) clearTangents() {
	t.inTans = nil
	t.outTans = nil
}

// AddEntry appends a keyframe without tangents. Order is not maintained; call Sort.
//
// It panics if value has the wrong kind or the track already carries tangent data.
func (t *Track) AddEntry(time int, value Value) {
	t.checkKind(value)
	if len(t.inTans) > 0 {
		panic(fmt.Errorf("%w: track %q carries tangents, entry at %d has none", errs.ErrTangentMismatch, t.title, time))
	}

	t.times = append(t.times, time)
	t.values = append(t.values, value)
}

// AddEntryWithTangents appends a keyframe with its tangents. Order is not maintained; call Sort.
//
// It panics if any value has the wrong kind or the track has keyframes without tangent data.
func (t *Track) AddEntryWithTangents(time int, value, inTan, outTan Value) {
	t.checkKind(value)
	t.checkKind(inTan)
	t.checkKind(outTan)
	if len(t.inTans) != len(t.times) {
		panic(fmt.Errorf("%w: track %q has keyframes without tangents, entry at %d has them", errs.ErrTangentMismatch, t.title, time))
	}

	t.times = append(t.times, time)
	t.values = append(t.values, value)
	t.inTans = append(t.inTans, inTan)
	t.outTans = append(t.outTans, outTan)
}

// SetEntry overwrites the value of the first keyframe at time and reports whether one was found.
//
// When the track carries tangent data, both tangents of that keyframe are overwritten
// with the same value. Editing tools rely on this behavior.
func (t *Track) SetEntry(time int, value Value) bool {
	t.checkKind(value)

	idx := slices.Index(t.times, time)
	if idx < 0 {
		return false
	}

	t.values[idx] = value
	if len(t.inTans) > 0 {
		t.inTans[idx] = value
		t.outTans[idx] = value
	}

	return true
}

// DeleteAt removes keyframe i and its tangents.
func (t *Track) DeleteAt(i int) {
	t.times = slices.Delete(t.times, i, i+1)
	t.values = slices.Delete(t.values, i, i+1)
	if len(t.inTans) > 0 {
		t.inTans = slices.Delete(t.inTans, i, i+1)
		t.outTans = slices.Delete(t.outTans, i, i+1)
	}
}

// Entry returns keyframe i.
func (t *Track) Entry(i int) Entry {
	e := Entry{Time: t.times[i], Value: t.values[i]}
	if len(t.inTans) > 0 {
		e.InTan = t.inTans[i]
		e.OutTan = t.outTans[i]
		e.HasTangents = true
	}

	return e
}

// All iterates over the keyframes in storage order.
func (t *Track) All() iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		for i := range t.times {
			if !yield(t.Entry(i)) {
				return
			}
		}
	}
}

// Entries returns every keyframe in storage order.
func (t *Track) Entries() []Entry {
	entries := make([]Entry, 0, len(t.times))
	for e := range t.All() {
		entries = append(entries, e)
	}

	return entries
}

// ValueAt returns the value of the first keyframe exactly at time.
func (t *Track) ValueAt(time int) (Value, bool) {
	idx := slices.Index(t.times, time)
	if idx < 0 {
		return Value{}, false
	}

	return t.values[idx], true
}

// Equal reports whether both tracks hold the same metadata and keyframes in the same order.
func (t *Track) Equal(o *Track) bool {
	if t == nil || o == nil {
		return t == o
	}

	return t.title == o.title &&
		t.kind == o.kind &&
		slices.Equal(t.tags, o.tags) &&
		t.hasGlobalSeq == o.hasGlobalSeq &&
		(!t.hasGlobalSeq || t.globalSeqID == o.globalSeqID) &&
		slices.Equal(t.times, o.times) &&
		slices.EqualFunc(t.values, o.values, Value.Equal) &&
		slices.EqualFunc(t.inTans, o.inTans, Value.Equal) &&
		slices.EqualFunc(t.outTans, o.outTans, Value.Equal)
}

func (t *Track) checkKind(v Value) {
	if v.kind != t.kind {
		panic(&KindMismatchError{Track: t.title, Want: t.kind, Got: v.kind})
	}
}
