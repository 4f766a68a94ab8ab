package track

import (
	"fmt"
	"slices"

	"github.com/arloliu/keyframe/errs"
	"github.com/arloliu/keyframe/format"
)

// CopyFrom appends every keyframe of src verbatim, without sorting.
//
// Tangents are appended when both tracks carry them. When this track carries
// tangents and src does not, this track's tangent data is cleared and its tags
// are replaced by those of src; the copy still completes and ErrTangentsDiscarded
// is returned so the caller can warn about the lost curve detail.
//
// It panics if src holds another value kind.
func (t *Track) CopyFrom(src *Track) error {
	t.checkTrackKind(src)

	before := len(t.times)
	srcTans, dstTans := src.HasTangents(), t.HasTangents()

	t.times = append(t.times, src.times...)
	t.values = append(t.values, src.values...)

	switch {
	case srcTans && dstTans:
		if len(t.inTans) == before && len(src.inTans) == len(src.times) {
			t.inTans = append(t.inTans, src.inTans...)
			t.outTans = append(t.outTans, src.outTans...)

			return nil
		}
	case dstTans:
		t.downgrade(src.tags)
		return errs.ErrTangentsDiscarded
	}

	return t.reconcileTangents()
}

// CopyRange appends the keyframes of src with srcStart <= time <= srcEnd, remapped
// linearly into [newStart, newEnd], then sorts.
//
// Tangents are copied when both tracks carry tangent data (or this track is empty
// and tagged as curved). When this track carries tangent data and src does not,
// the same downgrade as CopyFrom applies and ErrTangentsDiscarded is returned.
//
// src may be the track itself; only keyframes present before the call are read.
func (t *Track) CopyRange(src *Track, srcStart, srcEnd, newStart, newEnd int) error {
	t.checkTrackKind(src)

	n := len(src.times)
	matches := 0
	for i := 0; i < n; i++ {
		if src.times[i] >= srcStart && src.times[i] <= srcEnd {
			matches++
		}
	}
	if matches == 0 {
		return nil
	}

	var warn error
	withTans := src.hasTangentData() && (t.hasTangentData() || (len(t.times) == 0 && t.HasTangents()))
	if !withTans && len(t.inTans) > 0 {
		t.downgrade(src.tags)
		warn = errs.ErrTangentsDiscarded
	}

	srcTimes, srcValues := src.times[:n], src.values[:n]
	var srcIn, srcOut []Value
	if withTans {
		srcIn, srcOut = src.inTans[:n], src.outTans[:n]
	}

	for i, time := range srcTimes {
		if time < srcStart || time > srcEnd {
			continue
		}

		t.times = append(t.times, remap(time, srcStart, srcEnd, newStart, newEnd))
		t.values = append(t.values, srcValues[i])
		if withTans {
			t.inTans = append(t.inTans, srcIn[i])
			t.outTans = append(t.outTans, srcOut[i])
		}
	}

	t.Sort()

	return warn
}

// TimeScale remaps the keyframes with start <= time <= end linearly into
// [newStart, newEnd], then sorts. Keyframes outside the range keep their time.
func (t *Track) TimeScale(start, end, newStart, newEnd int) {
	for i, time := range t.times {
		if time >= start && time <= end {
			t.times[i] = remap(time, start, end, newStart, newEnd)
		}
	}

	t.Sort()
}

// DeleteAnim removes every keyframe inside r.
//
// Tracks bound to a global sequence share their timeline with every animation,
// so deletion is refused: keyframes stay untouched and ErrGlobalSequenceLocked is returned.
func (t *Track) DeleteAnim(r Range) error {
	if t.hasGlobalSeq {
		logger.WithFields(t.logFields()).Warn("keyframe deletion blocked by a global sequence")
		return fmt.Errorf("%w: track %q, sequence %d", errs.ErrGlobalSequenceLocked, t.title, t.globalSeqID)
	}

	// scan from the end so removals do not shift unvisited indices
	for i := len(t.times) - 1; i >= 0; i-- {
		if r.Contains(t.times[i]) {
			t.DeleteAt(i)
		}
	}

	return nil
}

// Linearize turns a Hermite or Bezier track into a Linear one and drops its tangents.
// It reports whether the track changed.
func (t *Track) Linearize() bool {
	if !t.Interpolation().IsCurved() {
		return false
	}

	t.SetInterpolation(format.Linear)

	return true
}

// Mirror reflects the track across the plane normal to axis (0 = X, 1 = Y, 2 = Z).
//
// Translation tracks negate the axis component; rotation tracks negate the two
// other quaternion vector components, which mirrors the rotation in the same
// plane: a rotation about axis is kept, rotations about the other two axes are
// reversed. Other tracks are left unchanged. It panics on an invalid axis.
func (t *Track) Mirror(axis int) {
	if axis < 0 || axis > 2 {
		panic(fmt.Sprintf("mirror axis %d out of range", axis))
	}

	var fn func(Value) Value
	switch {
	case t.kind == format.KindQuaternion:
		fn = func(v Value) Value {
			q := v.quat
			for c := range 3 {
				if c != axis {
					q.V[c] = -q.V[c]
				}
			}

			return QuaternionOf(q)
		}
	case t.title == "Translation":
		fn = func(v Value) Value {
			vec := v.vec
			vec[axis] = -vec[axis]

			return VectorOf(vec)
		}
	default:
		return
	}

	for _, vals := range [][]Value{t.values, t.inTans, t.outTans} {
		for i := range vals {
			vals[i] = fn(vals[i])
		}
	}
}

// downgrade clears tangent data and adopts the tags of the copy source.
func (t *Track) downgrade(tags []string) {
	logger.WithFields(t.logFields()).Warn("tangent data discarded to match copy source")
	t.clearTangents()
	t.tags = slices.Clone(tags)
}

// reconcileTangents clears tangent data that no longer covers every keyframe.
func (t *Track) reconcileTangents() error {
	if len(t.inTans) == 0 || len(t.inTans) == len(t.times) {
		return nil
	}

	logger.WithFields(t.logFields()).Warn("partial tangent data cleared after copy")
	t.clearTangents()

	return errs.ErrTangentsDiscarded
}

func (t *Track) checkTrackKind(src *Track) {
	if src.kind != t.kind {
		panic(&KindMismatchError{Track: t.title, Want: t.kind, Got: src.kind})
	}
}

// remap moves time from [start, end] to [newStart, newEnd], truncating toward zero.
// A zero-width source range maps to newStart.
func remap(time, start, end, newStart, newEnd int) int {
	if end == start {
		return newStart
	}

	ratio := float64(time-start) / float64(end-start)

	return int(float64(newStart) + ratio*float64(newEnd-newStart))
}

