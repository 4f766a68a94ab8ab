package track

import (
	"fmt"

	"github.com/arloliu/keyframe/format"
)

// Evaluate returns the track value at query inside the animation anim.
//
// The second result is false for an empty track. Exact keyframe hits and queries
// outside the keyframe span return a stored value unchanged. While query is before
// anim.End, a following keyframe past anim.End is never blended in: the last
// in-range value is held instead.
//
// Blending depends on the value kind and interpolation mode:
//   - DontInterp, and IntegerID tracks under any mode: hold the previous value
//   - Linear: per-component lerp, spherical lerp for quaternions
//   - Hermite, Bezier: per-component cubic using outTan[floor] and inTan[ceil],
//     squad for quaternions
//
// A curved track with no tangent data blends linearly. The track must be sorted.
func (t *Track) Evaluate(query int, anim Range) (Value, bool) {
	if len(t.times) == 0 {
		return Value{}, false
	}

	floor := t.FloorIndex(query)
	ceil := t.CeilIndex(query)
	if floor == ceil {
		return t.values[floor], true
	}

	if query < anim.End && t.times[ceil] > anim.End {
		return t.values[floor], true
	}

	floorTime, ceilTime := t.times[floor], t.times[ceil]
	if floorTime == ceilTime {
		return t.values[floor], true
	}

	factor := float64(query-floorTime) / float64(ceilTime-floorTime)

	return t.blend(floor, ceil, factor), true
}

// Sample evaluates the track on the timeline it follows.
//
// A track bound to a resolved global sequence is evaluated at globalTime wrapped
// into [0, duration) with the sequence as its animation window; any other track is
// evaluated at animTime inside anim.
func (t *Track) Sample(anim Range, animTime, globalTime int) (Value, bool) {
	if duration, ok := t.GlobalSequenceDuration(); ok {
		local := 0
		if duration > 0 {
			local = globalTime % duration
			if local < 0 {
				local += duration
			}
		}

		return t.Evaluate(local, Range{Start: 0, End: duration})
	}

	return t.Evaluate(animTime, anim)
}

func (t *Track) blend(floor, ceil int, factor float64) Value {
	mode := t.Interpolation()
	if mode.IsCurved() && !t.hasTangentData() {
		mode = format.Linear
	}

	prev, next := t.values[floor], t.values[ceil]

	switch t.kind {
	case format.KindIntegerID:
		return prev

	case format.KindScalar:
		switch mode {
		case format.DontInterp:
			return prev
		case format.Linear:
			return Scalar(lerp(prev.scalar, next.scalar, factor))
		case format.Hermite:
			return Scalar(hermite(prev.scalar, t.outTans[floor].scalar, t.inTans[ceil].scalar, next.scalar, factor))
		case format.Bezier:
			return Scalar(bezier(prev.scalar, t.outTans[floor].scalar, t.inTans[ceil].scalar, next.scalar, factor))
		}

	case format.KindVector3:
		switch mode {
		case format.DontInterp:
			return prev
		case format.Linear:
			return VectorOf(lerpVec(prev.vec, next.vec, factor))
		case format.Hermite:
			return VectorOf(cubicVec(hermite, prev.vec, t.outTans[floor].vec, t.inTans[ceil].vec, next.vec, factor))
		case format.Bezier:
			return VectorOf(cubicVec(bezier, prev.vec, t.outTans[floor].vec, t.inTans[ceil].vec, next.vec, factor))
		}

	case format.KindQuaternion:
		switch mode {
		case format.DontInterp:
			return prev
		case format.Linear:
			return QuaternionOf(slerp(prev.quat, next.quat, factor))
		case format.Hermite, format.Bezier:
			return QuaternionOf(squad(prev.quat, t.outTans[floor].quat, t.inTans[ceil].quat, next.quat, factor))
		}
	}

	panic(fmt.Sprintf("track %q: no interpolation for kind %s with mode %s", t.title, t.kind, mode))
}
