// Package track implements the keyframe animation track model.
//
// A Track holds the keyframes of one animated attribute such as a bone's
// Rotation or a geoset's Alpha. Every keyframe value carries the same
// format.ValueKind, derived from the track title when the track is created:
//
//	t := track.New("Translation", format.Linear.String())
//	t.AddEntry(0, track.Vector(0, 0, 0))
//	t.AddEntry(100, track.Vector(10, 0, 0))
//	t.Sort()
//
//	v, ok := t.Evaluate(50, track.Range{Start: 0, End: 100}) // { 5, 0, 0 }, true
//
// # Ordering
//
// AddEntry and AddEntryWithTangents append without sorting. FloorIndex,
// CeilIndex and Evaluate assume ascending times, so callers that append must
// call Sort first. CopyRange, TimeScale and DeleteAnim keep the track sorted.
//
// # Interpolation
//
// The first tag naming an interpolation mode selects how Evaluate blends two
// keyframes. Scalars and vectors blend per component; quaternions use spherical
// interpolation (slerp for Linear, squad for Hermite and Bezier). IntegerID
// tracks always hold the previous value.
//
// # Errors
//
// Passing a value of the wrong kind is a programming error and panics with a
// *KindMismatchError. Policy refusals and lossy copies are logged through
// logrus and returned as sentinel errors from package errs.
package track
