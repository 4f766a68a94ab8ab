package ingest

import (
	"fmt"

	"github.com/arloliu/keyframe/errs"
	"github.com/arloliu/keyframe/format"
	"github.com/arloliu/keyframe/track"
)

// NoGlobalSequence is the GlobalSequenceID of a record that follows its animation's timeline.
const NoGlobalSequence int32 = -1

// Component is the set of per-keyframe payload shapes found in binary track records:
// a single float, an integer index, a 3-vector, or an x, y, z, w quaternion.
type Component interface {
	float32 | uint32 | [3]float32 | [4]float32
}

// Key is one keyframe of a Record. InTan and OutTan are meaningful only when
// the record's InterpolationType is greater than 1.
type Key[T Component] struct {
	Time   int32
	Value  T
	InTan  T
	OutTan T
}

// Record is a track as stored in binary model data.
type Record[T Component] struct {
	Title             string
	InterpolationType uint32
	GlobalSequenceID  int32
	Keys              []Key[T]
}

// HasTangents reports whether the keys carry tangents.
func (r Record[T]) HasTangents() bool {
	return r.InterpolationType > uint32(format.Linear)
}

// FromRecord builds a track from a binary record.
//
// The interpolation type becomes the track's only tag, a non-negative global
// sequence id binds the track, and tangents are copied iff the interpolation type
// is greater than 1. Keys are added in record order; the result is not sorted.
//
// It returns an error wrapping errs.ErrUnrecognizedTitle for an empty title,
// errs.ErrInvalidInterpolation for a type above 3, and errs.ErrKindMismatch when
// T does not carry the value kind the title implies.
func FromRecord[T Component](r Record[T]) (*track.Track, error) {
	if r.Title == "" {
		return nil, errs.ErrUnrecognizedTitle
	}

	mode := format.Interpolation(r.InterpolationType)
	if r.InterpolationType > uint32(format.Bezier) {
		return nil, fmt.Errorf("%w: %d in track %q", errs.ErrInvalidInterpolation, r.InterpolationType, r.Title)
	}

	t := track.New(r.Title, mode.String())
	if want, got := t.Kind(), kindOf[T](); want != got {
		return nil, fmt.Errorf("%w: track %q holds %s, record carries %s", errs.ErrKindMismatch, r.Title, want, got)
	}

	if r.GlobalSequenceID >= 0 {
		t.SetGlobalSequenceID(int(r.GlobalSequenceID))
	}

	withTans := r.HasTangents()
	for _, k := range r.Keys {
		if withTans {
			t.AddEntryWithTangents(int(k.Time), valueOf(k.Value), valueOf(k.InTan), valueOf(k.OutTan))
		} else {
			t.AddEntry(int(k.Time), valueOf(k.Value))
		}
	}

	return t, nil
}

// ToRecord projects a track onto a binary record.
//
// A curved track without tangent data is written as Linear, which is how it
// evaluates. Tangent data carried under a Hold or Linear tag is not written.
func ToRecord[T Component](t *track.Track) (Record[T], error) {
	if want, got := t.Kind(), kindOf[T](); want != got {
		return Record[T]{}, fmt.Errorf("%w: track %q holds %s, record carries %s", errs.ErrKindMismatch, t.Title(), want, got)
	}

	mode := t.Interpolation()
	withTans := mode.IsCurved() && t.Len() > 0 && t.Entry(0).HasTangents
	if mode.IsCurved() && !withTans {
		mode = format.Linear
	}

	r := Record[T]{
		Title:             t.Title(),
		InterpolationType: uint32(mode),
		GlobalSequenceID:  NoGlobalSequence,
		Keys:              make([]Key[T], 0, t.Len()),
	}
	if id, ok := t.GlobalSequenceID(); ok {
		r.GlobalSequenceID = int32(id)
	}

	for e := range t.All() {
		k := Key[T]{Time: int32(e.Time), Value: componentOf[T](e.Value)}
		if withTans {
			k.InTan = componentOf[T](e.InTan)
			k.OutTan = componentOf[T](e.OutTan)
		}
		r.Keys = append(r.Keys, k)
	}

	return r, nil
}

func kindOf[T Component]() format.ValueKind {
	var zero T
	switch any(zero).(type) {
	case float32:
		return format.KindScalar
	case uint32:
		return format.KindIntegerID
	case [3]float32:
		return format.KindVector3
	default:
		return format.KindQuaternion
	}
}

func valueOf[T Component](c T) track.Value {
	switch v := any(c).(type) {
	case float32:
		return track.Scalar(float64(v))
	case uint32:
		return track.IntegerID(int(v))
	case [3]float32:
		return track.Vector(float64(v[0]), float64(v[1]), float64(v[2]))
	case [4]float32:
		return track.Quaternion(float64(v[0]), float64(v[1]), float64(v[2]), float64(v[3]))
	}

	panic(fmt.Sprintf("unsupported component %T", c))
}

func componentOf[T Component](v track.Value) T {
	var out T
	switch p := any(&out).(type) {
	case *float32:
		*p = float32(v.AsScalar())
	case *uint32:
		*p = uint32(v.AsIntegerID())
	case *[3]float32:
		vec := v.AsVector()
		*p = [3]float32{float32(vec[0]), float32(vec[1]), float32(vec[2])}
	case *[4]float32:
		q := v.AsQuaternion()
		*p = [4]float32{float32(q.V[0]), float32(q.V[1]), float32(q.V[2]), float32(q.W)}
	}

	return out
}
