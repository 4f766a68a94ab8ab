package track

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/arloliu/keyframe/errs"
	"github.com/arloliu/keyframe/format"
)

// Value is a single keyframe value or tangent.
//
// It is a tagged variant: exactly one payload is meaningful, selected by Kind.
// Values are immutable and safe to share between tracks; accessors panic with a
// *KindMismatchError when asked for a payload of another kind.
type Value struct {
	kind   format.ValueKind
	scalar float64
	vec    mgl64.Vec3
	quat   mgl64.Quat
	id     int
}

// Scalar creates a KindScalar value.
func Scalar(v float64) Value {
	return Value{kind: format.KindScalar, scalar: v}
}

// Vector creates a KindVector3 value from its components.
func Vector(x, y, z float64) Value {
	return Value{kind: format.KindVector3, vec: mgl64.Vec3{x, y, z}}
}

// VectorOf creates a KindVector3 value from an mgl64 vector.
func VectorOf(v mgl64.Vec3) Value {
	return Value{kind: format.KindVector3, vec: v}
}

// Quaternion creates a KindQuaternion value from components in x, y, z, w order,
// the order used by textual and binary track data.
func Quaternion(x, y, z, w float64) Value {
	return Value{kind: format.KindQuaternion, quat: mgl64.Quat{W: w, V: mgl64.Vec3{x, y, z}}}
}

// QuaternionOf creates a KindQuaternion value from an mgl64 quaternion.
func QuaternionOf(q mgl64.Quat) Value {
	return Value{kind: format.KindQuaternion, quat: q}
}

// RotationAbout creates a KindQuaternion value rotating angle radians about axis.
func RotationAbout(angle float64, axis mgl64.Vec3) Value {
	return QuaternionOf(mgl64.QuatRotate(angle, axis.Normalize()))
}

// IntegerID creates a KindIntegerID value.
func IntegerID(id int) Value {
	return Value{kind: format.KindIntegerID, id: id}
}

// Zero returns the zero value of the given kind. Quaternions are zeroed, not identity.
func Zero(kind format.ValueKind) Value {
	return Value{kind: kind}
}

// Kind returns the kind of the value. The zero Value has no valid kind.
func (v Value) Kind() format.ValueKind {
	return v.kind
}

// IsValid reports whether the value carries one of the four known kinds.
func (v Value) IsValid() bool {
	switch v.kind {
	case format.KindScalar, format.KindVector3, format.KindQuaternion, format.KindIntegerID:
		return true
	default:
		return false
	}
}

// AsScalar returns the scalar payload.
func (v Value) AsScalar() float64 {
	v.mustBe(format.KindScalar)
	return v.scalar
}

// AsVector returns the vector payload.
func (v Value) AsVector() mgl64.Vec3 {
	v.mustBe(format.KindVector3)
	return v.vec
}

// AsQuaternion returns the quaternion payload.
func (v Value) AsQuaternion() mgl64.Quat {
	v.mustBe(format.KindQuaternion)
	return v.quat
}

// AsIntegerID returns the integer payload.
func (v Value) AsIntegerID() int {
	v.mustBe(format.KindIntegerID)
	return v.id
}

// Components returns the value as float components: one for scalars and integers,
// x, y, z for vectors, x, y, z, w for quaternions.
func (v Value) Components() []float64 {
	switch v.kind {
	case format.KindScalar:
		return []float64{v.scalar}
	case format.KindVector3:
		return []float64{v.vec[0], v.vec[1], v.vec[2]}
	case format.KindQuaternion:
		return []float64{v.quat.V[0], v.quat.V[1], v.quat.V[2], v.quat.W}
	case format.KindIntegerID:
		return []float64{float64(v.id)}
	default:
		return nil
	}
}

// Equal reports whether both values have the same kind and identical payloads.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}

	switch v.kind {
	case format.KindScalar:
		return v.scalar == o.scalar
	case format.KindVector3:
		return v.vec == o.vec
	case format.KindQuaternion:
		return v.quat.W == o.quat.W && v.quat.V == o.quat.V
	case format.KindIntegerID:
		return v.id == o.id
	default:
		return true
	}
}

// String renders the value the way keyframe blocks write it:
// "0.5", "{ 1, 2, 3 }", "{ x, y, z, w }" or "7".
func (v Value) String() string {
	switch v.kind {
	case format.KindScalar:
		return formatFloat(v.scalar)
	case format.KindIntegerID:
		return strconv.Itoa(v.id)
	case format.KindVector3, format.KindQuaternion:
		comps := v.Components()
		parts := make([]string, len(comps))
		for i, c := range comps {
			parts[i] = formatFloat(c)
		}

		return "{ " + strings.Join(parts, ", ") + " }"
	default:
		return "<invalid>"
	}
}

func (v Value) mustBe(kind format.ValueKind) {
	if v.kind != kind {
		panic(&KindMismatchError{Want: kind, Got: v.kind})
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// KindMismatchError is the panic value raised when a value of the wrong kind
// reaches a track or accessor. It unwraps to errs.ErrKindMismatch.
type KindMismatchError struct {
	Track string
	Want  format.ValueKind
	Got   format.ValueKind
}

func (e *KindMismatchError) Error() string {
	if e.Track == "" {
		return fmt.Sprintf("%s: want %s, got %s", errs.ErrKindMismatch, e.Want, e.Got)
	}

	return fmt.Sprintf("%s: track %q wants %s, got %s", errs.ErrKindMismatch, e.Track, e.Want, e.Got)
}

func (e *KindMismatchError) Unwrap() error {
	return errs.ErrKindMismatch
}
