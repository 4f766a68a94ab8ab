package track

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// slerpEpsilon is the 1-cos(angle) below which slerp falls back to a linear blend.
const slerpEpsilon = 1e-6

func lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// hermite evaluates the cubic Hermite segment from a to b with outgoing
// derivative aOut at a and incoming derivative bIn at b.
func hermite(a, aOut, bIn, b, t float64) float64 {
	t2 := t * t
	f1 := t2*(2*t-3) + 1
	f2 := t2*(t-2) + t
	f3 := t2 * (t - 1)
	f4 := t2 * (3 - 2*t)

	return a*f1 + aOut*f2 + bIn*f3 + b*f4
}

// bezier evaluates the cubic Bezier segment with control points a, aOut, bIn, b.
func bezier(a, aOut, bIn, b, t float64) float64 {
	inv := 1 - t
	f1 := inv * inv * inv
	f2 := 3 * t * inv * inv
	f3 := 3 * t * t * inv
	f4 := t * t * t

	return a*f1 + aOut*f2 + bIn*f3 + b*f4
}

func lerpVec(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	return mgl64.Vec3{lerp(a[0], b[0], t), lerp(a[1], b[1], t), lerp(a[2], b[2], t)}
}

func cubicVec(fn func(a, aOut, bIn, b, t float64) float64, a, aOut, bIn, b mgl64.Vec3, t float64) mgl64.Vec3 {
	return mgl64.Vec3{
		fn(a[0], aOut[0], bIn[0], b[0], t),
		fn(a[1], aOut[1], bIn[1], b[1], t),
		fn(a[2], aOut[2], bIn[2], b[2], t),
	}
}

// slerp interpolates along the shorter great arc between a and b.
func slerp(a, b mgl64.Quat, t float64) mgl64.Quat {
	cosom := a.Dot(b)
	if cosom < 0 {
		cosom = -cosom
		b = b.Scale(-1)
	}

	s0, s1 := 1-t, t
	if 1-cosom > slerpEpsilon {
		omega := math.Acos(cosom)
		sinom := math.Sin(omega)
		s0 = math.Sin((1-t)*omega) / sinom
		s1 = math.Sin(t*omega) / sinom
	}

	return a.Scale(s0).Add(b.Scale(s1))
}

// squad is the spherical quadrangle blend of a and b with control rotations aOut and bIn.
func squad(a, aOut, bIn, b mgl64.Quat, t float64) mgl64.Quat {
	return slerp(slerp(a, b, t), slerp(aOut, bIn, t), 2*t*(1-t))
}
