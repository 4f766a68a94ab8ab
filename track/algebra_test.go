package track

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/keyframe/errs"
	"github.com/arloliu/keyframe/format"
)

func hermiteTrack(pairs ...float64) *Track {
	t := New("Alpha", "Hermite")
	for i := 0; i+1 < len(pairs); i += 2 {
		v := Scalar(pairs[i+1])
		t.AddEntryWithTangents(int(pairs[i]), v, Scalar(-pairs[i+1]), Scalar(2*pairs[i+1]))
	}

	return t
}

func TestCopyFrom(t *testing.T) {
	t.Run("verbatim append", func(t *testing.T) {
		dst := scalarTrack(format.Linear, 50, 5)
		src := scalarTrack(format.Linear, 10, 1, 0, 0)

		require.NoError(t, dst.CopyFrom(src))
		require.Equal(t, []int{50, 10, 0}, dst.Times())
		require.Equal(t, src.Entries(), dst.Entries()[1:])
	})

	t.Run("tangents on both sides", func(t *testing.T) {
		dst := hermiteTrack(0, 1)
		src := hermiteTrack(10, 2, 20, 3)

		require.NoError(t, dst.CopyFrom(src))
		require.Equal(t, 3, dst.Len())
		require.Equal(t, -3.0, dst.InTan(2).AsScalar())
		require.Equal(t, 4.0, dst.OutTan(1).AsScalar())
	})

	t.Run("downgrade to match source", func(t *testing.T) {
		dst := hermiteTrack(0, 1)
		src := scalarTrack(format.Linear, 10, 2)

		err := dst.CopyFrom(src)
		require.ErrorIs(t, err, errs.ErrTangentsDiscarded)
		require.Equal(t, []int{0, 10}, dst.Times())
		require.Equal(t, []string{"Linear"}, dst.Tags())
		require.False(t, dst.HasTangents())
	})

	t.Run("kind mismatch panics", func(t *testing.T) {
		require.Panics(t, func() { _ = New("Alpha").CopyFrom(New("Translation")) })
	})
}

func TestCopyRange(t *testing.T) {
	t.Run("remaps and sorts", func(t *testing.T) {
		src := scalarTrack(format.Linear, 0, 1, 50, 2, 100, 3, 150, 4)
		dst := scalarTrack(format.Linear, 0, 9)

		require.NoError(t, dst.CopyRange(src, 0, 100, 200, 300))
		require.Equal(t, []int{0, 200, 250, 300}, dst.Times())
		require.Equal(t, 2.0, dst.Value(2).AsScalar())
	})

	t.Run("no matches leaves the track alone", func(t *testing.T) {
		src := scalarTrack(format.Linear, 0, 1)
		dst := hermiteTrack(0, 1)

		require.NoError(t, dst.CopyRange(src, 10, 20, 0, 10))
		require.True(t, dst.HasTangents())
		require.Equal(t, 1, dst.Len())
	})

	t.Run("copies tangents into an empty curved track", func(t *testing.T) {
		src := hermiteTrack(0, 1, 10, 2)
		dst := NewEmptyFrom(src)

		require.NoError(t, dst.CopyRange(src, 0, 10, 100, 120))
		require.Equal(t, []int{100, 120}, dst.Times())
		require.Equal(t, 4.0, dst.OutTan(1).AsScalar())
	})

	t.Run("downgrades when source lacks tangents", func(t *testing.T) {
		src := scalarTrack(format.Linear, 0, 1)
		dst := hermiteTrack(50, 2)

		require.ErrorIs(t, dst.CopyRange(src, 0, 0, 10, 10), errs.ErrTangentsDiscarded)
		require.Equal(t, []int{10, 50}, dst.Times())
		require.False(t, dst.HasTangents())
	})

	t.Run("self copy reads the original keyframes only", func(t *testing.T) {
		tr := scalarTrack(format.Linear, 0, 1, 10, 2)

		require.NoError(t, tr.CopyRange(tr, 0, 10, 20, 30))
		require.Equal(t, []int{0, 10, 20, 30}, tr.Times())
	})

	t.Run("zero-width source range", func(t *testing.T) {
		src := scalarTrack(format.Linear, 5, 1)
		dst := New("Alpha", "Linear")

		require.NoError(t, dst.CopyRange(src, 5, 5, 40, 80))
		require.Equal(t, []int{40}, dst.Times())
	})
}

func TestTimeScale(t *testing.T) {
	tr := scalarTrack(format.Linear, 50, 1, 150, 2, -10, 3)
	tr.TimeScale(0, 100, 0, 200)

	require.Equal(t, []int{-10, 100, 150}, tr.Times())
	require.Equal(t, 1.0, tr.Value(1).AsScalar())
}

func TestTimeScaleTruncates(t *testing.T) {
	tr := scalarTrack(format.Linear, 1, 1)
	tr.TimeScale(0, 3, 0, 2)

	require.Equal(t, []int{0}, tr.Times())
}

func TestDeleteAnim(t *testing.T) {
	t.Run("removes the inclusive range", func(t *testing.T) {
		tr := scalarTrack(format.Linear, 0, 0, 10, 1, 20, 2, 30, 3)
		require.NoError(t, tr.DeleteAnim(Range{10, 20}))
		require.Equal(t, []int{0, 30}, tr.Times())
	})

	t.Run("refused on a global sequence", func(t *testing.T) {
		tr := scalarTrack(format.Linear, 0, 0, 10, 1)
		tr.SetGlobalSequenceID(2)

		err := tr.DeleteAnim(Range{0, 10})
		require.ErrorIs(t, err, errs.ErrGlobalSequenceLocked)
		require.Equal(t, []int{0, 10}, tr.Times())
	})
}

func TestLinearize(t *testing.T) {
	tr := hermiteTrack(0, 1, 10, 2)

	require.True(t, tr.Linearize())
	require.Equal(t, format.Linear, tr.Interpolation())
	require.False(t, tr.HasTangents())
	require.False(t, tr.Linearize())
}

func TestMirror(t *testing.T) {
	t.Run("translation", func(t *testing.T) {
		tr := New("Translation", "Hermite")
		tr.AddEntryWithTangents(0, Vector(1, 2, 3), Vector(4, 5, 6), Vector(7, 8, 9))
		tr.Mirror(0)

		require.Equal(t, mgl64.Vec3{-1, 2, 3}, tr.Value(0).AsVector())
		require.Equal(t, mgl64.Vec3{-4, 5, 6}, tr.InTan(0).AsVector())
		require.Equal(t, mgl64.Vec3{-7, 8, 9}, tr.OutTan(0).AsVector())
	})

	t.Run("rotation in the mirror plane reverses", func(t *testing.T) {
		z := mgl64.Vec3{0, 0, 1}
		tr := New("Rotation", "Linear")
		tr.AddEntry(0, RotationAbout(math.Pi/3, z))
		tr.Mirror(0)

		requireQuatInDelta(t, RotationAbout(-math.Pi/3, z), tr.Value(0))
	})

	t.Run("rotation about the mirror normal is kept", func(t *testing.T) {
		axes := []mgl64.Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
		for axis, normal := range axes {
			tr := New("Rotation", "Linear")
			tr.AddEntry(0, RotationAbout(math.Pi/3, normal))
			for other, dir := range axes {
				if other != axis {
					tr.AddEntry(10*(other+1), RotationAbout(math.Pi/5, dir))
				}
			}
			tr.Mirror(axis)

			requireQuatInDelta(t, RotationAbout(math.Pi/3, normal), tr.Value(0))
			for i := 1; i < tr.Len(); i++ {
				dir := axes[tr.Time(i)/10-1]
				requireQuatInDelta(t, RotationAbout(-math.Pi/5, dir), tr.Value(i))
			}
		}
	})

	t.Run("other tracks untouched", func(t *testing.T) {
		tr := New("Scaling", "Linear")
		tr.AddEntry(0, Vector(1, 2, 3))
		tr.Mirror(1)

		require.Equal(t, mgl64.Vec3{1, 2, 3}, tr.Value(0).AsVector())
	})

	t.Run("invalid axis panics", func(t *testing.T) {
		require.Panics(t, func() { New("Translation").Mirror(3) })
	})
}
