package mdx

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/keyframe/errs"
	"github.com/arloliu/keyframe/format"
	"github.com/arloliu/keyframe/track"
)

func le32(v uint32) []byte { return binary.LittleEndian.AppendUint32(nil, v) }

func f32(f float32) []byte { return le32(math.Float32bits(f)) }

func concat(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}

	return out
}

func TestTagTable(t *testing.T) {
	tests := []struct {
		title, tag string
	}{
		{"Alpha", "KGAO"},
		{"Translation", "KGTR"},
		{"TextureID", "KMTF"},
		{"Visibility", "KATV"},
		{"AmbColor", "KLBC"},
		{"HeightBelow", "KRHB"},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			tag, ok := TagFor(tt.title)
			require.True(t, ok)
			require.Equal(t, tt.tag, tag)
		})
	}

	title, ok := TitleFor("KMTA")
	require.True(t, ok)
	require.Equal(t, "Alpha", title)

	_, ok = TagFor("Nope")
	require.False(t, ok)
	_, ok = TitleFor("KCRL")
	require.False(t, ok)
}

func TestDecodeScalarLinear(t *testing.T) {
	data := concat(
		[]byte("KGAO"), le32(2), le32(1), le32(math.MaxUint32),
		le32(0), f32(1),
		le32(100), f32(0.5),
		[]byte("trailing"),
	)

	tr, n, err := DecodeTrack(data)
	require.NoError(t, err)
	require.Equal(t, len(data)-len("trailing"), n)
	require.Equal(t, "Alpha", tr.Title())
	require.Equal(t, format.Linear, tr.Interpolation())
	require.False(t, tr.HasGlobalSequence())
	require.Equal(t, []int{0, 100}, tr.Times())
	require.Equal(t, 0.5, tr.Value(1).AsScalar())
}

func TestDecodeRotationHermite(t *testing.T) {
	quat := func(x, y, z, w float32) []byte { return concat(f32(x), f32(y), f32(z), f32(w)) }
	data := concat(
		[]byte("KGRT"), le32(1), le32(2), le32(5),
		le32(33), quat(0, 0, 0, 1), quat(0, 0, 0.5, 1), quat(0, 0, -0.5, 1),
	)

	tr, n, err := DecodeTrack(data)
	require.NoError(t, err)
	require.Equal(t, len(data), n)
	require.Equal(t, format.KindQuaternion, tr.Kind())
	require.True(t, tr.HasTangents())
	require.Equal(t, []float64{0, 0, -0.5, 1}, tr.OutTan(0).Components())

	id, ok := tr.GlobalSequenceID()
	require.True(t, ok)
	require.Equal(t, 5, id)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"short header", []byte("KGAO"), errs.ErrTruncatedChunk},
		{"unknown tag", concat([]byte("XXXX"), le32(0), le32(0), le32(0)), errs.ErrUnknownChunkTag},
		{"missing keys", concat([]byte("KGAO"), le32(3), le32(0), le32(0), le32(0), f32(1)), errs.ErrTruncatedChunk},
		{"huge count", concat([]byte("KGTR"), le32(math.MaxUint32), le32(0), le32(0)), errs.ErrTruncatedChunk},
		{"bad interpolation", concat([]byte("KGAO"), le32(0), le32(7), le32(0)), errs.ErrInvalidInterpolation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := DecodeTrack(tt.data)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	translation := track.New("Translation", "Bezier")
	translation.SetGlobalSequenceID(2)
	translation.AddEntryWithTangents(0, track.Vector(0, 0, 0), track.Vector(0, 0, 1), track.Vector(0, 1, 0))
	translation.AddEntryWithTangents(50, track.Vector(1.5, -2, 8), track.Vector(1, 1, 1), track.Vector(2, 2, 2))

	texture := track.New("TextureID", "DontInterp")
	texture.AddEntry(0, track.IntegerID(0))
	texture.AddEntry(10, track.IntegerID(3))

	alpha := track.New("Alpha", "Linear")
	alpha.AddEntry(0, track.Scalar(0.25))

	rotation := track.New("Rotation", "Linear")
	rotation.AddEntry(0, track.Quaternion(0, 0, 0, 1))
	rotation.AddEntry(20, track.QuaternionOf(mgl64.Quat{W: 0.5, V: mgl64.Vec3{0.5, 0.5, 0.5}}))

	for _, tr := range []*track.Track{translation, texture, alpha, rotation} {
		t.Run(tr.Title(), func(t *testing.T) {
			tag, ok := TagFor(tr.Title())
			require.True(t, ok)

			data, err := EncodeTrack(tag, tr)
			require.NoError(t, err)
			require.Equal(t, tag, string(data[:TagSize]))

			got, n, err := DecodeTrack(data)
			require.NoError(t, err)
			require.Equal(t, len(data), n)
			require.True(t, tr.Equal(got), "decoded %v", got.Entries())
		})
	}
}

func TestAppendTrackConcatenates(t *testing.T) {
	a := track.New("Alpha", "Linear")
	a.AddEntry(0, track.Scalar(1))
	v := track.New("Visibility", "DontInterp")
	v.AddEntry(0, track.Scalar(0))

	buf, err := AppendTrack(nil, "KMTA", a)
	require.NoError(t, err)
	buf, err = AppendTrack(buf, "KLAV", v)
	require.NoError(t, err)

	first, n, err := DecodeTrack(buf)
	require.NoError(t, err)
	require.Equal(t, "Alpha", first.Title())

	second, _, err := DecodeTrack(buf[n:])
	require.NoError(t, err)
	require.Equal(t, "Visibility", second.Title())
}

func TestEncodeErrors(t *testing.T) {
	_, err := EncodeTrack("ABCD", track.New("Alpha"))
	require.ErrorIs(t, err, errs.ErrUnknownChunkTag)

	_, err = EncodeTrack("KGTR", track.New("Alpha"))
	require.ErrorIs(t, err, errs.ErrUnknownChunkTag)
}
