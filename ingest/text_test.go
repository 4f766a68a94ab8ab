package ingest

import (
	"bufio"
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/keyframe/errs"
	"github.com/arloliu/keyframe/format"
	"github.com/arloliu/keyframe/track"
)

const translationBlock = `	Translation 2 {
		Hermite,
		GlobalSeqId 3,
		0: { 0, 0, 0 },
			InTan { 0, 0, 0.5 },
			OutTan { 0, 0, -0.5 },
		100: { 1.5, -2, 30 },
			InTan { 1, 1, 1 },
			OutTan { 2, 2, 2 },
	}
`

const alphaBlock = `Alpha 3 {
	DontInterp,
	0: 1,
	10: 0.25,
	20: 0,
}
`

func lines(s string) []string {
	return strings.Split(strings.TrimRight(s, "\n"), "\n")
}

func TestParseBlock(t *testing.T) {
	tr, err := ParseBlock(lines(translationBlock))
	require.NoError(t, err)

	require.Equal(t, "Translation", tr.Title())
	require.Equal(t, format.KindVector3, tr.Kind())
	require.Equal(t, []string{"Hermite"}, tr.Tags())
	require.Equal(t, []int{0, 100}, tr.Times())
	require.Equal(t, mgl64.Vec3{1.5, -2, 30}, tr.Value(1).AsVector())
	require.Equal(t, mgl64.Vec3{0, 0, -0.5}, tr.OutTan(0).AsVector())

	id, ok := tr.GlobalSequenceID()
	require.True(t, ok)
	require.Equal(t, 3, id)
}

func TestParseBlockKinds(t *testing.T) {
	t.Run("quaternion", func(t *testing.T) {
		tr, err := ParseBlock(lines("Rotation 1 {\n\tLinear,\n\t5: { 0, 0, 0.7071, 0.7071 },\n}"))
		require.NoError(t, err)
		require.Equal(t, []float64{0, 0, 0.7071, 0.7071}, tr.Value(0).Components())
	})

	t.Run("texture id", func(t *testing.T) {
		tr, err := ParseBlock(lines("TextureID 2 {\n\tDontInterp,\n\t0: 1,\n\t50: 4,\n}"))
		require.NoError(t, err)
		require.Equal(t, 4, tr.Value(1).AsIntegerID())
	})

	t.Run("color", func(t *testing.T) {
		tr, err := ParseBlock(lines("AmbColor 1 {\n\tLinear,\n\t0: { 1, 0.5, 0 },\n}"))
		require.NoError(t, err)
		require.Equal(t, format.KindVector3, tr.Kind())
	})

	t.Run("no tags", func(t *testing.T) {
		tr, err := ParseBlock(lines("Visibility 1 {\n\t0: 1,\n}"))
		require.NoError(t, err)
		require.Empty(t, tr.Tags())
		require.Equal(t, format.DontInterp, tr.Interpolation())
	})

	t.Run("extra flags are preserved in order", func(t *testing.T) {
		tr, err := ParseBlock(lines("Alpha 0 {\n\tStatic,\n\tLinear,\n}"))
		require.NoError(t, err)
		require.Equal(t, []string{"Static", "Linear"}, tr.Tags())
		require.Equal(t, format.Linear, tr.Interpolation())
	})
}

func TestParseBlockErrors(t *testing.T) {
	tests := []struct {
		name  string
		block string
		want  error
	}{
		{"missing brace", "Alpha 1\n\t0: 1,\n}", errs.ErrUnrecognizedTitle},
		{"empty header", "{\n}", errs.ErrUnrecognizedTitle},
		{"bad count", "Alpha x {\n}", errs.ErrMalformedEntry},
		{"bad time", "Alpha 1 {\n\tabc: 1,\n}", errs.ErrMalformedEntry},
		{"bad scalar", "Alpha 1 {\n\t0: one,\n}", errs.ErrMalformedEntry},
		{"short vector", "Translation 1 {\n\t0: { 1, 2 },\n}", errs.ErrMalformedEntry},
		{"unbraced vector", "Scaling 1 {\n\t0: 1, 2, 3,\n}", errs.ErrMalformedEntry},
		{"duplicate global sequence", "Alpha 0 {\n\tGlobalSeqId 1,\n\tGlobalSeqId 2,\n}", errs.ErrDuplicateGlobalSequence},
		{"count mismatch", "Alpha 2 {\n\t0: 1,\n}", errs.ErrEntryCountMismatch},
		{"tangent first", "Alpha 1 {\n\tInTan 0,\n\t0: 1,\n}", errs.ErrTangentWithoutEntry},
		{"tangent after flag", "Alpha 1 {\n\t0: 1,\n\tHermite,\n\tInTan 0,\n}", errs.ErrTangentWithoutEntry},
		{"partial tangents", "Alpha 2 {\n\tHermite,\n\t0: 1,\n\t\tInTan 0,\n\t\tOutTan 0,\n\t10: 1,\n}", errs.ErrIncompleteTangents},
		{"missing out tangent", "Alpha 1 {\n\tHermite,\n\t0: 1,\n\t\tInTan 0,\n}", errs.ErrIncompleteTangents},
		{"repeated out tangent", "Alpha 1 {\n\t0: 1,\n\t\tInTan 0,\n\t\tOutTan 0,\n\t\tOutTan 0,\n}", errs.ErrMalformedEntry},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseBlock(lines(tt.block))
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestReadBlock(t *testing.T) {
	r := bufio.NewReader(strings.NewReader("\n\n" + alphaBlock + "\n" + translationBlock))

	first, err := ReadBlock(r)
	require.NoError(t, err)
	require.Equal(t, "Alpha", first.Title())

	second, err := ReadBlock(r)
	require.NoError(t, err)
	require.Equal(t, "Translation", second.Title())

	_, err = ReadBlock(r)
	require.ErrorIs(t, err, io.EOF)
}

func TestReadBlockSkipsComments(t *testing.T) {
	input := "// Bone_Root\n" + alphaBlock + "\n// trailing note\n"
	r := bufio.NewReader(strings.NewReader(input))

	tr, err := ReadBlock(r)
	require.NoError(t, err)
	require.Equal(t, "Alpha", tr.Title())

	_, err = ReadBlock(r)
	require.ErrorIs(t, err, io.EOF)

	inner := []string{"Alpha 1 {", "\t// hidden after the fade", "\t0: 1,", "}"}
	tr, err = ParseBlock(inner)
	require.NoError(t, err)
	require.Equal(t, 1, tr.Len())
}

func TestReadBlockUnterminated(t *testing.T) {
	r := bufio.NewReader(strings.NewReader("Alpha 1 {\n\t0: 1,\n"))
	_, err := ReadBlock(r)
	require.ErrorIs(t, err, errs.ErrUnterminatedBlock)
}

func TestReadAllSkipsBadBlocks(t *testing.T) {
	input := alphaBlock + "Alpha 5 {\n\t0: 1,\n}\n" + translationBlock

	tracks, err := ReadAll(strings.NewReader(input))
	require.ErrorIs(t, err, errs.ErrEntryCountMismatch)
	require.Len(t, tracks, 2)
	require.Equal(t, "Alpha", tracks[0].Title())
	require.Equal(t, "Translation", tracks[1].Title())
}

func TestReadAllEmpty(t *testing.T) {
	tracks, err := ReadAll(strings.NewReader("\n\n"))
	require.NoError(t, err)
	require.Empty(t, tracks)
}

func TestWriteBlock(t *testing.T) {
	tr, err := ParseBlock(lines(translationBlock))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteBlock(&buf, tr, 1))
	require.Equal(t, translationBlock, buf.String())
}

func TestWriteBlockSortsAndSkipsEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteBlock(&buf, track.New("Alpha"), 0))
	require.Zero(t, buf.Len())

	tr := track.New("Alpha", "Linear")
	tr.AddEntry(10, track.Scalar(0))
	tr.AddEntry(0, track.Scalar(1))
	require.NoError(t, WriteBlock(&buf, tr, 0))
	require.Equal(t, "Alpha 2 {\n\tLinear,\n\t0: 1,\n\t10: 0,\n}\n", buf.String())
}

func TestTextRoundTrip(t *testing.T) {
	for _, block := range []string{alphaBlock, translationBlock} {
		first, err := ParseBlock(lines(block))
		require.NoError(t, err)

		var buf bytes.Buffer
		require.NoError(t, WriteBlock(&buf, first, 0))

		second, err := ReadBlock(bufio.NewReader(&buf))
		require.NoError(t, err)
		require.True(t, first.Equal(second))
	}
}
