package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/keyframe/ingest"
	"github.com/arloliu/keyframe/track"
)

const walkText = "Translation 2 {\n" +
	"\tLinear,\n" +
	"\t0: { 0, 0, 0 },\n" +
	"\t100: { 10, 20, 30 },\n" +
	"}\n" +
	"Alpha 2 {\n" +
	"\tLinear,\n" +
	"\tGlobalSeqId 0,\n" +
	"\t0: 0,\n" +
	"\t10: 1,\n" +
	"}\n"

func parseWalk(t *testing.T) []*track.Track {
	t.Helper()

	tracks, err := ingest.ReadAll(strings.NewReader(walkText))
	require.NoError(t, err)
	require.Len(t, tracks, 2)

	return tracks
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func testConfig() *Config {
	cfg := NewDefaultConfig()
	cfg.Animation = AnimationConfig{Start: 0, End: 100}
	cfg.Sample = SampleConfig{Step: 50, Workers: 2}
	cfg.GlobalSequences = []int{20}

	return cfg
}

func TestSampleTracks(t *testing.T) {
	all, err := sampleTracks(context.Background(), parseWalk(t), testConfig())
	require.NoError(t, err)
	require.Len(t, all, 2)

	require.Equal(t, "Translation", all[0].title)
	require.Len(t, all[0].points, 3)
	require.InDeltaSlice(t, []float64{5, 10, 15}, all[0].points[1].value.Components(), 1e-9)

	// Alpha loops on a 20-tick global sequence: 0, 50 and 100 wrap to 0, 10 and 0.
	require.Equal(t, "Alpha", all[1].title)
	got := make([]float64, 0, len(all[1].points))
	for _, p := range all[1].points {
		got = append(got, p.value.AsScalar())
	}
	require.InDeltaSlice(t, []float64{0, 1, 0}, got, 1e-9)
}

func TestSampleTracks_UnresolvedGlobalSequence(t *testing.T) {
	cfg := testConfig()
	cfg.GlobalSequences = nil

	all, err := sampleTracks(context.Background(), parseWalk(t), cfg)
	require.NoError(t, err)
	// falls back to the animation timeline and holds the last key
	require.InDelta(t, 1.0, all[1].points[2].value.AsScalar(), 1e-9)
}

func TestSampleTracks_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := sampleTracks(ctx, parseWalk(t), testConfig())
	require.ErrorIs(t, err, context.Canceled)
}

func TestSampleFile(t *testing.T) {
	path := writeTemp(t, "walk.txt", walkText)

	var out bytes.Buffer
	require.NoError(t, sampleFile(context.Background(), &out, path, testConfig()))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 6)
	require.Equal(t, "Translation\t50\t{ 5, 10, 15 }", lines[1])
	require.Equal(t, "Alpha\t50\t1", lines[4])
}

func TestSampleFile_Unparseable(t *testing.T) {
	path := writeTemp(t, "broken.txt", "Translation 2 {\n\t0: { 0, 0 },\n}\n")

	err := sampleFile(context.Background(), &bytes.Buffer{}, path, testConfig())
	require.Error(t, err)
}

func TestConvertAndDump(t *testing.T) {
	cfg := testConfig()
	cfg.Bundle.Compression = "s2"

	data, err := convertTracks("Bone_Root", parseWalk(t), cfg)
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, dumpBundle(&out, data))

	want := "// Bone_Root\n" + walkText
	require.Equal(t, want, out.String())

	// dump output feeds back into the text reader
	back, err := ingest.ReadAll(strings.NewReader(out.String()))
	require.NoError(t, err)
	require.Len(t, back, 2)
	for i, tr := range parseWalk(t) {
		require.True(t, tr.Equal(back[i]), tr.Title())
	}
}

func TestConvertFile(t *testing.T) {
	in := writeTemp(t, "walk.txt", walkText)
	out := filepath.Join(t.TempDir(), "walk.kfb")

	require.NoError(t, convertFile(in, out, "walk", testConfig()))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	require.NoError(t, dumpBundle(&bytes.Buffer{}, data))
}

func TestConvertTracks_DuplicateTitle(t *testing.T) {
	tracks := parseWalk(t)
	_, err := convertTracks("Bone_Root", []*track.Track{tracks[0], tracks[0]}, testConfig())
	require.Error(t, err)
}

func TestWatchFile_StopsOnCancel(t *testing.T) {
	path := writeTemp(t, "walk.txt", walkText)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, watchFile(ctx, &bytes.Buffer{}, path, testConfig()))
}
