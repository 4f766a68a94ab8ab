package main

import (
	"context"
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/arloliu/keyframe/ingest"
	"github.com/arloliu/keyframe/track"
)

// point is one sampled value.
type point struct {
	time  int
	value track.Value
}

// series holds the samples of one track.
type series struct {
	title  string
	points []point
}

// readTracks parses a keyframe text file. Blocks that fail to parse are logged
// and skipped by the parser; only an unreadable file is an error.
func readTracks(path string) ([]*track.Track, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tracks, err := ingest.ReadAll(f)
	if err != nil && len(tracks) == 0 {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return tracks, nil
}

// sampleTracks evaluates every track from the animation start to its end in
// steps of cfg.Sample.Step, on at most cfg.Sample.Workers goroutines.
//
// Tracks are sorted and their global sequences resolved before sampling; each
// track is then read by a single goroutine only.
func sampleTracks(ctx context.Context, tracks []*track.Track, cfg *Config) ([]series, error) {
	resolver := cfg.Resolver()
	for _, t := range tracks {
		t.Sort()
		if err := t.ResolveGlobalSequence(resolver); err != nil {
			log.WithError(err).WithField("track", t.Title()).Warn("sampling on the animation timeline")
		}
	}

	anim := cfg.Animation.Range()
	out := make([]series, len(tracks))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Sample.Workers)
	for i, t := range tracks {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}

			s := series{title: t.Title()}
			for tm := anim.Start; tm <= anim.End; tm += cfg.Sample.Step {
				v, ok := t.Sample(anim, tm, tm)
				if !ok {
					break
				}
				s.points = append(s.points, point{time: tm, value: v})
			}
			out[i] = s

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}

func writeSeries(w io.Writer, all []series) error {
	for _, s := range all {
		for _, p := range s.points {
			if _, err := fmt.Fprintf(w, "%s\t%d\t%s\n", s.title, p.time, p.value); err != nil {
				return err
			}
		}
	}

	return nil
}

// sampleFile reads, samples and prints one keyframe file.
func sampleFile(ctx context.Context, w io.Writer, path string, cfg *Config) error {
	tracks, err := readTracks(path)
	if err != nil {
		return err
	}

	all, err := sampleTracks(ctx, tracks, cfg)
	if err != nil {
		return err
	}

	log.WithFields(log.Fields{"file": path, "tracks": len(all)}).Debug("sampled")

	return writeSeries(w, all)
}
