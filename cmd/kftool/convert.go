package main

import (
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/arloliu/keyframe/bundle"
	"github.com/arloliu/keyframe/ingest"
	"github.com/arloliu/keyframe/track"
)

// convertTracks packs tracks into a bundle under a single owner.
func convertTracks(owner string, tracks []*track.Track, cfg *Config) ([]byte, error) {
	enc, err := bundle.NewEncoder(bundle.WithCompression(cfg.Bundle.CompressionType()))
	if err != nil {
		return nil, err
	}
	defer enc.Release()

	for _, t := range tracks {
		if err := enc.Add(owner, t); err != nil {
			return nil, fmt.Errorf("add %s/%s: %w", owner, t.Title(), err)
		}
	}

	return enc.Finish()
}

func convertFile(in, out, owner string, cfg *Config) error {
	tracks, err := readTracks(in)
	if err != nil {
		return err
	}

	data, err := convertTracks(owner, tracks, cfg)
	if err != nil {
		return err
	}

	if err := os.WriteFile(out, data, 0o644); err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"in":          in,
		"out":         out,
		"tracks":      len(tracks),
		"bytes":       len(data),
		"compression": cfg.Bundle.Compression,
	}).Info("bundle written")

	return nil
}

// dumpBundle writes the tracks of a bundle as keyframe text. Each run of entries
// sharing an owner is introduced by a "// owner" comment line, so the output
// parses back with ingest.ReadAll.
func dumpBundle(w io.Writer, data []byte) error {
	b, err := bundle.Decode(data)
	if err != nil {
		return err
	}

	entries := b.Entries()
	for i, e := range entries {
		if i == 0 || entries[i-1].Owner != e.Owner {
			if _, err := fmt.Fprintf(w, "// %s\n", e.Owner); err != nil {
				return err
			}
		}

		if err := ingest.WriteBlock(w, e.Track, 0); err != nil {
			return err
		}
	}

	return nil
}
