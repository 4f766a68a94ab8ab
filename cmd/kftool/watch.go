package main

import (
	"context"
	"io"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"
)

const watchDebounce = 100 * time.Millisecond

// watchFile samples path once, then again after every change until ctx is done.
//
// The parent directory is watched rather than the file, so editors that save by
// renaming a temporary file over it are still seen.
func watchFile(ctx context.Context, w io.Writer, path string, cfg *Config) error {
	path = filepath.Clean(path)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return err
	}

	resample := func() {
		if err := sampleFile(ctx, w, path, cfg); err != nil {
			log.WithError(err).WithField("file", path).Warn("sample failed")
		}
	}

	log.WithField("file", path).Info("watching")
	resample()

	var (
		timer   *time.Timer
		timerCh <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			log.WithField("file", path).Info("watch stopped")

			return nil

		case <-timerCh:
			timerCh = nil
			resample()

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != path || !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}

			log.WithFields(log.Fields{"file": path, "op": ev.Op.String()}).Debug("change detected")
			if timer == nil {
				timer = time.NewTimer(watchDebounce)
			} else {
				timer.Reset(watchDebounce)
			}
			timerCh = timer.C

		case werr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.WithError(werr).Error("watcher error")
		}
	}
}
