package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const debounce = 100 * time.Millisecond

// Watch calls regenerate once a burst of changes to the catalog file has been
// quiet for the debounce interval, until ctx is cancelled. The directory is
// watched rather than the file so editors that replace the file on save keep
// triggering events.
func Watch(ctx context.Context, catalog string, logger *slog.Logger, regenerate func() error) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("ecsgen: create watcher: %w", err)
	}
	defer w.Close()

	dir := filepath.Dir(catalog)
	if err := w.Add(dir); err != nil {
		return fmt.Errorf("ecsgen: watch %s: %w", dir, err)
	}
	target := filepath.Clean(catalog)
	logger.Info("watching catalog", "path", target)

	// Stopped until the first matching event arrives.
	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			timer.Reset(debounce)

		case <-timer.C:
			if err := regenerate(); err != nil {
				logger.Error("regenerate failed", "path", target, "error", err)
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", "error", err)
		}
	}
}
