package logscan

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"e2mcheck/pkg/logging"

	"github.com/fsnotify/fsnotify"
)

// ErrNotFound is returned by Wait when ctx ends before every matcher was seen.
var ErrNotFound = errors.New("log messages not found")

// pollInterval is the fallback rescan period when no file events arrive.
const pollInterval = 500 * time.Millisecond

// Wait rescans path whenever it changes until all matchers are satisfied or
// ctx ends. Every rescan reads the file from the start. The file does not
// need to exist yet; its directory does.
func Wait(ctx context.Context, path string, matchers ...LineMatcher) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		found, err := MatchFile(path, matchers...)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
		if found {
			logging.Info(subsystem, "Found all %d expected messages in %s", len(matchers), path)
			return nil
		}

		if err := waitForChange(ctx, watcher, path, ticker.C); err != nil {
			return fmt.Errorf("%w in %s: %w", ErrNotFound, path, err)
		}
	}
}

// waitForChange blocks until path is written or created, the ticker fires or
// ctx ends. Events for other files in the directory are ignored.
func waitForChange(ctx context.Context, watcher *fsnotify.Watcher, path string, tick <-chan time.Time) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return errors.New("file watcher closed")
			}
			if filepath.Clean(event.Name) != filepath.Clean(path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			logging.Debug(subsystem, "%s changed (%s), rescanning", path, event.Op)
			return nil
		case err, ok := <-watcher.Errors:
			if !ok {
				return errors.New("file watcher closed")
			}
			logging.Warn(subsystem, "File watcher error: %v", err)
		case <-tick:
			return nil
		}
	}
}
