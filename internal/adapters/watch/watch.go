// Package watch waits for files written by external processes.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Waiter watches the parent directory of a file until it is written.
type Waiter struct {
	logger *slog.Logger
}

// NewWaiter creates a new file waiter.
func NewWaiter(logger *slog.Logger) *Waiter {
	return &Waiter{logger: logger}
}

// WaitForFile returns once path exists with content, or fails after timeout.
func (w *Waiter) WaitForFile(ctx context.Context, path string, timeout time.Duration) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer func() {
		_ = watcher.Close()
	}()

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	// The file may have been written before the watch was registered.
	if ready(path) {
		return nil
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	w.logger.DebugContext(ctx, "Waiting for file", "path", path, "timeout", timeout)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
			return fmt.Errorf("timed out after %s waiting for %s", timeout, path)
		case event, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("file watcher closed while waiting for %s", path)
			}
			if filepath.Clean(event.Name) != filepath.Clean(path) {
				continue
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if ready(path) {
				w.logger.DebugContext(ctx, "File is ready", "path", path)
				return nil
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("file watcher closed while waiting for %s", path)
			}
			w.logger.WarnContext(ctx, "File watcher error", "error", err)
		}
	}
}

func ready(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular() && info.Size() > 0
}
