package cli

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce lets editors finish writing before the file is read again.
var watchDebounce = 100 * time.Millisecond

// Watch calls fn once, then again after every change to the file at path,
// until ctx is done. The parent directory is watched because editors often
// replace files instead of writing them in place. Errors from fn are logged
// and do not stop the watch.
func Watch(ctx context.Context, path string, logger *slog.Logger, fn func(context.Context) error) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer w.Close()
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}

	run := func() {
		if err := fn(ctx); err != nil {
			logger.Error("watch iteration failed", "path", path, "err", err)
		}
	}
	run()

	var timer <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs || !ev.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
				continue
			}
			logger.Debug("change detected", "path", ev.Name, "op", ev.Op.String())
			timer = time.After(watchDebounce)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", "err", err)
		case <-timer:
			timer = nil
			run()
		}
	}
}
