package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/vdobler/paspale/internal/logging"
)

// settle is how long watch waits for further events before rendering.
// Editors often write a file in several steps.
const settle = 200 * time.Millisecond

// watch calls render once and then again after every change of one of
// paths, until ctx is done. Render errors are logged and do not stop
// watching; an error of the first render does.
func watch(ctx context.Context, paths []string, render func() error) error {
	if err := render(); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// Directories are watched so that files replaced by rename are seen.
	files := make(map[string]bool)
	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		files[abs] = true
		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		dirs[dir] = true
	}
	logging.Info().Add(logging.Str("files", fmt.Sprint(paths))).Msg("watching")

	timer := time.NewTimer(settle)
	if !timer.Stop() {
		<-timer.C
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !files[filepath.Clean(event.Name)] {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			logging.Debug().Add(logging.Input(event.Name)).Add(logging.Str("op", event.Op.String())).Msg("changed")
			timer.Reset(settle)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logging.Warn().Add(logging.ErrorField(err)).Msg("watch error")
		case <-timer.C:
			if err := render(); err != nil {
				logging.Error().Add(logging.ErrorField(err)).Msg("render failed")
			}
		}
	}
}
