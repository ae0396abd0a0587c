package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/kbukum/fnkit/logger"
)

// watchDefinition calls onChange each time path is written or created,
// until ctx is done.
func watchDefinition(ctx context.Context, path string, log *logger.Logger, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	defer watcher.Close()

	// Editors often replace the file, so the directory is watched.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}
	log.Info("watching definition", logger.Fields("path", path))
	return watchLoop(ctx, watcher.Events, watcher.Errors, path, log, onChange)
}

func watchLoop(ctx context.Context, events <-chan fsnotify.Event, errs <-chan error, path string, log *logger.Logger, onChange func()) error {
	target := filepath.Clean(path)
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target || event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			onChange()

		case err, ok := <-errs:
			if !ok {
				return nil
			}
			log.Warn("watch error", logger.ErrorFields("watch", err))
		}
	}
}
