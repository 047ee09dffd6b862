package app

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watch refreshes the pipeline whenever one of the configured data
// files is written. Parent directories are watched, not the files
// themselves: editors and exporters replace files atomically, which
// breaks a direct file watch. Rapid event bursts are coalesced by the
// configured debounce interval.
func (a *App) watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	watched := make(map[string]struct{})
	targets := make(map[string]struct{})
	for _, path := range append(append([]string{}, a.cfg.Data.CardsPaths...), a.cfg.Data.ActivityPaths...) {
		abs, err := filepath.Abs(path)
		if err != nil {
			continue
		}
		targets[abs] = struct{}{}
		dir := filepath.Dir(abs)
		if _, ok := watched[dir]; ok {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			a.log.Warn("cannot watch directory",
				slog.String("dir", dir),
				slog.String("error", err.Error()))
			continue
		}
		watched[dir] = struct{}{}
	}
	if len(watched) == 0 {
		return fmt.Errorf("no watchable directories among configured data paths")
	}
	a.log.Info("watching for data changes", slog.Int("directories", len(watched)))

	debounce := a.cfg.Refresh.WatchDebounce
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}
	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	pending := false

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil {
				continue
			}
			if _, ok := targets[abs]; !ok {
				continue
			}
			if pending {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
			}
			timer.Reset(debounce)
			pending = true

		case <-timer.C:
			pending = false
			a.log.Info("data change detected, refreshing")
			if err := a.Refresh(); err != nil {
				a.log.Error("refresh after change failed", slog.String("error", err.Error()))
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			a.log.Warn("watcher error", slog.String("error", err.Error()))
		}
	}
}
