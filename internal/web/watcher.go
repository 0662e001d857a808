package web

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// WatchTemplates starts an fsnotify watcher on the templates directory
// and re-parses the views after each change, until ctx is cancelled.
// Reloads are debounced because editors tend to emit several events per
// save. Intended for local development only.
func WatchTemplates(ctx context.Context, views *Views, dir string, logger *slog.Logger) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		logger.Warn("templates: watcher init failed", slog.String("error", err.Error()))
		return
	}
	defer w.Close()

	if err := w.Add(dir); err != nil {
		logger.Warn("templates: watch failed", slog.String("dir", dir), slog.String("error", err.Error()))
		return
	}

	logger.Info("templates: watching", slog.String("dir", dir))

	var reloadTimer *time.Timer
	var reloadCh <-chan time.Time

	scheduleReload := func() {
		if reloadTimer == nil {
			reloadTimer = time.NewTimer(200 * time.Millisecond)
			reloadCh = reloadTimer.C
		} else {
			reloadTimer.Reset(200 * time.Millisecond)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if reloadTimer != nil {
				reloadTimer.Stop()
			}
			logger.Info("templates: watcher stopped")
			return

		case <-reloadCh:
			if err := views.Reload(); err != nil {
				logger.Warn("templates: reload failed", slog.String("error", err.Error()))
			} else {
				logger.Debug("templates: reloaded")
			}

		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			if !strings.HasSuffix(ev.Name, ".html") {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0 {
				scheduleReload()
			}

		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			logger.Warn("templates: watcher error", slog.String("error", err.Error()))
		}
	}
}
