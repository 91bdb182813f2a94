package server

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/matzehuels/relgraph/pkg/errors"
)

// watch reloads the graph whenever its file changes. The parent directory
// is watched so editors that save by renaming a temp file are seen too.
// The returned func stops watching.
func (s *Server) watch(ctx context.Context) (func() error, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "create file watcher")
	}
	path, err := filepath.Abs(s.opts.GraphPath)
	if err != nil {
		w.Close()
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "resolve %s", s.opts.GraphPath)
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "watch %s", filepath.Dir(path))
	}
	s.logger.Debug("watching graph", "path", path)
	go s.watchLoop(ctx, w, path)
	return w.Close, nil
}

func (s *Server) watchLoop(ctx context.Context, w *fsnotify.Watcher, path string) {
	var (
		timer  *time.Timer
		reload <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			// Editors write in bursts; reload once they settle.
			if timer == nil {
				timer = time.NewTimer(reloadDebounce)
			} else {
				timer.Reset(reloadDebounce)
			}
			reload = timer.C

		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			s.logger.Warn("file watcher", "error", err)

		case <-reload:
			reload = nil
			start := time.Now()
			if err := s.Reload(ctx); err != nil {
				// Keep serving the last good graph.
				s.logger.Error("reload graph", "path", path, "error", err)
				continue
			}
			s.logger.Info("reloaded graph", "path", path, "version", s.graph().Hash[:12], "duration", time.Since(start))
		}
	}
}
