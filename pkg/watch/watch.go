// Package watch reruns a callback whenever a file changes on disk.
//
// The containing directory is watched rather than the file itself, so
// editors that save by writing a temporary file and renaming it over the
// original are picked up.
package watch

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	apperr "github.com/roomml/roomml/pkg/errors"
)

// DefaultDebounce collapses the burst of events a single save produces.
const DefaultDebounce = 100 * time.Millisecond

// Func is called for the initial run and after each change.
type Func func(ctx context.Context) error

// File calls fn once, then again after every write to path, until ctx is
// done. Events closer together than debounce result in a single call. A
// non-nil error from fn stops the watch and is returned; cancellation
// returns nil.
func File(ctx context.Context, path string, debounce time.Duration, fn Func) error {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return apperr.Wrap(apperr.ErrCodeInvalidPath, err, "resolve %s", path)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return apperr.Wrap(apperr.ErrCodeInternal, err, "create watcher")
	}
	defer w.Close()
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return apperr.Wrap(apperr.ErrCodeFileNotFound, err, "watch %s", filepath.Dir(abs))
	}

	if err := fn(ctx); err != nil {
		return err
	}

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !relevant(ev, abs) {
				continue
			}
			timer.Reset(debounce)
			fire = timer.C
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return apperr.Wrap(apperr.ErrCodeInternal, err, "watch %s", path)
		case <-fire:
			fire = nil
			if err := fn(ctx); err != nil {
				return err
			}
		}
	}
}

func relevant(ev fsnotify.Event, path string) bool {
	if filepath.Clean(ev.Name) != path {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)
}
