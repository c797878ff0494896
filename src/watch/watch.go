// Package watch re-runs a callback when a file changes on disk.
package watch

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/fkuefler/blackjack-lab/src/errors"
	"github.com/fkuefler/blackjack-lab/src/logging"
)

// Watcher observes one file through its parent directory, so editors that save
// by writing a temp file and renaming it over the original are still seen.
type Watcher struct {
	fs     *fsnotify.Watcher
	target string
}

// New starts watching path. Events that happen after New returns are delivered by Run.
func New(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrapf(err, "resolve %s", path)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "create watcher")
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, errors.Wrapf(err, "watch %s", filepath.Dir(abs))
	}
	return &Watcher{fs: fw, target: filepath.Clean(abs)}, nil
}

// Run calls fn on the calling goroutine after each burst of writes to the file,
// waiting debounce after the last event. It returns when ctx is done and closes the watcher.
func (w *Watcher) Run(ctx context.Context, debounce time.Duration, fn func()) error {
	defer w.fs.Close()

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != w.target || !ev.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			logging.Debugf("watch: %s %s", ev.Op, ev.Name)
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			logging.Warnf("watch %s: %v", w.target, err)
		case <-fire:
			fire = nil
			fn()
		}
	}
}

// File watches path and calls fn on change until ctx is done.
func File(ctx context.Context, path string, debounce time.Duration, fn func()) error {
	w, err := New(path)
	if err != nil {
		return err
	}
	return w.Run(ctx, debounce, fn)
}
