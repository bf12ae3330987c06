// Package watch re-evaluates a glob whenever the tree under a root changes.
//
// Every directory under the root is registered with fsnotify, and new
// directories are added as they appear. Events are coalesced: the match
// function runs once per quiet period rather than once per event, so a
// checkout touching thousands of files produces one Change.
package watch

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/jpl-au/globfs/internal/diff"
)

// DefaultDebounce is the quiet period after the last event before the
// pattern is evaluated again.
const DefaultDebounce = 200 * time.Millisecond

// MatchFunc evaluates the watched pattern and returns the matching paths.
type MatchFunc func() ([]string, error)

// Change reports how the match result moved.
type Change struct {
	Initial bool     // first evaluation; Added holds every match
	Added   []string // sorted
	Removed []string // sorted
	Matches []string // the full current result
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period. Non-positive values are ignored.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithSkip prunes directories by name from the watch set.
func WithSkip(skip func(name string) bool) Option {
	return func(w *Watcher) { w.skip = skip }
}

// WithLogger sets the logger for watch errors.
func WithLogger(l *slog.Logger) Option {
	return func(w *Watcher) { w.logger = l }
}

// Watcher watches a directory tree. A Watcher runs once; create another to
// watch again.
type Watcher struct {
	root     string
	match    MatchFunc
	skip     func(name string) bool
	debounce time.Duration
	logger   *slog.Logger
	fsw      *fsnotify.Watcher
}

// New registers root and its subdirectories. Call Run to start watching.
func New(root string, match MatchFunc, opts ...Option) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		root:     filepath.Clean(root),
		match:    match,
		debounce: DefaultDebounce,
		logger:   slog.New(slog.DiscardHandler),
		fsw:      fsw,
	}
	for _, opt := range opts {
		opt(w)
	}
	if err := w.addRecursive(w.root); err != nil {
		fsw.Close()
		return nil, err
	}
	return w, nil
}

// Close releases the watcher without running it.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

// addRecursive registers dir and every directory below it.
func (w *Watcher) addRecursive(dir string) error {
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p != dir && (errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission)) {
				return nil
			}
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if p != w.root && w.skip != nil && w.skip(d.Name()) {
			return fs.SkipDir
		}
		if err := w.fsw.Add(p); err != nil {
			if errors.Is(err, fs.ErrPermission) {
				return fs.SkipDir
			}
			return err
		}
		return nil
	})
}

func (w *Watcher) handle(ev fsnotify.Event) {
	if !ev.Has(fsnotify.Create) {
		return
	}
	fi, err := os.Stat(ev.Name)
	if err != nil || !fi.IsDir() {
		return
	}
	if err := w.addRecursive(ev.Name); err != nil {
		w.logger.Warn("cannot watch new directory", "path", ev.Name, "error", err)
	}
}

// Run evaluates the pattern, reports it as the initial Change, then reports
// every later difference until ctx is done. An error from fn stops the
// watch and is returned. Cancelling ctx returns nil.
func (w *Watcher) Run(ctx context.Context, fn func(Change) error) error {
	defer w.fsw.Close()

	current, err := w.match()
	if err != nil {
		return err
	}
	initial := diff.Compute(nil, current, "", "")
	if err := fn(Change{Initial: true, Added: initial.Added, Matches: current}); err != nil {
		return err
	}

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.handle(ev)
			timer.Reset(w.debounce)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "error", err)
		case <-timer.C:
			next, err := w.match()
			if err != nil {
				w.logger.Warn("re-evaluating pattern failed", "error", err)
				continue
			}
			d := diff.Compute(current, next, "", "")
			current = next
			if !d.Changed() {
				continue
			}
			if err := fn(Change{Added: d.Added, Removed: d.Removed, Matches: next}); err != nil {
				return err
			}
		}
	}
}
