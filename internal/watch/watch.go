// Package watch re-runs work when watched source files change.
//
// A Watcher observes the parent directories of the files it is given (more
// reliable than watching files directly, since editors often save by
// renaming a temporary file over the original) and reports changed paths in
// debounced batches.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period used when New is given zero.
const DefaultDebounce = 300 * time.Millisecond

var (
	// ErrNoPaths is returned by Run when nothing was added.
	ErrNoPaths = errors.New("no paths to watch")
	// ErrWatch wraps failures of the underlying file system watcher.
	ErrWatch = errors.New("watch failed")
)

// Filter reports whether a file inside a watched directory is of interest.
type Filter func(path string) bool

// SkipDir reports whether a subdirectory, given by name, is left out of
// directory watches.
type SkipDir func(name string) bool

// Option configures a Watcher.
type Option func(*Watcher)

// WithFilter restricts directory watches to files accepted by f.
// Files added explicitly are always reported.
func WithFilter(f Filter) Option {
	return func(w *Watcher) {
		w.filter = f
	}
}

// WithSkipDir leaves out subdirectories accepted by f, in addition to hidden
// ones, which are always skipped.
func WithSkipDir(f SkipDir) Option {
	return func(w *Watcher) {
		w.skipDir = f
	}
}

// WithLogger sets the logger used for watch events and errors.
func WithLogger(l *slog.Logger) Option {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

// Watcher batches file change notifications.
type Watcher struct {
	fs       *fsnotify.Watcher
	debounce time.Duration
	logger   *slog.Logger
	filter   Filter
	skipDir  SkipDir

	mu    sync.Mutex
	files map[string]struct{} // files reported regardless of filter
	trees map[string]struct{} // directories whose files pass through filter
	dirs  map[string]struct{} // directories registered with fsnotify
}

// New creates a Watcher reporting changes after debounce of quiet.
func New(debounce time.Duration, opts ...Option) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWatch, err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	w := &Watcher{
		fs:       fsw,
		debounce: debounce,
		logger:   slog.Default(),
		files:    make(map[string]struct{}),
		trees:    make(map[string]struct{}),
		dirs:     make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Add watches the given paths. A file is watched through its parent
// directory; a directory is watched with all of its subdirectories.
func (w *Watcher) Add(paths ...string) error {
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("resolving %s: %w", p, err)
		}
		info, err := os.Stat(abs)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrWatch, err)
		}

		if !info.IsDir() {
			w.mu.Lock()
			w.files[abs] = struct{}{}
			w.mu.Unlock()
			if err := w.watchDir(filepath.Dir(abs)); err != nil {
				return err
			}
			continue
		}

		if err := w.addTree(abs); err != nil {
			return err
		}
	}
	return nil
}

func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && w.skipped(d.Name()) {
			return filepath.SkipDir
		}
		w.mu.Lock()
		w.trees[path] = struct{}{}
		w.mu.Unlock()
		return w.watchDir(path)
	})
}

// skipped reports whether a subdirectory named name stays unwatched.
func (w *Watcher) skipped(name string) bool {
	return strings.HasPrefix(name, ".") || (w.skipDir != nil && w.skipDir(name))
}

func (w *Watcher) watchDir(dir string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.dirs[dir]; ok {
		return nil
	}
	if err := w.fs.Add(dir); err != nil {
		return fmt.Errorf("%w: watching %s: %v", ErrWatch, dir, err)
	}
	w.dirs[dir] = struct{}{}
	w.logger.Debug("watching directory", "dir", dir)
	return nil
}

// Dirs returns the watched directories, sorted.
func (w *Watcher) Dirs() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	out := make([]string, 0, len(w.dirs))
	for d := range w.dirs {
		out = append(out, d)
	}
	slices.Sort(out)
	return out
}

// interesting reports whether a change to path should be reported.
func (w *Watcher) interesting(path string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.files[path]; ok {
		return true
	}
	if _, ok := w.trees[filepath.Dir(path)]; !ok {
		return false
	}
	return w.filter == nil || w.filter(path)
}

func (w *Watcher) isTree(dir string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, ok := w.trees[dir]
	return ok
}

// Run delivers batches of changed paths to onChange until ctx is done.
// Each batch is sorted and holds every path at most once. onChange runs on
// the Run goroutine, so events arriving meanwhile join the next batch.
func (w *Watcher) Run(ctx context.Context, onChange func(paths []string)) error {
	if len(w.Dirs()) == 0 {
		return ErrNoPaths
	}

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	pending := make(map[string]struct{})

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if event.Has(fsnotify.Create) && w.isTree(filepath.Dir(event.Name)) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if w.skipped(info.Name()) {
						continue
					}
					if err := w.addTree(event.Name); err != nil {
						w.logger.Warn("cannot watch new directory", "dir", event.Name, "error", err)
					}
					continue
				}
			}
			if !w.interesting(event.Name) {
				continue
			}
			w.logger.Debug("change detected", "file", event.Name, "op", event.Op.String())
			pending[event.Name] = struct{}{}
			timer.Reset(w.debounce)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watcher error", "error", err)

		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			batch := make([]string, 0, len(pending))
			for p := range pending {
				batch = append(batch, p)
			}
			slices.Sort(batch)
			clear(pending)
			onChange(batch)
		}
	}
}

// Close stops watching. Run returns once the event channel closes.
func (w *Watcher) Close() error {
	return w.fs.Close()
}
