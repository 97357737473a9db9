package fs

import (
	"context"
	"fmt"
	iofs "io/fs"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/fwojciec/snapdiff"
	"go.uber.org/zap"
)

// DefaultDebounce is how long the watcher waits for changes to settle.
const DefaultDebounce = 300 * time.Millisecond

// Watcher reports changes to a workspace directory tree.
type Watcher struct {
	Root     string
	Filter   snapdiff.PathFilter
	Debounce time.Duration
	Logger   *zap.Logger

	fsw *fsnotify.Watcher
}

// NewWatcher starts watching every non-ignored directory below root.
// Changes are only delivered once Run is called.
func NewWatcher(root string, filter snapdiff.PathFilter) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	w := &Watcher{
		Root:     root,
		Filter:   filter,
		Debounce: DefaultDebounce,
		Logger:   zap.NewNop(),
		fsw:      fsw,
	}
	if err := w.addTree(root); err != nil {
		fsw.Close()
		return nil, err
	}
	return w, nil
}

// Run calls fn once after each burst of relevant changes and blocks until
// ctx is done.
func (w *Watcher) Run(ctx context.Context, fn func()) error {
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if w.ignored(ev.Name) {
				continue
			}
			if ev.Has(fsnotify.Create) {
				// New directories must be watched explicitly.
				if err := w.addTree(ev.Name); err != nil {
					w.Logger.Debug("watch new path", zap.String("path", ev.Name), zap.Error(err))
				}
			}
			fire = time.After(w.Debounce)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.Logger.Warn("watch error", zap.Error(err))
		case <-fire:
			fire = nil
			fn()
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d iofs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != w.Root && w.ignored(path) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

func (w *Watcher) ignored(path string) bool {
	if w.Filter == nil {
		return false
	}
	rel, err := filepath.Rel(w.Root, path)
	if err != nil {
		return false
	}
	return w.Filter.IsIgnored(filepath.ToSlash(rel))
}
