// Package watch reports debounced file-system changes under a set of paths.
package watch

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/teranos/consentlens/config"
	"github.com/teranos/consentlens/errors"
	"github.com/teranos/consentlens/logger"
)

// DefaultDebounce coalesces bursts of events such as editor save sequences.
const DefaultDebounce = 500 * time.Millisecond

// ChangeFunc receives the sorted set of paths that changed during one debounce window.
type ChangeFunc func(changed []string)

// Watcher watches files and directory trees and calls back once per burst of changes.
type Watcher struct {
	watcher  *fsnotify.Watcher
	onChange ChangeFunc
	debounce time.Duration
	logger   *zap.SugaredLogger

	mu      sync.Mutex
	timer   *time.Timer
	pending map[string]struct{}
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period before the callback fires.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithLogger sets the watcher logger.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

// New creates a watcher. Call Add for each path, then Run.
func New(onChange ChangeFunc, opts ...Option) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}
	w := &Watcher{
		watcher:  fw,
		onChange: onChange,
		debounce: DefaultDebounce,
		logger:   logger.ComponentLogger("watch"),
		pending:  make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Add watches a file, or a directory and every directory below it.
func (w *Watcher) Add(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return errors.Wrapf(err, "watch %s", path)
	}
	if !info.IsDir() {
		return errors.Wrapf(w.watcher.Add(path), "watch %s", path)
	}
	return filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if err := w.watcher.Add(p); err != nil {
				return errors.Wrapf(err, "watch %s", p)
			}
		}
		return nil
	})
}

// Run processes events until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !relevant(event) {
				continue
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.Add(event.Name); err != nil {
						w.logger.Warnw("Failed to watch new directory", logger.FieldPath, event.Name, logger.FieldError, err)
					}
				}
			}
			w.logger.Debugw("Detected change", logger.FieldFile, event.Name, "op", event.Op.String())
			w.schedule(event.Name)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warnw("Watcher error", logger.FieldError, err)
		}
	}
}

// relevant drops permission-only changes and config backups.
func relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	return !config.IsBackupFile(event.Name)
}

// schedule records a change and restarts the debounce timer.
func (w *Watcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.pending[path] = struct{}{}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.fire)
}

func (w *Watcher) fire() {
	w.mu.Lock()
	changed := make([]string, 0, len(w.pending))
	for p := range w.pending {
		changed = append(changed, p)
	}
	w.pending = make(map[string]struct{})
	w.mu.Unlock()

	if len(changed) == 0 {
		return
	}
	sort.Strings(changed)
	w.logger.Infow("Files changed", logger.FieldCount, len(changed))
	w.onChange(changed)
}

// Close stops the debounce timer and releases the underlying watcher.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	return w.watcher.Close()
}
