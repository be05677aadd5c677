package config

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/felixgeelhaar/goap-go/domain/config"
)

// ReloadFunc is called with the freshly loaded configuration whenever
// the watched file changes and parses successfully.
type ReloadFunc func(*config.AgentConfig)

// ErrorFunc is called when a change could not be loaded. The previous
// configuration stays in effect.
type ErrorFunc func(error)

// Watcher reloads a configuration file when it changes on disk.
// Editors often replace files by rename, so the parent directory is
// watched rather than the file itself.
type Watcher struct {
	path     string
	loader   *Loader
	onReload ReloadFunc
	onError  ErrorFunc
	debounce time.Duration

	watcher  *fsnotify.Watcher
	stopOnce sync.Once
	done     chan struct{}
}

// WatcherOption configures the watcher.
type WatcherOption func(*Watcher)

// WithLoader sets the loader used on reload.
func WithLoader(l *Loader) WatcherOption {
	return func(w *Watcher) {
		w.loader = l
	}
}

// WithDebounce sets how long to wait after an event before reloading.
// Write bursts within the window collapse into a single reload.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// WithErrorFunc sets the callback invoked on reload failures.
func WithErrorFunc(fn ErrorFunc) WatcherOption {
	return func(w *Watcher) {
		w.onError = fn
	}
}

// NewWatcher creates a watcher for the given configuration file.
// The initial load happens on Start; onReload fires for every
// successful load including the first.
func NewWatcher(path string, onReload ReloadFunc, opts ...WatcherOption) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		path:     abs,
		loader:   NewLoader(),
		onReload: onReload,
		debounce: 100 * time.Millisecond,
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	w.watcher = fsw

	return w, nil
}

// Start performs the initial load and begins watching for changes until
// the context is canceled or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	cfg, err := w.loader.LoadFile(w.path)
	if err != nil {
		_ = w.watcher.Close()
		return err
	}
	w.onReload(cfg)

	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		_ = w.watcher.Close()
		return fmt.Errorf("failed to watch path: %w", err)
	}

	go w.loop(ctx)
	return nil
}

// loop handles filesystem events until shutdown.
func (w *Watcher) loop(ctx context.Context) {
	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
		case <-timerC:
			timer = nil
			timerC = nil
			w.reload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			if w.onError != nil {
				w.onError(err)
			}
		}
	}
}

// reload loads the file and notifies the appropriate callback.
func (w *Watcher) reload() {
	cfg, err := w.loader.LoadFile(w.path)
	if err != nil {
		if w.onError != nil {
			w.onError(err)
		}
		return
	}
	w.onReload(cfg)
}

// Stop stops watching and releases resources.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.done)
		err = w.watcher.Close()
	})
	return err
}
