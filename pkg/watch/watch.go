// Package watch notifies callers when any of a set of files changes.
//
// Parent directories are watched rather than the files themselves so that
// editors which replace a file by renaming over it are still noticed.
// Bursts of events are coalesced by a Debouncer.
package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/getmockd/configurator/pkg/logging"
)

// DefaultDebounce is the quiet period used when Config.Debounce is zero.
const DefaultDebounce = 100 * time.Millisecond

// ErrAlreadyRunning is returned when Watch is called twice.
var ErrAlreadyRunning = errors.New("watcher already running")

// Config configures a Watcher.
type Config struct {
	// Paths are the files to watch.
	Paths []string

	// Debounce is how long the watcher waits after the last event before
	// calling the change handler.
	Debounce time.Duration
}

// Watcher watches a fixed set of files.
type Watcher struct {
	fsw      *fsnotify.Watcher
	logger   *slog.Logger
	files    map[string]struct{}
	debounce *Debouncer

	mu      sync.Mutex
	running bool
}

// New creates a Watcher and registers its directories. Events that happen
// after New returns are reported by Watch.
func New(cfg Config, logger *slog.Logger) (*Watcher, error) {
	if len(cfg.Paths) == 0 {
		return nil, errors.New("no paths to watch")
	}
	if logger == nil {
		logger = logging.Nop()
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	w := &Watcher{
		fsw:      fsw,
		logger:   logger,
		files:    make(map[string]struct{}, len(cfg.Paths)),
		debounce: NewDebouncer(cfg.Debounce),
	}

	dirs := make(map[string]struct{})
	for _, p := range cfg.Paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			_ = fsw.Close()
			return nil, fmt.Errorf("resolving %s: %w", p, err)
		}
		w.files[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}
	for dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			_ = fsw.Close()
			return nil, fmt.Errorf("failed to watch directory %q: %w", dir, err)
		}
		logger.Debug("watching directory", "path", dir)
	}

	return w, nil
}

// Files returns the watched file paths, absolute and sorted.
func (w *Watcher) Files() []string {
	files := make([]string, 0, len(w.files))
	for f := range w.files {
		files = append(files, f)
	}
	sort.Strings(files)
	return files
}

// Watch delivers changes to onChange until ctx is cancelled. onChange gets
// the sorted set of files that changed during one debounce window. Handler
// errors are logged and watching continues.
func (w *Watcher) Watch(ctx context.Context, onChange func(changed []string) error) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return ErrAlreadyRunning
	}
	w.running = true
	w.mu.Unlock()

	defer func() {
		w.debounce.Stop()
		_ = w.fsw.Close()
	}()

	w.logger.Info("watching for changes", "files", len(w.files))

	for {
		select {
		case <-ctx.Done():
			w.logger.Debug("watcher stopped")
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return errors.New("watcher events channel closed")
			}
			path, relevant := w.relevant(event)
			if !relevant {
				continue
			}
			w.logger.Debug("file event", "path", path, "op", event.Op.String())

			w.debounce.Trigger(path, func(changed []string) {
				if err := onChange(changed); err != nil {
					w.logger.Error("change handler failed", "error", err)
				}
			})

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return errors.New("watcher errors channel closed")
			}
			w.logger.Warn("file watcher error", "error", err)
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) (string, bool) {
	if event.Op == fsnotify.Chmod {
		return "", false
	}
	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return "", false
	}
	_, ok := w.files[abs]
	return abs, ok
}

// Debouncer collects paths from rapid events and fires once after a quiet
// period with everything collected.
type Debouncer struct {
	interval time.Duration

	mu       sync.Mutex
	timer    *time.Timer
	pending  map[string]struct{}
	callback func([]string)
	stopped  bool
}

// NewDebouncer creates a Debouncer.
func NewDebouncer(interval time.Duration) *Debouncer {
	return &Debouncer{
		interval: interval,
		pending:  make(map[string]struct{}),
	}
}

// Trigger records path and restarts the quiet period. The most recent
// callback is the one that fires.
func (d *Debouncer) Trigger(path string, callback func([]string)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}

	d.pending[path] = struct{}{}
	d.callback = callback

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.interval, d.fire)
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	if d.stopped || len(d.pending) == 0 {
		d.mu.Unlock()
		return
	}
	changed := make([]string, 0, len(d.pending))
	for p := range d.pending {
		changed = append(changed, p)
	}
	d.pending = make(map[string]struct{})
	cb := d.callback
	d.mu.Unlock()

	sort.Strings(changed)
	if cb != nil {
		cb(changed)
	}
}

// Stop cancels any pending callback. Later triggers are ignored.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.pending = make(map[string]struct{})
	d.callback = nil
}
