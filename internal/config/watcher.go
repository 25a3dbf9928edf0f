package config

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceDelay coalesces the bursts of events editors emit on save.
const debounceDelay = 250 * time.Millisecond

// Watcher watches the config file and reports changes, so a running
// session can pick up a model switch without a restart.
type Watcher struct {
	path    string
	fsw     *fsnotify.Watcher
	changes chan struct{}

	mu      sync.Mutex
	pending *time.Timer
	closed  bool
}

// Watch starts watching the config file's directory (editors replace
// files on save, so watching the file itself misses renames).
func Watch(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watching %s: %w", path, err)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watching %s: %w", path, err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watching %s: %w", path, err)
	}

	w := &Watcher{
		path:    abs,
		fsw:     fsw,
		changes: make(chan struct{}, 1),
	}
	go w.run()
	return w, nil
}

// Changes delivers one notification per (debounced) config change.
func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	w.mu.Lock()
	w.closed = true
	if w.pending != nil {
		w.pending.Stop()
	}
	w.mu.Unlock()
	return w.fsw.Close()
}

func (w *Watcher) run() {
	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if ev.Name != w.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.schedule()
		case _, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			// Watch errors are not actionable here; the next poll of the
			// config file will surface real problems.
		}
	}
}

func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if w.pending != nil {
		w.pending.Stop()
	}
	w.pending = time.AfterFunc(debounceDelay, func() {
		select {
		case w.changes <- struct{}{}:
		default:
		}
	})
}
