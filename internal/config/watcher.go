// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// =============================================================================
// CONFIG FILE WATCHER
// =============================================================================

// DefaultDebounce is the settle time applied to bursts of file events.
// Editors commonly write config files several times in quick succession
// (truncate, write, rename), so a single reload per burst is enough.
const DefaultDebounce = 500 * time.Millisecond

// Watcher reloads the configuration file when it changes on disk and
// delivers the freshly loaded Config through a callback.
type Watcher struct {
	path     string // config file being watched
	watcher  *fsnotify.Watcher
	debounce time.Duration
	onChange func(*Config)
	mu       sync.Mutex
	pending  map[string]time.Time // file path -> last change time
	ctx      context.Context
	cancel   context.CancelFunc
}

// NewWatcher creates a watcher for the config file at path. The onChange
// callback receives each successfully reloaded Config; reload failures are
// skipped silently so a half-saved file never tears down the session.
func NewWatcher(path string, debounce time.Duration, onChange func(*Config)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	ctx, cancel := context.WithCancel(context.Background())

	w := &Watcher{
		path:     path,
		watcher:  fsw,
		debounce: debounce,
		onChange: onChange,
		pending:  make(map[string]time.Time),
		ctx:      ctx,
		cancel:   cancel,
	}

	return w, nil
}

// Watch starts watching for config file changes.
// The parent directory is watched rather than the file itself so that
// rename-based saves and late file creation are both observed.
func (w *Watcher) Watch() error {
	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return err
	}

	// Start event processing goroutine
	go w.processEvents()

	// Start debounce timer goroutine
	go w.processPending()

	return nil
}

// processEvents processes file system events
func (w *Watcher) processEvents() {
	defer func() {
		if r := recover(); r != nil {
			// Goroutine exits, session keeps its last good config
			_ = r
		}
	}()

	for {
		select {
		case <-w.ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			if filepath.Base(event.Name) != filepath.Base(w.path) {
				continue
			}

			// Write and Create both mean new content to pick up
			if event.Op&fsnotify.Write == fsnotify.Write ||
				event.Op&fsnotify.Create == fsnotify.Create {
				w.markChanged(event.Name)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			// Non-fatal
			_ = err
		}
	}
}

// markChanged records a change with its timestamp for debouncing.
func (w *Watcher) markChanged(path string) {
	w.mu.Lock()
	w.pending[path] = time.Now()
	w.mu.Unlock()
}

// processPending processes pending changes once the debounce window passes.
func (w *Watcher) processPending() {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return

		case <-ticker.C:
			now := time.Now()

			w.mu.Lock()
			var settled bool
			for path, changeTime := range w.pending {
				if now.Sub(changeTime) >= w.debounce {
					settled = true
					delete(w.pending, path)
				}
			}
			w.mu.Unlock()

			if settled {
				w.reload()
			}
		}
	}
}

// reload loads the watched file and hands the result to the callback.
func (w *Watcher) reload() {
	cfg, err := LoadFromPath(w.path)
	if err != nil {
		// Possibly mid-save or invalid; keep the previous config
		return
	}
	if w.onChange != nil {
		w.onChange(cfg)
	}
}

// Close stops watching and releases resources.
func (w *Watcher) Close() error {
	w.cancel()
	if w.watcher != nil {
		return w.watcher.Close()
	}
	return nil
}
