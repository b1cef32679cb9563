// Package watch re-runs reassembly whenever chunk files land in the
// tree and go quiet, for local iteration on a build checkout.
package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/avolokita/chunkweld/internal/chunk"
)

const DefaultDebounce = 2 * time.Second

// Watcher monitors a tree for incoming .part<N> files and invokes the
// run callback once writes settle for the debounce window.
type Watcher struct {
	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	root     string
	log      *zap.Logger
	run      func()
	debounce time.Duration

	pending   bool
	lastEvent time.Time

	stopCh  chan struct{}
	doneCh  chan struct{}
	running bool
}

func New(root string, debounce time.Duration, log *zap.Logger, run func()) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &Watcher{
		watcher:  fsw,
		root:     root,
		log:      log,
		run:      run,
		debounce: debounce,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Start registers watches for the tree and begins the event loop.
// Non-blocking; use Stop or cancel the context to shut down.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	// fsnotify is not recursive; register every directory.
	err := filepath.WalkDir(w.root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.watcher.Add(path)
		}
		return nil
	})
	if err != nil {
		return err
	}

	w.log.Info("watching for chunk files",
		zap.String("root", w.root),
		zap.Duration("debounce", w.debounce))

	go w.loop(ctx)
	return nil
}

// Stop shuts the watcher down and waits for the loop to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh

	if err := w.watcher.Close(); err != nil {
		w.log.Warn("error closing watcher", zap.Error(err))
	}
}

func (w *Watcher) loop(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch error", zap.Error(err))

		case <-ticker.C:
			w.maybeRun()
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if event.Op&fsnotify.Create != 0 {
		// New directories need their own watch.
		if fi, err := os.Stat(event.Name); err == nil && fi.IsDir() {
			if err := w.watcher.Add(event.Name); err != nil {
				w.log.Warn("could not watch new directory",
					zap.String("dir", event.Name), zap.Error(err))
			}
			return
		}
	}

	if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
		return
	}
	if _, _, ok := chunk.ParsePartPath(event.Name); !ok {
		return
	}

	w.mu.Lock()
	w.pending = true
	w.lastEvent = time.Now()
	w.mu.Unlock()

	w.log.Debug("chunk file activity", zap.String("path", event.Name))
}

func (w *Watcher) maybeRun() {
	w.mu.Lock()
	due := w.pending && time.Since(w.lastEvent) >= w.debounce
	if due {
		w.pending = false
	}
	w.mu.Unlock()

	if due {
		w.run()
	}
}
