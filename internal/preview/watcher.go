package preview

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/kwebdev/pagegen/internal/logfields"
)

// DefaultDebounce is how long the watcher waits for writes to settle.
const DefaultDebounce = 300 * time.Millisecond

// Watcher rebuilds the site when files under Dir change.
type Watcher struct {
	Dir      string
	Debounce time.Duration
	// Rebuild regenerates the site. Calls never overlap.
	Rebuild func(ctx context.Context) error
	// OnRebuilt runs after each successful rebuild.
	OnRebuilt func()
	Logger    *slog.Logger

	mu sync.Mutex // serializes Rebuild
}

// Run watches until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify: %w", err)
	}
	defer fw.Close()

	if err := addDirsRecursive(fw, w.Dir); err != nil {
		return err
	}

	log := w.logger()
	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	trigger := make(chan struct{}, 1)
	var (
		timerMu sync.Mutex
		timer   *time.Timer
	)
	schedule := func() {
		timerMu.Lock()
		defer timerMu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(debounce, func() {
			select {
			case trigger <- struct{}{}:
			default:
			}
		})
	}
	defer func() {
		timerMu.Lock()
		if timer != nil {
			timer.Stop()
		}
		timerMu.Unlock()
	}()

	log.Info("Watching for changes", logfields.Path(w.Dir))
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Create) {
				if st, err := os.Stat(ev.Name); err == nil && st.IsDir() {
					_ = addDirsRecursive(fw, ev.Name)
				}
			}
			if ev.Has(fsnotify.Chmod) && !ev.Has(fsnotify.Write) {
				continue
			}
			log.Debug("change detected", logfields.Path(ev.Name), logfields.Event(ev.Op.String()))
			schedule()
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			log.Warn("watcher error", logfields.Error(err))
		case <-trigger:
			w.rebuild(ctx)
		}
	}
}

func (w *Watcher) rebuild(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	start := time.Now()
	if err := w.Rebuild(ctx); err != nil {
		w.logger().Error("Rebuild failed", logfields.Error(err))
		return
	}
	w.logger().Info("Rebuilt", logfields.DurationMS(float64(time.Since(start).Microseconds())/1000))
	if w.OnRebuilt != nil {
		w.OnRebuilt()
	}
}

func (w *Watcher) logger() *slog.Logger {
	if w.Logger != nil {
		return w.Logger
	}
	return slog.Default()
}

// addDirsRecursive watches root and every directory below it.
func addDirsRecursive(fw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if err := fw.Add(path); err != nil {
				return fmt.Errorf("watching %s: %w", path, err)
			}
		}
		return nil
	})
}
