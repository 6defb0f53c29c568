package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/zeebo/xxh3"
)

// DefaultDebounce collapses an editor's burst of writes into one reload.
const DefaultDebounce = 100 * time.Millisecond

// Watcher reloads a config file whenever its content changes on disk. Saves
// that leave the bytes as they were are ignored. Configs that fail to load or
// validate go to Errors instead of Updates.
type Watcher struct {
	Updates chan *Config
	Errors  chan error

	path     string
	debounce time.Duration
	watcher  *fsnotify.Watcher
	sum      uint64 // xxh3 of the last content seen
	closeCh  chan struct{}
	done     chan struct{}
	once     sync.Once
}

// Watch starts watching path. The parent directory is watched so that
// editors which save by renaming over the file are still seen.
func Watch(path string, debounce time.Duration) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: watch %s: %w", path, err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("config: watch %s: %w", path, err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("config: watch %s: %w", path, err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	watcher := &Watcher{
		Updates:  make(chan *Config, 1),
		Errors:   make(chan error, 1),
		path:     abs,
		debounce: debounce,
		watcher:  w,
		closeCh:  make(chan struct{}),
		done:     make(chan struct{}),
	}
	if data, err := os.ReadFile(abs); err == nil {
		watcher.sum = xxh3.Hash(data)
	}
	go watcher.run()
	return watcher, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
		close(w.Updates)
		close(w.Errors)
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.done)

	var reload <-chan time.Time
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			reload = time.After(w.debounce)
		case <-reload:
			reload = nil
			data, err := os.ReadFile(w.path)
			if err != nil {
				// Mid-rename; the Create that follows schedules another reload.
				continue
			}
			sum := xxh3.Hash(data)
			if sum == w.sum {
				continue
			}
			w.sum = sum
			cfg := Default()
			if err := Parse(data, cfg); err != nil {
				sendLatest(w.Errors, fmt.Errorf("config: %s: %w", w.path, err))
				continue
			}
			sendLatest(w.Updates, cfg)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			sendLatest(w.Errors, err)
		case <-w.closeCh:
			return
		}
	}
}

// sendLatest replaces anything still unread so a slow reader only sees the
// newest value. ch must have a buffer and a single sender.
func sendLatest[T any](ch chan T, v T) {
	select {
	case ch <- v:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	ch <- v
}
