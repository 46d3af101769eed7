package config

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a config file when it changes on disk. Editors tend to
// emit several events per save, so reloads are debounced.
type Watcher struct {
	path     string
	debounce time.Duration
	log      *slog.Logger
	watcher  *fsnotify.Watcher

	mu    sync.Mutex
	timer *time.Timer
	done  chan struct{}
	once  sync.Once
}

// NewWatcher watches the directory containing path; watching the directory
// survives editors that replace the file on save.
func NewWatcher(path string, debounce time.Duration, log *slog.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	if log == nil {
		log = slog.Default()
	}
	return &Watcher{
		path:     abs,
		debounce: debounce,
		log:      log,
		watcher:  fw,
		done:     make(chan struct{}),
	}, nil
}

// Start delivers every successfully reloaded config to onChange from a
// background goroutine. Invalid files are logged and skipped.
func (w *Watcher) Start(onChange func(Config)) {
	go func() {
		for {
			select {
			case event, ok := <-w.watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != w.path {
					continue
				}
				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
					w.schedule(onChange)
				}
			case err, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
				w.log.Warn("config watcher error", "err", err)
			case <-w.done:
				return
			}
		}
	}()
}

func (w *Watcher) schedule(onChange func(Config)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		cfg, err := Load(w.path)
		if err != nil {
			w.log.Warn("config reload failed", "path", w.path, "err", err)
			return
		}
		w.log.Info("config reloaded", "path", w.path)
		onChange(cfg)
	})
}

func (w *Watcher) Close() error {
	w.once.Do(func() { close(w.done) })
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	return w.watcher.Close()
}
