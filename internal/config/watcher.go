package config

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/coffeelab/coffeelab/internal/slogs"
)

// DefaultDebounce coalesces bursts of writes from editors.
const DefaultDebounce = 300 * time.Millisecond

// ConfigListener is notified when the config file changes on disk.
type ConfigListener interface {
	ConfigChanged(*Coffeelab)
	ConfigFailed(error)
}

// Watcher reloads the config file when it changes.
type Watcher struct {
	cfg       *Config
	path      string
	watcher   *fsnotify.Watcher
	debounce  time.Duration
	listeners []ConfigListener
	log       *zap.Logger
	done      chan struct{}
	cancel    context.CancelFunc
	mx        sync.RWMutex
}

// NewWatcher watches the file cfg was loaded from.
func NewWatcher(cfg *Config, log *zap.Logger) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &Watcher{
		cfg:      cfg,
		path:     filepath.Clean(cfg.Path()),
		watcher:  w,
		debounce: DefaultDebounce,
		log:      log,
	}, nil
}

// SetDebounce changes the quiet period before a reload.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.mx.Lock()
	defer w.mx.Unlock()
	w.debounce = d
}

// AddListener registers a config listener.
func (w *Watcher) AddListener(l ConfigListener) {
	w.mx.Lock()
	defer w.mx.Unlock()
	w.listeners = append(w.listeners, l)
}

// RemoveListener unregisters a config listener.
func (w *Watcher) RemoveListener(l ConfigListener) {
	w.mx.Lock()
	defer w.mx.Unlock()

	for i, lis := range w.listeners {
		if lis == l {
			w.listeners = append(w.listeners[:i], w.listeners[i+1:]...)
			return
		}
	}
}

// Start watches the config directory until ctx ends or Stop is called.
// The directory is watched since editors often replace the file.
func (w *Watcher) Start(ctx context.Context) error {
	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	w.mx.Lock()
	w.cancel, w.done = cancel, make(chan struct{})
	w.mx.Unlock()

	go w.run(ctx)

	return nil
}

// Stop terminates the watch loop and releases the watcher.
func (w *Watcher) Stop() {
	w.mx.RLock()
	cancel, done := w.cancel, w.done
	w.mx.RUnlock()

	if cancel != nil {
		cancel()
		<-done
	}
	if err := w.watcher.Close(); err != nil {
		w.log.Warn("config watcher close failed", zap.Error(err))
	}
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.done)

	w.mx.RLock()
	d := w.debounce
	w.mx.RUnlock()

	timer := time.NewTimer(d)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case evt, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(evt.Name) != w.path {
				continue
			}
			if !evt.Has(fsnotify.Write) && !evt.Has(fsnotify.Create) && !evt.Has(fsnotify.Rename) {
				continue
			}
			w.log.Debug("config event", zap.String(slogs.Path, evt.Name), zap.Stringer("op", evt.Op))
			timer.Reset(d)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("config watcher failed", zap.Error(err))
		case <-timer.C:
			w.reload()
		}
	}
}

func (w *Watcher) reload() {
	err := w.cfg.Reload()

	w.mx.RLock()
	ll := make([]ConfigListener, len(w.listeners))
	copy(ll, w.listeners)
	w.mx.RUnlock()

	if err != nil {
		w.log.Warn("config reload failed", zap.String(slogs.Path, w.path), zap.Error(err))
		for _, l := range ll {
			l.ConfigFailed(err)
		}
		return
	}
	w.log.Info("config reloaded", zap.String(slogs.Path, w.path))
	settings := w.cfg.Settings()
	for _, l := range ll {
		l.ConfigChanged(settings)
	}
}
