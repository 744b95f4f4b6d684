// Package configwatcher monitors the kafkalog TOML config file and
// reloads it on change, feeding the merged configuration to a callback.
// The CLI uses it to cycle the appender through reset and re-activation
// without a restart.
package configwatcher

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dastra/kafkalog/internal/cliconfig"
	"github.com/dastra/kafkalog/pkg/log"
)

// DefaultDebounceDelay is how long to wait after a file change before
// reloading, so editors that write in several steps trigger one reload.
const DefaultDebounceDelay = 100 * time.Millisecond

// Config holds the watcher options.
type Config struct {
	// Path is the config file to watch. Required.
	Path string

	// DebounceDelay overrides DefaultDebounceDelay when positive.
	DebounceDelay time.Duration
}

// Watcher reloads the config file on change.
type Watcher struct {
	mu sync.Mutex

	path     string
	debounce time.Duration
	onChange func(cliconfig.Config)
	logger   log.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
	timer  *time.Timer
}

// New creates a watcher. onChange receives each successfully reloaded
// and validated configuration; it is called from the watcher goroutine.
func New(cfg Config, onChange func(cliconfig.Config), logger log.Logger) *Watcher {
	debounce := cfg.DebounceDelay
	if debounce <= 0 {
		debounce = DefaultDebounceDelay
	}
	return &Watcher{
		path:     cfg.Path,
		debounce: debounce,
		onChange: onChange,
		logger:   logger,
	}
}

// Start begins watching in the background.
func (w *Watcher) Start(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	// Watch the directory, not the file: editors often replace the file
	// by rename, which drops a watch held on the file itself.
	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		watcher.Close()
		return err
	}

	watchCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	w.wg.Add(1)
	go w.watchLoop(watchCtx, watcher)

	w.logger.Info("config watcher started", log.String("path", w.path))
	return nil
}

// Stop stops watching and waits for the watch loop to exit.
func (w *Watcher) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}

func (w *Watcher) watchLoop(ctx context.Context, watcher *fsnotify.Watcher) {
	defer w.wg.Done()
	defer watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filepath.Base(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.scheduleReload()

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("config watcher error", log.Err(err))
		}
	}
}

func (w *Watcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.reload)
}

// reload merges defaults, file and environment, validates, and hands the
// result to the callback. A broken config is logged and skipped; the
// appender keeps running with the previous configuration.
func (w *Watcher) reload() {
	cfg, err := Load(w.path)
	if err != nil {
		w.logger.Error("config reload failed", log.String("path", w.path), log.Err(err))
		return
	}

	w.logger.Info("configuration reloaded", log.String("path", w.path))
	w.onChange(cfg)
}

// Load reads the config file at path and merges it over the defaults
// and KAFKALOG_* environment variables, then validates the result.
func Load(path string) (cliconfig.Config, error) {
	cfg := cliconfig.DefaultConfig()

	fc, err := cliconfig.LoadFileConfig(path)
	if err != nil {
		return cfg, err
	}
	if err := cliconfig.ApplyFileConfig(&cfg, fc, nil); err != nil {
		return cfg, err
	}
	if err := cliconfig.ApplyEnvConfig(&cfg, nil); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
