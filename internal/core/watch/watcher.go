package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"codump/internal/logging"
)

// FileWatcher reports changes to a single file. It watches the parent directory so that
// editors which save through a rename are still seen.
type FileWatcher struct {
	path      string
	debouncer *Debouncer
	logger    *slog.Logger

	watcher   *fsnotify.Watcher
	closeOnce sync.Once
	closed    chan struct{}
}

type Options struct {
	Debounce time.Duration
	// OnChange runs after each quiet period that followed at least one event.
	OnChange func(path string)
	Logger   *slog.Logger
}

func NewFileWatcher(path string, opts Options) (*FileWatcher, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("path is required")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	abs = filepath.Clean(abs)

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}

	w := &FileWatcher{
		path:      abs,
		debouncer: NewDebouncer(opts.Debounce),
		logger:    logger,
		watcher:   fsw,
		closed:    make(chan struct{}),
	}
	if opts.OnChange != nil {
		w.debouncer.OnFire(func([]string) { opts.OnChange(path) })
	}
	return w, nil
}

func (w *FileWatcher) Debounce() time.Duration {
	if w == nil {
		return 0
	}
	return w.debouncer.Delay()
}

func (w *FileWatcher) Close() error {
	if w == nil {
		return nil
	}
	w.closeOnce.Do(func() { close(w.closed) })
	w.debouncer.Stop()
	if w.watcher == nil {
		return nil
	}
	return w.watcher.Close()
}

// Run delivers events until ctx is done or the watcher is closed.
func (w *FileWatcher) Run(ctx context.Context) error {
	if w == nil || w.watcher == nil {
		return fmt.Errorf("watcher is not initialized")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-w.closed:
			return nil
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(ev)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			return err
		}
	}
}

func (w *FileWatcher) handleEvent(ev fsnotify.Event) {
	if filepath.Clean(ev.Name) != w.path {
		return
	}
	if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) && !ev.Op.Has(fsnotify.Rename) {
		return
	}
	w.logger.Debug("watch event", "path", w.path, "op", ev.Op.String())
	w.debouncer.Push(w.path)
}
