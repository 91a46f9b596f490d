package theme

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a user sheet when its file changes on disk. Events are
// taken from the parent directory so editors that replace the file by
// rename are still seen.
type Watcher struct {
	logger   *slog.Logger
	theme    *Theme
	onChange func(css string)

	mu     sync.Mutex
	fsw    *fsnotify.Watcher
	cancel context.CancelFunc
	done   chan struct{}
}

// NewWatcher creates a watcher for theme.
func NewWatcher(theme *Theme, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{logger: logger, theme: theme}
}

// OnChange sets the function receiving the new CSS. It runs on the
// watcher's goroutine.
func (w *Watcher) OnChange(fn func(css string)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = fn
}

// Start begins watching. Bundled sheets are never watched.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.fsw != nil || w.theme == nil || w.theme.Bundled {
		return nil
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := fsw.Add(filepath.Dir(w.theme.Path)); err != nil {
		_ = fsw.Close()
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	w.fsw = fsw
	w.cancel = cancel
	w.done = make(chan struct{})
	go w.watchLoop(ctx, fsw, w.done)

	w.logger.Debug("stylesheet watcher started", "path", w.theme.Path)
	return nil
}

// Stop stops watching and waits for the loop to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	fsw, cancel, done := w.fsw, w.cancel, w.done
	w.fsw, w.cancel, w.done = nil, nil, nil
	w.mu.Unlock()

	if fsw == nil {
		return
	}
	cancel()
	_ = fsw.Close()
	<-done
	w.logger.Debug("stylesheet watcher stopped")
}

func (w *Watcher) watchLoop(ctx context.Context, fsw *fsnotify.Watcher, done chan struct{}) {
	defer close(done)

	path := filepath.Clean(w.theme.Path)
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				w.check()
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("stylesheet watcher error", "error", err)
		}
	}
}

// check reloads the sheet and reports new CSS. A missing file is ignored
// until it reappears.
func (w *Watcher) check() {
	w.mu.Lock()
	changed, err := w.theme.Reload()
	css := w.theme.CSS
	fn := w.onChange
	w.mu.Unlock()

	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		w.logger.Warn("failed to reload stylesheet", "path", w.theme.Path, "error", err)
	case changed:
		w.logger.Info("stylesheet changed", "path", w.theme.Path)
		if fn != nil {
			fn(css)
		}
	}
}
