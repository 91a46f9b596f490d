package audio

import (
	"context"
	"log/slog"
	"maps"
	"os"
	"sync"
	"time"
)

// Watcher polls sound files and drops them from the player's cache when
// they change on disk.
type Watcher struct {
	mu     sync.RWMutex
	logger *slog.Logger
	player *Player

	modTimes     map[string]time.Time
	pollInterval time.Duration

	stopCh chan struct{}
	doneCh chan struct{}

	running bool
}

// NewWatcher creates a watcher invalidating player's cache.
func NewWatcher(player *Player, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}

	return &Watcher{
		logger:       logger,
		player:       player,
		modTimes:     make(map[string]time.Time),
		pollInterval: 2 * time.Second,
		stopCh:       make(chan struct{}),
		doneCh:       make(chan struct{}),
	}
}

// Replace sets the watched files to exactly paths.
func (w *Watcher) Replace(paths []string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	next := make(map[string]time.Time, len(paths))
	for _, path := range paths {
		if path == "" {
			continue
		}
		if known, ok := w.modTimes[path]; ok {
			next[path] = known
			continue
		}
		if info, err := os.Stat(path); err == nil {
			next[path] = info.ModTime()
		} else {
			next[path] = time.Time{}
		}
	}
	w.modTimes = next
}

// Watched returns the number of files being watched.
func (w *Watcher) Watched() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.modTimes)
}

// Start begins polling.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.stopCh = make(chan struct{})
	w.doneCh = make(chan struct{})
	interval := w.pollInterval
	w.mu.Unlock()

	go w.watchLoop(ctx, interval)

	w.logger.Debug("audio watcher started", "interval", interval)
	return nil
}

// Stop stops polling.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	close(w.stopCh)
	w.mu.Unlock()

	<-w.doneCh
	w.logger.Debug("audio watcher stopped")
}

func (w *Watcher) watchLoop(ctx context.Context, interval time.Duration) {
	defer close(w.doneCh)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.poll()
		}
	}
}

// poll invalidates every watched file whose modification time moved.
func (w *Watcher) poll() {
	w.mu.RLock()
	known := maps.Clone(w.modTimes)
	w.mu.RUnlock()

	for path, last := range known {
		info, err := os.Stat(path)
		if err != nil || !info.ModTime().After(last) {
			continue
		}

		w.logger.Debug("sound file changed, invalidating cache", "path", path)
		w.mu.Lock()
		if _, still := w.modTimes[path]; still {
			w.modTimes[path] = info.ModTime()
		}
		w.mu.Unlock()
		w.player.Invalidate(path)
	}
}
