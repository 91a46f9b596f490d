package audio

import (
	"context"
	"log/slog"
	"sync"

	"github.com/jmylchreest/pilltoast/internal/config"
	"github.com/jmylchreest/pilltoast/internal/style"
)

// Manager plays the sound of each style a toast appears in. It implements
// toast.SoundPlayer.
type Manager struct {
	mu      sync.RWMutex
	logger  *slog.Logger
	player  *Player
	watcher *Watcher
	enabled bool

	wg sync.WaitGroup
}

// NewManager creates a manager playing through player, or the system
// speaker if player is nil.
func NewManager(cfg config.AudioConfig, player *Player, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	if player == nil {
		player = NewPlayer(logger)
	}

	m := &Manager{
		logger:  logger,
		player:  player,
		watcher: NewWatcher(player, logger),
	}
	m.Configure(cfg)
	return m
}

// Configure applies audio settings. It is called again on config reload.
func (m *Manager) Configure(cfg config.AudioConfig) {
	m.mu.Lock()
	m.enabled = cfg.Enabled
	m.mu.Unlock()

	m.player.SetVolume(float64(cfg.Volume) / 100.0)
	m.logger.Debug("audio configured", "enabled", cfg.Enabled, "volume", cfg.Volume)
}

// Enabled reports whether sounds are played.
func (m *Manager) Enabled() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.enabled
}

// Track preloads the sound of every style in reg and watches those files.
// Call it again whenever the registry changes.
func (m *Manager) Track(reg *style.Registry) {
	var paths []string
	for _, name := range reg.Names() {
		st, ok := reg.Get(name)
		if !ok || st.Sound == "" {
			continue
		}
		paths = append(paths, st.Sound)
	}
	m.watcher.Replace(paths)

	if !m.Enabled() {
		return
	}
	for _, path := range paths {
		if err := m.player.Preload(path); err != nil {
			m.logger.Warn("failed to preload sound", "path", path, "error", err)
		}
	}
}

// Start starts watching tracked sound files.
func (m *Manager) Start(ctx context.Context) error {
	if err := m.watcher.Start(ctx); err != nil {
		return err
	}
	m.logger.Info("audio manager started", "sounds", m.watcher.Watched())
	return nil
}

// Stop shuts down the audio manager.
func (m *Manager) Stop() {
	m.watcher.Stop()
	m.wg.Wait()
	m.player.Close()
	m.logger.Debug("audio manager stopped")
}

// PlayStyle plays st's sound, if it has one. Decoding happens off the
// calling goroutine, so this is safe to call from the UI loop.
func (m *Manager) PlayStyle(st style.Style) {
	if st.Sound == "" || !m.Enabled() {
		return
	}

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		if err := m.player.Play(st.Sound); err != nil {
			m.logger.Warn("failed to play sound", "style", st.Name, "path", st.Sound, "error", err)
		}
	}()
}

// Wait blocks until sounds already requested have been handed to the
// speaker.
func (m *Manager) Wait() {
	m.wg.Wait()
}
