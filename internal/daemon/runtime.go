package daemon

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/jmylchreest/pilltoast/internal/audio"
	"github.com/jmylchreest/pilltoast/internal/config"
	"github.com/jmylchreest/pilltoast/internal/dbus"
	"github.com/jmylchreest/pilltoast/internal/style"
)

// Runtime applies configuration to the daemon's components. Components
// are optional; a nil one is skipped.
type Runtime struct {
	mu     sync.Mutex
	logger *slog.Logger
	cfg    *config.Config

	styles   *style.Registry
	sound    *audio.Manager
	server   *dbus.Server
	notifier *Notifier

	// appliers run after the shared components, for toolkit-side state.
	appliers []func(*config.Config)
}

// RuntimeOptions lists the components a Runtime drives.
type RuntimeOptions struct {
	Styles   *style.Registry
	Sound    *audio.Manager
	Server   *dbus.Server
	Notifier *Notifier
	Logger   *slog.Logger
}

// NewRuntime creates a runtime. Styles is required.
func NewRuntime(opts RuntimeOptions) *Runtime {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Runtime{
		logger:   opts.Logger,
		styles:   opts.Styles,
		sound:    opts.Sound,
		server:   opts.Server,
		notifier: opts.Notifier,
	}
}

// OnApply registers fn to run with every applied config.
func (r *Runtime) OnApply(fn func(*config.Config)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.appliers = append(r.appliers, fn)
}

// Config returns the config last applied.
func (r *Runtime) Config() *config.Config {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cfg
}

// Apply pushes cfg to every component. Styles are applied first; if they
// are rejected nothing else changes.
func (r *Runtime) Apply(cfg *config.Config) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := cfg.ApplyStyles(r.styles); err != nil {
		return fmt.Errorf("failed to apply styles: %w", err)
	}
	if r.sound != nil {
		r.sound.Configure(cfg.Audio)
		r.sound.Track(r.styles)
	}
	if r.server != nil {
		r.server.SetDefaults(dbus.Defaults{
			Style:    cfg.Defaults.Style,
			Location: cfg.Defaults.Location,
			Duration: cfg.Defaults.Duration,
		})
	}
	if r.notifier != nil {
		r.notifier.SetLocation(cfg.Defaults.Location)
	}
	for _, fn := range r.appliers {
		fn(cfg)
	}
	r.cfg = cfg

	r.logger.Debug("configuration applied", "styles", len(r.styles.Names()))
	return nil
}

// Reload applies cfg and tells the user how it went.
func (r *Runtime) Reload(cfg *config.Config) {
	if err := r.Apply(cfg); err != nil {
		r.logger.Warn("failed to apply reloaded config", "error", err)
		r.ReportError(err)
		return
	}
	r.logger.Info("configuration reloaded")
	if r.notifier != nil {
		r.notifier.NotifyConfigReloaded()
	}
}

// ReportError tells the user that a config file was rejected.
func (r *Runtime) ReportError(err error) {
	if r.notifier != nil {
		r.notifier.NotifyConfigError(err)
	}
}
