package display

import (
	"log/slog"

	layershell "github.com/diamondburned/gotk4-layer-shell/pkg/gtk4layershell"
	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/jmylchreest/pilltoast/internal/config"
	"github.com/jmylchreest/pilltoast/internal/layout"
	"github.com/jmylchreest/pilltoast/internal/toast"
)

// Platform implements toast.Platform on the default GDK display.
type Platform struct {
	app    *gtk.Application
	cfg    config.DisplayConfig
	logger *slog.Logger
}

// NewPlatform creates a platform whose windows belong to app.
func NewPlatform(app *gtk.Application, cfg config.DisplayConfig, logger *slog.Logger) *Platform {
	if logger == nil {
		logger = slog.Default()
	}
	return &Platform{app: app, cfg: cfg, logger: logger}
}

// UpdateConfig applies new display settings to later toasts.
func (p *Platform) UpdateConfig(cfg config.DisplayConfig) {
	p.cfg = cfg
}

// Window returns the primary monitor, if one is connected.
func (p *Platform) Window() (toast.Window, bool) {
	display := gdk.DisplayGetDefault()
	if display == nil {
		return nil, false
	}
	monitor := primaryMonitor(display)
	if monitor == nil {
		return nil, false
	}
	geom := monitor.Geometry()
	return &Screen{
		app:     p.app,
		monitor: monitor,
		bounds:  layout.Rect{W: float64(geom.Width()), H: float64(geom.Height())},
		layer:   layerFor(p.cfg.Layer),
		logger:  p.logger,
	}, true
}

// ScreenBounds is the configured fallback size.
func (p *Platform) ScreenBounds() layout.Rect {
	return layout.Rect{W: float64(p.cfg.ScreenWidth), H: float64(p.cfg.ScreenHeight)}
}

// primaryMonitor returns the first monitor. GTK4 has no notion of a
// primary one.
func primaryMonitor(display *gdk.Display) *gdk.Monitor {
	monitors := display.Monitors()
	if monitors == nil || monitors.NItems() == 0 {
		return nil
	}
	obj := monitors.Item(0)
	if obj == nil {
		return nil
	}
	monitor, _ := obj.Cast().(*gdk.Monitor)
	return monitor
}

func layerFor(name string) layershell.LayerShellLayer {
	if name == config.LayerTop {
		return layershell.LayerShellLayerTop
	}
	return layershell.LayerShellLayerOverlay
}

// Screen is a monitor toasts are placed on. Panels that reserve space are
// avoided by the compositor, so the safe area is empty.
type Screen struct {
	app     *gtk.Application
	monitor *gdk.Monitor
	bounds  layout.Rect
	layer   layershell.LayerShellLayer
	logger  *slog.Logger
}

// Bounds implements toast.Window.
func (s *Screen) Bounds() layout.Rect { return s.bounds }

// SafeArea implements toast.Window.
func (s *Screen) SafeArea() layout.Insets { return layout.Insets{} }

// Attach implements toast.Window.
func (s *Screen) Attach(spec toast.ViewSpec) (toast.View, error) {
	if !layershell.IsSupported() {
		return nil, &DisplayError{Message: "compositor does not support wlr-layer-shell"}
	}
	return newPopup(s, spec), nil
}
