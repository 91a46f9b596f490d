package display

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/diamondburned/gotk4-adwaita/pkg/adw"
	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/jmylchreest/pilltoast/internal/config"
	"github.com/jmylchreest/pilltoast/internal/layout"
	"github.com/jmylchreest/pilltoast/internal/style"
	"github.com/jmylchreest/pilltoast/internal/theme"
)

// Stylesheet owns the CSS provider toast windows are styled by. It is
// rebuilt whenever styles, the colour scheme or the user sheet change.
type Stylesheet struct {
	logger   *slog.Logger
	provider *gtk.CSSProvider
	measurer layout.Measurer

	cfg       config.DisplayConfig
	generated string
	user      *theme.Theme
	watcher   *theme.Watcher
}

// NewStylesheet creates an empty stylesheet. Radii are computed with m.
func NewStylesheet(m layout.Measurer, cfg config.DisplayConfig, logger *slog.Logger) *Stylesheet {
	if logger == nil {
		logger = slog.Default()
	}
	return &Stylesheet{
		logger:   logger,
		provider: gtk.NewCSSProvider(),
		measurer: m,
		cfg:      cfg,
	}
}

// Attach installs the provider on the default display and follows the
// system colour scheme.
func (s *Stylesheet) Attach() error {
	display := gdk.DisplayGetDefault()
	if display == nil {
		return &DisplayError{Message: "no display available"}
	}
	gtk.StyleContextAddProviderForDisplay(display, s.provider, gtk.STYLE_PROVIDER_PRIORITY_APPLICATION)

	adw.StyleManagerGetDefault().NotifyProperty("dark", func() {
		if config.ColorScheme(s.cfg.ColorScheme) == config.ColorSchemeSystem {
			s.load()
		}
	})
	return nil
}

// Update regenerates the rules for every style in reg.
func (s *Stylesheet) Update(reg *style.Registry, cfg config.DisplayConfig) {
	s.cfg = cfg
	s.generated = theme.StyleSheet(reg, s.measurer, cfg.Opacity)
	s.load()
}

// WatchUser loads the user sheet, if there is one, and reloads it when it
// changes.
func (s *Stylesheet) WatchUser(ctx context.Context) {
	path, err := theme.UserCSSPath()
	if err != nil {
		s.logger.Warn("failed to get user stylesheet path", "error", err)
		return
	}
	user, err := theme.NewTheme("user", path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("failed to load user stylesheet", "path", path, "error", err)
		}
		return
	}
	s.user = user
	s.load()

	s.watcher = theme.NewWatcher(user, s.logger)
	s.watcher.OnChange(func(string) {
		glib.IdleAdd(s.load)
	})
	if err := s.watcher.Start(ctx); err != nil {
		s.logger.Warn("failed to watch user stylesheet", "error", err)
	}
}

// Stop stops watching the user sheet.
func (s *Stylesheet) Stop() {
	if s.watcher != nil {
		s.watcher.Stop()
	}
}

func (s *Stylesheet) load() {
	scheme := s.scheme()
	s.provider.LoadFromString(theme.Compose(scheme, s.generated, s.user))
	s.logger.Debug("stylesheet loaded", "scheme", scheme, "user", s.user != nil)
}

// scheme resolves the configured colour scheme to light or dark.
func (s *Stylesheet) scheme() string {
	switch config.ColorScheme(s.cfg.ColorScheme) {
	case config.ColorSchemeLight:
		return theme.LightThemeName
	case config.ColorSchemeDark:
		return theme.DarkThemeName
	}
	if adw.StyleManagerGetDefault().Dark() {
		return theme.DarkThemeName
	}
	return theme.LightThemeName
}
