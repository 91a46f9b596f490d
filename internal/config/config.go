// Package config handles configuration file loading and parsing.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/jmylchreest/pilltoast/internal/style"
	"github.com/jmylchreest/pilltoast/internal/toast"
)

// Default configuration values.
const (
	DefaultVolume       = 80
	DefaultScreenWidth  = 400
	DefaultScreenHeight = 800
	DefaultDebounce     = 250 * time.Millisecond
)

// Duration is a time.Duration that can be unmarshaled from human-readable
// strings like "250ms" or "1s", or from integer milliseconds.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler for TOML parsing.
func (d *Duration) UnmarshalText(text []byte) error {
	s := string(text)

	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		*d = Duration(time.Duration(ms) * time.Millisecond)
		return nil
	}

	dur, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: must be like '250ms', '1s' or milliseconds: %w", s, err)
	}
	*d = Duration(dur)
	return nil
}

// MarshalText implements encoding.TextMarshaler for TOML output.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Duration returns the underlying time.Duration.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// Config is the pilltoast configuration, shared by the CLI and the daemon.
// Loaded from ~/.config/pilltoast/config.toml
type Config struct {
	Defaults  DefaultsConfig         `toml:"defaults"`
	Animation AnimationConfig        `toml:"animation"`
	Audio     AudioConfig            `toml:"audio"`
	Display   DisplayConfig          `toml:"display"`
	Reload    ReloadConfig           `toml:"reload"`
	Presets   map[string]StyleConfig `toml:"presets"` // Overrides for info, success, fail, warn
	Styles    map[string]StyleConfig `toml:"styles"`  // Custom styles, based on info
}

// DefaultsConfig holds what a toast gets when the caller does not say.
type DefaultsConfig struct {
	Style    string         `toml:"style"`
	Location toast.Location `toml:"location"` // "top" or "bottom"
	Duration toast.Duration `toml:"duration"` // "short", "average", "4s"
}

// AnimationConfig selects the slide animator.
type AnimationConfig struct {
	Kind string `toml:"kind"` // "tween" or "spring"
}

// Animation kinds.
const (
	AnimationTween  = "tween"
	AnimationSpring = "spring"
)

// Animator builds the configured animator ticking on exec.
func (a AnimationConfig) Animator(exec toast.Executor) toast.Animator {
	if a.Kind == AnimationSpring {
		return toast.NewSpringAnimator(exec)
	}
	return toast.NewTweenAnimator(exec)
}

// AudioConfig contains audio settings. Sounds are set per style.
type AudioConfig struct {
	Enabled bool `toml:"enabled"`
	Volume  int  `toml:"volume"` // 0-100
}

// DisplayConfig contains desktop display settings.
type DisplayConfig struct {
	ColorScheme  string  `toml:"color_scheme"`  // "system", "light", or "dark"
	Layer        string  `toml:"layer"`         // "overlay" or "top"
	Opacity      float64 `toml:"opacity"`       // 0.0-1.0
	ScreenWidth  int     `toml:"screen_width"`  // Used when no monitor reports its size
	ScreenHeight int     `toml:"screen_height"` // Used when no monitor reports its size
}

// ReloadConfig controls hot reloading of this file.
type ReloadConfig struct {
	Enabled  bool     `toml:"enabled"`
	Debounce Duration `toml:"debounce"`
}

// ColorScheme represents the color scheme preference.
type ColorScheme string

const (
	ColorSchemeSystem ColorScheme = "system"
	ColorSchemeLight  ColorScheme = "light"
	ColorSchemeDark   ColorScheme = "dark"
)

// ValidColorSchemes returns all valid color scheme values.
func ValidColorSchemes() []ColorScheme {
	return []ColorScheme{ColorSchemeSystem, ColorSchemeLight, ColorSchemeDark}
}

// Layer-shell layers a toast window may sit on.
const (
	LayerOverlay = "overlay"
	LayerTop     = "top"
)

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Defaults: DefaultsConfig{
			Style:    style.Info,
			Location: toast.Bottom,
			Duration: toast.Average,
		},
		Animation: AnimationConfig{
			Kind: AnimationTween,
		},
		Audio: AudioConfig{
			Enabled: false,
			Volume:  DefaultVolume,
		},
		Display: DisplayConfig{
			ColorScheme:  string(ColorSchemeSystem),
			Layer:        LayerOverlay,
			Opacity:      1.0,
			ScreenWidth:  DefaultScreenWidth,
			ScreenHeight: DefaultScreenHeight,
		},
		Reload: ReloadConfig{
			Enabled:  true,
			Debounce: Duration(DefaultDebounce),
		},
		Presets: make(map[string]StyleConfig),
		Styles:  make(map[string]StyleConfig),
	}
}

// ConfigPath returns the path to the config file.
func ConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "pilltoast", "config.toml"), nil
}

// Load loads configuration from path, or from ConfigPath if path is empty.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := ConfigPath()
		if err != nil {
			return nil, fmt.Errorf("failed to get config path: %w", err)
		}
		path = p
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to path, or to ConfigPath if path is empty.
// Creates parent directories if needed.
func (c *Config) Save(path string) error {
	if path == "" {
		p, err := ConfigPath()
		if err != nil {
			return fmt.Errorf("failed to get config path: %w", err)
		}
		path = p
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Write atomically via temp file
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return os.Rename(tmpPath, path)
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Animation.Kind != AnimationTween && c.Animation.Kind != AnimationSpring {
		return fmt.Errorf("invalid animation kind %q, must be %q or %q", c.Animation.Kind, AnimationTween, AnimationSpring)
	}

	if c.Audio.Volume < 0 || c.Audio.Volume > 100 {
		return fmt.Errorf("volume must be between 0 and 100, got %d", c.Audio.Volume)
	}

	if !slices.Contains(ValidColorSchemes(), ColorScheme(c.Display.ColorScheme)) {
		return fmt.Errorf("invalid color scheme %q, must be one of: %v", c.Display.ColorScheme, ValidColorSchemes())
	}
	if c.Display.Layer != LayerOverlay && c.Display.Layer != LayerTop {
		return fmt.Errorf("invalid layer %q, must be %q or %q", c.Display.Layer, LayerOverlay, LayerTop)
	}
	if c.Display.Opacity < 0 || c.Display.Opacity > 1 {
		return fmt.Errorf("opacity must be between 0 and 1, got %g", c.Display.Opacity)
	}
	if c.Display.ScreenWidth <= 0 || c.Display.ScreenHeight <= 0 {
		return fmt.Errorf("screen size must be positive, got %dx%d", c.Display.ScreenWidth, c.Display.ScreenHeight)
	}

	if c.Reload.Debounce < 0 {
		return fmt.Errorf("reload debounce must not be negative, got %s", c.Reload.Debounce.Duration())
	}

	styles, err := c.BuildStyles()
	if err != nil {
		return err
	}
	if _, ok := styles[c.Defaults.Style]; !ok && c.Defaults.Style != "" {
		return fmt.Errorf("default style: %w %q", style.ErrUnknownStyle, c.Defaults.Style)
	}

	return nil
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
