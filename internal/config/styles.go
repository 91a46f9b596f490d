package config

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/jmylchreest/pilltoast/internal/color"
	"github.com/jmylchreest/pilltoast/internal/style"
)

// ErrPresetName is returned when [presets] names something other than a
// preset, or [styles] reuses a preset's name.
var ErrPresetName = errors.New("preset name")

// IconNone removes a style's icon.
const IconNone = "none"

// StyleConfig overrides parts of a style. Empty fields keep the base value.
type StyleConfig struct {
	Background string  `toml:"background,omitempty" yaml:"background,omitempty"` // "#RGB", "#RRGGBB", "#RRGGBBAA"...
	Text       string  `toml:"text,omitempty" yaml:"text,omitempty"`
	FontFamily string  `toml:"font_family,omitempty" yaml:"font_family,omitempty"`
	FontSize   float64 `toml:"font_size,omitempty" yaml:"font_size,omitempty"`
	LineHeight float64 `toml:"line_height,omitempty" yaml:"line_height,omitempty"`
	Icon       string  `toml:"icon,omitempty" yaml:"icon,omitempty"` // Icon theme name, or "none"
	Glyph      string  `toml:"glyph,omitempty" yaml:"glyph,omitempty"`
	IconPath   string  `toml:"icon_path,omitempty" yaml:"icon_path,omitempty"`
	Sound      string  `toml:"sound,omitempty" yaml:"sound,omitempty"`
}

// Apply returns base with the overrides in sc.
func (sc StyleConfig) Apply(base style.Style) (style.Style, error) {
	st := base
	if sc.Background != "" {
		c, err := color.Parse(sc.Background)
		if err != nil {
			return st, fmt.Errorf("background: %w", err)
		}
		st.Background = c
	}
	if sc.Text != "" {
		c, err := color.Parse(sc.Text)
		if err != nil {
			return st, fmt.Errorf("text: %w", err)
		}
		st.Text = c
	}

	if sc.FontFamily != "" {
		st.Font.Family = sc.FontFamily
	}
	if sc.FontSize < 0 || sc.LineHeight < 0 {
		return st, fmt.Errorf("font size and line height must not be negative")
	}
	if sc.FontSize > 0 {
		st.Font.Size = sc.FontSize
	}
	if sc.LineHeight > 0 {
		st.Font.LineHeight = sc.LineHeight
	}

	switch {
	case sc.Icon == IconNone:
		st = st.WithIcon(nil)
	case sc.Icon != "" || sc.Glyph != "" || sc.IconPath != "":
		icon := style.Icon{}
		if base.Icon != nil {
			icon = *base.Icon
		}
		if sc.Icon != "" {
			icon.Name = sc.Icon
		}
		if sc.Glyph != "" {
			icon.Glyph = sc.Glyph
		}
		if sc.IconPath != "" {
			icon.Path = expandPath(sc.IconPath)
		}
		st = st.WithIcon(&icon)
	}

	if sc.Sound != "" {
		st.Sound = expandPath(sc.Sound)
	}
	return st, nil
}

// FromStyle captures st as a full set of overrides.
func FromStyle(st style.Style) StyleConfig {
	sc := StyleConfig{
		Background: st.Background.Hex(),
		Text:       st.Text.Hex(),
		FontFamily: st.Font.Family,
		FontSize:   st.Font.Size,
		LineHeight: st.Font.LineHeight,
		Sound:      st.Sound,
	}
	if st.Icon == nil {
		sc.Icon = IconNone
	} else {
		sc.Icon = st.Icon.Name
		sc.Glyph = st.Icon.Glyph
		sc.IconPath = st.Icon.Path
	}
	return sc
}

// BuildStyles resolves the configured presets and custom styles, keyed by
// name. It does not touch any registry.
func (c *Config) BuildStyles() (map[string]style.Style, error) {
	out := style.Defaults()

	for _, name := range slices.Sorted(maps.Keys(c.Presets)) {
		if !style.IsPreset(name) {
			return nil, fmt.Errorf("presets.%s: %w must be one of %v", name, ErrPresetName, style.PresetNames)
		}
		st, err := c.Presets[name].Apply(out[name])
		if err != nil {
			return nil, fmt.Errorf("presets.%s: %w", name, err)
		}
		out[name] = st
	}

	info := out[style.Info]
	for _, name := range slices.Sorted(maps.Keys(c.Styles)) {
		if style.IsPreset(name) {
			return nil, fmt.Errorf("styles.%s: %w is reserved, use [presets.%s]", name, ErrPresetName, name)
		}
		st, err := c.Styles[name].Apply(info)
		if err != nil {
			return nil, fmt.Errorf("styles.%s: %w", name, err)
		}
		st.Name = name
		out[name] = st
	}

	return out, nil
}

// ApplyStyles replaces the contents of reg with the configured styles.
// Nothing is changed if the configuration is invalid.
func (c *Config) ApplyStyles(reg *style.Registry) error {
	styles, err := c.BuildStyles()
	if err != nil {
		return err
	}
	reg.Reset()
	for name, st := range styles {
		reg.Set(name, st)
	}
	return nil
}
