// Package style defines the visual style of a toast and the registry of
// named presets shared by every presenter in a process.
package style

import (
	"github.com/jmylchreest/pilltoast/internal/color"
)

// Preset names.
const (
	Info    = "info"
	Success = "success"
	Fail    = "fail"
	Warn    = "warn"
)

// PresetNames lists the built-in presets in display order.
var PresetNames = []string{Info, Success, Fail, Warn}

// Font defaults.
const (
	DefaultFontFamily = "system-ui"
	DefaultFontSize   = 14.0
	lineHeightFactor  = 1.2
)

// Font describes the typeface used for the toast text.
type Font struct {
	Family     string  `toml:"family" yaml:"family"`
	Size       float64 `toml:"size" yaml:"size"`
	LineHeight float64 `toml:"line_height,omitempty" yaml:"line_height,omitempty"` // 0 = Size * 1.2
}

// SystemFont returns the default font at the given size.
func SystemFont(size float64) Font {
	return Font{Family: DefaultFontFamily, Size: size}
}

// PointSize returns Size, or DefaultFontSize when unset.
func (f Font) PointSize() float64 {
	if f.Size <= 0 {
		return DefaultFontSize
	}
	return f.Size
}

// Leading returns the line height in layout units.
func (f Font) Leading() float64 {
	if f.LineHeight > 0 {
		return f.LineHeight
	}
	return f.PointSize() * lineHeightFactor
}

// Icon is a reference to an image drawn to the left of the text.
// Back ends pick the field they understand: GTK uses Name, the terminal
// uses Glyph and raster output uses Path.
type Icon struct {
	Name  string `toml:"name,omitempty" yaml:"name,omitempty"`   // icon-theme name
	Glyph string `toml:"glyph,omitempty" yaml:"glyph,omitempty"` // terminal rendition
	Path  string `toml:"path,omitempty" yaml:"path,omitempty"`   // image file
}

// Built-in icons for the success, fail and warn presets.
var (
	IconSuccess = Icon{Name: "emblem-ok-symbolic", Glyph: "✔"}
	IconFail    = Icon{Name: "dialog-error-symbolic", Glyph: "✖"}
	IconWarning = Icon{Name: "dialog-warning-symbolic", Glyph: "!"}
)

// Style is an immutable description of how a toast looks.
type Style struct {
	Name       string     `toml:"-" yaml:"name"`
	Background color.RGBA `toml:"background" yaml:"background"`
	Text       color.RGBA `toml:"text" yaml:"text"`
	Font       Font       `toml:"font" yaml:"font"`
	Icon       *Icon      `toml:"icon,omitempty" yaml:"icon,omitempty"`
	Sound      string     `toml:"sound,omitempty" yaml:"sound,omitempty"` // played on appear
}

// New builds a custom style.
func New(background, text color.RGBA, font Font, icon *Icon) Style {
	return Style{Background: background, Text: text, Font: font, Icon: icon.clone()}
}

// HasIcon reports whether an icon slot is reserved.
func (s Style) HasIcon() bool {
	return s.Icon != nil
}

// WithIcon returns a copy of s using icon; nil removes the icon.
func (s Style) WithIcon(icon *Icon) Style {
	s.Icon = icon.clone()
	return s
}

func (s Style) clone() Style {
	s.Icon = s.Icon.clone()
	return s
}

func (i *Icon) clone() *Icon {
	if i == nil {
		return nil
	}
	c := *i
	return &c
}

// Defaults returns fresh copies of the four built-in presets.
func Defaults() map[string]Style {
	font := SystemFont(DefaultFontSize)
	return map[string]Style{
		Info: {
			Name:       Info,
			Background: color.Black,
			Text:       color.White,
			Font:       font,
		},
		Success: {
			Name:       Success,
			Background: color.MustParse("#72DD4D"),
			Text:       color.White,
			Font:       font,
			Icon:       IconSuccess.clone(),
		},
		Fail: {
			Name:       Fail,
			Background: color.MustParse("#E14747"),
			Text:       color.White,
			Font:       font,
			Icon:       IconFail.clone(),
		},
		Warn: {
			Name:       Warn,
			Background: color.MustParse("#F7C11F"),
			Text:       color.White,
			Font:       font,
			Icon:       IconWarning.clone(),
		},
	}
}
