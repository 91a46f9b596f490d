package theme

import (
	"embed"
	"strings"
)

// EmbeddedThemes contains all bundled theme CSS files.
//
//go:embed themes/*.css
var EmbeddedThemes embed.FS

// Bundled theme names, one per colour scheme.
const (
	LightThemeName = "light"
	DarkThemeName  = "dark"
)

// GetEmbeddedTheme retrieves a bundled sheet by name, without resolving
// its imports.
func GetEmbeddedTheme(name string) (string, bool) {
	data, err := EmbeddedThemes.ReadFile("themes/" + strings.TrimSuffix(name, ".css") + ".css")
	if err != nil {
		return "", false
	}
	return string(data), true
}

// Bundled returns a bundled theme with its imports resolved.
func Bundled(name string) (*Theme, bool) {
	css, ok := GetEmbeddedTheme(name)
	if !ok {
		return nil, false
	}
	return &Theme{
		Name:    name,
		CSS:     ProcessImports(css, "", nil),
		Bundled: true,
	}, true
}
