package theme

import (
	"os"
	"path/filepath"
	"regexp"
	"time"
)

// importRegex matches @import "file.css"; or @import 'file.css'; or @import url("file.css");
var importRegex = regexp.MustCompile(`@import\s+(?:url\s*\(\s*)?["']([^"']+)["']\s*\)?;?`)

// Theme is a CSS sheet with imports inlined.
type Theme struct {
	Name    string
	Path    string // Empty for bundled sheets
	CSS     string
	ModTime time.Time
	Bundled bool
}

// UserCSSPath returns the path of the optional user sheet.
func UserCSSPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "pilltoast", "style.css"), nil
}

// NewTheme loads the sheet at path.
func NewTheme(name, path string) (*Theme, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	css, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return &Theme{
		Name:    name,
		Path:    path,
		CSS:     ProcessImports(string(css), filepath.Dir(path), nil),
		ModTime: info.ModTime(),
	}, nil
}

// ProcessImports inlines @import statements, resolving them against
// baseDir first and the bundled sheets second. The seen map prevents
// circular imports.
func ProcessImports(css string, baseDir string, seen map[string]bool) string {
	if seen == nil {
		seen = make(map[string]bool)
	}

	return importRegex.ReplaceAllStringFunc(css, func(match string) string {
		submatch := importRegex.FindStringSubmatch(match)
		if len(submatch) < 2 {
			return match
		}
		importPath := submatch[1]

		fullPath := importPath
		if !filepath.IsAbs(importPath) {
			fullPath = filepath.Join(baseDir, importPath)
		}
		if baseDir == "" {
			fullPath = "embedded:" + importPath
		}

		if seen[fullPath] {
			return "/* circular import prevented: " + importPath + " */"
		}
		seen[fullPath] = true

		if baseDir != "" {
			if imported, err := os.ReadFile(fullPath); err == nil {
				return "/* imported: " + importPath + " */\n" +
					ProcessImports(string(imported), filepath.Dir(fullPath), seen)
			}
		}

		if embedded, ok := GetEmbeddedTheme(filepath.Base(importPath)); ok {
			return "/* imported (embedded): " + importPath + " */\n" + ProcessImports(embedded, "", seen)
		}
		return "/* import failed: " + importPath + " */"
	})
}

// Reload re-reads the sheet from disk if it changed. It reports whether
// the CSS differs from before.
func (t *Theme) Reload() (bool, error) {
	if t.Bundled {
		return false, nil
	}

	info, err := os.Stat(t.Path)
	if err != nil {
		return false, err
	}
	if !info.ModTime().After(t.ModTime) {
		return false, nil
	}

	css, err := os.ReadFile(t.Path)
	if err != nil {
		return false, err
	}

	old := t.CSS
	t.CSS = ProcessImports(string(css), filepath.Dir(t.Path), nil)
	t.ModTime = info.ModTime()
	return old != t.CSS, nil
}
