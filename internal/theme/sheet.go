package theme

import (
	"fmt"
	"math"
	"strings"

	"github.com/jmylchreest/pilltoast/internal/layout"
	"github.com/jmylchreest/pilltoast/internal/style"
)

// ClassPrefix starts every generated style class.
const ClassPrefix = "pill-"

// ClassName returns the CSS class for the style called name.
func ClassName(name string) string {
	return ClassPrefix + sanitizeClassName(name)
}

// sanitizeClassName lowercases name and turns runs of anything outside
// [a-z0-9] into single hyphens.
func sanitizeClassName(name string) string {
	var b strings.Builder
	hyphen := false
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			hyphen = false
		case !hyphen && b.Len() > 0:
			b.WriteByte('-')
			hyphen = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// StyleSheet generates one rule per style in reg. Corner radii come from
// laying out a line of text with m; opacity scales every background.
func StyleSheet(reg *style.Registry, m layout.Measurer, opacity float64) string {
	engine := layout.NewEngine(m)
	opacity = math.Max(0, math.Min(1, opacity))

	var b strings.Builder
	for _, name := range reg.Names() {
		st, ok := reg.Get(name)
		if !ok {
			continue
		}
		bg := st.Background
		bg.A = uint8(math.Round(float64(bg.A) * opacity))
		radius := engine.Layout("", st, math.MaxFloat64).CornerRadius

		fmt.Fprintf(&b, ".pill.%s {\n", ClassName(name))
		fmt.Fprintf(&b, "  background-color: %s;\n", bg.CSS())
		fmt.Fprintf(&b, "  color: %s;\n", st.Text.CSS())
		fmt.Fprintf(&b, "  border-radius: %gpx;\n", radius)
		if family := strings.ReplaceAll(st.Font.Family, `"`, ""); family != "" {
			fmt.Fprintf(&b, "  font-family: \"%s\";\n", family)
		}
		fmt.Fprintf(&b, "  font-size: %gpt;\n", st.Font.PointSize())
		b.WriteString("}\n")
		fmt.Fprintf(&b, ".pill.%s .pill-icon { color: %s; }\n\n", ClassName(name), st.Text.CSS())
	}
	return b.String()
}

// Compose joins the bundled sheet for scheme, the generated style rules and
// the user's sheet, in increasing precedence. user may be nil.
func Compose(scheme string, generated string, user *Theme) string {
	name := LightThemeName
	if scheme == DarkThemeName {
		name = DarkThemeName
	}
	base, _ := Bundled(name)

	parts := []string{base.CSS, generated}
	if user != nil {
		parts = append(parts, "/* "+user.Path+" */\n"+user.CSS)
	}
	return strings.Join(parts, "\n")
}

