package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jmylchreest/pilltoast/internal/color"
	"github.com/jmylchreest/pilltoast/internal/layout"
	"github.com/jmylchreest/pilltoast/internal/style"
)

// termColor drops alpha; terminals cannot blend.
func termColor(c color.RGBA) lipgloss.Color {
	c.A = 0xFF
	return lipgloss.Color(c.Hex())
}

// RenderPill draws a toast as rows of terminal cells using the frames in g.
// Every row is exactly layout.Cols(g.Width) cells wide.
func RenderPill(message string, st style.Style, g layout.Geometry) []string {
	cols := max(layout.Cols(g.Width), 1)
	rows := max(layout.Rows(g.Height), 1)

	textCol, textRow := layout.Cols(g.Text.X), layout.Rows(g.Text.Y)
	text := layout.WrapCells(message, max(layout.Cols(g.Text.W), 1))

	iconCol, iconRow, glyph := -1, -1, ""
	if g.Icon != nil && st.Icon != nil && st.Icon.Glyph != "" {
		iconCol, iconRow, glyph = layout.Cols(g.Icon.X), layout.Rows(g.Icon.Y), st.Icon.Glyph
	}

	paint := lipgloss.NewStyle().
		Background(termColor(st.Background)).
		Foreground(termColor(st.Text))

	lines := make([]string, rows)
	for r := range rows {
		var row cellRow
		if r == iconRow {
			row.put(iconCol, glyph)
		}
		if i := r - textRow; i >= 0 && i < len(text) {
			row.put(textCol, text[i])
		}
		lines[r] = paint.Render(row.finish(cols))
	}
	return lines
}

// cellRow builds one line of plain text at cell positions.
type cellRow struct {
	b   strings.Builder
	pos int
}

func (c *cellRow) put(col int, s string) {
	if col > c.pos {
		c.b.WriteString(strings.Repeat(" ", col-c.pos))
		c.pos = col
	}
	c.b.WriteString(s)
	c.pos += ansi.StringWidth(s)
}

func (c *cellRow) finish(cols int) string {
	if c.pos < cols {
		c.b.WriteString(strings.Repeat(" ", cols-c.pos))
	}
	return ansi.Truncate(c.b.String(), cols, "")
}
