package tui

import (
	"math"
	"slices"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/jmylchreest/pilltoast/internal/layout"
	"github.com/jmylchreest/pilltoast/internal/toast"
)

// Terminal size assumed until the first resize.
const (
	DefaultCols = 80
	DefaultRows = 24
)

// Screen is the terminal as a toast surface. It implements toast.Platform
// and toast.Window. It is only touched from Update and View.
type Screen struct {
	cols, rows int
	sized      bool
	pills      []*pill
}

// NewScreen returns a screen of the default size that reports no window
// until Resize is called.
func NewScreen() *Screen {
	return &Screen{cols: DefaultCols, rows: DefaultRows}
}

// Resize records the terminal size in cells.
func (s *Screen) Resize(cols, rows int) {
	s.cols, s.rows = cols, rows
	s.sized = true
}

// Size returns the terminal size in cells.
func (s *Screen) Size() (cols, rows int) {
	return s.cols, s.rows
}

// Window implements toast.Platform.
func (s *Screen) Window() (toast.Window, bool) {
	if !s.sized {
		return nil, false
	}
	return s, true
}

// ScreenBounds implements toast.Platform.
func (s *Screen) ScreenBounds() layout.Rect {
	return s.Bounds()
}

// Bounds implements toast.Window.
func (s *Screen) Bounds() layout.Rect {
	return layout.Rect{W: float64(s.cols) * layout.CellWidth, H: float64(s.rows) * layout.CellHeight}
}

// SafeArea implements toast.Window. Terminals have no unsafe regions.
func (s *Screen) SafeArea() layout.Insets {
	return layout.Insets{}
}

// Attach implements toast.Window.
func (s *Screen) Attach(spec toast.ViewSpec) (toast.View, error) {
	lines := RenderPill(spec.Message, spec.Style, spec.Geometry)
	p := &pill{
		screen: s,
		lines:  lines,
		width:  ansi.StringWidth(lines[0]),
		x:      spec.Origin.X,
		y:      spec.Origin.Y,
		alive:  true,
	}
	s.pills = append(s.pills, p)
	return p, nil
}

// Pills returns the number of attached pills.
func (s *Screen) Pills() int {
	return len(s.pills)
}

// Compose draws the attached pills over base. Later pills are drawn on top.
func (s *Screen) Compose(base string) string {
	canvas := strings.Split(base, "\n")
	for len(canvas) < s.rows {
		canvas = append(canvas, "")
	}

	for _, p := range s.pills {
		col := int(math.Round(p.x / layout.CellWidth))
		row := int(math.Round(p.y / layout.CellHeight))
		for i, line := range p.lines {
			r := row + i
			if r < 0 || r >= len(canvas) {
				continue
			}
			canvas[r] = overlayLine(canvas[r], line, col, p.width)
		}
	}
	return strings.Join(canvas, "\n")
}

// overlayLine replaces width cells of base starting at col with top.
func overlayLine(base, top string, col, width int) string {
	if col < 0 {
		top = ansi.TruncateLeft(top, -col, "")
		width += col
		col = 0
	}
	if width <= 0 {
		return base
	}
	if w := ansi.StringWidth(base); w < col+width {
		base += strings.Repeat(" ", col+width-w)
	}
	return ansi.Truncate(base, col, "") + top + ansi.TruncateLeft(base, col+width, "")
}

func (s *Screen) remove(p *pill) {
	s.pills = slices.DeleteFunc(s.pills, func(q *pill) bool { return q == p })
}

// pill is an attached toast. It implements toast.View.
type pill struct {
	screen *Screen
	lines  []string
	width  int
	x, y   float64
	alive  bool
}

func (p *pill) Move(x, y float64) {
	p.x, p.y = x, y
}

func (p *pill) Alive() bool {
	return p.alive
}

func (p *pill) Detach() {
	if !p.alive {
		return
	}
	p.alive = false
	p.screen.remove(p)
}
