// Package layout computes the geometry of a toast pill: its size, corner
// radius and the frames of the icon and text inside it.
package layout

import (
	"math"

	"github.com/jmylchreest/pilltoast/internal/style"
)

// Insets are distances from the four edges of a box.
type Insets struct {
	Top, Left, Bottom, Right float64
}

// Design constants.
const (
	IconSize     = 16.0
	IconSpacing  = 8.0
	ScreenMargin = 24.0
)

// Padding is the space between the pill edge and its content.
var Padding = Insets{Top: 12, Left: 16, Bottom: 12, Right: 16}

// Size is a width and height in layout units.
type Size struct {
	W, H float64
}

// Rect is an axis-aligned box relative to the pill's origin.
type Rect struct {
	X, Y, W, H float64
}

// MaxX returns the right edge.
func (r Rect) MaxX() float64 { return r.X + r.W }

// MaxY returns the bottom edge.
func (r Rect) MaxY() float64 { return r.Y + r.H }

// Geometry is the computed shape of a toast. It is immutable once computed.
type Geometry struct {
	Width        float64
	Height       float64
	CornerRadius float64
	Icon         *Rect // nil when the style has no icon
	Text         Rect
}

// Measurer is the text measurement service.
type Measurer interface {
	// Measure returns the bounding box of text wrapped to maxWidth with
	// unbounded height.
	Measure(text string, font style.Font, maxWidth float64) Size
	// LineHeight returns the height of one line set in font.
	LineHeight(font style.Font) float64
}

// Engine lays out toasts. It is a pure function of its inputs.
type Engine struct {
	measurer Measurer
}

// NewEngine returns an engine measuring text with m.
func NewEngine(m Measurer) *Engine {
	return &Engine{measurer: m}
}

// MaxTextWidth returns the width available to a toast's text on a screen
// of the given width, keeping ScreenMargin clear on both sides.
func MaxTextWidth(screenWidth float64) float64 {
	return math.Max(0, screenWidth-2*ScreenMargin-(Padding.Left+Padding.Right))
}

// Layout computes the geometry of message set in st within maxWidth.
func (e *Engine) Layout(message string, st style.Style, maxWidth float64) Geometry {
	lineHeight := math.Ceil(e.measurer.LineHeight(st.Font))

	// The icon is dropped when its slot alone would overflow maxWidth.
	iconFits := st.HasIcon() && maxWidth >= IconSize+IconSpacing

	textMax := maxWidth
	if iconFits {
		textMax -= IconSize + IconSpacing
	}
	textMax = math.Max(0, textMax)

	measured := e.measurer.Measure(message, st.Font, textMax)
	textW := math.Min(math.Ceil(measured.W), textMax)
	// An empty message still occupies one line.
	textH := math.Max(math.Ceil(measured.H), lineHeight)

	g := Geometry{
		CornerRadius: (lineHeight + Padding.Top + Padding.Bottom) / 2,
	}

	if !iconFits {
		g.Text = Rect{X: Padding.Left, Y: Padding.Top, W: textW, H: textH}
		g.Width = g.Text.MaxX() + Padding.Right
		g.Height = g.Text.MaxY() + Padding.Bottom
		return g
	}

	content := math.Max(textH, IconSize)
	g.Height = content + Padding.Top + Padding.Bottom

	icon := Rect{X: Padding.Left, Y: (g.Height - IconSize) / 2, W: IconSize, H: IconSize}
	g.Icon = &icon
	g.Text = Rect{
		X: icon.MaxX() + IconSpacing,
		Y: Padding.Top + (content-textH)/2,
		W: textW,
		H: textH,
	}
	g.Width = g.Text.MaxX() + Padding.Right
	return g
}
