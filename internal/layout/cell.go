package layout

import (
	"math"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/jmylchreest/pilltoast/internal/style"
)

// Terminal cell size in layout units.
const (
	CellWidth  = 8.0
	CellHeight = 16.0
)

// CellMeasurer measures text in terminal cells. Fonts are ignored; every
// line is one cell tall.
type CellMeasurer struct{}

// Measure implements Measurer.
func (CellMeasurer) Measure(text string, _ style.Font, maxWidth float64) Size {
	if text == "" {
		return Size{}
	}
	lines := WrapCells(text, Cols(maxWidth))
	width := 0
	for _, line := range lines {
		width = max(width, ansi.StringWidth(line))
	}
	return Size{W: float64(width) * CellWidth, H: float64(len(lines)) * CellHeight}
}

// LineHeight implements Measurer.
func (CellMeasurer) LineHeight(style.Font) float64 {
	return CellHeight
}

// WrapCells wraps text to at most cols cells per line, breaking long words.
func WrapCells(text string, cols int) []string {
	if text == "" {
		return nil
	}
	return strings.Split(ansi.Wrap(text, max(cols, 1), ""), "\n")
}

// Cols converts a width in layout units to whole terminal columns,
// rounding down.
func Cols(units float64) int {
	return int(math.Floor(units / CellWidth))
}

// Rows converts a height in layout units to terminal rows, rounding to the
// nearest row.
func Rows(units float64) int {
	return int(math.Round(units / CellHeight))
}
