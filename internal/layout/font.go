package layout

import (
	"fmt"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/jmylchreest/pilltoast/internal/style"
)

// FontMeasurer measures text with real glyph metrics. Faces are cached per
// point size. Font families are not resolved; every family is set in Go
// Regular.
type FontMeasurer struct {
	mu    sync.Mutex
	font  *opentype.Font
	dpi   float64
	faces map[float64]font.Face
}

// NewFontMeasurer parses the bundled Go Regular font.
func NewFontMeasurer() (*FontMeasurer, error) {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	return &FontMeasurer{
		font:  f,
		dpi:   72,
		faces: make(map[float64]font.Face),
	}, nil
}

// Face returns the cached face for f. Faces are not safe for concurrent
// use; callers outside this package must not share them across goroutines.
func (m *FontMeasurer) Face(f style.Font) (font.Face, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.faceLocked(f)
}

func (m *FontMeasurer) faceLocked(f style.Font) (font.Face, error) {
	size := f.PointSize()
	if face, ok := m.faces[size]; ok {
		return face, nil
	}
	face, err := opentype.NewFace(m.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     m.dpi,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, err
	}
	m.faces[size] = face
	return face, nil
}

// LineHeight implements Measurer. An explicit Font.LineHeight wins over the
// face metrics.
func (m *FontMeasurer) LineHeight(f style.Font) float64 {
	if f.LineHeight > 0 {
		return f.LineHeight
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	face, err := m.faceLocked(f)
	if err != nil {
		return f.Leading()
	}
	return fixedToFloat(face.Metrics().Height)
}

// Measure implements Measurer.
func (m *FontMeasurer) Measure(text string, f style.Font, maxWidth float64) Size {
	lines := m.Wrap(text, f, maxWidth)
	if len(lines) == 0 {
		return Size{}
	}

	m.mu.Lock()
	face, err := m.faceLocked(f)
	if err != nil {
		m.mu.Unlock()
		return Size{W: maxWidth, H: float64(len(lines)) * f.Leading()}
	}
	var width fixed.Int26_6
	for _, line := range lines {
		width = max(width, font.MeasureString(face, line))
	}
	m.mu.Unlock()

	return Size{W: fixedToFloat(width), H: float64(len(lines)) * m.LineHeight(f)}
}

// Wrap breaks text into lines no wider than maxWidth. Explicit newlines
// are kept; words wider than a line are split between runes.
func (m *FontMeasurer) Wrap(text string, f style.Font, maxWidth float64) []string {
	if text == "" {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	face, err := m.faceLocked(f)
	if err != nil {
		return strings.Split(text, "\n")
	}

	limit := floatToFixed(maxWidth)
	fits := func(s string) bool {
		return font.MeasureString(face, s) <= limit
	}

	var lines []string
	for _, para := range strings.Split(text, "\n") {
		start := len(lines)
		line := ""
		for _, word := range strings.Fields(para) {
			candidate := word
			if line != "" {
				candidate = line + " " + word
			}
			if fits(candidate) {
				line = candidate
				continue
			}
			if line != "" {
				lines = append(lines, line)
				line = ""
			}
			for word != "" && !fits(word) {
				head, tail := splitToFit(word, fits)
				lines = append(lines, head)
				word = tail
			}
			line = word
		}
		if line != "" || len(lines) == start {
			lines = append(lines, line)
		}
	}
	return lines
}

// splitToFit returns the longest rune prefix of word that fits, always
// taking at least one rune so wrapping makes progress.
func splitToFit(word string, fits func(string) bool) (string, string) {
	runes := []rune(word)
	n := 1
	for n < len(runes) && fits(string(runes[:n+1])) {
		n++
	}
	return string(runes[:n]), string(runes[n:])
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

func floatToFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}
