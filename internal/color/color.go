// Package color parses hex colour literals into RGBA components.
//
// Two byte orders are supported and must not be confused: Parse reads RGB(A)
// with alpha last, ParseARGB reads alpha first.
package color

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

var (
	// ErrInvalidLength is returned for digit counts other than 3, 4, 6 or 8
	// (exactly 8 for ARGB).
	ErrInvalidLength = errors.New("invalid hex length")
	// ErrInvalidDigits is returned when the input contains a non-hex character.
	ErrInvalidDigits = errors.New("invalid hex digits")
	// ErrOutOfRange is returned by the integer constructors.
	ErrOutOfRange = errors.New("value out of range")
)

// ParseError describes a rejected colour literal.
type ParseError struct {
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	return "color: cannot parse " + strconv.Quote(e.Input) + ": " + e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// RGBA is a non-premultiplied 8-bit colour.
type RGBA struct {
	R, G, B, A uint8
}

// White and Black are fully opaque.
var (
	White = RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	Black = RGBA{A: 0xFF}
)

const badNibble = 0xFF

// nibbles maps an ASCII byte to its hex value, or badNibble.
var nibbles = func() (t [256]uint8) {
	for i := range t {
		t[i] = badNibble
	}
	for c := '0'; c <= '9'; c++ {
		t[c] = uint8(c - '0')
	}
	for c := 'a'; c <= 'f'; c++ {
		t[c] = uint8(c-'a') + 10
		t[c-'a'+'A'] = uint8(c-'a') + 10
	}
	return t
}()

// dup expands a 4-bit value to a byte: 0xA -> 0xAA.
func dup(n uint32) uint8 {
	n &= 0xF
	return uint8(n<<4 | n)
}

// scan strips an optional '#' and accumulates the hex digits of s.
func scan(s string) (uint32, int, error) {
	s = strings.TrimPrefix(s, "#")
	n := len(s)
	switch n {
	case 3, 4, 6, 8:
	default:
		return 0, n, ErrInvalidLength
	}
	var v uint32
	for i := 0; i < n; i++ {
		d := nibbles[s[i]]
		if d == badNibble {
			return 0, n, ErrInvalidDigits
		}
		v = v<<4 | uint32(d)
	}
	return v, n, nil
}

// Parse reads a 3, 4, 6 or 8 digit hex literal in RGB(A) order. Forms
// without an alpha component are fully opaque.
func Parse(hex string) (RGBA, error) {
	return parse(hex, -1)
}

// ParseAlpha is Parse with an explicit alpha in [0,1] that overrides any
// alpha carried by the literal.
func ParseAlpha(hex string, alpha float64) (RGBA, error) {
	return parse(hex, int(alphaByte(alpha)))
}

// MustParse is Parse for package-level literals; it panics on error.
func MustParse(hex string) RGBA {
	c, err := Parse(hex)
	if err != nil {
		panic(err)
	}
	return c
}

func parse(hex string, alpha int) (RGBA, error) {
	v, n, err := scan(hex)
	if err != nil {
		return RGBA{}, &ParseError{Input: hex, Err: err}
	}

	var c RGBA
	switch n {
	case 3:
		c = RGBA{R: dup(v >> 8), G: dup(v >> 4), B: dup(v), A: 0xFF}
	case 4:
		c = RGBA{R: dup(v >> 12), G: dup(v >> 8), B: dup(v >> 4), A: dup(v)}
	case 6:
		c = RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xFF}
	case 8:
		c = RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}
	}
	if alpha >= 0 {
		c.A = uint8(alpha)
	}
	return c, nil
}

// ParseARGB reads exactly 8 hex digits with alpha in the first byte.
func ParseARGB(hex string) (RGBA, error) {
	if len(strings.TrimPrefix(hex, "#")) != 8 {
		return RGBA{}, &ParseError{Input: hex, Err: ErrInvalidLength}
	}
	v, _, err := scan(hex)
	if err != nil {
		return RGBA{}, &ParseError{Input: hex, Err: err}
	}
	return fromARGB(v), nil
}

// FromInt builds a colour from a 0xRRGGBB integer with the given alpha.
func FromInt(v int64, alpha float64) (RGBA, error) {
	if v < 0 || v > 0xFFFFFF {
		return RGBA{}, &ParseError{Input: "0x" + strconv.FormatInt(v, 16), Err: ErrOutOfRange}
	}
	return RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: alphaByte(alpha)}, nil
}

// FromARGBInt builds a colour from a 0xAARRGGBB integer.
func FromARGBInt(v int64) (RGBA, error) {
	if v < 0 || v > 0xFFFFFFFF {
		return RGBA{}, &ParseError{Input: "0x" + strconv.FormatInt(v, 16), Err: ErrOutOfRange}
	}
	return fromARGB(uint32(v)), nil
}

func fromARGB(v uint32) RGBA {
	return RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: uint8(v >> 24)}
}

func alphaByte(alpha float64) uint8 {
	switch {
	case math.IsNaN(alpha) || alpha <= 0:
		return 0
	case alpha >= 1:
		return 0xFF
	}
	return uint8(math.Round(alpha * 255))
}

// Opaque reports whether the colour has full alpha.
func (c RGBA) Opaque() bool {
	return c.A == 0xFF
}

// NRGBA converts to the standard library's non-premultiplied colour.
func (c RGBA) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// RGBA implements image/color.Color.
func (c RGBA) RGBA() (r, g, b, a uint32) {
	return c.NRGBA().RGBA()
}

const hexDigits = "0123456789ABCDEF"

// Hex formats the colour as #RRGGBB, or #RRGGBBAA when not opaque.
func (c RGBA) Hex() string {
	n := 3
	if !c.Opaque() {
		n = 4
	}
	buf := make([]byte, 1, 1+2*n)
	buf[0] = '#'
	for _, b := range []uint8{c.R, c.G, c.B, c.A}[:n] {
		buf = append(buf, hexDigits[b>>4], hexDigits[b&0xF])
	}
	return string(buf)
}

// CSS formats the colour for a GTK stylesheet.
func (c RGBA) CSS() string {
	return fmt.Sprintf("rgba(%d, %d, %d, %.3g)", c.R, c.G, c.B, float64(c.A)/255)
}

// Colorful converts to a go-colorful colour, dropping alpha.
func (c RGBA) Colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// Darken blends the colour towards black in Lab space by f in [0,1].
// Alpha is preserved.
func (c RGBA) Darken(f float64) RGBA {
	r, g, b := c.Colorful().BlendLab(colorful.Color{}, f).Clamped().RGB255()
	return RGBA{R: r, G: g, B: b, A: c.A}
}

// MarshalText implements encoding.TextMarshaler.
func (c RGBA) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler so colours can be
// written as hex strings in config files.
func (c *RGBA) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
