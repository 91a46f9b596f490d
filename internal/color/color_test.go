package color

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  RGBA
	}{
		{"F00", RGBA{R: 255, G: 0, B: 0, A: 255}},
		{"#f00", RGBA{R: 255, G: 0, B: 0, A: 255}},
		{"#0F08", RGBA{R: 0, G: 255, B: 0, A: 0x88}},
		{"72DD4D", RGBA{R: 0x72, G: 0xDD, B: 0x4D, A: 255}},
		{"#e14747", RGBA{R: 0xE1, G: 0x47, B: 0x47, A: 255}},
		{"FF000080", RGBA{R: 255, G: 0, B: 0, A: 128}},
		{"#12345678", RGBA{R: 0x12, G: 0x34, B: 0x56, A: 0x78}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_ShortFormsDuplicateNibbles(t *testing.T) {
	for v := 0; v < 0x1000; v++ {
		s := fmt.Sprintf("%03x", v)
		got, err := Parse(s)
		require.NoError(t, err, s)

		r, g, b := uint8(v>>8&0xF), uint8(v>>4&0xF), uint8(v&0xF)
		assert.Equal(t, RGBA{R: r*16 + r, G: g*16 + g, B: b*16 + b, A: 255}, got, s)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		input string
		want  error
	}{
		{"", ErrInvalidLength},
		{"#", ErrInvalidLength},
		{"12", ErrInvalidLength},
		{"12345", ErrInvalidLength},
		{"1234567", ErrInvalidLength},
		{"123456789", ErrInvalidLength},
		{"##FFF", ErrInvalidDigits},
		{"GGG", ErrInvalidDigits},
		{"12345Z", ErrInvalidDigits},
		{"+FFF", ErrInvalidDigits},
		{"0x12", ErrInvalidDigits},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := Parse(tt.input)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)

			var pe *ParseError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, tt.input, pe.Input)
		})
	}
}

func TestParseAlpha(t *testing.T) {
	got, err := ParseAlpha("F00", 0.5)
	require.NoError(t, err)
	assert.Equal(t, RGBA{R: 255, A: 128}, got)

	// Explicit alpha wins over the literal's alpha.
	got, err = ParseAlpha("FF000080", 1)
	require.NoError(t, err)
	assert.Equal(t, uint8(255), got.A)

	got, err = ParseAlpha("#0F08", 0)
	require.NoError(t, err)
	assert.Equal(t, uint8(0), got.A)

	got, err = ParseAlpha("000000", 7)
	require.NoError(t, err)
	assert.Equal(t, uint8(255), got.A)

	_, err = ParseAlpha("nope", 1)
	assert.ErrorIs(t, err, ErrInvalidDigits)
}

func TestParseARGB(t *testing.T) {
	got, err := ParseARGB("80FF0000")
	require.NoError(t, err)
	assert.Equal(t, RGBA{R: 255, G: 0, B: 0, A: 128}, got)

	// Same digits, different byte order.
	rgba, err := Parse("80FF0000")
	require.NoError(t, err)
	assert.NotEqual(t, got, rgba)

	for _, in := range []string{"F00", "#0F08", "FF0000", "123456789", "#ZZZ", "ZZZZ", "GGGGGG", ""} {
		_, err := ParseARGB(in)
		assert.ErrorIs(t, err, ErrInvalidLength, in)
	}

	_, err = ParseARGB("80FF00ZZ")
	assert.ErrorIs(t, err, ErrInvalidDigits)
}

func TestFromInt(t *testing.T) {
	got, err := FromInt(0x72DD4D, 1)
	require.NoError(t, err)
	assert.Equal(t, RGBA{R: 0x72, G: 0xDD, B: 0x4D, A: 255}, got)

	_, err = FromInt(-1, 1)
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = FromInt(0x1000000, 1)
	assert.ErrorIs(t, err, ErrOutOfRange)

	got, err = FromARGBInt(0x80FF0000)
	require.NoError(t, err)
	assert.Equal(t, RGBA{R: 255, A: 128}, got)

	_, err = FromARGBInt(0x100000000)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestRGBA_Formatting(t *testing.T) {
	c := MustParse("#72DD4D")
	assert.Equal(t, "#72DD4D", c.Hex())
	assert.Equal(t, "rgba(114, 221, 77, 1)", c.CSS())
	assert.True(t, c.Opaque())

	translucent := MustParse("FF000080")
	assert.Equal(t, "#FF000080", translucent.Hex())
	assert.False(t, translucent.Opaque())
}

func TestRGBA_TextRoundTrip(t *testing.T) {
	var c RGBA
	require.NoError(t, c.UnmarshalText([]byte("#F7C11F")))
	assert.Equal(t, RGBA{R: 0xF7, G: 0xC1, B: 0x1F, A: 255}, c)

	text, err := c.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "#F7C11F", string(text))

	assert.Error(t, c.UnmarshalText([]byte("purple")))
}

func TestRGBA_Darken(t *testing.T) {
	c := MustParse("#E14747")
	assert.Equal(t, c, c.Darken(0))
	assert.Equal(t, RGBA{A: 255}, c.Darken(1))

	mid := c.Darken(0.3)
	assert.Less(t, mid.R, c.R)
	assert.Equal(t, c.A, mid.A)
}

func TestMustParse_Panics(t *testing.T) {
	assert.Panics(t, func() { MustParse("xyz1") })
}
