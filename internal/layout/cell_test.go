package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jmylchreest/pilltoast/internal/style"
)

func TestCellMeasurer(t *testing.T) {
	m := CellMeasurer{}

	assert.Equal(t, Size{}, m.Measure("", style.Font{}, 100))
	assert.Equal(t, Size{W: 16, H: 16}, m.Measure("hi", style.Font{}, 100))

	wrapped := m.Measure("hello world", style.Font{}, 40)
	assert.LessOrEqual(t, wrapped.W, 40.0)
	assert.Equal(t, 32.0, wrapped.H)

	assert.Equal(t, CellHeight, m.LineHeight(style.SystemFont(30)))
}

func TestCellMeasurer_WideRunes(t *testing.T) {
	size := CellMeasurer{}.Measure("長文字", style.Font{}, 400)
	assert.Equal(t, 6*CellWidth, size.W)
}

func TestColsRows(t *testing.T) {
	assert.Equal(t, 40, Cols(320))
	assert.Equal(t, 0, Cols(7))
	assert.Equal(t, 3, Rows(41))
	assert.Equal(t, 2, Rows(32))
}

func TestCellLayout(t *testing.T) {
	e := NewEngine(CellMeasurer{})
	g := e.Layout("hi", style.Defaults()[style.Info], MaxTextWidth(640))

	assert.Equal(t, 48.0, g.Width)
	assert.Equal(t, 40.0, g.Height)
	assert.Equal(t, 6, Cols(g.Width))
	assert.Equal(t, 3, Rows(g.Height))
}
