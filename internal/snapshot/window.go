package snapshot

import (
	"github.com/jmylchreest/pilltoast/internal/layout"
	"github.com/jmylchreest/pilltoast/internal/toast"
)

// canvas is an offscreen window that records where the presenter puts a
// toast.
type canvas struct {
	bounds layout.Rect
	safe   layout.Insets
	view   *capture
}

func (c *canvas) Window() (toast.Window, bool) { return c, true }
func (c *canvas) ScreenBounds() layout.Rect      { return c.bounds }
func (c *canvas) Bounds() layout.Rect            { return c.bounds }
func (c *canvas) SafeArea() layout.Insets        { return c.safe }

func (c *canvas) Attach(spec toast.ViewSpec) (toast.View, error) {
	c.view = &capture{spec: spec, at: spec.Origin}
	return c.view, nil
}

type capture struct {
	spec toast.ViewSpec
	at   toast.Point
}

func (v *capture) Move(x, y float64) { v.at = toast.Point{X: x, Y: y} }
func (v *capture) Alive() bool        { return true }
func (v *capture) Detach()            {}
