package snapshot

import (
	"image"
	"image/draw"
	"math"

	"golang.org/x/image/vector"

	"github.com/jmylchreest/pilltoast/internal/color"
	"github.com/jmylchreest/pilltoast/internal/layout"
)

// kappa places cubic control points for a quarter circle.
const kappa = 0.5522847498

// path accumulates shapes for one fill.
type path struct {
	z *vector.Rasterizer
}

func newPath(b image.Rectangle) *path {
	return &path{z: vector.NewRasterizer(b.Dx(), b.Dy())}
}

func (p *path) fill(dst draw.Image, c color.RGBA) {
	p.z.Draw(dst, dst.Bounds(), image.NewUniform(c.NRGBA()), image.Point{})
}

// roundedRect adds r with corners of the given radius, clamped to half the
// shorter side.
func (p *path) roundedRect(r layout.Rect, radius float64) {
	radius = math.Max(0, math.Min(radius, math.Min(r.W, r.H)/2))
	x0, y0 := float32(r.X), float32(r.Y)
	x1, y1 := float32(r.MaxX()), float32(r.MaxY())
	rad := float32(radius)
	k := rad * kappa

	p.z.MoveTo(x0+rad, y0)
	p.z.LineTo(x1-rad, y0)
	p.z.CubeTo(x1-rad+k, y0, x1, y0+rad-k, x1, y0+rad)
	p.z.LineTo(x1, y1-rad)
	p.z.CubeTo(x1, y1-rad+k, x1-rad+k, y1, x1-rad, y1)
	p.z.LineTo(x0+rad, y1)
	p.z.CubeTo(x0+rad-k, y1, x0, y1-rad+k, x0, y1-rad)
	p.z.LineTo(x0, y0+rad)
	p.z.CubeTo(x0, y0+rad-k, x0+rad-k, y0, x0+rad, y0)
	p.z.ClosePath()
}

// circle adds a circle centred on (cx, cy).
func (p *path) circle(cx, cy, r float64) {
	p.roundedRect(layout.Rect{X: cx - r, Y: cy - r, W: 2 * r, H: 2 * r}, r)
}

// segment adds a straight stroke of width w from (x0, y0) to (x1, y1).
func (p *path) segment(x0, y0, x1, y1, w float64) {
	dx, dy := x1-x0, y1-y0
	n := math.Hypot(dx, dy)
	if n == 0 {
		return
	}
	// Half-width normal.
	nx, ny := -dy/n*w/2, dx/n*w/2
	p.z.MoveTo(float32(x0+nx), float32(y0+ny))
	p.z.LineTo(float32(x1+nx), float32(y1+ny))
	p.z.LineTo(float32(x1-nx), float32(y1-ny))
	p.z.LineTo(float32(x0-nx), float32(y0-ny))
	p.z.ClosePath()
}

// inset shrinks r by d on every side.
func inset(r layout.Rect, d float64) layout.Rect {
	return layout.Rect{X: r.X + d, Y: r.Y + d, W: math.Max(0, r.W-2*d), H: math.Max(0, r.H-2*d)}
}
