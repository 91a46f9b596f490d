package snapshot

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	"image/png"
	"io"
	"log/slog"
	"math"
	"os"
	"sync"
	"time"

	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	_ "golang.org/x/image/webp"

	"github.com/jmylchreest/pilltoast/internal/color"
	"github.com/jmylchreest/pilltoast/internal/config"
	"github.com/jmylchreest/pilltoast/internal/layout"
	"github.com/jmylchreest/pilltoast/internal/style"
	"github.com/jmylchreest/pilltoast/internal/toast"
)

// Drawing constants.
const (
	// OutlineWidth is the width of the darker rim around the pill.
	OutlineWidth = 1.0
	// OutlineDarken is how far the rim is blended towards black.
	OutlineDarken = 0.25
)

// ErrNotPresented is returned when the presenter never attached a view.
var ErrNotPresented = errors.New("toast was not presented")

// Options control a render.
type Options struct {
	Width, Height int // screen size in pixels; zero uses the config defaults
	Location      toast.Location
	SafeArea      layout.Insets
	Backdrop      color.RGBA // zero is transparent
	Crop          bool       // return only the pill
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = config.DefaultScreenWidth
	}
	if o.Height <= 0 {
		o.Height = config.DefaultScreenHeight
	}
	return o
}

// Renderer rasterises toasts with Go Regular.
type Renderer struct {
	mu       sync.Mutex
	measurer *layout.FontMeasurer
	logger   *slog.Logger
}

// NewRenderer creates a renderer.
func NewRenderer(logger *slog.Logger) (*Renderer, error) {
	if logger == nil {
		logger = slog.Default()
	}
	m, err := layout.NewFontMeasurer()
	if err != nil {
		return nil, err
	}
	return &Renderer{measurer: m, logger: logger}, nil
}

// Measurer returns the measurer geometry is computed with.
func (r *Renderer) Measurer() *layout.FontMeasurer {
	return r.measurer
}

// Render draws message in st where the presenter would rest it on a
// screen of the configured size.
func (r *Renderer) Render(message string, st style.Style, opts Options) (*image.NRGBA, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	opts = opts.withDefaults()
	surface := &canvas{
		bounds: layout.Rect{W: float64(opts.Width), H: float64(opts.Height)},
		safe:   opts.SafeArea,
	}
	clock := toast.NewFakeClock(time.Unix(0, 0))
	p := toast.NewPresenter(toast.Options{
		Platform: surface,
		Executor: clock,
		Measurer: r.measurer,
		Logger:   r.logger,
	})
	p.Show(message, st, opts.Location, toast.Short)
	clock.Advance(toast.AnimationDuration)
	if surface.view == nil {
		return nil, ErrNotPresented
	}

	img := image.NewNRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	if opts.Backdrop.A > 0 {
		draw.Draw(img, img.Bounds(), image.NewUniform(opts.Backdrop.NRGBA()), image.Point{}, draw.Src)
	}
	if err := r.drawPill(img, surface.view.spec, surface.view.at); err != nil {
		return nil, err
	}

	if opts.Crop {
		g := surface.view.spec.Geometry
		at := surface.view.at
		bounds := image.Rect(
			int(math.Floor(at.X)), int(math.Floor(at.Y)),
			int(math.Ceil(at.X+g.Width)), int(math.Ceil(at.Y+g.Height)),
		).Intersect(img.Bounds())
		crop := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		draw.Draw(crop, crop.Bounds(), img, bounds.Min, draw.Src)
		return crop, nil
	}
	return img, nil
}

func (r *Renderer) drawPill(dst *image.NRGBA, spec toast.ViewSpec, at toast.Point) error {
	g := spec.Geometry
	st := spec.Style
	box := layout.Rect{X: at.X, Y: at.Y, W: g.Width, H: g.Height}

	rim := newPath(dst.Bounds())
	rim.roundedRect(box, g.CornerRadius)
	rim.fill(dst, st.Background.Darken(OutlineDarken))

	body := newPath(dst.Bounds())
	body.roundedRect(inset(box, OutlineWidth), g.CornerRadius-OutlineWidth)
	body.fill(dst, st.Background)

	face, err := r.measurer.Face(st.Font)
	if err != nil {
		return fmt.Errorf("failed to load font face: %w", err)
	}

	if g.Icon != nil && st.Icon != nil {
		icon := layout.Rect{X: at.X + g.Icon.X, Y: at.Y + g.Icon.Y, W: g.Icon.W, H: g.Icon.H}
		r.drawIcon(dst, st, icon, face)
	}

	lineHeight := r.measurer.LineHeight(st.Font)
	ascent := face.Metrics().Ascent
	d := font.Drawer{Dst: dst, Src: image.NewUniform(st.Text.NRGBA()), Face: face}
	for i, line := range r.measurer.Wrap(spec.Message, st.Font, g.Text.W) {
		d.Dot = fixed.Point26_6{
			X: toFixed(at.X + g.Text.X),
			Y: toFixed(at.Y+g.Text.Y+float64(i)*lineHeight) + ascent,
		}
		d.DrawString(line)
	}
	return nil
}

// drawIcon prefers an image file, then the built-in marks, then the glyph.
func (r *Renderer) drawIcon(dst *image.NRGBA, st style.Style, box layout.Rect, face font.Face) {
	icon := st.Icon
	if icon.Path != "" {
		err := drawImageFile(dst, icon.Path, box)
		if err == nil {
			return
		}
		r.logger.Warn("failed to draw icon image, falling back", "path", icon.Path, "error", err)
	}
	if drawMark(dst, icon.Name, box, st) {
		return
	}
	if icon.Glyph == "" {
		return
	}
	w := float64(font.MeasureString(face, icon.Glyph)) / 64
	m := face.Metrics()
	baseline := box.Y + (box.H+float64(m.Ascent-m.Descent)/64)/2
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(st.Text.NRGBA()),
		Face: face,
		Dot:  fixed.Point26_6{X: toFixed(box.X + (box.W-w)/2), Y: toFixed(baseline)},
	}
	d.DrawString(icon.Glyph)
}

// drawMark draws the built-in icons as a disc in the text colour with the
// mark cut out in the background colour.
func drawMark(dst *image.NRGBA, name string, box layout.Rect, st style.Style) bool {
	var strokes [][4]float64
	switch name {
	case style.IconSuccess.Name:
		strokes = [][4]float64{{0.28, 0.52, 0.44, 0.68}, {0.44, 0.68, 0.74, 0.34}}
	case style.IconFail.Name:
		strokes = [][4]float64{{0.32, 0.32, 0.68, 0.68}, {0.68, 0.32, 0.32, 0.68}}
	case style.IconWarning.Name:
		strokes = [][4]float64{{0.5, 0.22, 0.5, 0.58}, {0.5, 0.72, 0.5, 0.76}}
	default:
		return false
	}

	disc := newPath(dst.Bounds())
	disc.circle(box.X+box.W/2, box.Y+box.H/2, math.Min(box.W, box.H)/2)
	disc.fill(dst, st.Text)

	mark := newPath(dst.Bounds())
	w := box.W * 0.14
	for _, s := range strokes {
		mark.segment(box.X+s[0]*box.W, box.Y+s[1]*box.H, box.X+s[2]*box.W, box.Y+s[3]*box.H, w)
	}
	mark.fill(dst, st.Background)
	return true
}

func drawImageFile(dst *image.NRGBA, path string, box layout.Rect) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	target := image.Rect(
		int(math.Round(box.X)), int(math.Round(box.Y)),
		int(math.Round(box.MaxX())), int(math.Round(box.MaxY())),
	)
	xdraw.CatmullRom.Scale(dst, target, src, src.Bounds(), xdraw.Over, nil)
	return nil
}

// WritePNG encodes img as PNG.
func WritePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}

// SavePNG writes img to path.
func SavePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := WritePNG(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func toFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(v * 64))
}
