package display

import (
	"math"

	layershell "github.com/diamondburned/gotk4-layer-shell/pkg/gtk4layershell"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
	"github.com/diamondburned/gotk4/pkg/pango"

	"github.com/jmylchreest/pilltoast/internal/layout"
	"github.com/jmylchreest/pilltoast/internal/style"
	"github.com/jmylchreest/pilltoast/internal/theme"
	"github.com/jmylchreest/pilltoast/internal/toast"
)

// Namespace identifies toast surfaces to the compositor.
const Namespace = "pilltoast"

// Popup is one toast window. It implements toast.View.
type Popup struct {
	window *gtk.Window
	closed bool
}

func newPopup(s *Screen, spec toast.ViewSpec) *Popup {
	p := &Popup{window: gtk.NewWindow()}
	p.window.SetApplication(s.app)
	p.window.SetDecorated(false)
	p.window.SetResizable(false)
	p.window.AddCSSClass("pilltoast")
	p.window.SetDefaultSize(int(math.Ceil(spec.Geometry.Width)), int(math.Ceil(spec.Geometry.Height)))

	layershell.InitForWindow(p.window)
	layershell.SetLayer(p.window, s.layer)
	layershell.SetMonitor(p.window, s.monitor)
	layershell.SetExclusiveZone(p.window, 0)
	layershell.SetKeyboardMode(p.window, layershell.LayerShellKeyboardModeNone)
	layershell.SetNamespace(p.window, Namespace)
	layershell.SetAnchor(p.window, layershell.LayerShellEdgeTop, true)
	layershell.SetAnchor(p.window, layershell.LayerShellEdgeLeft, true)

	p.window.SetChild(buildPill(spec))
	p.window.ConnectDestroy(func() { p.closed = true })

	p.Move(spec.Origin.X, spec.Origin.Y)
	p.window.Present()
	return p
}

// buildPill lays out the icon and label at the positions the engine chose.
func buildPill(spec toast.ViewSpec) *gtk.Box {
	g := spec.Geometry

	box := gtk.NewBox(gtk.OrientationHorizontal, 0)
	for _, class := range pillClasses(spec.Style, g) {
		box.AddCSSClass(class)
	}
	box.SetSizeRequest(int(math.Ceil(g.Width)), int(math.Ceil(g.Height)))
	box.SetHAlign(gtk.AlignStart)
	box.SetVAlign(gtk.AlignStart)

	if g.Icon != nil && spec.Style.Icon != nil {
		if icon := buildIcon(spec.Style.Icon); icon != nil {
			box.Append(icon)
		}
	}

	label := gtk.NewLabel(spec.Message)
	label.AddCSSClass("pill-text")
	label.SetWrap(true)
	label.SetWrapMode(pango.WrapWordChar)
	label.SetXAlign(0)
	label.SetSizeRequest(int(math.Ceil(g.Text.W)), int(math.Ceil(g.Text.H)))
	label.SetHExpand(true)
	box.Append(label)

	return box
}

func buildIcon(icon *style.Icon) gtk.Widgetter {
	switch {
	case icon.Path != "":
		img := gtk.NewImageFromFile(icon.Path)
		img.AddCSSClass("pill-icon")
		img.SetPixelSize(int(layout.IconSize))
		return img
	case icon.Name != "":
		img := gtk.NewImageFromIconName(icon.Name)
		img.AddCSSClass("pill-icon")
		img.SetPixelSize(int(layout.IconSize))
		return img
	case icon.Glyph != "":
		lbl := gtk.NewLabel(icon.Glyph)
		lbl.AddCSSClass("pill-glyph")
		return lbl
	default:
		return nil
	}
}

// pillClasses returns the CSS classes of a toast in st laid out as g.
func pillClasses(st style.Style, g layout.Geometry) []string {
	classes := []string{"pill", theme.ClassName(st.Name)}
	if g.Icon != nil {
		classes = append(classes, "has-icon")
	}
	return classes
}

// margins converts a window origin to layer-shell margins.
func margins(x, y float64) (left, top int) {
	return int(math.Round(x)), int(math.Round(y))
}

// Move implements toast.View.
func (p *Popup) Move(x, y float64) {
	if p.closed {
		return
	}
	left, top := margins(x, y)
	layershell.SetMargin(p.window, layershell.LayerShellEdgeLeft, left)
	layershell.SetMargin(p.window, layershell.LayerShellEdgeTop, top)
}

// Alive implements toast.View.
func (p *Popup) Alive() bool {
	return !p.closed
}

// Detach implements toast.View.
func (p *Popup) Detach() {
	if p.closed {
		return
	}
	p.closed = true
	p.window.Destroy()
}
