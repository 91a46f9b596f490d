package toast

import (
	"time"

	"github.com/jmylchreest/pilltoast/internal/layout"
	"github.com/jmylchreest/pilltoast/internal/style"
)

// Point is a position in window coordinates.
type Point struct {
	X, Y float64
}

// Platform supplies the surface toasts are attached to.
type Platform interface {
	// Window returns the current root container, if any.
	Window() (Window, bool)
	// ScreenBounds is used for positioning when there is no window.
	ScreenBounds() layout.Rect
}

// Window is a top-level display surface.
type Window interface {
	Bounds() layout.Rect
	SafeArea() layout.Insets
	// Attach creates a view for spec positioned at spec.Origin.
	Attach(spec ViewSpec) (View, error)
}

// ViewSpec is everything a platform needs to draw a toast.
type ViewSpec struct {
	ID       string
	Message  string
	Style    style.Style
	Geometry layout.Geometry
	Origin   Point
}

// View is an attached toast. Once Alive reports false the view is gone
// for good and must not be touched again.
type View interface {
	Move(x, y float64)
	Alive() bool
	Detach()
}

// Executor is the UI loop. Callbacks run one at a time, in order.
type Executor interface {
	// Post queues fn to run on the loop.
	Post(fn func())
	// AfterFunc queues fn to run on the loop once d has elapsed.
	AfterFunc(d time.Duration, fn func())
}

// Animator moves a view between two points over a fixed duration. It is
// best-effort: if the view dies mid-flight, done is never called.
type Animator interface {
	Animate(v View, from, to Point, d time.Duration, done func())
}

// SoundPlayer plays the sound attached to a style when a toast appears.
type SoundPlayer interface {
	PlayStyle(st style.Style)
}

// detachedView stands in for a real view when no window is available.
type detachedView struct {
	pos  Point
	gone bool
}

func (v *detachedView) Move(x, y float64) { v.pos = Point{X: x, Y: y} }
func (v *detachedView) Alive() bool       { return !v.gone }
func (v *detachedView) Detach()           { v.gone = true }

// StaticPlatform is a Platform with no window; every toast runs its
// lifecycle on a detached view. It is useful for dry runs.
type StaticPlatform struct {
	Screen layout.Rect
}

// Window implements Platform.
func (StaticPlatform) Window() (Window, bool) { return nil, false }

// ScreenBounds implements Platform.
func (p StaticPlatform) ScreenBounds() layout.Rect { return p.Screen }
