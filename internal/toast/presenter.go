package toast

import (
	"crypto/rand"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/jmylchreest/pilltoast/internal/layout"
	"github.com/jmylchreest/pilltoast/internal/style"
)

// Placement constants.
const (
	// EdgeGap separates a resting toast from the safe area edge.
	EdgeGap = 12.0
	// FallbackSafeTop is used when no window reports its insets.
	FallbackSafeTop = 20.0
)

// ReapDelay is how long after an animation starts a toast whose view died
// is dropped from the active count.
const ReapDelay = 2 * AnimationDuration

// Hooks observe a presenter. They run on the UI loop.
type Hooks struct {
	// OnState is called each time a toast enters a state, starting with
	// Created.
	OnState func(id string, s State)
	// Sound is played when a toast starts appearing.
	Sound SoundPlayer
}

// Options configure a Presenter. Platform and Executor are required.
type Options struct {
	Platform Platform
	Executor Executor
	Animator Animator        // default: TweenAnimator on Executor
	Measurer layout.Measurer // default: CellMeasurer
	Styles   *style.Registry // default: fresh registry
	Logger   *slog.Logger
	Hooks    Hooks
}

// Presenter shows toasts. Callers get no handle: a toast cannot be
// cancelled, extended or observed once shown.
type Presenter struct {
	platform Platform
	exec     Executor
	animator Animator
	engine   *layout.Engine
	styles   *style.Registry
	logger   *slog.Logger
	hooks    Hooks

	// live is only touched on the UI loop; active mirrors its size for
	// readers on other goroutines.
	live   map[string]*instance
	active atomic.Int32
}

type instance struct {
	id       string
	message  string
	style    style.Style
	location Location
	duration Duration

	state    State
	geometry layout.Geometry
	origin   Point
	target   Point
	view     View
	shownAt  time.Time
}

// NewPresenter builds a presenter from opts.
func NewPresenter(opts Options) *Presenter {
	if opts.Platform == nil || opts.Executor == nil {
		panic("toast: Options.Platform and Options.Executor are required")
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Animator == nil {
		opts.Animator = NewTweenAnimator(opts.Executor)
	}
	if opts.Measurer == nil {
		opts.Measurer = layout.CellMeasurer{}
	}
	if opts.Styles == nil {
		opts.Styles = style.NewRegistry()
	}

	return &Presenter{
		platform: opts.Platform,
		exec:     opts.Executor,
		animator: opts.Animator,
		engine:   layout.NewEngine(opts.Measurer),
		styles:   opts.Styles,
		logger:   opts.Logger,
		hooks:    opts.Hooks,
		live:     make(map[string]*instance),
	}
}

// Styles returns the registry presets are resolved from.
func (p *Presenter) Styles() *style.Registry {
	return p.styles
}

// Active returns the number of toasts currently on screen.
func (p *Presenter) Active() int {
	return int(p.active.Load())
}

// ShowInfo shows message in the info preset.
func (p *Presenter) ShowInfo(message string, loc Location, d Duration) {
	p.Show(message, p.styles.Preset(style.Info), loc, d)
}

// ShowSuccess shows message in the success preset.
func (p *Presenter) ShowSuccess(message string, loc Location, d Duration) {
	p.Show(message, p.styles.Preset(style.Success), loc, d)
}

// ShowFail shows message in the fail preset.
func (p *Presenter) ShowFail(message string, loc Location, d Duration) {
	p.Show(message, p.styles.Preset(style.Fail), loc, d)
}

// ShowWarning shows message in the warn preset.
func (p *Presenter) ShowWarning(message string, loc Location, d Duration) {
	p.Show(message, p.styles.Preset(style.Warn), loc, d)
}

// ShowPreset shows message in a registered style. An empty name is info.
func (p *Presenter) ShowPreset(message, name string, loc Location, d Duration) error {
	if name == "" {
		name = style.Info
	}
	st, ok := p.styles.Get(name)
	if !ok {
		return fmt.Errorf("%w %q", style.ErrUnknownStyle, name)
	}
	p.Show(message, st, loc, d)
	return nil
}

// Show presents message in st. It may be called from any goroutine; the
// work happens later on the executor and Show never blocks.
func (p *Presenter) Show(message string, st style.Style, loc Location, d Duration) {
	p.exec.Post(func() {
		p.present(&instance{
			id:       newID(),
			message:  message,
			style:    st,
			location: loc,
			duration: d,
			state:    Created,
		})
	})
}

// surface returns the bounds and insets toasts are placed against, and
// the window to attach to if there is one.
func (p *Presenter) surface() (layout.Rect, layout.Insets, Window) {
	if w, ok := p.platform.Window(); ok && w != nil {
		return w.Bounds(), w.SafeArea(), w
	}
	return p.platform.ScreenBounds(), layout.Insets{Top: FallbackSafeTop}, nil
}

// present runs Created -> Appearing.
func (p *Presenter) present(t *instance) {
	p.enter(t, Created)

	bounds, safe, win := p.surface()
	t.geometry = p.engine.Layout(t.message, t.style, layout.MaxTextWidth(bounds.W))

	x := (bounds.W - t.geometry.Width) / 2
	switch t.location {
	case Top:
		t.origin = Point{X: x, Y: -t.geometry.Height}
		t.target = Point{X: x, Y: safe.Top + EdgeGap}
	default:
		t.origin = Point{X: x, Y: bounds.MaxY()}
		t.target = Point{X: x, Y: bounds.MaxY() - safe.Bottom - EdgeGap - t.geometry.Height}
	}

	spec := ViewSpec{
		ID:       t.id,
		Message:  t.message,
		Style:    t.style,
		Geometry: t.geometry,
		Origin:   t.origin,
	}
	if win != nil {
		view, err := win.Attach(spec)
		if err != nil {
			p.logger.Warn("failed to attach toast view, continuing detached", "toast_id", t.id, "error", err)
		} else {
			t.view = view
		}
	} else {
		p.logger.Debug("no root container, using screen bounds", "toast_id", t.id)
	}
	if t.view == nil {
		t.view = &detachedView{pos: t.origin}
	}

	p.live[t.id] = t
	p.active.Store(int32(len(p.live)))
	t.shownAt = time.Now()

	p.enter(t, Appearing)
	if p.hooks.Sound != nil {
		p.hooks.Sound.PlayStyle(t.style)
	}
	p.logger.Debug("toast appearing",
		"toast_id", t.id,
		"style", t.style.Name,
		"location", t.location,
		"width", t.geometry.Width,
		"height", t.geometry.Height,
		"origin_y", t.origin.Y,
		"target_y", t.target.Y,
	)
	p.animator.Animate(t.view, t.origin, t.target, AnimationDuration, func() { p.hold(t) })
	p.reapAfterAnimation(t, Appearing)
}

// hold runs Appearing -> Holding.
func (p *Presenter) hold(t *instance) {
	p.enter(t, Holding)
	p.exec.AfterFunc(t.duration.Length(), func() { p.dismiss(t) })
}

// dismiss runs Holding -> Dismissing, unless the view was torn down while
// the toast was holding.
func (p *Presenter) dismiss(t *instance) {
	if !t.view.Alive() {
		p.logger.Debug("toast view gone before dismiss", "toast_id", t.id)
		p.forget(t)
		return
	}
	p.enter(t, Dismissing)
	p.animator.Animate(t.view, t.target, t.origin, AnimationDuration, func() { p.destroy(t) })
	p.reapAfterAnimation(t, Dismissing)
}

// destroy runs Dismissing -> Destroyed.
func (p *Presenter) destroy(t *instance) {
	t.view.Detach()
	p.forget(t)
	p.enter(t, Destroyed)
	p.logger.Debug("toast destroyed", "toast_id", t.id, "visible_for", time.Since(t.shownAt))
}

func (p *Presenter) forget(t *instance) {
	delete(p.live, t.id)
	p.active.Store(int32(len(p.live)))
}

// reapAfterAnimation forgets t if its view died while it was in state s.
// Animators never call back for a dead view.
func (p *Presenter) reapAfterAnimation(t *instance, s State) {
	p.exec.AfterFunc(ReapDelay, func() {
		if t.state != s || t.view.Alive() {
			return
		}
		p.logger.Debug("toast view gone mid-animation", "toast_id", t.id, "state", s)
		p.forget(t)
	})
}

func (p *Presenter) enter(t *instance, s State) {
	t.state = s
	if p.hooks.OnState != nil {
		p.hooks.OnState(t.id, s)
	}
}

func newID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String()
}
