package toast

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"
)

// FrameInterval is the tick of the built-in animators.
const FrameInterval = time.Second / 60

// frames splits d into whole frames, at least one.
func frames(d time.Duration) int {
	n := int(math.Round(float64(d) / float64(FrameInterval)))
	if n < 1 {
		n = 1
	}
	return n
}

// run schedules n ticks spread evenly over d on exec. Tick i fires at
// exactly d*i/n after the first was scheduled. tick returns false to stop.
func run(exec Executor, d time.Duration, n int, tick func(i int) bool, done func()) {
	var step func(i int)
	step = func(i int) {
		if !tick(i) {
			return
		}
		if i == n {
			if done != nil {
				done()
			}
			return
		}
		next := i + 1
		delay := d*time.Duration(next)/time.Duration(n) - d*time.Duration(i)/time.Duration(n)
		exec.AfterFunc(delay, func() { step(next) })
	}
	exec.AfterFunc(d/time.Duration(n), func() { step(1) })
}

// TweenAnimator eases a view along a straight line with an ease-out
// cubic curve.
type TweenAnimator struct {
	exec Executor
}

// NewTweenAnimator returns a tween animator ticking on exec.
func NewTweenAnimator(exec Executor) *TweenAnimator {
	return &TweenAnimator{exec: exec}
}

// Animate implements Animator.
func (a *TweenAnimator) Animate(v View, from, to Point, d time.Duration, done func()) {
	n := frames(d)
	run(a.exec, d, n, func(i int) bool {
		if !v.Alive() {
			return false
		}
		t := easeOutCubic(float64(i) / float64(n))
		v.Move(lerp(from.X, to.X, t), lerp(from.Y, to.Y, t))
		return true
	}, done)
}

func easeOutCubic(t float64) float64 {
	u := 1 - t
	return 1 - u*u*u
}

func lerp(a, b, t float64) float64 {
	if t >= 1 {
		return b
	}
	return a + (b-a)*t
}

// Spring tuning for SpringAnimator.
const (
	SpringFrequency = 18.0
	SpringDamping   = 0.9
)

// SpringAnimator drives a view with a damped spring. The spring may not
// have settled when the duration ends; the last frame snaps to the target
// so the slide still takes exactly d.
type SpringAnimator struct {
	exec Executor
}

// NewSpringAnimator returns a spring animator ticking on exec.
func NewSpringAnimator(exec Executor) *SpringAnimator {
	return &SpringAnimator{exec: exec}
}

// Animate implements Animator.
func (a *SpringAnimator) Animate(v View, from, to Point, d time.Duration, done func()) {
	spring := harmonica.NewSpring(harmonica.FPS(60), SpringFrequency, SpringDamping)
	pos, vel := from, Point{}
	n := frames(d)
	run(a.exec, d, n, func(i int) bool {
		if !v.Alive() {
			return false
		}
		if i == n {
			pos = to
		} else {
			pos.X, vel.X = spring.Update(pos.X, vel.X, to.X)
			pos.Y, vel.Y = spring.Update(pos.Y, vel.Y, to.Y)
		}
		v.Move(pos.X, pos.Y)
		return true
	}, done)
}
