package toast

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func animators(clock *FakeClock) map[string]Animator {
	return map[string]Animator{
		"tween":  NewTweenAnimator(clock),
		"spring": NewSpringAnimator(clock),
	}
}

func TestAnimators_FinishAtTargetOnTime(t *testing.T) {
	for name := range animators(nil) {
		t.Run(name, func(t *testing.T) {
			clock := NewFakeClock(time.Unix(0, 0))
			a := animators(clock)[name]
			v := &fakeView{}

			var doneAt time.Duration = -1
			a.Animate(v, Point{X: 10, Y: 800}, Point{X: 10, Y: 700}, AnimationDuration, func() {
				doneAt = clock.Elapsed(time.Unix(0, 0))
			})

			clock.Advance(AnimationDuration - time.Millisecond)
			assert.Equal(t, time.Duration(-1), doneAt, "finished early")

			clock.Advance(time.Millisecond)
			assert.Equal(t, AnimationDuration, doneAt)
			assert.Equal(t, Point{X: 10, Y: 700}, v.last())
			assert.Len(t, v.moves, frames(AnimationDuration))
		})
	}
}

func TestAnimators_StopWhenViewDies(t *testing.T) {
	for name := range animators(nil) {
		t.Run(name, func(t *testing.T) {
			clock := NewFakeClock(time.Unix(0, 0))
			a := animators(clock)[name]
			v := &fakeView{}

			done := false
			a.Animate(v, Point{}, Point{Y: 100}, AnimationDuration, func() { done = true })
			clock.Advance(50 * time.Millisecond)
			v.dead = true
			clock.Drain()

			assert.False(t, done)
			assert.Less(t, len(v.moves), frames(AnimationDuration))
		})
	}
}

func TestAnimators_ZeroDuration(t *testing.T) {
	clock := NewFakeClock(time.Unix(0, 0))
	v := &fakeView{}
	done := false

	NewTweenAnimator(clock).Animate(v, Point{}, Point{Y: 5}, 0, func() { done = true })
	clock.Advance(0)

	assert.True(t, done)
	assert.Equal(t, Point{Y: 5}, v.last())
}

func TestEaseOutCubic(t *testing.T) {
	assert.Equal(t, 0.0, easeOutCubic(0))
	assert.Equal(t, 1.0, easeOutCubic(1))
	assert.Greater(t, easeOutCubic(0.5), 0.5)
}

func TestFrames(t *testing.T) {
	assert.Equal(t, 15, frames(250*time.Millisecond))
	assert.Equal(t, 1, frames(0))
	assert.Equal(t, 1, frames(time.Millisecond))
}

func TestFakeClock_OrdersByDeadlineThenSubmission(t *testing.T) {
	clock := NewFakeClock(time.Unix(0, 0))
	var got []string
	clock.AfterFunc(20*time.Millisecond, func() { got = append(got, "c") })
	clock.AfterFunc(10*time.Millisecond, func() { got = append(got, "a") })
	clock.AfterFunc(10*time.Millisecond, func() { got = append(got, "b") })
	clock.Post(func() {
		got = append(got, "now")
		clock.AfterFunc(5*time.Millisecond, func() { got = append(got, "nested") })
	})

	clock.Advance(15 * time.Millisecond)
	assert.Equal(t, []string{"now", "nested", "a", "b"}, got)
	assert.Equal(t, 1, clock.Pending())
	assert.Equal(t, 15*time.Millisecond, clock.Elapsed(time.Unix(0, 0)))

	clock.Drain()
	assert.Equal(t, []string{"now", "nested", "a", "b", "c"}, got)
	assert.Equal(t, 20*time.Millisecond, clock.Elapsed(time.Unix(0, 0)))
}

func TestLoop_RunsPostedWorkInOrder(t *testing.T) {
	loop := NewLoop()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var count atomic.Int32
	finished := make(chan struct{})
	loop.Post(func() { count.Add(1) })
	loop.AfterFunc(10*time.Millisecond, func() {
		count.Add(1)
		close(finished)
	})

	errCh := make(chan error, 1)
	go func() { errCh <- loop.Run(ctx) }()

	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for loop")
	}
	assert.Equal(t, int32(2), count.Load())

	cancel()
	require.ErrorIs(t, <-errCh, context.Canceled)
}
