package toast

import (
	"sort"
	"sync"
	"time"
)

// FakeClock is a manually advanced Executor. Nothing runs until Advance or
// Drain is called; callbacks then run on the calling goroutine.
type FakeClock struct {
	mu    sync.Mutex
	now   time.Time
	seq   uint64
	queue []timer
}

type timer struct {
	at  time.Time
	seq uint64
	fn  func()
}

// NewFakeClock returns a clock starting at start.
func NewFakeClock(start time.Time) *FakeClock {
	return &FakeClock{now: start}
}

// Now returns the clock's current time.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Elapsed returns how far the clock has moved since start.
func (c *FakeClock) Elapsed(start time.Time) time.Duration {
	return c.Now().Sub(start)
}

// Post implements Executor.
func (c *FakeClock) Post(fn func()) {
	c.AfterFunc(0, fn)
}

// AfterFunc implements Executor.
func (c *FakeClock) AfterFunc(d time.Duration, fn func()) {
	if d < 0 {
		d = 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	c.queue = append(c.queue, timer{at: c.now.Add(d), seq: c.seq, fn: fn})
}

// Pending returns the number of queued callbacks.
func (c *FakeClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.queue)
}

// Advance moves the clock forward by d, running every callback due on the
// way in time order. Callbacks scheduled by callbacks run too if they fall
// inside the window.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	end := c.now.Add(d)
	c.mu.Unlock()

	for {
		t, ok := c.pop(end)
		if !ok {
			break
		}
		t.fn()
	}

	c.mu.Lock()
	c.now = end
	c.mu.Unlock()
}

// Drain runs callbacks until none are left, moving the clock as needed.
func (c *FakeClock) Drain() {
	for {
		t, ok := c.pop(time.Time{})
		if !ok {
			return
		}
		t.fn()
	}
}

// pop removes the earliest callback due by end, or the earliest overall
// if end is zero, and moves the clock to its deadline.
func (c *FakeClock) pop(end time.Time) (timer, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.queue) == 0 {
		return timer{}, false
	}
	sort.Slice(c.queue, func(i, j int) bool {
		if c.queue[i].at.Equal(c.queue[j].at) {
			return c.queue[i].seq < c.queue[j].seq
		}
		return c.queue[i].at.Before(c.queue[j].at)
	})
	t := c.queue[0]
	if !end.IsZero() && t.at.After(end) {
		return timer{}, false
	}
	c.queue = c.queue[1:]
	if t.at.After(c.now) {
		c.now = t.at
	}
	return t, true
}
