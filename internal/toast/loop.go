package toast

import (
	"context"
	"sync"
	"time"
)

// Loop is an Executor run by a single goroutine calling Run. Post never
// blocks: callbacks posted before Run starts are queued, and callbacks
// posted after Run returns are dropped.
type Loop struct {
	mu      sync.Mutex
	queue   []func()
	stopped bool
	notify  chan struct{}
}

// NewLoop returns an idle loop.
func NewLoop() *Loop {
	return &Loop{notify: make(chan struct{}, 1)}
}

// Post implements Executor.
func (l *Loop) Post(fn func()) {
	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		return
	}
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	select {
	case l.notify <- struct{}{}:
	default:
	}
}

// AfterFunc implements Executor.
func (l *Loop) AfterFunc(d time.Duration, fn func()) {
	time.AfterFunc(d, func() { l.Post(fn) })
}

// Pending returns the number of queued callbacks.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.queue)
}

// Run executes callbacks in post order until ctx is done. Callbacks still
// queued when it returns are discarded.
func (l *Loop) Run(ctx context.Context) error {
	defer func() {
		l.mu.Lock()
		l.stopped = true
		l.queue = nil
		l.mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.notify:
		}

		l.mu.Lock()
		calls := l.queue
		l.queue = nil
		l.mu.Unlock()

		for _, fn := range calls {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			fn()
		}
	}
}
