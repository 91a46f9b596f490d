package tui

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Executor runs toast callbacks inside a bubbletea Update. Callbacks are
// queued by Post and AfterFunc and delivered as a single message.
type Executor struct {
	mu     sync.Mutex
	queue  []func()
	notify chan struct{}
	done   chan struct{}
	once   sync.Once
}

// NewExecutor returns an idle executor.
func NewExecutor() *Executor {
	return &Executor{
		notify: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
}

// Post implements toast.Executor. It never blocks.
func (e *Executor) Post(fn func()) {
	e.mu.Lock()
	e.queue = append(e.queue, fn)
	e.mu.Unlock()

	select {
	case e.notify <- struct{}{}:
	default:
	}
}

// AfterFunc implements toast.Executor.
func (e *Executor) AfterFunc(d time.Duration, fn func()) {
	time.AfterFunc(d, func() { e.Post(fn) })
}

// Wait is a tea.Cmd that blocks until callbacks are queued and returns
// them as a RunMsg. It returns nil once the executor is closed.
func (e *Executor) Wait() tea.Msg {
	select {
	case <-e.notify:
	case <-e.done:
		return nil
	}
	e.mu.Lock()
	calls := e.queue
	e.queue = nil
	e.mu.Unlock()
	return RunMsg{calls: calls}
}

// Close releases a pending Wait.
func (e *Executor) Close() {
	e.once.Do(func() { close(e.done) })
}

// RunMsg carries queued callbacks into Update.
type RunMsg struct {
	calls []func()
}

// Run executes the callbacks in the order they were posted. Callbacks
// posted while running are delivered in the next message.
func (m RunMsg) Run() {
	for _, fn := range m.calls {
		fn()
	}
}
