package tui

import (
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jmylchreest/pilltoast/internal/layout"
	"github.com/jmylchreest/pilltoast/internal/style"
	"github.com/jmylchreest/pilltoast/internal/toast"
)

// Options configure a Session.
type Options struct {
	Styles *style.Registry
	// Animator builds the animator from the session's executor. Nil uses
	// the tween animator.
	Animator func(toast.Executor) toast.Animator
	Sound    toast.SoundPlayer
	Logger   *slog.Logger
	// OnState observes transitions after the session has counted them.
	OnState func(id string, s toast.State)
}

// Session wires a presenter to a terminal Screen. Models embed one and
// route RunMsg and tea.WindowSizeMsg through Update.
type Session struct {
	Screen    *Screen
	Executor  *Executor
	Presenter *toast.Presenter

	live    int
	onState func(id string, s toast.State)
}

// NewSession creates a session with a default-sized screen.
func NewSession(opts Options) *Session {
	s := &Session{
		Screen:   NewScreen(),
		Executor: NewExecutor(),
		onState:  opts.OnState,
	}
	var animator toast.Animator
	if opts.Animator != nil {
		animator = opts.Animator(s.Executor)
	}
	s.Presenter = toast.NewPresenter(toast.Options{
		Platform: s.Screen,
		Executor: s.Executor,
		Animator: animator,
		Measurer: layout.CellMeasurer{},
		Styles:   opts.Styles,
		Logger:   opts.Logger,
		Hooks: toast.Hooks{
			OnState: s.observe,
			Sound:   opts.Sound,
		},
	})
	return s
}

func (s *Session) observe(id string, st toast.State) {
	switch st {
	case toast.Created:
		s.live++
	case toast.Destroyed:
		s.live--
	}
	if s.onState != nil {
		s.onState(id, st)
	}
}

// Live returns the number of toasts created and not yet destroyed.
func (s *Session) Live() int {
	return s.live
}

// Init returns the command that delivers executor callbacks.
func (s *Session) Init() tea.Cmd {
	return s.Executor.Wait
}

// Update handles the session's messages. handled is false for anything
// else.
func (s *Session) Update(msg tea.Msg) (cmd tea.Cmd, handled bool) {
	switch msg := msg.(type) {
	case RunMsg:
		msg.Run()
		return s.Executor.Wait, true
	case tea.WindowSizeMsg:
		s.Screen.Resize(msg.Width, msg.Height)
		return nil, false
	}
	return nil, false
}

// View composes the pills over base.
func (s *Session) View(base string) string {
	return s.Screen.Compose(base)
}

// Close stops delivering callbacks.
func (s *Session) Close() {
	s.Executor.Close()
}
