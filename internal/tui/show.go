package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jmylchreest/pilltoast/internal/toast"
)

// ShowModel shows a single toast and quits once it is destroyed.
type ShowModel struct {
	session *Session
	quit    key.Binding

	message  string
	style    string
	location toast.Location
	duration toast.Duration

	started bool
	err     error
}

// NewShow creates a model that shows message in the named style.
func NewShow(session *Session, message, styleName string, loc toast.Location, d toast.Duration) ShowModel {
	return ShowModel{
		session:  session,
		quit:     DefaultKeyMap().Quit,
		message:  message,
		style:    styleName,
		location: loc,
		duration: d,
	}
}

// Init implements tea.Model.
func (m ShowModel) Init() tea.Cmd {
	return m.session.Init()
}

// Update implements tea.Model.
func (m ShowModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if cmd, handled := m.session.Update(msg); handled {
		if m.started && m.session.Live() == 0 {
			m.session.Close()
			return m, tea.Quit
		}
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		// The first size message means the screen can be placed against.
		if !m.started {
			m.started = true
			if err := m.session.Presenter.ShowPreset(m.message, m.style, m.location, m.duration); err != nil {
				m.err = err
				m.session.Close()
				return m, tea.Quit
			}
		}
	case tea.KeyMsg:
		if key.Matches(msg, m.quit) || msg.String() == "q" {
			m.session.Close()
			return m, tea.Quit
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m ShowModel) View() string {
	return m.session.View("")
}

// Err returns the error that ended the model, if any.
func (m ShowModel) Err() error {
	return m.err
}

// Run runs model full screen until it quits or ctx is done. It returns
// the final model.
func Run(ctx context.Context, model tea.Model) (tea.Model, error) {
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	return p.Run()
}
