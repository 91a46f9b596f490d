package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/pilltoast/internal/toast"
)

// Durations the preview cycles through.
var previewDurations = []toast.Duration{
	toast.Short,
	toast.Average,
	toast.CustomDuration(5 * time.Second),
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
)

const defaultPreviewMessage = "Hello from pilltoast"

// Preview is an interactive playground: type a message, pick a style,
// location and duration, and show it.
type Preview struct {
	session *Session

	input textinput.Model
	help  help.Model
	keys  KeyMap

	styleIdx    int
	location    toast.Location
	durationIdx int

	statusMsg string
	statusErr bool
}

// NewPreview creates a preview presenting through session.
func NewPreview(session *Session) Preview {
	input := textinput.New()
	input.Placeholder = defaultPreviewMessage
	input.CharLimit = 200
	input.Prompt = "> "
	input.Focus()

	return Preview{
		session:     session,
		input:       input,
		help:        help.New(),
		keys:        DefaultKeyMap(),
		durationIdx: 1,
	}
}

// Init implements tea.Model.
func (m Preview) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.session.Init())
}

type statusMsg struct {
	text  string
	isErr bool
}

type clearStatusMsg struct{}

// Update implements tea.Model.
func (m Preview) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if cmd, handled := m.session.Update(msg); handled {
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		m.input.Width = max(msg.Width-4, 10)
		return m, nil

	case tea.KeyMsg:
		if cmd, ok := m.handleKey(msg); ok {
			return m, cmd
		}

	case statusMsg:
		m.statusMsg = msg.text
		m.statusErr = msg.isErr
		return m, tea.Tick(3*time.Second, func(time.Time) tea.Msg {
			return clearStatusMsg{}
		})

	case clearStatusMsg:
		m.statusMsg = ""
		m.statusErr = false
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleKey handles bound keys. ok is false for keys meant for the input.
func (m *Preview) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.session.Close()
		return tea.Quit, true

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return nil, true

	case key.Matches(msg, m.keys.NextStyle):
		m.styleIdx = (m.styleIdx + 1) % len(m.styleNames())
		return nil, true

	case key.Matches(msg, m.keys.PrevStyle):
		n := len(m.styleNames())
		m.styleIdx = (m.styleIdx + n - 1) % n
		return nil, true

	case key.Matches(msg, m.keys.Location):
		if m.location == toast.Top {
			m.location = toast.Bottom
		} else {
			m.location = toast.Top
		}
		return nil, true

	case key.Matches(msg, m.keys.Duration):
		m.durationIdx = (m.durationIdx + 1) % len(previewDurations)
		return nil, true

	case key.Matches(msg, m.keys.Show):
		return m.show(), true
	}
	return nil, false
}

func (m *Preview) show() tea.Cmd {
	message := strings.TrimSpace(m.input.Value())
	if message == "" {
		message = defaultPreviewMessage
	}
	name := m.styleName()
	if err := m.session.Presenter.ShowPreset(message, name, m.location, m.duration()); err != nil {
		return func() tea.Msg {
			return statusMsg{text: err.Error(), isErr: true}
		}
	}
	return func() tea.Msg {
		return statusMsg{text: fmt.Sprintf("Showing %s toast", name)}
	}
}

// styleNames reads the registry each time so styles added while the
// preview runs can be picked.
func (m *Preview) styleNames() []string {
	return m.session.Presenter.Styles().Names()
}

func (m *Preview) styleName() string {
	names := m.styleNames()
	return names[m.styleIdx%len(names)]
}

func (m *Preview) duration() toast.Duration {
	return previewDurations[m.durationIdx]
}

// View implements tea.Model.
func (m Preview) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("pilltoast preview"))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "%s %s   %s %s   %s %s\n",
		labelStyle.Render("style"), m.styleName(),
		labelStyle.Render("location"), m.location,
		labelStyle.Render("duration"), m.duration(),
	)
	if m.statusMsg != "" {
		if m.statusErr {
			b.WriteString(errorStyle.Render(m.statusMsg))
		} else {
			b.WriteString(statusStyle.Render(m.statusMsg))
		}
	}
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))
	return m.session.View(b.String())
}
