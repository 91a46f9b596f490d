package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/pilltoast/internal/layout"
	"github.com/jmylchreest/pilltoast/internal/style"
	"github.com/jmylchreest/pilltoast/internal/toast"
)

func plain(lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = ansi.Strip(l)
	}
	return out
}

func TestRenderPill(t *testing.T) {
	engine := layout.NewEngine(layout.CellMeasurer{})
	defaults := style.Defaults()

	info := defaults[style.Info]
	lines := plain(RenderPill("Saved", info, engine.Layout("Saved", info, 560)))
	assert.Equal(t, []string{"         ", "  Saved  ", "         "}, lines)

	fail := defaults[style.Fail]
	lines = plain(RenderPill("Saved", fail, engine.Layout("Saved", fail, 560)))
	require.Len(t, lines, 3)
	assert.Equal(t, "  ✖  Saved  ", lines[1])
	for _, l := range lines {
		assert.Equal(t, 12, ansi.StringWidth(l))
	}
}

func TestRenderPill_Wraps(t *testing.T) {
	engine := layout.NewEngine(layout.CellMeasurer{})
	info := style.Defaults()[style.Info]

	// Ten columns of text.
	g := engine.Layout("aaaa bbbb cccc", info, 80)
	lines := plain(RenderPill("aaaa bbbb cccc", info, g))

	require.Len(t, lines, 4)
	assert.Equal(t, "  aaaa bbbb  ", lines[1])
	assert.Equal(t, "  cccc       ", lines[2])
}

func TestOverlayLine(t *testing.T) {
	assert.Equal(t, "abXYef", overlayLine("abcdef", "XY", 2, 2))
	assert.Equal(t, "ab    XY", overlayLine("ab", "XY", 6, 2))
	assert.Equal(t, "Ybcdef", overlayLine("abcdef", "XY", -1, 2))
	assert.Equal(t, "abc", overlayLine("abc", "XY", -2, 2))
}

type composeHarness struct {
	clock     *toast.FakeClock
	screen    *Screen
	presenter *toast.Presenter
}

func newComposeHarness() *composeHarness {
	clock := toast.NewFakeClock(time.Unix(1700000000, 0))
	screen := NewScreen()
	screen.Resize(80, 24)
	return &composeHarness{
		clock:  clock,
		screen: screen,
		presenter: toast.NewPresenter(toast.Options{
			Platform: screen,
			Executor: clock,
			Measurer: layout.CellMeasurer{},
		}),
	}
}

func (h *composeHarness) frame() []string {
	return strings.Split(ansi.Strip(h.screen.Compose("")), "\n")
}

func TestScreen_ComposesBottomToast(t *testing.T) {
	h := newComposeHarness()

	h.presenter.ShowInfo("Saved", toast.Bottom, toast.Short)
	h.clock.Advance(0)
	require.Equal(t, 1, h.screen.Pills())
	assert.NotContains(t, strings.Join(h.frame(), "\n"), "Saved", "starts below the screen")

	h.clock.Advance(toast.AnimationDuration)
	frame := h.frame()
	require.Len(t, frame, 24)
	assert.Equal(t, 38, strings.Index(frame[22], "Saved"))

	h.clock.Advance(2 * time.Second)
	assert.Equal(t, 0, h.screen.Pills())
	assert.NotContains(t, strings.Join(h.frame(), "\n"), "Saved")
}

func TestScreen_ComposesTopToastOverBase(t *testing.T) {
	h := newComposeHarness()

	h.presenter.ShowInfo("Saved", toast.Top, toast.Average)
	h.clock.Advance(toast.AnimationDuration)

	base := strings.Repeat(strings.Repeat(".", 80)+"\n", 23) + strings.Repeat(".", 80)
	frame := strings.Split(ansi.Strip(h.screen.Compose(base)), "\n")

	assert.Equal(t, strings.Repeat(".", 36)+"  Saved  "+strings.Repeat(".", 35), frame[2])
	assert.Equal(t, strings.Repeat(".", 80), frame[0])
	assert.Equal(t, strings.Repeat(".", 80), frame[4])
}

func TestScreen_WindowUntilSized(t *testing.T) {
	s := NewScreen()
	_, ok := s.Window()
	assert.False(t, ok)
	assert.Equal(t, layout.Rect{W: 640, H: 384}, s.ScreenBounds())

	s.Resize(100, 30)
	w, ok := s.Window()
	require.True(t, ok)
	assert.Equal(t, layout.Rect{W: 800, H: 480}, w.Bounds())
	assert.Equal(t, layout.Insets{}, w.SafeArea())
}

func TestExecutor(t *testing.T) {
	e := NewExecutor()
	var got []string
	e.Post(func() { got = append(got, "a") })
	e.Post(func() { got = append(got, "b") })

	msg, ok := e.Wait().(RunMsg)
	require.True(t, ok)
	msg.Run()
	assert.Equal(t, []string{"a", "b"}, got)

	e.AfterFunc(10*time.Millisecond, func() { got = append(got, "c") })
	msg, ok = e.Wait().(RunMsg)
	require.True(t, ok)
	msg.Run()
	assert.Equal(t, []string{"a", "b", "c"}, got)

	e.Close()
	e.Close()
	assert.Nil(t, e.Wait())
}

func sized(t *testing.T, m tea.Model) tea.Model {
	t.Helper()
	m, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return m
}

func TestPreview_Keys(t *testing.T) {
	session := NewSession(Options{})
	defer session.Close()
	m := sized(t, NewPreview(session))

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlT})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlD})

	p := m.(Preview)
	assert.Equal(t, style.Success, p.styleName())
	assert.Equal(t, toast.Top, p.location)
	assert.Equal(t, toast.CustomDuration(5*time.Second), p.duration())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	p = m.(Preview)
	assert.Equal(t, style.Warn, p.styleName())
}

func TestPreview_ShowAttachesPill(t *testing.T) {
	session := NewSession(Options{})
	defer session.Close()
	m := sized(t, NewPreview(session))

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("Hi")})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	status, ok := cmd().(statusMsg)
	require.True(t, ok)
	assert.False(t, status.isErr)

	run, ok := session.Executor.Wait().(RunMsg)
	require.True(t, ok)
	_, _ = m.Update(run)

	assert.Equal(t, 1, session.Screen.Pills())
	assert.Equal(t, 1, session.Live())
}

func TestPreview_SeesNewStyles(t *testing.T) {
	session := NewSession(Options{})
	defer session.Close()
	p := NewPreview(session)

	session.Presenter.Styles().Set("brand", style.Defaults()[style.Info])
	names := p.styleNames()
	assert.Equal(t, "brand", names[len(names)-1])
}

func TestShowModel_UnknownStyle(t *testing.T) {
	session := NewSession(Options{})
	m, cmd := NewShow(session, "Hi", "brand", toast.Bottom, toast.Short).
		Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.ErrorIs(t, m.(ShowModel).Err(), style.ErrUnknownStyle)
}

func TestShowModel_QuitsAfterDestroyed(t *testing.T) {
	session := NewSession(Options{})
	m, _ := NewShow(session, "Hi", "", toast.Bottom, toast.CustomDuration(0)).
		Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	deadline := time.After(5 * time.Second)
	for {
		msgs := make(chan tea.Msg, 1)
		go func() { msgs <- session.Executor.Wait() }()

		var msg tea.Msg
		select {
		case msg = <-msgs:
		case <-deadline:
			t.Fatal("toast never destroyed")
		}

		var cmd tea.Cmd
		m, cmd = m.Update(msg)
		if session.Live() == 0 {
			require.NotNil(t, cmd)
			assert.IsType(t, tea.QuitMsg{}, cmd())
			return
		}
	}
}
