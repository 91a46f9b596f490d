package dbus

import (
	"errors"
	"testing"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/pilltoast/internal/style"
	"github.com/jmylchreest/pilltoast/internal/toast"
)

type shown struct {
	message  string
	style    string
	location toast.Location
	duration toast.Duration
}

type fakePresenter struct {
	styles *style.Registry
	shown  []shown
	active int
	err    error
}

func newFakePresenter() *fakePresenter {
	return &fakePresenter{styles: style.NewRegistry()}
}

func (f *fakePresenter) ShowPreset(message, name string, loc toast.Location, d toast.Duration) error {
	if f.err != nil {
		return f.err
	}
	if name != "" {
		if _, ok := f.styles.Get(name); !ok {
			return style.ErrUnknownStyle
		}
	}
	f.shown = append(f.shown, shown{message, name, loc, d})
	return nil
}

func (f *fakePresenter) Active() int             { return f.active }
func (f *fakePresenter) Styles() *style.Registry { return f.styles }

func TestShowRequestParse(t *testing.T) {
	tests := []struct {
		name    string
		req     ShowRequest
		want    Request
		wantErr error
	}{
		{
			name: "defaults",
			req:  ShowRequest{Message: "Saved"},
			want: Request{Message: "Saved", Location: toast.Bottom, Duration: toast.Average},
		},
		{
			name: "all arguments",
			req:  ShowRequest{Message: "Copied", Style: " success ", Location: "top", Duration: "short"},
			want: Request{Message: "Copied", Style: "success", Location: toast.Top, Duration: toast.Short},
		},
		{
			name: "custom duration",
			req:  ShowRequest{Message: "Hi", Duration: "4s"},
			want: Request{Message: "Hi", Location: toast.Bottom, Duration: toast.Custom(4)},
		},
		{
			name:    "empty message",
			req:     ShowRequest{Message: "  "},
			wantErr: ErrEmptyMessage,
		},
		{
			name:    "bad location",
			req:     ShowRequest{Message: "Hi", Location: "left"},
			wantErr: toast.ErrInvalidLocation,
		},
		{
			name:    "bad duration",
			req:     ShowRequest{Message: "Hi", Duration: "forever"},
			wantErr: toast.ErrInvalidDuration,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.req.Parse(Defaults{})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestShowRequestParse_Defaults(t *testing.T) {
	def := Defaults{Style: "warn", Location: toast.Top, Duration: toast.Short}

	got, err := ShowRequest{Message: "Hi"}.Parse(def)
	require.NoError(t, err)
	assert.Equal(t, Request{Message: "Hi", Style: "warn", Location: toast.Top, Duration: toast.Short}, got)

	got, err = ShowRequest{Message: "Hi", Style: "fail", Location: "bottom", Duration: "2s"}.Parse(def)
	require.NoError(t, err)
	assert.Equal(t, Request{Message: "Hi", Style: "fail", Location: toast.Bottom, Duration: toast.Custom(2)}, got)
}

func TestServerShow_UsesDefaults(t *testing.T) {
	p := newFakePresenter()
	s := NewServer(p, nil)
	s.SetDefaults(Defaults{Style: style.Success, Location: toast.Top, Duration: toast.Short})

	require.Nil(t, s.Show("Saved", "", "", ""))
	require.Len(t, p.shown, 1)
	assert.Equal(t, shown{"Saved", style.Success, toast.Top, toast.Short}, p.shown[0])
}

func TestShowRequestArgs(t *testing.T) {
	req := ShowRequest{Message: "m", Style: "s", Location: "l", Duration: "d"}
	assert.Equal(t, []any{"m", "s", "l", "d"}, req.Args())
}

func TestServerShow(t *testing.T) {
	p := newFakePresenter()
	s := NewServer(p, nil)

	require.Nil(t, s.Show("Saved", "success", "top", "short"))
	require.Len(t, p.shown, 1)
	assert.Equal(t, shown{"Saved", "success", toast.Top, toast.Short}, p.shown[0])
}

func TestServerShowErrors(t *testing.T) {
	p := newFakePresenter()
	s := NewServer(p, nil)

	err := s.Show("", "", "", "")
	require.NotNil(t, err)
	assert.Equal(t, ErrorInvalidArgs, err.Name)

	err = s.Show("Hi", "", "sideways", "")
	require.NotNil(t, err)
	assert.Equal(t, ErrorInvalidArgs, err.Name)

	err = s.Show("Hi", "brand", "", "")
	require.NotNil(t, err)
	assert.Equal(t, ErrorUnknownStyle, err.Name)

	p.err = errors.New("boom")
	err = s.Show("Hi", "", "", "")
	require.NotNil(t, err)
	assert.Equal(t, "org.freedesktop.DBus.Error.Failed", err.Name)

	assert.Empty(t, p.shown)
}

func TestServerStylesAndStatus(t *testing.T) {
	p := newFakePresenter()
	p.styles.Set("brand", style.Defaults()[style.Info])
	p.active = 3
	s := NewServer(p, nil)

	names, err := s.Styles()
	require.Nil(t, err)
	assert.Contains(t, names, "brand")
	assert.Contains(t, names, style.Info)

	active, started, err := s.Status()
	require.Nil(t, err)
	assert.Equal(t, uint32(3), active)
	assert.Equal(t, s.started.Unix(), started)
}

func TestServerStopWhenNotRunning(t *testing.T) {
	s := NewServer(newFakePresenter(), nil)
	assert.NoError(t, s.Stop())
	assert.Error(t, s.EmitStateChanged("id", toast.Holding))
}

func TestCallError(t *testing.T) {
	assert.NoError(t, callError(nil))

	assert.ErrorIs(t, callError(dbus.Error{Name: "org.freedesktop.DBus.Error.ServiceUnknown"}), ErrNotRunning)
	assert.ErrorIs(t, callError(&dbus.Error{Name: "org.freedesktop.DBus.Error.NameHasNoOwner"}), ErrNotRunning)

	err := callError(dbus.Error{Name: ErrorUnknownStyle, Body: []any{`unknown style "brand"`}})
	assert.EqualError(t, err, `unknown style "brand"`)

	other := errors.New("timeout")
	assert.Equal(t, other, callError(other))
}

func TestParseStateChanged(t *testing.T) {
	sig := &dbus.Signal{
		Path: Path,
		Name: Interface + ".StateChanged",
		Body: []any{"01J", "holding"},
	}
	id, state, ok := parseStateChanged(sig)
	assert.True(t, ok)
	assert.Equal(t, "01J", id)
	assert.Equal(t, "holding", state)

	_, _, ok = parseStateChanged(&dbus.Signal{Path: Path, Name: Interface + ".Other", Body: sig.Body})
	assert.False(t, ok)
	_, _, ok = parseStateChanged(&dbus.Signal{Path: Path, Name: sig.Name, Body: []any{"01J"}})
	assert.False(t, ok)
	_, _, ok = parseStateChanged(nil)
	assert.False(t, ok)
}

func TestStatus(t *testing.T) {
	started := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	st := Status{Active: 2, Started: started}

	assert.Equal(t, time.Minute, st.Uptime(started.Add(time.Minute)))
	assert.Zero(t, Status{}.Uptime(started))
	assert.Contains(t, st.String(), "2 active")
}
