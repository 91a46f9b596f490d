package dbus

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/godbus/dbus/v5/introspect"

	"github.com/jmylchreest/pilltoast/internal/style"
	"github.com/jmylchreest/pilltoast/internal/toast"
)

const (
	// Interface is the service interface name.
	Interface = "io.github.jmylchreest.PillToast"
	// Path is the service object path.
	Path = "/io/github/jmylchreest/PillToast"
	// BusName is the bus name the daemon claims.
	BusName = "io.github.jmylchreest.PillToast"
)

// Error names returned to callers.
const (
	ErrorInvalidArgs  = Interface + ".Error.InvalidArgs"
	ErrorUnknownStyle = Interface + ".Error.UnknownStyle"
)

// Presenter is the part of toast.Presenter the service drives.
type Presenter interface {
	ShowPreset(message, name string, loc toast.Location, d toast.Duration) error
	Active() int
	Styles() *style.Registry
}

// Server implements the io.github.jmylchreest.PillToast interface.
type Server struct {
	conn      *dbus.Conn
	logger    *slog.Logger
	presenter Presenter
	started   time.Time

	mu       sync.Mutex
	running  bool
	defaults Defaults
}

// NewServer creates a server that shows toasts on p.
func NewServer(p Presenter, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		logger:    logger,
		presenter: p,
		started:   time.Now(),
	}
}

// SetDefaults sets what Show uses for arguments left empty.
func (s *Server) SetDefaults(def Defaults) {
	s.mu.Lock()
	s.defaults = def
	s.mu.Unlock()
}

// Start connects to the session bus and exports the service.
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return fmt.Errorf("server already running")
	}

	conn, err := dbus.SessionBus()
	if err != nil {
		return fmt.Errorf("failed to connect to session bus: %w", err)
	}
	s.conn = conn

	if err := conn.Export(s, Path, Interface); err != nil {
		return fmt.Errorf("failed to export object: %w", err)
	}

	node := &introspect.Node{
		Name: Path,
		Interfaces: []introspect.Interface{
			introspect.IntrospectData,
			{
				Name:    Interface,
				Methods: serviceMethods(),
				Signals: serviceSignals(),
			},
		},
	}
	if err := conn.Export(introspect.NewIntrospectable(node), Path,
		"org.freedesktop.DBus.Introspectable"); err != nil {
		return fmt.Errorf("failed to export introspectable: %w", err)
	}

	reply, err := conn.RequestName(BusName, dbus.NameFlagDoNotQueue)
	if err != nil {
		return fmt.Errorf("failed to request bus name: %w", err)
	}
	if reply != dbus.RequestNameReplyPrimaryOwner {
		return fmt.Errorf("bus name %s already taken", BusName)
	}

	s.running = true
	s.logger.Info("D-Bus service started", "interface", Interface, "path", Path)
	return nil
}

// Stop releases the bus name. The shared connection stays open.
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return nil
	}
	s.running = false

	if _, err := s.conn.ReleaseName(BusName); err != nil {
		s.logger.Warn("failed to release bus name", "error", err)
	}
	s.logger.Info("D-Bus service stopped")
	return nil
}

// Show presents a toast.
// D-Bus method: Show(ssss)
func (s *Server) Show(message, styleName, location, duration string) *dbus.Error {
	s.mu.Lock()
	def := s.defaults
	s.mu.Unlock()

	req, err := ShowRequest{
		Message:  message,
		Style:    styleName,
		Location: location,
		Duration: duration,
	}.Parse(def)
	if err != nil {
		s.logger.Debug("Show rejected", "error", err)
		return dbus.NewError(ErrorInvalidArgs, []any{err.Error()})
	}

	s.logger.Debug("Show called",
		"style", req.Style,
		"location", req.Location.String(),
		"duration", req.Duration.String(),
	)

	if err := s.presenter.ShowPreset(req.Message, req.Style, req.Location, req.Duration); err != nil {
		if errors.Is(err, style.ErrUnknownStyle) {
			return dbus.NewError(ErrorUnknownStyle, []any{err.Error()})
		}
		return dbus.MakeFailedError(err)
	}
	return nil
}

// Styles lists the registered style names.
// D-Bus method: Styles() -> as
func (s *Server) Styles() ([]string, *dbus.Error) {
	return s.presenter.Styles().Names(), nil
}

// Status reports the number of toasts on screen and the start time.
// D-Bus method: Status() -> (ux)
func (s *Server) Status() (uint32, int64, *dbus.Error) {
	return uint32(s.presenter.Active()), s.started.Unix(), nil
}

func serviceMethods() []introspect.Method {
	return []introspect.Method{
		{
			Name: "Show",
			Args: []introspect.Arg{
				{Name: "message", Type: "s", Direction: "in"},
				{Name: "style", Type: "s", Direction: "in"},
				{Name: "location", Type: "s", Direction: "in"},
				{Name: "duration", Type: "s", Direction: "in"},
			},
		},
		{
			Name: "Styles",
			Args: []introspect.Arg{
				{Name: "names", Type: "as", Direction: "out"},
			},
		},
		{
			Name: "Status",
			Args: []introspect.Arg{
				{Name: "active", Type: "u", Direction: "out"},
				{Name: "started", Type: "x", Direction: "out"},
			},
		},
	}
}

func serviceSignals() []introspect.Signal {
	return []introspect.Signal{
		{
			Name: "StateChanged",
			Args: []introspect.Arg{
				{Name: "id", Type: "s"},
				{Name: "state", Type: "s"},
			},
		},
	}
}
