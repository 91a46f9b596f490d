package dbus

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmylchreest/pilltoast/internal/toast"
)

// ErrEmptyMessage is returned when Show is called without a message.
var ErrEmptyMessage = errors.New("message is empty")

// ShowRequest carries the raw arguments of a Show call.
type ShowRequest struct {
	Message  string
	Style    string
	Location string
	Duration string
}

// Request is a ShowRequest with its arguments resolved.
type Request struct {
	Message  string
	Style    string
	Location toast.Location
	Duration toast.Duration
}

// Defaults fill in the arguments a caller leaves empty. The zero value
// means info, bottom, average.
type Defaults struct {
	Style    string
	Location toast.Location
	Duration toast.Duration
}

// Parse validates the raw arguments. An empty style, location or duration
// takes its value from def.
func (r ShowRequest) Parse(def Defaults) (Request, error) {
	if strings.TrimSpace(r.Message) == "" {
		return Request{}, ErrEmptyMessage
	}
	req := Request{
		Message:  r.Message,
		Style:    strings.TrimSpace(r.Style),
		Location: def.Location,
		Duration: def.Duration,
	}
	if req.Style == "" {
		req.Style = def.Style
	}
	if strings.TrimSpace(r.Location) != "" {
		loc, err := toast.ParseLocation(r.Location)
		if err != nil {
			return Request{}, err
		}
		req.Location = loc
	}
	if strings.TrimSpace(r.Duration) != "" {
		d, err := toast.ParseDuration(r.Duration)
		if err != nil {
			return Request{}, err
		}
		req.Duration = d
	}
	return req, nil
}

// Args returns the request in wire order.
func (r ShowRequest) Args() []any {
	return []any{r.Message, r.Style, r.Location, r.Duration}
}

// Status describes a running daemon.
type Status struct {
	Active  uint32
	Started time.Time
}

// Uptime is the time since the daemon started, measured at now.
func (s Status) Uptime(now time.Time) time.Duration {
	if s.Started.IsZero() {
		return 0
	}
	return now.Sub(s.Started)
}

// String renders the status on one line.
func (s Status) String() string {
	return fmt.Sprintf("%d active, started %s", s.Active, s.Started.Format(time.RFC3339))
}
