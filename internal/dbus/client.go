package dbus

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/godbus/dbus/v5"
)

// ErrNotRunning is returned when no daemon owns the bus name.
var ErrNotRunning = errors.New("pilltoast daemon is not running")

// Client calls a running daemon.
type Client struct {
	conn *dbus.Conn
	obj  dbus.BusObject
}

// Connect returns a client on the session bus.
func Connect() (*Client, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to session bus: %w", err)
	}
	return &Client{conn: conn, obj: conn.Object(BusName, Path)}, nil
}

// Show asks the daemon to present a toast.
func (c *Client) Show(ctx context.Context, req ShowRequest) error {
	call := c.obj.CallWithContext(ctx, Interface+".Show", 0, req.Args()...)
	return callError(call.Err)
}

// Styles lists the daemon's registered style names.
func (c *Client) Styles(ctx context.Context) ([]string, error) {
	var names []string
	if err := c.obj.CallWithContext(ctx, Interface+".Styles", 0).Store(&names); err != nil {
		return nil, callError(err)
	}
	return names, nil
}

// Status returns the daemon's status.
func (c *Client) Status(ctx context.Context) (Status, error) {
	var (
		active  uint32
		started int64
	)
	if err := c.obj.CallWithContext(ctx, Interface+".Status", 0).Store(&active, &started); err != nil {
		return Status{}, callError(err)
	}
	return Status{Active: active, Started: time.Unix(started, 0)}, nil
}

// WatchStates calls fn for every StateChanged signal until ctx is done.
func (c *Client) WatchStates(ctx context.Context, fn func(id, state string)) error {
	opts := []dbus.MatchOption{
		dbus.WithMatchObjectPath(Path),
		dbus.WithMatchInterface(Interface),
		dbus.WithMatchMember("StateChanged"),
	}
	if err := c.conn.AddMatchSignalContext(ctx, opts...); err != nil {
		return fmt.Errorf("failed to add match rule: %w", err)
	}
	defer func() { _ = c.conn.RemoveMatchSignal(opts...) }()

	ch := make(chan *dbus.Signal, 16)
	c.conn.Signal(ch)
	defer c.conn.RemoveSignal(ch)

	for {
		select {
		case <-ctx.Done():
			return nil
		case sig := <-ch:
			if id, state, ok := parseStateChanged(sig); ok {
				fn(id, state)
			}
		}
	}
}

func parseStateChanged(sig *dbus.Signal) (id, state string, ok bool) {
	if sig == nil || sig.Path != Path || sig.Name != Interface+".StateChanged" || len(sig.Body) != 2 {
		return "", "", false
	}
	id, ok1 := sig.Body[0].(string)
	state, ok2 := sig.Body[1].(string)
	return id, state, ok1 && ok2
}

// callError maps bus errors onto package errors.
func callError(err error) error {
	if err == nil {
		return nil
	}
	if dbusErr, ok := asBusError(err); ok {
		switch dbusErr.Name {
		case "org.freedesktop.DBus.Error.ServiceUnknown", "org.freedesktop.DBus.Error.NameHasNoOwner":
			return ErrNotRunning
		case ErrorInvalidArgs, ErrorUnknownStyle:
			if len(dbusErr.Body) > 0 {
				if msg, ok := dbusErr.Body[0].(string); ok {
					return errors.New(msg)
				}
			}
		}
	}
	return err
}

func asBusError(err error) (dbus.Error, bool) {
	var value dbus.Error
	if errors.As(err, &value) {
		return value, true
	}
	var ptr *dbus.Error
	if errors.As(err, &ptr) && ptr != nil {
		return *ptr, true
	}
	return dbus.Error{}, false
}
