package dbus

import (
	"fmt"

	"github.com/jmylchreest/pilltoast/internal/toast"
)

// EmitStateChanged emits the StateChanged signal for a toast transition.
func (s *Server) EmitStateChanged(id string, state toast.State) error {
	if s.conn == nil {
		return fmt.Errorf("not connected to D-Bus")
	}

	if err := s.conn.Emit(Path, Interface+".StateChanged", id, state.String()); err != nil {
		return fmt.Errorf("failed to emit StateChanged signal: %w", err)
	}
	return nil
}
