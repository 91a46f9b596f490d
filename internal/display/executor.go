package display

import (
	"time"

	"github.com/diamondburned/gotk4/pkg/glib/v2"
)

// MainLoop runs toast callbacks on the GLib main loop.
type MainLoop struct{}

// Post implements toast.Executor.
func (MainLoop) Post(fn func()) {
	glib.IdleAdd(fn)
}

// AfterFunc implements toast.Executor.
func (MainLoop) AfterFunc(d time.Duration, fn func()) {
	glib.TimeoutAdd(timeoutMillis(d), fn)
}

// timeoutMillis rounds d up to whole milliseconds so a timer never fires
// early.
func timeoutMillis(d time.Duration) uint {
	if d <= 0 {
		return 0
	}
	return uint((d + time.Millisecond - 1) / time.Millisecond)
}
