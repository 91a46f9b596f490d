// Package dbus exposes the toast daemon on the session bus as
// io.github.jmylchreest.PillToast and provides a client for it.
package dbus
