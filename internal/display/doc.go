// Package display presents toasts as GTK4 layer-shell windows. Each toast
// is its own borderless window anchored to the top-left of the primary
// monitor; sliding is done by moving the window's layer-shell margins.
// Everything here must run on the GLib main loop.
package display
