// Package tui presents toasts in a terminal. A Screen stands in for the
// window, an Executor feeds toast callbacks through the bubbletea event
// loop, and pills are composed over whatever the program is drawing.
package tui
