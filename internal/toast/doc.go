// Package toast presents transient pill-shaped messages.
//
// A Presenter drives every toast through Created, Appearing, Holding,
// Dismissing and Destroyed. All toast state is owned by an Executor, the
// single UI loop of the host toolkit; Show may be called from any goroutine
// and only posts work to that loop. Rendering is delegated to a Platform,
// and motion to an Animator.
package toast
