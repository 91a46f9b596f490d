// Package daemon provides the orchestration for pilltoastd. It applies
// configuration to the running components and tells the user about
// reloads with toasts of its own.
package daemon
