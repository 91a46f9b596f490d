// Package theme builds the GTK CSS for toast windows: a bundled base sheet
// chosen by colour scheme, one generated rule per registered style, and an
// optional user sheet at ~/.config/pilltoast/style.css that is reloaded
// when it changes.
package theme
