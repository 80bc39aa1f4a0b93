// Package tui renders the download form in a terminal with Bubble Tea. It
// drives the same controller as the desktop window.
package tui
