package ui

// Package ui contains the Fyne-based desktop user interface. RootUI lays out
// the download form and implements controller.View; every runner event is
// replayed on the Fyne main goroutine through fyne.Do. All UI strings are
// localized via Localization.
