package tui

import "github.com/ytget/ytdownloader/internal/controller"

// dispatchMsg carries a controller callback onto the Update loop
type dispatchMsg struct {
	fn func()
}

// quitMsg ends the event listener when the context is done
type quitMsg struct{}

// screen receives controller.View calls. They all happen inside Update, so
// it needs no locking.
type screen struct {
	startEnabled bool
	percent      int
	label        string
	err          string
	lastOutput   string
}

var _ controller.View = (*screen)(nil)

func (s *screen) SetStartEnabled(enabled bool) { s.startEnabled = enabled }

func (s *screen) SetProgress(percent int, label string) {
	s.percent = percent
	s.label = label
}

func (s *screen) ShowError(message string) { s.err = message }
