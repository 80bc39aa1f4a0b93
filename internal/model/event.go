package model

// Percent bounds for EventProgress
const (
	MinPercent = 0
	MaxPercent = 100
)

// Event is emitted by a download run. A run produces zero or more
// EventProgress values followed by exactly one terminal event.
type Event interface {
	IsTerminal() bool
}

// EventProgress carries a download percentage in [0,100]
type EventProgress struct {
	Percent int
}

// EventCompleted signals success. OutputPath is empty when the engine did not report it.
type EventCompleted struct {
	OutputPath string
}

// EventFailed signals failure with the engine's free-text message
type EventFailed struct {
	Message string
}

func (EventProgress) IsTerminal() bool  { return false }
func (EventCompleted) IsTerminal() bool { return true }
func (EventFailed) IsTerminal() bool    { return true }
