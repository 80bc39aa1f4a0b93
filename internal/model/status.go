package model

// TaskStatus represents the status of a download run
type TaskStatus string

const (
	// TaskStatusIdle means no run has been started yet
	TaskStatusIdle TaskStatus = "Idle"

	// TaskStatusRunning means the engine is working on the request
	TaskStatusRunning TaskStatus = "Running"

	// TaskStatusCompleted means the run finished successfully
	TaskStatusCompleted TaskStatus = "Completed"

	// TaskStatusFailed means the run ended with an error
	TaskStatusFailed TaskStatus = "Failed"
)

// String returns the string representation of TaskStatus
func (ts TaskStatus) String() string {
	return string(ts)
}

// IsActive returns true if a run is in progress
func (ts TaskStatus) IsActive() bool {
	return ts == TaskStatusRunning
}

// IsFinished returns true if the run reached a terminal state (completed or failed)
func (ts TaskStatus) IsFinished() bool {
	return ts == TaskStatusCompleted || ts == TaskStatusFailed
}
