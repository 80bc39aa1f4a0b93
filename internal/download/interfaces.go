package download

import (
	"context"

	"github.com/ytget/ytdownloader/internal/model"
)

// Runner defines the interface for the download task runner.
type Runner interface {
	// Start begins a run and returns immediately. The returned channel yields
	// progress events followed by exactly one terminal event, then closes.
	Start(ctx context.Context, req model.Request) (<-chan model.Event, error)

	// Status reports the state of the current or last run
	Status() model.TaskStatus
}
