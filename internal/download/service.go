package download

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ytget/ytdownloader/internal/engine"
	"github.com/ytget/ytdownloader/internal/model"
)

// ErrBusy is returned by Start while another run is active
var ErrBusy = errors.New("a download is already running")

// EventBuffer is the capacity of the per-run event channel
const EventBuffer = 16

// Service runs downloads one at a time
type Service struct {
	engine engine.Engine
	logger *zap.Logger

	mu     sync.Mutex
	status model.TaskStatus
}

// NewService creates a new download service
func NewService(eng engine.Engine, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		engine: eng,
		logger: logger,
		status: model.TaskStatusIdle,
	}
}

// Status returns the state of the current or last run
func (s *Service) Status() model.TaskStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Start launches a run for req on its own goroutine
func (s *Service) Start(ctx context.Context, req model.Request) (<-chan model.Event, error) {
	if req.URL() == "" || req.Destination() == "" {
		return nil, fmt.Errorf("%w: request was not built with NewRequest", model.ErrInvalidRequest)
	}

	s.mu.Lock()
	if s.status.IsActive() {
		s.mu.Unlock()
		return nil, ErrBusy
	}
	s.status = model.TaskStatusRunning
	s.mu.Unlock()

	runID := generateRunID()
	events := make(chan model.Event, EventBuffer)

	log := s.logger.With(
		zap.String("run_id", runID),
		zap.String("url", req.URL()),
		zap.Stringer("resolution", req.Resolution()),
	)
	log.Info("download started", zap.String("destination", req.Destination()))

	go s.run(ctx, req, &emitter{ch: events}, log)

	return events, nil
}

// run executes the engine and always ends with exactly one terminal event
func (s *Service) run(ctx context.Context, req model.Request, em *emitter, log *zap.Logger) {
	outcome := s.execute(ctx, req, em, log)

	// Release the single-run guard before the consumer sees the outcome so
	// that it may start the next run right away.
	s.mu.Lock()
	switch ev := outcome.(type) {
	case model.EventCompleted:
		s.status = model.TaskStatusCompleted
		log.Info("download completed", zap.String("output", ev.OutputPath))
	case model.EventFailed:
		s.status = model.TaskStatusFailed
		log.Warn("download failed", zap.String("error", ev.Message))
	}
	s.mu.Unlock()

	em.terminate(outcome)
}

func (s *Service) execute(ctx context.Context, req model.Request, em *emitter, log *zap.Logger) (outcome model.Event) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("engine panicked", zap.Any("panic", r))
			outcome = model.EventFailed{Message: fmt.Sprintf("engine panic: %v", r)}
		}
	}()

	hook := func(st engine.HookStatus) {
		if st.Status != engine.StatusDownloading {
			return
		}
		percent, ok := ParsePercent(st.PercentStr)
		if !ok {
			log.Debug("unparsable progress", zap.String("text", st.PercentStr))
			return
		}
		em.progress(percent)
	}

	res, err := s.engine.Download(ctx, req.URL(), engine.OptionsFor(req, hook))
	if err != nil {
		return model.EventFailed{Message: err.Error()}
	}

	var path string
	if res != nil {
		path = res.Filename
	}
	return model.EventCompleted{OutputPath: path}
}

// emitter serializes sends on a run's channel and drops anything that
// arrives after the terminal event.
type emitter struct {
	mu     sync.Mutex
	ch     chan model.Event
	closed bool
}

func (e *emitter) progress(percent int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.ch <- model.EventProgress{Percent: percent}
}

func (e *emitter) terminate(ev model.Event) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.closed = true
	e.ch <- ev
	close(e.ch)
}

// generateRunID generates a unique run ID
func generateRunID() string {
	return "run-" + uuid.NewString()
}
