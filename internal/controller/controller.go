package controller

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/ytget/ytdownloader/internal/download"
	"github.com/ytget/ytdownloader/internal/model"
)

// ErrIncomplete is returned by Start when a mandatory field is empty
var ErrIncomplete = errors.New("url and destination are required")

// View is the set of widget operations the controller drives. Every call
// happens on the consumer context.
type View interface {
	SetStartEnabled(enabled bool)
	SetProgress(percent int, label string)
	ShowError(message string)
}

// Dispatcher runs fn on the consumer context (e.g. fyne.Do). Calls must be
// executed in submission order.
type Dispatcher func(fn func())

// Immediate runs fn on the calling goroutine
func Immediate(fn func()) { fn() }

// Texts holds the user-facing labels. ProgressFormat receives the percent.
type Texts struct {
	Preparing      string
	ProgressFormat string
	Finished       string
	FailedPrefix   string
}

// DefaultTexts returns the English labels
func DefaultTexts() Texts {
	return Texts{
		Preparing:      "Preparing...",
		ProgressFormat: "Downloading... %d%%",
		Finished:       "Downloading finished!",
		FailedPrefix:   "Download failed:\n",
	}
}

// State is a snapshot of what the view currently shows
type State struct {
	URL          string
	Destination  string
	Resolution   model.Resolution
	StartEnabled bool
	Running      bool
	Progress     int
	Label        string
	LastError    string
	LastOutput   string
}

// Option configures a Controller
type Option func(*Controller)

// WithDispatcher sets how runner events reach the consumer context
func WithDispatcher(d Dispatcher) Option {
	return func(c *Controller) { c.dispatch = d }
}

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithTexts overrides the user-facing labels
func WithTexts(t Texts) Option {
	return func(c *Controller) { c.texts = t }
}

// WithContext sets the parent context handed to each run
func WithContext(ctx context.Context) Option {
	return func(c *Controller) { c.ctx = ctx }
}

// Controller binds form input to a download.Runner
type Controller struct {
	runner   download.Runner
	view     View
	dispatch Dispatcher
	logger   *zap.Logger
	texts    Texts
	ctx      context.Context

	// OnCompleted, when set, is called on the consumer context after a
	// successful run with the engine-reported path (may be empty).
	OnCompleted func(path string)

	mu    sync.Mutex
	state State
}

// New creates a controller. The view is synced immediately: start disabled,
// progress at zero, resolution at the default.
func New(runner download.Runner, view View, opts ...Option) *Controller {
	c := &Controller{
		runner:   runner,
		view:     view,
		dispatch: Immediate,
		logger:   zap.NewNop(),
		texts:    DefaultTexts(),
		ctx:      context.Background(),
		state:    State{Resolution: model.DefaultResolution},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.view.SetStartEnabled(false)
	c.view.SetProgress(0, "")
	return c
}

// SetURL updates the URL field
func (c *Controller) SetURL(url string) {
	c.mu.Lock()
	c.state.URL = url
	c.mu.Unlock()
	c.refreshStart()
}

// SetDestination updates the destination field
func (c *Controller) SetDestination(dir string) {
	c.mu.Lock()
	c.state.Destination = dir
	c.mu.Unlock()
	c.refreshStart()
}

// SetResolution selects the target resolution. Unknown values are ignored.
func (c *Controller) SetResolution(res model.Resolution) {
	if !res.Valid() {
		c.logger.Debug("ignoring unsupported resolution", zap.Int("resolution", int(res)))
		return
	}
	c.mu.Lock()
	c.state.Resolution = res
	c.mu.Unlock()
}

// SetTexts swaps the labels used for subsequent updates
func (c *Controller) SetTexts(t Texts) {
	c.mu.Lock()
	c.texts = t
	c.mu.Unlock()
}

// CanStart reports whether both mandatory fields are non-empty
func (c *Controller) CanStart() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inputComplete()
}

// State returns a snapshot of the current state
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.state
	s.StartEnabled = c.startEnabled()
	return s
}

// Start captures the form into a request and launches one run
func (c *Controller) Start() error {
	c.mu.Lock()
	if c.state.Running {
		c.mu.Unlock()
		return download.ErrBusy
	}
	if !c.inputComplete() {
		c.mu.Unlock()
		return ErrIncomplete
	}
	req, err := model.NewRequest(c.state.URL, c.state.Destination, c.state.Resolution)
	if err != nil {
		c.mu.Unlock()
		c.fail(err.Error())
		return err
	}
	preparing := c.texts.Preparing
	c.state.Running = true
	c.state.Progress = 0
	c.state.Label = preparing
	c.state.LastError = ""
	c.mu.Unlock()

	c.view.SetStartEnabled(false)
	c.view.SetProgress(0, preparing)

	c.logger.Info("starting download",
		zap.String("url", req.URL()),
		zap.String("destination", req.Destination()),
		zap.Stringer("resolution", req.Resolution()))

	events, err := c.runner.Start(c.ctx, req)
	if err != nil {
		c.logger.Warn("runner refused to start", zap.Error(err))
		c.fail(err.Error())
		return fmt.Errorf("start download: %w", err)
	}

	go func() {
		for ev := range events {
			c.dispatch(func() { c.apply(ev) })
		}
	}()
	return nil
}

// apply reflects one runner event into the view; runs on the consumer context
func (c *Controller) apply(ev model.Event) {
	switch e := ev.(type) {
	case model.EventProgress:
		c.mu.Lock()
		label := fmt.Sprintf(c.texts.ProgressFormat, e.Percent)
		c.state.Progress = e.Percent
		c.state.Label = label
		c.mu.Unlock()
		c.view.SetProgress(e.Percent, label)

	case model.EventCompleted:
		c.mu.Lock()
		c.state.Running = false
		c.state.Progress = model.MaxPercent
		finished := c.texts.Finished
		c.state.Label = finished
		c.state.LastOutput = e.OutputPath
		enabled := c.startEnabled()
		c.mu.Unlock()
		c.view.SetProgress(model.MaxPercent, finished)
		c.view.SetStartEnabled(enabled)
		if c.OnCompleted != nil {
			c.OnCompleted(e.OutputPath)
		}

	case model.EventFailed:
		c.fail(e.Message)
	}
}

// fail leaves the indicator untouched, re-enables start, and reports message
func (c *Controller) fail(message string) {
	c.mu.Lock()
	c.state.Running = false
	c.state.LastError = message
	prefix := c.texts.FailedPrefix
	enabled := c.startEnabled()
	c.mu.Unlock()
	c.view.ShowError(prefix + message)
	c.view.SetStartEnabled(enabled)
}

func (c *Controller) refreshStart() {
	c.mu.Lock()
	enabled := c.startEnabled()
	c.mu.Unlock()
	c.view.SetStartEnabled(enabled)
}

// inputComplete requires c.mu held
func (c *Controller) inputComplete() bool {
	return c.state.URL != "" && c.state.Destination != ""
}

// startEnabled requires c.mu held
func (c *Controller) startEnabled() bool {
	return !c.state.Running && c.inputComplete()
}
