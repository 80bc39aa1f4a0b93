// Package enginetest provides a scripted engine.Engine for tests.
package enginetest

import (
	"context"
	"sync"

	"github.com/ytget/ytdownloader/internal/engine"
)

// Call records one Download invocation
type Call struct {
	URL     string
	Options engine.Options
}

// Fake replays Steps through the progress hooks, optionally waits on Gate,
// then panics with Panic, fails with Err, or returns Result.
type Fake struct {
	Steps  []engine.HookStatus
	Err    error
	Panic  any
	Result *engine.Result
	Gate   chan struct{}

	mu    sync.Mutex
	calls []Call
}

// Download implements engine.Engine
func (f *Fake) Download(ctx context.Context, url string, opts engine.Options) (*engine.Result, error) {
	f.mu.Lock()
	f.calls = append(f.calls, Call{URL: url, Options: opts})
	f.mu.Unlock()

	for _, st := range f.Steps {
		for _, h := range opts.ProgressHooks {
			h(st)
		}
	}

	if f.Gate != nil {
		select {
		case <-f.Gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if f.Panic != nil {
		panic(f.Panic)
	}
	if f.Err != nil {
		return nil, f.Err
	}
	if f.Result != nil {
		return f.Result, nil
	}
	return &engine.Result{}, nil
}

// Calls returns a copy of the recorded invocations
func (f *Fake) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Call, len(f.calls))
	copy(out, f.calls)
	return out
}

// Downloading builds "downloading" statuses for the given percent strings
func Downloading(percents ...string) []engine.HookStatus {
	steps := make([]engine.HookStatus, 0, len(percents))
	for _, p := range percents {
		steps = append(steps, engine.HookStatus{Status: engine.StatusDownloading, PercentStr: p})
	}
	return steps
}
