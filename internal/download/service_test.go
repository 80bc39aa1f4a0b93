package download

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/ytdownloader/internal/engine"
	"github.com/ytget/ytdownloader/internal/engine/enginetest"
	"github.com/ytget/ytdownloader/internal/model"
)

const collectTimeout = 5 * time.Second

func newRequest(t *testing.T, res model.Resolution) model.Request {
	t.Helper()
	req, err := model.NewRequest("https://example.com/watch?v=abc", "/tmp/out", res)
	require.NoError(t, err)
	return req
}

// collect drains a run until the channel closes
func collect(t *testing.T, events <-chan model.Event) []model.Event {
	t.Helper()
	var out []model.Event
	timeout := time.After(collectTimeout)
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return out
			}
			out = append(out, ev)
		case <-timeout:
			t.Fatalf("run did not finish, got %v", out)
			return nil
		}
	}
}

func terminalCount(events []model.Event) int {
	n := 0
	for _, ev := range events {
		if ev.IsTerminal() {
			n++
		}
	}
	return n
}

func TestNewService(t *testing.T) {
	service := NewService(&enginetest.Fake{}, nil)

	assert.NotNil(t, service.logger)
	assert.Equal(t, model.TaskStatusIdle, service.Status())
}

func TestStart_ProgressThenCompleted(t *testing.T) {
	fake := &enginetest.Fake{
		Steps:  enginetest.Downloading("10.0%", "55.3%", "100.0%"),
		Result: &engine.Result{Filename: "/tmp/out/Clip.mp4"},
	}
	service := NewService(fake, nil)

	events, err := service.Start(context.Background(), newRequest(t, model.Res720))
	require.NoError(t, err)

	got := collect(t, events)
	assert.Equal(t, []model.Event{
		model.EventProgress{Percent: 10},
		model.EventProgress{Percent: 55},
		model.EventProgress{Percent: 100},
		model.EventCompleted{OutputPath: "/tmp/out/Clip.mp4"},
	}, got)

	calls := fake.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "https://example.com/watch?v=abc", calls[0].URL)
	assert.Equal(t, "bestvideo[height=720]+bestaudio", calls[0].Options.Format)
	assert.Equal(t, "/tmp/out/%(title)s.%(ext)s", calls[0].Options.OutputTemplate)
	assert.Equal(t, model.TaskStatusCompleted, service.Status())
}

func TestStart_EngineErrorFailsOnce(t *testing.T) {
	fake := &enginetest.Fake{Err: errors.New("HTTP Error 404")}
	service := NewService(fake, nil)

	events, err := service.Start(context.Background(), newRequest(t, model.Res1080))
	require.NoError(t, err)

	got := collect(t, events)
	require.Len(t, got, 1)
	assert.Equal(t, model.EventFailed{Message: "HTTP Error 404"}, got[0])
	assert.Equal(t, model.TaskStatusFailed, service.Status())
}

func TestStart_ProgressThenFailure(t *testing.T) {
	fake := &enginetest.Fake{
		Steps: enginetest.Downloading("5%", "20%"),
		Err:   errors.New("Connection reset by peer"),
	}
	service := NewService(fake, nil)

	events, err := service.Start(context.Background(), newRequest(t, model.Res480))
	require.NoError(t, err)

	got := collect(t, events)
	require.Len(t, got, 3)
	assert.Equal(t, 1, terminalCount(got))
	assert.Equal(t, model.EventFailed{Message: "Connection reset by peer"}, got[2])
	for _, ev := range got {
		_, completed := ev.(model.EventCompleted)
		assert.False(t, completed, "no Completed after a failure")
	}
}

func TestStart_EnginePanicBecomesFailure(t *testing.T) {
	fake := &enginetest.Fake{Panic: "nil map write"}
	service := NewService(fake, nil)

	events, err := service.Start(context.Background(), newRequest(t, model.Res360))
	require.NoError(t, err)

	got := collect(t, events)
	require.Len(t, got, 1)
	failed, ok := got[0].(model.EventFailed)
	require.True(t, ok, "expected EventFailed, got %T", got[0])
	assert.True(t, strings.Contains(failed.Message, "nil map write"))
	assert.Equal(t, model.TaskStatusFailed, service.Status())
}

func TestStart_IgnoresOtherStatusesAndGarbage(t *testing.T) {
	fake := &enginetest.Fake{
		Steps: []engine.HookStatus{
			{Status: "starting", PercentStr: "0%"},
			{Status: engine.StatusDownloading, PercentStr: "N/A"},
			{Status: engine.StatusDownloading, PercentStr: " 42.9%"},
			{Status: engine.StatusFinished, PercentStr: "100%"},
		},
	}
	service := NewService(fake, nil)

	events, err := service.Start(context.Background(), newRequest(t, model.Res240))
	require.NoError(t, err)

	got := collect(t, events)
	assert.Equal(t, []model.Event{
		model.EventProgress{Percent: 42},
		model.EventCompleted{},
	}, got)
}

func TestStart_ProgressWithinBounds(t *testing.T) {
	fake := &enginetest.Fake{Steps: enginetest.Downloading("-1%", "0.4%", "250%", "99.99%")}
	service := NewService(fake, nil)

	events, err := service.Start(context.Background(), newRequest(t, model.Res144))
	require.NoError(t, err)

	for _, ev := range collect(t, events) {
		if p, ok := ev.(model.EventProgress); ok {
			assert.GreaterOrEqual(t, p.Percent, model.MinPercent)
			assert.LessOrEqual(t, p.Percent, model.MaxPercent)
		}
	}
}

func TestStart_BusyWhileRunning(t *testing.T) {
	gate := make(chan struct{})
	fake := &enginetest.Fake{Gate: gate}
	service := NewService(fake, nil)
	req := newRequest(t, model.Res720)

	events, err := service.Start(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, model.TaskStatusRunning, service.Status())

	_, err = service.Start(context.Background(), req)
	assert.ErrorIs(t, err, ErrBusy)

	close(gate)
	got := collect(t, events)
	assert.Equal(t, 1, terminalCount(got))

	// the guard is released once the terminal event is delivered
	fake.Gate = nil
	events, err = service.Start(context.Background(), req)
	require.NoError(t, err)
	collect(t, events)
	assert.Len(t, fake.Calls(), 2)
}

func TestStart_RestartFromTerminalEvent(t *testing.T) {
	service := NewService(&enginetest.Fake{}, nil)
	req := newRequest(t, model.Res720)

	events, err := service.Start(context.Background(), req)
	require.NoError(t, err)

	ev := <-events
	require.True(t, ev.IsTerminal())

	next, err := service.Start(context.Background(), req)
	require.NoError(t, err)
	collect(t, next)
}

func TestStart_ContextForwardedToEngine(t *testing.T) {
	fake := &enginetest.Fake{Gate: make(chan struct{})}
	service := NewService(fake, nil)

	ctx, cancel := context.WithCancel(context.Background())
	events, err := service.Start(ctx, newRequest(t, model.Res720))
	require.NoError(t, err)
	cancel()

	got := collect(t, events)
	require.Len(t, got, 1)
	assert.Equal(t, model.EventFailed{Message: context.Canceled.Error()}, got[0])
}

func TestStart_RejectsZeroRequest(t *testing.T) {
	service := NewService(&enginetest.Fake{}, nil)

	_, err := service.Start(context.Background(), model.Request{})
	assert.ErrorIs(t, err, model.ErrInvalidRequest)
	assert.Equal(t, model.TaskStatusIdle, service.Status())
}

func TestEmitter_DropsAfterTerminate(t *testing.T) {
	ch := make(chan model.Event, 4)
	em := &emitter{ch: ch}

	em.progress(10)
	em.terminate(model.EventCompleted{})
	em.progress(20)
	em.terminate(model.EventFailed{Message: "late"})

	var got []model.Event
	for ev := range ch {
		got = append(got, ev)
	}
	assert.Equal(t, []model.Event{
		model.EventProgress{Percent: 10},
		model.EventCompleted{},
	}, got)
}

func TestGenerateRunID(t *testing.T) {
	id1 := generateRunID()
	id2 := generateRunID()

	if id1 == id2 {
		t.Error("Expected different run IDs")
	}

	if !strings.HasPrefix(id1, "run-") {
		t.Errorf("Expected ID to start with 'run-', got: %s", id1)
	}

	// run- + 36 chars for UUID
	if len(id1) != len("run-")+36 {
		t.Errorf("Expected ID length %d, got %d for ID: %s", len("run-")+36, len(id1), id1)
	}
}
