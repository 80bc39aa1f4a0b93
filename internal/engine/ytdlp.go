package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/lrstanley/go-ytdlp"
	"go.uber.org/zap"
)

// DefaultProgressInterval throttles progress callbacks from yt-dlp
const DefaultProgressInterval = 250 * time.Millisecond

const errorLinePrefix = "ERROR:"

// YTDLP drives the yt-dlp executable
type YTDLP struct {
	executable string
	interval   time.Duration
	logger     *zap.Logger
}

// NewYTDLP creates an engine backed by yt-dlp. An empty executable means
// the binary is looked up by go-ytdlp (PATH or its cache).
func NewYTDLP(executable string, logger *zap.Logger) *YTDLP {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &YTDLP{
		executable: executable,
		interval:   DefaultProgressInterval,
		logger:     logger,
	}
}

// Install makes sure a yt-dlp binary is available, downloading it if needed,
// and switches the engine to the resolved executable.
func (y *YTDLP) Install(ctx context.Context) error {
	resolved, err := ytdlp.Install(ctx, nil)
	if err != nil {
		return fmt.Errorf("install yt-dlp: %w", err)
	}
	y.executable = resolved.Executable
	y.logger.Info("yt-dlp ready", zap.String("executable", resolved.Executable))
	return nil
}

// Download runs yt-dlp for a single video
func (y *YTDLP) Download(ctx context.Context, url string, opts Options) (*Result, error) {
	dl := ytdlp.New().
		NoPlaylist().
		PrintJSON().
		Format(opts.Format).
		Output(opts.OutputTemplate)

	if y.executable != "" {
		dl = dl.SetExecutable(y.executable)
	}

	var seen lastFilename
	dl.ProgressFunc(y.interval, func(update ytdlp.ProgressUpdate) {
		st := hookStatus(update)
		seen.observe(st)
		opts.notify(st)
	})

	y.logger.Debug("running yt-dlp",
		zap.String("url", url),
		zap.String("format", opts.Format),
		zap.String("output", opts.OutputTemplate))

	res, err := dl.Run(ctx, url)
	if err != nil {
		stderr := ""
		if res != nil {
			stderr = res.Stderr
		}
		return nil, errors.New(engineMessage(stderr, err))
	}

	var info []*ytdlp.ExtractedInfo
	if res != nil {
		if info, err = res.GetExtractedInfo(); err != nil {
			y.logger.Debug("no extracted info from yt-dlp", zap.Error(err))
		}
	}
	return resultFrom(info, seen.get()), nil
}

// resultFrom reads the final file from the printed info JSON, falling back
// to the file named by the last progress update.
func resultFrom(info []*ytdlp.ExtractedInfo, fallback string) *Result {
	out := &Result{Filename: fallback}
	if len(info) == 0 || info[0] == nil {
		return out
	}
	if info[0].Filename != nil && *info[0].Filename != "" {
		out.Filename = *info[0].Filename
	}
	if info[0].Title != nil {
		out.Title = *info[0].Title
	}
	return out
}

// lastFilename remembers the file named by the most recent progress update
type lastFilename struct {
	mu   sync.Mutex
	name string
}

func (l *lastFilename) observe(st HookStatus) {
	if st.Filename == "" {
		return
	}
	l.mu.Lock()
	l.name = st.Filename
	l.mu.Unlock()
}

func (l *lastFilename) get() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.name
}

// hookStatus converts a go-ytdlp update into the engine-neutral status
func hookStatus(update ytdlp.ProgressUpdate) HookStatus {
	st := HookStatus{
		Status:     string(update.Status),
		PercentStr: formatPercent(update.DownloadedBytes, update.TotalBytes),
	}
	if update.Info != nil {
		if update.Info.Title != nil {
			st.Title = *update.Info.Title
		}
		if update.Info.Filename != nil {
			st.Filename = *update.Info.Filename
		}
	}
	return st
}

// formatPercent renders progress the way yt-dlp prints _percent_str
func formatPercent(downloaded, total int) string {
	if total <= 0 {
		return "N/A"
	}
	return fmt.Sprintf("%5.1f%%", float64(downloaded)/float64(total)*100)
}

// engineMessage prefers the last "ERROR:" line yt-dlp printed over the
// generic exit status error.
func engineMessage(stderr string, err error) string {
	lines := strings.Split(stderr, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		if strings.HasPrefix(line, errorLinePrefix) {
			if msg := strings.TrimSpace(strings.TrimPrefix(line, errorLinePrefix)); msg != "" {
				return msg
			}
		}
	}
	if err == nil {
		return "unknown engine error"
	}
	return err.Error()
}
