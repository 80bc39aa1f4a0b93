package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/ytget/ytdownloader/internal/model"
)

// Hook status values reported by the engine
const (
	StatusDownloading = "downloading"
	StatusFinished    = "finished"
	StatusError       = "error"
)

// TitlePlaceholder and ExtPlaceholder are expanded by the engine itself
const (
	TitlePlaceholder = "%(title)s"
	ExtPlaceholder   = "%(ext)s"
)

// HookStatus is passed to progress hooks on every engine tick
type HookStatus struct {
	Status     string // "downloading", "finished", ...
	PercentStr string // engine-native text, e.g. " 55.3%"
	Title      string
	Filename   string
}

// Hook is invoked by the engine on each progress tick
type Hook func(HookStatus)

// Options configure a single engine download
type Options struct {
	Format         string
	OutputTemplate string
	ProgressHooks  []Hook
}

// Result is what the engine reports after a successful download
type Result struct {
	Filename string
	Title    string
}

// Engine downloads one URL according to Options. Any unrecoverable condition
// is reported as a non-nil error carrying human-readable text.
type Engine interface {
	Download(ctx context.Context, url string, opts Options) (*Result, error)
}

// FormatFor builds the selection expression: best video stream of exactly
// the requested height merged with the best audio stream.
func FormatFor(res model.Resolution) string {
	return fmt.Sprintf("bestvideo[height=%d]+bestaudio", int(res))
}

// OutputTemplate places the title-named file inside dir. The path is joined
// with a slash and left uncleaned so the engine placeholders stay intact.
func OutputTemplate(dir string) string {
	dir = strings.TrimRight(dir, "/\\")
	if dir == "" {
		dir = "."
	}
	return dir + "/" + TitlePlaceholder + "." + ExtPlaceholder
}

// OptionsFor builds engine options for req with the given hooks
func OptionsFor(req model.Request, hooks ...Hook) Options {
	return Options{
		Format:         FormatFor(req.Resolution()),
		OutputTemplate: OutputTemplate(req.Destination()),
		ProgressHooks:  hooks,
	}
}

func (o Options) notify(st HookStatus) {
	for _, h := range o.ProgressHooks {
		h(st)
	}
}
