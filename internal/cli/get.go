package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
	"go.uber.org/zap"

	"github.com/ytget/ytdownloader/internal/download"
	"github.com/ytget/ytdownloader/internal/model"
	"github.com/ytget/ytdownloader/internal/platform"
)

const barWidth = 64

func (a *App) getCommand() *cobra.Command {
	var (
		dir        string
		resolution string
	)

	cmd := &cobra.Command{
		Use:   "get [url]",
		Short: "Download one video without opening a window",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := a.buildRequest(args[0], dir, resolution)
			if err != nil {
				return &ExitError{Code: ExitUsage, Err: err}
			}

			runner, err := a.runner(cmd.Context())
			if err != nil {
				return err
			}
			return a.download(cmd.Context(), runner, req, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", "", "destination folder (default: download.default_dir or ~/Downloads)")
	cmd.Flags().StringVarP(&resolution, "resolution", "r", model.DefaultResolution.String(), "video height: 1080, 720, 480, 360, 240 or 144")
	return cmd
}

func (a *App) buildRequest(url, dir, resolution string) (model.Request, error) {
	res, err := model.ParseResolution(resolution)
	if err != nil {
		return model.Request{}, err
	}

	if dir == "" {
		dir = a.cfg.Download.DefaultDir
	}
	if dir == "" {
		if dir, err = platform.GetHomeDownloadsDir(); err != nil {
			return model.Request{}, err
		}
		if err := platform.CreateDirectoryIfNotExists(dir); err != nil {
			return model.Request{}, err
		}
	}
	if err := platform.CheckDestination(dir); err != nil {
		return model.Request{}, err
	}

	return model.NewRequest(url, dir, res)
}

// download runs one request and renders its events on a progress bar
func (a *App) download(ctx context.Context, runner download.Runner, req model.Request, out io.Writer) error {
	events, err := runner.Start(ctx, req)
	if err != nil {
		return err
	}

	p := mpb.NewWithContext(ctx, mpb.WithOutput(out), mpb.WithWidth(barWidth))
	bar := p.AddBar(int64(model.MaxPercent),
		mpb.PrependDecorators(
			decor.Name(req.Resolution().Label(), decor.WC{W: 6, C: decor.DindentRight}),
			decor.OnAbort(decor.Name("downloading"), "failed"),
		),
		mpb.AppendDecorators(
			decor.OnComplete(decor.Percentage(decor.WCSyncSpace), "done"),
		),
	)

	var outcome model.Event
	for ev := range events {
		switch e := ev.(type) {
		case model.EventProgress:
			bar.SetCurrent(int64(e.Percent))
		case model.EventCompleted:
			bar.SetCurrent(int64(model.MaxPercent))
			outcome = e
		case model.EventFailed:
			bar.Abort(false)
			outcome = e
		}
	}
	p.Wait()

	switch e := outcome.(type) {
	case model.EventCompleted:
		a.logger.Info("download finished", zap.String("url", req.URL()), zap.String("file", e.OutputPath))
		target := e.OutputPath
		if target == "" {
			target = req.Destination()
		}
		color.New(color.FgGreen).Fprintf(out, "Downloading finished! %s\n", target)
		return nil
	case model.EventFailed:
		color.New(color.FgRed).Fprintf(out, "Download failed:\n%s\n", e.Message)
		return &ExitError{Code: ExitDownload, Err: fmt.Errorf("download failed: %s", e.Message)}
	default:
		return &ExitError{Code: ExitDownload, Err: fmt.Errorf("download ended without a result")}
	}
}
