package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ytget/ytdownloader/internal/config"
	"github.com/ytget/ytdownloader/internal/tui"
	"github.com/ytget/ytdownloader/internal/ui"
)

// RootCommand builds the command tree. Without a subcommand it opens the
// desktop window.
func (a *App) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "ytdownloader",
		Short:         "YTdownloader - download videos with yt-dlp",
		Long:          `Paste a video URL, pick a folder and a resolution, and download the video through yt-dlp.`,
		Version:       a.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.teardown()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := a.runner(cmd.Context())
			if err != nil {
				return err
			}
			a.RunGUI(runner, a.Version, ui.Options{
				Localization: a.localization(),
				Logger:       a.logger,
				DefaultDir:   a.cfg.Download.DefaultDir,
			})
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (default $HOME/.ytdownloader/config.yaml)")
	flags.String(config.FlagLogLevel, config.DefaultLogLevel, "log level (debug, info, warn, error)")
	flags.String(config.FlagYTDLP, "", "path to the yt-dlp executable")

	root.AddCommand(a.tuiCommand())
	root.AddCommand(a.getCommand())
	root.AddCommand(a.versionCommand())
	return root
}

func (a *App) tuiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the download form in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := a.runner(cmd.Context())
			if err != nil {
				return err
			}
			texts := a.localization().ControllerTexts()
			return a.RunTUI(cmd.Context(), runner, tui.Options{
				Logger:     a.logger,
				DefaultDir: a.cfg.Download.DefaultDir,
				Texts:      &texts,
			})
		},
	}
}

func (a *App) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "ytdownloader %s\n", a.Version)
		},
	}
}
