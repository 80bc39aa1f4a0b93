package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ytget/ytdownloader/internal/config"
	"github.com/ytget/ytdownloader/internal/download"
	"github.com/ytget/ytdownloader/internal/engine"
	"github.com/ytget/ytdownloader/internal/logger"
	"github.com/ytget/ytdownloader/internal/tui"
	"github.com/ytget/ytdownloader/internal/ui"
)

// EngineFactory builds the download engine for a loaded configuration
type EngineFactory func(ctx context.Context, cfg *config.Config, log *zap.Logger) (engine.Engine, error)

// App holds the collaborators shared by all commands
type App struct {
	Version   string
	NewEngine EngineFactory
	RunGUI    func(runner download.Runner, version string, opts ui.Options)
	RunTUI    func(ctx context.Context, runner download.Runner, opts tui.Options) error

	configPath string
	cfg        *config.Config
	logger     *zap.Logger
}

// NewApp returns an App backed by yt-dlp and the real front-ends
func NewApp(version string) *App {
	return &App{
		Version:   version,
		NewEngine: newYTDLPEngine,
		RunGUI:    ui.Run,
		RunTUI:    tui.Run,
	}
}

// Execute runs the command line and returns the process exit code
func Execute(ctx context.Context, version string, args []string) int {
	app := NewApp(version)
	cmd := app.RootCommand()
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	if err != nil {
		cmd.PrintErrln("Error:", err)
	}
	return exitCode(err)
}

// setup loads configuration and the logger once per invocation
func (a *App) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath, cmd.Flags())
	if err != nil {
		return err
	}

	log, err := logger.New(logger.Config{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		OutputPath: cfg.Logging.OutputPath,
	})
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	a.cfg = cfg
	a.logger = log
	return nil
}

func (a *App) teardown() {
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

// runner builds the engine and wraps it in a download service
func (a *App) runner(ctx context.Context) (*download.Service, error) {
	eng, err := a.NewEngine(ctx, a.cfg, a.logger)
	if err != nil {
		return nil, err
	}
	return download.NewService(eng, a.logger), nil
}

func (a *App) localization() *ui.Localization {
	l := ui.NewLocalization()
	l.SetLanguage(a.cfg.UI.Language)
	return l
}

func newYTDLPEngine(ctx context.Context, cfg *config.Config, log *zap.Logger) (engine.Engine, error) {
	eng := engine.NewYTDLP(cfg.Engine.Binary, log)
	if cfg.Engine.AutoInstall && cfg.Engine.Binary == "" {
		if err := eng.Install(ctx); err != nil {
			return nil, err
		}
	}
	return eng, nil
}
