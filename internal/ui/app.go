package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/theme"
	"go.uber.org/zap"

	"github.com/ytget/ytdownloader/internal/download"
)

// Run opens the main window and blocks until it is closed
func Run(runner download.Runner, version string, opts Options) {
	myApp := app.NewWithID(AppID)
	myApp.Settings().SetTheme(NewCompactTheme())
	myApp.SetIcon(theme.DownloadIcon())

	window := myApp.NewWindow(AppID)
	window.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	opts.Version = version
	NewRootUI(window, runner, opts)

	if opts.Logger != nil {
		opts.Logger.Info("window ready", zap.String("version", version))
	}
	window.ShowAndRun()
}
