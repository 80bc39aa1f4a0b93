package ui

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/ytget/ytdownloader/internal/controller"
	"github.com/ytget/ytdownloader/internal/download"
	"github.com/ytget/ytdownloader/internal/model"
	"github.com/ytget/ytdownloader/internal/platform"
)

// Options configure RootUI
type Options struct {
	Localization *Localization
	Logger       *zap.Logger
	DefaultDir   string
	// Version, when set, is shown in the window title
	Version string
	// Dispatcher defaults to fyne.Do
	Dispatcher controller.Dispatcher
}

// RootUI represents the main window content
type RootUI struct {
	window       fyne.Window
	localization *Localization
	logger       *zap.Logger
	ctrl         *controller.Controller
	version      string

	urlLabel        *widget.Label
	urlEntry        *widget.Entry
	pasteBtn        *widget.Button
	dirLabel        *widget.Label
	dirEntry        *widget.Entry
	browseBtn       *widget.Button
	resolutionLabel *widget.Label
	resolutionGroup *widget.RadioGroup
	progressLabel   *widget.Label
	progressBar     *widget.ProgressBar
	downloadBtn     *widget.Button
	openBtn         *widget.Button

	progressText string
	lastOutput   string
}

// NewRootUI builds the form, wires it to a controller around runner, and
// sets it as the window content.
func NewRootUI(window fyne.Window, runner download.Runner, opts Options) *RootUI {
	if opts.Localization == nil {
		opts.Localization = NewLocalization()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Dispatcher == nil {
		opts.Dispatcher = fyne.Do
	}

	ui := &RootUI{
		window:       window,
		localization: opts.Localization,
		logger:       opts.Logger,
		version:      opts.Version,
	}

	window.SetTitle(ui.windowTitle())

	ui.createWidgets()

	// The controller syncs the view on creation, so widgets must exist first
	ui.ctrl = controller.New(runner, ui,
		controller.WithDispatcher(opts.Dispatcher),
		controller.WithLogger(opts.Logger),
		controller.WithTexts(ui.localization.ControllerTexts()),
	)
	ui.ctrl.OnCompleted = ui.onCompleted

	ui.bindWidgets()
	ui.createMenu()

	if opts.DefaultDir != "" {
		ui.dirEntry.SetText(opts.DefaultDir)
	}

	window.SetContent(ui.layout())
	ui.logger.Debug("UI setup completed")
	return ui
}

// Controller exposes the presenter driving this view
func (ui *RootUI) Controller() *controller.Controller {
	return ui.ctrl
}

func (ui *RootUI) createWidgets() {
	l := ui.localization

	ui.urlLabel = boldLabel(l.GetText(KeyURLLabel))
	ui.urlEntry = widget.NewEntry()
	ui.urlEntry.SetPlaceHolder(l.GetText(KeyURLPlaceholder))
	ui.pasteBtn = widget.NewButton(l.GetText(KeyPaste), ui.onPaste)

	ui.dirLabel = boldLabel(l.GetText(KeyDirLabel))
	ui.dirEntry = widget.NewEntry()
	ui.dirEntry.SetPlaceHolder(l.GetText(KeyDirPlaceholder))
	ui.browseBtn = widget.NewButton(l.GetText(KeyBrowse), ui.onBrowse)

	ui.resolutionLabel = boldLabel(l.GetText(KeyResolutionLabel))
	ui.resolutionGroup = widget.NewRadioGroup(resolutionOptions(), nil)
	ui.resolutionGroup.Horizontal = true
	ui.resolutionGroup.Required = true
	ui.resolutionGroup.SetSelected(model.DefaultResolution.Label())

	ui.progressLabel = boldLabel(l.GetText(KeyProgressLabel))
	ui.progressBar = widget.NewProgressBar()
	ui.progressBar.Max = ProgressMax
	ui.progressBar.TextFormatter = func() string { return ui.progressText }

	ui.downloadBtn = widget.NewButton(l.GetText(KeyDownload), ui.onDownloadClick)
	ui.downloadBtn.Importance = widget.HighImportance
	ui.downloadBtn.Disable()

	ui.openBtn = widget.NewButton(l.GetText(KeyOpenFolder), ui.onOpenFolder)
	ui.openBtn.Disable()
}

func (ui *RootUI) bindWidgets() {
	ui.urlEntry.OnChanged = ui.ctrl.SetURL
	ui.urlEntry.OnSubmitted = func(string) { ui.onDownloadClick() }
	ui.dirEntry.OnChanged = ui.ctrl.SetDestination
	ui.resolutionGroup.OnChanged = ui.onResolutionChanged
}

func (ui *RootUI) layout() fyne.CanvasObject {
	urlRow := container.NewBorder(nil, nil, nil, ui.pasteBtn, ui.urlEntry)
	dirRow := container.NewBorder(nil, nil, nil, ui.browseBtn, ui.dirEntry)
	actions := container.NewBorder(nil, nil, nil, ui.openBtn, ui.downloadBtn)

	return container.NewPadded(container.NewVBox(
		ui.urlLabel, urlRow,
		ui.dirLabel, dirRow,
		ui.resolutionLabel, ui.resolutionGroup,
		ui.progressLabel, ui.progressBar,
		actions,
	))
}

// createMenu creates the language menu. The choice lasts for this session only.
func (ui *RootUI) createMenu() {
	languageMenu := fyne.NewMenu(ui.localization.GetText(KeyLanguage))

	languages := ui.localization.GetAvailableLanguages()
	codes := make([]string, 0, len(languages))
	for code := range languages {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	for _, code := range codes {
		item := fyne.NewMenuItem(languages[code], func() {
			ui.onLanguageChange(code)
		})
		item.Checked = ui.localization.GetCurrentLanguage() == code
		languageMenu.Items = append(languageMenu.Items, item)
	}

	ui.window.SetMainMenu(fyne.NewMainMenu(languageMenu))
}

// onLanguageChange handles language change
func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.ctrl.SetTexts(ui.localization.ControllerTexts())
	ui.refreshUITexts()
	ui.createMenu()
}

// refreshUITexts updates all static texts with the current language
func (ui *RootUI) refreshUITexts() {
	l := ui.localization
	ui.window.SetTitle(ui.windowTitle())
	ui.urlLabel.SetText(l.GetText(KeyURLLabel))
	ui.urlEntry.SetPlaceHolder(l.GetText(KeyURLPlaceholder))
	ui.pasteBtn.SetText(l.GetText(KeyPaste))
	ui.dirLabel.SetText(l.GetText(KeyDirLabel))
	ui.dirEntry.SetPlaceHolder(l.GetText(KeyDirPlaceholder))
	ui.browseBtn.SetText(l.GetText(KeyBrowse))
	ui.resolutionLabel.SetText(l.GetText(KeyResolutionLabel))
	ui.progressLabel.SetText(l.GetText(KeyProgressLabel))
	ui.downloadBtn.SetText(l.GetText(KeyDownload))
	ui.openBtn.SetText(l.GetText(KeyOpenFolder))
}

// SetStartEnabled implements controller.View
func (ui *RootUI) SetStartEnabled(enabled bool) {
	if enabled {
		ui.downloadBtn.Enable()
	} else {
		ui.downloadBtn.Disable()
	}
}

// SetProgress implements controller.View
func (ui *RootUI) SetProgress(percent int, label string) {
	ui.progressText = label
	ui.progressBar.Value = float64(percent)
	ui.progressBar.Refresh()
}

// ShowError implements controller.View with a modal error dialog
func (ui *RootUI) ShowError(message string) {
	dialog.ShowError(errors.New(message), ui.window)
}

func (ui *RootUI) onDownloadClick() {
	if err := ui.ctrl.Start(); err != nil {
		// runner failures are already shown by the controller
		ui.logger.Debug("start rejected", zap.Error(err))
	}
}

func (ui *RootUI) onResolutionChanged(selected string) {
	res, err := model.ParseResolution(selected)
	if err != nil {
		ui.logger.Debug("ignoring resolution option", zap.String("option", selected), zap.Error(err))
		return
	}
	ui.ctrl.SetResolution(res)
}

// onPaste fills the URL field from the system clipboard
func (ui *RootUI) onPaste() {
	content := strings.TrimSpace(ui.window.Clipboard().Content())
	ui.urlEntry.SetText(content)
}

// onBrowse fills the destination field from a native folder dialog
func (ui *RootUI) onBrowse() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil {
			ui.logger.Warn("folder dialog failed", zap.Error(err))
			dialog.ShowError(err, ui.window)
			return
		}
		if uri == nil {
			return
		}
		ui.dirEntry.SetText(uri.Path())
	}, ui.window)
}

func (ui *RootUI) onCompleted(path string) {
	ui.lastOutput = path
	ui.openBtn.Enable()
}

// onOpenFolder reveals the last downloaded file, or the destination folder
// when the engine did not report a file name.
func (ui *RootUI) onOpenFolder() {
	target := ui.lastOutput
	if target == "" {
		target = strings.TrimSpace(ui.dirEntry.Text)
	}
	if err := platform.OpenFileInManager(target); err != nil {
		ui.logger.Warn("failed to reveal file", zap.String("path", target), zap.Error(err))
		dialog.ShowError(errors.New(ui.localization.GetText(KeyErrorOpeningFile)+": "+err.Error()), ui.window)
	}
}

// windowTitle returns the localized app title with the version, if any
func (ui *RootUI) windowTitle() string {
	title := ui.localization.GetText(KeyAppTitle)
	if ui.version == "" {
		return title
	}
	return fmt.Sprintf("%s v%s", title, ui.version)
}

func boldLabel(text string) *widget.Label {
	return widget.NewLabelWithStyle(text, fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
}

func resolutionOptions() []string {
	res := model.Resolutions()
	options := make([]string, 0, len(res))
	for _, r := range res {
		options = append(options, r.Label())
	}
	return options
}
