package tui

import (
	"context"
	"fmt"
	"strings"

	bubblesprogress "github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/ytget/ytdownloader/internal/controller"
	"github.com/ytget/ytdownloader/internal/download"
	"github.com/ytget/ytdownloader/internal/model"
)

// Form fields in focus order
const (
	fieldURL = iota
	fieldDestination
	fieldResolution
	fieldDownload
	fieldCount
)

const (
	barWidth    = 40
	inputWidth  = 50
	eventBuffer = 256
)

// Options configure the terminal form
type Options struct {
	Logger     *zap.Logger
	DefaultDir string
	Texts      *controller.Texts
}

type Model struct {
	ctx    context.Context
	ctrl   *controller.Controller
	screen *screen
	logger *zap.Logger

	url         textinput.Model
	destination textinput.Model
	resolutions []model.Resolution
	resIndex    int
	focus       int
	bar         bubblesprogress.Model

	width  int
	styles Styles

	// controller callbacks are queued here and replayed inside Update
	eventCh chan tea.Msg
}

func NewModel(ctx context.Context, runner download.Runner, opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	url := textinput.New()
	url.Placeholder = "Video URL"
	url.Width = inputWidth
	url.Focus()

	dest := textinput.New()
	dest.Placeholder = "Download path"
	dest.Width = inputWidth

	m := Model{
		ctx:         ctx,
		screen:      &screen{},
		logger:      opts.Logger,
		url:         url,
		destination: dest,
		resolutions: model.Resolutions(),
		bar:         bubblesprogress.New(bubblesprogress.WithDefaultGradient(), bubblesprogress.WithWidth(barWidth)),
		styles:      defaultStyles(),
		eventCh:     make(chan tea.Msg, eventBuffer),
	}

	ctrlOpts := []controller.Option{
		controller.WithDispatcher(m.dispatch),
		controller.WithLogger(opts.Logger),
		controller.WithContext(ctx),
	}
	if opts.Texts != nil {
		ctrlOpts = append(ctrlOpts, controller.WithTexts(*opts.Texts))
	}
	m.ctrl = controller.New(runner, m.screen, ctrlOpts...)
	m.ctrl.OnCompleted = func(path string) { m.screen.lastOutput = path }

	if opts.DefaultDir != "" {
		m.destination.SetValue(opts.DefaultDir)
		m.ctrl.SetDestination(opts.DefaultDir)
	}
	for i, r := range m.resolutions {
		if r == model.DefaultResolution {
			m.resIndex = i
		}
	}
	return m
}

func (m Model) dispatch(fn func()) {
	m.eventCh <- dispatchMsg{fn: fn}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.listenEventsCmd())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case dispatchMsg:
		msg.fn()
		return m, m.listenEventsCmd()

	case quitMsg:
		return m, tea.Quit

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "tab", "down":
			m.setFocus((m.focus + 1) % fieldCount)
			return m, nil
		case "shift+tab", "up":
			m.setFocus((m.focus + fieldCount - 1) % fieldCount)
			return m, nil
		case "enter":
			m.start()
			return m, nil
		case "left", "right":
			if m.focus == fieldResolution {
				m.stepResolution(msg.String() == "right")
				return m, nil
			}
		}
	}

	return m.updateInputs(msg)
}

// updateInputs forwards msg to the focused text input and pushes edits to
// the controller.
func (m Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case fieldURL:
		before := m.url.Value()
		m.url, cmd = m.url.Update(msg)
		if v := m.url.Value(); v != before {
			m.ctrl.SetURL(v)
		}
	case fieldDestination:
		before := m.destination.Value()
		m.destination, cmd = m.destination.Update(msg)
		if v := m.destination.Value(); v != before {
			m.ctrl.SetDestination(v)
		}
	}
	return m, cmd
}

func (m *Model) setFocus(field int) {
	m.focus = field
	m.url.Blur()
	m.destination.Blur()
	switch field {
	case fieldURL:
		m.url.Focus()
	case fieldDestination:
		m.destination.Focus()
	}
}

// stepResolution moves the selection; the list runs highest first
func (m *Model) stepResolution(lower bool) {
	if lower && m.resIndex < len(m.resolutions)-1 {
		m.resIndex++
	} else if !lower && m.resIndex > 0 {
		m.resIndex--
	}
	m.ctrl.SetResolution(m.resolutions[m.resIndex])
}

func (m *Model) start() {
	if !m.screen.startEnabled {
		return
	}
	m.screen.err = ""
	m.screen.lastOutput = ""
	if err := m.ctrl.Start(); err != nil {
		m.logger.Debug("start rejected", zap.Error(err))
	}
}

func (m Model) listenEventsCmd() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-m.ctx.Done():
			return quitMsg{}
		case msg := <-m.eventCh:
			return msg
		}
	}
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("YTdownloader"))
	b.WriteString("\n\n")

	b.WriteString(m.fieldLabel(fieldURL, "Enter URL:"))
	b.WriteString("\n" + m.url.View() + "\n\n")

	b.WriteString(m.fieldLabel(fieldDestination, "Enter download path:"))
	b.WriteString("\n" + m.destination.View() + "\n\n")

	b.WriteString(m.fieldLabel(fieldResolution, "Choose resolution:"))
	b.WriteString("\n" + m.viewResolutions() + "\n\n")

	b.WriteString(m.styles.Label.Render("Download progress:"))
	b.WriteString("\n" + m.bar.ViewAs(float64(m.screen.percent)/float64(model.MaxPercent)))
	if m.screen.label != "" {
		b.WriteString("  " + m.screen.label)
	}
	b.WriteString("\n\n")

	b.WriteString(m.viewButton())
	b.WriteString("\n")

	if m.screen.lastOutput != "" {
		b.WriteString("\n" + m.styles.Success.Render("Saved: "+m.screen.lastOutput) + "\n")
	}
	if m.screen.err != "" {
		b.WriteString("\n" + m.styles.Error.Render(m.screen.err) + "\n")
	}

	b.WriteString("\n" + m.styles.Faint.Render("tab: next field • ←/→: resolution • enter: download • esc: quit"))
	return m.styles.Box.Render(b.String())
}

func (m Model) fieldLabel(field int, text string) string {
	if m.focus == field {
		return m.styles.Focused.Render("> " + text)
	}
	return m.styles.Label.Render("  " + text)
}

func (m Model) viewResolutions() string {
	parts := make([]string, 0, len(m.resolutions))
	for i, r := range m.resolutions {
		if i == m.resIndex {
			parts = append(parts, m.styles.Selected.Render(fmt.Sprintf("(•) %s", r.Label())))
		} else {
			parts = append(parts, m.styles.Faint.Render(fmt.Sprintf("( ) %s", r.Label())))
		}
	}
	return strings.Join(parts, "  ")
}

func (m Model) viewButton() string {
	label := "Download"
	if m.focus == fieldDownload {
		label = "> " + label + " <"
	}
	if m.screen.startEnabled {
		return m.styles.Button.Render(label)
	}
	return m.styles.Disabled.Render(label)
}
