package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ytget/ytdownloader/internal/download"
)

// Run shows the form until the user quits or ctx is done
func Run(ctx context.Context, runner download.Runner, opts Options) error {
	m := NewModel(ctx, runner, opts)
	prog := tea.NewProgram(m, tea.WithContext(ctx))
	if _, err := prog.Run(); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
