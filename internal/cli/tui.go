package cli

import (
	tea "github.com/charmbracelet/bubbletea"

	"habitboard/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	snap, err := ctx.Store.Snapshot()
	if err != nil {
		return err
	}

	p := tea.NewProgram(tui.New(snap), tea.WithAltScreen())
	_, err = p.Run()
	return err
}
