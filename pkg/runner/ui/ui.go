package ui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"tableflip.dev/inkpad/pkg/app"
	"tableflip.dev/inkpad/pkg/page"
	"tableflip.dev/inkpad/pkg/store"
	"tableflip.dev/inkpad/pkg/tui"
	"tableflip.dev/inkpad/pkg/undo"
)

// UI opens the terminal page browser over a notebook seeded from the
// persisted pages.
type UI struct {
	Persistence store.Persistence
}

func (u *UI) Do(ctx context.Context) error {
	if u.Persistence == nil {
		return errors.New("can not open ui, no persistence")
	}

	canvas := page.NewCanvas()
	log := undo.New()
	canvas.SetObserver(log)

	notebook := app.New(u.Persistence, canvas, log)
	notebook.LoadPersisted(ctx)

	p := tea.NewProgram(tui.New(notebook))
	_, err := p.Run()
	return err
}
