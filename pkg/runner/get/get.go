package get

import (
	"context"
	"errors"

	"tableflip.dev/inkpad/pkg/printers"
	"tableflip.dev/inkpad/pkg/store"
)

// Get lists the persisted pages.
type Get struct {
	ShowID        bool
	RemindersOnly bool
	Persistence   store.Persistence
}

func (g *Get) Do(ctx context.Context) error {
	if g.Persistence == nil {
		return errors.New("can not get, no persistence")
	}

	pages := g.Persistence.LoadAll(ctx)
	if g.RemindersOnly {
		filtered := pages[:0]
		for _, pg := range pages {
			if pg.TargetTime != nil {
				filtered = append(filtered, pg)
			}
		}
		pages = filtered
	}

	pp := printers.PrettyPrint{ShowID: g.ShowID}
	pp.NewLine()
	pp.Title("Pages")
	pp.Pages(pages, "")
	return nil
}
