package rename

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/inkpad/pkg/store"
)

// Rename retitles a persisted page.
type Rename struct {
	ID          string
	Title       string
	Persistence store.Persistence
}

func (r *Rename) Do(ctx context.Context) error {
	if r.Persistence == nil {
		return errors.New("can not rename, no persistence")
	}
	if r.ID == "" {
		return errors.New("a page id is required")
	}
	if r.Title == "" {
		return errors.New("a new title is required")
	}

	pg, err := r.Persistence.Load(r.ID)
	if err != nil {
		return fmt.Errorf("no page %q: %w", r.ID, err)
	}
	old := pg.Title
	pg.Title = r.Title
	if err := r.Persistence.Save(pg); err != nil {
		return err
	}
	fmt.Printf("renamed %q to %q\n", old, pg.Title)
	return nil
}
