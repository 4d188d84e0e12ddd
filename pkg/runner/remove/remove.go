package remove

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/inkpad/pkg/store"
)

// Remove deletes a persisted page by storage id.
type Remove struct {
	ID          string
	Persistence store.Persistence
}

func (r *Remove) Do(ctx context.Context) error {
	if r.Persistence == nil {
		return errors.New("can not remove, no persistence")
	}
	if r.ID == "" {
		return errors.New("a page id is required")
	}

	pg, err := r.Persistence.Load(r.ID)
	if err != nil {
		return fmt.Errorf("no page %q: %w", r.ID, err)
	}
	if err := r.Persistence.Delete(pg); err != nil {
		return err
	}
	fmt.Printf("removed %q (%s)\n", pg.Title, pg.StorageID)
	return nil
}
