package export

import (
	"context"
	"errors"
	"fmt"
	"os"

	"tableflip.dev/inkpad/pkg/render"
	"tableflip.dev/inkpad/pkg/store"
)

// Export renders a persisted page to a PNG file.
type Export struct {
	ID          string
	Output      string
	Persistence store.Persistence
}

func (e *Export) Do(ctx context.Context) error {
	if e.Persistence == nil {
		return errors.New("can not export, no persistence")
	}
	if e.ID == "" {
		return errors.New("a page id is required")
	}

	pg, err := e.Persistence.Load(e.ID)
	if err != nil {
		return fmt.Errorf("no page %q: %w", e.ID, err)
	}

	data, err := render.PNG(pg)
	if err != nil {
		return err
	}

	out := e.Output
	if out == "" {
		out = pg.StorageID + ".png"
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	fmt.Printf("exported %q to %s\n", pg.Title, out)
	return nil
}
