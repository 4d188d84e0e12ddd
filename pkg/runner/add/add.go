package add

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/atotto/clipboard"

	"tableflip.dev/inkpad/pkg/page"
	"tableflip.dev/inkpad/pkg/store"
)

// Add creates a new reminder page from command-line content and persists
// it. Pages without a target time are OneNote-bound and never written
// locally, so a reminder time is required here; plain notes go through
// the push command instead.
type Add struct {
	Title         string
	Text          string
	FromClipboard bool
	At            time.Time
	Persistence   store.Persistence
}

func (a *Add) Do(ctx context.Context) error {
	if a.Persistence == nil {
		return errors.New("can not add, no persistence")
	}
	if a.At.IsZero() {
		return errors.New("a reminder time is required (--in or --at); use push for plain notes")
	}

	text := a.Text
	if a.FromClipboard {
		pasted, err := clipboard.ReadAll()
		if err != nil {
			return fmt.Errorf("read clipboard: %w", err)
		}
		text = pasted
	}

	pg := page.New(a.Title)
	if pg.Title == "" {
		pg.Title = "Reminder"
	}
	pg.Remind(a.At)
	if text != "" {
		pg.Children = append(pg.Children, page.NewText(text, 0, 0, 14, ""))
	}

	if err := a.Persistence.Save(pg); err != nil {
		return err
	}
	fmt.Printf("created %q (%s), firing at %s\n", pg.Title, pg.StorageID, a.At.Format(time.RFC1123))
	return nil
}
