package push

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/atotto/clipboard"

	"tableflip.dev/inkpad/pkg/graph"
	"tableflip.dev/inkpad/pkg/page"
	"tableflip.dev/inkpad/pkg/render"
	"tableflip.dev/inkpad/pkg/store"
)

// Push sends a page to the configured OneNote section. The page is either
// a persisted one loaded by id, or a quick note built from the given text.
// Normal notes live in OneNote, not on local disk, so this is the
// canonical way off the machine for them.
type Push struct {
	ID            string
	Title         string
	Text          string
	FromClipboard bool
	Settings      store.GraphSettings
	Persistence   store.Persistence
}

func (p *Push) Do(ctx context.Context) error {
	pg, err := p.resolve()
	if err != nil {
		return err
	}

	client, err := graph.Connect(ctx, graph.Settings{
		ClientID:  p.Settings.ClientID,
		Tenant:    p.Settings.Tenant,
		TokenFile: p.Settings.TokenFile,
	}, func(uri, code string) {
		fmt.Printf("To sign in, visit %s and enter the code %s\n", uri, code)
	})
	if err != nil {
		return err
	}

	sectionID, err := client.EnsureSection(ctx, p.Settings.Notebook, p.Settings.Section)
	if err != nil {
		return err
	}

	// Text-only pages skip the rendered image part.
	var image []byte
	imagePart := ""
	if len(pg.Strokes) > 0 || hasImage(pg) {
		image, err = render.PNG(pg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "push: render %s: %v\n", pg.StorageID, err)
		} else {
			imagePart = graph.ImagePartName
		}
	}

	if err := client.CreatePage(ctx, sectionID, render.HTML(pg, imagePart), image); err != nil {
		return err
	}
	fmt.Printf("pushed %q to %s / %s\n", pg.Title, p.Settings.Notebook, p.Settings.Section)
	return nil
}

func (p *Push) resolve() (*page.Page, error) {
	if p.ID != "" {
		if p.Persistence == nil {
			return nil, errors.New("can not push, no persistence")
		}
		pg, err := p.Persistence.Load(p.ID)
		if err != nil {
			return nil, fmt.Errorf("no page %q: %w", p.ID, err)
		}
		return pg, nil
	}

	text := p.Text
	if p.FromClipboard {
		pasted, err := clipboard.ReadAll()
		if err != nil {
			return nil, fmt.Errorf("read clipboard: %w", err)
		}
		text = pasted
	}
	if text == "" {
		return nil, errors.New("a page id or note text is required")
	}

	pg := page.New(p.Title)
	if pg.Title == "" {
		pg.Title = "Quick Note"
	}
	pg.Children = append(pg.Children, page.NewText(text, 0, 0, 14, ""))
	return pg, nil
}

func hasImage(pg *page.Page) bool {
	for _, e := range pg.Children {
		if e.Kind == page.ElementImage {
			return true
		}
	}
	return false
}
