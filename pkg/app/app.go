// Package app wires the page model, the undo log, and the store into the
// notebook: the open set of pages with exactly one bound to the live
// surface at any time.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"

	"tableflip.dev/inkpad/pkg/page"
	"tableflip.dev/inkpad/pkg/store"
	"tableflip.dev/inkpad/pkg/undo"
)

// ErrLastPage is returned when closing would empty the open set.
var ErrLastPage = errors.New("app: cannot close the last remaining page")

// ErrNotFound is returned for operations naming an unknown page.
var ErrNotFound = errors.New("app: page not found")

// Notebook owns the open set of pages. One page is always current and
// bound to the surface; switching captures the outgoing page, persists it
// when its type requires persistence, and restores the incoming one.
type Notebook struct {
	persistence store.Persistence
	surface     page.Surface
	undo        *undo.Log

	pages   []*page.Page
	current int
	nextSeq int
}

// New creates a notebook bound to the surface with one fresh empty page.
// Persistence may be nil for purely in-memory use; the undo log is
// optional too.
func New(p store.Persistence, sf page.Surface, log *undo.Log) *Notebook {
	n := &Notebook{
		persistence: p,
		surface:     sf,
		undo:        log,
	}
	first := page.New(n.nextTitle())
	n.pages = []*page.Page{first}
	n.current = 0
	return n
}

// nextTitle hands out the sequence-numbered placeholder titles. The
// counter lives here, not in a package global, so page creation stays
// deterministic.
func (n *Notebook) nextTitle() string {
	n.nextSeq++
	return fmt.Sprintf("Note %d", n.nextSeq)
}

// Pages returns the open set in tab order.
func (n *Notebook) Pages() []*page.Page {
	return append([]*page.Page(nil), n.pages...)
}

// Current returns the page bound to the surface.
func (n *Notebook) Current() *page.Page {
	return n.pages[n.current]
}

// Find returns the open page with the given storage id.
func (n *Notebook) Find(storageID string) (*page.Page, error) {
	for _, pg := range n.pages {
		if pg.StorageID == storageID {
			return pg, nil
		}
	}
	return nil, ErrNotFound
}

// NewPage captures the current page, appends a fresh one with the next
// placeholder title, and switches to it.
func (n *Notebook) NewPage() *page.Page {
	n.captureCurrent()
	pg := page.New(n.nextTitle())
	n.pages = append(n.pages, pg)
	n.switchTo(len(n.pages) - 1)
	return pg
}

// Switch makes the page with the given id current: the outgoing page is
// captured from the surface (and persisted if it is a reminder page), the
// incoming page is restored onto it.
func (n *Notebook) Switch(storageID string) error {
	for i, pg := range n.pages {
		if pg.StorageID == storageID {
			if i == n.current {
				return nil
			}
			n.captureCurrent()
			n.switchTo(i)
			return nil
		}
	}
	return ErrNotFound
}

// captureCurrent pulls the surface content into the current page and
// persists it when the page's type requires a local copy. Persistence
// failures are logged and swallowed: a stale on-disk copy is lower
// severity than losing the editor.
func (n *Notebook) captureCurrent() {
	pg := n.pages[n.current]
	pg.CaptureFrom(n.surface)
	n.persist(pg)
}

func (n *Notebook) persist(pg *page.Page) {
	if n.persistence == nil || pg.NoteType != page.TypeScheduleReminder {
		return
	}
	if err := n.persistence.Save(pg); err != nil {
		fmt.Fprintf(os.Stderr, "app: persist %s: %v\n", pg.StorageID, err)
	}
}

// switchTo restores pages[i] onto the surface. The restore's own surface
// mutations are suppressed from the undo log, and the log is cleared:
// undo history never crosses a page switch.
func (n *Notebook) switchTo(i int) {
	n.current = i
	pg := n.pages[i]
	if n.undo != nil {
		n.undo.Suppress(func() {
			pg.RestoreTo(n.surface)
		})
		n.undo.Clear()
		return
	}
	pg.RestoreTo(n.surface)
}

// SaveCurrent captures and persists the current page in place.
func (n *Notebook) SaveCurrent() {
	n.captureCurrent()
}

// Rename retitles an open page.
func (n *Notebook) Rename(storageID, title string) error {
	pg, err := n.Find(storageID)
	if err != nil {
		return err
	}
	pg.Title = title
	n.persist(pg)
	return nil
}

// CloseCurrent removes the current page from the open set and switches to
// its neighbor. Closing the sole remaining page is refused. For reminder
// pages keepDisk decides whether the on-disk copy is retained; normal
// pages have none.
func (n *Notebook) CloseCurrent(keepDisk bool) error {
	if len(n.pages) == 1 {
		return ErrLastPage
	}
	pg := n.pages[n.current]
	if pg.NoteType == page.TypeScheduleReminder && !keepDisk && n.persistence != nil {
		if err := n.persistence.Delete(pg); err != nil {
			fmt.Fprintf(os.Stderr, "app: delete %s: %v\n", pg.StorageID, err)
		}
	}

	n.pages = append(n.pages[:n.current], n.pages[n.current+1:]...)
	if n.current >= len(n.pages) {
		n.current = len(n.pages) - 1
	}
	n.switchTo(n.current)
	return nil
}

// Close closes the page with the given id, switching first if needed.
func (n *Notebook) Close(storageID string, keepDisk bool) error {
	if err := n.Switch(storageID); err != nil {
		return err
	}
	return n.CloseCurrent(keepDisk)
}

// LoadPersisted merges every page the store can reconstruct into the open
// set, skipping ids that are already open. It reports how many pages were
// added.
func (n *Notebook) LoadPersisted(ctx context.Context) int {
	if n.persistence == nil {
		return 0
	}
	open := make(map[string]struct{}, len(n.pages))
	for _, pg := range n.pages {
		open[pg.StorageID] = struct{}{}
	}
	added := 0
	for _, pg := range n.persistence.LoadAll(ctx) {
		if _, ok := open[pg.StorageID]; ok {
			continue
		}
		n.pages = append(n.pages, pg)
		added++
	}
	return added
}
