package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"tableflip.dev/inkpad/pkg/ink"
	"tableflip.dev/inkpad/pkg/page"
	"tableflip.dev/inkpad/pkg/store"
	"tableflip.dev/inkpad/pkg/undo"
)

// memoryPersistence is an in-memory store.Persistence for notebook tests.
type memoryPersistence struct {
	saved   map[string]*page.Page
	deleted []string
}

func newMemoryPersistence() *memoryPersistence {
	return &memoryPersistence{saved: make(map[string]*page.Page)}
}

func (m *memoryPersistence) Save(p *page.Page) error {
	if p == nil || p.StorageID == "" {
		return errors.New("nil page")
	}
	cp := *p
	cp.Strokes = ink.CloneAll(p.Strokes)
	cp.Children = page.CloneElements(p.Children)
	m.saved[p.StorageID] = &cp
	return nil
}

func (m *memoryPersistence) Load(id string) (*page.Page, error) {
	p, ok := m.saved[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return p, nil
}

func (m *memoryPersistence) LoadAll(_ context.Context) []*page.Page {
	out := make([]*page.Page, 0, len(m.saved))
	for _, p := range m.saved {
		out = append(out, p)
	}
	return out
}

func (m *memoryPersistence) Delete(p *page.Page) error {
	m.deleted = append(m.deleted, p.StorageID)
	delete(m.saved, p.StorageID)
	return nil
}

func (m *memoryPersistence) Watch(_ context.Context) (<-chan store.Event, error) {
	ch := make(chan store.Event)
	close(ch)
	return ch, nil
}

func fixture() (*Notebook, *page.Canvas, *memoryPersistence, *undo.Log) {
	c := page.NewCanvas()
	l := undo.New()
	c.SetObserver(l)
	mp := newMemoryPersistence()
	return New(mp, c, l), c, mp, l
}

func TestClosingLastPageRefused(t *testing.T) {
	n, _, _, _ := fixture()

	if err := n.CloseCurrent(false); !errors.Is(err, ErrLastPage) {
		t.Fatalf("expected ErrLastPage, got %v", err)
	}
	if len(n.Pages()) != 1 {
		t.Fatalf("sole page removed from open set")
	}
}

func TestDefaultTitlesAreSequenced(t *testing.T) {
	n, _, _, _ := fixture()

	if got := n.Current().Title; got != "Note 1" {
		t.Fatalf("first title %q", got)
	}
	second := n.NewPage()
	third := n.NewPage()
	if second.Title != "Note 2" || third.Title != "Note 3" {
		t.Fatalf("unexpected titles %q, %q", second.Title, third.Title)
	}
}

func TestSwitchCapturesAndRestores(t *testing.T) {
	n, c, _, _ := fixture()
	first := n.Current()

	s := ink.New("#000000", 2, ink.Point{X: 1})
	c.AddStroke(s)
	c.AddElement(page.NewText("on page one", 5, 5, 14, ""))

	second := n.NewPage()
	if got := len(c.Strokes()); got != 0 {
		t.Fatalf("surface not cleared for new page: %d strokes", got)
	}
	if len(first.Strokes) != 1 || len(first.Children) != 1 {
		t.Fatalf("outgoing page not captured: %d strokes, %d children", len(first.Strokes), len(first.Children))
	}

	c.AddStroke(ink.New("#ff0000", 1, ink.Point{X: 2}))

	if err := n.Switch(first.StorageID); err != nil {
		t.Fatalf("switch back: %v", err)
	}
	if len(second.Strokes) != 1 {
		t.Fatalf("second page not captured on switch away")
	}
	strokes := c.Strokes()
	if len(strokes) != 1 || strokes[0].ID != s.ID {
		t.Fatalf("first page not restored: %+v", strokes)
	}
}

func TestSwitchPersistsReminderPages(t *testing.T) {
	n, c, mp, _ := fixture()
	first := n.Current()
	first.Remind(time.Now().Add(time.Hour))
	c.AddElement(page.NewText("buy milk", 0, 0, 14, ""))

	n.NewPage()

	if _, ok := mp.saved[first.StorageID]; !ok {
		t.Fatal("reminder page not persisted on switch")
	}
	if saved := mp.saved[first.StorageID]; len(saved.Children) != 1 {
		t.Fatalf("persisted copy missing content: %+v", saved)
	}
}

func TestNormalPagesAreNotPersisted(t *testing.T) {
	n, c, mp, _ := fixture()
	c.AddStroke(ink.New("#000000", 1, ink.Point{}))
	n.NewPage()

	if len(mp.saved) != 0 {
		t.Fatalf("normal page persisted to disk: %v", mp.saved)
	}
}

func TestSwitchClearsUndoHistory(t *testing.T) {
	n, c, _, l := fixture()
	c.AddStroke(ink.New("#000000", 1, ink.Point{}))
	first := n.Current()

	n.NewPage()
	if l.Len() != 0 {
		t.Fatalf("undo log survived page switch: %d records", l.Len())
	}

	if err := n.Switch(first.StorageID); err != nil {
		t.Fatalf("switch: %v", err)
	}
	// Restoring the first page's stroke must not create undo records.
	if l.Len() != 0 {
		t.Fatalf("restore recorded %d undo entries", l.Len())
	}
}

func TestCloseDeletesReminderCopyUnlessKept(t *testing.T) {
	n, _, mp, _ := fixture()
	first := n.Current()
	first.Remind(time.Now().Add(time.Hour))
	n.NewPage()

	if err := n.Close(first.StorageID, false); err != nil {
		t.Fatalf("close: %v", err)
	}
	if len(mp.deleted) != 1 || mp.deleted[0] != first.StorageID {
		t.Fatalf("reminder copy not deleted: %v", mp.deleted)
	}

	// keepDisk retains the copy.
	kept := n.Current()
	kept.Remind(time.Now().Add(time.Hour))
	n.NewPage()
	if err := n.Close(kept.StorageID, true); err != nil {
		t.Fatalf("close keeping disk: %v", err)
	}
	for _, id := range mp.deleted {
		if id == kept.StorageID {
			t.Fatal("kept page was deleted from disk")
		}
	}
}

func TestLoadPersistedSkipsOpenPages(t *testing.T) {
	n, _, mp, _ := fixture()

	stored := page.New("from disk")
	stored.Remind(time.Now().Add(time.Hour))
	if err := mp.Save(stored); err != nil {
		t.Fatalf("seed store: %v", err)
	}
	// The current page is also in the store; it must not be duplicated.
	current := n.Current()
	current.Remind(time.Now().Add(time.Hour))
	if err := mp.Save(current); err != nil {
		t.Fatalf("seed store: %v", err)
	}

	added := n.LoadPersisted(context.Background())
	if added != 1 {
		t.Fatalf("expected one page added, got %d", added)
	}
	if len(n.Pages()) != 2 {
		t.Fatalf("open set has %d pages", len(n.Pages()))
	}
}

func TestRenameUnknownPage(t *testing.T) {
	n, _, _, _ := fixture()
	if err := n.Rename("nope", "x"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
