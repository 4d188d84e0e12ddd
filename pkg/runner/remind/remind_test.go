package remind

import (
	"context"
	"errors"
	"testing"
	"time"

	"tableflip.dev/inkpad/pkg/page"
	"tableflip.dev/inkpad/pkg/store"
)

// watchedStore is an in-memory store.Persistence that counts disk scans
// and lets the test inject change notifications.
type watchedStore struct {
	pages    []*page.Page
	loads    int
	events   chan store.Event
	watchErr error
}

func newWatchedStore() *watchedStore {
	return &watchedStore{events: make(chan store.Event, 4)}
}

func (w *watchedStore) Save(p *page.Page) error { return nil }

func (w *watchedStore) Load(id string) (*page.Page, error) {
	return nil, errors.New("not found")
}

func (w *watchedStore) LoadAll(_ context.Context) []*page.Page {
	w.loads++
	return append([]*page.Page(nil), w.pages...)
}

func (w *watchedStore) Delete(p *page.Page) error { return nil }

func (w *watchedStore) Watch(_ context.Context) (<-chan store.Event, error) {
	if w.watchErr != nil {
		return nil, w.watchErr
	}
	return w.events, nil
}

func TestPageSourceScansOnceUntilNotified(t *testing.T) {
	ws := newWatchedStore()
	ws.pages = []*page.Page{page.New("a")}

	src := pageSource(context.Background(), ws)

	if got := src(); len(got) != 1 {
		t.Fatalf("expected 1 page, got %d", len(got))
	}
	src()
	src()
	if ws.loads != 1 {
		t.Fatalf("expected a single scan while quiet, got %d", ws.loads)
	}
}

func TestPageSourceReloadsOnChangeEvent(t *testing.T) {
	ws := newWatchedStore()
	src := pageSource(context.Background(), ws)

	src()
	ws.pages = append(ws.pages, page.New("added externally"))
	ws.events <- store.Event{Type: store.EventStoreInvalidated}

	if got := src(); len(got) != 1 {
		t.Fatalf("expected the externally added page, got %d pages", len(got))
	}
	if ws.loads != 2 {
		t.Fatalf("expected a rescan after the event, got %d scans", ws.loads)
	}
}

func TestPageSourceFallsBackToPollingWithoutWatcher(t *testing.T) {
	ws := newWatchedStore()
	ws.watchErr = errors.New("watch unsupported")

	src := pageSource(context.Background(), ws)
	src()
	src()
	src()
	if ws.loads != 3 {
		t.Fatalf("expected a scan per call without a watcher, got %d", ws.loads)
	}
}

func TestPageSourcePollsAfterWatcherCloses(t *testing.T) {
	ws := newWatchedStore()
	src := pageSource(context.Background(), ws)

	src()
	close(ws.events)
	src()
	src()
	if ws.loads != 3 {
		t.Fatalf("expected polling to resume after close, got %d scans", ws.loads)
	}
}

func TestRemindOnceAnnouncesDuePages(t *testing.T) {
	ws := newWatchedStore()
	due := page.New("due now")
	due.Remind(time.Now().Add(-time.Minute))
	ws.pages = []*page.Page{due}

	r := Remind{Once: true, Persistence: ws}
	if err := r.Do(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !due.HasReminded {
		t.Fatal("due page was not marked reminded")
	}
}
