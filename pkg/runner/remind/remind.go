package remind

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"tableflip.dev/inkpad/pkg/page"
	"tableflip.dev/inkpad/pkg/printers"
	"tableflip.dev/inkpad/pkg/reminder"
	"tableflip.dev/inkpad/pkg/store"
)

// Remind watches the persisted reminder pages and announces each one
// exactly once when its target time passes. Fired pages are written back
// so the reminded flag survives restarts.
type Remind struct {
	Once        bool
	Interval    time.Duration
	Persistence store.Persistence
}

func (r *Remind) Do(ctx context.Context) error {
	if r.Persistence == nil {
		return errors.New("can not remind, no persistence")
	}

	pp := printers.PrettyPrint{}
	sched := reminder.New(nil)

	fire := func(pg *page.Page) {
		pp.Alarm(pg)
		if err := r.Persistence.Save(pg); err != nil {
			fmt.Fprintf(os.Stderr, "remind: persist %s: %v\n", pg.StorageID, err)
		}
	}

	if r.Once {
		fired := sched.Check(r.Persistence.LoadAll(ctx))
		for _, pg := range fired {
			fire(pg)
		}
		if len(fired) == 0 {
			fmt.Println("nothing due")
		}
		return nil
	}

	sched.Run(ctx, r.Interval, pageSource(ctx, r.Persistence), fire)
	return nil
}

// pageSource feeds the scheduler. The store's change notifications gate
// the disk scans: pages are re-read when the watcher reports a change,
// not on every tick. Without a usable watcher every call re-reads, which
// is the pre-notification behavior.
func pageSource(ctx context.Context, p store.Persistence) func() []*page.Page {
	events, err := p.Watch(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "remind: watch: %v\n", err)
		events = nil
	}

	var cached []*page.Page
	loaded := false
	return func() []*page.Page {
		changed := false
	drain:
		for events != nil {
			select {
			case _, ok := <-events:
				if !ok {
					events = nil
				} else {
					changed = true
				}
			default:
				break drain
			}
		}
		if events == nil || changed || !loaded {
			cached = p.LoadAll(ctx)
			loaded = true
		}
		return cached
	}
}
