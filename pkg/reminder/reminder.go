// Package reminder polls wall-clock time and fires each schedule-reminder
// page exactly once when its target time has passed.
package reminder

import (
	"context"
	"time"

	"tableflip.dev/inkpad/pkg/page"
)

// DefaultInterval is the poll cadence of the reminder loop.
const DefaultInterval = time.Second

// Clock supplies the current time. Tests substitute a simulated clock.
type Clock func() time.Time

// Scheduler checks pages against a clock. It holds no page state of its
// own; the fired-once guarantee lives in each page's reminded flag.
type Scheduler struct {
	clock Clock
}

// New builds a scheduler. A nil clock means wall-clock time.
func New(clock Clock) *Scheduler {
	if clock == nil {
		clock = time.Now
	}
	return &Scheduler{clock: clock}
}

// Check returns the pages whose target time has passed and latches their
// reminded flag, so a later check never reports them again.
func (s *Scheduler) Check(pages []*page.Page) []*page.Page {
	now := s.clock()
	var fired []*page.Page
	for _, pg := range pages {
		if pg.Due(now) {
			pg.MarkReminded()
			fired = append(fired, pg)
		}
	}
	return fired
}

// Run polls once per interval until ctx is done, calling fire for every
// page that comes due. It runs on the caller's goroutine; the canonical
// interval is one second.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration, source func() []*page.Page, fire func(*page.Page)) {
	if interval <= 0 {
		interval = DefaultInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, pg := range s.Check(source()) {
				fire(pg)
			}
		}
	}
}
