package geocode

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Throttle enforces a minimum interval between lookups against a
// rate-limited provider. It is safe for concurrent callers: each Wait
// reserves the next free slot.
type Throttle struct {
	mu       sync.Mutex
	interval time.Duration
	clock    clockwork.Clock
	next     time.Time
}

func NewThrottle(interval time.Duration, clock clockwork.Clock) *Throttle {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Throttle{interval: interval, clock: clock}
}

// Wait blocks until the caller's slot arrives or ctx is done.
func (t *Throttle) Wait(ctx context.Context) error {
	if t == nil || t.interval <= 0 {
		return nil
	}

	t.mu.Lock()
	now := t.clock.Now()
	slot := t.next
	if slot.Before(now) {
		slot = now
	}
	t.next = slot.Add(t.interval)
	t.mu.Unlock()

	delay := slot.Sub(now)
	if delay <= 0 {
		return nil
	}

	timer := t.clock.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.Chan():
		return nil
	}
}
