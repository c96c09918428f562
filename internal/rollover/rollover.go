// Package rollover watches the wall clock for local-midnight crossings and
// republishes the current day key. It is the only autonomous driver of
// recomputation; everything else happens on user action.
package rollover

import (
	"context"
	"sync"
	"time"

	"ritual/internal/daykey"
)

// DefaultInterval is how often the tracker polls the clock. Midnight only
// needs minute-ish resolution; anything finer just burns wakeups.
const DefaultInterval = 30 * time.Second

// Tracker polls an injected clock and invokes onChange with the new day key
// whenever the local calendar day changes.
type Tracker struct {
	loc      *time.Location
	interval time.Duration
	onChange func(day string)

	mu      sync.Mutex
	now     func() time.Time
	current string
}

// New creates a tracker primed with the current day key; onChange fires
// only on subsequent changes, not for the initial key.
func New(loc *time.Location, onChange func(day string)) *Tracker {
	t := &Tracker{
		loc:      loc,
		interval: DefaultInterval,
		onChange: onChange,
		now:      time.Now,
	}
	t.current = daykey.Format(t.now(), t.loc)
	return t
}

// SetClock replaces the clock source and re-primes the current key.
func (t *Tracker) SetClock(now func() time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.now = now
	t.current = daykey.Format(now(), t.loc)
}

// SetInterval overrides the polling interval for the next Run.
func (t *Tracker) SetInterval(interval time.Duration) {
	t.interval = interval
}

// Current returns the last observed day key.
func (t *Tracker) Current() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current
}

// Poll checks the clock once, reporting whether the day changed. The
// onChange callback runs outside the tracker's lock.
func (t *Tracker) Poll() bool {
	t.mu.Lock()
	key := daykey.Format(t.now(), t.loc)
	changed := key != t.current
	if changed {
		t.current = key
	}
	t.mu.Unlock()

	if changed && t.onChange != nil {
		t.onChange(key)
	}
	return changed
}

// Run polls until ctx is canceled.
func (t *Tracker) Run(ctx context.Context) {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.Poll()
		}
	}
}
