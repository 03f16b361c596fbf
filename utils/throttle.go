package utils

import (
	"context"
	"time"
)

// Throttle enforces a minimum interval between consecutive calls to Wait.
// The first call never blocks. It is meant for a single sequential caller.
type Throttle struct {
	interval time.Duration
	last     time.Time
	sleep    func(context.Context, time.Duration) error
}

// NewThrottle creates a Throttle with the given minimum interval.
func NewThrottle(interval time.Duration) *Throttle {
	return &Throttle{interval: interval, sleep: sleepContext}
}

// Wait blocks until at least interval has passed since the previous Wait.
func (t *Throttle) Wait(ctx context.Context) error {
	if !t.last.IsZero() {
		if remaining := t.interval - time.Since(t.last); remaining > 0 {
			if err := t.sleep(ctx, remaining); err != nil {
				return err
			}
		}
	}
	t.last = time.Now()
	return nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
