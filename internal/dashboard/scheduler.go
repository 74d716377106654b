package dashboard

import (
	"context"
	"time"
)

// startSchedulerLocked (re)creates the refresh scheduler goroutine. The old
// one, if any, is torn down first so interval or mode changes never leave an
// orphaned ticker behind. Caller holds c.mu.
func (c *Controller) startSchedulerLocked() {
	if c.cancelSched != nil {
		c.cancelSched()
		// Do not wait while holding the lock; the outgoing goroutine only
		// observes its own context and exits.
		c.cancelSched = nil
		c.schedDone = nil
	}

	if c.baseCtx == nil || c.refreshEvery <= 0 {
		return // disabled or not started yet
	}

	ctx, cancel := context.WithCancel(c.baseCtx)
	done := make(chan struct{})
	c.cancelSched = cancel
	c.schedDone = done

	go c.runScheduler(ctx, c.refreshEvery, done)
}

// runScheduler re-fetches on every tick against the mode and window current
// at fire time, not a snapshot captured at schedule time.
func (c *Controller) runScheduler(ctx context.Context, interval time.Duration, done chan<- struct{}) {
	defer close(done)

	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			c.Refresh(ctx)
		}
	}
}
