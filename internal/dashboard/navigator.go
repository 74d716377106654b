package dashboard

import (
	"context"
	"time"

	"tankgraph/internal/models"
)

// Direction of a pan request.
type Direction string

const (
	DirEarlier Direction = "earlier"
	DirLater   Direction = "later"
)

// Valid reports whether d is a known direction.
func (d Direction) Valid() bool { return d == DirEarlier || d == DirLater }

// Pan slides the all-time window by half its size and re-fetches. A no-op in
// fixed-hours mode.
//
// Panning later always commits and re-enables earlier navigation (moving
// forward can only move away from the data floor). Panning earlier first runs
// a cheap existence check on the tentative window; when that comes back empty
// the earliest-data probe either pins the window at the true data boundary
// (disabling further earlier pans) or, finding nothing, lets the tentative
// window stand. A failing existence check never blocks the pan.
func (c *Controller) Pan(ctx context.Context, dir Direction) error {
	c.mu.Lock()
	if !c.mode.IsAllTime() {
		c.mu.Unlock()
		return nil
	}
	window := c.mode.Window
	hasEarlier := c.state.HasEarlierData
	c.mu.Unlock()

	move := window.Size() / 2

	if dir == DirLater {
		c.commitWindow(window.Shift(move), true)
		c.Refresh(ctx)
		return nil
	}

	if !hasEarlier {
		return ErrNoEarlierData
	}

	tentative := window.Shift(-move)

	resp, err := c.reader.Query(ctx, Query{
		Start: tentative.Start,
		End:   tentative.End,
		Limit: existenceLimit,
	})
	switch {
	case err != nil:
		// Transient failure must not freeze navigation.
		c.log.Warnw("pan existence check failed, committing tentative window",
			"err", err, "start", tentative.Start, "end", tentative.End)
		c.commitWindow(tentative, hasEarlier)

	case len(resp.Data) > 0:
		c.commitWindow(tentative, true)

	default:
		anchor, found, perr := c.probeEarliest(ctx)
		switch {
		case perr != nil:
			c.log.Warnw("earliest-data probe failed, committing tentative window", "err", perr)
			c.commitWindow(tentative, hasEarlier)
		case found:
			// Pin at the true data boundary; window size is preserved.
			c.commitWindow(models.TimeWindow{
				Start: anchor,
				End:   anchor.Add(tentative.Size()),
			}, false)
		default:
			c.commitWindow(tentative, hasEarlier)
		}
	}

	c.Refresh(ctx)
	return nil
}

// ResetToNow recentres the window on the current instant, preserving its
// size, and re-fetches. A no-op in fixed-hours mode.
func (c *Controller) ResetToNow(ctx context.Context) {
	c.mu.Lock()
	if !c.mode.IsAllTime() {
		c.mu.Unlock()
		return
	}
	size := c.mode.Window.Size()
	c.mu.Unlock()

	c.commitWindow(models.NewWindowEndingAt(time.Now().UTC(), size), true)
	c.Refresh(ctx)
}

// commitWindow stores the window and the earlier-navigation flag.
func (c *Controller) commitWindow(w models.TimeWindow, hasEarlier bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.mode.IsAllTime() {
		return // mode switched underneath the pan
	}
	c.mode.Window = w
	c.state.HasEarlierData = hasEarlier
}
