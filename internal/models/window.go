package models

import "time"

// TimeWindow is the visible range of the chart in all-time mode.
// Start is always strictly before End.
type TimeWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewWindowEndingAt returns a window of the given size whose right edge is end.
func NewWindowEndingAt(end time.Time, size time.Duration) TimeWindow {
	return TimeWindow{Start: end.Add(-size), End: end}
}

// Size returns End − Start. Preserved across pans; it only changes when the
// earliest-data probe re-anchors the window.
func (w TimeWindow) Size() time.Duration {
	return w.End.Sub(w.Start)
}

// Shift returns the window moved by d (negative d moves it earlier).
func (w TimeWindow) Shift(d time.Duration) TimeWindow {
	return TimeWindow{Start: w.Start.Add(d), End: w.End.Add(d)}
}

// Valid reports whether the window is well-formed.
func (w TimeWindow) Valid() bool {
	return !w.Start.IsZero() && !w.End.IsZero() && w.Start.Before(w.End)
}
