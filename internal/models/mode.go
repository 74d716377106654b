package models

// ModeKind discriminates the two chart display modes.
type ModeKind string

const (
	ModeFixedHours ModeKind = "fixed_hours" // most recent N hours
	ModeAllTime    ModeKind = "all_time"    // explicit navigable window
)

// Mode is the active display mode. Exactly one variant is meaningful: Hours
// for fixed-hours mode, Window for all-time mode.
type Mode struct {
	Kind   ModeKind   `json:"kind"`
	Hours  int        `json:"hours,omitempty"`
	Window TimeWindow `json:"window,omitempty"`
}

// FixedHoursMode returns a mode showing the most recent n hours.
func FixedHoursMode(n int) Mode {
	return Mode{Kind: ModeFixedHours, Hours: n}
}

// AllTimeMode returns a mode showing the given window.
func AllTimeMode(w TimeWindow) Mode {
	return Mode{Kind: ModeAllTime, Window: w}
}

// IsAllTime reports whether window navigation applies.
func (m Mode) IsAllTime() bool {
	return m.Kind == ModeAllTime
}
