package dashboard

import (
	"github.com/dustin/go-humanize"

	"tankgraph/internal/models"
)

// Display states the page renders, in precedence order.
const (
	DisplayError   = "error"   // retryable transport/parse failure
	DisplayLoading = "loading" // first fetch still in flight
	DisplayEmpty   = "empty"   // successful fetch, no data anywhere
	DisplayChart   = "chart"
)

// Snapshot is a point-in-time copy of the controller state, shaped for the
// page: display state, the dataset, the current-value readout and, in
// all-time mode, the window the pan controls operate on.
type Snapshot struct {
	Mode         models.Mode       `json:"mode"`
	State        models.FetchState `json:"state"`
	Display      string            `json:"display"`
	CurrentLevel float64           `json:"current_level,omitempty"`
	UpdatedAgo   string            `json:"updated_ago,omitempty"`
}

// Snapshot returns a copy of the current state. Points are copied so callers
// can hold the slice across later fetches.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	state := c.state
	state.Points = append([]models.TelemetryPoint(nil), c.state.Points...)

	snap := Snapshot{
		Mode:    c.mode,
		State:   state,
		Display: displayFor(state),
	}
	if n := len(state.Points); n > 0 {
		snap.CurrentLevel = state.Points[n-1].Level
	}
	if !state.LastUpdate.IsZero() {
		snap.UpdatedAgo = humanize.Time(state.LastUpdate)
	}
	return snap
}

func displayFor(s models.FetchState) string {
	switch {
	case s.Err != "":
		return DisplayError
	case s.Loading && len(s.Points) == 0:
		return DisplayLoading
	case len(s.Points) == 0:
		return DisplayEmpty
	default:
		return DisplayChart
	}
}
