package models

import "time"

// TelemetryPoint is one chart-ready sample. Immutable once mapped from the
// wire; the whole slice is replaced on the next successful fetch.
type TelemetryPoint struct {
	Timestamp Instant `json:"timestamp"`
	Level     float64 `json:"level"`
}

// FetchState is the chart's in-memory dataset plus fetch status. It is
// created empty, reset to loading on every attempt, and overwritten wholesale
// on success, never merged incrementally.
//
// Points are assumed sorted ascending by timestamp. The read API returns them
// in chronological order and they are not re-sorted here; if that upstream
// guarantee ever weakens this state would mis-render.
type FetchState struct {
	Points         []TelemetryPoint `json:"points"`
	Loading        bool             `json:"loading"`
	Err            string           `json:"error,omitempty"`
	LastUpdate     time.Time        `json:"last_update,omitempty"`
	HasEarlierData bool             `json:"has_earlier_data"`
}
