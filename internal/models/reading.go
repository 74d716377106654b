package models

import "time"

// TelemetryReading is a stored tank-level sample.
type TelemetryReading struct {
	ID        int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`        // UTC
	TankLevel float64   `json:"urine_tank_level"` // percent, 0–100
}

// TelemetryDataPoint is one point of the read API response. Timestamp stays a
// string on the wire; consumers parse it with ParseInstant.
type TelemetryDataPoint struct {
	Timestamp string  `json:"timestamp"`
	TankLevel float64 `json:"urine_tank_level"`
}

// TelemetryResponse is the body of GET /telemetry.
type TelemetryResponse struct {
	Data        []TelemetryDataPoint `json:"data"`
	StartTime   *time.Time           `json:"start_time,omitempty"`
	EndTime     *time.Time           `json:"end_time,omitempty"`
	TotalPoints int                  `json:"total_points"`
}

// Reading freshness statuses reported by /telemetry/latest.
const (
	StatusActive = "active"
	StatusStale  = "stale"
	StatusLive   = "live"
)

// LatestReading is the body of GET /telemetry/latest.
type LatestReading struct {
	Timestamp time.Time `json:"timestamp"`
	TankLevel float64   `json:"urine_tank_level"`
	Status    string    `json:"status"` // active | stale | live
}
