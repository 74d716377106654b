package service

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"tankgraph/internal/models"
	"tankgraph/internal/repository"
)

// Query bounds mirroring the public API contract.
const (
	DefaultLimit = 1000
	MaxLimit     = 10000
	MaxHours     = 720 // 30 days
)

const (
	// A flat "now" point is appended when the newest stored sample is at
	// least this old, so the chart draws the change-only level out to the
	// present.
	nowPointMinAge = time.Minute
	// Slack when deciding whether a requested range still includes "now".
	includesNowSlack = 10 * time.Second
	// Latest reading is reported stale beyond this age.
	staleAfter = 10 * time.Minute
)

// ErrNoData signals a successful lookup that found an empty table.
var ErrNoData = errors.New("no telemetry data available")

type TelemetryService struct {
	readings repository.Readings
}

func NewTelemetryService(readings repository.Readings) *TelemetryService {
	return &TelemetryService{readings: readings}
}

// Query returns stored readings for the requested range in chronological
// order. Hours, when positive, overrides Start/End and means "the last N
// hours from now".
func (s *TelemetryService) Query(ctx context.Context, p QueryParams) (models.TelemetryResponse, error) {
	now := time.Now().UTC()

	limit := p.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	start, end := p.Start, p.End
	if p.Hours > 0 {
		hours := p.Hours
		if hours > MaxHours {
			hours = MaxHours
		}
		end = now
		start = now.Add(-time.Duration(hours) * time.Hour)
	}

	readings, err := s.readings.List(ctx, start, end, limit)
	if err != nil {
		return models.TelemetryResponse{}, err
	}

	// Repo returns newest first; the chart wants chronological order.
	data := make([]models.TelemetryDataPoint, 0, len(readings)+1)
	for i := len(readings) - 1; i >= 0; i-- {
		data = append(data, models.TelemetryDataPoint{
			Timestamp: readings[i].Timestamp.UTC().Format(time.RFC3339),
			TankLevel: readings[i].TankLevel,
		})
	}

	if len(readings) > 0 {
		last := readings[0] // newest
		includesNow := end.IsZero() || end.After(now.Add(-includesNowSlack))
		if includesNow && now.Sub(last.Timestamp) > nowPointMinAge {
			data = append(data, models.TelemetryDataPoint{
				Timestamp: now.Format(time.RFC3339),
				TankLevel: last.TankLevel,
			})
		}
	}

	resp := models.TelemetryResponse{
		Data:        data,
		TotalPoints: len(data),
	}
	if !start.IsZero() {
		st := start
		resp.StartTime = &st
	}
	if !end.IsZero() {
		et := end
		resp.EndTime = &et
	}
	return resp, nil
}

// Latest returns the most recent reading with a freshness status.
func (s *TelemetryService) Latest(ctx context.Context) (models.LatestReading, error) {
	rd, err := s.readings.Latest(ctx)
	if err != nil {
		return models.LatestReading{}, err
	}
	if rd == nil {
		return models.LatestReading{}, ErrNoData
	}

	status := models.StatusActive
	if time.Since(rd.Timestamp) > staleAfter {
		status = models.StatusStale
	}
	return models.LatestReading{
		Timestamp: rd.Timestamp,
		TankLevel: rd.TankLevel,
		Status:    status,
	}, nil
}

// Seed inserts sample readings for testing, only when the table is empty.
// Returns the number of readings added.
func (s *TelemetryService) Seed(ctx context.Context) (int, error) {
	latest, err := s.readings.Latest(ctx)
	if err != nil {
		return 0, err
	}
	if latest != nil {
		return 0, nil // already has data
	}

	const (
		seedCount   = 12
		seedSpacing = 5 * time.Minute
		baseLevel   = 45.0
	)

	now := time.Now().UTC()
	for i := 0; i < seedCount; i++ {
		level := baseLevel + (rand.Float64()*4 - 2)
		level = clampLevel(level)

		rd := models.TelemetryReading{
			Timestamp: now.Add(-time.Hour + time.Duration(i)*seedSpacing),
			TankLevel: level,
		}
		if err := s.readings.Add(ctx, rd); err != nil {
			return i, err
		}
	}
	return seedCount, nil
}

// Clear removes all readings and reports how many were deleted.
func (s *TelemetryService) Clear(ctx context.Context) (int64, error) {
	return s.readings.Clear(ctx)
}

func clampLevel(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
