package service

import (
	"context"
	"time"

	"tankgraph/internal/models"
	"tankgraph/internal/repository"
)

// QueryParams filters a telemetry query. Hours, when positive, wins over
// Start/End and derives the range from now.
type QueryParams struct {
	Start time.Time
	End   time.Time
	Hours int
	Limit int
}

// Telemetry exposes read access to stored tank-level samples plus the
// seed/clear maintenance operations.
type Telemetry interface {
	Query(ctx context.Context, p QueryParams) (models.TelemetryResponse, error)
	Latest(ctx context.Context) (models.LatestReading, error)
	Seed(ctx context.Context) (int, error)
	Clear(ctx context.Context) (int64, error)
}

// Service aggregates all sub-services.
type Service struct {
	Telemetry
}

func NewService(repos *repository.Repository) *Service {
	return &Service{
		Telemetry: NewTelemetryService(repos.Readings),
	}
}
