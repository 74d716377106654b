package repository

import (
	"context"
	"database/sql"
	"time"

	"tankgraph/internal/models"
)

// Readings is the persistence surface for tank-level samples. Writes exist
// only for the seed/clear maintenance endpoints; live ingestion is a separate
// service and not part of this repository.
type Readings interface {
	// List returns readings within [start, end], newest first, capped at
	// limit. A zero start or end leaves that side unbounded.
	List(ctx context.Context, start, end time.Time, limit int) ([]models.TelemetryReading, error)
	// Latest returns the most recent reading, or nil when the table is empty.
	Latest(ctx context.Context) (*models.TelemetryReading, error)
	Add(ctx context.Context, r models.TelemetryReading) error
	Clear(ctx context.Context) (int64, error)
}

type Repository struct {
	Readings Readings
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Readings: NewReadingSQLite(db),
	}
}
