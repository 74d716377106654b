package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"tankgraph/internal/models"
)

type ReadingSQLite struct {
	db *sql.DB
}

func NewReadingSQLite(db *sql.DB) *ReadingSQLite { return &ReadingSQLite{db: db} }

// timestampLayout is how SQLite stores the timestamp column.
const timestampLayout = "2006-01-02 15:04:05"

const (
	selectReadingCols = "SELECT id, timestamp, tank_level FROM telemetry_readings"

	insertReadingSQL = `
		INSERT INTO telemetry_readings (timestamp, tank_level)
		VALUES (?, ?)
	`
)

// List returns readings filtered by [start, end] (inclusive), newest first,
// capped at limit. Callers wanting chronological order reverse the slice.
func (r *ReadingSQLite) List(ctx context.Context, start, end time.Time, limit int) ([]models.TelemetryReading, error) {
	var (
		conds []string
		args  []any
	)

	// Bounds are bound in the stored text layout so comparisons stay lexical.
	if !start.IsZero() {
		conds = append(conds, "timestamp >= ?")
		args = append(args, start.UTC().Format(timestampLayout))
	}
	if !end.IsZero() {
		conds = append(conds, "timestamp <= ?")
		args = append(args, end.UTC().Format(timestampLayout))
	}

	q := selectReadingCols
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY timestamp DESC LIMIT ?"
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.TelemetryReading, 0, 64)
	for rows.Next() {
		var rd models.TelemetryReading
		if err := rows.Scan(&rd.ID, &rd.Timestamp, &rd.TankLevel); err != nil {
			return nil, err
		}
		rd.Timestamp = rd.Timestamp.UTC()
		out = append(out, rd)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Latest returns the newest reading, or nil when the table is empty.
func (r *ReadingSQLite) Latest(ctx context.Context) (*models.TelemetryReading, error) {
	row := r.db.QueryRowContext(ctx, selectReadingCols+" ORDER BY timestamp DESC LIMIT 1")

	var rd models.TelemetryReading
	if err := row.Scan(&rd.ID, &rd.Timestamp, &rd.TankLevel); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	rd.Timestamp = rd.Timestamp.UTC()
	return &rd, nil
}

// Add inserts a reading. A zero Timestamp is set to now.
func (r *ReadingSQLite) Add(ctx context.Context, rd models.TelemetryReading) error {
	ts := rd.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	} else {
		ts = ts.UTC()
	}

	_, err := r.db.ExecContext(ctx, insertReadingSQL,
		ts.Format(timestampLayout),
		rd.TankLevel,
	)
	return err
}

// Clear deletes all readings and reports how many were removed.
func (r *ReadingSQLite) Clear(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM telemetry_readings")
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
