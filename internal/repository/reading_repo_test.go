package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"tankgraph/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func ctx(t *testing.T) context.Context {
	t.Helper()
	c, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	t.Cleanup(cancel)
	return c
}

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func readingRows(readings ...models.TelemetryReading) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "timestamp", "tank_level"})
	for _, r := range readings {
		rows.AddRow(r.ID, r.Timestamp, r.TankLevel)
	}
	return rows
}

func TestList_NoFilters(t *testing.T) {
	t.Parallel()

	db, mock := newMock(t)
	repo := NewReadingSQLite(db)

	newer := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	older := newer.Add(-time.Hour)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT id, timestamp, tank_level FROM telemetry_readings ORDER BY timestamp DESC LIMIT ?",
	)).
		WithArgs(1000).
		WillReturnRows(readingRows(
			models.TelemetryReading{ID: 2, Timestamp: newer, TankLevel: 46},
			models.TelemetryReading{ID: 1, Timestamp: older, TankLevel: 45},
		))

	got, err := repo.List(ctx(t), time.Time{}, time.Time{}, 1000)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("want 2 readings, got %d", len(got))
	}
	// newest first, timestamps normalized to UTC
	if got[0].ID != 2 || !got[0].Timestamp.Equal(newer) {
		t.Errorf("unexpected first row: %+v", got[0])
	}
	if got[0].Timestamp.Location() != time.UTC {
		t.Errorf("timestamp must be UTC, got %v", got[0].Timestamp.Location())
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestList_RangeFilters(t *testing.T) {
	t.Parallel()

	db, mock := newMock(t)
	repo := NewReadingSQLite(db)

	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(24 * time.Hour)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT id, timestamp, tank_level FROM telemetry_readings WHERE timestamp >= ? AND timestamp <= ? ORDER BY timestamp DESC LIMIT ?",
	)).
		WithArgs("2025-01-01 00:00:00", "2025-01-02 00:00:00", 10).
		WillReturnRows(readingRows())

	got, err := repo.List(ctx(t), start, end, 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("want empty result, got %d", len(got))
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestList_DBError(t *testing.T) {
	t.Parallel()

	db, mock := newMock(t)
	repo := NewReadingSQLite(db)

	mock.ExpectQuery("SELECT id, timestamp, tank_level FROM telemetry_readings").
		WillReturnError(errors.New("down"))

	_, err := repo.List(ctx(t), time.Time{}, time.Time{}, 100)
	if err == nil || !strings.Contains(err.Error(), "down") {
		t.Fatalf("expected error, got %v", err)
	}
}

func TestLatest_EmptyTable(t *testing.T) {
	t.Parallel()

	db, mock := newMock(t)
	repo := NewReadingSQLite(db)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT id, timestamp, tank_level FROM telemetry_readings ORDER BY timestamp DESC LIMIT 1",
	)).
		WillReturnRows(readingRows())

	got, err := repo.Latest(ctx(t))
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if got != nil {
		t.Fatalf("want nil for empty table, got %+v", got)
	}
}

func TestLatest_ReturnsNewest(t *testing.T) {
	t.Parallel()

	db, mock := newMock(t)
	repo := NewReadingSQLite(db)

	ts := time.Date(2025, 2, 3, 4, 5, 6, 0, time.UTC)
	mock.ExpectQuery("SELECT id, timestamp, tank_level FROM telemetry_readings").
		WillReturnRows(readingRows(models.TelemetryReading{ID: 9, Timestamp: ts, TankLevel: 47.5}))

	got, err := repo.Latest(ctx(t))
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if got == nil || got.ID != 9 || got.TankLevel != 47.5 || !got.Timestamp.Equal(ts) {
		t.Fatalf("unexpected reading: %+v", got)
	}
}

func TestAdd_FormatsTimestamp(t *testing.T) {
	t.Parallel()

	db, mock := newMock(t)
	repo := NewReadingSQLite(db)

	ts := time.Date(2025, 2, 3, 4, 5, 6, 0, time.UTC)
	mock.ExpectExec(regexp.QuoteMeta(
		"INSERT INTO telemetry_readings (timestamp, tank_level)",
	)).
		WithArgs("2025-02-03 04:05:06", 51.25).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Add(ctx(t), models.TelemetryReading{Timestamp: ts, TankLevel: 51.25})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestAdd_ZeroTimestampDefaultsToNow(t *testing.T) {
	t.Parallel()

	db, mock := newMock(t)
	repo := NewReadingSQLite(db)

	mock.ExpectExec("INSERT INTO telemetry_readings").
		WithArgs(sqlmock.AnyArg(), 33.0).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Add(ctx(t), models.TelemetryReading{TankLevel: 33.0}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestClear_ReportsDeletedCount(t *testing.T) {
	t.Parallel()

	db, mock := newMock(t)
	repo := NewReadingSQLite(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM telemetry_readings")).
		WillReturnResult(sqlmock.NewResult(0, 7))

	n, err := repo.Clear(ctx(t))
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if n != 7 {
		t.Fatalf("deleted count: want 7, got %d", n)
	}
}
