package models

import (
	"testing"
	"time"
)

func TestTimeWindow_SizeShiftValid(t *testing.T) {
	t.Parallel()

	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	w := TimeWindow{Start: start, End: start.Add(30 * 24 * time.Hour)}

	if got := w.Size(); got != 30*24*time.Hour {
		t.Fatalf("Size: want 720h, got %v", got)
	}
	if !w.Valid() {
		t.Fatalf("expected window to be valid")
	}

	shifted := w.Shift(-15 * 24 * time.Hour)
	if shifted.Size() != w.Size() {
		t.Errorf("Shift must preserve size: want %v, got %v", w.Size(), shifted.Size())
	}
	if !shifted.Start.Equal(start.Add(-15 * 24 * time.Hour)) {
		t.Errorf("unexpected shifted start: %v", shifted.Start)
	}

	// original untouched
	if !w.Start.Equal(start) {
		t.Errorf("Shift must not mutate the receiver")
	}
}

func TestTimeWindow_Invalid(t *testing.T) {
	t.Parallel()

	now := time.Now()
	cases := []struct {
		name string
		w    TimeWindow
	}{
		{"zero", TimeWindow{}},
		{"zero start", TimeWindow{End: now}},
		{"inverted", TimeWindow{Start: now, End: now.Add(-time.Hour)}},
		{"degenerate", TimeWindow{Start: now, End: now}},
	}
	for _, tc := range cases {
		if tc.w.Valid() {
			t.Errorf("%s: expected invalid", tc.name)
		}
	}
}

func TestNewWindowEndingAt(t *testing.T) {
	t.Parallel()

	end := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	w := NewWindowEndingAt(end, 24*time.Hour)

	if !w.End.Equal(end) {
		t.Errorf("End: want %v, got %v", end, w.End)
	}
	if w.Size() != 24*time.Hour {
		t.Errorf("Size: want 24h, got %v", w.Size())
	}
}
