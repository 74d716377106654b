package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"tankgraph/internal/logger"
	"tankgraph/internal/models"
	"tankgraph/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubTelemetry struct {
	queryResp  models.TelemetryResponse
	queryErr   error
	lastParams service.QueryParams

	latestResp models.LatestReading
	latestErr  error

	seedN  int
	clearN int64
}

func (s *stubTelemetry) Query(_ context.Context, p service.QueryParams) (models.TelemetryResponse, error) {
	s.lastParams = p
	return s.queryResp, s.queryErr
}

func (s *stubTelemetry) Latest(context.Context) (models.LatestReading, error) {
	return s.latestResp, s.latestErr
}

func (s *stubTelemetry) Seed(context.Context) (int, error)    { return s.seedN, nil }
func (s *stubTelemetry) Clear(context.Context) (int64, error) { return s.clearN, nil }

func newTestRouter(stub *stubTelemetry, seedEnabled bool) *gin.Engine {
	h := NewHandler(&service.Service{Telemetry: stub}, logger.Get(logger.ErrorLevel), seedEnabled)
	return h.InitRoutes()
}

func doRequest(r *gin.Engine, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestGetTelemetry_PassesParams(t *testing.T) {
	stub := &stubTelemetry{queryResp: models.TelemetryResponse{
		Data: []models.TelemetryDataPoint{
			{Timestamp: "2025-01-01T00:00:00Z", TankLevel: 44},
		},
		TotalPoints: 1,
	}}
	r := newTestRouter(stub, true)

	w := doRequest(r, http.MethodGet, "/telemetry?hours=24&limit=500")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}

	if stub.lastParams.Hours != 24 || stub.lastParams.Limit != 500 {
		t.Errorf("params not forwarded: %+v", stub.lastParams)
	}

	var resp models.TelemetryResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.TotalPoints != 1 || len(resp.Data) != 1 {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestGetTelemetry_TimeRangeParams(t *testing.T) {
	stub := &stubTelemetry{}
	r := newTestRouter(stub, true)

	w := doRequest(r, http.MethodGet, "/telemetry?start_time=2025-01-01&end_time=2025-01-31")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}

	wantStart := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	if !stub.lastParams.Start.Equal(wantStart) {
		t.Errorf("start: want %v, got %v", wantStart, stub.lastParams.Start)
	}
	// date-only end treated as end-of-day inclusive
	if stub.lastParams.End.Day() != 31 || stub.lastParams.End.Hour() != 23 {
		t.Errorf("end must be end-of-day: got %v", stub.lastParams.End)
	}
}

func TestGetTelemetry_Validation(t *testing.T) {
	cases := []struct {
		name   string
		target string
	}{
		{"bad hours", "/telemetry?hours=0"},
		{"hours too large", "/telemetry?hours=100000"},
		{"bad limit", "/telemetry?limit=-5"},
		{"bad start", "/telemetry?start_time=notatime"},
		{"inverted range", "/telemetry?start_time=2025-02-01&end_time=2025-01-01"},
	}

	r := newTestRouter(&stubTelemetry{}, true)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doRequest(r, http.MethodGet, tc.target)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status: want 400, got %d (%s)", w.Code, w.Body.String())
			}
		})
	}
}

func TestGetLatest_NoData404(t *testing.T) {
	stub := &stubTelemetry{latestErr: service.ErrNoData}
	r := newTestRouter(stub, true)

	w := doRequest(r, http.MethodGet, "/telemetry/latest")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status: want 404, got %d", w.Code)
	}
}

func TestGetLatest_OK(t *testing.T) {
	stub := &stubTelemetry{latestResp: models.LatestReading{
		Timestamp: time.Now().UTC(),
		TankLevel: 61.5,
		Status:    models.StatusActive,
	}}
	r := newTestRouter(stub, true)

	w := doRequest(r, http.MethodGet, "/telemetry/latest")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var got models.LatestReading
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.TankLevel != 61.5 || got.Status != models.StatusActive {
		t.Errorf("unexpected body: %+v", got)
	}
}

func TestSeedRoutes_GatedByConfig(t *testing.T) {
	// enabled: seed responds
	r := newTestRouter(&stubTelemetry{seedN: 12}, true)
	if w := doRequest(r, http.MethodPost, "/telemetry/seed"); w.Code != http.StatusOK {
		t.Fatalf("seed enabled: want 200, got %d", w.Code)
	}

	// disabled: routes are absent entirely
	r = newTestRouter(&stubTelemetry{}, false)
	if w := doRequest(r, http.MethodPost, "/telemetry/seed"); w.Code != http.StatusNotFound {
		t.Fatalf("seed disabled: want 404, got %d", w.Code)
	}
	if w := doRequest(r, http.MethodDelete, "/telemetry/clear"); w.Code != http.StatusNotFound {
		t.Fatalf("clear disabled: want 404, got %d", w.Code)
	}
}

func TestHealth(t *testing.T) {
	r := newTestRouter(&stubTelemetry{}, false)
	w := doRequest(r, http.MethodGet, "/health")
	if w.Code != http.StatusOK {
		t.Fatalf("status: want 200, got %d", w.Code)
	}
}
