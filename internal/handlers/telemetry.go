package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"tankgraph/internal/service"
)

const (
	errStartInvalid = "invalid 'start_time'; use RFC3339 or YYYY-MM-DD"
	errEndInvalid   = "invalid 'end_time'; use RFC3339 or YYYY-MM-DD"
	errQueryFailed  = "failed to load telemetry"

	layoutDateTime = "2006-01-02 15:04:05"
	layoutDate     = "2006-01-02"
)

// isDateOnly reports whether the query string represents a date without time component.
func isDateOnly(s string) bool {
	return !strings.ContainsAny(s, "T ")
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// @Summary      Get tank-level telemetry
// @Description  Readings in chronological order. 'hours' (1–720) overrides start_time/end_time and means the last N hours. Date-only 'end_time' is treated as end-of-day inclusive.
// @Tags         telemetry
// @Produce      json
// @Param        start_time  query  string  false  "Start of range (RFC3339, 'YYYY-MM-DD HH:MM:SS', or 'YYYY-MM-DD')"  example(2025-08-01)
// @Param        end_time    query  string  false  "End of range, same formats. Date-only treated as end of day."       example(2025-08-31)
// @Param        hours       query  int     false  "Number of hours back from now (1–720)"
// @Param        limit       query  int     false  "Maximum number of data points (1–10000, default 1000)"
// @Success      200  {object}  models.TelemetryResponse
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /telemetry [get]
func (h *Handler) getTelemetry(c *gin.Context) {
	var params service.QueryParams

	if qs := c.Query("start_time"); qs != "" {
		t, err := parseQueryTime(qs)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": errStartInvalid})
			return
		}
		params.Start = t
	}
	if qs := c.Query("end_time"); qs != "" {
		t, err := parseQueryTime(qs)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": errEndInvalid})
			return
		}
		// If the user didn't include a time component, treat the end as
		// the end of that day.
		if isDateOnly(qs) {
			t = t.Add(24*time.Hour - time.Nanosecond).UTC()
		}
		params.End = t
	}
	if qs := c.Query("hours"); qs != "" {
		v, err := strconv.Atoi(qs)
		if err != nil || v < 1 || v > service.MaxHours {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("'hours' must be 1–%d", service.MaxHours)})
			return
		}
		params.Hours = v
	}
	if qs := c.Query("limit"); qs != "" {
		v, err := strconv.Atoi(qs)
		if err != nil || v < 1 || v > service.MaxLimit {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("'limit' must be 1–%d", service.MaxLimit)})
			return
		}
		params.Limit = v
	}
	if !params.Start.IsZero() && !params.End.IsZero() && params.Start.After(params.End) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "'start_time' must be <= 'end_time'"})
		return
	}

	resp, err := h.services.Telemetry.Query(c.Request.Context(), params)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errQueryFailed, "telemetry_query_failed", err,
			"start", params.Start, "end", params.End, "hours", params.Hours)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary      Get the latest reading
// @Tags         telemetry
// @Produce      json
// @Success      200  {object}  models.LatestReading
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /telemetry/latest [get]
func (h *Handler) getLatest(c *gin.Context) {
	latest, err := h.services.Telemetry.Latest(c.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrNoData) {
			c.JSON(http.StatusNotFound, gin.H{"error": service.ErrNoData.Error()})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to load latest reading", "telemetry_latest_failed", err)
		return
	}
	c.JSON(http.StatusOK, latest)
}

// @Summary      Seed sample telemetry
// @Description  Inserts sample readings for testing. No-op when data already exists.
// @Tags         telemetry
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /telemetry/seed [post]
func (h *Handler) seedTelemetry(c *gin.Context) {
	n, err := h.services.Telemetry.Seed(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to seed telemetry", "telemetry_seed_failed", err)
		return
	}
	if n == 0 {
		c.JSON(http.StatusOK, gin.H{"message": "database already contains data"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("added %d sample readings", n)})
}

// @Summary      Clear all telemetry
// @Tags         telemetry
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /telemetry/clear [delete]
func (h *Handler) clearTelemetry(c *gin.Context) {
	n, err := h.services.Telemetry.Clear(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to clear telemetry", "telemetry_clear_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("cleared %d readings", n)})
}

func parseQueryTime(s string) (time.Time, error) {
	// Try multiple accepted formats, normalizing to UTC.
	for _, layout := range []string{time.RFC3339, layoutDateTime, layoutDate} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time format %q", s)
}
