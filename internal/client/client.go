package client

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"tankgraph/internal/dashboard"
	"tankgraph/internal/models"
)

const (
	requestTimeout = 15 * time.Second
	retryCount     = 2
	retryWait      = 1 * time.Second
)

// Client reads telemetry from the tankgraph API over HTTP. It satisfies
// dashboard.TelemetryReader.
type Client struct {
	http    *resty.Client
	baseURL string
}

func New(baseURL string) *Client {
	c := resty.New()
	c.SetTimeout(requestTimeout)
	c.SetRetryCount(retryCount)
	c.SetRetryWaitTime(retryWait)

	return &Client{http: c, baseURL: baseURL}
}

// Query issues GET /telemetry with the descriptor's range parameters.
func (c *Client) Query(ctx context.Context, q dashboard.Query) (models.TelemetryResponse, error) {
	params := map[string]string{
		"limit": strconv.Itoa(q.Limit),
	}
	if q.Hours > 0 {
		params["hours"] = strconv.Itoa(q.Hours)
	} else {
		if !q.Start.IsZero() {
			params["start_time"] = q.Start.UTC().Format(time.RFC3339)
		}
		if !q.End.IsZero() {
			params["end_time"] = q.End.UTC().Format(time.RFC3339)
		}
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetQueryParams(params).
		Get(c.baseURL + "/telemetry")
	if err != nil {
		return models.TelemetryResponse{}, fmt.Errorf("fetch telemetry: %w", err)
	}
	if resp.StatusCode() != 200 {
		return models.TelemetryResponse{}, fmt.Errorf("telemetry API returned status %d", resp.StatusCode())
	}

	var out models.TelemetryResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return models.TelemetryResponse{}, fmt.Errorf("parse telemetry response: %w", err)
	}
	return out, nil
}
