package dashboard

import (
	"context"
	"time"

	"tankgraph/internal/models"
)

// probeFloor is the hard lower bound of the earliest-data probe. No recorded
// data predates it.
var probeFloor = time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)

// Refresh fetches the active range and overwrites the chart dataset. On an
// empty all-time result it probes for the earliest recorded data, re-anchors
// the window there preserving its size, and re-fetches instead of committing
// an empty dataset. Transport and parse failures set the error state and
// leave prior points untouched.
func (c *Controller) Refresh(ctx context.Context) {
	c.refresh(ctx, false)
}

func (c *Controller) refresh(ctx context.Context, reanchored bool) {
	seq, mode := c.nextSeq()

	resp, err := c.reader.Query(ctx, resolveQuery(mode))
	if err != nil {
		c.fail(seq, "unable to load telemetry data: "+err.Error())
		return
	}

	points, err := mapPoints(resp.Data)
	if err != nil {
		c.fail(seq, "malformed telemetry response: "+err.Error())
		return
	}

	if len(points) == 0 && mode.IsAllTime() && !reanchored {
		anchor, found, err := c.probeEarliest(ctx)
		if err != nil {
			c.fail(seq, "unable to load telemetry data: "+err.Error())
			return
		}
		if found {
			size := mode.Window.Size()
			window := models.TimeWindow{Start: anchor, End: anchor.Add(size)}

			c.mu.Lock()
			stale := seq != c.seq
			if !stale {
				c.mode.Window = window
			}
			c.mu.Unlock()

			if !stale {
				c.log.Infow("window re-anchored to earliest data",
					"earliest", anchor, "size", size)
				// The corrected window is fetched instead of committing
				// the empty dataset.
				c.refresh(ctx, true)
			}
			return
		}
		// Probe found nothing either: the empty dataset stands.
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.seq {
		return // stale response, a newer fetch owns the state
	}
	c.state.Points = points
	c.state.Loading = false
	c.state.Err = ""
	c.state.LastUpdate = time.Now().UTC()
}

// mapPoints converts the wire points in order. Any unparsable timestamp fails
// the whole batch.
func mapPoints(data []models.TelemetryDataPoint) ([]models.TelemetryPoint, error) {
	points := make([]models.TelemetryPoint, 0, len(data))
	for _, d := range data {
		ts, err := models.ParseInstant(d.Timestamp)
		if err != nil {
			return nil, err
		}
		points = append(points, models.TelemetryPoint{Timestamp: ts, Level: d.TankLevel})
	}
	return points, nil
}

// probeEarliest issues a wide low-limit query solely to discover the earliest
// timestamp with any recorded data.
func (c *Controller) probeEarliest(ctx context.Context) (time.Time, bool, error) {
	resp, err := c.reader.Query(ctx, Query{
		Start: probeFloor,
		End:   time.Now().UTC(),
		Limit: probeLimit,
	})
	if err != nil {
		return time.Time{}, false, err
	}
	if len(resp.Data) == 0 {
		return time.Time{}, false, nil
	}

	ts, err := models.ParseInstant(resp.Data[0].Timestamp)
	if err != nil {
		return time.Time{}, false, err
	}
	return ts.Time, true, nil
}
