package dashboard

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"tankgraph/internal/logger"
	"tankgraph/internal/models"
)

// TelemetryReader is the consumed read interface of the telemetry API.
type TelemetryReader interface {
	Query(ctx context.Context, q Query) (models.TelemetryResponse, error)
}

const (
	// DefaultRefreshInterval is used when options leave it unset.
	DefaultRefreshInterval = 30 * time.Second
	// defaultAllTimeSpan is the initial window size when all-time mode is
	// entered without an explicit window.
	defaultAllTimeSpan = 30 * 24 * time.Hour
)

var errInvalidTimeRange = errors.New(`invalid time range: want "all" or a positive hour count`)

// ErrNoEarlierData is returned by Pan(earlier) once the window is pinned at
// the earliest recorded data.
var ErrNoEarlierData = errors.New("no earlier data available")

// Options configure a Controller the way the page configures the chart:
// TimeRange is "all" or a positive hour count; RefreshInterval <= 0 disables
// the periodic re-fetch.
type Options struct {
	TimeRange       string
	RefreshInterval time.Duration
}

// Controller owns the chart's fetch state: it resolves time ranges, fetches
// and normalizes telemetry, navigates the all-time window, and re-polls on an
// interval. State is overwritten wholesale per fetch; responses carry a
// sequence number and stale ones are discarded.
type Controller struct {
	reader TelemetryReader
	log    *logger.Logger

	mu           sync.Mutex
	mode         models.Mode
	state        models.FetchState
	refreshEvery time.Duration
	seq          uint64

	// scheduler lifecycle; owned by the controller, never process-global
	baseCtx     context.Context
	cancelSched context.CancelFunc
	schedDone   chan struct{}
}

// New builds a Controller. opts.TimeRange defaults to "all"; an unset
// RefreshInterval falls back to DefaultRefreshInterval (pass a negative value
// to disable polling).
func New(reader TelemetryReader, log *logger.Logger, opts Options) (*Controller, error) {
	mode, err := parseTimeRange(opts.TimeRange)
	if err != nil {
		return nil, err
	}

	interval := opts.RefreshInterval
	if interval == 0 {
		interval = DefaultRefreshInterval
	}

	return &Controller{
		reader:       reader,
		log:          log,
		mode:         mode,
		state:        models.FetchState{Loading: true, HasEarlierData: true},
		refreshEvery: interval,
	}, nil
}

// parseTimeRange maps the page-facing time range value onto a Mode.
func parseTimeRange(tr string) (models.Mode, error) {
	if tr == "" || tr == "all" {
		return models.AllTimeMode(models.NewWindowEndingAt(time.Now().UTC(), defaultAllTimeSpan)), nil
	}
	hours, err := strconv.Atoi(tr)
	if err != nil || hours <= 0 {
		return models.Mode{}, errInvalidTimeRange
	}
	return models.FixedHoursMode(hours), nil
}

// Start performs the initial fetch and starts the refresh scheduler. ctx
// bounds the controller's lifetime; Stop (or ctx cancellation) tears the
// scheduler down.
func (c *Controller) Start(ctx context.Context) {
	c.mu.Lock()
	c.baseCtx = ctx
	c.startSchedulerLocked()
	c.mu.Unlock()

	c.Refresh(ctx)
}

// Stop tears down the refresh scheduler and waits for it to exit.
func (c *Controller) Stop() {
	c.mu.Lock()
	cancel, done := c.cancelSched, c.schedDone
	c.cancelSched, c.schedDone = nil, nil
	c.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
}

// Mode returns the active display mode.
func (c *Controller) Mode() models.Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// SetTimeRange switches display mode ("all" or a positive hour count),
// resetting fetch state and restarting the scheduler, then fetches.
func (c *Controller) SetTimeRange(ctx context.Context, tr string) error {
	mode, err := parseTimeRange(tr)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.mode = mode
	c.state = models.FetchState{Loading: true, HasEarlierData: true}
	c.seq++ // invalidate any in-flight responses for the old mode
	c.startSchedulerLocked()
	c.mu.Unlock()

	c.Refresh(ctx)
	return nil
}

// SetRefreshInterval changes the polling interval; <= 0 disables polling.
// The scheduler is recreated so the new interval takes effect immediately.
func (c *Controller) SetRefreshInterval(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.refreshEvery = d
	c.startSchedulerLocked()
}

// nextSeq allocates a fetch sequence number and flips state to loading.
func (c *Controller) nextSeq() (uint64, models.Mode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	c.state.Loading = true
	c.state.Err = ""
	return c.seq, c.mode
}

// fail records a transport/parse failure. Prior points stay visible.
func (c *Controller) fail(seq uint64, msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.seq {
		return // a newer fetch owns the state now
	}
	c.state.Err = msg
	c.state.Loading = false
}
