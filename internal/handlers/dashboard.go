package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tankgraph/internal/dashboard"
	"tankgraph/internal/logger"
)

// DashboardHandler exposes the chart controller to the page: state snapshots,
// pan/reset/retry controls and a websocket push of live snapshots.
type DashboardHandler struct {
	ctrl *dashboard.Controller
	log  *logger.Logger
}

func NewDashboardHandler(ctrl *dashboard.Controller, log *logger.Logger) *DashboardHandler {
	return &DashboardHandler{ctrl: ctrl, log: log}
}

// InitRoutes builds the dashboard router.
func (h *DashboardHandler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", h.health)

	dash := router.Group("/dashboard")
	{
		dash.GET("/state", h.getState)
		dash.POST("/pan", h.pan)
		dash.POST("/reset", h.reset)
		dash.POST("/retry", h.retry)
		dash.PUT("/range", h.setRange)
		dash.PUT("/refresh", h.setRefresh)
	}

	router.GET("/ws", h.wsConnect)

	return router
}

func (h *DashboardHandler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *DashboardHandler) getState(c *gin.Context) {
	c.JSON(http.StatusOK, h.ctrl.Snapshot())
}

type panRequest struct {
	Direction dashboard.Direction `json:"direction" binding:"required"` // earlier | later
}

func (h *DashboardHandler) pan(c *gin.Context) {
	var req panRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body: " + err.Error()})
		return
	}
	if !req.Direction.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": `direction must be "earlier" or "later"`})
		return
	}

	if err := h.ctrl.Pan(c.Request.Context(), req.Direction); err != nil {
		if errors.Is(err, dashboard.ErrNoEarlierData) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		h.log.Errorw("dashboard_pan_failed", "err", err, "direction", req.Direction)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "pan failed"})
		return
	}
	c.JSON(http.StatusOK, h.ctrl.Snapshot())
}

func (h *DashboardHandler) reset(c *gin.Context) {
	h.ctrl.ResetToNow(c.Request.Context())
	c.JSON(http.StatusOK, h.ctrl.Snapshot())
}

// retry is the manual retry control of the error display state.
func (h *DashboardHandler) retry(c *gin.Context) {
	h.ctrl.Refresh(c.Request.Context())
	c.JSON(http.StatusOK, h.ctrl.Snapshot())
}

type rangeRequest struct {
	TimeRange string `json:"time_range" binding:"required"` // "all" or hour count
}

func (h *DashboardHandler) setRange(c *gin.Context) {
	var req rangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body: " + err.Error()})
		return
	}
	if err := h.ctrl.SetTimeRange(c.Request.Context(), req.TimeRange); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.ctrl.Snapshot())
}

type refreshRequest struct {
	IntervalSec int `json:"interval_s"` // <= 0 disables polling
}

func (h *DashboardHandler) setRefresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body: " + err.Error()})
		return
	}
	h.ctrl.SetRefreshInterval(time.Duration(req.IntervalSec) * time.Second)
	c.JSON(http.StatusOK, gin.H{"status": "ok", "interval_s": req.IntervalSec})
}
