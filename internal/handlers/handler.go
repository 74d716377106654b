package handlers

import (
	"tankgraph/internal/logger"
	"tankgraph/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires the telemetry API HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger

	// seed/clear are test conveniences, disabled in production config
	seedEnabled bool
}

// NewHandler constructs the API handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger, seedEnabled bool) *Handler {
	return &Handler{services: services, log: log, seedEnabled: seedEnabled}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", h.health)

	telemetry := router.Group("/telemetry")
	{
		telemetry.GET("", h.getTelemetry)
		telemetry.GET("/latest", h.getLatest)
		if h.seedEnabled {
			telemetry.POST("/seed", h.seedTelemetry)
			telemetry.DELETE("/clear", h.clearTelemetry)
		}
	}

	return router
}

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}
