package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/staff-directory-api/internal/config"
	"github.com/staff-directory-api/internal/metrics"
	"github.com/staff-directory-api/internal/models"
	"github.com/staff-directory-api/internal/service"
)

// NewRouter creates and configures the Gin router. gatherer may be nil, in
// which case /metrics is not served.
func NewRouter(services *service.Services, cfg *config.Config, gatherer prometheus.Gatherer, log zerolog.Logger) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware())

	// Handlers
	staffHandler := NewStaffHandler(services, log)
	importHandler := NewImportHandler(services, cfg, log)
	exportHandler := NewExportHandler(services, log)

	// Health check
	router.GET("/health", healthCheck)
	if gatherer != nil {
		router.GET("/metrics", gin.WrapH(metrics.Handler(gatherer)))
	}

	// API v1
	v1 := router.Group("/v1")
	{
		// Roster endpoints
		staff := v1.Group("/staff")
		{
			staff.GET("", staffHandler.ListStaff)
			staff.POST("", staffHandler.CreateStaff)
			staff.POST("/batch", staffHandler.ImportDrafts)
			staff.GET("/:id", staffHandler.GetStaff)
			staff.PATCH("/:id", staffHandler.UpdateStaff)
			staff.DELETE("/:id", staffHandler.DeleteStaff)
			staff.POST("/:id/absence", staffHandler.MarkAbsent)
			staff.DELETE("/:id/absence", staffHandler.MarkAvailable)
		}

		v1.GET("/statistics", staffHandler.GetStatistics)
		v1.GET("/meta/labels", labels)

		// Import endpoints
		imports := v1.Group("/imports")
		{
			imports.POST("", importHandler.CreateImport)
			imports.GET("/:session_id", importHandler.GetImport)
			imports.POST("/:session_id/commit", importHandler.CommitImport)
			imports.DELETE("/:session_id", importHandler.DiscardImport)
		}

		// Export endpoints
		v1.GET("/exports", exportHandler.StreamExport)
	}

	return router
}

// healthCheck returns the health status
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"service":   "staff-directory-api",
	})
}

type labelEntry struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// labels returns the display label of every enumerated value
func labels(c *gin.Context) {
	departments := make([]labelEntry, len(models.KnownDepartments))
	for i, d := range models.KnownDepartments {
		departments[i] = labelEntry{string(d), d.Label()}
	}
	durations := make([]labelEntry, len(models.AbsenceDurations))
	for i, d := range models.AbsenceDurations {
		durations[i] = labelEntry{string(d), d.Label()}
	}
	statuses := make([]labelEntry, len(models.AvailabilityStatuses))
	for i, s := range models.AvailabilityStatuses {
		statuses[i] = labelEntry{string(s), s.Label()}
	}
	formats := make([]labelEntry, len(models.ArtifactFormats))
	for i, f := range models.ArtifactFormats {
		formats[i] = labelEntry{string(f), f.Label()}
	}
	kinds := make([]labelEntry, len(models.NotificationKinds))
	for i, k := range models.NotificationKinds {
		kinds[i] = labelEntry{string(k), k.Label()}
	}

	c.JSON(http.StatusOK, gin.H{
		"departments":       departments,
		"absenceDurations":  durations,
		"statuses":          statuses,
		"artifactFormats":   formats,
		"notificationKinds": kinds,
	})
}

// respondError maps service errors onto HTTP responses
func respondError(c *gin.Context, log zerolog.Logger, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "validation failed", "fields": verr.Fields})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrConflict), errors.Is(err, service.ErrSessionClosed):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusRequestTimeout, gin.H{"error": "request cancelled, no changes were made"})
	default:
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// recoveryMiddleware handles panics
func recoveryMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().Interface("error", err).Msg("Panic recovered")
				c.JSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// loggingMiddleware logs requests
func loggingMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		event := log.Info()
		if statusCode >= 400 {
			event = log.Warn()
		}
		if statusCode >= 500 {
			event = log.Error()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", statusCode).
			Dur("duration", duration).
			Str("client_ip", c.ClientIP()).
			Msg("Request completed")
	}
}

// corsMiddleware handles CORS
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
