package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/staff-directory-api/internal/models"
	"github.com/staff-directory-api/internal/service"
)

// ExportHandler handles export endpoints
type ExportHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewExportHandler creates a new ExportHandler
func NewExportHandler(services *service.Services, log zerolog.Logger) *ExportHandler {
	return &ExportHandler{
		services: services,
		log:      log.With().Str("handler", "export").Logger(),
	}
}

// StreamExport handles GET /v1/exports?format=...
// Accepts the same query parameters as GET /v1/staff and streams the
// matching records directly to the response
func (h *ExportHandler) StreamExport(c *gin.Context) {
	ctx := c.Request.Context()

	var spec models.QuerySpec
	if err := c.ShouldBindQuery(&spec); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters"})
		return
	}

	format := c.Query("format")
	if format == "" {
		format = service.FormatCSV
	}

	h.log.Info().
		Str("format", format).
		Str("search", spec.SearchTerm).
		Msg("Starting streaming export")

	if err := h.services.Export.Stream(ctx, c.Writer, spec, format); err != nil {
		if c.Writer.Written() {
			// Can't return error JSON after streaming has started
			h.log.Error().Err(err).Msg("Export failed")
			return
		}
		respondError(c, h.log, err)
	}
}
