package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/staff-directory-api/internal/config"
	"github.com/staff-directory-api/internal/models"
	"github.com/staff-directory-api/internal/service"
)

// formatByExtension guesses the artifact format when the client sends none
var formatByExtension = map[string]models.ArtifactFormat{
	".csv":    models.FormatDelimitedText,
	".tsv":    models.FormatDelimitedText,
	".txt":    models.FormatDelimitedText,
	".xlsx":   models.FormatSpreadsheet,
	".json":   models.FormatDocument,
	".ndjson": models.FormatDocument,
	".png":    models.FormatCapturedImage,
	".jpg":    models.FormatCapturedImage,
	".jpeg":   models.FormatCapturedImage,
}

// ImportHandler handles import endpoints
type ImportHandler struct {
	services *service.Services
	cfg      *config.Config
	log      zerolog.Logger
}

// NewImportHandler creates a new ImportHandler
func NewImportHandler(services *service.Services, cfg *config.Config, log zerolog.Logger) *ImportHandler {
	return &ImportHandler{
		services: services,
		cfg:      cfg,
		log:      log.With().Str("handler", "import").Logger(),
	}
}

// CreateImport handles POST /v1/imports
// Accepts a multipart upload with a "file" part and an optional "format" field
func (h *ImportHandler) CreateImport(c *gin.Context) {
	ctx := c.Request.Context()

	// Handle file upload
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file upload is required"})
		return
	}
	defer file.Close()

	// Validate file size
	if header.Size > h.cfg.Import.MaxUploadSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{
			"error": fmt.Sprintf("file too large, max size is %d MB", h.cfg.Import.MaxUploadSize/(1024*1024)),
		})
		return
	}

	format := models.ArtifactFormat(strings.TrimSpace(c.PostForm("format")))
	if format == "" {
		format = formatByExtension[strings.ToLower(filepath.Ext(header.Filename))]
	}
	if format == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "format parameter is required for this file type"})
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, h.cfg.Import.MaxUploadSize+1))
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to read upload")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read file"})
		return
	}
	if int64(len(data)) > h.cfg.Import.MaxUploadSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{
			"error": fmt.Sprintf("file too large, max size is %d MB", h.cfg.Import.MaxUploadSize/(1024*1024)),
		})
		return
	}

	session, err := h.services.Import.Extract(ctx, models.Artifact{
		Format:   format,
		Filename: header.Filename,
		Data:     data,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	h.log.Info().
		Str("session_id", session.ID).
		Str("format", string(format)).
		Str("file", header.Filename).
		Int64("size_bytes", header.Size).
		Msg("Import session created")

	c.JSON(http.StatusCreated, session)
}

// GetImport handles GET /v1/imports/:session_id
func (h *ImportHandler) GetImport(c *gin.Context) {
	session, err := h.services.Import.GetSession(c.Request.Context(), c.Param("session_id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// CommitImport handles POST /v1/imports/:session_id/commit
// An empty body commits every draft as extracted
func (h *ImportHandler) CommitImport(c *gin.Context) {
	var req models.CommitRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}

	result, err := h.services.Import.Commit(c.Request.Context(), c.Param("session_id"), req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// DiscardImport handles DELETE /v1/imports/:session_id
func (h *ImportHandler) DiscardImport(c *gin.Context) {
	session, err := h.services.Import.Discard(c.Request.Context(), c.Param("session_id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, session)
}
