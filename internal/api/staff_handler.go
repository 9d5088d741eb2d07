package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/staff-directory-api/internal/models"
	"github.com/staff-directory-api/internal/service"
)

// StaffHandler handles roster endpoints
type StaffHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewStaffHandler creates a new StaffHandler
func NewStaffHandler(services *service.Services, log zerolog.Logger) *StaffHandler {
	return &StaffHandler{
		services: services,
		log:      log.With().Str("handler", "staff").Logger(),
	}
}

// ListStaff handles GET /v1/staff?q=...&department=...&availability=...&sortBy=...
func (h *StaffHandler) ListStaff(c *gin.Context) {
	var spec models.QuerySpec
	if err := c.ShouldBindQuery(&spec); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters"})
		return
	}

	records, err := h.services.Staff.Query(c.Request.Context(), spec)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"staff": records,
		"count": len(records),
	})
}

// GetStaff handles GET /v1/staff/:id
func (h *StaffHandler) GetStaff(c *gin.Context) {
	rec, err := h.services.Staff.GetStaff(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// CreateStaff handles POST /v1/staff
func (h *StaffHandler) CreateStaff(c *gin.Context) {
	var form models.StaffForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}

	rec, err := h.services.Staff.AddStaff(c.Request.Context(), form)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, rec)
}

// ImportDrafts handles POST /v1/staff/batch with already reviewed drafts
func (h *StaffHandler) ImportDrafts(c *gin.Context) {
	var req struct {
		Drafts []models.Draft `json:"drafts"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}

	result, err := h.services.Staff.ImportStaff(c.Request.Context(), req.Drafts)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// UpdateStaff handles PATCH /v1/staff/:id
func (h *StaffHandler) UpdateStaff(c *gin.Context) {
	var patch models.StaffPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}

	rec, err := h.services.Staff.EditStaff(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// DeleteStaff handles DELETE /v1/staff/:id
func (h *StaffHandler) DeleteStaff(c *gin.Context) {
	rec, err := h.services.Staff.DeleteStaff(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// MarkAbsent handles POST /v1/staff/:id/absence
func (h *StaffHandler) MarkAbsent(c *gin.Context) {
	var req models.AbsenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}

	rec, err := h.services.Staff.MarkAbsent(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// MarkAvailable handles DELETE /v1/staff/:id/absence
func (h *StaffHandler) MarkAvailable(c *gin.Context) {
	rec, err := h.services.Staff.MarkAvailable(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// GetStatistics handles GET /v1/statistics
func (h *StaffHandler) GetStatistics(c *gin.Context) {
	st, err := h.services.Staff.Statistics(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, st)
}
