package handler

import (
	"github.com/gin-gonic/gin"

	reportingapp "github.com/telops/backend/internal/application/reporting"
)

// ReportHandler handles activity report endpoints
type ReportHandler struct {
	BaseHandler
	reportService *reportingapp.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *reportingapp.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Create files a report authored by the authenticated user
// POST /api/v1/reports
func (h *ReportHandler) Create(c *gin.Context) {
	actor, ok := h.getActor(c)
	if !ok {
		return
	}

	var req reportingapp.CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	report, err := h.reportService.Create(c.Request.Context(), actor.ID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, report)
}

// Get returns a single report
// GET /api/v1/reports/:id
func (h *ReportHandler) Get(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	report, err := h.reportService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, report)
}

// List returns reports with filtering and pagination
// GET /api/v1/reports
func (h *ReportHandler) List(c *gin.Context) {
	var filter reportingapp.ReportListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	reports, total, err := h.reportService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	page, pageSize := filter.Page, filter.PageSize
	if page == 0 {
		page = 1
	}
	if pageSize == 0 {
		pageSize = 20
	}
	h.SuccessWithMeta(c, reports, total, page, pageSize)
}

// Update revises a report; only the author may edit
// PUT /api/v1/reports/:id
func (h *ReportHandler) Update(c *gin.Context) {
	actor, ok := h.getActor(c)
	if !ok {
		return
	}

	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req reportingapp.UpdateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	report, err := h.reportService.Update(c.Request.Context(), id, actor.ID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, report)
}

// Delete removes a report; only the author may delete
// DELETE /api/v1/reports/:id
func (h *ReportHandler) Delete(c *gin.Context) {
	actor, ok := h.getActor(c)
	if !ok {
		return
	}

	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.reportService.Delete(c.Request.Context(), id, actor.ID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
