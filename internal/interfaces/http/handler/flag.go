package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	complianceapp "github.com/telops/backend/internal/application/compliance"
)

// FlagHandler handles anomaly flag endpoints
type FlagHandler struct {
	BaseHandler
	flagService *complianceapp.FlagService
	scanService *complianceapp.ScanService
}

// NewFlagHandler creates a new FlagHandler
func NewFlagHandler(flagService *complianceapp.FlagService, scanService *complianceapp.ScanService) *FlagHandler {
	return &FlagHandler{flagService: flagService, scanService: scanService}
}

// Get returns a single flag
// GET /api/v1/flags/:id
func (h *FlagHandler) Get(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	flag, err := h.flagService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, flag)
}

// ListBySale returns every flag raised against a sale
// GET /api/v1/flags/sale/:saleId
func (h *FlagHandler) ListBySale(c *gin.Context) {
	saleID, err := uuid.Parse(c.Param("saleId"))
	if err != nil {
		h.BadRequest(c, "Invalid sale id parameter")
		return
	}

	flags, err := h.flagService.ListBySale(c.Request.Context(), saleID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, flags)
}

// List returns flags with filtering and pagination
// GET /api/v1/flags
func (h *FlagHandler) List(c *gin.Context) {
	var filter complianceapp.FlagListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	flags, total, err := h.flagService.List(c.Request.Context(), filter)
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
	h.SuccessWithMeta(c, flags, total, page, pageSize)
}

// Scan runs the anomaly rules over an advisor's recent sales
// POST /api/v1/flags/scan
func (h *FlagHandler) Scan(c *gin.Context) {
	var req complianceapp.ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.scanService.Scan(c.Request.Context(), req.AdvisorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Review marks an open flag as reviewed by the authenticated controller
// POST /api/v1/flags/:id/review
func (h *FlagHandler) Review(c *gin.Context) {
	actor, ok := h.getActor(c)
	if !ok {
		return
	}

	id, ok := h.parseID(c)
	if !ok {
		return
	}

	flag, err := h.flagService.Review(c.Request.Context(), id, actor.ID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, flag)
}

// Resolve closes a reviewed flag
// POST /api/v1/flags/:id/resolve
func (h *FlagHandler) Resolve(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	flag, err := h.flagService.Resolve(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, flag)
}
