package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/JeanLimaa/minimal-agendefacil-backend/internal/cache"
	"github.com/JeanLimaa/minimal-agendefacil-backend/internal/httperr"
	"github.com/JeanLimaa/minimal-agendefacil-backend/internal/httpresp"
	"github.com/JeanLimaa/minimal-agendefacil-backend/internal/middleware"
	"github.com/JeanLimaa/minimal-agendefacil-backend/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type BlockHandler struct {
	create *appointment.CreateBlock
	delete *appointment.DeleteBlock
	list   *appointment.ListAppointments
	cache  *cache.Cache
}

func NewBlockHandler(
	create *appointment.CreateBlock,
	delete_ *appointment.DeleteBlock,
	list *appointment.ListAppointments,
	c *cache.Cache,
) *BlockHandler {
	return &BlockHandler{
		create: create,
		delete: delete_,
		list:   list,
		cache:  c,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBlockRequest struct {
	StartDate string `json:"start_date" binding:"required"` // YYYY-MM-DD
	StartTime string `json:"start_time" binding:"required"` // HH:mm
	EndDate   string `json:"end_date"`                      // padrão: start_date
	EndTime   string `json:"end_time" binding:"required"`
	Notes     string `json:"notes"`
}

// ======================================================
// CREATE
// ======================================================

func (h *BlockHandler) Create(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	var req CreateBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	start, err := parseDateTime(req.StartDate, req.StartTime)
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "Data ou hora inválida.")
		return
	}

	endDate := req.EndDate
	if endDate == "" {
		endDate = req.StartDate
	}

	end, err := parseDateTime(endDate, req.EndTime)
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "Data ou hora inválida.")
		return
	}

	block, err := h.create.Execute(c.Request.Context(), companyID, start, end, req.Notes)
	if err != nil {
		httperr.WriteBusiness(c, err)
		return
	}

	h.cache.InvalidateCompany(c.Request.Context(), companyID)
	httpresp.Created(c, block)
}

// ======================================================
// DELETE
// ======================================================

func (h *BlockHandler) Delete(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	id, ok := paramID(c)
	if !ok {
		return
	}

	block, err := h.delete.Execute(c.Request.Context(), id, companyID)
	if err != nil {
		httperr.WriteBusiness(c, err)
		return
	}

	h.cache.InvalidateCompany(c.Request.Context(), companyID)
	httpresp.OK(c, block)
}

// ======================================================
// LIST
// ======================================================

func (h *BlockHandler) List(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	blocks, err := h.list.ListBlocksByCompany(c.Request.Context(), companyID)
	if err != nil {
		httperr.WriteBusiness(c, err)
		return
	}

	httpresp.List(c, blocks)
}
