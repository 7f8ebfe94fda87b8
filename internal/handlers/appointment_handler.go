package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/JeanLimaa/minimal-agendefacil-backend/internal/cache"
	domain "github.com/JeanLimaa/minimal-agendefacil-backend/internal/domain/appointment"
	"github.com/JeanLimaa/minimal-agendefacil-backend/internal/httperr"
	"github.com/JeanLimaa/minimal-agendefacil-backend/internal/httpresp"
	"github.com/JeanLimaa/minimal-agendefacil-backend/internal/middleware"
	"github.com/JeanLimaa/minimal-agendefacil-backend/internal/models"
	"github.com/JeanLimaa/minimal-agendefacil-backend/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	db       *gorm.DB
	create   *appointment.CreateAppointment
	update   *appointment.UpdateAppointment
	complete *appointment.CompleteAppointment
	cancel   *appointment.CancelAppointment
	list     *appointment.ListAppointments
	cache    *cache.Cache
}

func NewAppointmentHandler(
	db *gorm.DB,
	create *appointment.CreateAppointment,
	update *appointment.UpdateAppointment,
	complete *appointment.CompleteAppointment,
	cancel *appointment.CancelAppointment,
	list *appointment.ListAppointments,
	c *cache.Cache,
) *AppointmentHandler {
	return &AppointmentHandler{
		db:       db,
		create:   create,
		update:   update,
		complete: complete,
		cancel:   cancel,
		list:     list,
		cache:    c,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type AdminAppointmentRequest struct {
	ClientID   uint    `json:"client_id" binding:"required"`
	Date       string  `json:"date" binding:"required"` // YYYY-MM-DD
	Time       string  `json:"time" binding:"required"` // HH:mm
	ServiceIDs []uint  `json:"service_ids" binding:"required"`
	Discount   float64 `json:"discount"`
}

// ======================================================
// HELPERS
// ======================================================

func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return 0, false
	}
	return uint(id), true
}

// ownClient garante que o cliente do pedido pertence à empresa do token.
func (h *AppointmentHandler) ownClient(c *gin.Context, clientID, companyID uint) bool {
	var client models.Client
	if err := h.db.
		Where("id = ? AND company_id = ?", clientID, companyID).
		First(&client).Error; err != nil {

		httperr.NotFound(c, "client_not_found", "Cliente não encontrado.")
		return false
	}
	return true
}

// ======================================================
// CREATE (ADMIN)
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)
	role := c.MustGet(middleware.ContextUserRole).(string)

	var req AdminAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	start, err := parseDateTime(req.Date, req.Time)
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "Data ou hora inválida.")
		return
	}

	if !h.ownClient(c, req.ClientID, companyID) {
		return
	}

	ap, err := h.create.Execute(
		c.Request.Context(),
		domain.AdminBooking{
			ClientID:   req.ClientID,
			Date:       start,
			ServiceIDs: req.ServiceIDs,
			Discount:   req.Discount,
		},
		role,
	)
	if err != nil {
		httperr.WriteBusiness(c, err)
		return
	}

	h.cache.InvalidateCompany(c.Request.Context(), ap.CompanyID)
	httpresp.Created(c, ap)
}

// ======================================================
// UPDATE (ADMIN)
// ======================================================

func (h *AppointmentHandler) Update(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)
	role := c.MustGet(middleware.ContextUserRole).(string)

	id, ok := paramID(c)
	if !ok {
		return
	}

	var req AdminAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	start, err := parseDateTime(req.Date, req.Time)
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "Data ou hora inválida.")
		return
	}

	var existing models.Appointment
	if err := h.db.
		Where("id = ? AND company_id = ?", id, companyID).
		First(&existing).Error; err != nil {

		httperr.NotFound(c, "appointment_not_found", "Agendamento não encontrado.")
		return
	}

	ap, err := h.update.Execute(
		c.Request.Context(),
		id,
		domain.AdminBooking{
			ClientID:   existing.ClientID,
			Date:       start,
			ServiceIDs: req.ServiceIDs,
			Discount:   req.Discount,
		},
		role,
	)
	if err != nil {
		httperr.WriteBusiness(c, err)
		return
	}

	h.cache.InvalidateCompany(c.Request.Context(), ap.CompanyID)
	httpresp.OK(c, ap)
}

// ======================================================
// STATUS TRANSITIONS
// ======================================================

func (h *AppointmentHandler) Complete(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	id, ok := paramID(c)
	if !ok {
		return
	}

	ap, err := h.complete.Execute(c.Request.Context(), id, companyID)
	if err != nil {
		httperr.WriteBusiness(c, err)
		return
	}

	h.cache.InvalidateCompany(c.Request.Context(), companyID)
	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	id, ok := paramID(c)
	if !ok {
		return
	}

	ap, err := h.cancel.Execute(c.Request.Context(), id, companyID)
	if err != nil {
		httperr.WriteBusiness(c, err)
		return
	}

	h.cache.InvalidateCompany(c.Request.Context(), companyID)
	httpresp.OK(c, ap)
}

// ======================================================
// LISTS
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	items, err := h.list.ListByCompany(c.Request.Context(), companyID)
	if err != nil {
		httperr.WriteBusiness(c, err)
		return
	}

	httpresp.List(c, items)
}

func (h *AppointmentHandler) ListPending(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	all, err := h.list.ListPending(c.Request.Context())
	if err != nil {
		httperr.WriteBusiness(c, err)
		return
	}

	pending := make([]models.Appointment, 0, len(all))
	for i := range all {
		if all[i].CompanyID == companyID {
			pending = append(pending, all[i])
		}
	}

	httpresp.List(c, pending)
}

func (h *AppointmentHandler) ListByClient(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	clientID, err := strconv.ParseUint(c.Param("clientId"), 10, 64)
	if err != nil || clientID == 0 {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	items, err := h.list.ListByClient(c.Request.Context(), uint(clientID), companyID)
	if err != nil {
		httperr.WriteBusiness(c, err)
		return
	}

	httpresp.List(c, items)
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	id, ok := paramID(c)
	if !ok {
		return
	}

	ap, err := h.list.FindByID(c.Request.Context(), id)
	if err != nil {
		httperr.WriteBusiness(c, err)
		return
	}

	if ap.CompanyID != companyID {
		httperr.Unauthorized(c, "unauthorized", "Acesso não autorizado. Este agendamento não pertence à empresa.")
		return
	}

	httpresp.OK(c, ap)
}
