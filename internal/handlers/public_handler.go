package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/JeanLimaa/minimal-agendefacil-backend/internal/cache"
	domain "github.com/JeanLimaa/minimal-agendefacil-backend/internal/domain/appointment"
	"github.com/JeanLimaa/minimal-agendefacil-backend/internal/httperr"
	"github.com/JeanLimaa/minimal-agendefacil-backend/internal/httpresp"
	"github.com/JeanLimaa/minimal-agendefacil-backend/internal/models"
	"github.com/JeanLimaa/minimal-agendefacil-backend/internal/usecase/appointment"
	"github.com/JeanLimaa/minimal-agendefacil-backend/internal/validators"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	db           *gorm.DB
	create       *appointment.CreateAppointment
	availability *appointment.GetAvailability
	cache        *cache.Cache
}

func NewPublicHandler(
	db *gorm.DB,
	create *appointment.CreateAppointment,
	availability *appointment.GetAvailability,
	c *cache.Cache,
) *PublicHandler {
	return &PublicHandler{
		db:           db,
		create:       create,
		availability: availability,
		cache:        c,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type PublicCreateAppointmentRequest struct {
	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
	ClientEmail string `json:"client_email"`
	ServiceIDs  []uint `json:"service_ids" binding:"required"`
	Date        string `json:"date" binding:"required"` // YYYY-MM-DD
	Time        string `json:"time" binding:"required"` // HH:mm
}

////////////////////////////////////////////////////////
// HELPERS
////////////////////////////////////////////////////////

func (h *PublicHandler) companyByLink(c *gin.Context) (*models.Company, bool) {
	link := c.Param("link")

	var company models.Company
	if err := h.db.Where("link = ?", link).First(&company).Error; err != nil {
		httperr.NotFound(c, "company_not_found", "Empresa não encontrada.")
		return nil, false
	}
	return &company, true
}

func parseServiceIDs(raw string) ([]uint, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	ids := make([]uint, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseUint(strings.TrimSpace(p), 10, 64)
		if err != nil || id == 0 {
			return nil, err
		}
		ids = append(ids, uint(id))
	}
	return ids, nil
}

////////////////////////////////////////////////////////
// COMPANY PAGE
////////////////////////////////////////////////////////

func (h *PublicHandler) GetCompany(c *gin.Context) {
	company, ok := h.companyByLink(c)
	if !ok {
		return
	}

	var address models.CompanyAddress
	h.db.Where("company_id = ?", company.ID).First(&address)

	var workingHours []models.CompanyWorkingHour
	h.db.Where("company_id = ?", company.ID).
		Order("day_of_week ASC").
		Find(&workingHours)

	var services []models.Service
	h.db.Where("company_id = ? AND is_active = true", company.ID).
		Order("name ASC").
		Find(&services)

	c.JSON(http.StatusOK, gin.H{
		"company":       company,
		"address":       address,
		"working_hours": workingHours,
		"services":      services,
	})
}

func (h *PublicHandler) ListServices(c *gin.Context) {
	company, ok := h.companyByLink(c)
	if !ok {
		return
	}

	query := strings.TrimSpace(strings.ToLower(c.Query("query")))

	q := h.db.Where("company_id = ? AND is_active = true", company.ID)
	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var services []models.Service
	if err := q.Order("name ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Erro ao listar serviços.")
		return
	}

	httpresp.List(c, services)
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *PublicHandler) Availability(c *gin.Context) {
	company, ok := h.companyByLink(c)
	if !ok {
		return
	}

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Data obrigatória.")
		return
	}

	date, err := parseDate(dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	serviceIDs, err := parseServiceIDs(c.Query("service_ids"))
	if err != nil {
		httperr.BadRequest(c, "invalid_service_ids", "Serviços inválidos.")
		return
	}

	times, err := h.availability.Execute(c.Request.Context(), company.ID, date, serviceIDs)
	if err != nil {
		httperr.WriteBusiness(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":            dateStr,
		"available_times": times,
	})
}

////////////////////////////////////////////////////////
// CREATE APPOINTMENT (CLIENT)
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateAppointment(c *gin.Context) {
	company, ok := h.companyByLink(c)
	if !ok {
		return
	}

	var req PublicCreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if req.ClientEmail != "" && !validators.IsEmailDomainValid(req.ClientEmail) {
		httperr.BadRequest(c, "invalid_email_domain", "O domínio do e-mail informado não parece ser válido.")
		return
	}

	start, err := parseDateTime(req.Date, req.Time)
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "Data ou hora inválida.")
		return
	}

	// cliente bloqueado não agenda pela página pública
	var existing models.Client
	if err := h.db.
		Where("company_id = ? AND phone = ?", company.ID, req.ClientPhone).
		First(&existing).Error; err == nil && existing.IsBlocked {

		httperr.Unauthorized(c, "client_blocked", "Este cliente está bloqueado para novos agendamentos.")
		return
	}

	ap, err := h.create.Execute(
		c.Request.Context(),
		domain.ClientBooking{
			CompanyID:   company.ID,
			ClientName:  req.ClientName,
			ClientPhone: req.ClientPhone,
			ClientEmail: req.ClientEmail,
			Date:        start,
			ServiceIDs:  req.ServiceIDs,
		},
		domain.RoleClient,
	)
	if err != nil {
		httperr.WriteBusiness(c, err)
		return
	}

	h.cache.InvalidateCompany(c.Request.Context(), company.ID)
	httpresp.Created(c, ap)
}
