package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/JeanLimaa/minimal-agendefacil-backend/internal/domain/appointment"
	"github.com/JeanLimaa/minimal-agendefacil-backend/internal/httperr"
	"github.com/JeanLimaa/minimal-agendefacil-backend/internal/httpresp"
	"github.com/JeanLimaa/minimal-agendefacil-backend/internal/middleware"
	"github.com/JeanLimaa/minimal-agendefacil-backend/internal/models"
)

type ServiceHandler struct {
	db *gorm.DB
}

func NewServiceHandler(db *gorm.DB) *ServiceHandler {
	return &ServiceHandler{db: db}
}

// ======================================================
// REQUESTS
// ======================================================

type ServiceRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	DurationMin int     `json:"duration_min" binding:"required,gt=0"`
	Price       float64 `json:"price" binding:"gte=0"`
	IsActive    *bool   `json:"is_active"`
}

// ======================================================
// HELPERS
// ======================================================

func (h *ServiceHandler) load(c *gin.Context) (*models.Service, bool) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	id, ok := paramID(c)
	if !ok {
		return nil, false
	}

	var service models.Service
	if err := h.db.
		Where("id = ? AND company_id = ? AND name <> ?", id, companyID, domain.BlockServiceName).
		First(&service).Error; err != nil {

		httperr.NotFound(c, "service_not_found", "Serviço não encontrado.")
		return nil, false
	}
	return &service, true
}

// ======================================================
// LIST / GET
// ======================================================

func (h *ServiceHandler) List(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	var services []models.Service
	if err := h.db.
		Where("company_id = ? AND name <> ?", companyID, domain.BlockServiceName).
		Order("name ASC").
		Find(&services).Error; err != nil {

		httperr.Internal(c, "failed_to_list_services", "Erro ao listar serviços.")
		return
	}

	httpresp.List(c, services)
}

func (h *ServiceHandler) Get(c *gin.Context) {
	service, ok := h.load(c)
	if !ok {
		return
	}
	httpresp.OK(c, service)
}

// ======================================================
// CREATE / UPDATE
// ======================================================

func (h *ServiceHandler) Create(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if req.Name == domain.BlockServiceName {
		httperr.BadRequest(c, "reserved_service_name", "Nome de serviço reservado.")
		return
	}

	var count int64
	h.db.Model(&models.Service{}).
		Where("company_id = ? AND name = ?", companyID, req.Name).
		Count(&count)
	if count > 0 {
		httperr.Conflict(c, "service_already_exists", "Já existe um serviço com este nome.")
		return
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	service := models.Service{
		CompanyID:   companyID,
		Name:        req.Name,
		Description: req.Description,
		DurationMin: req.DurationMin,
		Price:       req.Price,
		IsActive:    active,
	}

	if err := h.db.Create(&service).Error; err != nil {
		httperr.Internal(c, "failed_to_create_service", "Erro ao criar serviço.")
		return
	}

	httpresp.Created(c, service)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	service, ok := h.load(c)
	if !ok {
		return
	}

	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if req.Name == domain.BlockServiceName {
		httperr.BadRequest(c, "reserved_service_name", "Nome de serviço reservado.")
		return
	}

	var count int64
	h.db.Model(&models.Service{}).
		Where("company_id = ? AND name = ? AND id <> ?", companyID, req.Name, service.ID).
		Count(&count)
	if count > 0 {
		httperr.Conflict(c, "service_already_exists", "Já existe um serviço com este nome.")
		return
	}

	service.Name = req.Name
	service.Description = req.Description
	service.DurationMin = req.DurationMin
	service.Price = req.Price
	if req.IsActive != nil {
		service.IsActive = *req.IsActive
	}

	if err := h.db.Save(service).Error; err != nil {
		httperr.Internal(c, "failed_to_update_service", "Erro ao atualizar serviço.")
		return
	}

	httpresp.OK(c, service)
}

// ======================================================
// DELETE
// ======================================================

// Delete remove o serviço; se já foi usado em algum agendamento, apenas
// desativa para preservar o histórico.
func (h *ServiceHandler) Delete(c *gin.Context) {
	service, ok := h.load(c)
	if !ok {
		return
	}

	var count int64
	h.db.Model(&models.AppointmentService{}).
		Where("service_id = ?", service.ID).
		Count(&count)

	if count > 0 {
		service.IsActive = false
		if err := h.db.Save(service).Error; err != nil {
			httperr.Internal(c, "failed_to_delete_service", "Erro ao excluir serviço.")
			return
		}
		httpresp.OK(c, gin.H{"deactivated": true})
		return
	}

	if err := h.db.Delete(service).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_service", "Erro ao excluir serviço.")
		return
	}

	httpresp.OK(c, gin.H{"deleted": true})
}
