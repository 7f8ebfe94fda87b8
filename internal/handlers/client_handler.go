package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/JeanLimaa/minimal-agendefacil-backend/internal/domain/appointment"
	"github.com/JeanLimaa/minimal-agendefacil-backend/internal/httperr"
	"github.com/JeanLimaa/minimal-agendefacil-backend/internal/httpresp"
	"github.com/JeanLimaa/minimal-agendefacil-backend/internal/middleware"
	"github.com/JeanLimaa/minimal-agendefacil-backend/internal/models"
)

type ClientHandler struct {
	db *gorm.DB
}

func NewClientHandler(db *gorm.DB) *ClientHandler {
	return &ClientHandler{db: db}
}

// ======================================================
// REQUESTS
// ======================================================

type ClientRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone" binding:"required"`
	Email string `json:"email"`
}

// ======================================================
// HELPERS
// ======================================================

func (h *ClientHandler) load(c *gin.Context) (*models.Client, bool) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	id, ok := paramID(c)
	if !ok {
		return nil, false
	}

	var client models.Client
	if err := h.db.
		Where("id = ? AND company_id = ?", id, companyID).
		First(&client).Error; err != nil {

		httperr.NotFound(c, "client_not_found", "Cliente não encontrado.")
		return nil, false
	}
	return &client, true
}

// ======================================================
// LIST / GET
// ======================================================

func (h *ClientHandler) List(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	// o cliente sentinela de bloqueio não é um cliente de verdade
	q := h.db.Where("company_id = ? AND name <> ?", companyID, domain.BlockClientName)

	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(name) LIKE ? OR phone LIKE ? OR LOWER(email) LIKE ?",
			like, like, like,
		)
	}

	var clients []models.Client
	if err := q.Order("created_at DESC").Find(&clients).Error; err != nil {
		httperr.Internal(c, "failed_to_list_clients", "Erro ao listar clientes.")
		return
	}

	httpresp.List(c, clients)
}

func (h *ClientHandler) Get(c *gin.Context) {
	client, ok := h.load(c)
	if !ok {
		return
	}
	httpresp.OK(c, client)
}

// ======================================================
// CREATE / UPDATE
// ======================================================

func (h *ClientHandler) Create(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	var req ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if req.Name == domain.BlockClientName {
		httperr.BadRequest(c, "reserved_client_name", "Nome de cliente reservado.")
		return
	}

	var count int64
	h.db.Model(&models.Client{}).
		Where("company_id = ? AND phone = ?", companyID, req.Phone).
		Count(&count)
	if count > 0 {
		httperr.Conflict(c, "client_phone_taken", "Já existe um cliente com este telefone.")
		return
	}

	client := models.Client{
		CompanyID: companyID,
		Name:      req.Name,
		Phone:     req.Phone,
		Email:     req.Email,
	}

	if err := h.db.Create(&client).Error; err != nil {
		httperr.Internal(c, "failed_to_create_client", "Erro ao criar cliente.")
		return
	}

	httpresp.Created(c, client)
}

func (h *ClientHandler) Update(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	client, ok := h.load(c)
	if !ok {
		return
	}

	var req ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if req.Name == domain.BlockClientName {
		httperr.BadRequest(c, "reserved_client_name", "Nome de cliente reservado.")
		return
	}

	var count int64
	h.db.Model(&models.Client{}).
		Where("company_id = ? AND phone = ? AND id <> ?", companyID, req.Phone, client.ID).
		Count(&count)
	if count > 0 {
		httperr.Conflict(c, "client_phone_taken", "Já existe um cliente com este telefone.")
		return
	}

	client.Name = req.Name
	client.Phone = req.Phone
	client.Email = req.Email

	if err := h.db.Save(client).Error; err != nil {
		httperr.Internal(c, "failed_to_update_client", "Erro ao atualizar cliente.")
		return
	}

	httpresp.OK(c, client)
}

// ======================================================
// DELETE
// ======================================================

func (h *ClientHandler) Delete(c *gin.Context) {
	client, ok := h.load(c)
	if !ok {
		return
	}

	var count int64
	h.db.Model(&models.Appointment{}).
		Where("client_id = ?", client.ID).
		Count(&count)
	if count > 0 {
		httperr.Conflict(
			c,
			"client_has_appointments",
			"Cliente possui agendamentos e não pode ser excluído.",
		)
		return
	}

	if err := h.db.Delete(client).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_client", "Erro ao excluir cliente.")
		return
	}

	httpresp.OK(c, gin.H{"deleted": true})
}

// ======================================================
// BLOCK / UNBLOCK
// ======================================================

func (h *ClientHandler) ToggleBlock(c *gin.Context) {
	client, ok := h.load(c)
	if !ok {
		return
	}

	client.IsBlocked = !client.IsBlocked

	if err := h.db.Save(client).Error; err != nil {
		httperr.Internal(c, "failed_to_update_client", "Erro ao atualizar cliente.")
		return
	}

	httpresp.OK(c, client)
}
