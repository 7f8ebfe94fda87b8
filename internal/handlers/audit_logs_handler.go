package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/JeanLimaa/minimal-agendefacil-backend/internal/httperr"
	"github.com/JeanLimaa/minimal-agendefacil-backend/internal/httpresp"
	"github.com/JeanLimaa/minimal-agendefacil-backend/internal/middleware"
	"github.com/JeanLimaa/minimal-agendefacil-backend/internal/models"
)

type AuditLogsHandler struct {
	db *gorm.DB
}

func NewAuditLogsHandler(db *gorm.DB) *AuditLogsHandler {
	return &AuditLogsHandler{db: db}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	limit := 100
	if raw := c.Query("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 && v <= 500 {
			limit = v
		}
	}

	var logs []models.AuditLog
	if err := h.db.
		Where("company_id = ?", companyID).
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error; err != nil {

		httperr.Internal(c, "failed_to_list_audit_logs", "Erro ao listar registros de auditoria.")
		return
	}

	httpresp.List(c, logs)
}
