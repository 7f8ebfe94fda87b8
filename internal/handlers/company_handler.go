package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/JeanLimaa/minimal-agendefacil-backend/internal/httperr"
	"github.com/JeanLimaa/minimal-agendefacil-backend/internal/httpresp"
	"github.com/JeanLimaa/minimal-agendefacil-backend/internal/middleware"
	"github.com/JeanLimaa/minimal-agendefacil-backend/internal/models"
	"github.com/JeanLimaa/minimal-agendefacil-backend/internal/timeutil"
)

type CompanyHandler struct {
	db *gorm.DB
}

func NewCompanyHandler(db *gorm.DB) *CompanyHandler {
	return &CompanyHandler{db: db}
}

// ======================================================
// REQUESTS
// ======================================================

type CompanyProfileRequest struct {
	Name        string `json:"name" binding:"required"`
	Phone       string `json:"phone"`
	Description string `json:"description"`

	IntervalBetweenAppointments *int `json:"interval_between_appointments"`
}

type CompanyAddressRequest struct {
	ZipCode      string `json:"zip_code"`
	Street       string `json:"street"`
	Number       string `json:"number"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
	Country      string `json:"country"`
}

type WorkingHourRequest struct {
	DayOfWeek int    `json:"day_of_week"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}

// ======================================================
// INFO
// ======================================================

func (h *CompanyHandler) Info(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	var company models.Company
	if err := h.db.First(&company, companyID).Error; err != nil {
		httperr.NotFound(c, "company_not_found", "Empresa não encontrada.")
		return
	}

	var address models.CompanyAddress
	h.db.Where("company_id = ?", companyID).First(&address)

	var workingHours []models.CompanyWorkingHour
	h.db.Where("company_id = ?", companyID).
		Order("day_of_week ASC").
		Find(&workingHours)

	c.JSON(http.StatusOK, gin.H{
		"company":       company,
		"address":       address,
		"working_hours": workingHours,
	})
}

// ======================================================
// PROFILE
// ======================================================

func (h *CompanyHandler) UpdateProfile(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	var req CompanyProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	var company models.Company
	if err := h.db.First(&company, companyID).Error; err != nil {
		httperr.NotFound(c, "company_not_found", "Empresa não encontrada.")
		return
	}

	company.Name = req.Name
	company.Phone = req.Phone
	company.Description = req.Description

	if req.IntervalBetweenAppointments != nil {
		if *req.IntervalBetweenAppointments <= 0 {
			httperr.BadRequest(c, "invalid_interval", "Intervalo entre atendimentos deve ser positivo.")
			return
		}
		company.IntervalBetweenAppointments = *req.IntervalBetweenAppointments
	}

	if err := h.db.Save(&company).Error; err != nil {
		httperr.Internal(c, "failed_to_update_company", "Erro ao atualizar empresa.")
		return
	}

	httpresp.OK(c, company)
}

// ======================================================
// ADDRESS (UPSERT)
// ======================================================

func (h *CompanyHandler) UpdateAddress(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	var req CompanyAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	var address models.CompanyAddress
	err := h.db.Where("company_id = ?", companyID).First(&address).Error
	if err != nil && err != gorm.ErrRecordNotFound {
		httperr.Internal(c, "failed_to_update_address", "Erro ao atualizar endereço.")
		return
	}

	address.CompanyID = companyID
	address.ZipCode = req.ZipCode
	address.Street = req.Street
	address.Number = req.Number
	address.Neighborhood = req.Neighborhood
	address.City = req.City
	address.State = req.State
	address.Country = req.Country

	if err := h.db.Save(&address).Error; err != nil {
		httperr.Internal(c, "failed_to_update_address", "Erro ao atualizar endereço.")
		return
	}

	httpresp.OK(c, address)
}

// ======================================================
// WORKING HOURS (REPLACE)
// ======================================================

// UpdateWorkingHours substitui a grade de expediente: valida cada dia,
// remove os dias ausentes do payload e faz upsert dos demais, tudo na
// mesma transação.
func (h *CompanyHandler) UpdateWorkingHours(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	var req []WorkingHourRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	seen := make(map[int]struct{}, len(req))
	for _, wh := range req {
		if err := timeutil.ValidateDayOfWeek(wh.DayOfWeek); err != nil {
			httperr.WriteBusiness(c, err)
			return
		}
		if err := timeutil.ValidateTimeRange(wh.StartTime, wh.EndTime); err != nil {
			httperr.WriteBusiness(c, err)
			return
		}
		if _, dup := seen[wh.DayOfWeek]; dup {
			httperr.BadRequest(c, "duplicate_day_of_week", "Dia da semana repetido na grade.")
			return
		}
		seen[wh.DayOfWeek] = struct{}{}
	}

	days := make([]int, 0, len(req))
	for day := range seen {
		days = append(days, day)
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		q := tx.Where("company_id = ?", companyID)
		if len(days) > 0 {
			q = q.Where("day_of_week NOT IN ?", days)
		}
		if err := q.Delete(&models.CompanyWorkingHour{}).Error; err != nil {
			return err
		}

		for _, wh := range req {
			var existing models.CompanyWorkingHour
			err := tx.Where("company_id = ? AND day_of_week = ?", companyID, wh.DayOfWeek).
				First(&existing).Error

			if err == gorm.ErrRecordNotFound {
				existing = models.CompanyWorkingHour{
					CompanyID: companyID,
					DayOfWeek: wh.DayOfWeek,
				}
			} else if err != nil {
				return err
			}

			existing.StartTime = wh.StartTime
			existing.EndTime = wh.EndTime

			if err := tx.Save(&existing).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		httperr.Internal(c, "failed_to_update_working_hours", "Erro ao atualizar expediente.")
		return
	}

	var workingHours []models.CompanyWorkingHour
	h.db.Where("company_id = ?", companyID).
		Order("day_of_week ASC").
		Find(&workingHours)

	httpresp.List(c, workingHours)
}
