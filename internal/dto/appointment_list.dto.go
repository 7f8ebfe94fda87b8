package dto

import (
	"time"

	domain "github.com/JeanLimaa/minimal-agendefacil-backend/internal/domain/appointment"
	"github.com/JeanLimaa/minimal-agendefacil-backend/internal/models"
)

type AppointmentListDTO struct {
	ID uint `json:"id"`

	Date        time.Time `json:"date"`
	DurationMin int       `json:"duration_min"`

	SubTotalPrice float64 `json:"sub_total_price"`
	Discount      float64 `json:"discount"`
	TotalPrice    float64 `json:"total_price"`

	// Status traduzido para exibição (Pendente, Confirmado...)
	Status string `json:"status"`
	Notes  string `json:"notes,omitempty"`

	ClientID   uint   `json:"client_id"`
	ClientName string `json:"client_name"`

	Services []models.Service `json:"services"`
}

func FromAppointment(ap models.Appointment) AppointmentListDTO {
	services := make([]models.Service, 0, len(ap.Services))
	for _, link := range ap.Services {
		services = append(services, link.Service)
	}

	return AppointmentListDTO{
		ID:            ap.ID,
		Date:          ap.Date,
		DurationMin:   ap.DurationMin,
		SubTotalPrice: ap.SubTotalPrice,
		Discount:      ap.Discount,
		TotalPrice:    ap.TotalPrice,
		Status:        domain.Translate(domain.Status(ap.Status)),
		Notes:         ap.Notes,
		ClientID:      ap.ClientID,
		ClientName:    ap.Client.Name,
		Services:      services,
	}
}

func FromAppointments(aps []models.Appointment) []AppointmentListDTO {
	out := make([]AppointmentListDTO, 0, len(aps))
	for _, ap := range aps {
		out = append(out, FromAppointment(ap))
	}
	return out
}
