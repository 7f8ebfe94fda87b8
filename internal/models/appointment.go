package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CompanyID uint    `json:"company_id"`
	Company   Company `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"company"`

	ClientID uint   `json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client"`

	// Início do atendimento; o fim é Date + DurationMin
	Date        time.Time `json:"date"`
	DurationMin int       `json:"duration_min"`

	SubTotalPrice float64 `json:"sub_total_price"`
	Discount      float64 `json:"discount"`
	TotalPrice    float64 `json:"total_price"`

	Status string `gorm:"size:20;default:'PENDING'" json:"status"`

	Notes string `gorm:"size:255" json:"notes"`

	Services []AppointmentService `gorm:"constraint:OnDelete:CASCADE;" json:"services,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// End retorna o instante de término do atendimento.
func (a *Appointment) End() time.Time {
	return a.Date.Add(time.Duration(a.DurationMin) * time.Minute)
}
