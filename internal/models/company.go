package models

import "time"

type Company struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:100;not null" json:"name"`
	Email       string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Phone       string `gorm:"size:20" json:"phone"`
	Description string `gorm:"size:255" json:"description"`

	// Link é o identificador público usado na página de agendamento
	Link string `gorm:"size:120;uniqueIndex;not null" json:"link"`

	IntervalBetweenAppointments int `gorm:"default:30" json:"interval_between_appointments"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
