package models

import "time"

type CompanyWorkingHour struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	CompanyID uint `gorm:"uniqueIndex:idx_company_day" json:"company_id"`

	// 0 = domingo ... 6 = sábado
	DayOfWeek int `gorm:"uniqueIndex:idx_company_day" json:"day_of_week"`

	StartTime string `gorm:"size:5;not null" json:"start_time"`
	EndTime   string `gorm:"size:5;not null" json:"end_time"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
