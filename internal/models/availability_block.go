package models

import "time"

// AvailabilityBlock é a regra semanal recorrente de disponibilidade
type AvailabilityBlock struct {
	ID          uint `gorm:"primaryKey" json:"id"`
	ClinicianID uint `gorm:"index:idx_block_clinician_weekday" json:"clinician_id"`

	Weekday int `gorm:"index:idx_block_clinician_weekday" json:"weekday"`

	StartTime string `gorm:"size:5" json:"start_time"`
	EndTime   string `gorm:"size:5" json:"end_time"`

	Recurring bool `gorm:"default:true" json:"recurring"`
	Active    bool `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
