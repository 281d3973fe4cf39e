package models

import "time"

type SessionNoteTemplate struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	ClinicID uint `json:"clinic_id"`

	Name string `gorm:"size:100;not null" json:"name"`
	Body string `gorm:"type:text" json:"body"`

	Active bool `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type SessionNote struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ClinicianID   uint  `json:"clinician_id"`
	ClientID      uint  `json:"client_id"`
	AppointmentID *uint `json:"appointment_id"`
	TemplateID    *uint `json:"template_id"`

	Body string `gorm:"type:text" json:"body"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
