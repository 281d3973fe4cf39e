package models

import "time"

type InsuranceForm struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	ClinicID uint `json:"clinic_id"`
	ClientID uint `json:"client_id"`

	PayerName string `gorm:"size:100;not null" json:"payer_name"`
	MemberID  string `gorm:"size:50" json:"member_id"`
	GroupID   string `gorm:"size:50" json:"group_id"`

	// chave do documento no bucket (nil enquanto não houver upload)
	DocumentKey string `gorm:"size:255" json:"document_key"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
