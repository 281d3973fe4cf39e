package models

import "time"

// AvailabilityException sobrescreve um bloco recorrente em uma data
// específica, ou representa um slot avulso (OriginalAvailabilityID nil).
//
// Invariante: no máximo uma exceção não cancelada por
// (clinician_id, specific_date, original_availability_id).
type AvailabilityException struct {
	ID          uint `gorm:"primaryKey" json:"id"`
	ClinicianID uint `gorm:"index:idx_exception_lookup" json:"clinician_id"`

	// data civil no formato 2006-01-02
	SpecificDate string `gorm:"size:10;index:idx_exception_lookup" json:"specific_date"`

	OriginalAvailabilityID *uint `gorm:"index:idx_exception_lookup" json:"original_availability_id"`

	StartTime string `gorm:"size:5" json:"start_time"`
	EndTime   string `gorm:"size:5" json:"end_time"`

	Cancelled bool `gorm:"default:false" json:"cancelled"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
