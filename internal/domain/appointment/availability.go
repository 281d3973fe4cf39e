package appointment

import "time"

type AvailabilityInput struct {
	ClinicID      uint
	ClinicianID   uint
	SessionTypeID uint
	Date          time.Time
}

type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}
