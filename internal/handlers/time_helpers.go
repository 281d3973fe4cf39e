package handlers

import (
	"time"

	"github.com/VidaPlenaApps/clinic-scheduler/internal/models"
	"github.com/VidaPlenaApps/clinic-scheduler/internal/timezone"
)

// resolve a zona oficial da clínica
func locationFromClinic(clinic *models.Clinic) *time.Location {
	if clinic != nil {
		return timezone.Location(clinic.Timezone)
	}
	return timezone.Location("")
}

func parseDateInClinic(clinic *models.Clinic, dateStr string) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02",
		dateStr,
		locationFromClinic(clinic),
	)
}
