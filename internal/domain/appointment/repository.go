package appointment

import (
	"context"
	"time"

	"github.com/VidaPlenaApps/clinic-scheduler/internal/models"
)

type Repository interface {
	// -------- Clinic --------
	GetClinicByID(
		ctx context.Context,
		id uint,
	) (*models.Clinic, error)

	// -------- Session type --------
	GetSessionType(
		ctx context.Context,
		clinicID uint,
		sessionTypeID uint,
	) (*models.SessionType, error)

	// -------- Client --------
	GetOrCreateClient(
		ctx context.Context,
		clinicID uint,
		name string,
		phone string,
		email string,
	) (*models.Client, error)

	// -------- Appointment (create / conflict) --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	AssertNoTimeConflict(
		ctx context.Context,
		clinicianID uint,
		start time.Time,
		end time.Time,
	) error

	// -------- Appointment (state change) --------
	GetAppointmentForClinician(
		ctx context.Context,
		appointmentID uint,
		clinicianID uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Availability --------
	ListAvailabilityBlocks(
		ctx context.Context,
		clinicianID uint,
	) ([]models.AvailabilityBlock, error)

	ListExceptionsForDate(
		ctx context.Context,
		clinicianID uint,
		date string,
	) ([]models.AvailabilityException, error)

	ListAppointmentsForDay(
		ctx context.Context,
		clinicianID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	ListAppointmentsForPeriod(
		ctx context.Context,
		clinicianID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)
}
