package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/VidaPlenaApps/clinic-scheduler/internal/domain/appointment"
	"github.com/VidaPlenaApps/clinic-scheduler/internal/httperr"
	"github.com/VidaPlenaApps/clinic-scheduler/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Clinic
// --------------------------------------------------

func (r *AppointmentGormRepository) GetClinicByID(
	ctx context.Context,
	id uint,
) (*models.Clinic, error) {

	var clinic models.Clinic
	if err := r.db.WithContext(ctx).First(&clinic, id).Error; err != nil {
		return nil, err
	}
	return &clinic, nil
}

// --------------------------------------------------
// Session type
// --------------------------------------------------

func (r *AppointmentGormRepository) GetSessionType(
	ctx context.Context,
	clinicID uint,
	sessionTypeID uint,
) (*models.SessionType, error) {

	var st models.SessionType
	if err := r.db.WithContext(ctx).
		Where("id = ? AND clinic_id = ?", sessionTypeID, clinicID).
		First(&st).Error; err != nil {
		return nil, err
	}
	return &st, nil
}

// --------------------------------------------------
// Client
// --------------------------------------------------

func (r *AppointmentGormRepository) GetOrCreateClient(
	ctx context.Context,
	clinicID uint,
	name string,
	phone string,
	email string,
) (*models.Client, error) {

	var client models.Client
	err := r.db.WithContext(ctx).
		Where("clinic_id = ? AND phone = ?", clinicID, phone).
		First(&client).Error

	if err == nil {
		return &client, nil
	}

	client = models.Client{
		ClinicID: clinicID,
		Name:     name,
		Phone:    phone,
		Email:    email,
	}

	if err := r.db.WithContext(ctx).Create(&client).Error; err != nil {
		return nil, err
	}

	return &client, nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Create(ap).Error
}

func (r *AppointmentGormRepository) AssertNoTimeConflict(
	ctx context.Context,
	clinicianID uint,
	start time.Time,
	end time.Time,
) error {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(
			"clinician_id = ? AND status = 'scheduled' AND start_time < ? AND end_time > ?",
			clinicianID,
			end,
			start,
		).
		Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		return httperr.ErrBusiness("time_conflict")
	}

	return nil
}

// --------------------------------------------------
// Appointment (Cancel / Complete)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointmentForClinician(
	ctx context.Context,
	appointmentID uint,
	clinicianID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("id = ? AND clinician_id = ?", appointmentID, clinicianID).
		First(&ap).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *AppointmentGormRepository) ListAvailabilityBlocks(
	ctx context.Context,
	clinicianID uint,
) ([]models.AvailabilityBlock, error) {

	var blocks []models.AvailabilityBlock
	if err := r.db.WithContext(ctx).
		Where("clinician_id = ?", clinicianID).
		Order("weekday ASC, start_time ASC").
		Find(&blocks).Error; err != nil {
		return nil, err
	}

	return blocks, nil
}

func (r *AppointmentGormRepository) ListExceptionsForDate(
	ctx context.Context,
	clinicianID uint,
	date string,
) ([]models.AvailabilityException, error) {

	var exceptions []models.AvailabilityException
	if err := r.db.WithContext(ctx).
		Where("clinician_id = ? AND specific_date = ?", clinicianID, date).
		Find(&exceptions).Error; err != nil {
		return nil, err
	}

	return exceptions, nil
}

func (r *AppointmentGormRepository) ListAppointmentsForDay(
	ctx context.Context,
	clinicianID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Select("start_time", "end_time").
		Where(
			"clinician_id = ? AND status = 'scheduled' AND start_time >= ? AND start_time < ?",
			clinicianID, start, end,
		).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

func (r *AppointmentGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	clinicianID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment

	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("SessionType").
		Where(
			"clinician_id = ? AND start_time >= ? AND start_time < ?",
			clinicianID,
			start,
			end,
		).
		Order("start_time ASC").
		Find(&apps).Error

	if err != nil {
		return nil, err
	}

	return apps, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
