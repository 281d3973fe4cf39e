package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "github.com/VidaPlenaApps/clinic-scheduler/internal/domain/availability"
	"github.com/VidaPlenaApps/clinic-scheduler/internal/models"
)

type AvailabilityGormRepository struct {
	db *gorm.DB
}

func NewAvailabilityGormRepository(db *gorm.DB) *AvailabilityGormRepository {
	return &AvailabilityGormRepository{db: db}
}

// --------------------------------------------------
// Exceptions
// --------------------------------------------------

// FindException busca pela tripla exata; origem nula é chave distinta.
// Devolve (nil, nil) quando não há linha não cancelada.
func (r *AvailabilityGormRepository) FindException(
	ctx context.Context,
	clinicianID uint,
	date string,
	originalID *uint,
) (*models.AvailabilityException, error) {

	q := r.db.WithContext(ctx).
		Where("clinician_id = ? AND specific_date = ? AND cancelled = ?",
			clinicianID, date, false)

	if originalID == nil {
		q = q.Where("original_availability_id IS NULL")
	} else {
		q = q.Where("original_availability_id = ?", *originalID)
	}

	var ex models.AvailabilityException
	if err := q.First(&ex).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &ex, nil
}

func (r *AvailabilityGormRepository) CreateException(
	ctx context.Context,
	ex *models.AvailabilityException,
) error {
	return r.db.WithContext(ctx).Create(ex).Error
}

func (r *AvailabilityGormRepository) UpdateException(
	ctx context.Context,
	ex *models.AvailabilityException,
) error {
	return r.db.WithContext(ctx).Save(ex).Error
}

// --------------------------------------------------
// Blocks
// --------------------------------------------------

func (r *AvailabilityGormRepository) GetBlock(
	ctx context.Context,
	clinicianID uint,
	blockID uint,
) (*models.AvailabilityBlock, error) {

	var block models.AvailabilityBlock
	if err := r.db.WithContext(ctx).
		Where("id = ? AND clinician_id = ?", blockID, clinicianID).
		First(&block).Error; err != nil {
		return nil, err
	}

	return &block, nil
}

func (r *AvailabilityGormRepository) UpdateBlockTimes(
	ctx context.Context,
	clinicianID uint,
	blockID uint,
	startTime string,
	endTime string,
) error {

	result := r.db.WithContext(ctx).
		Model(&models.AvailabilityBlock{}).
		Where("id = ? AND clinician_id = ?", blockID, clinicianID).
		Updates(map[string]any{
			"start_time": startTime,
			"end_time":   endTime,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *AvailabilityGormRepository) ListBlocks(
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

func (r *AvailabilityGormRepository) ListExceptionsBetween(
	ctx context.Context,
	clinicianID uint,
	from string,
	to string,
) ([]models.AvailabilityException, error) {

	var exceptions []models.AvailabilityException
	if err := r.db.WithContext(ctx).
		Where("clinician_id = ? AND specific_date >= ? AND specific_date <= ?",
			clinicianID, from, to).
		Order("specific_date ASC").
		Find(&exceptions).Error; err != nil {
		return nil, err
	}

	return exceptions, nil
}

// Compile-time check
var _ domain.Repository = (*AvailabilityGormRepository)(nil)
