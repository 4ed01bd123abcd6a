package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/plannora/appointments-api/internal/domain/schedule"
	"github.com/plannora/appointments-api/internal/models"
)

// Advisory lock key shared by every blocked-period writer. Serializes the
// overlap check against concurrent saves without touching appointment rows.
const blockedPeriodsLockKey = 815001

type BlockedPeriodGormRepository struct {
	db *gorm.DB
}

func NewBlockedPeriodGormRepository(db *gorm.DB) *BlockedPeriodGormRepository {
	return &BlockedPeriodGormRepository{db: db}
}

func (r *BlockedPeriodGormRepository) ListOverlapping(
	ctx context.Context,
	iv schedule.Interval,
	excludeID uint,
) ([]models.BlockedPeriod, error) {

	q := r.db.WithContext(ctx).
		Where("start_time < ? AND end_time > ?", iv.End, iv.Start).
		Order("start_time ASC")

	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var periods []models.BlockedPeriod
	if err := q.Find(&periods).Error; err != nil {
		return nil, err
	}
	return periods, nil
}

func (r *BlockedPeriodGormRepository) GetBlockedPeriod(
	ctx context.Context,
	id uint,
) (*models.BlockedPeriod, error) {

	var bp models.BlockedPeriod
	if err := r.db.WithContext(ctx).First(&bp, id).Error; err != nil {
		return nil, err
	}
	return &bp, nil
}

func (r *BlockedPeriodGormRepository) ListBlockedPeriods(
	ctx context.Context,
) ([]models.BlockedPeriod, error) {

	var periods []models.BlockedPeriod
	if err := r.db.WithContext(ctx).
		Order("start_time ASC").
		Find(&periods).Error; err != nil {
		return nil, err
	}
	return periods, nil
}

func (r *BlockedPeriodGormRepository) CreateBlockedPeriod(
	ctx context.Context,
	bp *models.BlockedPeriod,
) error {
	return r.db.WithContext(ctx).Create(bp).Error
}

func (r *BlockedPeriodGormRepository) UpdateBlockedPeriod(
	ctx context.Context,
	bp *models.BlockedPeriod,
) error {
	return r.db.WithContext(ctx).Save(bp).Error
}

func (r *BlockedPeriodGormRepository) DeleteBlockedPeriod(
	ctx context.Context,
	id uint,
) error {
	return r.db.WithContext(ctx).Delete(&models.BlockedPeriod{}, id).Error
}

func (r *BlockedPeriodGormRepository) WithWriteLock(
	ctx context.Context,
	fn func(tx schedule.BlockedPeriodRepository) error,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", blockedPeriodsLockKey).Error; err != nil {
			return err
		}
		return fn(&BlockedPeriodGormRepository{db: tx})
	})
}

// Compile-time check
var _ schedule.BlockedPeriodRepository = (*BlockedPeriodGormRepository)(nil)
