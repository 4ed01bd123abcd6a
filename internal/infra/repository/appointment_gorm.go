package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/plannora/appointments-api/internal/domain/schedule"
	"github.com/plannora/appointments-api/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Overlap queries (schedule.AppointmentStore)
// --------------------------------------------------

// Both queries express the half-open overlap predicate as
// start_time < end AND end_time > start, matching schedule.Overlaps.

func (r *AppointmentGormRepository) CountOverlapping(
	ctx context.Context,
	providerID, serviceID uint,
	iv schedule.Interval,
	sameService bool,
	excludeID uint,
) (int, error) {

	q := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where(
			"provider_id = ? AND is_unavailability = ? AND status <> ? AND start_time < ? AND end_time > ?",
			providerID,
			false,
			string(schedule.StatusCancelled),
			iv.End,
			iv.Start,
		)

	if sameService {
		q = q.Where("service_id = ?", serviceID)
	} else {
		q = q.Where("service_id <> ?", serviceID)
	}
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return 0, err
	}
	return int(count), nil
}

func (r *AppointmentGormRepository) ListOverlapping(
	ctx context.Context,
	providerID uint,
	iv schedule.Interval,
	excludeID uint,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Service").
		Where(
			"provider_id = ? AND status <> ? AND start_time < ? AND end_time > ?",
			providerID,
			string(schedule.StatusCancelled),
			iv.End,
			iv.Start,
		).
		Order("start_time ASC")

	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var apps []models.Appointment
	if err := q.Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *AppointmentGormRepository) HashExists(
	ctx context.Context,
	hash string,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("hash = ?", hash).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// --------------------------------------------------
// Lifecycle persistence
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Provider").
		Preload("Customer").
		Preload("Service").
		First(&ap, id).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Create(ap).Error
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

func (r *AppointmentGormRepository) DeleteAppointment(
	ctx context.Context,
	id uint,
) error {
	return r.db.WithContext(ctx).Delete(&models.Appointment{}, id).Error
}

// --------------------------------------------------
// Per-provider serialization
// --------------------------------------------------

// WithProviderLock takes a row lock on the provider's user row for the
// duration of the transaction, so two racing bookings for the same provider
// serialize while bookings for different providers proceed in parallel.
func (r *AppointmentGormRepository) WithProviderLock(
	ctx context.Context,
	providerID uint,
	fn func(tx schedule.Repository) error,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var provider models.User
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&provider, providerID).Error; err != nil {
			return err
		}
		return fn(&AppointmentGormRepository{db: tx})
	})
}

// Compile-time check
var _ schedule.Repository = (*AppointmentGormRepository)(nil)
