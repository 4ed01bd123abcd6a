package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/plannora/appointments-api/internal/domain/schedule"
	"github.com/plannora/appointments-api/internal/models"
)

// UserGormDirectory answers existence and role lookups for the engine and
// the lifecycle use cases.
type UserGormDirectory struct {
	db *gorm.DB
}

func NewUserGormDirectory(db *gorm.DB) *UserGormDirectory {
	return &UserGormDirectory{db: db}
}

func (d *UserGormDirectory) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := d.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (d *UserGormDirectory) HasRole(ctx context.Context, id uint, roleSlug string) (bool, error) {
	var count int64
	if err := d.db.WithContext(ctx).
		Model(&models.User{}).
		Joins("JOIN roles ON roles.id = users.role_id").
		Where("users.id = ? AND roles.slug = ?", id, roleSlug).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ServiceGormCatalog resolves services for reference validation.
type ServiceGormCatalog struct {
	db *gorm.DB
}

func NewServiceGormCatalog(db *gorm.DB) *ServiceGormCatalog {
	return &ServiceGormCatalog{db: db}
}

func (c *ServiceGormCatalog) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := c.db.WithContext(ctx).
		Model(&models.Service{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (c *ServiceGormCatalog) AttendantsNumber(ctx context.Context, id uint) (int, error) {
	var svc models.Service
	err := c.db.WithContext(ctx).Select("attendants_number").First(&svc, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return svc.AttendantsNumber, nil
}

func (c *ServiceGormCatalog) DurationMinutes(ctx context.Context, id uint) (int, error) {
	var svc models.Service
	err := c.db.WithContext(ctx).Select("duration").First(&svc, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return svc.Duration, nil
}

// Compile-time checks
var (
	_ schedule.UserDirectory  = (*UserGormDirectory)(nil)
	_ schedule.ServiceCatalog = (*ServiceGormCatalog)(nil)
)
