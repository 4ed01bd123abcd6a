package settings

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/plannora/appointments-api/internal/models"
	"github.com/plannora/appointments-api/internal/timezone"
)

const (
	cachePrefix = "settings:"
	cacheTTL    = 5 * time.Minute

	// DefaultMinimumDuration applies when no setting row overrides it.
	DefaultMinimumDuration = 15 * time.Minute
)

// Service reads name/value settings with a redis cache in front of the
// settings table. A nil cache client degrades to database reads.
type Service struct {
	db    *gorm.DB
	cache *redis.Client
}

func New(db *gorm.DB, cache *redis.Client) *Service {
	return &Service{db: db, cache: cache}
}

// Get returns the setting value, or "" when the setting does not exist.
func (s *Service) Get(ctx context.Context, name string) (string, error) {
	if s.cache != nil {
		if v, err := s.cache.Get(ctx, cachePrefix+name).Result(); err == nil {
			return v, nil
		}
	}

	var row models.Setting
	if err := s.db.WithContext(ctx).Where("name = ?", name).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}

	if s.cache != nil {
		s.cache.Set(ctx, cachePrefix+name, row.Value, cacheTTL)
	}
	return row.Value, nil
}

// Put writes a setting and invalidates its cache entry.
func (s *Service) Put(ctx context.Context, name, value string) error {
	row := models.Setting{Name: name, Value: value}
	err := s.db.WithContext(ctx).
		Where("name = ?", name).
		Assign(models.Setting{Value: value}).
		FirstOrCreate(&row).Error
	if err != nil {
		return err
	}

	if s.cache != nil {
		s.cache.Del(ctx, cachePrefix+name)
	}
	return nil
}

// MinimumDuration returns the configured minimum appointment length.
func (s *Service) MinimumDuration(ctx context.Context) time.Duration {
	v, err := s.Get(ctx, models.SettingMinimumDurationMinutes)
	if err != nil || v == "" {
		return DefaultMinimumDuration
	}
	minutes, err := strconv.Atoi(v)
	if err != nil || minutes <= 0 {
		return DefaultMinimumDuration
	}
	return time.Duration(minutes) * time.Minute
}

// CompanyTimezone returns the configured company timezone, UTC by default.
func (s *Service) CompanyTimezone(ctx context.Context) *time.Location {
	v, err := s.Get(ctx, models.SettingCompanyTimezone)
	if err != nil {
		return time.UTC
	}
	return timezone.Location(v)
}
