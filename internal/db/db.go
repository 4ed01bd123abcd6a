package db

import (
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/plannora/appointments-api/internal/config"
	"github.com/plannora/appointments-api/internal/models"
)

func NewDB(cfg *config.Config, log *zap.Logger) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatal("failed to connect database", zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal("failed to get sql.DB", zap.Error(err))
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.Service{},
		&models.Appointment{},
		&models.BlockedPeriod{},
		&models.WebhookEndpoint{},
		&models.WebhookDelivery{},
		&models.Setting{},
	); err != nil {
		log.Fatal("failed to migrate", zap.Error(err))
	}

	seedRoles(db, log)

	return db
}

// seedRoles makes sure the four built-in roles exist.
func seedRoles(db *gorm.DB, log *zap.Logger) {
	roles := []models.Role{
		{Name: "Administrator", Slug: models.RoleAdmin, ApptsGranted: true, ServicesGranted: true, UsersGranted: true, SystemGranted: true},
		{Name: "Provider", Slug: models.RoleProvider, ApptsGranted: true},
		{Name: "Customer", Slug: models.RoleCustomer},
		{Name: "Secretary", Slug: models.RoleSecretary, ApptsGranted: true},
	}

	for _, role := range roles {
		err := db.Where(models.Role{Slug: role.Slug}).FirstOrCreate(&role).Error
		if err != nil {
			log.Warn("role seed failed", zap.String("slug", role.Slug), zap.Error(err))
		}
	}
}
