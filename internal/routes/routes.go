package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/plannora/appointments-api/internal/config"
	"github.com/plannora/appointments-api/internal/handlers"
	infraRepo "github.com/plannora/appointments-api/internal/infra/repository"
	"github.com/plannora/appointments-api/internal/middleware"
	"github.com/plannora/appointments-api/internal/models"
	"github.com/plannora/appointments-api/internal/settings"
	ucAppointment "github.com/plannora/appointments-api/internal/usecase/appointment"
	ucBlockedPeriod "github.com/plannora/appointments-api/internal/usecase/blockedperiod"
	"github.com/plannora/appointments-api/internal/webhook"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	log *zap.Logger,
	settingsSvc *settings.Service,
	events *webhook.Dispatcher,
) {

	// ======================================================
	// MIDDLEWARE
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)
	blockedPeriodRepo := infraRepo.NewBlockedPeriodGormRepository(db)
	userDirectory := infraRepo.NewUserGormDirectory(db)
	serviceCatalog := infraRepo.NewServiceGormCatalog(db)

	// ======================================================
	// USE CASES — APPOINTMENTS
	// ======================================================
	createAppointmentUC := ucAppointment.NewCreateAppointment(
		appointmentRepo,
		blockedPeriodRepo,
		userDirectory,
		serviceCatalog,
		settingsSvc,
		events,
	)

	updateAppointmentUC := ucAppointment.NewUpdateAppointment(
		appointmentRepo,
		blockedPeriodRepo,
		userDirectory,
		serviceCatalog,
		settingsSvc,
		events,
	)

	confirmAppointmentUC := ucAppointment.NewConfirmAppointment(appointmentRepo, events)
	cancelAppointmentUC := ucAppointment.NewCancelAppointment(appointmentRepo, events)
	completeAppointmentUC := ucAppointment.NewCompleteAppointment(appointmentRepo, events)
	deleteAppointmentUC := ucAppointment.NewDeleteAppointment(appointmentRepo, events)

	checkAvailabilityUC := ucAppointment.NewCheckAvailability(appointmentRepo, blockedPeriodRepo)
	getConflictsUC := ucAppointment.NewGetConflicts(appointmentRepo, blockedPeriodRepo)

	// ======================================================
	// USE CASES — BLOCKED PERIODS
	// ======================================================
	saveBlockedPeriodUC := ucBlockedPeriod.NewSaveBlockedPeriod(blockedPeriodRepo, events)
	deleteBlockedPeriodUC := ucBlockedPeriod.NewDeleteBlockedPeriod(blockedPeriodRepo, events)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	userHandler := handlers.NewUserHandler(db)
	serviceHandler := handlers.NewServiceHandler(db)
	webhookHandler := handlers.NewWebhookHandler(db)
	settingHandler := handlers.NewSettingHandler(settingsSvc)

	appointmentHandler := handlers.NewAppointmentHandler(
		db,
		createAppointmentUC,
		updateAppointmentUC,
		confirmAppointmentUC,
		cancelAppointmentUC,
		completeAppointmentUC,
		deleteAppointmentUC,
		checkAvailabilityUC,
		getConflictsUC,
	)

	blockedPeriodHandler := handlers.NewBlockedPeriodHandler(
		blockedPeriodRepo,
		saveBlockedPeriodUC,
		deleteBlockedPeriodUC,
	)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		api.POST("/auth/login", authHandler.Login)

		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", authHandler.Me)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			staff := middleware.RequireRole(
				models.RoleAdmin, models.RoleProvider, models.RoleSecretary,
			)

			secured.GET("/appointments", staff, appointmentHandler.List)
			secured.GET("/appointments/availability", appointmentHandler.CheckAvailability)
			secured.GET("/appointments/conflicts", staff, appointmentHandler.Conflicts)
			secured.GET("/appointments/:id", staff, appointmentHandler.Get)
			secured.POST("/appointments", appointmentHandler.Create)
			secured.PUT("/appointments/:id", staff, appointmentHandler.Update)
			secured.PATCH("/appointments/:id/confirm", staff, appointmentHandler.Confirm)
			secured.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.PATCH("/appointments/:id/complete", staff, appointmentHandler.Complete)
			secured.DELETE("/appointments/:id", staff, appointmentHandler.Delete)

			// ------------------------------
			// BLOCKED PERIODS
			// ------------------------------
			admin := middleware.RequireRole(models.RoleAdmin)

			secured.GET("/blocked-periods", blockedPeriodHandler.List)
			secured.GET("/blocked-periods/days", blockedPeriodHandler.Days)
			secured.POST("/blocked-periods", admin, blockedPeriodHandler.Create)
			secured.PUT("/blocked-periods/:id", admin, blockedPeriodHandler.Update)
			secured.DELETE("/blocked-periods/:id", admin, blockedPeriodHandler.Delete)

			// ------------------------------
			// SERVICES
			// ------------------------------
			secured.GET("/services", serviceHandler.List)
			secured.GET("/services/:id", serviceHandler.Get)
			secured.POST("/services", admin, serviceHandler.Create)
			secured.PUT("/services/:id", admin, serviceHandler.Update)
			secured.DELETE("/services/:id", admin, serviceHandler.Delete)

			// ------------------------------
			// USERS
			// ------------------------------
			secured.GET("/users", staff, userHandler.List)
			secured.GET("/users/:id", staff, userHandler.Get)
			secured.POST("/users", admin, userHandler.Create)
			secured.PUT("/users/:id", admin, userHandler.Update)
			secured.DELETE("/users/:id", admin, userHandler.Delete)

			// ------------------------------
			// WEBHOOK ENDPOINTS
			// ------------------------------
			secured.GET("/webhooks", admin, webhookHandler.List)
			secured.POST("/webhooks", admin, webhookHandler.Create)
			secured.PUT("/webhooks/:id", admin, webhookHandler.Update)
			secured.DELETE("/webhooks/:id", admin, webhookHandler.Delete)
			secured.GET("/webhooks/:id/deliveries", admin, webhookHandler.Deliveries)

			// ------------------------------
			// SETTINGS
			// ------------------------------
			secured.GET("/settings/:name", admin, settingHandler.Get)
			secured.PUT("/settings/:name", admin, settingHandler.Put)
		}
	}

	log.Info("routes registered")
}
