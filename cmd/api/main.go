package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/plannora/appointments-api/internal/config"
	dbpkg "github.com/plannora/appointments-api/internal/db"
	"github.com/plannora/appointments-api/internal/logging"
	"github.com/plannora/appointments-api/internal/routes"
	"github.com/plannora/appointments-api/internal/settings"
	"github.com/plannora/appointments-api/internal/webhook"
)

func main() {

	godotenv.Load()

	cfg := config.Load()

	log := logging.New(cfg.IsProduction())
	defer log.Sync()

	db := dbpkg.NewDB(cfg, log)

	cache := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	settingsSvc := settings.New(db, cache)

	events := webhook.NewDispatcher(
		webhook.NewGormEndpointSource(db),
		webhook.NewHTTPSender(db, log),
		log,
	)
	defer events.Close()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, log, settingsSvc, events)

	log.Info("server starting", zap.String("addr", cfg.Addr()))
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}
}
