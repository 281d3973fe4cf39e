package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/VidaPlenaApps/clinic-scheduler/internal/config"
	dbpkg "github.com/VidaPlenaApps/clinic-scheduler/internal/db"
	"github.com/VidaPlenaApps/clinic-scheduler/internal/logger"
	"github.com/VidaPlenaApps/clinic-scheduler/internal/middleware"
	"github.com/VidaPlenaApps/clinic-scheduler/internal/routes"
	"github.com/VidaPlenaApps/clinic-scheduler/internal/timezone"
)

func main() {

	cfg := config.Load()

	log := logger.New(cfg.DevMode)
	defer log.Sync()

	timezone.SetDefault(cfg.DefaultTimezone)
	timezone.SetLogger(log)

	db := dbpkg.NewDB(cfg)

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, rdb, log)

	log.Info("server running", zap.String("addr", cfg.Addr()))
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}
}
