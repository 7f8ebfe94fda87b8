package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/JeanLimaa/minimal-agendefacil-backend/internal/config"
	"github.com/JeanLimaa/minimal-agendefacil-backend/internal/db"
	"github.com/JeanLimaa/minimal-agendefacil-backend/internal/logging"
	"github.com/JeanLimaa/minimal-agendefacil-backend/internal/routes"
)

func main() {
	cfg := config.Load()

	log := logging.New(cfg.Env)
	defer log.Sync()

	database := db.NewDB(cfg)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, database, cfg, log)

	log.Info("server starting",
		zap.String("port", cfg.ServerPort),
		zap.String("env", cfg.Env),
	)

	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}
