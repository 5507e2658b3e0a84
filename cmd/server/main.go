package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/korjavin/smartpantry/pkg/api"
	"github.com/korjavin/smartpantry/pkg/app"
	"github.com/korjavin/smartpantry/pkg/config"
	"github.com/korjavin/smartpantry/pkg/logger"
)

func main() {
	log := logger.Global

	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Error("Failed to load configuration: %v", err)
		os.Exit(1)
	}
	if err := logger.Setup(cfg.LogLevel, cfg.LogFormat); err != nil {
		log.Error("Failed to configure logger: %v", err)
		os.Exit(1)
	}
	log = logger.Global
	defer log.Sync()

	log.Info("Starting SmartPantry HTTP server...")
	log.Debug("Configuration: %+v", cfg.Redacted())

	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	a, err := app.New(cfg, app.Options{})
	if err != nil {
		log.Error("Failed to initialize: %v", err)
		os.Exit(1)
	}
	defer a.Close()
	a.StartBackground()

	handler := api.NewHandler(a.Suggest, a.Profiles, a.Messages)
	server := api.NewServer(cfg.HTTPAddr, handler)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Start(ctx); err != nil {
		log.Error("Server error: %v", err)
		a.Close()
		os.Exit(1)
	}
	log.Info("Server stopped")
}
