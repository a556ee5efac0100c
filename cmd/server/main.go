package main

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"tripsplit/internal/config"
	"tripsplit/internal/handlers"
	"tripsplit/internal/middleware"
	"tripsplit/internal/models"
	"tripsplit/internal/service"
	"tripsplit/internal/storage"
	"tripsplit/internal/storage/sqlite"
	"tripsplit/pkg/logging"
)

func main() {
	cfg := config.Load()
	logging.Setup(cfg.LogLevel)

	// Initialize SQLite storage
	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	// Load the persisted snapshot; a fresh database starts empty
	state, err := store.Load(context.Background())
	if errors.Is(err, storage.ErrEmpty) {
		state = models.NewState()
	} else if err != nil {
		slog.Error("Failed to load state", "error", err)
		os.Exit(1)
	}
	slog.Info("State loaded", "trips", len(state.Trips), "friends", len(state.Friends))

	svc := service.New(store, state)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())

	corsCfg := cors.DefaultConfig()
	if cfg.AllowedOrigin == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = []string{cfg.AllowedOrigin}
	}
	r.Use(cors.New(corsCfg))

	handlers.Register(r, svc)

	addr := ":" + cfg.Port
	slog.Info("Server starting", "app", cfg.AppName, "address", addr)
	if err := r.Run(addr); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
