// Command seed writes the sample catalog into the configured document store.
package main

import (
	"context"
	"time"

	"tripnest/config"
	"tripnest/database"
	"tripnest/database/seed"
	"tripnest/utils"

	firebase "firebase.google.com/go/v4"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		utils.GetLogger().Fatal("seed: failed to load config", zap.Error(err))
	}
	logger := utils.InitializeLogger(cfg.IsProduction(), cfg.LogLevel)
	defer logger.Sync()

	if cfg.DocstoreDriver == database.DriverMemory {
		logger.Fatal("seed: DOCSTORE_DRIVER=memory is seeded by the server itself")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	var app *firebase.App
	if cfg.DocstoreDriver == database.DriverFirestore {
		app, err = database.InitFirebase(ctx, cfg)
		if err != nil {
			logger.Fatal("seed: failed to initialize firebase", zap.Error(err))
		}
	}
	store, err := database.InitStore(ctx, cfg, app, logger)
	if err != nil {
		logger.Fatal("seed: failed to open document store", zap.Error(err))
	}
	defer store.Close()

	if err := seed.Run(ctx, store); err != nil {
		logger.Fatal("seed: failed", zap.Error(err))
	}
	logger.Info("seed: done", zap.Int("trips", len(seed.Trips)))
}
