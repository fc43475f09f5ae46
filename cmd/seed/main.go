package main

import (
	"context"
	"log"

	"oficina-api/internal/repository"
	"oficina-api/internal/seed"
	"oficina-api/pkg/config"
	"oficina-api/pkg/logger"
	"oficina-api/pkg/postgres"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Logger.Level, cfg.Logger.Format); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := postgres.Migrate(ctx, db, appLogger); err != nil {
		appLogger.Fatal("Failed to apply migrations", zap.Error(err))
	}

	appLogger.Info("Starting database seeding...")

	seeder := seed.New(
		repository.NewCategoryRepository(db, appLogger),
		repository.NewEmployeeRepository(db, appLogger),
		appLogger,
	)
	if _, err := seeder.Run(ctx, cfg.Seed); err != nil {
		appLogger.Fatal("Failed to seed database", zap.Error(err))
	}
}
