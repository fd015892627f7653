package main

import (
	"context"
	"fmt"
	"os"

	"handcrafted-haven/internal/config"
	"handcrafted-haven/internal/database"
	"handcrafted-haven/internal/logger"
	"handcrafted-haven/internal/seed"
	"handcrafted-haven/migrations"

	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.Server.Env, cfg.Server.LogLevel)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer log.Sync()

	dbService, err := database.New(cfg.Database)
	if err != nil {
		log.Fatal("Failed to open database", zap.Error(err))
	}
	defer dbService.Close()

	if err := database.RunMigrations(dbService.DB(), migrations.FS, log); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}
	if err := database.GetMigrationStatus(dbService.DB(), migrations.FS); err != nil {
		log.Warn("Could not read migration status", zap.Error(err))
	}

	summary, err := seed.Run(context.Background(), dbService.DB(), seed.DemoFixtures(), log)
	if err != nil {
		log.Error("Seeding failed", zap.Error(err))
		os.Exit(1)
	}

	fmt.Printf("seeded %d users, %d seller profiles, %d products\n", summary.Users, summary.Profiles, summary.Products)
}
