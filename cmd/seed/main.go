package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"

	"github.com/craftcollective/craft-market/pkg/config"
	"github.com/craftcollective/craft-market/pkg/logger"
	"github.com/craftcollective/craft-market/pkg/store"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "seed"})
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		logg.Warn(ctx, ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}
	logg = logger.New(logger.Options{
		ServiceName: "seed",
		Level:       cfg.App.LogLevel,
	})

	dataStore, err := store.Open(cfg.Store.DataDir)
	if err != nil {
		logg.Error(ctx, "failed to open data directory", err)
		os.Exit(1)
	}

	result, err := seedAll(ctx, dataStore)
	fields := map[string]any{"data_dir": dataStore.Dir()}
	for name, n := range result {
		fields["seeded_"+name] = n
	}
	ctx = logg.WithFields(ctx, fields)
	if err != nil {
		logg.Error(ctx, "seeding finished with errors", err)
		os.Exit(1)
	}
	logg.Info(ctx, "seeding complete")
}
