// Command seed applies a YAML catalog file to the configured store. Entries
// already present by name are skipped, so it can be run repeatedly.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/osse101/Bossforge_Go/internal/bootstrap"
	"github.com/osse101/Bossforge_Go/internal/catalog"
	"github.com/osse101/Bossforge_Go/internal/config"
	"github.com/osse101/Bossforge_Go/internal/event"
	"github.com/osse101/Bossforge_Go/internal/logger"
	"github.com/osse101/Bossforge_Go/internal/player"
	"github.com/osse101/Bossforge_Go/internal/reward"
)

func main() {
	file := flag.String("file", config.DefaultSeedPath, "path to the seed YAML file")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger.InitLogger(logger.NewConfig(cfg.LogLevel, cfg.LogFormat, cfg.ServiceName, cfg.Version, cfg.Environment, false))

	if cfg.StoreDriver == config.StoreDriverMemory {
		slog.Warn("Seeding the memory store has no lasting effect")
	}

	ctx := context.Background()
	repos, err := bootstrap.InitializeRepositories(ctx, cfg)
	if err != nil {
		slog.Error("Failed to open store", "error", err)
		os.Exit(1)
	}
	defer repos.Pool.Close()

	catalogService := catalog.NewService(repos.Catalog)
	// Registration events have no subscribers here
	playerService := player.NewService(
		repos.Players,
		repos.Progress,
		reward.NewApplier(repos.Progress, cfg.ApplyMaxAttempts),
		event.NewMemoryBus(),
	)

	if _, err := bootstrap.SyncCatalog(ctx, *file, catalogService, playerService); err != nil {
		slog.Error("Seeding failed", "error", err)
		repos.Pool.Close()
		os.Exit(1)
	}
}
