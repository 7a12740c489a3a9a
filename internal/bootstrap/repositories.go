package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/osse101/Bossforge_Go/internal/config"
	"github.com/osse101/Bossforge_Go/internal/database"
	"github.com/osse101/Bossforge_Go/internal/database/memory"
	"github.com/osse101/Bossforge_Go/internal/database/postgres"
	"github.com/osse101/Bossforge_Go/internal/repository"
)

// Repositories holds all repository implementations used by the application,
// backed by one store.
type Repositories struct {
	Pool     database.Pool
	Players  repository.Player
	Catalog  repository.Catalog
	Progress repository.Progress
}

// InitializeRepositories opens the configured store. PostgreSQL is migrated
// first when AutoMigrate is set. The caller closes Pool.
func InitializeRepositories(ctx context.Context, cfg *config.Config) (*Repositories, error) {
	slog.Info(LogMsgStoreSelected, "driver", cfg.StoreDriver)

	switch cfg.StoreDriver {
	case config.StoreDriverMemory:
		slog.Warn(LogMsgMemoryStoreWarning)
		store := memory.New()
		return &Repositories{
			Pool:     store,
			Players:  store.Players(),
			Catalog:  store.Catalog(),
			Progress: store.Progress(),
		}, nil

	case config.StoreDriverPostgres:
		pool, err := database.NewPool(cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxConnIdle, cfg.DBMaxConnLife)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedConnectDB, err)
		}
		if cfg.AutoMigrate {
			if err := database.Migrate(ctx, pool); err != nil {
				pool.Close()
				return nil, fmt.Errorf("%s: %w", ErrMsgFailedMigrate, err)
			}
		}
		return &Repositories{
			Pool:     pool,
			Players:  postgres.NewPlayerRepository(pool),
			Catalog:  postgres.NewCatalogRepository(pool),
			Progress: postgres.NewProgressRepository(pool),
		}, nil

	default:
		return nil, fmt.Errorf("%s: %q", ErrMsgUnknownStore, cfg.StoreDriver)
	}
}
