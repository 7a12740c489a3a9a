package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/osse101/Bossforge_Go/internal/access"
	"github.com/osse101/Bossforge_Go/internal/catalog"
	"github.com/osse101/Bossforge_Go/internal/player"
)

// SeedRegistrar registers seeded players through the player service, so
// passwords are hashed and uniqueness is enforced as for any registration.
func SeedRegistrar(players player.Service) catalog.PlayerRegistrar {
	return func(ctx context.Context, p catalog.SeedPlayer) error {
		_, err := players.Register(ctx, player.RegisterInput{
			Username:   p.Username,
			Email:      p.Email,
			Password:   p.Password,
			Privileged: p.Admin,
		})
		return err
	}
}

// SyncCatalog loads the seed file and applies whatever is missing from the
// store. Entries already present by name are left alone.
func SyncCatalog(ctx context.Context, path string, catalogSvc catalog.Service, players player.Service) (catalog.SeedReport, error) {
	slog.Info(LogMsgSyncingCatalog, "path", path)

	seed, err := catalog.LoadSeed(path)
	if err != nil {
		return catalog.SeedReport{}, fmt.Errorf("%s: %w", ErrMsgFailedLoadSeed, err)
	}
	slog.Info(catalog.LogMsgSeedLoaded,
		"bosses", len(seed.Bosses),
		"phases", len(seed.Phases),
		"rarities", len(seed.Rarities),
		"items", len(seed.Items),
		"achievements", len(seed.Achievements),
		"players", len(seed.Players))

	ctx = access.WithPrincipal(ctx, access.System)
	report, err := catalog.ApplySeed(ctx, catalogSvc, seed, SeedRegistrar(players))
	if err != nil {
		return report, fmt.Errorf("%s: %w", ErrMsgFailedApplySeed, err)
	}

	if report.Created > 0 {
		slog.Info(LogMsgCatalogSynced, "created", report.Created, "skipped", report.Skipped)
	} else {
		slog.Info(LogMsgCatalogUnchanged, "skipped", report.Skipped)
	}
	return report, nil
}
