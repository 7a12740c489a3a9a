package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/Bossforge_Go/internal/access"
	"github.com/osse101/Bossforge_Go/internal/catalog"
	"github.com/osse101/Bossforge_Go/internal/config"
	"github.com/osse101/Bossforge_Go/internal/event"
	"github.com/osse101/Bossforge_Go/internal/player"
	"github.com/osse101/Bossforge_Go/internal/reward"
)

const shippedSeed = "../../configs/seed.yaml"

func memoryServices(t *testing.T) (*Repositories, catalog.Service, player.Service) {
	t.Helper()
	repos, err := InitializeRepositories(context.Background(), &config.Config{StoreDriver: config.StoreDriverMemory})
	require.NoError(t, err)
	t.Cleanup(repos.Pool.Close)

	players := player.NewService(repos.Players, repos.Progress, reward.NewApplier(repos.Progress, 3), event.NewMemoryBus())
	return repos, catalog.NewService(repos.Catalog), players
}

func TestInitializeRepositories(t *testing.T) {
	t.Run("memory", func(t *testing.T) {
		repos, _, _ := memoryServices(t)
		assert.NotNil(t, repos.Players)
		assert.NotNil(t, repos.Catalog)
		assert.NotNil(t, repos.Progress)
		assert.NoError(t, repos.Pool.Ping(context.Background()))
	})

	t.Run("unknown driver", func(t *testing.T) {
		_, err := InitializeRepositories(context.Background(), &config.Config{StoreDriver: "sqlite"})
		assert.ErrorContains(t, err, ErrMsgUnknownStore)
	})
}

func TestSyncCatalog_Idempotent(t *testing.T) {
	_, cat, players := memoryServices(t)
	ctx := context.Background()

	first, err := SyncCatalog(ctx, shippedSeed, cat, players)
	require.NoError(t, err)
	assert.Positive(t, first.Created)
	assert.Zero(t, first.Skipped)

	second, err := SyncCatalog(ctx, shippedSeed, cat, players)
	require.NoError(t, err)
	assert.Zero(t, second.Created)
	assert.Equal(t, first.Created, second.Skipped)

	phases, err := cat.ListPhases(ctx)
	require.NoError(t, err)
	assert.Len(t, phases, 4)
}

func TestSyncCatalog_MissingFile(t *testing.T) {
	_, cat, players := memoryServices(t)

	_, err := SyncCatalog(context.Background(), filepath.Join(t.TempDir(), "nope.yaml"), cat, players)
	assert.ErrorContains(t, err, ErrMsgFailedLoadSeed)
}

func TestSeedRegistrar(t *testing.T) {
	_, _, players := memoryServices(t)
	ctx := access.WithPrincipal(context.Background(), access.System)
	register := SeedRegistrar(players)

	require.NoError(t, register(ctx, catalog.SeedPlayer{
		Username: "Keeper",
		Email:    "keeper@example.com",
		Password: "secret-pass",
		Admin:    true,
	}))

	p, err := players.GetPlayer(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "keeper", p.Username)
	assert.True(t, p.IsAdmin)
	assert.NotEqual(t, "secret-pass", p.PasswordHash)

	// A second registration of the same name is a duplicate
	assert.Error(t, register(ctx, catalog.SeedPlayer{Username: "keeper", Email: "other@example.com", Password: "secret-pass"}))
}

func TestRegisterEventHandlers_NoIntegrations(t *testing.T) {
	bus := event.NewMemoryBus()
	assert.NoError(t, RegisterEventHandlers(bus, nil))
	assert.NoError(t, RegisterEventHandlers(bus, &Integrations{}))
}

func TestGracefulShutdown_ToleratesMissingComponents(t *testing.T) {
	assert.NotPanics(t, func() {
		GracefulShutdown(context.Background(), ShutdownComponents{})
	})
}

func TestCleanupLogs(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < LogFileRetentionLimit+2; i++ {
		name := fmt.Sprintf(LogFileNamePattern, fmt.Sprintf("2026-01-%02d_00-00-00", i+1))
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o600))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "keep.txt"), nil, 0o600))

	cleanupLogs(dir)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, LogFileRetentionCount+1)
	// The oldest files go first
	_, err = os.Stat(filepath.Join(dir, fmt.Sprintf(LogFileNamePattern, "2026-01-01_00-00-00")))
	assert.True(t, os.IsNotExist(err))
}
