// Package storetest is a conformance suite for the repository interfaces.
// Every store implementation runs it, so the memory store and PostgreSQL
// agree on uniqueness, reference and ordering rules.
package storetest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/Bossforge_Go/internal/domain"
	"github.com/osse101/Bossforge_Go/internal/repository"
)

// Stores is one empty store seen through each repository interface
type Stores struct {
	Players  repository.Player
	Catalog  repository.Catalog
	Progress repository.Progress
}

// Factory returns an empty store for a single test
type Factory func(t *testing.T) Stores

// Run executes the suite against stores produced by newStores
func Run(t *testing.T, newStores Factory) {
	t.Run("Players", func(t *testing.T) { testPlayers(t, newStores(t)) })
	t.Run("Catalog", func(t *testing.T) { testCatalog(t, newStores(t)) })
	t.Run("Rarities", func(t *testing.T) { testRarities(t, newStores(t)) })
	t.Run("ItemInUse", func(t *testing.T) { testItemInUse(t, newStores(t)) })
	t.Run("AchievementDeleteCascades", func(t *testing.T) { testAchievementCascade(t, newStores(t)) })
	t.Run("MissingReferences", func(t *testing.T) { testMissingReferences(t, newStores(t)) })
	t.Run("TxCommitAndRollback", func(t *testing.T) { testTxCommitRollback(t, newStores(t)) })
	t.Run("Completions", func(t *testing.T) { testCompletions(t, newStores(t)) })
	t.Run("Inventory", func(t *testing.T) { testInventory(t, newStores(t)) })
	t.Run("Battles", func(t *testing.T) { testBattles(t, newStores(t)) })
}

// NewPlayer inserts a player with the given folded username
func NewPlayer(t *testing.T, repo repository.Player, username string) *domain.Player {
	t.Helper()
	p := &domain.Player{Username: username, Email: username + "@example.com", PasswordHash: "x"}
	require.NoError(t, repo.CreatePlayer(context.Background(), p))
	require.NotZero(t, p.ID)
	return p
}

func testPlayers(t *testing.T, s Stores) {
	ctx := context.Background()
	alice := NewPlayer(t, s.Players, "alice")
	NewPlayer(t, s.Players, "bob")

	got, err := s.Players.GetPlayerByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)
	assert.Zero(t, got.Level)
	assert.False(t, got.CreatedAt.IsZero())

	got, err = s.Players.GetPlayerByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, got.ID)

	got, err = s.Players.GetPlayerByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, got.ID)

	_, err = s.Players.GetPlayerByID(ctx, alice.ID+1000)
	assert.ErrorIs(t, err, domain.ErrPlayerNotFound)

	dupName := &domain.Player{Username: "alice", Email: "other@example.com", PasswordHash: "x"}
	assert.ErrorIs(t, s.Players.CreatePlayer(ctx, dupName), domain.ErrDuplicate)
	dupEmail := &domain.Player{Username: "carol", Email: "alice@example.com", PasswordHash: "x"}
	assert.ErrorIs(t, s.Players.CreatePlayer(ctx, dupEmail), domain.ErrDuplicate)

	all, err := s.Players.ListPlayers(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func testCatalog(t *testing.T, s Stores) {
	ctx := context.Background()

	boss := &domain.Boss{Name: "Warden", Health: 500}
	require.NoError(t, s.Catalog.CreateBoss(ctx, boss))

	missing := boss.ID + 1000
	assert.ErrorIs(t, s.Catalog.CreatePhase(ctx, &domain.Phase{Name: "Lost", BossID: &missing}), domain.ErrBossNotFound)

	phase := &domain.Phase{Name: "Gate", BossID: &boss.ID, RewardCoins: 5, RewardExperience: 10}
	require.NoError(t, s.Catalog.CreatePhase(ctx, phase))
	gotPhase, err := s.Catalog.GetPhase(ctx, phase.ID)
	require.NoError(t, err)
	require.NotNil(t, gotPhase.BossID)
	assert.Equal(t, boss.ID, *gotPhase.BossID)

	_, err = s.Catalog.GetBoss(ctx, missing)
	assert.ErrorIs(t, err, domain.ErrBossNotFound)
	_, err = s.Catalog.GetItem(ctx, missing)
	assert.ErrorIs(t, err, domain.ErrItemNotFound)

	first := &domain.Achievement{Name: "First", XPRequired: 100, RewardCoins: 10}
	second := &domain.Achievement{Name: "Second", XPRequired: 50, Predicate: "first_victory"}
	require.NoError(t, s.Catalog.CreateAchievement(ctx, first))
	require.NoError(t, s.Catalog.CreateAchievement(ctx, second))
	assert.ErrorIs(t, s.Catalog.CreateAchievement(ctx, &domain.Achievement{Name: "First"}), domain.ErrDuplicate)

	list, err := s.Catalog.ListAchievements(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID)
	assert.Equal(t, "first_victory", list[1].Predicate)

	second.Name = "First"
	assert.ErrorIs(t, s.Catalog.UpdateAchievement(ctx, *second), domain.ErrDuplicate)
	second.Name = "Renamed"
	require.NoError(t, s.Catalog.UpdateAchievement(ctx, *second))
	got, err := s.Catalog.GetAchievement(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)

	assert.ErrorIs(t, s.Catalog.DeleteAchievement(ctx, missing), domain.ErrAchievementNotFound)
}

func testRarities(t *testing.T, s Stores) {
	ctx := context.Background()

	common := &domain.Rarity{Name: "Common", Color: "#9d9d9d"}
	epic := &domain.Rarity{Name: "Epic", Color: "#a335ee", Description: "Hard to find"}
	require.NoError(t, s.Catalog.CreateRarity(ctx, common))
	require.NoError(t, s.Catalog.CreateRarity(ctx, epic))
	assert.ErrorIs(t, s.Catalog.CreateRarity(ctx, &domain.Rarity{Name: "Common"}), domain.ErrDuplicate)

	got, err := s.Catalog.GetRarity(ctx, epic.ID)
	require.NoError(t, err)
	assert.Equal(t, *epic, *got)

	missing := epic.ID + 1000
	_, err = s.Catalog.GetRarity(ctx, missing)
	assert.ErrorIs(t, err, domain.ErrRarityNotFound)

	list, err := s.Catalog.ListRarities(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, common.ID, list[0].ID)
	assert.Equal(t, "Epic", list[1].Name)

	// items may reference a rarity, never a missing one
	assert.ErrorIs(t, s.Catalog.CreateItem(ctx, &domain.Item{Name: "Ghost", RarityID: &missing}), domain.ErrRarityNotFound)

	item := &domain.Item{Name: "Blade", Power: 7, RarityID: &epic.ID}
	require.NoError(t, s.Catalog.CreateItem(ctx, item))
	gotItem, err := s.Catalog.GetItem(ctx, item.ID)
	require.NoError(t, err)
	require.NotNil(t, gotItem.RarityID)
	assert.Equal(t, epic.ID, *gotItem.RarityID)

	plain := &domain.Item{Name: "Stick"}
	require.NoError(t, s.Catalog.CreateItem(ctx, plain))
	gotItem, err = s.Catalog.GetItem(ctx, plain.ID)
	require.NoError(t, err)
	assert.Nil(t, gotItem.RarityID)

	item.RarityID = &missing
	assert.ErrorIs(t, s.Catalog.UpdateItem(ctx, *item), domain.ErrRarityNotFound)
	item.RarityID = &common.ID
	require.NoError(t, s.Catalog.UpdateItem(ctx, *item))
	gotItem, err = s.Catalog.GetItem(ctx, item.ID)
	require.NoError(t, err)
	require.NotNil(t, gotItem.RarityID)
	assert.Equal(t, common.ID, *gotItem.RarityID)
}

func testItemInUse(t *testing.T, s Stores) {
	ctx := context.Background()
	p := NewPlayer(t, s.Players, "holder")
	item := &domain.Item{Name: "Sword", Power: 3}
	require.NoError(t, s.Catalog.CreateItem(ctx, item))

	item.Power = 4
	require.NoError(t, s.Catalog.UpdateItem(ctx, *item))

	tx, err := s.Progress.BeginTx(ctx)
	require.NoError(t, err)
	_, err = tx.AddInventory(ctx, p.ID, item.ID, 1)
	require.NoError(t, err)
	require.NoError(t, tx.Commit(ctx))

	item.Power = 5
	assert.ErrorIs(t, s.Catalog.UpdateItem(ctx, *item), domain.ErrItemInUse)
	assert.ErrorIs(t, s.Catalog.DeleteItem(ctx, item.ID), domain.ErrItemInUse)

	got, err := s.Catalog.GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, got.Power)
}

func testAchievementCascade(t *testing.T, s Stores) {
	ctx := context.Background()
	p := NewPlayer(t, s.Players, "achiever")
	a := &domain.Achievement{Name: "Gone", RewardCoins: 7}
	require.NoError(t, s.Catalog.CreateAchievement(ctx, a))

	tx, err := s.Progress.BeginTx(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.InsertGrant(ctx, &domain.AchievementGrant{PlayerID: p.ID, AchievementID: a.ID, RewardCoins: 7}))
	assert.ErrorIs(t, tx.InsertGrant(ctx, &domain.AchievementGrant{PlayerID: p.ID, AchievementID: a.ID}), domain.ErrDuplicate)
	require.NoError(t, tx.Rollback(ctx))

	// The duplicate aborted the first transaction on some stores, so grant again
	tx, err = s.Progress.BeginTx(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.InsertGrant(ctx, &domain.AchievementGrant{PlayerID: p.ID, AchievementID: a.ID, RewardCoins: 7}))
	require.NoError(t, tx.Commit(ctx))

	grants, err := s.Progress.ListGrants(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, grants, 1)
	assert.Equal(t, "Gone", grants[0].AchievementName)

	require.NoError(t, s.Catalog.DeleteAchievement(ctx, a.ID))
	grants, err = s.Progress.ListGrants(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, grants)
}

// testMissingReferences covers inserts whose catalog row is gone, as when an
// admin deletes it between the read and the write of an apply.
func testMissingReferences(t *testing.T, s Stores) {
	ctx := context.Background()
	p := NewPlayer(t, s.Players, "orphan")
	missing := int64(9999)

	inserts := []struct {
		name string
		run  func(tx repository.ProgressTx) error
		want error
	}{
		{"completion", func(tx repository.ProgressTx) error {
			return tx.InsertCompletion(ctx, &domain.PhaseCompletion{PlayerID: p.ID, PhaseID: missing, Completed: true})
		}, domain.ErrPhaseNotFound},
		{"grant", func(tx repository.ProgressTx) error {
			return tx.InsertGrant(ctx, &domain.AchievementGrant{PlayerID: p.ID, AchievementID: missing})
		}, domain.ErrAchievementNotFound},
		{"battle", func(tx repository.ProgressTx) error {
			return tx.InsertBattle(ctx, &domain.BattleRecord{PlayerID: p.ID, BossID: &missing, Result: domain.BattleWin})
		}, domain.ErrBossNotFound},
	}

	for _, tt := range inserts {
		t.Run(tt.name, func(t *testing.T) {
			tx, err := s.Progress.BeginTx(ctx)
			require.NoError(t, err)
			defer func() { _ = tx.Rollback(ctx) }()

			err = tt.run(tx)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, domain.KindNotFound, domain.Kind(err))
		})
	}
}

func testTxCommitRollback(t *testing.T, s Stores) {
	ctx := context.Background()
	p := NewPlayer(t, s.Players, "txer")

	tx, err := s.Progress.BeginTx(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.UpdatePlayerProgress(ctx, p.ID, domain.PlayerProgress{Experience: 10, Coins: 20, Level: 1}))
	locked, err := tx.GetPlayerForUpdate(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(10), locked.Experience, "reads see the transaction's own writes")
	require.NoError(t, tx.Rollback(ctx))

	got, err := s.Players.GetPlayerByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Zero(t, got.Experience)

	tx, err = s.Progress.BeginTx(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.UpdatePlayerProgress(ctx, p.ID, domain.PlayerProgress{Experience: 10, Coins: 20, Level: 1}))
	require.NoError(t, tx.Commit(ctx))
	// Rollback after commit is harmless
	assert.NoError(t, tx.Rollback(ctx))

	got, err = s.Players.GetPlayerByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(10), got.Experience)
	assert.Equal(t, int64(20), got.Coins)
	assert.Equal(t, 1, got.Level)

	tx, err = s.Progress.BeginTx(ctx)
	require.NoError(t, err)
	defer tx.Rollback(ctx)
	_, err = tx.GetPlayerForUpdate(ctx, p.ID+1000)
	assert.ErrorIs(t, err, domain.ErrPlayerNotFound)
}

func testCompletions(t *testing.T, s Stores) {
	ctx := context.Background()
	p := NewPlayer(t, s.Players, "runner")
	phase := &domain.Phase{Name: "Gate", RewardCoins: 1, RewardExperience: 1}
	require.NoError(t, s.Catalog.CreatePhase(ctx, phase))

	tx, err := s.Progress.BeginTx(ctx)
	require.NoError(t, err)
	existing, err := tx.GetCompletion(ctx, p.ID, phase.ID)
	require.NoError(t, err)
	assert.Nil(t, existing)

	c := &domain.PhaseCompletion{PlayerID: p.ID, PhaseID: phase.ID, Completed: true}
	require.NoError(t, tx.InsertCompletion(ctx, c))
	assert.NotZero(t, c.ID)
	stats, err := tx.GetStats(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.PhasesCompleted)
	require.NoError(t, tx.Commit(ctx))

	tx, err = s.Progress.BeginTx(ctx)
	require.NoError(t, err)
	existing, err = tx.GetCompletion(ctx, p.ID, phase.ID)
	require.NoError(t, err)
	require.NotNil(t, existing)
	assert.True(t, existing.Completed)
	err = tx.InsertCompletion(ctx, &domain.PhaseCompletion{PlayerID: p.ID, PhaseID: phase.ID, Completed: true})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	require.NoError(t, tx.Rollback(ctx))

	completions, err := s.Progress.ListCompletions(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, completions, 1)
}

func testInventory(t *testing.T, s Stores) {
	ctx := context.Background()
	p := NewPlayer(t, s.Players, "packrat")
	item := &domain.Item{Name: "Potion", Power: 1}
	require.NoError(t, s.Catalog.CreateItem(ctx, item))

	tx, err := s.Progress.BeginTx(ctx)
	require.NoError(t, err)
	e, err := tx.AddInventory(ctx, p.ID, item.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, e.Quantity)
	e, err = tx.AddInventory(ctx, p.ID, item.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 5, e.Quantity)
	require.NoError(t, tx.Commit(ctx))

	inv, err := s.Progress.GetInventory(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, inv, 1)
	assert.Equal(t, "Potion", inv[0].ItemName)
	assert.Equal(t, 5, inv[0].Quantity)

	tx, err = s.Progress.BeginTx(ctx)
	require.NoError(t, err)
	_, err = tx.RemoveInventory(ctx, p.ID, item.ID, 6)
	assert.ErrorIs(t, err, domain.ErrInsufficientQuantity)
	require.NoError(t, tx.Rollback(ctx))

	tx, err = s.Progress.BeginTx(ctx)
	require.NoError(t, err)
	e, err = tx.RemoveInventory(ctx, p.ID, item.ID, 5)
	require.NoError(t, err)
	assert.Zero(t, e.Quantity)
	require.NoError(t, tx.Commit(ctx))

	inv, err = s.Progress.GetInventory(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, inv)

	tx, err = s.Progress.BeginTx(ctx)
	require.NoError(t, err)
	defer tx.Rollback(ctx)
	_, err = tx.RemoveInventory(ctx, p.ID, item.ID, 1)
	assert.ErrorIs(t, err, domain.ErrNotInInventory)
}

func testBattles(t *testing.T, s Stores) {
	ctx := context.Background()
	p := NewPlayer(t, s.Players, "fighter")
	boss := &domain.Boss{Name: "Brute", Health: 500}
	require.NoError(t, s.Catalog.CreateBoss(ctx, boss))

	results := []domain.BattleResult{domain.BattleWin, domain.BattleLoss, domain.BattleWin, domain.BattleFlee}
	for _, result := range results {
		tx, err := s.Progress.BeginTx(ctx)
		require.NoError(t, err)
		b := &domain.BattleRecord{PlayerID: p.ID, BossID: &boss.ID, Result: result}
		require.NoError(t, tx.InsertBattle(ctx, b))
		require.NoError(t, tx.Commit(ctx))
	}

	tx, err := s.Progress.BeginTx(ctx)
	require.NoError(t, err)
	stats, err := tx.GetStats(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.Wins)
	require.NoError(t, tx.Rollback(ctx))

	battles, err := s.Progress.ListBattles(ctx, p.ID, 3)
	require.NoError(t, err)
	require.Len(t, battles, 3)
	assert.Equal(t, domain.BattleFlee, battles[0].Result, "newest first")
	assert.Equal(t, domain.BattleWin, battles[1].Result)
	assert.Equal(t, domain.BattleLoss, battles[2].Result)
}
