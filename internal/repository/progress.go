package repository

import (
	"context"

	"github.com/osse101/Bossforge_Go/internal/domain"
)

// Progress defines the interface for per-player progression records
type Progress interface {
	GetInventory(ctx context.Context, playerID int64) ([]domain.InventoryEntry, error)
	ListGrants(ctx context.Context, playerID int64) ([]domain.AchievementGrant, error)
	ListCompletions(ctx context.Context, playerID int64) ([]domain.PhaseCompletion, error)
	ListBattles(ctx context.Context, playerID int64, limit int) ([]domain.BattleRecord, error)

	BeginTx(ctx context.Context) (ProgressTx, error)
}

// ProgressTx is a transaction scoped to one player's progression.
// Reads through it see the transaction's own writes.
type ProgressTx interface {
	Tx

	// GetPlayerForUpdate locks the player row until commit or rollback
	GetPlayerForUpdate(ctx context.Context, id int64) (*domain.Player, error)
	GetStats(ctx context.Context, playerID int64) (domain.PlayerStats, error)
	UpdatePlayerProgress(ctx context.Context, playerID int64, progress domain.PlayerProgress) error

	GetPhase(ctx context.Context, id int64) (*domain.Phase, error)
	GetBoss(ctx context.Context, id int64) (*domain.Boss, error)
	GetItem(ctx context.Context, id int64) (*domain.Item, error)
	ListAchievements(ctx context.Context) ([]domain.Achievement, error)

	// GetCompletion returns nil, nil when the player has not completed the phase
	GetCompletion(ctx context.Context, playerID, phaseID int64) (*domain.PhaseCompletion, error)
	// InsertCompletion returns domain.ErrDuplicate if (player, phase) already exists
	InsertCompletion(ctx context.Context, completion *domain.PhaseCompletion) error

	GrantedAchievementIDs(ctx context.Context, playerID int64) (map[int64]struct{}, error)
	// InsertGrant returns domain.ErrDuplicate if (player, achievement) already exists
	InsertGrant(ctx context.Context, grant *domain.AchievementGrant) error

	InsertBattle(ctx context.Context, battle *domain.BattleRecord) error

	// AddInventory creates or increments the (player, item) entry
	AddInventory(ctx context.Context, playerID, itemID int64, quantity int) (*domain.InventoryEntry, error)
	// RemoveInventory decrements the entry and deletes it at zero.
	// Returns domain.ErrNotInInventory or domain.ErrInsufficientQuantity.
	RemoveInventory(ctx context.Context, playerID, itemID int64, quantity int) (*domain.InventoryEntry, error)
}
