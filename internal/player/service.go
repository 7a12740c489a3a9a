// Package player orchestrates player requests: validate, guard, apply, then
// publish what was committed.
package player

import (
	"context"

	"github.com/go-playground/validator/v10"

	"github.com/osse101/Bossforge_Go/internal/domain"
	"github.com/osse101/Bossforge_Go/internal/event"
	"github.com/osse101/Bossforge_Go/internal/progression"
	"github.com/osse101/Bossforge_Go/internal/repository"
	"github.com/osse101/Bossforge_Go/internal/reward"
)

// Service defines the interface for player operations
type Service interface {
	Register(ctx context.Context, in RegisterInput) (*domain.Player, error)
	GetPlayer(ctx context.Context, playerID int64) (*domain.Player, error)

	CompletePhase(ctx context.Context, playerID, phaseID int64) (*Outcome, error)
	RecordBattle(ctx context.Context, in BattleInput) (*Outcome, error)
	AcquireItem(ctx context.Context, playerID, itemID int64, quantity int) (*Outcome, error)
	RemoveItem(ctx context.Context, playerID, itemID int64, quantity int) (*domain.InventoryEntry, error)

	GetInventory(ctx context.Context, playerID int64) ([]domain.InventoryEntry, error)
	ListAchievements(ctx context.Context, playerID int64) ([]domain.AchievementGrant, error)
	ListBattles(ctx context.Context, playerID int64, limit int) ([]domain.BattleRecord, error)

	Override(ctx context.Context, playerID int64, override domain.PlayerOverride) (*domain.Player, error)
}

// RegisterInput is a new player's credentials. Privileged is honored only
// when the caller is itself privileged.
type RegisterInput struct {
	Username   string `json:"username" validate:"required,min=3,max=30,excludesall=@"`
	Email      string `json:"email" validate:"required,email,max=254"`
	Password   string `json:"password" validate:"required,min=6,max=72"`
	Privileged bool   `json:"-"`
}

// BattleInput is a resolved battle reported for a player
type BattleInput struct {
	PlayerID         int64  `json:"player_id" validate:"required,gt=0"`
	BossID           *int64 `json:"boss_id,omitempty" validate:"omitempty,gt=0"`
	Result           string `json:"result" validate:"required"`
	RewardCoins      int64  `json:"reward_coins" validate:"gte=0,lte=1000000000"`
	RewardExperience int64  `json:"reward_experience" validate:"gte=0,lte=1000000000"`
}

// Outcome is the committed result of a progression request
type Outcome struct {
	Player           domain.Player             `json:"player"`
	Delta            progression.Delta         `json:"delta"`
	AlreadyCompleted bool                      `json:"already_completed,omitempty"`
	Completion       *domain.PhaseCompletion   `json:"completion,omitempty"`
	Battle           *domain.BattleRecord      `json:"battle,omitempty"`
	Inventory        *domain.InventoryEntry    `json:"inventory,omitempty"`
	Grants           []domain.AchievementGrant `json:"achievements_granted"`
}

type service struct {
	players  repository.Player
	progress repository.Progress
	applier  reward.Applier
	bus      event.Bus
	validate *validator.Validate
}

// NewService creates a new player service. bus may be nil.
func NewService(players repository.Player, progress repository.Progress, applier reward.Applier, bus event.Bus) Service {
	return &service{
		players:  players,
		progress: progress,
		applier:  applier,
		bus:      bus,
		validate: validator.New(),
	}
}

func outcomeFrom(res *reward.Result) *Outcome {
	out := &Outcome{
		Player:           res.Player,
		Delta:            res.Outcome.Delta,
		AlreadyCompleted: res.Outcome.AlreadyCompleted,
		Completion:       res.Completion,
		Battle:           res.Battle,
		Inventory:        res.Inventory,
		Grants:           res.Grants,
	}
	if out.Grants == nil {
		out.Grants = []domain.AchievementGrant{}
	}
	return out
}
