package repository

import (
	"context"

	"github.com/osse101/Bossforge_Go/internal/domain"
)

// Catalog defines the interface for boss, phase, rarity, item and achievement persistence
type Catalog interface {
	CreateBoss(ctx context.Context, boss *domain.Boss) error
	GetBoss(ctx context.Context, id int64) (*domain.Boss, error)
	ListBosses(ctx context.Context) ([]domain.Boss, error)

	CreatePhase(ctx context.Context, phase *domain.Phase) error
	GetPhase(ctx context.Context, id int64) (*domain.Phase, error)
	ListPhases(ctx context.Context) ([]domain.Phase, error)

	// CreateRarity returns domain.ErrDuplicate when the name is taken
	CreateRarity(ctx context.Context, rarity *domain.Rarity) error
	GetRarity(ctx context.Context, id int64) (*domain.Rarity, error)
	ListRarities(ctx context.Context) ([]domain.Rarity, error)

	// CreateItem and UpdateItem return domain.ErrRarityNotFound for an unknown rarity
	CreateItem(ctx context.Context, item *domain.Item) error
	GetItem(ctx context.Context, id int64) (*domain.Item, error)
	ListItems(ctx context.Context) ([]domain.Item, error)
	// UpdateItem and DeleteItem return domain.ErrItemInUse while any inventory holds the item
	UpdateItem(ctx context.Context, item domain.Item) error
	DeleteItem(ctx context.Context, id int64) error

	// CreateAchievement returns domain.ErrDuplicate when the name is taken
	CreateAchievement(ctx context.Context, achievement *domain.Achievement) error
	GetAchievement(ctx context.Context, id int64) (*domain.Achievement, error)
	// ListAchievements returns the catalog in catalog order (ascending ID)
	ListAchievements(ctx context.Context) ([]domain.Achievement, error)
	UpdateAchievement(ctx context.Context, achievement domain.Achievement) error
	// DeleteAchievement also removes every grant of it
	DeleteAchievement(ctx context.Context, id int64) error
}
