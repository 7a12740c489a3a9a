// Package catalog manages bosses, phases, rarities, items and achievements. Reads are
// open to any authenticated caller; every mutation requires privilege.
package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/osse101/Bossforge_Go/internal/access"
	"github.com/osse101/Bossforge_Go/internal/domain"
	"github.com/osse101/Bossforge_Go/internal/logger"
	"github.com/osse101/Bossforge_Go/internal/progression"
	"github.com/osse101/Bossforge_Go/internal/repository"
)

// Service defines the interface for catalog operations
type Service interface {
	CreateBoss(ctx context.Context, in BossInput) (*domain.Boss, error)
	GetBoss(ctx context.Context, id int64) (*domain.Boss, error)
	ListBosses(ctx context.Context) ([]domain.Boss, error)

	CreatePhase(ctx context.Context, in PhaseInput) (*domain.Phase, error)
	GetPhase(ctx context.Context, id int64) (*domain.Phase, error)
	ListPhases(ctx context.Context) ([]domain.Phase, error)

	CreateRarity(ctx context.Context, in RarityInput) (*domain.Rarity, error)
	GetRarity(ctx context.Context, id int64) (*domain.Rarity, error)
	ListRarities(ctx context.Context) ([]domain.Rarity, error)

	CreateItem(ctx context.Context, in ItemInput) (*domain.Item, error)
	GetItem(ctx context.Context, id int64) (*domain.Item, error)
	ListItems(ctx context.Context) ([]domain.Item, error)
	UpdateItem(ctx context.Context, id int64, in ItemInput) (*domain.Item, error)

	CreateAchievement(ctx context.Context, in AchievementInput) (*domain.Achievement, error)
	GetAchievement(ctx context.Context, id int64) (*domain.Achievement, error)
	ListAchievements(ctx context.Context) ([]domain.Achievement, error)
	UpdateAchievement(ctx context.Context, id int64, in AchievementInput) (*domain.Achievement, error)
	DeleteAchievement(ctx context.Context, id int64) error
}

// BossInput creates a boss. Health 0 means DefaultBossHealth.
type BossInput struct {
	Name   string `json:"name" yaml:"name" validate:"required,max=100"`
	Health int    `json:"health" yaml:"health" validate:"gte=0"`
}

// PhaseInput creates a phase
type PhaseInput struct {
	Name             string `json:"name" yaml:"name" validate:"required,max=100"`
	Description      string `json:"description" yaml:"description" validate:"max=500"`
	BossID           *int64 `json:"boss_id,omitempty" yaml:"-" validate:"omitempty,gt=0"`
	RewardCoins      int64  `json:"reward_coins" yaml:"reward_coins" validate:"gte=0"`
	RewardExperience int64  `json:"reward_experience" yaml:"reward_experience" validate:"gte=0"`
}

// RarityInput creates a rarity. Color is a CSS hex color.
type RarityInput struct {
	Name        string `json:"name" yaml:"name" validate:"required,max=50"`
	Color       string `json:"color" yaml:"color" validate:"required,hexcolor"`
	Description string `json:"description" yaml:"description" validate:"max=500"`
}

// ItemInput creates or replaces an item
type ItemInput struct {
	Name        string `json:"name" yaml:"name" validate:"required,max=100"`
	Description string `json:"description" yaml:"description" validate:"max=500"`
	Power       int    `json:"power" yaml:"power" validate:"gte=0"`
	RarityID    *int64 `json:"rarity_id,omitempty" yaml:"-" validate:"omitempty,gt=0"`
}

// AchievementInput creates or replaces an achievement
type AchievementInput struct {
	Name        string `json:"name" yaml:"name" validate:"required,max=100"`
	XPRequired  int64  `json:"xp_required" yaml:"xp_required" validate:"gte=0"`
	Predicate   string `json:"predicate,omitempty" yaml:"predicate"`
	RewardCoins int64  `json:"reward_coins" yaml:"reward_coins" validate:"gte=0"`
}

type service struct {
	repo     repository.Catalog
	validate *validator.Validate
}

// NewService creates a new catalog service
func NewService(repo repository.Catalog) Service {
	return &service{repo: repo, validate: validator.New()}
}

// guard checks privilege, then the input
func (s *service) guard(ctx context.Context, in any) error {
	if _, err := access.RequirePrivileged(ctx); err != nil {
		return err
	}
	if in == nil {
		return nil
	}
	if err := s.validate.Struct(in); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return nil
}

func (s *service) CreateBoss(ctx context.Context, in BossInput) (*domain.Boss, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := s.guard(ctx, in); err != nil {
		return nil, err
	}
	if in.Health == 0 {
		in.Health = DefaultBossHealth
	}

	b := &domain.Boss{Name: in.Name, Health: in.Health}
	if err := s.repo.CreateBoss(ctx, b); err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info(LogMsgBossCreated, "boss_id", b.ID, "name", b.Name)
	return b, nil
}

func (s *service) GetBoss(ctx context.Context, id int64) (*domain.Boss, error) {
	return s.repo.GetBoss(ctx, id)
}

func (s *service) ListBosses(ctx context.Context) ([]domain.Boss, error) {
	return s.repo.ListBosses(ctx)
}

// CreatePhase creates a phase. A referenced boss must exist.
func (s *service) CreatePhase(ctx context.Context, in PhaseInput) (*domain.Phase, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := s.guard(ctx, in); err != nil {
		return nil, err
	}

	p := &domain.Phase{
		Name:             in.Name,
		Description:      in.Description,
		BossID:           in.BossID,
		RewardCoins:      in.RewardCoins,
		RewardExperience: in.RewardExperience,
	}
	if err := s.repo.CreatePhase(ctx, p); err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info(LogMsgPhaseCreated, "phase_id", p.ID, "name", p.Name)
	return p, nil
}

func (s *service) GetPhase(ctx context.Context, id int64) (*domain.Phase, error) {
	return s.repo.GetPhase(ctx, id)
}

func (s *service) ListPhases(ctx context.Context) ([]domain.Phase, error) {
	return s.repo.ListPhases(ctx)
}

// CreateRarity creates a rarity. Names are unique.
func (s *service) CreateRarity(ctx context.Context, in RarityInput) (*domain.Rarity, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := s.guard(ctx, in); err != nil {
		return nil, err
	}

	r := &domain.Rarity{Name: in.Name, Color: strings.ToLower(in.Color), Description: in.Description}
	if err := s.repo.CreateRarity(ctx, r); err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info(LogMsgRarityCreated, "rarity_id", r.ID, "name", r.Name)
	return r, nil
}

func (s *service) GetRarity(ctx context.Context, id int64) (*domain.Rarity, error) {
	return s.repo.GetRarity(ctx, id)
}

func (s *service) ListRarities(ctx context.Context) ([]domain.Rarity, error) {
	return s.repo.ListRarities(ctx)
}

// CreateItem creates an item. A referenced rarity must exist.
func (s *service) CreateItem(ctx context.Context, in ItemInput) (*domain.Item, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := s.guard(ctx, in); err != nil {
		return nil, err
	}

	it := &domain.Item{Name: in.Name, Description: in.Description, Power: in.Power, RarityID: in.RarityID}
	if err := s.repo.CreateItem(ctx, it); err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info(LogMsgItemCreated, "item_id", it.ID, "name", it.Name)
	return it, nil
}

func (s *service) GetItem(ctx context.Context, id int64) (*domain.Item, error) {
	return s.repo.GetItem(ctx, id)
}

func (s *service) ListItems(ctx context.Context) ([]domain.Item, error) {
	return s.repo.ListItems(ctx)
}

// UpdateItem replaces an item. Items held by any inventory are immutable.
func (s *service) UpdateItem(ctx context.Context, id int64, in ItemInput) (*domain.Item, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := s.guard(ctx, in); err != nil {
		return nil, err
	}

	it := domain.Item{ID: id, Name: in.Name, Description: in.Description, Power: in.Power, RarityID: in.RarityID}
	if err := s.repo.UpdateItem(ctx, it); err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info(LogMsgItemUpdated, "item_id", id)
	return &it, nil
}

func (s *service) CreateAchievement(ctx context.Context, in AchievementInput) (*domain.Achievement, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := s.guardAchievement(ctx, in); err != nil {
		return nil, err
	}

	a := &domain.Achievement{
		Name:        in.Name,
		XPRequired:  in.XPRequired,
		Predicate:   in.Predicate,
		RewardCoins: in.RewardCoins,
	}
	if err := s.repo.CreateAchievement(ctx, a); err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info(LogMsgAchievementCreated, "achievement_id", a.ID, "name", a.Name,
		"xp_required", a.XPRequired, "predicate", a.Predicate)
	return a, nil
}

func (s *service) GetAchievement(ctx context.Context, id int64) (*domain.Achievement, error) {
	return s.repo.GetAchievement(ctx, id)
}

func (s *service) ListAchievements(ctx context.Context) ([]domain.Achievement, error) {
	return s.repo.ListAchievements(ctx)
}

// UpdateAchievement replaces an achievement. Existing grants are kept.
func (s *service) UpdateAchievement(ctx context.Context, id int64, in AchievementInput) (*domain.Achievement, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := s.guardAchievement(ctx, in); err != nil {
		return nil, err
	}

	a := domain.Achievement{
		ID:          id,
		Name:        in.Name,
		XPRequired:  in.XPRequired,
		Predicate:   in.Predicate,
		RewardCoins: in.RewardCoins,
	}
	if err := s.repo.UpdateAchievement(ctx, a); err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info(LogMsgAchievementUpdated, "achievement_id", id)
	return s.repo.GetAchievement(ctx, id)
}

// DeleteAchievement removes an achievement and its grants. Coins already paid stay paid.
func (s *service) DeleteAchievement(ctx context.Context, id int64) error {
	if err := s.guard(ctx, nil); err != nil {
		return err
	}
	if err := s.repo.DeleteAchievement(ctx, id); err != nil {
		return err
	}
	logger.FromContext(ctx).Info(LogMsgAchievementDeleted, "achievement_id", id)
	return nil
}

func (s *service) guardAchievement(ctx context.Context, in AchievementInput) error {
	if err := s.guard(ctx, in); err != nil {
		return err
	}
	if !progression.ValidPredicate(in.Predicate) {
		return fmt.Errorf("%w: unknown predicate %q", domain.ErrInvalidInput, in.Predicate)
	}
	return nil
}
