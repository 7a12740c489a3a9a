package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/Bossforge_Go/internal/access"
	"github.com/osse101/Bossforge_Go/internal/auth"
	"github.com/osse101/Bossforge_Go/internal/domain"
	"github.com/osse101/Bossforge_Go/internal/leaderboard"
	"github.com/osse101/Bossforge_Go/internal/player"
)

type MockPlayerService struct {
	mock.Mock
}

func (m *MockPlayerService) Register(ctx context.Context, in player.RegisterInput) (*domain.Player, error) {
	args := m.Called(ctx, in)
	p, _ := args.Get(0).(*domain.Player)
	return p, args.Error(1)
}

func (m *MockPlayerService) GetPlayer(ctx context.Context, playerID int64) (*domain.Player, error) {
	args := m.Called(ctx, playerID)
	p, _ := args.Get(0).(*domain.Player)
	return p, args.Error(1)
}

func (m *MockPlayerService) CompletePhase(ctx context.Context, playerID, phaseID int64) (*player.Outcome, error) {
	args := m.Called(ctx, playerID, phaseID)
	out, _ := args.Get(0).(*player.Outcome)
	return out, args.Error(1)
}

func (m *MockPlayerService) RecordBattle(ctx context.Context, in player.BattleInput) (*player.Outcome, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*player.Outcome)
	return out, args.Error(1)
}

func (m *MockPlayerService) AcquireItem(ctx context.Context, playerID, itemID int64, quantity int) (*player.Outcome, error) {
	args := m.Called(ctx, playerID, itemID, quantity)
	out, _ := args.Get(0).(*player.Outcome)
	return out, args.Error(1)
}

func (m *MockPlayerService) RemoveItem(ctx context.Context, playerID, itemID int64, quantity int) (*domain.InventoryEntry, error) {
	args := m.Called(ctx, playerID, itemID, quantity)
	e, _ := args.Get(0).(*domain.InventoryEntry)
	return e, args.Error(1)
}

func (m *MockPlayerService) GetInventory(ctx context.Context, playerID int64) ([]domain.InventoryEntry, error) {
	args := m.Called(ctx, playerID)
	e, _ := args.Get(0).([]domain.InventoryEntry)
	return e, args.Error(1)
}

func (m *MockPlayerService) ListAchievements(ctx context.Context, playerID int64) ([]domain.AchievementGrant, error) {
	args := m.Called(ctx, playerID)
	g, _ := args.Get(0).([]domain.AchievementGrant)
	return g, args.Error(1)
}

func (m *MockPlayerService) ListBattles(ctx context.Context, playerID int64, limit int) ([]domain.BattleRecord, error) {
	args := m.Called(ctx, playerID, limit)
	b, _ := args.Get(0).([]domain.BattleRecord)
	return b, args.Error(1)
}

func (m *MockPlayerService) Override(ctx context.Context, playerID int64, override domain.PlayerOverride) (*domain.Player, error) {
	args := m.Called(ctx, playerID, override)
	p, _ := args.Get(0).(*domain.Player)
	return p, args.Error(1)
}

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, username, password string) (*auth.Session, error) {
	args := m.Called(ctx, username, password)
	s, _ := args.Get(0).(*auth.Session)
	return s, args.Error(1)
}

func (m *MockAuthService) Verify(ctx context.Context, token string) (access.Principal, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(access.Principal), args.Error(1)
}

type MockBoard struct {
	mock.Mock
}

func (m *MockBoard) Update(ctx context.Context, playerID int64, username string, experience int64) error {
	return m.Called(ctx, playerID, username, experience).Error(0)
}

func (m *MockBoard) Top(ctx context.Context, limit int) ([]leaderboard.Entry, error) {
	args := m.Called(ctx, limit)
	e, _ := args.Get(0).([]leaderboard.Entry)
	return e, args.Error(1)
}

func (m *MockBoard) Rank(ctx context.Context, playerID int64) (*leaderboard.Entry, error) {
	args := m.Called(ctx, playerID)
	e, _ := args.Get(0).(*leaderboard.Entry)
	return e, args.Error(1)
}
