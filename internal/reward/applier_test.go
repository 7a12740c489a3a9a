package reward

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/Bossforge_Go/internal/database/memory"
	"github.com/osse101/Bossforge_Go/internal/domain"
	"github.com/osse101/Bossforge_Go/internal/progression"
	"github.com/osse101/Bossforge_Go/internal/repository"
	"github.com/osse101/Bossforge_Go/internal/testing/leaktest"
)

type fixture struct {
	store   *memory.Store
	player  *domain.Player
	phase   *domain.Phase
	boss    *domain.Boss
	item    *domain.Item
	applier Applier
}

func newFixture(t *testing.T, experience int64) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.New()

	player := &domain.Player{Username: "p", Email: "p@example.com", PasswordHash: "x", Experience: experience}
	require.NoError(t, store.Players().CreatePlayer(ctx, player))

	boss := &domain.Boss{Name: "Golem", Health: 500}
	require.NoError(t, store.Catalog().CreateBoss(ctx, boss))

	phase := &domain.Phase{Name: "Floresta", BossID: &boss.ID, RewardCoins: 20, RewardExperience: 30}
	require.NoError(t, store.Catalog().CreatePhase(ctx, phase))

	item := &domain.Item{Name: "Espada", Power: 10}
	require.NoError(t, store.Catalog().CreateItem(ctx, item))

	return &fixture{
		store:   store,
		player:  player,
		phase:   phase,
		boss:    boss,
		item:    item,
		applier: NewApplier(store.Progress(), 3),
	}
}

func (f *fixture) reload(t *testing.T) *domain.Player {
	t.Helper()
	p, err := f.store.Players().GetPlayerByID(context.Background(), f.player.ID)
	require.NoError(t, err)
	return p
}

func TestCompletePhase_FirstThenRepeat(t *testing.T) {
	f := newFixture(t, 80)
	ctx := context.Background()

	res, err := f.applier.CompletePhase(ctx, f.player.ID, f.phase.ID)
	require.NoError(t, err)
	assert.False(t, res.Outcome.AlreadyCompleted)
	require.NotNil(t, res.Completion)
	assert.NotZero(t, res.Completion.ID)
	assert.Equal(t, int64(110), res.Player.Experience)
	assert.Equal(t, int64(20), res.Player.Coins)
	assert.Equal(t, 1, res.Attempts)

	again, err := f.applier.CompletePhase(ctx, f.player.ID, f.phase.ID)
	require.NoError(t, err)
	assert.True(t, again.Outcome.AlreadyCompleted)
	assert.Equal(t, res.Completion.ID, again.Completion.ID)
	assert.Equal(t, int64(110), again.Player.Experience)
	assert.Equal(t, int64(20), again.Player.Coins)

	completions, err := f.store.Progress().ListCompletions(ctx, f.player.ID)
	require.NoError(t, err)
	assert.Len(t, completions, 1)
}

func TestCompletePhase_GrantsAchievementInSameCommit(t *testing.T) {
	f := newFixture(t, 80)
	ctx := context.Background()

	aventureiro := &domain.Achievement{Name: "Aventureiro", XPRequired: 100, RewardCoins: 150}
	require.NoError(t, f.store.Catalog().CreateAchievement(ctx, aventureiro))

	res, err := f.applier.CompletePhase(ctx, f.player.ID, f.phase.ID)
	require.NoError(t, err)

	require.Len(t, res.Grants, 1)
	assert.Equal(t, aventureiro.ID, res.Grants[0].AchievementID)
	assert.Equal(t, int64(110), res.Player.Experience)
	assert.Equal(t, int64(170), res.Player.Coins)

	stored := f.reload(t)
	assert.Equal(t, int64(170), stored.Coins)

	grants, err := f.store.Progress().ListGrants(ctx, f.player.ID)
	require.NoError(t, err)
	require.Len(t, grants, 1)
	assert.Equal(t, "Aventureiro", grants[0].AchievementName)
}

func TestRecordBattle_NewAchievementQualifiesRetroactively(t *testing.T) {
	f := newFixture(t, 500)
	ctx := context.Background()

	// created after the player already passed the threshold
	late := &domain.Achievement{Name: "Iniciante", XPRequired: 100, RewardCoins: 50}
	require.NoError(t, f.store.Catalog().CreateAchievement(ctx, late))

	res, err := f.applier.RecordBattle(ctx, f.player.ID, progression.BattleInput{Result: domain.BattleWin, RewardExperience: 1})
	require.NoError(t, err)
	require.Len(t, res.Grants, 1)
	assert.Equal(t, int64(50), res.Player.Coins)

	// never granted twice
	res, err = f.applier.RecordBattle(ctx, f.player.ID, progression.BattleInput{Result: domain.BattleWin, RewardExperience: 1})
	require.NoError(t, err)
	assert.Empty(t, res.Grants)
	assert.Equal(t, int64(50), res.Player.Coins)
}

func TestCompletePhase_NotFound(t *testing.T) {
	f := newFixture(t, 0)

	_, err := f.applier.CompletePhase(context.Background(), f.player.ID, 999)
	assert.ErrorIs(t, err, domain.ErrPhaseNotFound)

	_, err = f.applier.CompletePhase(context.Background(), 999, f.phase.ID)
	assert.ErrorIs(t, err, domain.ErrPlayerNotFound)
}

func TestRecordBattle_Results(t *testing.T) {
	tests := []struct {
		name      string
		result    domain.BattleResult
		wantCoins int64
		wantXP    int64
	}{
		{"win", domain.BattleWin, 15, 40},
		{"loss", domain.BattleLoss, 0, 0},
		{"flee", domain.BattleFlee, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, 0)
			ctx := context.Background()

			res, err := f.applier.RecordBattle(ctx, f.player.ID, progression.BattleInput{
				BossID: &f.boss.ID, Result: tt.result, RewardCoins: 15, RewardExperience: 40,
			})
			require.NoError(t, err)
			require.NotNil(t, res.Battle)
			assert.NotZero(t, res.Battle.ID)
			assert.Equal(t, tt.wantCoins, res.Player.Coins)
			assert.Equal(t, tt.wantXP, res.Player.Experience)

			battles, err := f.store.Progress().ListBattles(ctx, f.player.ID, 10)
			require.NoError(t, err)
			assert.Len(t, battles, 1)
		})
	}
}

func TestRecordBattle_NotIdempotent(t *testing.T) {
	f := newFixture(t, 0)
	ctx := context.Background()
	in := progression.BattleInput{Result: domain.BattleWin, RewardCoins: 10, RewardExperience: 10}

	for i := 0; i < 3; i++ {
		_, err := f.applier.RecordBattle(ctx, f.player.ID, in)
		require.NoError(t, err)
	}

	p := f.reload(t)
	assert.Equal(t, int64(30), p.Coins)
	assert.Equal(t, int64(30), p.Experience)
}

func TestRecordBattle_InvalidInputLeavesNoTrace(t *testing.T) {
	f := newFixture(t, 0)
	ctx := context.Background()

	_, err := f.applier.RecordBattle(ctx, f.player.ID, progression.BattleInput{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	missing := int64(404)
	_, err = f.applier.RecordBattle(ctx, f.player.ID, progression.BattleInput{BossID: &missing, Result: domain.BattleWin})
	assert.ErrorIs(t, err, domain.ErrBossNotFound)

	battles, err := f.store.Progress().ListBattles(ctx, f.player.ID, 10)
	require.NoError(t, err)
	assert.Empty(t, battles)
}

func TestRecordBattle_OverflowingRewardRejected(t *testing.T) {
	f := newFixture(t, 0)
	ctx := context.Background()

	_, err := f.applier.RecordBattle(ctx, f.player.ID, progression.BattleInput{Result: domain.BattleWin, RewardCoins: 10, RewardExperience: 10})
	require.NoError(t, err)

	huge := progression.BattleInput{Result: domain.BattleWin, RewardCoins: math.MaxInt64, RewardExperience: math.MaxInt64}
	_, err = f.applier.RecordBattle(ctx, f.player.ID, huge)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	p := f.reload(t)
	assert.Equal(t, int64(10), p.Coins)
	assert.Equal(t, int64(10), p.Experience)

	battles, err := f.store.Progress().ListBattles(ctx, f.player.ID, 10)
	require.NoError(t, err)
	assert.Len(t, battles, 1)
}

func TestInventory_AcquireAndRemove(t *testing.T) {
	f := newFixture(t, 0)
	ctx := context.Background()

	res, err := f.applier.AcquireItem(ctx, f.player.ID, f.item.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Inventory.Quantity)
	assert.True(t, res.Outcome.Delta.IsZero())

	res, err = f.applier.AcquireItem(ctx, f.player.ID, f.item.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Inventory.Quantity, "entries are incremented, not duplicated")

	_, err = f.applier.RemoveItem(ctx, f.player.ID, f.item.ID, 5)
	assert.ErrorIs(t, err, domain.ErrInsufficientQuantity)

	entry, err := f.applier.RemoveItem(ctx, f.player.ID, f.item.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 0, entry.Quantity)

	_, err = f.applier.RemoveItem(ctx, f.player.ID, f.item.ID, 1)
	assert.ErrorIs(t, err, domain.ErrNotInInventory)

	_, err = f.applier.AcquireItem(ctx, f.player.ID, 999, 1)
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestOverride(t *testing.T) {
	f := newFixture(t, 500)
	ctx := context.Background()

	grant := &domain.Achievement{Name: "Iniciante", XPRequired: 100}
	require.NoError(t, f.store.Catalog().CreateAchievement(ctx, grant))
	_, err := f.applier.RecordBattle(ctx, f.player.ID, progression.BattleInput{Result: domain.BattleWin, RewardExperience: 1})
	require.NoError(t, err)

	xp, coins, level := int64(0), int64(-5), 7
	p, err := f.applier.Override(ctx, f.player.ID, domain.PlayerOverride{Experience: &xp, Coins: &coins, Level: &level})
	require.NoError(t, err)
	assert.Equal(t, int64(0), p.Experience)
	assert.Equal(t, int64(-5), p.Coins)
	assert.Equal(t, 7, p.Level)

	grants, err := f.store.Progress().ListGrants(ctx, f.player.ID)
	require.NoError(t, err)
	assert.Len(t, grants, 1, "override never revokes achievements")

	_, err = f.applier.Override(ctx, f.player.ID, domain.PlayerOverride{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	negative := -1
	_, err = f.applier.Override(ctx, f.player.ID, domain.PlayerOverride{Level: &negative})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// racingRepo makes the first n completion inserts fail as if another request
// committed first. When commitRival is set the rival's row really lands.
type racingRepo struct {
	repository.Progress
	mu          sync.Mutex
	failures    int
	commitRival bool
}

func (r *racingRepo) BeginTx(ctx context.Context) (repository.ProgressTx, error) {
	tx, err := r.Progress.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	return &racingTx{ProgressTx: tx, repo: r}, nil
}

type racingTx struct {
	repository.ProgressTx
	repo *racingRepo
}

func (t *racingTx) InsertCompletion(ctx context.Context, c *domain.PhaseCompletion) error {
	t.repo.mu.Lock()
	defer t.repo.mu.Unlock()

	if t.repo.failures == 0 {
		return t.ProgressTx.InsertCompletion(ctx, c)
	}
	t.repo.failures--

	if t.repo.commitRival {
		rival := *c
		if err := t.ProgressTx.InsertCompletion(ctx, &rival); err != nil {
			return err
		}
		if err := t.ProgressTx.Commit(ctx); err != nil {
			return err
		}
	}
	return domain.ErrDuplicate
}

func TestCompletePhase_RetryAfterLostRace(t *testing.T) {
	f := newFixture(t, 80)
	repo := &racingRepo{Progress: f.store.Progress(), failures: 1, commitRival: true}
	applier := NewApplier(repo, 3)

	res, err := applier.CompletePhase(context.Background(), f.player.ID, f.phase.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Attempts)
	assert.True(t, res.Outcome.AlreadyCompleted, "the retry sees the rival's completion")

	completions, err := f.store.Progress().ListCompletions(context.Background(), f.player.ID)
	require.NoError(t, err)
	assert.Len(t, completions, 1)
}

func TestCompletePhase_ConflictAfterMaxAttempts(t *testing.T) {
	f := newFixture(t, 80)
	repo := &racingRepo{Progress: f.store.Progress(), failures: 10}
	applier := NewApplier(repo, 3)

	_, err := applier.CompletePhase(context.Background(), f.player.ID, f.phase.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, 7, repo.failures, "exactly three attempts")

	p := f.reload(t)
	assert.Equal(t, int64(80), p.Experience, "failed attempts leave no partial state")
	assert.Equal(t, int64(0), p.Coins)
}

func TestCompletePhase_ConcurrentRequestsApplyOnce(t *testing.T) {
	checker := leaktest.NewGoroutineChecker(t)
	defer checker.Check(2)

	f := newFixture(t, 0)
	ctx := context.Background()

	var wg sync.WaitGroup
	results := make([]*Result, 10)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := f.applier.CompletePhase(ctx, f.player.ID, f.phase.ID)
			if assert.NoError(t, err) {
				results[i] = res
			}
		}(i)
	}
	wg.Wait()

	fresh := 0
	for _, r := range results {
		if r != nil && !r.Outcome.AlreadyCompleted {
			fresh++
		}
	}
	assert.Equal(t, 1, fresh)

	p := f.reload(t)
	assert.Equal(t, int64(20), p.Coins)
	assert.Equal(t, int64(30), p.Experience)
}

// MockProgress is a testify mock of repository.Progress
type MockProgress struct {
	mock.Mock
}

func (m *MockProgress) GetInventory(ctx context.Context, playerID int64) ([]domain.InventoryEntry, error) {
	args := m.Called(ctx, playerID)
	return args.Get(0).([]domain.InventoryEntry), args.Error(1)
}

func (m *MockProgress) ListGrants(ctx context.Context, playerID int64) ([]domain.AchievementGrant, error) {
	args := m.Called(ctx, playerID)
	return args.Get(0).([]domain.AchievementGrant), args.Error(1)
}

func (m *MockProgress) ListCompletions(ctx context.Context, playerID int64) ([]domain.PhaseCompletion, error) {
	args := m.Called(ctx, playerID)
	return args.Get(0).([]domain.PhaseCompletion), args.Error(1)
}

func (m *MockProgress) ListBattles(ctx context.Context, playerID int64, limit int) ([]domain.BattleRecord, error) {
	args := m.Called(ctx, playerID, limit)
	return args.Get(0).([]domain.BattleRecord), args.Error(1)
}

func (m *MockProgress) BeginTx(ctx context.Context) (repository.ProgressTx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.ProgressTx), args.Error(1)
}

func TestApply_BeginTxErrorIsNotRetried(t *testing.T) {
	repo := new(MockProgress)
	boom := errors.New("connection refused")
	repo.On("BeginTx", mock.Anything).Return(nil, boom).Once()

	_, err := NewApplier(repo, 3).CompletePhase(context.Background(), 1, 1)
	assert.ErrorIs(t, err, boom)
	repo.AssertExpectations(t)
}

func TestNewApplier_DefaultsAttempts(t *testing.T) {
	a := NewApplier(new(MockProgress), 0).(*applier)
	assert.Equal(t, DefaultMaxAttempts, a.maxAttempts)
}
