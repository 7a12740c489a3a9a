// Package reward commits progression outcomes. Each apply is one
// read-decide-write transaction against the store; a uniqueness race on a
// completion or grant rolls the attempt back and re-evaluates from fresh state.
package reward

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/osse101/Bossforge_Go/internal/domain"
	"github.com/osse101/Bossforge_Go/internal/logger"
	"github.com/osse101/Bossforge_Go/internal/metrics"
	"github.com/osse101/Bossforge_Go/internal/progression"
	"github.com/osse101/Bossforge_Go/internal/repository"
)

// DefaultMaxAttempts bounds read-decide-write attempts per request
const DefaultMaxAttempts = 3

// Result is the committed state after an apply
type Result struct {
	Player  domain.Player
	Outcome progression.Outcome

	Completion *domain.PhaseCompletion
	Battle     *domain.BattleRecord
	Grants     []domain.AchievementGrant
	Inventory  *domain.InventoryEntry

	Attempts int
}

// Applier is the transactional reward application
type Applier interface {
	CompletePhase(ctx context.Context, playerID, phaseID int64) (*Result, error)
	RecordBattle(ctx context.Context, playerID int64, in progression.BattleInput) (*Result, error)
	AcquireItem(ctx context.Context, playerID, itemID int64, quantity int) (*Result, error)
	RemoveItem(ctx context.Context, playerID, itemID int64, quantity int) (*domain.InventoryEntry, error)
	Override(ctx context.Context, playerID int64, override domain.PlayerOverride) (*domain.Player, error)
}

type applier struct {
	repo        repository.Progress
	maxAttempts int
}

// NewApplier creates an Applier. maxAttempts below 1 uses DefaultMaxAttempts.
func NewApplier(repo repository.Progress, maxAttempts int) Applier {
	if maxAttempts < 1 {
		maxAttempts = DefaultMaxAttempts
	}
	return &applier{repo: repo, maxAttempts: maxAttempts}
}

// eventLoader reads the event inputs inside the transaction
type eventLoader func(ctx context.Context, tx repository.ProgressTx, s progression.Snapshot) (progression.Event, error)

func (a *applier) CompletePhase(ctx context.Context, playerID, phaseID int64) (*Result, error) {
	return a.apply(ctx, playerID, progression.KindPhaseCompleted, func(ctx context.Context, tx repository.ProgressTx, s progression.Snapshot) (progression.Event, error) {
		phase, err := tx.GetPhase(ctx, phaseID)
		if err != nil {
			return nil, err
		}
		existing, err := tx.GetCompletion(ctx, s.PlayerID, phaseID)
		if err != nil {
			return nil, err
		}
		return progression.PhaseCompletion{Phase: phase, Existing: existing}, nil
	})
}

func (a *applier) RecordBattle(ctx context.Context, playerID int64, in progression.BattleInput) (*Result, error) {
	return a.apply(ctx, playerID, progression.KindBattleResolved, func(ctx context.Context, tx repository.ProgressTx, _ progression.Snapshot) (progression.Event, error) {
		if in.BossID != nil {
			if _, err := tx.GetBoss(ctx, *in.BossID); err != nil {
				return nil, err
			}
		}
		return in, nil
	})
}

func (a *applier) AcquireItem(ctx context.Context, playerID, itemID int64, quantity int) (*Result, error) {
	return a.apply(ctx, playerID, progression.KindItemAcquired, func(ctx context.Context, tx repository.ProgressTx, _ progression.Snapshot) (progression.Event, error) {
		item, err := tx.GetItem(ctx, itemID)
		if err != nil {
			return nil, err
		}
		return progression.ItemAcquisition{Item: item, Quantity: quantity}, nil
	})
}

func (a *applier) apply(ctx context.Context, playerID int64, kind progression.EventKind, load eventLoader) (*Result, error) {
	start := time.Now()
	defer func() {
		metrics.RewardApplyDuration.WithLabelValues(kind.String()).Observe(time.Since(start).Seconds())
	}()

	var lastErr error
	for attempt := 1; attempt <= a.maxAttempts; attempt++ {
		res, err := a.attempt(ctx, playerID, load)
		if err == nil {
			res.Attempts = attempt
			return res, nil
		}
		if !errors.Is(err, domain.ErrDuplicate) {
			return nil, err
		}

		lastErr = err
		metrics.RewardApplyRetries.Inc()
		logger.FromContext(ctx).Warn("Reward apply lost a uniqueness race, retrying",
			"player_id", playerID, "kind", kind.String(), "attempt", attempt, "error", err)
	}

	return nil, fmt.Errorf("%w: %d attempts: %v", domain.ErrConflict, a.maxAttempts, lastErr)
}

// attempt runs one full read-decide-write transaction
func (a *applier) attempt(ctx context.Context, playerID int64, load eventLoader) (*Result, error) {
	tx, err := a.repo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer safeRollback(ctx, tx)

	player, err := tx.GetPlayerForUpdate(ctx, playerID)
	if err != nil {
		return nil, err
	}
	stats, err := tx.GetStats(ctx, playerID)
	if err != nil {
		return nil, err
	}
	snapshot := progression.SnapshotOf(*player, stats)

	ev, err := load(ctx, tx, snapshot)
	if err != nil {
		return nil, err
	}

	// The catalog is read fresh on every attempt so new achievements apply retroactively
	catalog, err := tx.ListAchievements(ctx)
	if err != nil {
		return nil, err
	}
	granted, err := tx.GrantedAchievementIDs(ctx, playerID)
	if err != nil {
		return nil, err
	}

	outcome, err := progression.Evaluate(snapshot, ev, catalog, granted)
	if err != nil {
		return nil, err
	}

	res := &Result{Player: *player, Outcome: outcome}
	if outcome.AlreadyCompleted {
		res.Completion = outcome.Existing
		return res, nil
	}

	if err := a.write(ctx, tx, player, outcome, res); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return res, nil
}

// write persists every record the outcome requests, then the player totals
func (a *applier) write(ctx context.Context, tx repository.ProgressTx, player *domain.Player, outcome progression.Outcome, res *Result) error {
	if c := outcome.NewCompletion; c != nil {
		completion := *c
		if err := tx.InsertCompletion(ctx, &completion); err != nil {
			return err
		}
		res.Completion = &completion
	}

	if b := outcome.Battle; b != nil {
		battle := *b
		if err := tx.InsertBattle(ctx, &battle); err != nil {
			return err
		}
		res.Battle = &battle
	}

	if inv := outcome.Inventory; inv != nil {
		entry, err := tx.AddInventory(ctx, player.ID, inv.ItemID, inv.Quantity)
		if err != nil {
			return err
		}
		res.Inventory = entry
	}

	for _, g := range outcome.Grants {
		grant := domain.AchievementGrant{
			PlayerID:        player.ID,
			AchievementID:   g.Achievement.ID,
			AchievementName: g.Achievement.Name,
			RewardCoins:     g.Achievement.RewardCoins,
		}
		if err := tx.InsertGrant(ctx, &grant); err != nil {
			return err
		}
		res.Grants = append(res.Grants, grant)
	}

	if !outcome.Changed(player.Level) {
		return nil
	}

	progress := domain.PlayerProgress{
		Experience: player.Experience + outcome.Delta.Experience,
		Coins:      player.Coins + outcome.Delta.Coins,
		Level:      outcome.Level,
	}
	if err := tx.UpdatePlayerProgress(ctx, player.ID, progress); err != nil {
		return err
	}
	updated, err := tx.GetPlayerForUpdate(ctx, player.ID)
	if err != nil {
		return err
	}
	res.Player = *updated
	return nil
}

// RemoveItem decrements an inventory entry. It runs no engine evaluation.
func (a *applier) RemoveItem(ctx context.Context, playerID, itemID int64, quantity int) (*domain.InventoryEntry, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", domain.ErrInvalidInput)
	}

	tx, err := a.repo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer safeRollback(ctx, tx)

	if _, err := tx.GetPlayerForUpdate(ctx, playerID); err != nil {
		return nil, err
	}
	entry, err := tx.RemoveInventory(ctx, playerID, itemID, quantity)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return entry, nil
}

// Override sets level, experience or coins directly. It bypasses the engine:
// no monotonicity, no achievement evaluation, no revocation.
func (a *applier) Override(ctx context.Context, playerID int64, override domain.PlayerOverride) (*domain.Player, error) {
	if override.IsEmpty() {
		return nil, fmt.Errorf("%w: override sets no field", domain.ErrInvalidInput)
	}
	if override.Level != nil && *override.Level < 0 {
		return nil, fmt.Errorf("%w: level must not be negative", domain.ErrInvalidInput)
	}

	tx, err := a.repo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer safeRollback(ctx, tx)

	player, err := tx.GetPlayerForUpdate(ctx, playerID)
	if err != nil {
		return nil, err
	}

	if override.Experience != nil {
		player.Experience = *override.Experience
	}
	if override.Coins != nil {
		player.Coins = *override.Coins
	}
	if override.Level != nil {
		player.Level = *override.Level
	}

	progress := domain.PlayerProgress{Experience: player.Experience, Coins: player.Coins, Level: player.Level}
	if err := tx.UpdatePlayerProgress(ctx, playerID, progress); err != nil {
		return nil, err
	}
	updated, err := tx.GetPlayerForUpdate(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return updated, nil
}

func safeRollback(ctx context.Context, tx repository.Tx) {
	if err := tx.Rollback(ctx); err != nil {
		logger.FromContext(ctx).Error("Failed to rollback transaction", "error", err)
	}
}
