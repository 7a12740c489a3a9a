package player

import (
	"context"
	"fmt"

	"github.com/osse101/Bossforge_Go/internal/access"
	"github.com/osse101/Bossforge_Go/internal/domain"
	"github.com/osse101/Bossforge_Go/internal/event"
	"github.com/osse101/Bossforge_Go/internal/logger"
	"github.com/osse101/Bossforge_Go/internal/metrics"
	"github.com/osse101/Bossforge_Go/internal/progression"
)

// CompletePhase completes a phase for the player. Repeating it returns the
// stored completion with AlreadyCompleted set and changes nothing.
func (s *service) CompletePhase(ctx context.Context, playerID, phaseID int64) (*Outcome, error) {
	if _, err := access.RequireSelfOrPrivileged(ctx, playerID); err != nil {
		return nil, err
	}
	if phaseID <= 0 {
		return nil, fmt.Errorf("%w: phase_id is required", domain.ErrInvalidInput)
	}

	res, err := s.applier.CompletePhase(ctx, playerID, phaseID)
	if err != nil {
		return nil, err
	}
	log := logger.FromContext(ctx)

	if res.Outcome.AlreadyCompleted {
		metrics.PhaseCompletions.WithLabelValues(metrics.StatusAlreadyCompleted).Inc()
		log.Info(LogMsgPhaseAlreadyDone, "player_id", playerID, "phase_id", phaseID)
		return outcomeFrom(res), nil
	}

	metrics.PhaseCompletions.WithLabelValues(metrics.StatusNew).Inc()
	log.Info(LogMsgPhaseCompleted, "player_id", playerID, "phase_id", phaseID,
		"coins", res.Outcome.Delta.Coins, "experience", res.Outcome.Delta.Experience,
		"grants", len(res.Grants), "attempts", res.Attempts)

	phaseCoins, phaseXP := res.Outcome.Delta.Coins, res.Outcome.Delta.Experience
	for _, g := range res.Grants {
		phaseCoins -= g.RewardCoins
	}
	s.publish(ctx, event.New(event.PhaseCompleted, event.PhaseCompletedPayloadV1{
		PlayerID:         playerID,
		PhaseID:          phaseID,
		RewardCoins:      phaseCoins,
		RewardExperience: phaseXP,
	}))
	s.publishProgress(ctx, res.Player, res.Outcome.Delta, res.Grants)
	return outcomeFrom(res), nil
}

// RecordBattle appends a battle for the player. Only a win pays its reward.
func (s *service) RecordBattle(ctx context.Context, in BattleInput) (*Outcome, error) {
	if _, err := access.RequireSelfOrPrivileged(ctx, in.PlayerID); err != nil {
		return nil, err
	}
	if err := s.validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	result, err := domain.ParseBattleResult(in.Result)
	if err != nil {
		return nil, err
	}

	res, err := s.applier.RecordBattle(ctx, in.PlayerID, progression.BattleInput{
		BossID:           in.BossID,
		Result:           result,
		RewardCoins:      in.RewardCoins,
		RewardExperience: in.RewardExperience,
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info(LogMsgBattleRecorded, "player_id", in.PlayerID,
		"battle_id", res.Battle.ID, "result", result, "grants", len(res.Grants))

	s.publish(ctx, event.New(event.BattleRecorded, event.BattleRecordedPayloadV1{
		PlayerID:         in.PlayerID,
		BattleID:         res.Battle.ID,
		BossID:           res.Battle.BossID,
		Result:           string(res.Battle.Result),
		RewardCoins:      res.Battle.RewardCoins,
		RewardExperience: res.Battle.RewardExperience,
	}))
	s.publishProgress(ctx, res.Player, res.Outcome.Delta, res.Grants)
	return outcomeFrom(res), nil
}

// AcquireItem adds quantity of an item to the player's inventory
func (s *service) AcquireItem(ctx context.Context, playerID, itemID int64, quantity int) (*Outcome, error) {
	if _, err := access.RequireSelfOrPrivileged(ctx, playerID); err != nil {
		return nil, err
	}
	if itemID <= 0 {
		return nil, fmt.Errorf("%w: item_id is required", domain.ErrInvalidInput)
	}
	if quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", domain.ErrInvalidInput)
	}

	res, err := s.applier.AcquireItem(ctx, playerID, itemID, quantity)
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info(LogMsgItemAcquired, "player_id", playerID, "item_id", itemID,
		"quantity", quantity, "held", res.Inventory.Quantity)
	s.publish(ctx, event.New(event.ItemAcquired, event.InventoryChangedPayloadV1{
		PlayerID: playerID,
		ItemID:   itemID,
		Delta:    quantity,
		Quantity: res.Inventory.Quantity,
	}))
	return outcomeFrom(res), nil
}

// RemoveItem takes quantity of an item out of the player's inventory
func (s *service) RemoveItem(ctx context.Context, playerID, itemID int64, quantity int) (*domain.InventoryEntry, error) {
	if _, err := access.RequireSelfOrPrivileged(ctx, playerID); err != nil {
		return nil, err
	}
	if quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", domain.ErrInvalidInput)
	}

	entry, err := s.applier.RemoveItem(ctx, playerID, itemID, quantity)
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info(LogMsgItemRemoved, "player_id", playerID, "item_id", itemID,
		"quantity", quantity, "held", entry.Quantity)
	s.publish(ctx, event.New(event.ItemRemoved, event.InventoryChangedPayloadV1{
		PlayerID: playerID,
		ItemID:   itemID,
		Delta:    -quantity,
		Quantity: entry.Quantity,
	}))
	return entry, nil
}

// Override sets progress fields directly. Privileged callers only.
func (s *service) Override(ctx context.Context, playerID int64, override domain.PlayerOverride) (*domain.Player, error) {
	principal, err := access.RequirePrivileged(ctx)
	if err != nil {
		return nil, err
	}

	p, err := s.applier.Override(ctx, playerID, override)
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info(LogMsgPlayerOverridden, "player_id", playerID, "by", principal.ID,
		"experience", p.Experience, "coins", p.Coins, "level", p.Level)
	s.publish(ctx, event.New(event.PlayerOverridden, progressPayload(*p)).
		WithMetadata("overridden_by", principal.ID))
	return p, nil
}

// GetInventory lists the player's holdings
func (s *service) GetInventory(ctx context.Context, playerID int64) ([]domain.InventoryEntry, error) {
	if _, err := access.RequireSelfOrPrivileged(ctx, playerID); err != nil {
		return nil, err
	}
	if _, err := s.players.GetPlayerByID(ctx, playerID); err != nil {
		return nil, err
	}
	return s.progress.GetInventory(ctx, playerID)
}

// ListAchievements lists the player's grants. Grants are public.
func (s *service) ListAchievements(ctx context.Context, playerID int64) ([]domain.AchievementGrant, error) {
	if _, err := s.players.GetPlayerByID(ctx, playerID); err != nil {
		return nil, err
	}
	return s.progress.ListGrants(ctx, playerID)
}

// ListBattles lists the player's battles, newest first. limit 0 means the default.
func (s *service) ListBattles(ctx context.Context, playerID int64, limit int) ([]domain.BattleRecord, error) {
	if _, err := access.RequireSelfOrPrivileged(ctx, playerID); err != nil {
		return nil, err
	}
	if limit == 0 {
		limit = DefaultBattleLimit
	}
	if limit < 1 || limit > MaxBattleLimit {
		return nil, fmt.Errorf("%w: limit must be between 1 and %d", domain.ErrInvalidInput, MaxBattleLimit)
	}
	if _, err := s.players.GetPlayerByID(ctx, playerID); err != nil {
		return nil, err
	}
	return s.progress.ListBattles(ctx, playerID, limit)
}
