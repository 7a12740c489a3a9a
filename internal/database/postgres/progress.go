package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/Bossforge_Go/internal/domain"
	"github.com/osse101/Bossforge_Go/internal/repository"
)

const battleColumns = `id, player_id, boss_id, result, reward_coins, reward_experience, created_at`

// ProgressRepository implements the progress repository for PostgreSQL
type ProgressRepository struct {
	db *pgxpool.Pool
}

// NewProgressRepository creates a new ProgressRepository
func NewProgressRepository(db *pgxpool.Pool) *ProgressRepository {
	return &ProgressRepository{db: db}
}

// GetInventory returns the player's entries with item names, ordered by item id
func (r *ProgressRepository) GetInventory(ctx context.Context, playerID int64) ([]domain.InventoryEntry, error) {
	rows, err := r.db.Query(ctx, `
		SELECT ie.player_id, ie.item_id, i.name, ie.quantity, ie.acquired_at
		FROM inventory_entries ie
		JOIN items i ON i.id = ie.item_id
		WHERE ie.player_id = $1
		ORDER BY ie.item_id
	`, playerID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetInventory, err)
	}
	entries, err := collect(rows, func(row pgx.Row) (domain.InventoryEntry, error) {
		var e domain.InventoryEntry
		err := row.Scan(&e.PlayerID, &e.ItemID, &e.ItemName, &e.Quantity, &e.AcquiredAt)
		return e, err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetInventory, err)
	}
	return entries, nil
}

// ListGrants returns the player's achievement grants in grant order
func (r *ProgressRepository) ListGrants(ctx context.Context, playerID int64) ([]domain.AchievementGrant, error) {
	rows, err := r.db.Query(ctx, `
		SELECT g.id, g.player_id, g.achievement_id, a.name, g.reward_coins, g.completed_at
		FROM achievement_grants g
		JOIN achievements a ON a.id = g.achievement_id
		WHERE g.player_id = $1
		ORDER BY g.id
	`, playerID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListGrants, err)
	}
	grants, err := collect(rows, func(row pgx.Row) (domain.AchievementGrant, error) {
		var g domain.AchievementGrant
		err := row.Scan(&g.ID, &g.PlayerID, &g.AchievementID, &g.AchievementName, &g.RewardCoins, &g.CompletedAt)
		return g, err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListGrants, err)
	}
	return grants, nil
}

// ListCompletions returns the player's phase completions in completion order
func (r *ProgressRepository) ListCompletions(ctx context.Context, playerID int64) ([]domain.PhaseCompletion, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, player_id, phase_id, completed, completed_at
		FROM phase_completions WHERE player_id = $1 ORDER BY id
	`, playerID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListCompletions, err)
	}
	completions, err := collect(rows, scanCompletion)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListCompletions, err)
	}
	return completions, nil
}

// ListBattles returns up to limit battles, newest first
func (r *ProgressRepository) ListBattles(ctx context.Context, playerID int64, limit int) ([]domain.BattleRecord, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+battleColumns+` FROM battle_records
		WHERE player_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`, playerID, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListBattles, err)
	}
	battles, err := collect(rows, func(row pgx.Row) (domain.BattleRecord, error) {
		var b domain.BattleRecord
		err := row.Scan(&b.ID, &b.PlayerID, &b.BossID, &b.Result, &b.RewardCoins, &b.RewardExperience, &b.CreatedAt)
		return b, err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListBattles, err)
	}
	return battles, nil
}

// BeginTx starts a progress transaction
func (r *ProgressRepository) BeginTx(ctx context.Context) (repository.ProgressTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	return &progressTx{tx: tx}, nil
}

// progressTx implements repository.ProgressTx on a pgx transaction
type progressTx struct {
	tx pgx.Tx
}

func (t *progressTx) Commit(ctx context.Context) error {
	if err := t.tx.Commit(ctx); err != nil {
		return wrapWriteError(ErrMsgFailedToCommitTransaction, err)
	}
	return nil
}

// Rollback is a no-op after Commit
func (t *progressTx) Rollback(ctx context.Context) error {
	if err := t.tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return err
	}
	return nil
}

func (t *progressTx) GetPlayerForUpdate(ctx context.Context, id int64) (*domain.Player, error) {
	p, err := scanPlayer(t.tx.QueryRow(ctx, `SELECT `+playerColumns+` FROM players WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		return nil, notFoundOr(domain.ErrPlayerNotFound, ErrMsgFailedToLockPlayer, err)
	}
	return &p, nil
}

func (t *progressTx) GetStats(ctx context.Context, playerID int64) (domain.PlayerStats, error) {
	var stats domain.PlayerStats
	err := t.tx.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM battle_records WHERE player_id = $1 AND result = 'win'),
			(SELECT COUNT(*) FROM phase_completions WHERE player_id = $1 AND completed)
	`, playerID).Scan(&stats.Wins, &stats.PhasesCompleted)
	if err != nil {
		return domain.PlayerStats{}, fmt.Errorf("%s: %w", ErrMsgFailedToGetPlayerStats, err)
	}
	return stats, nil
}

func (t *progressTx) UpdatePlayerProgress(ctx context.Context, playerID int64, progress domain.PlayerProgress) error {
	tag, err := t.tx.Exec(ctx, `
		UPDATE players SET experience = $2, coins = $3, level = $4, saved_at = NOW()
		WHERE id = $1
	`, playerID, progress.Experience, progress.Coins, progress.Level)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpdateProgress, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPlayerNotFound
	}
	return nil
}

func (t *progressTx) GetPhase(ctx context.Context, id int64) (*domain.Phase, error) {
	return getPhase(ctx, t.tx, id)
}

func (t *progressTx) GetBoss(ctx context.Context, id int64) (*domain.Boss, error) {
	return getBoss(ctx, t.tx, id)
}

func (t *progressTx) GetItem(ctx context.Context, id int64) (*domain.Item, error) {
	return getItem(ctx, t.tx, id)
}

func (t *progressTx) ListAchievements(ctx context.Context) ([]domain.Achievement, error) {
	return listAchievements(ctx, t.tx)
}

func (t *progressTx) GetCompletion(ctx context.Context, playerID, phaseID int64) (*domain.PhaseCompletion, error) {
	c, err := scanCompletion(t.tx.QueryRow(ctx, `
		SELECT id, player_id, phase_id, completed, completed_at
		FROM phase_completions WHERE player_id = $1 AND phase_id = $2
	`, playerID, phaseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetCompletion, err)
	}
	return &c, nil
}

func (t *progressTx) InsertCompletion(ctx context.Context, c *domain.PhaseCompletion) error {
	err := t.tx.QueryRow(ctx, `
		INSERT INTO phase_completions (player_id, phase_id, completed)
		VALUES ($1, $2, $3)
		RETURNING id, completed_at
	`, c.PlayerID, c.PhaseID, c.Completed).Scan(&c.ID, &c.CompletedAt)
	if err != nil {
		return wrapRefWriteError(ErrMsgFailedToInsertCompletion, err, domain.ErrPhaseNotFound)
	}
	return nil
}

func (t *progressTx) GrantedAchievementIDs(ctx context.Context, playerID int64) (map[int64]struct{}, error) {
	rows, err := t.tx.Query(ctx, `SELECT achievement_id FROM achievement_grants WHERE player_id = $1`, playerID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListGrants, err)
	}
	ids, err := collect(rows, func(row pgx.Row) (int64, error) {
		var id int64
		err := row.Scan(&id)
		return id, err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListGrants, err)
	}

	granted := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		granted[id] = struct{}{}
	}
	return granted, nil
}

func (t *progressTx) InsertGrant(ctx context.Context, g *domain.AchievementGrant) error {
	err := t.tx.QueryRow(ctx, `
		INSERT INTO achievement_grants (player_id, achievement_id, reward_coins)
		VALUES ($1, $2, $3)
		RETURNING id, completed_at
	`, g.PlayerID, g.AchievementID, g.RewardCoins).Scan(&g.ID, &g.CompletedAt)
	if err != nil {
		return wrapRefWriteError(ErrMsgFailedToInsertGrant, err, domain.ErrAchievementNotFound)
	}
	return nil
}

func (t *progressTx) InsertBattle(ctx context.Context, b *domain.BattleRecord) error {
	err := t.tx.QueryRow(ctx, `
		INSERT INTO battle_records (player_id, boss_id, result, reward_coins, reward_experience)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, b.PlayerID, b.BossID, string(b.Result), b.RewardCoins, b.RewardExperience).Scan(&b.ID, &b.CreatedAt)
	if err != nil {
		return wrapRefWriteError(ErrMsgFailedToInsertBattle, err, domain.ErrBossNotFound)
	}
	return nil
}

func (t *progressTx) AddInventory(ctx context.Context, playerID, itemID int64, quantity int) (*domain.InventoryEntry, error) {
	var e domain.InventoryEntry
	err := t.tx.QueryRow(ctx, `
		INSERT INTO inventory_entries (player_id, item_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (player_id, item_id) DO UPDATE
		SET quantity = inventory_entries.quantity + EXCLUDED.quantity
		RETURNING player_id, item_id, quantity, acquired_at
	`, playerID, itemID, quantity).Scan(&e.PlayerID, &e.ItemID, &e.Quantity, &e.AcquiredAt)
	if err != nil {
		if pgErrorCode(err) == PgErrorCodeForeignKeyViolation {
			return nil, domain.ErrItemNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToUpdateInventory, err)
	}
	return &e, nil
}

// RemoveInventory returns the remaining entry, with Quantity 0 once deleted
func (t *progressTx) RemoveInventory(ctx context.Context, playerID, itemID int64, quantity int) (*domain.InventoryEntry, error) {
	var e domain.InventoryEntry
	err := t.tx.QueryRow(ctx, `
		SELECT player_id, item_id, quantity, acquired_at
		FROM inventory_entries WHERE player_id = $1 AND item_id = $2
		FOR UPDATE
	`, playerID, itemID).Scan(&e.PlayerID, &e.ItemID, &e.Quantity, &e.AcquiredAt)
	if err != nil {
		return nil, notFoundOr(domain.ErrNotInInventory, ErrMsgFailedToGetInventory, err)
	}
	if e.Quantity < quantity {
		return nil, fmt.Errorf("%w: holding %d, removing %d", domain.ErrInsufficientQuantity, e.Quantity, quantity)
	}

	e.Quantity -= quantity
	if e.Quantity == 0 {
		_, err = t.tx.Exec(ctx, `DELETE FROM inventory_entries WHERE player_id = $1 AND item_id = $2`, playerID, itemID)
	} else {
		_, err = t.tx.Exec(ctx, `UPDATE inventory_entries SET quantity = $3 WHERE player_id = $1 AND item_id = $2`, playerID, itemID, e.Quantity)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToUpdateInventory, err)
	}
	return &e, nil
}

func scanCompletion(row pgx.Row) (domain.PhaseCompletion, error) {
	var c domain.PhaseCompletion
	err := row.Scan(&c.ID, &c.PlayerID, &c.PhaseID, &c.Completed, &c.CompletedAt)
	return c, err
}
