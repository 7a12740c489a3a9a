package memory

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/osse101/Bossforge_Go/internal/domain"
	"github.com/osse101/Bossforge_Go/internal/repository"
)

// ErrTxDone is returned by operations on a committed or rolled back transaction
var ErrTxDone = errors.New("transaction already committed or rolled back")

// ProgressRepository implements repository.Progress
type ProgressRepository struct {
	s *Store
}

func (r *ProgressRepository) GetInventory(_ context.Context, playerID int64) ([]domain.InventoryEntry, error) {
	var out []domain.InventoryEntry
	r.s.read(func(d *data) {
		for k, e := range d.inventory {
			if k.playerID != playerID {
				continue
			}
			if it, ok := d.items[k.itemID]; ok {
				e.ItemName = it.Name
			}
			out = append(out, e)
		}
	})
	slices.SortFunc(out, func(a, b domain.InventoryEntry) int { return cmp.Compare(a.ItemID, b.ItemID) })
	return out, nil
}

func (r *ProgressRepository) ListGrants(_ context.Context, playerID int64) ([]domain.AchievementGrant, error) {
	var out []domain.AchievementGrant
	r.s.read(func(d *data) {
		for _, g := range sortedValues(d.grants, func(g domain.AchievementGrant) int64 { return g.ID }) {
			if g.PlayerID != playerID {
				continue
			}
			if a, ok := d.achievements[g.AchievementID]; ok {
				g.AchievementName = a.Name
			}
			out = append(out, g)
		}
	})
	return out, nil
}

func (r *ProgressRepository) ListCompletions(_ context.Context, playerID int64) ([]domain.PhaseCompletion, error) {
	var out []domain.PhaseCompletion
	r.s.read(func(d *data) {
		for _, c := range sortedValues(d.completions, func(c domain.PhaseCompletion) int64 { return c.ID }) {
			if c.PlayerID == playerID {
				out = append(out, c)
			}
		}
	})
	return out, nil
}

// ListBattles returns up to limit battles, newest first
func (r *ProgressRepository) ListBattles(_ context.Context, playerID int64, limit int) ([]domain.BattleRecord, error) {
	var out []domain.BattleRecord
	r.s.read(func(d *data) {
		for i := len(d.battles) - 1; i >= 0 && len(out) < limit; i-- {
			if d.battles[i].PlayerID == playerID {
				out = append(out, d.battles[i])
			}
		}
	})
	return out, nil
}

// BeginTx blocks until every other writer has finished or ctx is done.
// The returned transaction holds the store-wide writer lock until it ends.
func (r *ProgressRepository) BeginTx(ctx context.Context) (repository.ProgressTx, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := r.s.writer.Acquire(ctx, 1); err != nil {
		return nil, err
	}

	r.s.mu.RLock()
	work := r.s.d.clone()
	r.s.mu.RUnlock()

	return &progressTx{s: r.s, d: work}, nil
}

type progressTx struct {
	s    *Store
	d    *data
	done bool
}

func (t *progressTx) Commit(context.Context) error {
	if t.done {
		return ErrTxDone
	}
	t.done = true

	t.s.mu.Lock()
	t.s.d = t.d
	t.s.mu.Unlock()
	t.s.writer.Release(1)
	return nil
}

// Rollback is a no-op after Commit
func (t *progressTx) Rollback(context.Context) error {
	if t.done {
		return nil
	}
	t.done = true
	t.d = nil
	t.s.writer.Release(1)
	return nil
}

func (t *progressTx) GetPlayerForUpdate(_ context.Context, id int64) (*domain.Player, error) {
	if t.done {
		return nil, ErrTxDone
	}
	p, ok := t.d.players[id]
	if !ok {
		return nil, domain.ErrPlayerNotFound
	}
	return &p, nil
}

func (t *progressTx) GetStats(_ context.Context, playerID int64) (domain.PlayerStats, error) {
	if t.done {
		return domain.PlayerStats{}, ErrTxDone
	}
	var stats domain.PlayerStats
	for _, b := range t.d.battles {
		if b.PlayerID == playerID && b.Result == domain.BattleWin {
			stats.Wins++
		}
	}
	for _, c := range t.d.completions {
		if c.PlayerID == playerID && c.Completed {
			stats.PhasesCompleted++
		}
	}
	return stats, nil
}

func (t *progressTx) UpdatePlayerProgress(_ context.Context, playerID int64, progress domain.PlayerProgress) error {
	if t.done {
		return ErrTxDone
	}
	p, ok := t.d.players[playerID]
	if !ok {
		return domain.ErrPlayerNotFound
	}
	p.Experience = progress.Experience
	p.Coins = progress.Coins
	p.Level = progress.Level
	p.SavedAt = t.s.now()
	t.d.players[playerID] = p
	return nil
}

func (t *progressTx) GetPhase(_ context.Context, id int64) (*domain.Phase, error) {
	if t.done {
		return nil, ErrTxDone
	}
	if p := getPhase(t.d, id); p != nil {
		return p, nil
	}
	return nil, domain.ErrPhaseNotFound
}

func (t *progressTx) GetBoss(_ context.Context, id int64) (*domain.Boss, error) {
	if t.done {
		return nil, ErrTxDone
	}
	b, ok := t.d.bosses[id]
	if !ok {
		return nil, domain.ErrBossNotFound
	}
	return &b, nil
}

func (t *progressTx) GetItem(_ context.Context, id int64) (*domain.Item, error) {
	if t.done {
		return nil, ErrTxDone
	}
	if it := getItem(t.d, id); it != nil {
		return it, nil
	}
	return nil, domain.ErrItemNotFound
}

func (t *progressTx) ListAchievements(context.Context) ([]domain.Achievement, error) {
	if t.done {
		return nil, ErrTxDone
	}
	return listAchievements(t.d), nil
}

func (t *progressTx) GetCompletion(_ context.Context, playerID, phaseID int64) (*domain.PhaseCompletion, error) {
	if t.done {
		return nil, ErrTxDone
	}
	for _, c := range t.d.completions {
		if c.PlayerID == playerID && c.PhaseID == phaseID {
			return &c, nil
		}
	}
	return nil, nil
}

func (t *progressTx) InsertCompletion(_ context.Context, c *domain.PhaseCompletion) error {
	if t.done {
		return ErrTxDone
	}
	if _, ok := t.d.phases[c.PhaseID]; !ok {
		return domain.ErrPhaseNotFound
	}
	for _, existing := range t.d.completions {
		if existing.PlayerID == c.PlayerID && existing.PhaseID == c.PhaseID {
			return fmt.Errorf("phase completion (%d, %d): %w", c.PlayerID, c.PhaseID, domain.ErrDuplicate)
		}
	}
	c.ID = t.d.next("phase_completions")
	c.CompletedAt = t.s.now()
	t.d.completions[c.ID] = *c
	return nil
}

func (t *progressTx) GrantedAchievementIDs(_ context.Context, playerID int64) (map[int64]struct{}, error) {
	if t.done {
		return nil, ErrTxDone
	}
	granted := map[int64]struct{}{}
	for _, g := range t.d.grants {
		if g.PlayerID == playerID {
			granted[g.AchievementID] = struct{}{}
		}
	}
	return granted, nil
}

func (t *progressTx) InsertGrant(_ context.Context, g *domain.AchievementGrant) error {
	if t.done {
		return ErrTxDone
	}
	if _, ok := t.d.achievements[g.AchievementID]; !ok {
		return domain.ErrAchievementNotFound
	}
	for _, existing := range t.d.grants {
		if existing.PlayerID == g.PlayerID && existing.AchievementID == g.AchievementID {
			return fmt.Errorf("achievement grant (%d, %d): %w", g.PlayerID, g.AchievementID, domain.ErrDuplicate)
		}
	}
	g.ID = t.d.next("achievement_grants")
	g.CompletedAt = t.s.now()
	t.d.grants[g.ID] = *g
	return nil
}

func (t *progressTx) InsertBattle(_ context.Context, b *domain.BattleRecord) error {
	if t.done {
		return ErrTxDone
	}
	if b.BossID != nil {
		if _, ok := t.d.bosses[*b.BossID]; !ok {
			return domain.ErrBossNotFound
		}
	}
	b.ID = t.d.next("battle_records")
	b.CreatedAt = t.s.now()
	t.d.battles = append(t.d.battles, *b)
	return nil
}

func (t *progressTx) AddInventory(_ context.Context, playerID, itemID int64, quantity int) (*domain.InventoryEntry, error) {
	if t.done {
		return nil, ErrTxDone
	}
	if _, ok := t.d.items[itemID]; !ok {
		return nil, domain.ErrItemNotFound
	}
	key := inventoryKey{playerID: playerID, itemID: itemID}
	e, ok := t.d.inventory[key]
	if !ok {
		e = domain.InventoryEntry{PlayerID: playerID, ItemID: itemID, AcquiredAt: t.s.now()}
	}
	e.Quantity += quantity
	t.d.inventory[key] = e
	return &e, nil
}

func (t *progressTx) RemoveInventory(_ context.Context, playerID, itemID int64, quantity int) (*domain.InventoryEntry, error) {
	if t.done {
		return nil, ErrTxDone
	}
	key := inventoryKey{playerID: playerID, itemID: itemID}
	e, ok := t.d.inventory[key]
	if !ok {
		return nil, domain.ErrNotInInventory
	}
	if e.Quantity < quantity {
		return nil, fmt.Errorf("%w: holding %d, removing %d", domain.ErrInsufficientQuantity, e.Quantity, quantity)
	}
	e.Quantity -= quantity
	if e.Quantity == 0 {
		delete(t.d.inventory, key)
	} else {
		t.d.inventory[key] = e
	}
	return &e, nil
}
