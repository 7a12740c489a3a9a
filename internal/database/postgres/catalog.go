package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/Bossforge_Go/internal/domain"
)

const (
	bossColumns        = `id, name, health`
	phaseColumns       = `id, name, description, boss_id, reward_coins, reward_experience`
	rarityColumns      = `id, name, color, description`
	itemColumns        = `id, name, description, power, rarity_id`
	achievementColumns = `id, name, xp_required, predicate, reward_coins, created_at`
)

// CatalogRepository implements the catalog repository for PostgreSQL
type CatalogRepository struct {
	db *pgxpool.Pool
}

// NewCatalogRepository creates a new CatalogRepository
func NewCatalogRepository(db *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// ---- Bosses ----

func (r *CatalogRepository) CreateBoss(ctx context.Context, boss *domain.Boss) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO bosses (name, health) VALUES ($1, $2) RETURNING id`,
		boss.Name, boss.Health,
	).Scan(&boss.ID)
	if err != nil {
		return wrapWriteError(ErrMsgFailedToInsertBoss, err)
	}
	return nil
}

func (r *CatalogRepository) GetBoss(ctx context.Context, id int64) (*domain.Boss, error) {
	return getBoss(ctx, r.db, id)
}

func (r *CatalogRepository) ListBosses(ctx context.Context) ([]domain.Boss, error) {
	rows, err := r.db.Query(ctx, `SELECT `+bossColumns+` FROM bosses ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListBosses, err)
	}
	bosses, err := collect(rows, scanBoss)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListBosses, err)
	}
	return bosses, nil
}

// ---- Phases ----

// CreatePhase inserts a phase. A boss_id that does not exist yields domain.ErrBossNotFound.
func (r *CatalogRepository) CreatePhase(ctx context.Context, phase *domain.Phase) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO phases (name, description, boss_id, reward_coins, reward_experience)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, phase.Name, phase.Description, phase.BossID, phase.RewardCoins, phase.RewardExperience).Scan(&phase.ID)
	if err != nil {
		if pgErrorCode(err) == PgErrorCodeForeignKeyViolation {
			return domain.ErrBossNotFound
		}
		return wrapWriteError(ErrMsgFailedToInsertPhase, err)
	}
	return nil
}

func (r *CatalogRepository) GetPhase(ctx context.Context, id int64) (*domain.Phase, error) {
	return getPhase(ctx, r.db, id)
}

func (r *CatalogRepository) ListPhases(ctx context.Context) ([]domain.Phase, error) {
	rows, err := r.db.Query(ctx, `SELECT `+phaseColumns+` FROM phases ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListPhases, err)
	}
	phases, err := collect(rows, scanPhase)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListPhases, err)
	}
	return phases, nil
}

// ---- Rarities ----

func (r *CatalogRepository) CreateRarity(ctx context.Context, rarity *domain.Rarity) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO rarities (name, color, description) VALUES ($1, $2, $3) RETURNING id`,
		rarity.Name, rarity.Color, rarity.Description,
	).Scan(&rarity.ID)
	if err != nil {
		return wrapWriteError(ErrMsgFailedToInsertRarity, err)
	}
	return nil
}

func (r *CatalogRepository) GetRarity(ctx context.Context, id int64) (*domain.Rarity, error) {
	rr, err := scanRarity(r.db.QueryRow(ctx, `SELECT `+rarityColumns+` FROM rarities WHERE id = $1`, id))
	if err != nil {
		return nil, notFoundOr(domain.ErrRarityNotFound, ErrMsgFailedToGetRarity, err)
	}
	return &rr, nil
}

func (r *CatalogRepository) ListRarities(ctx context.Context) ([]domain.Rarity, error) {
	rows, err := r.db.Query(ctx, `SELECT `+rarityColumns+` FROM rarities ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListRarities, err)
	}
	rarities, err := collect(rows, scanRarity)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListRarities, err)
	}
	return rarities, nil
}

// ---- Items ----

// CreateItem inserts an item. A rarity_id that does not exist yields domain.ErrRarityNotFound.
func (r *CatalogRepository) CreateItem(ctx context.Context, item *domain.Item) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO items (name, description, power, rarity_id) VALUES ($1, $2, $3, $4) RETURNING id`,
		item.Name, item.Description, item.Power, item.RarityID,
	).Scan(&item.ID)
	if err != nil {
		return wrapRefWriteError(ErrMsgFailedToInsertItem, err, domain.ErrRarityNotFound)
	}
	return nil
}

func (r *CatalogRepository) GetItem(ctx context.Context, id int64) (*domain.Item, error) {
	return getItem(ctx, r.db, id)
}

func (r *CatalogRepository) ListItems(ctx context.Context) ([]domain.Item, error) {
	rows, err := r.db.Query(ctx, `SELECT `+itemColumns+` FROM items ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListItems, err)
	}
	items, err := collect(rows, scanItem)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListItems, err)
	}
	return items, nil
}

// UpdateItem rewrites an item that no inventory references
func (r *CatalogRepository) UpdateItem(ctx context.Context, item domain.Item) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	defer SafeRollback(ctx, tx)

	var id int64
	if err := tx.QueryRow(ctx, `SELECT id FROM items WHERE id = $1 FOR UPDATE`, item.ID).Scan(&id); err != nil {
		return notFoundOr(domain.ErrItemNotFound, ErrMsgFailedToUpdateItem, err)
	}
	if err := ensureItemUnreferenced(ctx, tx, item.ID); err != nil {
		return err
	}

	_, err = tx.Exec(ctx,
		`UPDATE items SET name = $2, description = $3, power = $4, rarity_id = $5 WHERE id = $1`,
		item.ID, item.Name, item.Description, item.Power, item.RarityID,
	)
	if err != nil {
		return wrapRefWriteError(ErrMsgFailedToUpdateItem, err, domain.ErrRarityNotFound)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToCommitTransaction, err)
	}
	return nil
}

// DeleteItem removes an item that no inventory references
func (r *CatalogRepository) DeleteItem(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		if pgErrorCode(err) == PgErrorCodeForeignKeyViolation {
			return domain.ErrItemInUse
		}
		return fmt.Errorf("%s: %w", ErrMsgFailedToDeleteItem, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

func ensureItemUnreferenced(ctx context.Context, q querier, itemID int64) error {
	var referenced bool
	err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM inventory_entries WHERE item_id = $1)`, itemID).Scan(&referenced)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToGetInventory, err)
	}
	if referenced {
		return domain.ErrItemInUse
	}
	return nil
}

// ---- Achievements ----

func (r *CatalogRepository) CreateAchievement(ctx context.Context, a *domain.Achievement) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO achievements (name, xp_required, predicate, reward_coins)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, a.Name, a.XPRequired, a.Predicate, a.RewardCoins).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		return wrapWriteError(ErrMsgFailedToInsertAchievement, err)
	}
	return nil
}

func (r *CatalogRepository) GetAchievement(ctx context.Context, id int64) (*domain.Achievement, error) {
	a, err := scanAchievement(r.db.QueryRow(ctx, `SELECT `+achievementColumns+` FROM achievements WHERE id = $1`, id))
	if err != nil {
		return nil, notFoundOr(domain.ErrAchievementNotFound, ErrMsgFailedToGetAchievement, err)
	}
	return &a, nil
}

func (r *CatalogRepository) ListAchievements(ctx context.Context) ([]domain.Achievement, error) {
	return listAchievements(ctx, r.db)
}

func (r *CatalogRepository) UpdateAchievement(ctx context.Context, a domain.Achievement) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE achievements SET name = $2, xp_required = $3, predicate = $4, reward_coins = $5
		WHERE id = $1
	`, a.ID, a.Name, a.XPRequired, a.Predicate, a.RewardCoins)
	if err != nil {
		return wrapWriteError(ErrMsgFailedToUpdateAchievement, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAchievementNotFound
	}
	return nil
}

// DeleteAchievement removes the achievement; grants go with it via ON DELETE CASCADE
func (r *CatalogRepository) DeleteAchievement(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM achievements WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToDeleteAchievement, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAchievementNotFound
	}
	return nil
}

// ---- shared readers, used by the repository and by progress transactions ----

func getBoss(ctx context.Context, q querier, id int64) (*domain.Boss, error) {
	b, err := scanBoss(q.QueryRow(ctx, `SELECT `+bossColumns+` FROM bosses WHERE id = $1`, id))
	if err != nil {
		return nil, notFoundOr(domain.ErrBossNotFound, ErrMsgFailedToGetBoss, err)
	}
	return &b, nil
}

func getPhase(ctx context.Context, q querier, id int64) (*domain.Phase, error) {
	p, err := scanPhase(q.QueryRow(ctx, `SELECT `+phaseColumns+` FROM phases WHERE id = $1`, id))
	if err != nil {
		return nil, notFoundOr(domain.ErrPhaseNotFound, ErrMsgFailedToGetPhase, err)
	}
	return &p, nil
}

func getItem(ctx context.Context, q querier, id int64) (*domain.Item, error) {
	it, err := scanItem(q.QueryRow(ctx, `SELECT `+itemColumns+` FROM items WHERE id = $1`, id))
	if err != nil {
		return nil, notFoundOr(domain.ErrItemNotFound, ErrMsgFailedToGetItem, err)
	}
	return &it, nil
}

func listAchievements(ctx context.Context, q querier) ([]domain.Achievement, error) {
	rows, err := q.Query(ctx, `SELECT `+achievementColumns+` FROM achievements ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListAchievements, err)
	}
	achievements, err := collect(rows, scanAchievement)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListAchievements, err)
	}
	return achievements, nil
}

func scanBoss(row pgx.Row) (domain.Boss, error) {
	var b domain.Boss
	err := row.Scan(&b.ID, &b.Name, &b.Health)
	return b, err
}

func scanPhase(row pgx.Row) (domain.Phase, error) {
	var p domain.Phase
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.BossID, &p.RewardCoins, &p.RewardExperience)
	return p, err
}

func scanItem(row pgx.Row) (domain.Item, error) {
	var it domain.Item
	err := row.Scan(&it.ID, &it.Name, &it.Description, &it.Power, &it.RarityID)
	return it, err
}

func scanRarity(row pgx.Row) (domain.Rarity, error) {
	var rr domain.Rarity
	err := row.Scan(&rr.ID, &rr.Name, &rr.Color, &rr.Description)
	return rr, err
}

func scanAchievement(row pgx.Row) (domain.Achievement, error) {
	var a domain.Achievement
	err := row.Scan(&a.ID, &a.Name, &a.XPRequired, &a.Predicate, &a.RewardCoins, &a.CreatedAt)
	return a, err
}
