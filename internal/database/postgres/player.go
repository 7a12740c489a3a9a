package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/Bossforge_Go/internal/domain"
)

const playerColumns = `id, username, email, password_hash, is_admin, experience, coins, level, created_at, saved_at`

// PlayerRepository implements the player repository for PostgreSQL
type PlayerRepository struct {
	db *pgxpool.Pool
}

// NewPlayerRepository creates a new PlayerRepository
func NewPlayerRepository(db *pgxpool.Pool) *PlayerRepository {
	return &PlayerRepository{db: db}
}

// CreatePlayer inserts a player. Username and email must already be case-folded.
func (r *PlayerRepository) CreatePlayer(ctx context.Context, player *domain.Player) error {
	query := `
		INSERT INTO players (username, email, password_hash, is_admin, experience, coins, level)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, saved_at
	`
	err := r.db.QueryRow(ctx, query,
		player.Username, player.Email, player.PasswordHash, player.IsAdmin,
		player.Experience, player.Coins, player.Level,
	).Scan(&player.ID, &player.CreatedAt, &player.SavedAt)
	if err != nil {
		return wrapWriteError(ErrMsgFailedToInsertPlayer, err)
	}
	return nil
}

// GetPlayerByID returns domain.ErrPlayerNotFound when no row matches
func (r *PlayerRepository) GetPlayerByID(ctx context.Context, id int64) (*domain.Player, error) {
	return getPlayer(ctx, r.db, `SELECT `+playerColumns+` FROM players WHERE id = $1`, id)
}

// GetPlayerByUsername looks up a case-folded username
func (r *PlayerRepository) GetPlayerByUsername(ctx context.Context, username string) (*domain.Player, error) {
	return getPlayer(ctx, r.db, `SELECT `+playerColumns+` FROM players WHERE username = $1`, username)
}

// GetPlayerByEmail looks up a case-folded email
func (r *PlayerRepository) GetPlayerByEmail(ctx context.Context, email string) (*domain.Player, error) {
	return getPlayer(ctx, r.db, `SELECT `+playerColumns+` FROM players WHERE email = $1`, email)
}

// ListPlayers returns every player ordered by id
func (r *PlayerRepository) ListPlayers(ctx context.Context) ([]domain.Player, error) {
	rows, err := r.db.Query(ctx, `SELECT `+playerColumns+` FROM players ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListPlayers, err)
	}
	players, err := collect(rows, scanPlayer)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListPlayers, err)
	}
	return players, nil
}

func getPlayer(ctx context.Context, q querier, query string, arg any) (*domain.Player, error) {
	p, err := scanPlayer(q.QueryRow(ctx, query, arg))
	if err != nil {
		return nil, notFoundOr(domain.ErrPlayerNotFound, ErrMsgFailedToGetPlayer, err)
	}
	return &p, nil
}

func scanPlayer(row pgx.Row) (domain.Player, error) {
	var p domain.Player
	err := row.Scan(&p.ID, &p.Username, &p.Email, &p.PasswordHash, &p.IsAdmin,
		&p.Experience, &p.Coins, &p.Level, &p.CreatedAt, &p.SavedAt)
	return p, err
}
