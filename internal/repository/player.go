package repository

import (
	"context"

	"github.com/osse101/Bossforge_Go/internal/domain"
)

// Player defines the interface for player persistence
type Player interface {
	// CreatePlayer inserts a player and fills in its ID and timestamps.
	// Username and email uniqueness is case-insensitive; a clash returns domain.ErrDuplicate.
	CreatePlayer(ctx context.Context, player *domain.Player) error
	GetPlayerByID(ctx context.Context, id int64) (*domain.Player, error)
	GetPlayerByUsername(ctx context.Context, username string) (*domain.Player, error)
	GetPlayerByEmail(ctx context.Context, email string) (*domain.Player, error)
	ListPlayers(ctx context.Context) ([]domain.Player, error)
}
