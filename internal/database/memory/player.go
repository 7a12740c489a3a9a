package memory

import (
	"context"

	"github.com/osse101/Bossforge_Go/internal/domain"
)

// PlayerRepository implements repository.Player
type PlayerRepository struct {
	s *Store
}

func (r *PlayerRepository) CreatePlayer(ctx context.Context, player *domain.Player) error {
	return r.s.write(ctx, func(d *data) error {
		for _, p := range d.players {
			if p.Username == player.Username || p.Email == player.Email {
				return domain.ErrDuplicate
			}
		}
		now := r.s.now()
		player.ID = d.next("players")
		player.CreatedAt = now
		player.SavedAt = now
		d.players[player.ID] = *player
		return nil
	})
}

func (r *PlayerRepository) GetPlayerByID(_ context.Context, id int64) (*domain.Player, error) {
	return r.find(func(p domain.Player) bool { return p.ID == id })
}

func (r *PlayerRepository) GetPlayerByUsername(_ context.Context, username string) (*domain.Player, error) {
	return r.find(func(p domain.Player) bool { return p.Username == username })
}

func (r *PlayerRepository) GetPlayerByEmail(_ context.Context, email string) (*domain.Player, error) {
	return r.find(func(p domain.Player) bool { return p.Email == email })
}

func (r *PlayerRepository) ListPlayers(context.Context) ([]domain.Player, error) {
	var out []domain.Player
	r.s.read(func(d *data) {
		out = sortedValues(d.players, func(p domain.Player) int64 { return p.ID })
	})
	return out, nil
}

func (r *PlayerRepository) find(match func(domain.Player) bool) (*domain.Player, error) {
	var found *domain.Player
	r.s.read(func(d *data) {
		for _, p := range d.players {
			if match(p) {
				found = &p
				return
			}
		}
	})
	if found == nil {
		return nil, domain.ErrPlayerNotFound
	}
	return found, nil
}
