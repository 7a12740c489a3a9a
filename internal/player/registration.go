package player

import (
	"context"
	"fmt"
	"strings"

	"github.com/osse101/Bossforge_Go/internal/access"
	"github.com/osse101/Bossforge_Go/internal/auth"
	"github.com/osse101/Bossforge_Go/internal/domain"
	"github.com/osse101/Bossforge_Go/internal/event"
	"github.com/osse101/Bossforge_Go/internal/logger"
)

// Register creates a player. Username and email are stored case-folded, so
// uniqueness ignores case.
func (s *service) Register(ctx context.Context, in RegisterInput) (*domain.Player, error) {
	log := logger.FromContext(ctx)

	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	if err := s.validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if in.Privileged {
		if _, err := access.RequirePrivileged(ctx); err != nil {
			return nil, err
		}
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	p := &domain.Player{
		Username:     auth.Fold(in.Username),
		Email:        auth.Fold(in.Email),
		PasswordHash: hash,
		IsAdmin:      in.Privileged,
	}
	if err := s.players.CreatePlayer(ctx, p); err != nil {
		return nil, err
	}

	log.Info(LogMsgPlayerRegistered, "player_id", p.ID, "username", p.Username)
	s.publish(ctx, event.New(event.PlayerRegistered, progressPayload(*p)))
	return p, nil
}

// GetPlayer returns the full record to the owner or a privileged caller and
// the public view to anyone else authenticated.
func (s *service) GetPlayer(ctx context.Context, playerID int64) (*domain.Player, error) {
	if _, ok := access.FromContext(ctx); !ok {
		return nil, domain.ErrUnauthorized
	}

	p, err := s.players.GetPlayerByID(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if !access.IsSelfOrPrivileged(ctx, playerID) {
		public := p.PublicView()
		return &public, nil
	}
	return p, nil
}
