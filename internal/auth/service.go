// Package auth turns credentials into verified principals: bcrypt password
// checks at login and signed, expiring access tokens afterwards.
package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/osse101/Bossforge_Go/internal/access"
	"github.com/osse101/Bossforge_Go/internal/domain"
	"github.com/osse101/Bossforge_Go/internal/logger"
	"github.com/osse101/Bossforge_Go/internal/repository"
)

// Session is the result of a successful login
type Session struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expires_at"`
	Player    domain.Player `json:"player"`
}

// Service defines the authentication interface
type Service interface {
	Login(ctx context.Context, username, password string) (*Session, error)
	Verify(ctx context.Context, token string) (access.Principal, error)
}

type service struct {
	players repository.Player
	tokens  *TokenService
}

// NewService creates an auth Service
func NewService(players repository.Player, tokens *TokenService) Service {
	return &service{players: players, tokens: tokens}
}

// Login checks the credentials and issues a token. Unknown usernames and wrong
// passwords fail the same way.
func (s *service) Login(ctx context.Context, username, password string) (*Session, error) {
	log := logger.FromContext(ctx)

	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnauthorized, ErrMsgBadCredentials)
	}

	player, err := s.players.GetPlayerByUsername(ctx, Fold(username))
	if err != nil {
		if domain.IsNotFound(err) {
			log.Warn(LogMsgLoginFailed, "reason", "unknown_username")
			return nil, fmt.Errorf("%w: %s", domain.ErrUnauthorized, ErrMsgBadCredentials)
		}
		return nil, err
	}
	if !CheckPassword(player.PasswordHash, password) {
		log.Warn(LogMsgLoginFailed, "reason", "bad_password", "player_id", player.ID)
		return nil, fmt.Errorf("%w: %s", domain.ErrUnauthorized, ErrMsgBadCredentials)
	}

	token, expiresAt, err := s.tokens.Issue(access.Principal{ID: player.ID, Privileged: player.IsAdmin})
	if err != nil {
		return nil, err
	}

	log.Info(LogMsgLoginSucceeded, "player_id", player.ID)
	return &Session{Token: token, ExpiresAt: expiresAt, Player: *player}, nil
}

func (s *service) Verify(_ context.Context, token string) (access.Principal, error) {
	return s.tokens.Verify(token)
}
