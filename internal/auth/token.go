package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/Bossforge_Go/internal/access"
	"github.com/osse101/Bossforge_Go/internal/domain"
)

// Claims is the access token body. Subject carries the player id.
type Claims struct {
	jwt.RegisteredClaims
	Admin bool `json:"adm,omitempty"`
}

type verifiedToken struct {
	principal access.Principal
	expiresAt time.Time
}

// TokenService issues and verifies HS256 access tokens. Verified tokens are
// cached until they expire so repeated requests skip signature checks.
type TokenService struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
	cache  *expirable.LRU[string, verifiedToken]
}

// NewTokenService creates a TokenService. cacheSize 0 disables the cache.
func NewTokenService(secret, issuer string, ttl time.Duration, cacheSize int) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New(ErrMsgEmptySecret)
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	if issuer == "" {
		issuer = DefaultIssuer
	}

	s := &TokenService{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}
	if cacheSize > 0 {
		s.cache = expirable.NewLRU[string, verifiedToken](cacheSize, nil, ttl)
	}
	return s, nil
}

// TTL returns the lifetime of issued tokens
func (s *TokenService) TTL() time.Duration { return s.ttl }

// Issue signs a token for the principal
func (s *TokenService) Issue(p access.Principal) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.ttl)

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(p.ID, 10),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Admin: p.Privileged,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("%s: %w", ErrMsgSignToken, err)
	}
	return signed, expiresAt, nil
}

// Verify checks signature, issuer and expiry. Every failure is ErrUnauthorized.
func (s *TokenService) Verify(token string) (access.Principal, error) {
	if token == "" {
		return access.Principal{}, fmt.Errorf("%w: %s", domain.ErrUnauthorized, ErrMsgMissingToken)
	}

	if s.cache != nil {
		if v, ok := s.cache.Get(token); ok {
			if s.now().Before(v.expiresAt) {
				return v.principal, nil
			}
			s.cache.Remove(token)
		}
	}

	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return access.Principal{}, fmt.Errorf("%w: %s", domain.ErrUnauthorized, ErrMsgExpiredToken)
		}
		return access.Principal{}, fmt.Errorf("%w: %s", domain.ErrUnauthorized, ErrMsgInvalidToken)
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || id <= 0 {
		return access.Principal{}, fmt.Errorf("%w: %s", domain.ErrUnauthorized, ErrMsgInvalidSubject)
	}

	p := access.Principal{ID: id, Privileged: claims.Admin}
	if s.cache != nil {
		s.cache.Add(token, verifiedToken{principal: p, expiresAt: claims.ExpiresAt.Time})
	}
	return p, nil
}
