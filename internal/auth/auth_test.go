package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/Bossforge_Go/internal/access"
	"github.com/osse101/Bossforge_Go/internal/database/memory"
	"github.com/osse101/Bossforge_Go/internal/domain"
)

func newTokens(t *testing.T, cacheSize int) *TokenService {
	t.Helper()
	ts, err := NewTokenService("test-secret", "bossforge-test", time.Minute, cacheSize)
	require.NoError(t, err)
	return ts
}

func TestNewTokenService_RequiresSecret(t *testing.T) {
	_, err := NewTokenService("", "", time.Minute, 0)
	assert.EqualError(t, err, ErrMsgEmptySecret)

	ts, err := NewTokenService("s", "", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultTokenTTL, ts.TTL())
}

func TestTokenService_RoundTrip(t *testing.T) {
	for _, size := range []int{0, 16} {
		ts := newTokens(t, size)

		token, expiresAt, err := ts.Issue(access.Principal{ID: 42, Privileged: true})
		require.NoError(t, err)
		assert.WithinDuration(t, time.Now().Add(time.Minute), expiresAt, 2*time.Second)

		p, err := ts.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, access.Principal{ID: 42, Privileged: true}, p)

		// second verify may come from the cache
		p, err = ts.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, int64(42), p.ID)
	}
}

func TestTokenService_Rejects(t *testing.T) {
	ts := newTokens(t, 16)

	t.Run("empty", func(t *testing.T) {
		_, err := ts.Verify("")
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := ts.Verify("not-a-jwt")
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other, err := NewTokenService("other-secret", "bossforge-test", time.Minute, 0)
		require.NoError(t, err)
		token, _, err := other.Issue(access.Principal{ID: 1})
		require.NoError(t, err)

		_, err = ts.Verify(token)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		other, err := NewTokenService("test-secret", "someone-else", time.Minute, 0)
		require.NoError(t, err)
		token, _, err := other.Issue(access.Principal{ID: 1})
		require.NoError(t, err)

		_, err = ts.Verify(token)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("alg none", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "1",
				Issuer:    "bossforge-test",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
			Admin: true,
		}).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = ts.Verify(token)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("bad subject", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "abc",
				Issuer:    "bossforge-test",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}).SignedString([]byte("test-secret"))
		require.NoError(t, err)

		_, err = ts.Verify(token)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})
}

func TestTokenService_Expiry(t *testing.T) {
	ts := newTokens(t, 16)
	now := time.Now()
	ts.now = func() time.Time { return now }

	token, _, err := ts.Issue(access.Principal{ID: 5})
	require.NoError(t, err)

	_, err = ts.Verify(token)
	require.NoError(t, err)

	// cached entries must not outlive the token
	now = now.Add(2 * time.Minute)
	_, err = ts.Verify(token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Contains(t, err.Error(), ErrMsgExpiredToken)
}

func TestPasswords(t *testing.T) {
	hash, err := HashPassword("hunter22")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", hash)
	assert.True(t, CheckPassword(hash, "hunter22"))
	assert.False(t, CheckPassword(hash, "hunter23"))

	_, err = HashPassword(string(make([]byte, MaxPasswordBytes+1)))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestFold(t *testing.T) {
	assert.Equal(t, Fold("Alice"), Fold("ALICE"))
	assert.Equal(t, "alice@example.com", Fold("Alice@Example.COM"))
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	hash, err := HashPassword("secret1")
	require.NoError(t, err)
	require.NoError(t, store.Players().CreatePlayer(ctx, &domain.Player{
		Username: "alice", Email: "alice@example.com", PasswordHash: hash, IsAdmin: true,
	}))

	svc := NewService(store.Players(), newTokens(t, 16))

	t.Run("success is case-insensitive on username", func(t *testing.T) {
		session, err := svc.Login(ctx, "Alice", "secret1")
		require.NoError(t, err)
		assert.NotEmpty(t, session.Token)
		assert.Equal(t, "alice", session.Player.Username)

		p, err := svc.Verify(ctx, session.Token)
		require.NoError(t, err)
		assert.Equal(t, session.Player.ID, p.ID)
		assert.True(t, p.Privileged)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "alice", "nope")
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.Login(ctx, "bob", "secret1")
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("missing fields", func(t *testing.T) {
		_, err := svc.Login(ctx, " ", "")
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})
}
