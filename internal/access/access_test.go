package access

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/Bossforge_Go/internal/domain"
	"github.com/osse101/Bossforge_Go/internal/metrics"
)

func TestAuthorize(t *testing.T) {
	tests := []struct {
		name      string
		principal Principal
		target    int64
		want      Decision
	}{
		{"owner", Principal{ID: 7}, 7, Allowed},
		{"other player", Principal{ID: 7}, 8, Denied},
		{"privileged other", Principal{ID: 1, Privileged: true}, 8, Allowed},
		{"privileged self", Principal{ID: 8, Privileged: true}, 8, Allowed},
		{"zero principal", Principal{}, 8, Denied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Authorize(tt.principal, tt.target))
		})
	}
}

func TestRequireSelfOrPrivileged(t *testing.T) {
	ctx := context.Background()

	_, err := RequireSelfOrPrivileged(ctx, 1)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	before := testutil.ToFloat64(metrics.AccessDenied.WithLabelValues(ReasonNotOwner))
	_, err = RequireSelfOrPrivileged(WithPrincipal(ctx, Principal{ID: 2}), 1)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.AccessDenied.WithLabelValues(ReasonNotOwner)))

	p, err := RequireSelfOrPrivileged(WithPrincipal(ctx, Principal{ID: 1}), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.ID)
}

func TestRequirePrivileged(t *testing.T) {
	ctx := context.Background()

	_, err := RequirePrivileged(ctx)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = RequirePrivileged(WithPrincipal(ctx, Principal{ID: 3}))
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = RequirePrivileged(WithPrincipal(ctx, System))
	assert.NoError(t, err)
}

func TestIsSelfOrPrivileged(t *testing.T) {
	ctx := context.Background()
	assert.False(t, IsSelfOrPrivileged(ctx, 1))
	assert.True(t, IsSelfOrPrivileged(WithPrincipal(ctx, Principal{ID: 1}), 1))
	assert.False(t, IsSelfOrPrivileged(WithPrincipal(ctx, Principal{ID: 2}), 1))
	assert.True(t, IsSelfOrPrivileged(WithPrincipal(ctx, Principal{ID: 2, Privileged: true}), 1))
}

func TestRequest_StateMachine(t *testing.T) {
	ctx := context.Background()

	t.Run("identified owner is authorized", func(t *testing.T) {
		r := NewRequest()
		assert.Equal(t, StateUnauthenticated, r.State())
		require.NoError(t, r.Identify(Principal{ID: 4}))
		assert.Equal(t, StateIdentified, r.State())
		require.NoError(t, r.AuthorizeFor(ctx, 4))
		assert.Equal(t, StateAuthorized, r.State())
		assert.True(t, r.State().Terminal())
	})

	t.Run("identified stranger is forbidden", func(t *testing.T) {
		r := NewRequest()
		require.NoError(t, r.Identify(Principal{ID: 4}))
		assert.ErrorIs(t, r.AuthorizeFor(ctx, 5), domain.ErrForbidden)
		assert.Equal(t, StateForbidden, r.State())
	})

	t.Run("non-privileged admin path is forbidden", func(t *testing.T) {
		r := NewRequest()
		require.NoError(t, r.Identify(Principal{ID: 4}))
		assert.ErrorIs(t, r.AuthorizePrivileged(ctx), domain.ErrForbidden)
	})

	t.Run("bad credential is unauthorized", func(t *testing.T) {
		r := NewRequest()
		assert.ErrorIs(t, r.Reject(), domain.ErrUnauthorized)
		assert.Equal(t, StateUnauthorized, r.State())
	})

	t.Run("terminal states do not move", func(t *testing.T) {
		r := NewRequest()
		require.NoError(t, r.Identify(Principal{ID: 4}))
		require.NoError(t, r.AuthorizeFor(ctx, 4))

		assert.ErrorIs(t, r.Identify(Principal{ID: 9}), domain.ErrInvalidInput)
		assert.ErrorIs(t, r.AuthorizeFor(ctx, 4), domain.ErrInvalidInput)
		assert.Equal(t, int64(4), r.Principal().ID)
	})

	t.Run("authorization requires identification", func(t *testing.T) {
		r := NewRequest()
		assert.ErrorIs(t, r.AuthorizeFor(ctx, 1), domain.ErrInvalidInput)
		assert.Equal(t, StateUnauthenticated, r.State())
	})
}
