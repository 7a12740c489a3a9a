// Package access decides whether a principal may act on a player resource.
// Owners act on their own records; privileged principals act on any record and
// may use the administrative paths owners cannot.
package access

import (
	"context"
	"fmt"

	"github.com/osse101/Bossforge_Go/internal/domain"
	"github.com/osse101/Bossforge_Go/internal/logger"
	"github.com/osse101/Bossforge_Go/internal/metrics"
)

// Principal is a verified caller identity
type Principal struct {
	ID         int64 `json:"id"`
	Privileged bool  `json:"privileged"`
}

// System is the principal used by in-process tooling such as the seeder
var System = Principal{Privileged: true}

// Decision is the outcome of an ownership check
type Decision int

const (
	Denied Decision = iota
	Allowed
)

func (d Decision) String() string {
	if d == Allowed {
		return "allowed"
	}
	return "denied"
}

// Authorize allows the target's owner and any privileged principal
func Authorize(p Principal, targetPlayerID int64) Decision {
	if p.Privileged || p.ID == targetPlayerID {
		return Allowed
	}
	return Denied
}

type principalKey struct{}

// WithPrincipal attaches a verified principal to the context
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// FromContext returns the principal attached by WithPrincipal
func FromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}

// RequireSelfOrPrivileged resolves the caller and checks it against the target
// player. It must run before any store mutation.
func RequireSelfOrPrivileged(ctx context.Context, targetPlayerID int64) (Principal, error) {
	p, ok := FromContext(ctx)
	if !ok {
		return deny(ctx, Principal{}, ReasonUnauthenticated, domain.ErrUnauthorized, targetPlayerID)
	}
	if Authorize(p, targetPlayerID) == Denied {
		return deny(ctx, p, ReasonNotOwner, domain.ErrForbidden, targetPlayerID)
	}
	return p, nil
}

// RequirePrivileged resolves the caller and requires privileged status
func RequirePrivileged(ctx context.Context) (Principal, error) {
	p, ok := FromContext(ctx)
	if !ok {
		return deny(ctx, Principal{}, ReasonUnauthenticated, domain.ErrUnauthorized, 0)
	}
	if !p.Privileged {
		return deny(ctx, p, ReasonNotPrivileged, domain.ErrForbidden, 0)
	}
	return p, nil
}

// IsSelfOrPrivileged reports whether the context's principal may see the
// target's sensitive fields. It records nothing.
func IsSelfOrPrivileged(ctx context.Context, targetPlayerID int64) bool {
	p, ok := FromContext(ctx)
	return ok && Authorize(p, targetPlayerID) == Allowed
}

func deny(ctx context.Context, p Principal, reason string, err error, target int64) (Principal, error) {
	metrics.AccessDenied.WithLabelValues(reason).Inc()
	logger.FromContext(ctx).Warn(LogMsgAccessDenied,
		"principal_id", p.ID, "target_player_id", target, "reason", reason)
	return Principal{}, fmt.Errorf("%w: %s", err, reason)
}
