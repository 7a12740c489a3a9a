package access

import (
	"context"
	"fmt"

	"github.com/osse101/Bossforge_Go/internal/domain"
)

// State is a step of the per-request authorization flow
type State int

const (
	StateUnauthenticated State = iota
	StateIdentified
	StateAuthorized
	StateForbidden
	StateUnauthorized
)

func (s State) String() string {
	switch s {
	case StateUnauthenticated:
		return "unauthenticated"
	case StateIdentified:
		return "identified"
	case StateAuthorized:
		return "authorized"
	case StateForbidden:
		return "forbidden"
	case StateUnauthorized:
		return "unauthorized"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Terminal reports whether no further transition is possible
func (s State) Terminal() bool {
	return s == StateAuthorized || s == StateForbidden || s == StateUnauthorized
}

// Request walks one incoming request through
// Unauthenticated -> Identified -> Authorized | Forbidden, with Unauthorized
// reachable from Unauthenticated when the credential fails.
type Request struct {
	state     State
	principal Principal
}

// NewRequest starts a request in StateUnauthenticated
func NewRequest() *Request {
	return &Request{}
}

// State returns the current state
func (r *Request) State() State { return r.state }

// Principal returns the identified principal. It is the zero value before Identify.
func (r *Request) Principal() Principal { return r.principal }

// Identify records a verified credential
func (r *Request) Identify(p Principal) error {
	if r.state != StateUnauthenticated {
		return r.invalid(StateIdentified)
	}
	r.state = StateIdentified
	r.principal = p
	return nil
}

// Reject ends the request because the credential is missing, invalid or expired
func (r *Request) Reject() error {
	if r.state != StateUnauthenticated {
		return r.invalid(StateUnauthorized)
	}
	r.state = StateUnauthorized
	return domain.ErrUnauthorized
}

// AuthorizeFor runs the ownership check against the target player
func (r *Request) AuthorizeFor(ctx context.Context, targetPlayerID int64) error {
	return r.decide(func() (Principal, error) {
		return RequireSelfOrPrivileged(WithPrincipal(ctx, r.principal), targetPlayerID)
	})
}

// AuthorizePrivileged requires privileged status
func (r *Request) AuthorizePrivileged(ctx context.Context) error {
	return r.decide(func() (Principal, error) {
		return RequirePrivileged(WithPrincipal(ctx, r.principal))
	})
}

func (r *Request) decide(check func() (Principal, error)) error {
	if r.state != StateIdentified {
		return r.invalid(StateAuthorized)
	}
	if _, err := check(); err != nil {
		r.state = StateForbidden
		return err
	}
	r.state = StateAuthorized
	return nil
}

func (r *Request) invalid(to State) error {
	return fmt.Errorf("%w: cannot move from %s to %s", domain.ErrInvalidInput, r.state, to)
}
