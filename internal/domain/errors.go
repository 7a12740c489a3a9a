package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Not found errors
	ErrMsgPlayerNotFound      = "player not found"
	ErrMsgPhaseNotFound       = "phase not found"
	ErrMsgBossNotFound        = "boss not found"
	ErrMsgItemNotFound        = "item not found"
	ErrMsgRarityNotFound      = "rarity not found"
	ErrMsgAchievementNotFound = "achievement not found"

	// Access errors
	ErrMsgForbidden    = "forbidden"
	ErrMsgUnauthorized = "unauthorized"

	// Consistency errors
	ErrMsgConflict  = "conflicting concurrent update"
	ErrMsgDuplicate = "already exists"

	// Inventory errors
	ErrMsgNotInInventory       = "item not in inventory"
	ErrMsgInsufficientQuantity = "insufficient quantity"
	ErrMsgItemInUse            = "item is referenced by an inventory"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrPlayerNotFound      = errors.New(ErrMsgPlayerNotFound)
	ErrPhaseNotFound       = errors.New(ErrMsgPhaseNotFound)
	ErrBossNotFound        = errors.New(ErrMsgBossNotFound)
	ErrItemNotFound        = errors.New(ErrMsgItemNotFound)
	ErrRarityNotFound      = errors.New(ErrMsgRarityNotFound)
	ErrAchievementNotFound = errors.New(ErrMsgAchievementNotFound)

	ErrForbidden    = errors.New(ErrMsgForbidden)
	ErrUnauthorized = errors.New(ErrMsgUnauthorized)

	// ErrConflict is returned when a racing writer kept winning after every retry
	ErrConflict = errors.New(ErrMsgConflict)
	// ErrDuplicate is a uniqueness violation reported by the store
	ErrDuplicate = errors.New(ErrMsgDuplicate)

	ErrNotInInventory       = errors.New(ErrMsgNotInInventory)
	ErrInsufficientQuantity = errors.New(ErrMsgInsufficientQuantity)
	ErrItemInUse            = errors.New(ErrMsgItemInUse)

	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)

// ErrorKind is the caller-facing failure class
type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindNotFound
	KindForbidden
	KindUnauthorized
	KindConflict
	KindInvalidInput
)

// String returns the kind name
func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindForbidden:
		return "forbidden"
	case KindUnauthorized:
		return "unauthorized"
	case KindConflict:
		return "conflict"
	case KindInvalidInput:
		return "invalid_input"
	default:
		return "internal"
	}
}

// Kind classifies err into the failure taxonomy
func Kind(err error) ErrorKind {
	switch {
	case err == nil:
		return KindInternal
	case IsNotFound(err):
		return KindNotFound
	case errors.Is(err, ErrForbidden):
		return KindForbidden
	case errors.Is(err, ErrUnauthorized):
		return KindUnauthorized
	case errors.Is(err, ErrConflict), errors.Is(err, ErrDuplicate), errors.Is(err, ErrItemInUse):
		return KindConflict
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrNotInInventory), errors.Is(err, ErrInsufficientQuantity):
		return KindInvalidInput
	default:
		return KindInternal
	}
}

// IsNotFound checks if an error is a not-found type error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrPlayerNotFound) ||
		errors.Is(err, ErrPhaseNotFound) ||
		errors.Is(err, ErrBossNotFound) ||
		errors.Is(err, ErrItemNotFound) ||
		errors.Is(err, ErrRarityNotFound) ||
		errors.Is(err, ErrAchievementNotFound)
}
