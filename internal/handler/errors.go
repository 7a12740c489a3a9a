package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgInvalidID             = "Invalid %s"
	ErrMsgInvalidLimit          = "Invalid limit parameter"
	ErrMsgInvalidQuantity       = "Invalid quantity parameter"
	ErrMsgLeaderboardDisabled   = "Leaderboard is not enabled"
)

// User-facing messages derived from the domain error kinds
const (
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgNotFound           = "Resource not found"
	ErrMsgForbidden          = "You are not allowed to do that"
	ErrMsgUnauthorized       = "Authentication required"
	ErrMsgConflict           = "The request conflicts with the current state"
	ErrMsgInvalidInput       = "Invalid request. Please check your inputs."

	ErrMsgPlayerNotFound      = "Player not found"
	ErrMsgPhaseNotFound       = "Phase not found"
	ErrMsgBossNotFound        = "Boss not found"
	ErrMsgItemNotFound        = "Item not found"
	ErrMsgRarityNotFound      = "Rarity not found"
	ErrMsgAchievementNotFound = "Achievement not found"
	ErrMsgNotInInventory      = "You don't have that item"
	ErrMsgInsufficientItems   = "Not enough items"
	ErrMsgItemInUse           = "Item is held by a player and cannot be changed"
	ErrMsgDuplicate           = "Already exists"
	ErrMsgBadCredentials      = "Invalid username or password"
	ErrMsgRetryLater          = "Too many concurrent updates. Please try again."
)

// Success messages
const (
	MsgAchievementDeleted = "Achievement deleted"
)
