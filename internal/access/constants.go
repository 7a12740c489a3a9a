package access

// Denial reasons, used as the access_denied metric label
const (
	ReasonUnauthenticated = "unauthenticated"
	ReasonNotOwner        = "not_owner"
	ReasonNotPrivileged   = "not_privileged"
	ReasonInvalidToken    = "invalid_token"
)

const (
	LogMsgAccessDenied = "Access denied"
)
