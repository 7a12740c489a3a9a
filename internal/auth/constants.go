package auth

import "time"

const (
	DefaultIssuer   = "bossforge"
	DefaultTokenTTL = 30 * time.Minute

	// MaxPasswordBytes is the bcrypt input limit
	MaxPasswordBytes = 72
)

// Error messages
const (
	ErrMsgEmptySecret     = "token secret must not be empty"
	ErrMsgSignToken       = "failed to sign token"
	ErrMsgMissingToken    = "missing token"
	ErrMsgInvalidToken    = "invalid token"
	ErrMsgExpiredToken    = "token expired"
	ErrMsgInvalidSubject  = "invalid token subject"
	ErrMsgHashPassword    = "failed to hash password"
	ErrMsgPasswordTooLong = "password exceeds 72 bytes"
	ErrMsgBadCredentials  = "invalid username or password"
)

// Log messages
const (
	LogMsgLoginSucceeded = "Player logged in"
	LogMsgLoginFailed    = "Login failed"
)
