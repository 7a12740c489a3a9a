package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/cases"

	"github.com/osse101/Bossforge_Go/internal/domain"
)

// HashPassword returns the bcrypt hash of password
func HashPassword(password string) (string, error) {
	if len(password) > MaxPasswordBytes {
		return "", fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgPasswordTooLong)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", ErrMsgHashPassword, err)
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches hash
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Fold case-folds a username or email so lookups and uniqueness ignore case.
// A Caser is stateful, so each call gets its own.
func Fold(s string) string {
	return cases.Fold().String(s)
}
