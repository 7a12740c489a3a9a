package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks values that have no usable default
func (c *Config) Validate() error {
	var errs []error

	switch c.StoreDriver {
	case StoreDriverPostgres, StoreDriverMemory:
	default:
		errs = append(errs, fmt.Errorf("STORE_DRIVER must be %q or %q, got %q",
			StoreDriverPostgres, StoreDriverMemory, c.StoreDriver))
	}
	if strings.TrimSpace(c.JWTSecret) == "" {
		errs = append(errs, errors.New("JWT_SECRET environment variable must be set for security"))
	}
	if c.ApplyMaxAttempts < 1 {
		errs = append(errs, fmt.Errorf("APPLY_MAX_ATTEMPTS must be positive, got %d", c.ApplyMaxAttempts))
	}
	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid PORT value: %d", c.Port))
	}
	if c.TokenTTL <= 0 {
		errs = append(errs, fmt.Errorf("TOKEN_TTL must be positive, got %s", c.TokenTTL))
	}

	return errors.Join(errs...)
}

// Warnings returns non-fatal findings, such as example values left in place
func (c *Config) Warnings() []string {
	var warnings []string

	if c.DBPassword == ExampleDBPassword {
		warnings = append(warnings, "DB_PASSWORD appears to be using the example value - please use a secure password")
	}
	if c.JWTSecret == ExampleJWTSecret {
		warnings = append(warnings, "JWT_SECRET appears to be using the example value - generate a secure key with: openssl rand -hex 32")
	} else if len(c.JWTSecret) < MinJWTSecretLength {
		warnings = append(warnings, fmt.Sprintf("JWT_SECRET is shorter than %d bytes", MinJWTSecretLength))
	}
	if c.StoreDriver == StoreDriverMemory && c.Environment == "production" {
		warnings = append(warnings, "STORE_DRIVER=memory loses all state on restart")
	}

	return warnings
}
