package config

// Store drivers
const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

// DefaultSeedPath is the catalog seed file read by cmd/seed
const DefaultSeedPath = "configs/seed.yaml"

// Example values from .env.example that must not reach production
const (
	ExampleDBPassword  = "change_this_secure_password"
	ExampleJWTSecret   = "generate_with_openssl_rand_hex_32"
	MinJWTSecretLength = 32
)
