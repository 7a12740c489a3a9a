package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int    `env:"PORT" envDefault:"8080"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat   string `env:"LOG_FORMAT" envDefault:"text"`
	LogDir      string `env:"LOG_DIR" envDefault:"logs"`
	Environment string `env:"ENVIRONMENT" envDefault:"dev"`
	Version     string `env:"VERSION" envDefault:"dev"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"bossforge"`

	// X-Forwarded-For is honored only from these addresses
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`

	StoreDriver   string        `env:"STORE_DRIVER" envDefault:"postgres"`
	DBUser        string        `env:"DB_USER" envDefault:"postgres"`
	DBPassword    string        `env:"DB_PASSWORD" envDefault:"postgres"`
	DBHost        string        `env:"DB_HOST" envDefault:"localhost"`
	DBPort        string        `env:"DB_PORT" envDefault:"5432"`
	DBName        string        `env:"DB_NAME" envDefault:"bossforge"`
	DBMaxConns    int           `env:"DB_MAX_CONNS" envDefault:"10"`
	DBMaxConnIdle time.Duration `env:"DB_MAX_CONN_IDLE" envDefault:"5m"`
	DBMaxConnLife time.Duration `env:"DB_MAX_CONN_LIFE" envDefault:"1h"`
	AutoMigrate   bool          `env:"AUTO_MIGRATE" envDefault:"true"`

	JWTSecret      string        `env:"JWT_SECRET"`
	JWTIssuer      string        `env:"JWT_ISSUER" envDefault:"bossforge"`
	TokenTTL       time.Duration `env:"TOKEN_TTL" envDefault:"30m"`
	TokenCacheSize int           `env:"TOKEN_CACHE_SIZE" envDefault:"1024"`

	// Empty RedisAddr disables the leaderboard
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	// Empty KafkaBrokers disables event streaming
	KafkaBrokers []string `env:"KAFKA_BROKERS" envSeparator:","`
	KafkaTopic   string   `env:"KAFKA_TOPIC" envDefault:"progression-events"`

	EventMaxRetries     int           `env:"EVENT_MAX_RETRIES" envDefault:"3"`
	EventRetryDelay     time.Duration `env:"EVENT_RETRY_DELAY" envDefault:"500ms"`
	EventDeadLetterPath string        `env:"EVENT_DEADLETTER_PATH" envDefault:"logs/deadletter.jsonl"`

	ApplyMaxAttempts int `env:"APPLY_MAX_ATTEMPTS" envDefault:"3"`

	// Empty SeedFile skips the catalog sync at startup
	SeedFile string `env:"SEED_FILE"`
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}

// LeaderboardEnabled reports whether a redis address is configured
func (c *Config) LeaderboardEnabled() bool {
	return c.RedisAddr != ""
}

// StreamingEnabled reports whether kafka brokers are configured
func (c *Config) StreamingEnabled() bool {
	return len(c.KafkaBrokers) > 0
}
