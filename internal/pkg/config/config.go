package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,       default=8080"`
	Env       string `env:"ENV,        default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	// TokenTTLMinutes bounds the lifetime of issued access tokens. Tokens
	// are stateless, so this is the only revocation mechanism.
	TokenTTLMinutes int    `env:"TOKEN_TTL_MINUTES, default=30"`
	LogLevel        string `env:"LOG_LEVEL,  default=info"`
	AuditWorkers    int    `env:"AUDIT_WORKERS, default=4"`

	Mongo     MongoConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=bookstore"`
	// UseTransactions enables multi-document sessions in the transaction
	// guard. Requires a replica set; standalone mongod must leave it off.
	UseTransactions bool `env:"MONGO_TRANSACTIONS, default=false"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type RateLimitConfig struct {
	MaxAttempts   int `env:"LOGIN_MAX_ATTEMPTS,   default=10"`
	WindowSeconds int `env:"LOGIN_WINDOW_SECONDS, default=60"`
}

// TokenTTL returns the configured token lifetime as a duration.
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLMinutes) * time.Minute
}

// Window returns the rate-limit window as a duration.
func (c RateLimitConfig) Window() time.Duration {
	return time.Duration(c.WindowSeconds) * time.Second
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
