package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,     default=3000"`
	Env      string `env:"ENV,      default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// PublicURL is the externally reachable base of this service, used to
	// build absolute links such as the receipt QR target.
	PublicURL string `env:"PUBLIC_URL, default=http://localhost:3000"`

	Backend BackendConfig
	Session SessionConfig
	Redis   RedisConfig

	// TaxRate is the single authoritative sales tax rate applied to the
	// discounted subtotal in both the cart preview and checkout.
	TaxRate float64 `env:"TAX_RATE, default=0.18"`
}

type BackendConfig struct {
	// BaseURL is the restaurant backend's API root, without trailing slash.
	BaseURL string        `env:"BACKEND_BASE_URL, default=http://127.0.0.1:8000/api"`
	Timeout time.Duration `env:"BACKEND_TIMEOUT,  default=15s"`
}

type SessionConfig struct {
	CookieName string `env:"SESSION_COOKIE, default=console_session"`
	// TTL bounds a session when the backend token carries no usable exp claim.
	TTL time.Duration `env:"SESSION_TTL, default=24h"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

func (c *Config) IsDevelopment() bool { return c.Env == "development" }

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
