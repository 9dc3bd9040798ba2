package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,     default=8080"`
	Env      string `env:"ENV,      default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Upstream UpstreamConfig
	Session  SessionConfig
	Redis    RedisConfig
}

type UpstreamConfig struct {
	// BaseURL is the root of the Afya Yetu registry API, including the
	// versioned prefix (e.g. http://localhost:8000/api).
	BaseURL string `env:"UPSTREAM_BASE_URL, default=http://localhost:8000/api"`
	// Timeout of zero leaves the platform default in place.
	Timeout time.Duration `env:"UPSTREAM_TIMEOUT, default=0"`
}

type SessionConfig struct {
	// Store selects the durable session mirror: "file" or "redis".
	Store string `env:"SESSION_STORE, default=file"`
	// File is the mirror path used when Store is "file".
	File string `env:"SESSION_FILE, default=.afya-session.json"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
