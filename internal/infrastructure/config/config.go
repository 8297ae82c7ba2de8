package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port          string `env:"PORT,           default=3000"`
	Env           string `env:"ENV,            default=development"`
	LogLevel      string `env:"LOG_LEVEL,      default=info"`
	SessionCookie string `env:"SESSION_COOKIE, default=iris_sid"`

	API   APIConfig
	Redis RedisConfig
}

// APIConfig points at the clinic REST backend.
type APIConfig struct {
	BaseURL string        `env:"API_BASE_URL, default=http://localhost:8080/api/v1"`
	Timeout time.Duration `env:"API_TIMEOUT,  default=30s"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
