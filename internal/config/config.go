// Package config loads server configuration from the environment, with an
// optional .env file for development.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

// Config holds everything the server reads from the environment.
type Config struct {
	ListenAddr string `env:"LISTEN_ADDR,default=:8080"`

	// DatabaseURL selects the PostgreSQL backend; empty means in-memory.
	DatabaseURL string `env:"DATABASE_URL"`

	JWTSecret string        `env:"JWT_SECRET,required"`
	TokenTTL  time.Duration `env:"TOKEN_TTL,default=24h"`

	GithubToken string `env:"GITHUB_TOKEN"`

	LogLevel  string `env:"LOG_LEVEL,default=info"`
	LogFormat string `env:"LOG_FORMAT,default=json"`

	CORSOrigins []string `env:"CORS_ORIGINS,default=*"`

	RateLimitRPS   int `env:"RATE_LIMIT_RPS,default=50"`
	RateLimitBurst int `env:"RATE_LIMIT_BURST,default=100"`
}

// Load reads an optional .env file, then decodes the environment. A missing
// .env file is fine; a malformed environment is not.
func Load(envFile string) (*Config, error) {
	if envFile == "" {
		envFile = ".env"
	}
	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	var cfg Config
	if err := envdecode.StrictDecode(&cfg); err != nil {
		return nil, fmt.Errorf("decode environment: %w", err)
	}
	return &cfg, nil
}
