package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config contains server configuration parameters.
type Config struct {
	HTTPAddr  string        `env:"HTTP_ADDR" envDefault:":8080"`
	DBPath    string        `env:"DB_PATH" envDefault:"./data/lexi.db"`
	SeedDir   string        `env:"SEED_DIR" envDefault:"./data"`
	LogLevel  int           `env:"LOG_LEVEL" envDefault:"0"`
	JWT       JWT           `envPrefix:"JWT_"`
	Bible     Bible         `envPrefix:"BIBLE_"`
	Photos    Photos        `envPrefix:"PHOTOS_"`
	Assistant Assistant     `envPrefix:"ASSISTANT_"`
	Social    Social        `envPrefix:"SOCIAL_"`
	Timeout   time.Duration `env:"HTTP_CLIENT_TIMEOUT" envDefault:"10s"`
}

// JWT contains session-token parameters.
type JWT struct {
	Secret string        `env:"SECRET" envDefault:"dev-secret-change-me"`
	TTL    time.Duration `env:"TTL" envDefault:"24h"`
}

// Bible contains scripture API parameters.
type Bible struct {
	BaseURL string `env:"BASE_URL" envDefault:"https://bible-api.com"`
}

// Photos contains stock-photo API parameters.
type Photos struct {
	BaseURL string `env:"BASE_URL" envDefault:"https://api.pexels.com/v1"`
	APIKey  string `env:"API_KEY"`
	PerPage int    `env:"PER_PAGE" envDefault:"5"`
}

// Assistant contains generative-language API parameters.
type Assistant struct {
	BaseURL string `env:"BASE_URL" envDefault:"https://generativelanguage.googleapis.com"`
	APIKey  string `env:"API_KEY"`
	Model   string `env:"MODEL" envDefault:"gemini-2.5-flash"`
}

// Social contains parameters for the community-feed backend.
type Social struct {
	BaseURL string `env:"BASE_URL"`
	AnonKey string `env:"ANON_KEY"`
}

// New loads configuration from LEXI_-prefixed environment variables.
func New() (*Config, error) {
	cfg := Config{}
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "LEXI_"}); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}
