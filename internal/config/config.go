// Package config loads and validates process configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"go-simpler.org/env"
)

type Config struct {
	AppEnv      string `env:"APP_ENV" default:"development"`
	Port        string `env:"PORT" default:"8080"`
	DatabaseURL string `env:"DATABASE_URL"`

	TMDBAPIKey  string `env:"TMDB_API_KEY"`
	TMDBBaseURL string `env:"TMDB_BASE_URL" default:"https://api.themoviedb.org/3"`

	JWTAccessSecret  string        `env:"JWT_ACCESS_SECRET"`
	JWTRefreshSecret string        `env:"JWT_REFRESH_SECRET"`
	AccessTokenTTL   time.Duration `env:"ACCESS_TOKEN_TTL" default:"168h"`  // 7 days
	RefreshTokenTTL  time.Duration `env:"REFRESH_TOKEN_TTL" default:"720h"` // 30 days

	LogLevel  string `env:"LOG_LEVEL" default:"info"`
	LogFormat string `env:"LOG_FORMAT" default:"text"`
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	var cfg Config
	if err := env.Load(&cfg, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func validate(cfg *Config) error {
	required := map[string]string{
		"DATABASE_URL":       cfg.DatabaseURL,
		"TMDB_API_KEY":       cfg.TMDBAPIKey,
		"JWT_ACCESS_SECRET":  cfg.JWTAccessSecret,
		"JWT_REFRESH_SECRET": cfg.JWTRefreshSecret,
	}
	for name, value := range required {
		if value == "" {
			return fmt.Errorf("%s is required", name)
		}
	}

	// The two signing keys must differ so a leaked refresh token can never
	// be presented as an access token.
	if cfg.JWTAccessSecret == cfg.JWTRefreshSecret {
		return errors.New("JWT_ACCESS_SECRET and JWT_REFRESH_SECRET must be different")
	}

	if cfg.AccessTokenTTL <= 0 {
		return errors.New("ACCESS_TOKEN_TTL must be positive")
	}
	if cfg.RefreshTokenTTL <= cfg.AccessTokenTTL {
		return errors.New("REFRESH_TOKEN_TTL must be longer than ACCESS_TOKEN_TTL")
	}

	return nil
}
