// Package config loads runtime settings from the environment and an
// optional .env file.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/abhisek/careerfit/internal/llm"
)

// Config holds everything the commands need to start.
type Config struct {
	DBPath     string // "" = store.DefaultDBPath
	CatalogDir string // extra assessment files, "" = built-ins only

	LogLevel  string
	LogFormat string

	HTTPAddr        string
	RedisAddr       string // "" = in-memory sessions
	SessionTTL      time.Duration
	ShutdownTimeout time.Duration

	LLM llm.Config
}

// Load reads .env files (when present) and then CAREERFIT_* variables.
// Variables already set in the environment win over .env entries.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		_ = godotenv.Load()
	} else if err := godotenv.Load(envFiles...); err != nil {
		return nil, fmt.Errorf("config: load env files: %w", err)
	}

	cfg := &Config{
		DBPath:     os.Getenv("CAREERFIT_DB"),
		CatalogDir: os.Getenv("CAREERFIT_CATALOG_DIR"),
		LogLevel:   getenvDefault("CAREERFIT_LOG_LEVEL", "info"),
		LogFormat:  getenvDefault("CAREERFIT_LOG_FORMAT", "text"),
		HTTPAddr:   getenvDefault("CAREERFIT_HTTP_ADDR", ":8080"),
		RedisAddr:  os.Getenv("CAREERFIT_REDIS_ADDR"),
		LLM:        llm.ConfigFromEnv(),
	}

	var err error
	if cfg.SessionTTL, err = getDuration("CAREERFIT_SESSION_TTL", 30*time.Minute); err != nil {
		return nil, err
	}
	if cfg.ShutdownTimeout, err = getDuration("CAREERFIT_SHUTDOWN_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}

	if os.Getenv("CAREERFIT_LLM_PROVIDER") == "" {
		if discovered, ok := llm.DiscoverConfig(); ok {
			cfg.LLM = discovered
		}
	}
	return cfg, nil
}

func getenvDefault(k, fallback string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return fallback
}

func getDuration(k string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(k)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s=%q is not a valid duration: %w", k, v, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("config: %s must be positive, got %s", k, d)
	}
	return d, nil
}
