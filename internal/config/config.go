package config

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	Environment string
	DatabaseURL string
	RedisURL    string

	// ModelBaseDir is the filesystem root for persisted ModelArtifacts
	// (§6.5): <ModelBaseDir>/<ruleset-slug>/...
	ModelBaseDir string

	// InjuryFeedURL points at the live injury-source collaborator (§6.3);
	// when empty, the cmd/ entrypoints read current injuries from the
	// nflverse injury export instead.
	InjuryFeedURL string

	// WorkerPoolSize bounds the goroutines used for per-player feature
	// prefetch and prediction fan-out within one request (§5).
	WorkerPoolSize int

	// RequestTimeout is read from REQUEST_TIMEOUT_SECONDS. No entrypoint
	// applies it: a gameday_predictions call is bounded only by the
	// context its caller passes in.
	RequestTimeout time.Duration

	DBMaxConns int32
	DBMinConns int32
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists (for local development)
	_ = godotenv.Load()

	cfg := &Config{
		Environment:    getEnv("ENVIRONMENT", "development"),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		RedisURL:       getEnv("REDIS_URL", ""),
		ModelBaseDir:   getEnv("MODEL_BASE_DIR", "data/models"),
		InjuryFeedURL:  getEnv("INJURY_FEED_URL", ""),
		WorkerPoolSize: getEnvInt("WORKER_POOL_SIZE", runtime.NumCPU()),
		RequestTimeout: time.Duration(getEnvInt("REQUEST_TIMEOUT_SECONDS", 30)) * time.Second,
		DBMaxConns:     int32(getEnvInt("DB_MAX_CONNS", 25)),
		DBMinConns:     int32(getEnvInt("DB_MIN_CONNS", 5)),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.WorkerPoolSize < 1 {
		cfg.WorkerPoolSize = 1
	}

	return cfg, nil
}

// RulesetSlug normalizes a ruleset name to its on-disk directory name
// (§6.5): lowercased and stripped of spaces.
func RulesetSlug(ruleset string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(ruleset), " ", ""))
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
