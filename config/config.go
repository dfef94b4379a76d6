// Package config loads server configuration from the environment, the same
// direct os.Getenv style the api server used for its JWT_SECRET bootstrap,
// generalized to also read an optional .env file the way
// princechess-server reads cookie_hash.env.
package config

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds every tunable the room/index actors and the HTTP transport
// need at startup.
type Config struct {
	Port string

	SQLitePath string

	// Defaults applied to new rooms when the create request omits them.
	MainTimeMs       int64
	BidDurationMs    int64
	ChoiceDurationMs int64

	// Supported matchmaking time controls, in the order buckets are scanned
	// by joinAll.
	TimeControlsMs []int64
}

// Load reads a .env file if present (a missing file is logged at info level
// and otherwise ignored, unlike princechess-server, which treats a missing
// cookie_hash.env as fatal) and then layers environment variables with sane
// defaults over it. TimeControlsMs is fixed and not read from the
// environment.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file loaded, using process environment", "error", err)
	}

	cfg := Config{
		Port:             getEnv("PORT", "8080"),
		SQLitePath:       getEnv("SQLITE_PATH", "sqlite.db"),
		MainTimeMs:       getEnvInt64("MAIN_TIME_MS", 300_000),
		BidDurationMs:    getEnvInt64("BID_DURATION_MS", 30_000),
		ChoiceDurationMs: getEnvInt64("CHOICE_DURATION_MS", 15_000),
		TimeControlsMs:   []int64{300_000, 600_000, 900_000},
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		slog.Warn("invalid integer env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return n
}
