package config

import (
	"log/slog"
	"os"
	"strings"
)

// Storage backend names accepted in the STORAGE env var.
const (
	StorageFile  = "file"
	StorageRedis = "redis"
)

type Config struct {
	Environment string
	LogLevel    slog.Level
	Storage     string // "file" or "redis"
	RedisURL    string
	SaveDir     string
	Scenario    string // scenario file name within the embedded data
	Seed        string // RNG seed override, empty for time-based
}

func Load() *Config {
	return &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    parseLogLevel(getEnv("LOG_LEVEL", "info")),
		Storage:     strings.ToLower(getEnv("STORAGE", StorageFile)),
		RedisURL:    getEnv("REDIS_URL", "localhost:6379"),
		SaveDir:     getEnv("SAVE_DIR", "./saves"),
		Scenario:    getEnv("SCENARIO", ""),
		Seed:        getEnv("SEED", ""),
	}
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
