package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config carries everything the process reads from the environment.
type Config struct {
	Port        string
	Environment string
	LogLevel    slog.Level

	// RedisURL enables snapshot persistence when set.
	RedisURL      string
	SnapshotKey   string
	FlushInterval time.Duration

	// KafkaBrokers enables the external event feed when non-empty.
	KafkaBrokers []string
	KafkaTopic   string

	// SeedDemoData populates an empty store with the demo dataset.
	SeedDemoData bool
}

// LoadConfig reads .env (when present) and the process environment.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:         getEnv("PORT", "8080"),
		Environment:  getEnv("ENVIRONMENT", "development"),
		LogLevel:     parseLogLevel(getEnv("LOG_LEVEL", "info")),
		RedisURL:     getEnv("REDIS_URL", ""),
		SnapshotKey:  getEnv("SNAPSHOT_KEY", "scheduling:snapshot"),
		KafkaTopic:   getEnv("KAFKA_TOPIC", "scheduling.events"),
		SeedDemoData: getBoolEnv("SEED_DEMO_DATA", true),
	}

	interval, err := time.ParseDuration(getEnv("FLUSH_INTERVAL", "2s"))
	if err != nil {
		return nil, fmt.Errorf("parse FLUSH_INTERVAL: %w", err)
	}
	cfg.FlushInterval = interval

	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
			}
		}
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getBoolEnv(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
