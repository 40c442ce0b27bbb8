package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config carries everything the service reads from the environment.
type Config struct {
	// Server
	Port        string
	Environment string
	LogLevel    slog.Level

	// Storage
	DatabaseURL string
	RedisURL    string

	// Notifications
	KafkaBrokers []string
	KafkaTopic   string

	// Engine tuning
	PercentageMinScore int
	HardcoreRatio      float64
}

// LoadConfig reads configuration from the environment, with a .env file as
// an optional local override source.
func LoadConfig() (*Config, error) {
	// Missing .env is the normal case outside local development.
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    parseLogLevel(getEnv("LOG_LEVEL", "info")),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    os.Getenv("REDIS_URL"),

		KafkaTopic: getEnv("KAFKA_TOPIC", "scoring.notifications"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
			}
		}
	}

	var err error
	if cfg.PercentageMinScore, err = getEnvInt("PERCENTAGE_MIN_SCORE", 450); err != nil {
		return nil, err
	}
	if cfg.PercentageMinScore < 0 {
		return nil, fmt.Errorf("PERCENTAGE_MIN_SCORE cannot be negative")
	}

	if cfg.HardcoreRatio, err = getEnvFloat("HARDCORE_RATIO", 0.4); err != nil {
		return nil, err
	}
	if cfg.HardcoreRatio <= 0 || cfg.HardcoreRatio > 1 {
		return nil, fmt.Errorf("HARDCORE_RATIO must be in (0, 1]")
	}

	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return parsed, nil
}

func getEnvFloat(key string, fallback float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number: %w", key, err)
	}
	return parsed, nil
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
