package config

import (
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// Load reads configuration from environment variables and .env file.
func Load() Config {
	err := godotenv.Load()
	if err != nil {
		log.Info("No .env file found, reading from environment variables")
	}

	// A helper function to get a required env var. It will fail if the env var is not set.
	getEnv := func(key string) string {
		if value, ok := os.LookupEnv(key); ok {
			return value
		}
		log.Fatalf("Error: Required environment variable %s is not set.", key)
		return "" // This line is never reached
	}
	getEnvOr := func(key, fallback string) string {
		if value, ok := os.LookupEnv(key); ok && value != "" {
			return value
		}
		return fallback
	}
	getIntOr := func(key string, fallback int64) int64 {
		raw, ok := os.LookupEnv(key)
		if !ok || raw == "" {
			return fallback
		}
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			log.Fatalf("Error: environment variable %s must be an integer, got %q", key, raw)
		}
		return v
	}
	getFloatOr := func(key string, fallback float64) float64 {
		raw, ok := os.LookupEnv(key)
		if !ok || raw == "" {
			return fallback
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			log.Fatalf("Error: environment variable %s must be a number, got %q", key, raw)
		}
		return v
	}

	cfg := Config{
		DBName: getEnv("DB_NAME"),
		Turso: TursoConfig{
			PrimaryURL: getEnvOr("TURSO_PRIMARY_URL", ""),
			AuthToken:  getEnvOr("TURSO_AUTH_TOKEN", ""),
		},
		StatsAPI: StatsAPIConfig{
			BaseURL:            getEnvOr("STATS_API_BASE_URL", "https://statsapi.mlb.com"),
			GlobalConcurrency:  getIntOr("STATS_API_GLOBAL_CONCURRENCY", 10),
			PerHostConcurrency: getIntOr("STATS_API_PER_HOST_CONCURRENCY", 5),
			RequestsPerSecond:  getFloatOr("STATS_API_REQUESTS_PER_SECOND", 8),
			AttemptTimeout:     time.Duration(getIntOr("STATS_API_ATTEMPT_TIMEOUT_SECONDS", 30)) * time.Second,
		},
		Collector: CollectorConfig{
			Workers:     int(getIntOr("COLLECTOR_WORKERS", 10)),
			MaxAttempts: int(getIntOr("COLLECTOR_MAX_ATTEMPTS", 3)),
			BackoffBase: time.Duration(getIntOr("COLLECTOR_BACKOFF_BASE_MS", 1000)) * time.Millisecond,
			ReportEvery: int(getIntOr("COLLECTOR_REPORT_EVERY", 25)),
		},
		Slack: SlackConfig{
			Token:     getEnvOr("SLACK_BOT_TOKEN", ""),
			ChannelID: getEnvOr("SLACK_CHANNEL_ID", ""),
		},
		ProjectID: getEnvOr("GCP_PROJECT", ""),
		RunTopic:  getEnvOr("RUN_TOPIC", "collection-runs"),
	}
	return cfg
}
