package config

import "time"

// Config holds all configuration for the collector.
type Config struct {
	DBName    string
	Turso     TursoConfig
	StatsAPI  StatsAPIConfig
	Collector CollectorConfig
	Slack     SlackConfig
	ProjectID string
	RunTopic  string
}

// TursoConfig points at the remote primary when running against an
// embedded replica. Leave PrimaryURL empty for a plain local database.
type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}

// StatsAPIConfig bounds the HTTP client talking to the stats API.
type StatsAPIConfig struct {
	BaseURL            string
	GlobalConcurrency  int64
	PerHostConcurrency int64
	RequestsPerSecond  float64
	AttemptTimeout     time.Duration
}

// CollectorConfig bounds the fetch orchestrator.
type CollectorConfig struct {
	Workers     int
	MaxAttempts int
	BackoffBase time.Duration
	ReportEvery int
}

type SlackConfig struct {
	Token     string
	ChannelID string
}
