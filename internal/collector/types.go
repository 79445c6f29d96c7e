package collector

import (
	"time"

	"github.com/afinewinecompany/afinewinedynasty-sub000/internal/mlbstats"
	"github.com/afinewinecompany/afinewinedynasty-sub000/internal/retry"
	"github.com/afinewinecompany/afinewinedynasty-sub000/internal/roster"
)

// Task is the unit of work: one (player, season, level) to fetch. Tasks
// are ephemeral; they are created by the enumerator and never persisted.
type Task struct {
	Player roster.Player
	Season int
	Level  mlbstats.Level
}

// Outcome classifies how a task ended.
type Outcome string

const (
	OutcomeSucceeded Outcome = "succeeded"
	OutcomeEmpty     Outcome = "empty"
	OutcomeFailed    Outcome = "failed"
)

// TaskResult is one task's terminal outcome.
type TaskResult struct {
	Task    Task
	Outcome Outcome
	Records int
	Err     error
}

// Summary aggregates a full run. Its counts reconcile exactly with the
// task results observed by the orchestrator.
type Summary struct {
	RunID          string
	Attempted      int
	Succeeded      int
	Empty          int
	Failed         int
	RecordsWritten int
	PairsSkipped   int
	Duration       time.Duration
}

// Options bounds a collector. Zero values fall back to defaults.
type Options struct {
	Workers     int
	ReportEvery int
	Policy      retry.Policy
}
