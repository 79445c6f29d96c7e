package notifier

import "github.com/afinewinecompany/afinewinedynasty-sub000/internal/collector"

// Notifier defines a high-level interface for announcing run outcomes.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	SendRunSummary(summary collector.Summary, dryRun bool) error
}
