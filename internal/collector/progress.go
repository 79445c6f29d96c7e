package collector

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Reporter accumulates task outcomes and periodically logs progress. It
// exists purely for operability; correctness never depends on it.
type Reporter struct {
	mu          sync.Mutex
	reportEvery int

	attempted      int
	succeeded      int
	empty          int
	failed         int
	recordsWritten int
}

// NewReporter creates a reporter that logs every reportEvery tasks.
func NewReporter(reportEvery int) *Reporter {
	if reportEvery <= 0 {
		reportEvery = 25
	}
	return &Reporter{reportEvery: reportEvery}
}

// Record folds one task result into the running totals.
func (r *Reporter) Record(result TaskResult) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.attempted++
	switch result.Outcome {
	case OutcomeSucceeded:
		r.succeeded++
		r.recordsWritten += result.Records
	case OutcomeEmpty:
		r.empty++
	case OutcomeFailed:
		r.failed++
	}

	if r.attempted%r.reportEvery == 0 {
		log.Info("Collection progress",
			"attempted", r.attempted,
			"succeeded", r.succeeded,
			"empty", r.empty,
			"failed", r.failed,
			"records_written", r.recordsWritten,
		)
	}
}

// Final returns the run summary and logs it.
func (r *Reporter) Final(runID string, pairsSkipped int, duration time.Duration) Summary {
	r.mu.Lock()
	defer r.mu.Unlock()

	summary := Summary{
		RunID:          runID,
		Attempted:      r.attempted,
		Succeeded:      r.succeeded,
		Empty:          r.empty,
		Failed:         r.failed,
		RecordsWritten: r.recordsWritten,
		PairsSkipped:   pairsSkipped,
		Duration:       duration,
	}
	log.Info("Collection run finished",
		"run_id", summary.RunID,
		"attempted", summary.Attempted,
		"succeeded", summary.Succeeded,
		"empty", summary.Empty,
		"failed", summary.Failed,
		"records_written", summary.RecordsWritten,
		"pairs_skipped", summary.PairsSkipped,
		"duration", summary.Duration,
	)
	return summary
}
