package statlog

// StatStore persists normalized records and completeness markers.
type StatStore interface {
	// Commit writes one task's records in a single transaction with
	// insert-or-ignore semantics keyed by each record's natural key.
	Commit(records RecordSet) (CommitResult, error)

	// GetStatus returns the completeness marker for a (player, season),
	// and whether one exists at all.
	GetStatus(playerID int64, season int) (Status, bool, error)

	// MarkStatus upserts the completeness marker.
	MarkStatus(playerID int64, season int, status Status, lastError string) error

	// StatusCounts summarizes markers for one season.
	StatusCounts(season int) (map[Status]int, error)
}
