package mlbstats

import "context"

// StatsClient defines the interface for interacting with the stats API.
// This allows for mock implementations to be used in tests.
type StatsClient interface {
	GameLog(ctx context.Context, req FetchRequest) (*GameLogPayload, error)
	Probe(ctx context.Context, req FetchRequest) (bool, error)
}
