package collector

import (
	"context"
	"fmt"

	"github.com/afinewinecompany/afinewinedynasty-sub000/internal/mlbstats"
	"github.com/afinewinecompany/afinewinedynasty-sub000/internal/retry"
	"github.com/afinewinecompany/afinewinedynasty-sub000/internal/roster"
	"github.com/charmbracelet/log"
)

// Enumerator expands a (player, season) pair into per-level tasks. There
// is no index telling us in advance which levels a player touched, so it
// probes every level in the fixed enumeration: a player promoted or
// demoted mid-season has data at more than one, and assuming a single
// level silently drops the rest.
type Enumerator struct {
	client mlbstats.StatsClient
	policy retry.Policy
}

// NewEnumerator creates a new Enumerator.
func NewEnumerator(client mlbstats.StatsClient, policy retry.Policy) *Enumerator {
	return &Enumerator{
		client: client,
		policy: policy,
	}
}

// Enumerate returns one task per level where the player has data for the
// season. A probe failure after retries fails the whole pair so it can be
// retried on a later run rather than collected with a level missing.
func (e *Enumerator) Enumerate(ctx context.Context, player roster.Player, season int) ([]Task, error) {
	var tasks []Task
	for _, level := range mlbstats.AllLevels {
		req := mlbstats.FetchRequest{
			PlayerID: player.ID,
			Season:   season,
			Level:    level,
			Group:    player.Role.StatGroup(),
		}

		var hasData bool
		err := e.policy.Do(ctx, func(ctx context.Context) error {
			has, err := e.client.Probe(ctx, req)
			if err != nil {
				return err
			}
			hasData = has
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("probe failed for level %s: %w", level, err)
		}
		if hasData {
			tasks = append(tasks, Task{Player: player, Season: season, Level: level})
		}
	}

	log.Debug("Enumerated levels", "playerID", player.ID, "season", season, "tasks", len(tasks))
	return tasks, nil
}
