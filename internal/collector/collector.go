// Package collector drives a full collection run: it prunes the player
// population against the completeness markers, enumerates per-level tasks,
// executes them on a bounded worker pool and records completeness when the
// last task of each (player, season) finishes.
package collector

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/afinewinecompany/afinewinedynasty-sub000/internal/metrics"
	"github.com/afinewinecompany/afinewinedynasty-sub000/internal/mlbstats"
	"github.com/afinewinecompany/afinewinedynasty-sub000/internal/normalize"
	"github.com/afinewinecompany/afinewinedynasty-sub000/internal/roster"
	"github.com/afinewinecompany/afinewinedynasty-sub000/internal/statlog"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Collector is the fetch orchestrator.
type Collector struct {
	client      mlbstats.StatsClient
	store       statlog.StatStore
	metrics     metrics.Metrics
	enumerator  *Enumerator
	workers     int
	reportEvery int
}

// New creates a new Collector.
func New(client mlbstats.StatsClient, store statlog.StatStore, m metrics.Metrics, opts Options) *Collector {
	workers := opts.Workers
	if workers <= 0 {
		workers = 10
	}
	return &Collector{
		client:      client,
		store:       store,
		metrics:     m,
		enumerator:  NewEnumerator(client, opts.Policy),
		workers:     workers,
		reportEvery: opts.ReportEvery,
	}
}

type pair struct {
	player roster.Player
	season int
}

type pairKey struct {
	playerID int64
	season   int
}

// pairState tracks outstanding tasks for one (player, season) so the
// completeness marker is written exactly once, after the last task.
type pairState struct {
	remaining  int
	failed     bool
	anyRecords bool
	firstError string
}

// Run collects all seasons for all given players. Cancelling ctx stops
// dispatch of new tasks; in-flight tasks finish their fetch/persist cycle
// so no task is left half-written. In dry-run mode fetching and
// normalization happen but nothing is persisted, markers included.
func (c *Collector) Run(ctx context.Context, players []roster.Player, seasons []int, dryRun bool) Summary {
	runID := uuid.NewString()
	start := time.Now()
	reporter := NewReporter(c.reportEvery)

	pending, skipped := c.prune(players, seasons)
	log.Info("Collection plan",
		"run_id", runID,
		"players", len(players),
		"seasons", len(seasons),
		"pairs_pending", len(pending),
		"pairs_skipped", skipped,
		"workers", c.workers,
		"dry_run", dryRun,
	)

	queue, states := c.enumerate(ctx, pending, reporter, dryRun)

	var (
		mu       sync.Mutex
		inFlight atomic.Int64
		wg       sync.WaitGroup
	)
	taskCh := make(chan Task)

	for i := 0; i < c.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for task := range taskCh {
				c.metrics.SetInFlightTasks(float64(inFlight.Add(1)))
				// A task that made it onto a worker runs to completion even
				// when the run is being cancelled: aborting mid-cycle would
				// leave the pair without a completeness marker for no gain.
				result := c.executeTask(context.WithoutCancel(ctx), task, dryRun)
				c.metrics.SetInFlightTasks(float64(inFlight.Add(-1)))
				c.recordOutcome(result, reporter, states, &mu, dryRun)
			}
		}()
	}

dispatch:
	for _, task := range queue {
		select {
		case <-ctx.Done():
			log.Warn("Shutdown requested, stopping task dispatch", "run_id", runID)
			break dispatch
		case taskCh <- task:
		}
	}
	close(taskCh)
	wg.Wait()

	duration := time.Since(start)
	c.metrics.SetRunDuration(duration.Seconds())
	return reporter.Final(runID, skipped, duration)
}

// prune applies the completeness filter: pairs already marked complete or
// empty are skipped, pairs marked failed or never attempted are collected.
func (c *Collector) prune(players []roster.Player, seasons []int) ([]pair, int) {
	var pending []pair
	skipped := 0
	for _, season := range seasons {
		for _, p := range players {
			status, ok, err := c.store.GetStatus(p.ID, season)
			if err != nil {
				log.Error("Failed to read collection status, collecting anyway", "error", err, "playerID", p.ID, "season", season)
			} else if ok && status != statlog.StatusFailed {
				skipped++
				continue
			}
			pending = append(pending, pair{player: p, season: season})
		}
	}
	return pending, skipped
}

// enumerate probes levels for every pending pair with bounded parallelism
// and builds the task queue, interleaved round-robin across pairs so one
// player's tasks cannot starve the others. Pairs with zero levels are
// marked empty here; pairs whose probes failed are marked failed.
func (c *Collector) enumerate(ctx context.Context, pending []pair, reporter *Reporter, dryRun bool) ([]Task, map[pairKey]*pairState) {
	type enumResult struct {
		pair  pair
		tasks []Task
		err   error
	}
	results := make([]enumResult, len(pending))

	g := new(errgroup.Group)
	g.SetLimit(c.workers)
	for i, pr := range pending {
		g.Go(func() error {
			tasks, err := c.enumerator.Enumerate(ctx, pr.player, pr.season)
			results[i] = enumResult{pair: pr, tasks: tasks, err: err}
			return nil
		})
	}
	g.Wait()

	states := make(map[pairKey]*pairState)
	var perPair [][]Task
	for _, r := range results {
		switch {
		case r.err != nil:
			log.Error("Enumeration failed", "error", r.err, "playerID", r.pair.player.ID, "season", r.pair.season)
			c.metrics.IncTasksFailed()
			reporter.Record(TaskResult{
				Task:    Task{Player: r.pair.player, Season: r.pair.season},
				Outcome: OutcomeFailed,
				Err:     r.err,
			})
			if !dryRun {
				c.store.MarkStatus(r.pair.player.ID, r.pair.season, statlog.StatusFailed, r.err.Error())
			}
		case len(r.tasks) == 0:
			c.metrics.IncTasksEmpty()
			reporter.Record(TaskResult{
				Task:    Task{Player: r.pair.player, Season: r.pair.season},
				Outcome: OutcomeEmpty,
			})
			if !dryRun {
				c.store.MarkStatus(r.pair.player.ID, r.pair.season, statlog.StatusEmpty, "")
			}
		default:
			states[pairKey{r.pair.player.ID, r.pair.season}] = &pairState{remaining: len(r.tasks)}
			perPair = append(perPair, r.tasks)
		}
	}
	return interleave(perPair), states
}

// executeTask runs one task's fetch -> normalize -> persist cycle.
func (c *Collector) executeTask(ctx context.Context, task Task, dryRun bool) TaskResult {
	start := time.Now()
	defer func() {
		c.metrics.ObserveTaskDuration(time.Since(start).Seconds())
	}()

	req := mlbstats.FetchRequest{
		PlayerID: task.Player.ID,
		Season:   task.Season,
		Level:    task.Level,
		Group:    task.Player.Role.StatGroup(),
	}

	var payload *mlbstats.GameLogPayload
	attempts := 0
	err := c.enumerator.policy.Do(ctx, func(ctx context.Context) error {
		attempts++
		if attempts > 1 {
			c.metrics.IncFetchRetries()
		}
		p, err := c.client.GameLog(ctx, req)
		if err != nil {
			return err
		}
		payload = p
		return nil
	})
	if err != nil {
		if mlbstats.IsKind(err, mlbstats.KindNoData) {
			return TaskResult{Task: task, Outcome: OutcomeEmpty}
		}
		return TaskResult{Task: task, Outcome: OutcomeFailed, Err: err}
	}

	records, anomalies := normalize.GameLog(payload, task.Player, task.Season, task.Level)
	for _, anomaly := range anomalies {
		log.Warn("Payload anomaly",
			"playerID", task.Player.ID, "season", task.Season, "level", task.Level,
			"anomaly", anomaly.String(),
		)
	}
	if records.Len() == 0 {
		return TaskResult{Task: task, Outcome: OutcomeEmpty}
	}

	if dryRun {
		log.Info("[Dry Run] Would commit records",
			"playerID", task.Player.ID, "season", task.Season, "level", task.Level,
			"records", records.Len(),
		)
		return TaskResult{Task: task, Outcome: OutcomeSucceeded, Records: records.Len()}
	}

	result, err := c.store.Commit(records)
	if err != nil {
		return TaskResult{Task: task, Outcome: OutcomeFailed, Err: err}
	}
	return TaskResult{Task: task, Outcome: OutcomeSucceeded, Records: result.Inserted}
}

// recordOutcome updates metrics, the reporter and the pair bookkeeping,
// and writes the completeness marker once the pair's last task is done.
func (c *Collector) recordOutcome(result TaskResult, reporter *Reporter, states map[pairKey]*pairState, mu *sync.Mutex, dryRun bool) {
	switch result.Outcome {
	case OutcomeSucceeded:
		c.metrics.IncTasksSucceeded()
		c.metrics.AddRecordsWritten(result.Records)
	case OutcomeEmpty:
		c.metrics.IncTasksEmpty()
	case OutcomeFailed:
		c.metrics.IncTasksFailed()
		log.Error("Task failed",
			"error", result.Err,
			"playerID", result.Task.Player.ID,
			"season", result.Task.Season,
			"level", result.Task.Level,
		)
	}
	reporter.Record(result)

	key := pairKey{result.Task.Player.ID, result.Task.Season}
	mu.Lock()
	state, ok := states[key]
	if !ok {
		mu.Unlock()
		return
	}
	state.remaining--
	if result.Outcome == OutcomeFailed {
		state.failed = true
		if state.firstError == "" && result.Err != nil {
			state.firstError = result.Err.Error()
		}
	}
	if result.Outcome == OutcomeSucceeded {
		state.anyRecords = true
	}
	done := state.remaining == 0
	mu.Unlock()

	if !done || dryRun {
		return
	}
	switch {
	case state.failed:
		c.store.MarkStatus(key.playerID, key.season, statlog.StatusFailed, state.firstError)
	case state.anyRecords:
		c.store.MarkStatus(key.playerID, key.season, statlog.StatusComplete, "")
	default:
		c.store.MarkStatus(key.playerID, key.season, statlog.StatusEmpty, "")
	}
}

// interleave flattens per-pair task lists round-robin.
func interleave(lists [][]Task) []Task {
	var out []Task
	for {
		progressed := false
		for i := range lists {
			if len(lists[i]) == 0 {
				continue
			}
			out = append(out, lists[i][0])
			lists[i] = lists[i][1:]
			progressed = true
		}
		if !progressed {
			return out
		}
	}
}
