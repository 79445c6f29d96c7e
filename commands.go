package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/afinewinecompany/afinewinedynasty-sub000/internal/collector"
	"github.com/afinewinecompany/afinewinedynasty-sub000/internal/config"
	"github.com/afinewinecompany/afinewinedynasty-sub000/internal/database"
	"github.com/afinewinecompany/afinewinedynasty-sub000/internal/metrics"
	"github.com/afinewinecompany/afinewinedynasty-sub000/internal/mlbstats"
	"github.com/afinewinecompany/afinewinedynasty-sub000/internal/notifier/slack"
	"github.com/afinewinecompany/afinewinedynasty-sub000/internal/pubsub"
	"github.com/afinewinecompany/afinewinedynasty-sub000/internal/retry"
	"github.com/afinewinecompany/afinewinedynasty-sub000/internal/roster"
	"github.com/afinewinecompany/afinewinedynasty-sub000/internal/statlog"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	startSeason int
	endSeason   int
	limit       int
	workers     int
	role        string
	dryRun      bool
	metricsPort int

	statusSeason int
)

func init() {
	collectCmd.Flags().IntVar(&startSeason, "start-season", 0, "First season to collect (defaults to the current year)")
	collectCmd.Flags().IntVar(&endSeason, "end-season", 0, "Last season to collect (defaults to start-season)")
	collectCmd.Flags().IntVar(&limit, "limit", 0, "Cap the number of players, 0 means the whole roster")
	collectCmd.Flags().IntVar(&workers, "workers", 0, "Override the configured worker count")
	collectCmd.Flags().StringVar(&role, "role", "", "Collect only one role: hitter or pitcher")
	collectCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Fetch and normalize but persist nothing")
	collectCmd.Flags().IntVar(&metricsPort, "metrics-port", 0, "Expose Prometheus metrics on this port, 0 disables")
	rootCmd.AddCommand(collectCmd)

	statusCmd.Flags().IntVar(&statusSeason, "season", 0, "Season to summarize (defaults to the current year)")
	rootCmd.AddCommand(statusCmd)
}

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Run a collection pass over the tracked roster",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()

		if startSeason == 0 {
			startSeason = time.Now().Year()
		}
		if endSeason == 0 {
			endSeason = startSeason
		}
		if endSeason < startSeason {
			return fmt.Errorf("end-season %d is before start-season %d", endSeason, startSeason)
		}
		playerRole := roster.Role(role)
		if role != "" && playerRole != roster.RoleHitter && playerRole != roster.RolePitcher {
			return fmt.Errorf("unknown role %q, expected hitter or pitcher", role)
		}

		db, dbTeardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken)
		if err != nil {
			log.Fatalf("Failed to initialize database: %s", err)
		}
		defer dbTeardown()

		metricsSvc := metrics.NewService()
		if metricsPort > 0 {
			go func() {
				addr := fmt.Sprintf(":%d", metricsPort)
				mux := http.NewServeMux()
				mux.Handle("/metrics", metrics.NewMetricsHandler())
				log.Info("Metrics endpoint started", "addr", addr)
				if err := http.ListenAndServe(addr, mux); err != nil {
					log.Error("Metrics endpoint stopped", "error", err)
				}
			}()
		}

		rosterStore := roster.New(db)
		statStore := statlog.New(db)
		client := mlbstats.NewClient(mlbstats.ClientOptions{
			BaseURL:            cfg.StatsAPI.BaseURL,
			GlobalConcurrency:  cfg.StatsAPI.GlobalConcurrency,
			PerHostConcurrency: cfg.StatsAPI.PerHostConcurrency,
			RequestsPerSecond:  cfg.StatsAPI.RequestsPerSecond,
			AttemptTimeout:     cfg.StatsAPI.AttemptTimeout,
		})

		workerCount := cfg.Collector.Workers
		if workers > 0 {
			workerCount = workers
		}
		coll := collector.New(client, statStore, metricsSvc, collector.Options{
			Workers:     workerCount,
			ReportEvery: cfg.Collector.ReportEvery,
			Policy: retry.Policy{
				MaxAttempts: cfg.Collector.MaxAttempts,
				Base:        cfg.Collector.BackoffBase,
			},
		})

		players, err := rosterStore.Players(playerRole, limit)
		if err != nil {
			log.Fatalf("Failed to load roster: %s", err)
		}
		if len(players) == 0 {
			return fmt.Errorf("no players in the roster, run the seeder first")
		}

		var seasons []int
		for season := startSeason; season <= endSeason; season++ {
			seasons = append(seasons, season)
		}

		// SIGINT/SIGTERM stops dispatch; in-flight tasks finish before exit.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		summary := coll.Run(ctx, players, seasons, dryRun)

		if cfg.Slack.Token != "" && cfg.Slack.ChannelID != "" {
			n := slack.NewNotifier(cfg.Slack.Token, cfg.Slack.ChannelID, metricsSvc)
			if err := n.SendRunSummary(summary, dryRun); err != nil {
				log.Error("Failed to send run summary to Slack", "error", err)
			}
		}
		if cfg.ProjectID != "" && !dryRun {
			ps := pubsub.New(cfg.ProjectID)
			if err := ps.SendMessage(cfg.RunTopic, summary); err != nil {
				log.Error("Failed to publish run event", "error", err)
			}
		}

		if summary.Failed > 0 {
			return fmt.Errorf("%d task(s) failed, rerun to retry them", summary.Failed)
		}
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show completeness markers for a season",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()

		if statusSeason == 0 {
			statusSeason = time.Now().Year()
		}

		db, dbTeardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken)
		if err != nil {
			log.Fatalf("Failed to initialize database: %s", err)
		}
		defer dbTeardown()

		statStore := statlog.New(db)
		counts, err := statStore.StatusCounts(statusSeason)
		if err != nil {
			return fmt.Errorf("failed to read status counts: %w", err)
		}

		total := 0
		for _, n := range counts {
			total += n
		}
		fmt.Printf("Season %d: %d pair(s) tracked\n", statusSeason, total)
		fmt.Printf("  complete: %d\n", counts[statlog.StatusComplete])
		fmt.Printf("  empty:    %d\n", counts[statlog.StatusEmpty])
		fmt.Printf("  failed:   %d\n", counts[statlog.StatusFailed])
		return nil
	},
}
