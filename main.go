package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "awd-collector",
	Short: "Bulk collector for prospect game logs and pitch data",
	Long: `A command-line tool that pulls per-game and per-pitch statistics for
tracked prospects from the MLB stats API into the local database. Runs are
idempotent: pairs already collected are skipped, failed pairs are retried.`,
	SilenceUsage: true,
}

func init() {
	log.SetFormatter(log.JSONFormatter)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func main() {
	Execute()
}
