package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/raphaelgruber/gridsweep/internal/activity"
	"github.com/raphaelgruber/gridsweep/internal/report"
)

var playersCmd = &cobra.Command{
	Use:   "players",
	Short: "Report player activity from the server logs",
	Long: `Parse the dedicated server logs and write players.csv with the last
time each player was seen. Useful on its own to judge a sensible
--delete-after-days value before running clean.

Examples:
  gridsweep players
  gridsweep players --log-directory /srv/se/logs`,
	RunE: runPlayers,
}

func init() {
	playersCmd.Flags().String("log-directory", "", "the directory containing the server .log files")
	playersCmd.Flags().String("csv-directory", "", "the directory to place .csv files in")
}

func runPlayers(cmd *cobra.Command, args []string) error {
	if cmd.Flags().Changed("log-directory") {
		cfg.LogDirectory, _ = cmd.Flags().GetString("log-directory")
	}
	if cmd.Flags().Changed("csv-directory") {
		cfg.CSVDirectory, _ = cmd.Flags().GetString("csv-directory")
	}

	seen, err := activity.ScanLogs(cfg.LogDirectory, logger)
	if err != nil {
		return err
	}

	path := filepath.Join(cfg.CSVDirectory, "players.csv")
	if err := writeCSV(path, func(f *os.File) error {
		return report.WritePlayers(f, seen, csvFormat())
	}); err != nil {
		return err
	}

	fmt.Printf("Wrote %s (%d players).\n", path, len(seen))
	return nil
}
