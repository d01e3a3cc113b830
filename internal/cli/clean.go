package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/raphaelgruber/gridsweep/internal/activity"
	"github.com/raphaelgruber/gridsweep/internal/config"
	"github.com/raphaelgruber/gridsweep/internal/metrics"
	"github.com/raphaelgruber/gridsweep/internal/models"
	"github.com/raphaelgruber/gridsweep/internal/report"
	"github.com/raphaelgruber/gridsweep/internal/rules"
	"github.com/raphaelgruber/gridsweep/internal/sweep"
)

// ErrDegraded marks a run that wrote its output but hit unterminated
// records while patching; part of the snapshot may be unedited. The main
// package maps it to a distinct exit code.
var ErrDegraded = errors.New("structural scan truncated")

var (
	cleanTrash        bool
	cleanRespawnShips bool
	cleanDefaultNames bool
	cleanYes          bool
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Audit the save and write a cleaned-up snapshot",
	Long: `Audit the save, write the review CSV files, and - after explicit
confirmation - write the cleaned-up snapshot to a new file.

The ownership rules (inactive owners, owners with no powered medical room,
owners with nothing but a respawn ship) run whenever --delete-after-days is
nonzero; the other rule groups are opt-in.

Examples:
  gridsweep clean --delete-trash
  gridsweep clean --delete-trash --delete-respawn-ships --keep-player-names "Alice,Bob"
  gridsweep clean --delete-after-days 0 --delete-default-names --yes`,
	RunE: runClean,
}

func init() {
	cleanCmd.Flags().String("sbc-in", "", "the Sandbox.sbc file to be read")
	cleanCmd.Flags().String("sbs-in", "", "the SANDBOX_0_0_0_.sbs file to be read")
	cleanCmd.Flags().String("sbs-out", "", "the cleaned-up .sbs file to be written")
	cleanCmd.Flags().String("log-directory", "", "the directory containing the server .log files")
	cleanCmd.Flags().String("csv-directory", "", "the directory to place .csv files in")
	cleanCmd.Flags().String("rules", "", "YAML file overriding the built-in name lists")
	cleanCmd.Flags().Int("delete-after-days", 30, "days without activity before a player counts as inactive (0 to disable)")
	cleanCmd.Flags().StringSlice("keep-player-names", nil, "player names whose grids are always kept")
	cleanCmd.Flags().BoolVar(&cleanTrash, "delete-trash", false, "delete small grids with no ownable blocks")
	cleanCmd.Flags().BoolVar(&cleanRespawnShips, "delete-respawn-ships", false, "delete respawn ships")
	cleanCmd.Flags().BoolVar(&cleanDefaultNames, "delete-default-names", false, "delete grids with default names and no custom beacon")
	cleanCmd.Flags().BoolVarP(&cleanYes, "yes", "y", false, "skip the confirmation prompt")
}

// applyFlagOverrides copies changed string/int flags over the env config.
func applyFlagOverrides(cmd *cobra.Command) {
	override := func(name string, dst *string) {
		if cmd.Flags().Changed(name) {
			*dst, _ = cmd.Flags().GetString(name)
		}
	}
	override("sbc-in", &cfg.SBCIn)
	override("sbs-in", &cfg.SBSIn)
	override("sbs-out", &cfg.SBSOut)
	override("log-directory", &cfg.LogDirectory)
	override("csv-directory", &cfg.CSVDirectory)
	override("rules", &cfg.RulesFile)

	if cmd.Flags().Changed("delete-after-days") {
		cfg.DeleteAfterDays, _ = cmd.Flags().GetInt("delete-after-days")
	}
	if cmd.Flags().Changed("keep-player-names") {
		cfg.KeepPlayerNames, _ = cmd.Flags().GetStringSlice("keep-player-names")
	}
}

func runClean(cmd *cobra.Command, args []string) error {
	applyFlagOverrides(cmd)
	collector := metrics.NewCollector()

	oracle, err := buildOracle(collector)
	if err != nil {
		return err
	}

	ruleset, err := config.LoadRules(cfg.RulesFile)
	if err != nil {
		return err
	}
	engine, err := rules.NewEngine(ruleset)
	if err != nil {
		return err
	}

	opts := rules.Options{
		Trash:        cleanTrash,
		DefaultNames: cleanDefaultNames,
		RespawnShips: cleanRespawnShips,
		OwnerRules:   true,
		AlwaysKeep:   cfg.KeepPlayerNames,
	}

	planner := sweep.NewPlanner(engine, logger, collector)
	plan, err := planner.Plan(cfg.SBCIn, cfg.SBSIn, opts, oracle.IsActive)
	if err != nil {
		return err
	}

	if err := writeReviewCSVs(plan); err != nil {
		return err
	}

	fmt.Println(report.Summary(plan))

	if plan.Empty() {
		fmt.Println("There is nothing to delete.")
		return nil
	}

	if !cleanYes {
		ok, err := confirm()
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Cancelled. Nothing was written.")
			return nil
		}
	}

	if err := writeCleanedSnapshot(plan, engine.Ruleset().TypesToDisable, collector); err != nil {
		return err
	}

	logger.Info("run complete", collector.LogAttrs()...)
	return nil
}

// buildOracle parses the server logs into the activity oracle and writes
// the players CSV. With the activity window disabled it returns an oracle
// that treats everyone as active without touching the logs.
func buildOracle(collector *metrics.Collector) (*activity.Oracle, error) {
	if cfg.DeleteAfterDays == 0 {
		return activity.NewOracle(nil, 0, nil), nil
	}

	start := time.Now()
	seen, err := activity.ScanLogs(cfg.LogDirectory, logger)
	if err != nil {
		return nil, err
	}
	collector.Record(metrics.PhaseLogs, time.Since(start))

	if err := writeCSV(filepath.Join(cfg.CSVDirectory, "players.csv"), func(f *os.File) error {
		return report.WritePlayers(f, seen, csvFormat())
	}); err != nil {
		return nil, err
	}

	maxAge := time.Duration(cfg.DeleteAfterDays) * 24 * time.Hour
	return activity.NewOracle(seen, maxAge, nil), nil
}

func writeReviewCSVs(plan *models.DeletionPlan) error {
	if err := writeCSV(filepath.Join(cfg.CSVDirectory, "grids.csv"), func(f *os.File) error {
		return report.WriteGrids(f, plan.Grids, csvFormat())
	}); err != nil {
		return err
	}
	return writeCSV(filepath.Join(cfg.CSVDirectory, "grids-delete.csv"), func(f *os.File) error {
		return report.WriteGrids(f, plan.Delete, csvFormat())
	})
}

func writeCleanedSnapshot(plan *models.DeletionPlan, disableTypes []string, collector *metrics.Collector) error {
	if cfg.SBSOut == cfg.SBSIn {
		return fmt.Errorf("refusing to overwrite the input snapshot %q; choose a different --sbs-out", cfg.SBSIn)
	}

	content, err := os.ReadFile(cfg.SBSIn)
	if err != nil {
		return fmt.Errorf("read snapshot: %w", err)
	}

	start := time.Now()
	res := sweep.Apply(content, plan, disableTypes)
	collector.Record(metrics.PhasePatch, time.Since(start))

	if err := os.WriteFile(cfg.SBSOut, res.Content, 0644); err != nil {
		return fmt.Errorf("write cleaned snapshot: %w", err)
	}

	logger.Info("wrote cleaned snapshot",
		"file", cfg.SBSOut,
		"grids_removed", res.GridsRemoved,
		"blocks_disabled", res.BlocksDisabled)

	if res.Truncated > 0 {
		logger.Warn("unterminated records stopped the scan early; review the output",
			"regions", res.Truncated)
		return fmt.Errorf("%w: %d unterminated region(s); %s was written but may be incomplete",
			ErrDegraded, res.Truncated, cfg.SBSOut)
	}
	return nil
}

func confirm() (bool, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return false, errors.New("stdin is not a terminal; re-run with --yes to skip confirmation")
	}

	fmt.Print("Please review the .csv files. Continue and write the cleaned-up snapshot? [y/N]: ")

	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false, fmt.Errorf("read input: %w", err)
	}
	response = strings.TrimSpace(strings.ToLower(response))

	return response == "y" || response == "yes", nil
}

func csvFormat() report.Format {
	var delim rune
	for _, r := range cfg.CSVDelimiter {
		delim = r
		break
	}
	return report.Format{Delimiter: delim, DecimalComma: cfg.CSVDecimalComma}
}

func writeCSV(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
