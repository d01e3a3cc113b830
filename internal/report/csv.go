// Package report renders the audit for human review: CSV tables for
// spreadsheets and a styled terminal summary. Formatting is driven by an
// explicit Format value, never by the process locale.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/raphaelgruber/gridsweep/internal/models"
)

// typePrefix is stripped from block type tags in reports.
const typePrefix = "MyObjectBuilder_"

// Format configures the CSV output.
type Format struct {
	// Delimiter separates fields. Defaults to ',' when zero.
	Delimiter rune

	// DecimalComma renders floats with a decimal comma, for spreadsheet
	// locales that expect it. Combined with a comma delimiter this would be
	// ambiguous, so the delimiter falls back to ';' in that case.
	DecimalComma bool
}

func (f Format) delimiter() rune {
	switch {
	case f.DecimalComma && (f.Delimiter == ',' || f.Delimiter == 0):
		return ';'
	case f.Delimiter == 0:
		return ','
	default:
		return f.Delimiter
	}
}

func (f Format) float(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if f.DecimalComma {
		s = strings.Replace(s, ".", ",", 1)
	}
	return s
}

var gridHeader = []string{
	"Name", "Owners", "Blocks",
	"Beacons", "Custom Beacon Names",
	"Batteries", "Stored Power",
	"Reactors", "Reactor Uranium Amount",
	"Projectors", "Projected Blocks",
	"Timers", "Enabled Timers",
	"Block Types", "Deletion Reasons",
}

// WriteGrids writes one row per grid, in the given order.
func WriteGrids(w io.Writer, grids []*models.Grid, format Format) error {
	cw := csv.NewWriter(w)
	cw.Comma = format.delimiter()

	if err := cw.Write(gridHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, grid := range grids {
		row := []string{
			grid.Name,
			strings.Join(grid.OwnerNames, ", "),
			strconv.Itoa(grid.BlockCount),
			strconv.Itoa(grid.BeaconCount),
			strings.Join(grid.CustomBeaconNames, ", "),
			strconv.Itoa(grid.BatteryCount),
			format.float(grid.StoredPower),
			strconv.Itoa(grid.ReactorCount),
			format.float(grid.ReactorUranium),
			strconv.Itoa(grid.ProjectorCount),
			strconv.Itoa(grid.ProjectedBlocks),
			strconv.Itoa(grid.TimerCount),
			strconv.Itoa(grid.EnabledTimerCount),
			strings.Join(shortTypes(grid.BlockTypes), ", "),
			strings.Join(grid.DeletionReasons, ", "),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write grid %d: %w", grid.ID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WritePlayers writes the last-seen table, sorted by player name.
func WritePlayers(w io.Writer, seen map[string]time.Time, format Format) error {
	cw := csv.NewWriter(w)
	cw.Comma = format.delimiter()

	if err := cw.Write([]string{"Name", "Last Seen"}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		row := []string{name, seen[name].Format("2006-01-02 15:04:05")}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write player %q: %w", name, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func shortTypes(types []string) []string {
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = strings.TrimPrefix(t, typePrefix)
	}
	return out
}
