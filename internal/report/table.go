package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/raphaelgruber/gridsweep/internal/models"
)

// Theme holds the color scheme for the terminal summary.
type Theme struct {
	Header lipgloss.Color
	Keep   lipgloss.Color
	Delete lipgloss.Color
	Hint   lipgloss.Color
}

// defaultTheme provides default colors.
var defaultTheme = Theme{
	Header: lipgloss.Color("#5FAFD7"), // light blue
	Keep:   lipgloss.Color("#00D787"), // green
	Delete: lipgloss.Color("#FF005F"), // red
	Hint:   lipgloss.Color("#6C6C6C"), // dim gray
}

func (t Theme) headerStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Header).Bold(true)
}

func (t Theme) keepStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Keep)
}

func (t Theme) deleteStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Delete).Bold(true)
}

func (t Theme) hintStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Hint).Italic(true)
}

// Summary renders a terminal overview of a deletion plan: totals, the
// per-reason breakdown and the selected grids.
func Summary(plan *models.DeletionPlan) string {
	return themedSummary(plan, defaultTheme)
}

func themedSummary(plan *models.DeletionPlan, theme Theme) string {
	var b strings.Builder

	b.WriteString(theme.headerStyle().Render("Clean-up plan"))
	b.WriteByte('\n')

	kept := len(plan.Grids) - len(plan.Delete)
	fmt.Fprintf(&b, "%s  %s\n",
		theme.keepStyle().Render(fmt.Sprintf("keep %d", kept)),
		theme.deleteStyle().Render(fmt.Sprintf("delete %d", len(plan.Delete))))

	if plan.Empty() {
		return b.String()
	}

	for reason, count := range reasonCounts(plan) {
		fmt.Fprintf(&b, "  %-32s %d\n", reason, count)
	}

	b.WriteString(theme.hintStyle().Render("grids selected for deletion:"))
	b.WriteByte('\n')
	for _, grid := range plan.Delete {
		owners := strings.Join(grid.OwnerNames, ", ")
		if owners == "" {
			owners = "unowned"
		}
		fmt.Fprintf(&b, "  %s (%d blocks, %s): %s\n",
			grid.Name, grid.BlockCount, owners, strings.Join(grid.DeletionReasons, ", "))
	}

	return b.String()
}

// reasonCounts tallies reason labels over the selection, preserving the
// order in which reasons first appear.
func reasonCounts(plan *models.DeletionPlan) func(func(string, int) bool) {
	var order []string
	counts := make(map[string]int)
	for _, grid := range plan.Delete {
		for _, reason := range grid.DeletionReasons {
			if _, ok := counts[reason]; !ok {
				order = append(order, reason)
			}
			counts[reason]++
		}
	}

	return func(yield func(string, int) bool) {
		for _, reason := range order {
			if !yield(reason, counts[reason]) {
				return
			}
		}
	}
}
