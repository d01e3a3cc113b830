package rules

import (
	"fmt"
	"regexp"
	"slices"

	"github.com/raphaelgruber/gridsweep/internal/models"
)

// Options toggles the rule groups. A disabled group touches nothing.
type Options struct {
	// Trash deletes small, unowned grids that are not part of something.
	Trash bool

	// DefaultNames deletes auto-named grids with no protecting beacon.
	DefaultNames bool

	// RespawnShips deletes known respawn vehicles by exact name.
	RespawnShips bool

	// OwnerRules enables the three ownership rules (inactive owners,
	// dead-ish owners, respawn-ship-only owners).
	OwnerRules bool

	// AlwaysKeep lists owner names whose grids are never deleted by the
	// ownership-aware groups.
	AlwaysKeep []string
}

// Engine evaluates the rule groups over a grid collection.
type Engine struct {
	rules        Ruleset
	namePatterns []*regexp.Regexp
}

// NewEngine compiles the ruleset's name patterns.
func NewEngine(rs Ruleset) (*Engine, error) {
	e := &Engine{rules: rs}
	for _, pattern := range rs.DefaultGridNamePatterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("compile name pattern %q: %w", pattern, err)
		}
		e.namePatterns = append(e.namePatterns, re)
	}
	return e, nil
}

// Ruleset returns the engine's rule lists.
func (e *Engine) Ruleset() Ruleset {
	return e.rules
}

// Classify derives per-grid facts from the aggregates the reader computed.
// It reads nothing from the source documents.
func (e *Engine) Classify(grids []*models.Grid) {
	for _, grid := range grids {
		grid.PartOfSomething = false
		for _, t := range e.rules.PartTypes {
			if grid.HasBlockType(t) {
				grid.PartOfSomething = true
				break
			}
		}
	}
}

// SelectForDeletion evaluates the enabled rule groups over grids and returns
// the selected subset, deduplicated by grid id. Every matching group appends
// its label to the grid's deletion reasons; a grid selected by several
// groups appears once, carrying all labels in evaluation order.
//
// isActive is the externally supplied activity oracle; it is only consulted
// by the inactive-owners rule.
func (e *Engine) SelectForDeletion(grids []*models.Grid, opts Options, isActive func(name string) bool) []*models.Grid {
	var selected []*models.Grid
	selectedIDs := make(map[int64]bool)

	add := func(grid *models.Grid, reason string) {
		grid.DeletionReasons = append(grid.DeletionReasons, reason)
		if selectedIDs[grid.ID] {
			return
		}
		selectedIDs[grid.ID] = true
		selected = append(selected, grid)
	}

	if opts.Trash {
		for _, grid := range grids {
			if grid.PartOfSomething || grid.HasOwner() || grid.BlockCount > trashBlockLimit {
				continue
			}
			add(grid, ReasonTrash)
		}
	}

	if opts.DefaultNames {
		for _, grid := range grids {
			if grid.PartOfSomething {
				continue
			}
			if !e.hasDefaultName(grid.Name) {
				continue
			}
			if !e.allDeletable(grid.OwnerNames, opts.AlwaysKeep) {
				continue
			}
			if e.hasProtectingBeacon(grid) {
				continue
			}
			add(grid, ReasonDefaultName)
		}
	}

	if opts.RespawnShips {
		for _, grid := range grids {
			if slices.Contains(e.rules.RespawnShipNames, grid.Name) {
				add(grid, ReasonRespawnShip)
			}
		}
	}

	if opts.OwnerRules {
		for _, grid := range grids {
			if len(grid.OwnerNames) == 0 {
				continue
			}
			if !e.allDeletable(grid.OwnerNames, opts.AlwaysKeep) {
				continue
			}

			if allInactive(grid.OwnerNames, isActive) {
				add(grid, ReasonInactive)
			}
			if e.noOwnerHasPoweredMedicalRoom(grids, grid.OwnerNames) {
				add(grid, ReasonDeadOwners)
			}
			if e.allOwnersHaveOnlyRespawnShips(grids, grid.OwnerNames) {
				add(grid, ReasonRespawnOnly)
			}
		}
	}

	return selected
}

func (e *Engine) hasDefaultName(name string) bool {
	for _, re := range e.namePatterns {
		if re.MatchString(name) {
			return true
		}
	}
	return false
}

// hasProtectingBeacon reports whether any beacon on the grid carries a
// non-default custom label. A grid with no beacons, or whose beacons all
// carry default labels, is unprotected.
func (e *Engine) hasProtectingBeacon(grid *models.Grid) bool {
	for _, name := range grid.CustomBeaconNames {
		if !slices.Contains(e.rules.DefaultBeaconNames, name) {
			return true
		}
	}
	return false
}

// allDeletable reports whether none of the owners is on the always-keep
// list. A single kept owner protects every grid they co-own.
func (e *Engine) allDeletable(ownerNames, alwaysKeep []string) bool {
	for _, name := range ownerNames {
		if slices.Contains(alwaysKeep, name) {
			return false
		}
	}
	return true
}

func allInactive(ownerNames []string, isActive func(string) bool) bool {
	for _, name := range ownerNames {
		if isActive(name) {
			return false
		}
	}
	return true
}

// noOwnerHasPoweredMedicalRoom is a collection-wide check: it scans every
// grid in the snapshot for each owner, not just the grid under evaluation.
func (e *Engine) noOwnerHasPoweredMedicalRoom(grids []*models.Grid, ownerNames []string) bool {
	for _, name := range ownerNames {
		if ownerHasPoweredMedicalRoom(grids, name) {
			return false
		}
	}
	return true
}

func ownerHasPoweredMedicalRoom(grids []*models.Grid, name string) bool {
	for _, grid := range grids {
		if grid.StoredPower == 0 && grid.ReactorUranium == 0 {
			continue
		}
		if !grid.HasBlockType(blockTypeMedicalRoom) {
			continue
		}
		if !slices.Contains(grid.OwnerNames, name) {
			continue
		}
		return true
	}
	return false
}

func (e *Engine) allOwnersHaveOnlyRespawnShips(grids []*models.Grid, ownerNames []string) bool {
	for _, name := range ownerNames {
		if !e.ownerHasOnlyRespawnShips(grids, name) {
			return false
		}
	}
	return true
}

func (e *Engine) ownerHasOnlyRespawnShips(grids []*models.Grid, name string) bool {
	for _, grid := range grids {
		if !slices.Contains(grid.OwnerNames, name) {
			continue
		}
		if !slices.Contains(e.rules.RespawnShipNames, grid.Name) {
			return false
		}
	}
	return true
}
