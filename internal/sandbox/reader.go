package sandbox

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/raphaelgruber/gridsweep/internal/models"
)

// Record type discriminators used by the save format.
const (
	TypeCubeGrid = "MyObjectBuilder_CubeGrid"

	TypeBeacon    = "MyObjectBuilder_Beacon"
	TypeBattery   = "MyObjectBuilder_BatteryBlock"
	TypeReactor   = "MyObjectBuilder_Reactor"
	TypeProjector = "MyObjectBuilder_Projector"
	TypeTimer     = "MyObjectBuilder_TimerBlock"
)

// ReadDefinitions parses the definitions document and returns the identity
// to display-name map. Every element carrying both an IdentityId and a
// DisplayName child contributes a mapping, wherever it sits in the tree.
func ReadDefinitions(r io.Reader) (map[int64]string, error) {
	root, err := parseTree(r)
	if err != nil {
		return nil, fmt.Errorf("parse definitions: %w", err)
	}

	names := make(map[int64]string)
	var walkErr error
	root.Walk(func(n *Node) {
		if walkErr != nil {
			return
		}
		idNode := n.Child("IdentityId")
		nameNode := n.Child("DisplayName")
		if idNode == nil || nameNode == nil {
			return
		}
		id, err := strconv.ParseInt(idNode.Text, 10, 64)
		if err != nil {
			walkErr = fmt.Errorf("parse identity id %q: %w", idNode.Text, err)
			return
		}
		names[id] = nameNode.Text
	})
	if walkErr != nil {
		return nil, walkErr
	}

	return names, nil
}

// ReadWorld parses the world snapshot and returns one Grid per cube grid
// entity under SectorObjects, in document order. Owner identities are
// resolved against names; an unknown identity is a hard error so the owner
// id and owner name lists can never fall out of lockstep.
func ReadWorld(r io.Reader, names map[int64]string) ([]*models.Grid, error) {
	root, err := parseTree(r)
	if err != nil {
		return nil, fmt.Errorf("parse world: %w", err)
	}

	entities := typed(root.Path("SectorObjects", "MyObjectBuilder_EntityBase"), TypeCubeGrid)

	grids := make([]*models.Grid, 0, len(entities))
	for _, entity := range entities {
		grid, err := readGrid(entity, names)
		if err != nil {
			return nil, err
		}
		grids = append(grids, grid)
	}

	return grids, nil
}

func readGrid(entity *Node, names map[int64]string) (*models.Grid, error) {
	id, err := strconv.ParseInt(entity.ChildText("EntityId"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parse entity id %q: %w", entity.ChildText("EntityId"), err)
	}

	grid := &models.Grid{
		ID:              id,
		Name:            entity.ChildText("DisplayName"),
		DeletionReasons: []string{},
	}

	blocks := entity.Path("CubeBlocks", "MyObjectBuilder_CubeBlock")
	grid.BlockCount = len(blocks)

	typeSet := make(map[string]bool)
	ownerSeen := make(map[int64]bool)

	for _, block := range blocks {
		if block.Type != "" {
			typeSet[block.Type] = true
		}

		// Owners, deduplicated in first-seen order.
		for _, ownerNode := range block.Path("Owner") {
			ownerID, err := strconv.ParseInt(ownerNode.Text, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("grid %d: parse owner id %q: %w", id, ownerNode.Text, err)
			}
			if ownerSeen[ownerID] {
				continue
			}
			ownerSeen[ownerID] = true
			grid.OwnerIDs = append(grid.OwnerIDs, ownerID)
		}

		switch block.Type {
		case TypeBeacon:
			grid.BeaconCount++
			if nameNode := block.Child("CustomName"); nameNode != nil {
				grid.CustomBeaconNames = append(grid.CustomBeaconNames, nameNode.Text)
			}
		case TypeBattery:
			grid.BatteryCount++
			power, err := numericField(block, "CurrentStoredPower")
			if err != nil {
				return nil, fmt.Errorf("grid %d: %w", id, err)
			}
			grid.StoredPower += power
		case TypeReactor:
			grid.ReactorCount++
			amount, err := inventoryAmount(block)
			if err != nil {
				return nil, fmt.Errorf("grid %d: %w", id, err)
			}
			grid.ReactorUranium += amount
		case TypeProjector:
			grid.ProjectorCount++
			grid.ProjectedBlocks += len(block.Path("ProjectedGrid", "CubeBlocks", "MyObjectBuilder_CubeBlock"))
		case TypeTimer:
			grid.TimerCount++
			if block.ChildText("Enabled") == "true" {
				grid.EnabledTimerCount++
			}
		}
	}

	for _, ownerID := range grid.OwnerIDs {
		name, ok := names[ownerID]
		if !ok {
			return nil, fmt.Errorf("grid %d (%q): owner identity %d has no display name", id, grid.Name, ownerID)
		}
		grid.OwnerNames = append(grid.OwnerNames, name)
	}

	grid.BlockTypes = make([]string, 0, len(typeSet))
	for t := range typeSet {
		grid.BlockTypes = append(grid.BlockTypes, t)
	}
	sort.Strings(grid.BlockTypes)

	return grid, nil
}

// numericField reads an optional numeric child element. A missing or empty
// element counts as zero; a present but malformed value is an error.
func numericField(n *Node, tag string) (float64, error) {
	text := n.ChildText(tag)
	if text == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %s %q: %w", tag, text, err)
	}
	return v, nil
}

// inventoryAmount sums the Amount of every inventory item in the block.
func inventoryAmount(block *Node) (float64, error) {
	var total float64
	for _, item := range block.Path("Inventory", "Items", "MyObjectBuilder_InventoryItem") {
		amount, err := numericField(item, "Amount")
		if err != nil {
			return 0, err
		}
		total += amount
	}
	return total, nil
}
