// Package models defines the domain types shared across the pipeline.
package models

// Grid represents one top-level cube grid read from the world snapshot,
// together with the aggregates computed over its blocks.
type Grid struct {
	ID         int64
	Name       string
	OwnerIDs   []int64
	OwnerNames []string

	BlockCount        int
	BeaconCount       int
	CustomBeaconNames []string
	BatteryCount      int
	StoredPower       float64
	ReactorCount      int
	ReactorUranium    float64
	ProjectorCount    int
	ProjectedBlocks   int
	TimerCount        int
	EnabledTimerCount int

	// BlockTypes is the sorted distinct set of block type tags on this grid.
	BlockTypes []string

	// PartOfSomething is set by the classifier when the grid carries a
	// mechanical joint block (wheel, rotor, piston top) and is therefore
	// probably a sub-part of another grid.
	PartOfSomething bool

	// DeletionReasons is append-only; the decision engine adds one label
	// per matched rule group, in evaluation order.
	DeletionReasons []string
}

// HasOwner reports whether any block on the grid has an owner.
func (g *Grid) HasOwner() bool {
	return len(g.OwnerIDs) > 0
}

// HasBlockType reports whether the grid contains a block of the given type.
func (g *Grid) HasBlockType(blockType string) bool {
	for _, t := range g.BlockTypes {
		if t == blockType {
			return true
		}
	}
	return false
}

// DeletionPlan is the reviewable output of the planning phase. It is pure
// data: nothing is touched until the plan is applied.
type DeletionPlan struct {
	// Grids holds every grid in the snapshot, in document order.
	Grids []*Grid

	// Delete holds the selected subset, deduplicated by grid id, in
	// selection order.
	Delete []*Grid
}

// Empty reports whether the plan selects nothing.
func (p *DeletionPlan) Empty() bool {
	return len(p.Delete) == 0
}

// DeleteIDs returns the ids of the selected grids.
func (p *DeletionPlan) DeleteIDs() []int64 {
	ids := make([]int64, len(p.Delete))
	for i, g := range p.Delete {
		ids[i] = g.ID
	}
	return ids
}
