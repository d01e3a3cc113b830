package sweep

import (
	"bytes"
	"fmt"

	"github.com/raphaelgruber/gridsweep/internal/models"
	"github.com/raphaelgruber/gridsweep/internal/patch"
)

// Literal byte markers of the save format. The snapshot is spliced, never
// re-serialized, so whitespace, encoding and attribute order outside the
// edited spans survive byte for byte and the result stays diffable and
// loadable by the game.
const (
	gridStartMarker = `<MyObjectBuilder_EntityBase xsi:type="MyObjectBuilder_CubeGrid">`
	gridEndMarker   = `</MyObjectBuilder_EntityBase>`
	entityIDFormat  = "<EntityId>%d</EntityId>"

	blockStartMarker = "<MyObjectBuilder_CubeBlock "
	blockEndMarker   = "</MyObjectBuilder_CubeBlock>"
	blockTypeFormat  = `xsi:type="%s"`

	// The enabled literal carries its line break and indentation so the
	// rewrite cannot touch an unrelated Enabled element of a nested record.
	enabledLiteral  = "\n          <Enabled>true</Enabled>"
	disabledLiteral = "\n          <Enabled>false</Enabled>"
)

// ApplyResult reports what a clean-up pass did to the snapshot.
type ApplyResult struct {
	// Content is the patched snapshot.
	Content []byte

	// GridsRemoved counts excised grid records.
	GridsRemoved int

	// BlocksDisabled counts blocks whose Enabled flag was switched off.
	BlocksDisabled int

	// Truncated counts unterminated records across both passes. Nonzero
	// means part of the snapshot was left unedited; the caller must surface
	// it so silent data loss is detectable.
	Truncated int
}

// Apply patches content: first every grid in the plan's selection is
// excised (matched by its entity id, with surrounding whitespace), then
// every remaining block of one of disableTypes has its first enabled flag
// switched off. content itself is not modified.
func Apply(content []byte, plan *models.DeletionPlan, disableTypes []string) ApplyResult {
	idNeedles := make([][]byte, 0, len(plan.Delete))
	for _, id := range plan.DeleteIDs() {
		idNeedles = append(idNeedles, fmt.Appendf(nil, entityIDFormat, id))
	}

	deleted := patch.Replace(content,
		[]byte(gridStartMarker), []byte(gridEndMarker),
		patch.ContainsAny(idNeedles), patch.Excise, true)

	typeNeedles := make([][]byte, 0, len(disableTypes))
	for _, t := range disableTypes {
		typeNeedles = append(typeNeedles, fmt.Appendf(nil, blockTypeFormat, t))
	}

	enabled := []byte(enabledLiteral)
	isEnabledOfType := func(buf []byte, start, end int) bool {
		if !bytes.Contains(buf[start:end], enabled) {
			return false
		}
		return patch.ContainsAny(typeNeedles)(buf, start, end)
	}

	disabled := patch.Replace(deleted.Buf,
		[]byte(blockStartMarker), []byte(blockEndMarker),
		isEnabledOfType, patch.SwapOnce(enabled, []byte(disabledLiteral)), true)

	return ApplyResult{
		Content:        disabled.Buf,
		GridsRemoved:   deleted.Matched,
		BlocksDisabled: disabled.Matched,
		Truncated:      deleted.Truncated + disabled.Truncated,
	}
}
