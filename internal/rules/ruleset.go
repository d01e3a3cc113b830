// Package rules classifies grids and decides which ones to delete. The
// decision engine is pure: it reads the grids, appends reason labels, and
// returns the selection. Acting on the selection is the caller's job.
package rules

// Rule group labels, appended to a grid's deletion reasons in evaluation
// order. The wording matches the review spreadsheets operators already know.
const (
	ReasonTrash       = "Trash"
	ReasonDefaultName = "Default Name & No Custom Beacon"
	ReasonRespawnShip = "Respawn Ship"
	ReasonInactive    = "Inactive Owners"
	ReasonDeadOwners  = "Dead-ish Owners"
	ReasonRespawnOnly = "Respawn-Ship Only Owners"
)

// trashBlockLimit is the largest block count the trash rule still deletes.
const trashBlockLimit = 50

// blockTypeMedicalRoom is the crew-revival capability checked by the
// dead-ish owners rule.
const blockTypeMedicalRoom = "MyObjectBuilder_MedicalRoom"

// Ruleset holds the name lists and type lists the engine matches against.
// The zero value is useless; start from DefaultRuleset and override fields
// from the rules file as needed.
type Ruleset struct {
	// PartTypes mark a grid as a mechanical sub-part of another grid.
	PartTypes []string `yaml:"part_types"`

	// TypesToDisable are switched off during clean-up.
	TypesToDisable []string `yaml:"types_to_disable"`

	// RespawnShipNames are exact display names of known respawn vehicles.
	RespawnShipNames []string `yaml:"respawn_ship_names"`

	// DefaultGridNamePatterns are anchored regular expressions matching
	// auto-generated grid names.
	DefaultGridNamePatterns []string `yaml:"default_grid_name_patterns"`

	// DefaultBeaconNames are beacon labels that do not protect a grid from
	// the default-name rule.
	DefaultBeaconNames []string `yaml:"default_beacon_names"`
}

// DefaultRuleset returns the built-in lists for the current game version.
func DefaultRuleset() Ruleset {
	return Ruleset{
		PartTypes: []string{
			"MyObjectBuilder_Wheel",
			"MyObjectBuilder_PistonTop",
			"MyObjectBuilder_MotorRotor",
			"MyObjectBuilder_MotorAdvancedRotor",
		},
		TypesToDisable: []string{
			"MyObjectBuilder_Drill",
			"MyObjectBuilder_OreDetector",
			"MyObjectBuilder_Projector",
			"MyObjectBuilder_TimerBlock",
			"MyObjectBuilder_ShipGrinder",
			"MyObjectBuilder_ShipWelder",
		},
		RespawnShipNames: []string{
			"Atmospheric Lander mk.1",
			"RespawnShip",
			"RespawnShip2",
		},
		DefaultGridNamePatterns: []string{
			`^Atmospheric Lander mk\.1$`,
			`^RespawnShip$`,
			`^RespawnShip2$`,
			`^Small Grid [0-9]+$`,
			`^Small Ship [0-9]+$`,
			`^Large Grid [0-9]+$`,
			`^Large Ship [0-9]+$`,
			`^Static Grid [0-9]+$`,
			`^Platform [0-9]+$`,
		},
		DefaultBeaconNames: []string{
			"Atmospheric_Lander_mk.1",
		},
	}
}
