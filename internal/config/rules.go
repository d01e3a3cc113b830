package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/raphaelgruber/gridsweep/internal/rules"
)

// rulesFile mirrors rules.Ruleset with every list optional, so a file can
// override just one list and inherit the rest of the built-ins.
type rulesFile struct {
	PartTypes               []string `yaml:"part_types"`
	TypesToDisable          []string `yaml:"types_to_disable"`
	RespawnShipNames        []string `yaml:"respawn_ship_names"`
	DefaultGridNamePatterns []string `yaml:"default_grid_name_patterns"`
	DefaultBeaconNames      []string `yaml:"default_beacon_names"`
}

// LoadRules returns the built-in ruleset, with any lists present in the
// YAML file at path overriding the defaults. An empty path returns the
// built-ins unchanged.
func LoadRules(path string) (rules.Ruleset, error) {
	rs := rules.DefaultRuleset()
	if path == "" {
		return rs, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return rs, fmt.Errorf("read rules file: %w", err)
	}

	var file rulesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return rs, fmt.Errorf("parse rules file: %w", err)
	}

	if file.PartTypes != nil {
		rs.PartTypes = file.PartTypes
	}
	if file.TypesToDisable != nil {
		rs.TypesToDisable = file.TypesToDisable
	}
	if file.RespawnShipNames != nil {
		rs.RespawnShipNames = file.RespawnShipNames
	}
	if file.DefaultGridNamePatterns != nil {
		rs.DefaultGridNamePatterns = file.DefaultGridNamePatterns
	}
	if file.DefaultBeaconNames != nil {
		rs.DefaultBeaconNames = file.DefaultBeaconNames
	}

	return rs, nil
}
