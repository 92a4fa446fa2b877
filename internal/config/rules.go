package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/sjperalta/cabinet-api/internal/access"
	"github.com/sjperalta/cabinet-api/internal/rules"
)

// RulesFile is the TOML document holding the price and tier table and the role PINs
type RulesFile struct {
	rules.Table
	Roles map[string]string `toml:"roles"`
}

// LoadRules reads the rules file at path over the built-in defaults.
// An empty path returns the defaults.
func LoadRules(path string) (rules.Table, map[string]string, error) {
	file := RulesFile{Table: rules.DefaultTable(), Roles: access.DefaultPins()}
	if path == "" {
		return file.Table, file.Roles, nil
	}

	md, err := toml.DecodeFile(path, &file)
	if err != nil {
		return rules.Table{}, nil, fmt.Errorf("failed to read rules file %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return rules.Table{}, nil, fmt.Errorf("unknown keys in rules file %s: %v", path, undecoded)
	}
	if err := file.Table.Validate(); err != nil {
		return rules.Table{}, nil, err
	}
	for role, pin := range file.Roles {
		if pin == "" {
			return rules.Table{}, nil, fmt.Errorf("role %s has an empty PIN", role)
		}
	}
	return file.Table, file.Roles, nil
}
