// Package repo loads report plan definitions: YAML documents describing the
// named subqueries, the terminal query, and optional chart directives. A
// definitions directory can be synced from a git repository.
package repo

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"snowreport/internal/query"
	"snowreport/pkg/errors"
)

// Chart describes an optional visualization for a plan result.
type Chart struct {
	Type string `yaml:"type"` // "bar" or "line"
	X    string `yaml:"x"`    // label/x-axis column
	Y    string `yaml:"y"`    // value column
	Top  int    `yaml:"top"`  // bar chart: number of rows to keep
}

// Definition is a report plan document.
type Definition struct {
	query.Plan `yaml:",inline"`
	Chart      *Chart `yaml:"chart"`
}

// LoadPlanFile reads and validates a single plan document.
func LoadPlanFile(path string) (*Definition, error) {
	data, err := os.ReadFile(path) // #nosec G304 - path comes from the CLI argument
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDefsNotFound,
			fmt.Sprintf("Failed to read plan file %s", path))
	}

	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDefsInvalid,
			fmt.Sprintf("Failed to parse plan file %s", path))
	}

	if def.Name == "" {
		base := filepath.Base(path)
		def.Name = base[:len(base)-len(filepath.Ext(base))]
	}
	if def.Title == "" {
		def.Title = def.Name
	}

	if err := def.Validate(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDefsInvalid,
			fmt.Sprintf("Plan %s does not compose", def.Name))
	}

	if def.Chart != nil {
		switch def.Chart.Type {
		case "bar", "line":
		default:
			return nil, errors.New(errors.ErrCodeDefsInvalid,
				fmt.Sprintf("Plan %s has unknown chart type %q", def.Name, def.Chart.Type))
		}
	}

	return &def, nil
}

// LoadDir loads every .yaml/.yml plan in dir, sorted by name.
func LoadDir(dir string) ([]*Definition, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDefsNotFound,
			fmt.Sprintf("Failed to read definitions directory %s", dir)).
			WithSuggestions("Run 'snowreport defs pull' to sync report definitions")
	}

	var defs []*Definition
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext != ".yaml" && ext != ".yml" {
			continue
		}

		def, err := LoadPlanFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}

	sort.Slice(defs, func(i, j int) bool { return defs[i].Name < defs[j].Name })
	return defs, nil
}
