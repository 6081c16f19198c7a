// Package rules holds the tunable game tables: per-category armor stat blocks
// and the build-point cost curve for skill levels. Defaults are built in; a
// YAML file may override either table.
package rules

import (
	"errors"
	"fmt"
	"os"

	"github.com/KirkDiggler/character-sheet/internal/domain/character"
	"github.com/KirkDiggler/character-sheet/internal/domain/equipment"
	"gopkg.in/yaml.v3"
)

// DefaultSkillCosts is the cost of reaching levels 1 through 5
var DefaultSkillCosts = []int{1, 2, 3, 5, 8}

type Rules struct {
	Armor      equipment.ArmorTable `yaml:"armor"`
	SkillCosts []int                `yaml:"skill_costs"`
}

// Default returns the built-in tables
func Default() *Rules {
	costs := make([]int, len(DefaultSkillCosts))
	copy(costs, DefaultSkillCosts)
	return &Rules{
		Armor:      equipment.DefaultArmorTable(),
		SkillCosts: costs,
	}
}

// Load reads a rules file over the defaults. Categories the file omits keep
// their default block; a skill_costs list replaces the default curve.
// An empty path returns the defaults.
func Load(path string) (*Rules, error) {
	r := Default()
	if path == "" {
		return r, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("rules.Load: cannot read file %q: %w", path, err)
	}
	if err := r.merge(data); err != nil {
		return nil, fmt.Errorf("rules.Load: %q: %w", path, err)
	}
	return r, nil
}

// Parse reads rules YAML over the defaults
func Parse(data []byte) (*Rules, error) {
	r := Default()
	if err := r.merge(data); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Rules) merge(data []byte) error {
	var file Rules
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("cannot parse rules: %w", err)
	}

	for category, stats := range file.Armor {
		r.Armor[category] = stats
	}
	if file.SkillCosts != nil {
		r.SkillCosts = file.SkillCosts
	}

	if err := r.Validate(); err != nil {
		return fmt.Errorf("invalid rules: %w", err)
	}
	return nil
}

// Validate requires a complete armor table and a positive, strictly
// increasing cost curve
func (r *Rules) Validate() error {
	var errs []error
	if err := r.Armor.Validate(); err != nil {
		errs = append(errs, err)
	}

	if len(r.SkillCosts) == 0 {
		errs = append(errs, errors.New("skill_costs must not be empty"))
	}
	for i, cost := range r.SkillCosts {
		if cost <= 0 {
			errs = append(errs, fmt.Errorf("skill_costs[%d] must be > 0", i))
		}
		if i > 0 && cost <= r.SkillCosts[i-1] {
			errs = append(errs, fmt.Errorf("skill_costs[%d] must be greater than skill_costs[%d]", i, i-1))
		}
	}
	return errors.Join(errs...)
}

// CostFunc returns the skill cost curve backed by SkillCosts
func (r *Rules) CostFunc() character.CostFunc {
	return TableCost(r.SkillCosts)
}

// TableCost charges costs[level-1]. Past the end of the table the curve keeps
// growing by its final step. Levels below 1 cost nothing.
func TableCost(costs []int) character.CostFunc {
	table := make([]int, len(costs))
	copy(table, costs)

	return func(level int) int {
		if level < 1 || len(table) == 0 {
			return 0
		}
		if level <= len(table) {
			return table[level-1]
		}

		last := table[len(table)-1]
		step := last
		if len(table) > 1 {
			step = last - table[len(table)-2]
		}
		return last + (level-len(table))*step
	}
}
