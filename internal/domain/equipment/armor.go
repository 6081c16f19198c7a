package equipment

import (
	"errors"
	"fmt"
)

type ArmorCategory string

const (
	ArmorCategoryUnarmored  ArmorCategory = "Unarmored"
	ArmorCategoryLight      ArmorCategory = "Light"
	ArmorCategoryReinforced ArmorCategory = "Reinforced"
	ArmorCategoryMedium     ArmorCategory = "Medium"
	ArmorCategoryHeavy      ArmorCategory = "Heavy"
	ArmorCategoryFortified  ArmorCategory = "Fortified"
)

// ArmorCategories lists every category from lightest to heaviest
var ArmorCategories = []ArmorCategory{
	ArmorCategoryUnarmored,
	ArmorCategoryLight,
	ArmorCategoryReinforced,
	ArmorCategoryMedium,
	ArmorCategoryHeavy,
	ArmorCategoryFortified,
}

// ArmorStats is the fixed stat block every armor of a category shares
type ArmorStats struct {
	EvasionReduction   int      `json:"evasionReduction" yaml:"evasion_reduction"`
	DamageReductionDie DiceType `json:"damageReductionDie" yaml:"damage_reduction_die"`
	DamageReduction    int      `json:"damageReduction" yaml:"damage_reduction"`
	Threshold          int      `json:"threshold" yaml:"threshold"`
	Durability         int      `json:"durability" yaml:"durability"`
}

// Validate reports negative values or an unknown die
func (s ArmorStats) Validate() error {
	var errs []error
	if s.EvasionReduction < 0 {
		errs = append(errs, errors.New("evasion_reduction must be >= 0"))
	}
	if s.DamageReductionDie != DiceNone && !s.DamageReductionDie.Known() {
		errs = append(errs, fmt.Errorf("damage_reduction_die %d is not a known die", s.DamageReductionDie))
	}
	if s.DamageReduction < 0 {
		errs = append(errs, errors.New("damage_reduction must be >= 0"))
	}
	if s.Threshold < 0 {
		errs = append(errs, errors.New("threshold must be >= 0"))
	}
	if s.Durability < 0 {
		errs = append(errs, errors.New("durability must be >= 0"))
	}
	return errors.Join(errs...)
}

// ArmorTable maps each category to its stat block
type ArmorTable map[ArmorCategory]ArmorStats

// DefaultArmorTable returns the built-in stat blocks
func DefaultArmorTable() ArmorTable {
	return ArmorTable{
		ArmorCategoryUnarmored:  {},
		ArmorCategoryLight:      {EvasionReduction: 0, DamageReductionDie: DiceD4, DamageReduction: 1, Threshold: 2, Durability: 10},
		ArmorCategoryReinforced: {EvasionReduction: 1, DamageReductionDie: DiceD6, DamageReduction: 2, Threshold: 3, Durability: 15},
		ArmorCategoryMedium:     {EvasionReduction: 2, DamageReductionDie: DiceD8, DamageReduction: 3, Threshold: 4, Durability: 20},
		ArmorCategoryHeavy:      {EvasionReduction: 3, DamageReductionDie: DiceD10, DamageReduction: 4, Threshold: 5, Durability: 25},
		ArmorCategoryFortified:  {EvasionReduction: 4, DamageReductionDie: DiceD12, DamageReduction: 5, Threshold: 6, Durability: 30},
	}
}

// Stats returns the block for a category; unknown categories count as unarmored
func (t ArmorTable) Stats(category ArmorCategory) ArmorStats {
	if t == nil {
		return ArmorStats{}
	}
	return t[category]
}

// Validate requires a block for every category
func (t ArmorTable) Validate() error {
	var errs []error
	for _, category := range ArmorCategories {
		stats, ok := t[category]
		if !ok {
			errs = append(errs, fmt.Errorf("armor category %s is missing", category))
			continue
		}
		if err := stats.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("armor category %s: %w", category, err))
		}
	}
	for category := range t {
		if !category.Valid() {
			errs = append(errs, fmt.Errorf("unknown armor category %q", category))
		}
	}
	return errors.Join(errs...)
}

// Valid reports whether c is one of the six categories
func (c ArmorCategory) Valid() bool {
	for _, known := range ArmorCategories {
		if c == known {
			return true
		}
	}
	return false
}

type Armor struct {
	ID               string        `json:"id"`
	Name             string        `json:"name"`
	Category         ArmorCategory `json:"category"`
	EnchantmentBonus int           `json:"enchantmentBonus"`
	Equipped         bool          `json:"equipped"`
}

func (a *Armor) GetID() string         { return a.ID }
func (a *Armor) GetName() string       { return a.Name }
func (a *Armor) GetItemType() ItemType { return ItemTypeArmor }
