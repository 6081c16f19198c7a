package calculators

import (
	"github.com/KirkDiggler/character-sheet/internal/dice"
	"github.com/KirkDiggler/character-sheet/internal/domain/character"
	"github.com/KirkDiggler/character-sheet/internal/domain/equipment"
	sheeterr "github.com/KirkDiggler/character-sheet/internal/errors"
)

// WeaponLine is the derived attack row for one weapon
type WeaponLine struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Dice        string `json:"dice"`
	AttackBonus string `json:"attackBonus"`
	DamageBonus string `json:"damageBonus"`
	Equipped    bool   `json:"equipped"`
}

// Summary is every display value for a sheet, already formatted
type Summary struct {
	ID                 string       `json:"id"`
	Name               string       `json:"name"`
	HitPoints          int          `json:"hitPoints"`
	MaxHitPoints       int          `json:"maxHitPoints"`
	Energy             int          `json:"energy"`
	MaxEnergy          int          `json:"maxEnergy"`
	BuildPoints        int          `json:"buildPoints"`
	Evasion            int          `json:"evasion"`
	Parry              int          `json:"parry"`
	DamageReduction    int          `json:"damageReduction"`
	DamageReductionDie string       `json:"damageReductionDie,omitempty"`
	Threshold          int          `json:"threshold"`
	Attuned            int          `json:"attuned"`
	Gold               int          `json:"gold"`
	Weapons            []WeaponLine `json:"weapons"`
}

// Summarize derives the full display block for a character
func (c *StatCalculator) Summarize(char *character.Character) *Summary {
	if char == nil {
		return &Summary{}
	}

	s := &Summary{
		ID:                 char.ID,
		Name:               char.Name,
		HitPoints:          char.Base.HitPoints,
		MaxHitPoints:       char.Base.MaxHitPoints,
		Energy:             char.Base.Energy,
		MaxEnergy:          char.Base.MaxEnergy,
		BuildPoints:        char.Base.BuildPoints.Remaining(),
		Evasion:            c.Evasion(char),
		Parry:              Parry(char),
		DamageReduction:    c.TotalDamageReduction(char),
		DamageReductionDie: c.DamageReductionDie(char),
		Threshold:          c.ArmorStats(char).Threshold,
		Attuned:            char.Inventory.AttunedCount(),
		Gold:               char.Inventory.Gold,
	}

	for _, w := range char.Inventory.Weapons {
		if w == nil {
			continue
		}
		s.Weapons = append(s.Weapons, WeaponLine{
			ID:          w.ID,
			Name:        w.Name,
			Dice:        DamageDice(w),
			AttackBonus: FormatBonus(AttackBonus(char, w)),
			DamageBonus: FormatBonus(DamageBonus(char, w)),
			Equipped:    w.Equipped,
		})
	}
	return s
}

// RollDamage rolls the weapon's dice plus its damage bonus
func RollDamage(roller dice.Roller, char *character.Character, weapon *equipment.Weapon) (*dice.RollResult, error) {
	if roller == nil {
		return nil, sheeterr.InvalidArgument("roller is required")
	}
	if weapon == nil {
		return nil, sheeterr.InvalidArgument("weapon is required")
	}
	if weapon.DiceType.Sides() < 1 {
		return nil, sheeterr.InvalidArgumentf("weapon %s has no damage die", weapon.Name).
			WithMeta("item_id", weapon.ID)
	}

	if weapon.DiceCount > equipment.MaxDiceCount {
		return nil, sheeterr.InvalidArgumentf("weapon %s rolls more than %d dice", weapon.Name, equipment.MaxDiceCount).
			WithMeta("item_id", weapon.ID)
	}

	count := max(weapon.DiceCount, 1)
	result, err := roller.Roll(count, weapon.DiceType.Sides(), DamageBonus(char, weapon))
	if err != nil {
		return nil, sheeterr.Wrapf(err, "failed to roll damage for %s", weapon.Name)
	}
	return result, nil
}
