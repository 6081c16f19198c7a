// Package calculators derives display values from a character sheet. Nothing
// here mutates the character.
package calculators

import (
	"fmt"

	"github.com/KirkDiggler/character-sheet/internal/domain/character"
	"github.com/KirkDiggler/character-sheet/internal/domain/equipment"
)

// StatCalculator computes derived stats against one armor table
type StatCalculator struct {
	armor equipment.ArmorTable
}

// NewStatCalculator creates a calculator; a nil table uses the built-in one
func NewStatCalculator(armor equipment.ArmorTable) *StatCalculator {
	if armor == nil {
		armor = equipment.DefaultArmorTable()
	}
	return &StatCalculator{armor: armor}
}

// AttributeBonus is the floored attribute term the weapon's declared
// attribute selects. With no attribute declared the higher of the two
// floored scores is used.
func AttributeBonus(char *character.Character, weapon *equipment.Weapon) int {
	if char == nil {
		return 0
	}

	str := max(char.Base.Strength, 0)
	dex := max(char.Base.Dexterity, 0)
	if weapon == nil {
		return max(str, dex)
	}

	switch weapon.Attribute {
	case equipment.AttributeStrength:
		return str
	case equipment.AttributeDexterity:
		return dex
	default:
		return max(str, dex)
	}
}

// WeaponSkillBonus is the level learned for the weapon's class, 0 if none
func WeaponSkillBonus(char *character.Character, weapon *equipment.Weapon) int {
	if char == nil || weapon == nil || weapon.Class.IsZero() {
		return 0
	}
	return char.Skills.WeaponLevel(weapon.Class)
}

// AttackBonus = attribute bonus + weapon skill level + the weapon's flat bonus.
// Only the attribute term is floored, so the result may be negative.
func AttackBonus(char *character.Character, weapon *equipment.Weapon) int {
	if weapon == nil {
		return AttributeBonus(char, nil)
	}
	return AttributeBonus(char, weapon) + WeaponSkillBonus(char, weapon) + weapon.AttackBonus
}

// DamageBonus = floored strength + the weapon's flat damage bonus
func DamageBonus(char *character.Character, weapon *equipment.Weapon) int {
	bonus := 0
	if char != nil {
		bonus = max(char.Base.Strength, 0)
	}
	if weapon != nil {
		bonus += weapon.DamageBonus
	}
	return bonus
}

// ArmorStats returns the table block for the equipped armor, zero when none
func (c *StatCalculator) ArmorStats(char *character.Character) equipment.ArmorStats {
	if char == nil {
		return equipment.ArmorStats{}
	}
	armor := char.Inventory.EquippedArmor()
	if armor == nil {
		return equipment.ArmorStats{}
	}
	return c.armor.Stats(armor.Category)
}

// TotalDamageReduction is the equipped armor's flat reduction plus its
// enchantment. No armor means no reduction.
func (c *StatCalculator) TotalDamageReduction(char *character.Character) int {
	if char == nil {
		return 0
	}
	armor := char.Inventory.EquippedArmor()
	if armor == nil {
		return 0
	}
	return c.armor.Stats(armor.Category).DamageReduction + armor.EnchantmentBonus
}

// DamageReductionDie renders the armor's reduction die, "" when it has none
func (c *StatCalculator) DamageReductionDie(char *character.Character) string {
	die := c.ArmorStats(char).DamageReductionDie
	if die == equipment.DiceNone {
		return ""
	}
	return die.String()
}

// Evasion = floored dexterity + dodge - the armor's evasion reduction
func (c *StatCalculator) Evasion(char *character.Character) int {
	if char == nil {
		return 0
	}
	return max(char.Base.Dexterity, 0) + char.Skills.Dodge - c.ArmorStats(char).EvasionReduction
}

// Parry = parry skill + the equipped shield's parry bonus. A broken shield
// still counts.
func Parry(char *character.Character) int {
	if char == nil {
		return 0
	}
	parry := char.Skills.Parry
	if shield := char.Inventory.EquippedShield(); shield != nil {
		parry += shield.ParryBonus
	}
	return parry
}

// FormatBonus renders a signed bonus: "+3", "-1", "+0"
func FormatBonus(n int) string {
	return fmt.Sprintf("%+d", n)
}

// DiceType maps a die ordinal to its label: 3 is "d8", 7 falls back to "d7"
func DiceType(ordinal int) string {
	return equipment.DiceType(ordinal).String()
}

// DamageDice renders the weapon's dice, e.g. "2d8"
func DamageDice(weapon *equipment.Weapon) string {
	if weapon == nil {
		return ""
	}
	return weapon.Dice()
}
