package calculators_test

import (
	"testing"

	"github.com/KirkDiggler/character-sheet/internal/dice"
	"github.com/KirkDiggler/character-sheet/internal/domain/calculators"
	"github.com/KirkDiggler/character-sheet/internal/domain/character"
	"github.com/KirkDiggler/character-sheet/internal/domain/equipment"
	sheeterr "github.com/KirkDiggler/character-sheet/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

var twoHandSwing = equipment.WeaponClass{Heft: equipment.HeftTwoHanded, Type: equipment.WeaponTypeSwing}

func newChar(str, dex int) *character.Character {
	c := character.New("c1", "Test")
	c.Base.Strength = str
	c.Base.Dexterity = dex
	return c
}

func TestAttackBonus(t *testing.T) {
	tests := []struct {
		name     string
		str, dex int
		weapon   *equipment.Weapon
		skills   map[equipment.WeaponClass]int
		expected int
	}{
		{
			name:     "strength weapon without skill",
			str:      3,
			dex:      1,
			weapon:   &equipment.Weapon{Attribute: equipment.AttributeStrength, AttackBonus: 1},
			expected: 4,
		},
		{
			name:     "dexterity weapon",
			str:      3,
			dex:      2,
			weapon:   &equipment.Weapon{Attribute: equipment.AttributeDexterity},
			expected: 2,
		},
		{
			name:     "no attribute uses the higher score",
			str:      1,
			dex:      4,
			weapon:   &equipment.Weapon{AttackBonus: 1},
			expected: 5,
		},
		{
			name:     "negative attribute floors to zero",
			str:      -3,
			dex:      -1,
			weapon:   &equipment.Weapon{Attribute: equipment.AttributeStrength, AttackBonus: 2},
			expected: 2,
		},
		{
			name:     "final bonus is not floored",
			str:      0,
			weapon:   &equipment.Weapon{Attribute: equipment.AttributeStrength, AttackBonus: -2},
			expected: -2,
		},
		{
			name:     "matching weapon skill",
			str:      2,
			weapon:   &equipment.Weapon{Attribute: equipment.AttributeStrength, Class: twoHandSwing},
			skills:   map[equipment.WeaponClass]int{twoHandSwing: 3},
			expected: 5,
		},
		{
			name:   "skill for a different class does not apply",
			str:    2,
			weapon: &equipment.Weapon{Attribute: equipment.AttributeStrength, Class: twoHandSwing},
			skills: map[equipment.WeaponClass]int{
				{Heft: equipment.HeftTwoHanded, Type: equipment.WeaponTypeThrust}: 3,
			},
			expected: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newChar(tt.str, tt.dex)
			c.Skills.Weapons = tt.skills

			assert.Equal(t, tt.expected, calculators.AttackBonus(c, tt.weapon))
		})
	}
}

func TestAttackBonus_Example(t *testing.T) {
	c := newChar(3, 0)
	w := &equipment.Weapon{Attribute: equipment.AttributeStrength, AttackBonus: 1}

	assert.Equal(t, "+4", calculators.FormatBonus(calculators.AttackBonus(c, w)))
}

func TestAttackBonus_Formula(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		c := newChar(rapid.IntRange(-10, 10).Draw(t, "str"), rapid.IntRange(-10, 10).Draw(t, "dex"))
		attr := rapid.SampledFrom([]equipment.Attribute{
			equipment.AttributeStrength,
			equipment.AttributeDexterity,
			equipment.AttributeHigher,
		}).Draw(t, "attribute")
		w := &equipment.Weapon{
			Attribute:   attr,
			AttackBonus: rapid.IntRange(-5, 5).Draw(t, "flat"),
			Class:       twoHandSwing,
		}
		skill := rapid.IntRange(0, 5).Draw(t, "skill")
		if skill > 0 {
			c.Skills.Weapons = map[equipment.WeaponClass]int{twoHandSwing: skill}
		}

		var chosen int
		switch attr {
		case equipment.AttributeStrength:
			chosen = max(0, c.Base.Strength)
		case equipment.AttributeDexterity:
			chosen = max(0, c.Base.Dexterity)
		default:
			chosen = max(0, c.Base.Strength, c.Base.Dexterity)
		}

		assert.Equal(t, chosen+skill+w.AttackBonus, calculators.AttackBonus(c, w))
	})
}

func TestDamageBonus(t *testing.T) {
	w := &equipment.Weapon{DamageBonus: 2}

	assert.Equal(t, 5, calculators.DamageBonus(newChar(3, 9), w))
	assert.Equal(t, 2, calculators.DamageBonus(newChar(-4, 0), w))
	assert.Equal(t, 0, calculators.DamageBonus(nil, nil))
}

func TestTotalDamageReduction(t *testing.T) {
	calc := calculators.NewStatCalculator(nil)
	c := newChar(0, 0)

	assert.Equal(t, 0, calc.TotalDamageReduction(c))
	assert.Equal(t, "", calc.DamageReductionDie(c))

	require.NoError(t, c.AddArmor(&equipment.Armor{ID: "a", Name: "Mail", Category: equipment.ArmorCategoryMedium, EnchantmentBonus: 2}))
	assert.Equal(t, 0, calc.TotalDamageReduction(c), "unequipped armor contributes nothing")

	require.NoError(t, c.EquipArmor("a"))
	assert.Equal(t, 5, calc.TotalDamageReduction(c))
	assert.Equal(t, "d8", calc.DamageReductionDie(c))
}

func TestTotalDamageReduction_NoArmorIsZero(t *testing.T) {
	calc := calculators.NewStatCalculator(equipment.DefaultArmorTable())

	rapid.Check(t, func(t *rapid.T) {
		c := newChar(rapid.Int().Draw(t, "str"), rapid.Int().Draw(t, "dex"))
		n := rapid.IntRange(0, 4).Draw(t, "armors")
		for i := 0; i < n; i++ {
			category := rapid.SampledFrom(equipment.ArmorCategories).Draw(t, "category")
			c.Inventory.Armor = append(c.Inventory.Armor, &equipment.Armor{
				ID:               string(rune('a' + i)),
				Category:         category,
				EnchantmentBonus: rapid.IntRange(0, 3).Draw(t, "enchant"),
			})
		}

		assert.Equal(t, 0, calc.TotalDamageReduction(c))
	})
}

func TestEvasionAndParry(t *testing.T) {
	calc := calculators.NewStatCalculator(nil)
	c := newChar(0, 3)
	c.Skills.Dodge = 2
	c.Skills.Parry = 1

	assert.Equal(t, 5, calc.Evasion(c))
	assert.Equal(t, 1, calculators.Parry(c))

	require.NoError(t, c.AddArmor(&equipment.Armor{ID: "plate", Name: "Plate", Category: equipment.ArmorCategoryHeavy, Equipped: true}))
	require.NoError(t, c.AddShield(&equipment.Shield{ID: "s", Name: "Kite", ParryBonus: 2, MaxDurability: 4, Durability: 4, Equipped: true}))

	assert.Equal(t, 2, calc.Evasion(c))
	assert.Equal(t, 3, calculators.Parry(c))
	assert.Equal(t, 0, calculators.Parry(nil))
}

func TestFormatBonus(t *testing.T) {
	assert.Equal(t, "+3", calculators.FormatBonus(3))
	assert.Equal(t, "-1", calculators.FormatBonus(-1))
	assert.Equal(t, "+0", calculators.FormatBonus(0))
}

func TestDiceType(t *testing.T) {
	assert.Equal(t, "d8", calculators.DiceType(3))
	assert.Equal(t, "d7", calculators.DiceType(7))
	assert.Equal(t, "d20", calculators.DiceType(6))
	assert.Equal(t, "3d10", calculators.DamageDice(&equipment.Weapon{DiceType: equipment.DiceD10, DiceCount: 3}))
}

func TestSummarize(t *testing.T) {
	calc := calculators.NewStatCalculator(nil)
	c := newChar(3, 1)
	c.Base.HitPoints, c.Base.MaxHitPoints = 8, 10
	c.Base.BuildPoints = character.BuildPoints{Earned: 5, Spent: 2}
	require.NoError(t, c.AddWeapon(&equipment.Weapon{
		ID:          "w",
		Name:        "Maul",
		DiceType:    equipment.DiceD6,
		DiceCount:   2,
		Attribute:   equipment.AttributeStrength,
		AttackBonus: 1,
		Equipped:    true,
	}))
	require.NoError(t, c.AddArmor(&equipment.Armor{ID: "a", Name: "Hide", Category: equipment.ArmorCategoryLight, Equipped: true}))

	s := calc.Summarize(c)
	assert.Equal(t, 3, s.BuildPoints)
	assert.Equal(t, 1, s.DamageReduction)
	assert.Equal(t, "d4", s.DamageReductionDie)
	assert.Equal(t, 2, s.Threshold)
	require.Len(t, s.Weapons, 1)
	assert.Equal(t, calculators.WeaponLine{
		ID:          "w",
		Name:        "Maul",
		Dice:        "2d6",
		AttackBonus: "+4",
		DamageBonus: "+3",
		Equipped:    true,
	}, s.Weapons[0])

	assert.Equal(t, &calculators.Summary{}, calc.Summarize(nil))
}

func TestRollDamage(t *testing.T) {
	c := newChar(2, 0)
	w := &equipment.Weapon{ID: "w", Name: "Axe", DiceType: equipment.DiceD8, DiceCount: 2, DamageBonus: 1}

	result, err := calculators.RollDamage(dice.NewScriptedRoller(5, 7), c, w)
	require.NoError(t, err)
	assert.Equal(t, 15, result.Total)
	assert.Equal(t, []int{5, 7}, result.Rolls)
	assert.Equal(t, 3, result.Bonus)

	_, err = calculators.RollDamage(dice.NewScriptedRoller(), c, &equipment.Weapon{Name: "Stick"})
	assert.True(t, sheeterr.IsInvalidArgument(err))

	_, err = calculators.RollDamage(dice.NewScriptedRoller(1), c, w)
	assert.Error(t, err)

	huge := &equipment.Weapon{ID: "h", Name: "Avalanche", DiceType: equipment.DiceD6, DiceCount: 1_000_000}
	_, err = calculators.RollDamage(dice.NewScriptedRoller(), c, huge)
	assert.True(t, sheeterr.IsInvalidArgument(err))
}
