// Package testutils holds fixtures and container helpers shared by tests.
package testutils

import (
	"github.com/KirkDiggler/character-sheet/internal/domain/character"
	"github.com/KirkDiggler/character-sheet/internal/domain/equipment"
)

// CreateTestCharacter creates a sheet with one item of every kind, nothing
// equipped or attuned
func CreateTestCharacter(id, name string) *character.Character {
	char := character.New(id, name)
	char.Base = character.Base{
		Strength:     2,
		Dexterity:    1,
		HitPoints:    12,
		MaxHitPoints: 12,
		Energy:       4,
		MaxEnergy:    4,
		BuildPoints:  character.BuildPoints{Earned: 10},
	}
	char.Inventory = character.Inventory{
		Weapons: []*equipment.Weapon{CreateTestWeapon(id+"-sword", "Longsword")},
		Armor: []*equipment.Armor{
			{ID: id + "-mail", Name: "Chain Mail", Category: equipment.ArmorCategoryMedium},
		},
		Shields: []*equipment.Shield{
			{ID: id + "-shield", Name: "Heater", ParryBonus: 1, Durability: 8, MaxDurability: 8},
		},
		Equipment: []*equipment.Equipment{
			{ID: id + "-ring", Name: "Ring of Warding", Quantity: 1, RequiresAttunement: true},
		},
		Consumables: []*equipment.Consumable{
			{ID: id + "-potion", Name: "Healing Potion", Quantity: 2, StatEffected: equipment.StatHitPoints, StatModifier: 5},
		},
		Gold: 15,
	}
	return char
}

// CreateTestWeapon creates a one-handed swinging d8 weapon
func CreateTestWeapon(id, name string) *equipment.Weapon {
	return &equipment.Weapon{
		ID:        id,
		Name:      name,
		DiceType:  equipment.DiceD8,
		DiceCount: 1,
		Attribute: equipment.AttributeStrength,
		Class:     equipment.WeaponClass{Heft: equipment.HeftOneHanded, Type: equipment.WeaponTypeSwing},
		Versatile: true,
	}
}
