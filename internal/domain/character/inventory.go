package character

import (
	"github.com/KirkDiggler/character-sheet/internal/domain/equipment"
	sheeterr "github.com/KirkDiggler/character-sheet/internal/errors"
)

// MaxAttunements is how many equipment items may be attuned at once
const MaxAttunements = 3

type Inventory struct {
	Weapons     []*equipment.Weapon     `json:"weapons"`
	Armor       []*equipment.Armor      `json:"armor"`
	Shields     []*equipment.Shield     `json:"shields"`
	Equipment   []*equipment.Equipment  `json:"equipment"`
	Consumables []*equipment.Consumable `json:"consumables"`
	Gold        int                     `json:"gold"`
}

// EquippedArmor returns the worn armor or nil
func (i *Inventory) EquippedArmor() *equipment.Armor {
	for _, a := range i.Armor {
		if a != nil && a.Equipped {
			return a
		}
	}
	return nil
}

// EquippedShield returns the carried shield or nil
func (i *Inventory) EquippedShield() *equipment.Shield {
	for _, s := range i.Shields {
		if s != nil && s.Equipped {
			return s
		}
	}
	return nil
}

// EquippedWeapons returns every weapon flagged as equipped
func (i *Inventory) EquippedWeapons() []*equipment.Weapon {
	var equipped []*equipment.Weapon
	for _, w := range i.Weapons {
		if w != nil && w.Equipped {
			equipped = append(equipped, w)
		}
	}
	return equipped
}

// AttunedCount counts attuned equipment
func (i *Inventory) AttunedCount() int {
	count := 0
	for _, e := range i.Equipment {
		if e != nil && e.Attuned {
			count++
		}
	}
	return count
}

// Find returns the item with the given id from any list
func (i *Inventory) Find(id string) equipment.Item {
	for _, w := range i.Weapons {
		if w != nil && w.ID == id {
			return w
		}
	}
	for _, a := range i.Armor {
		if a != nil && a.ID == id {
			return a
		}
	}
	for _, s := range i.Shields {
		if s != nil && s.ID == id {
			return s
		}
	}
	for _, e := range i.Equipment {
		if e != nil && e.ID == id {
			return e
		}
	}
	for _, c := range i.Consumables {
		if c != nil && c.ID == id {
			return c
		}
	}
	return nil
}

func (i *Inventory) weapon(id string) (*equipment.Weapon, error) {
	for _, w := range i.Weapons {
		if w != nil && w.ID == id {
			return w, nil
		}
	}
	return nil, itemNotFound(equipment.ItemTypeWeapon, id)
}

func (i *Inventory) armor(id string) (*equipment.Armor, error) {
	for _, a := range i.Armor {
		if a != nil && a.ID == id {
			return a, nil
		}
	}
	return nil, itemNotFound(equipment.ItemTypeArmor, id)
}

func (i *Inventory) shield(id string) (*equipment.Shield, error) {
	for _, s := range i.Shields {
		if s != nil && s.ID == id {
			return s, nil
		}
	}
	return nil, itemNotFound(equipment.ItemTypeShield, id)
}

func (i *Inventory) gear(id string) (*equipment.Equipment, error) {
	for _, e := range i.Equipment {
		if e != nil && e.ID == id {
			return e, nil
		}
	}
	return nil, itemNotFound(equipment.ItemTypeEquipment, id)
}

func (i *Inventory) consumable(id string) (*equipment.Consumable, error) {
	for _, c := range i.Consumables {
		if c != nil && c.ID == id {
			return c, nil
		}
	}
	return nil, itemNotFound(equipment.ItemTypeConsumable, id)
}

func itemNotFound(itemType equipment.ItemType, id string) error {
	return sheeterr.NotFoundf("%s '%s' not found", itemType, id).
		WithMeta("item_id", id)
}
