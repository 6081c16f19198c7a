package equipment

import (
	sheeterr "github.com/KirkDiggler/character-sheet/internal/errors"
)

type ItemType string

const (
	ItemTypeWeapon     ItemType = "weapon"
	ItemTypeArmor      ItemType = "armor"
	ItemTypeShield     ItemType = "shield"
	ItemTypeEquipment  ItemType = "equipment"
	ItemTypeConsumable ItemType = "consumable"
)

// Item is anything that can sit in a character's inventory
type Item interface {
	GetID() string
	GetName() string
	GetItemType() ItemType
}

// Stat is the character resource or attribute an item modifies
type Stat string

const (
	StatNone      Stat = "none"
	StatHitPoints Stat = "hp"
	StatEnergy    Stat = "energy"
	StatStrength  Stat = "strength"
	StatDexterity Stat = "dexterity"
)

// Valid reports whether s is a known stat; the empty string counts as none
func (s Stat) Valid() bool {
	switch s {
	case "", StatNone, StatHitPoints, StatEnergy, StatStrength, StatDexterity:
		return true
	}
	return false
}

// Equipment is a carried, possibly magical, item. Charged items can be
// spent and recharged; some require attunement before their effect applies.
type Equipment struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Quantity           int    `json:"quantity"`
	GoldValue          int    `json:"goldValue"`
	StatEffected       Stat   `json:"statEffected"`
	StatModifier       int    `json:"statModifier"`
	Charges            int    `json:"charges"`
	MaxCharges         int    `json:"maxCharges"`
	RequiresAttunement bool   `json:"requiresAttunement"`
	Attuned            bool   `json:"attuned"`
	Equipped           bool   `json:"equipped"`
}

func (e *Equipment) GetID() string         { return e.ID }
func (e *Equipment) GetName() string       { return e.Name }
func (e *Equipment) GetItemType() ItemType { return ItemTypeEquipment }

// UseCharge spends one charge
func (e *Equipment) UseCharge() error {
	if e.MaxCharges <= 0 {
		return sheeterr.WrapWithCode(ErrNotCharged, sheeterr.CodeValidation, e.Name).
			WithMeta("item_id", e.ID)
	}
	if e.Charges <= 0 {
		return sheeterr.WrapWithCode(ErrNoCharges, sheeterr.CodeValidation, e.Name).
			WithMeta("item_id", e.ID)
	}

	e.Charges--
	return nil
}

// Recharge restores all charges
func (e *Equipment) Recharge() error {
	if e.MaxCharges <= 0 {
		return sheeterr.WrapWithCode(ErrNotCharged, sheeterr.CodeValidation, e.Name).
			WithMeta("item_id", e.ID)
	}

	e.Charges = e.MaxCharges
	return nil
}

// Consumable is a single-use stack such as a potion or ration
type Consumable struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Quantity     int    `json:"quantity"`
	GoldValue    int    `json:"goldValue"`
	StatEffected Stat   `json:"statEffected"`
	StatModifier int    `json:"statModifier"`
}

func (c *Consumable) GetID() string         { return c.ID }
func (c *Consumable) GetName() string       { return c.Name }
func (c *Consumable) GetItemType() ItemType { return ItemTypeConsumable }
