package character

import (
	"errors"
	"fmt"

	"github.com/KirkDiggler/character-sheet/internal/domain/equipment"
)

// Validate checks the structural invariants an imported sheet must satisfy.
// It reports every problem at once.
func (c *Character) Validate() error {
	var errs []error
	if c.ID == "" {
		errs = append(errs, errors.New("id is required"))
	}

	bp := c.Base.BuildPoints
	if bp.Earned < 0 || bp.Spent < 0 {
		errs = append(errs, errors.New("build points must not be negative"))
	}
	if bp.Spent > bp.Earned {
		errs = append(errs, fmt.Errorf("spent build points %d exceed earned %d", bp.Spent, bp.Earned))
	}
	if c.Base.HitPoints < 0 {
		errs = append(errs, errors.New("hit points must not be negative"))
	}
	if c.Base.Energy < 0 {
		errs = append(errs, errors.New("energy must not be negative"))
	}
	if c.Inventory.Gold < 0 {
		errs = append(errs, errors.New("gold must not be negative"))
	}
	if c.Skills.Dodge < 0 || c.Skills.Parry < 0 {
		errs = append(errs, errors.New("skill levels must not be negative"))
	}
	for class, level := range c.Skills.Weapons {
		if !class.Complete() {
			errs = append(errs, fmt.Errorf("weapon skill %q needs both heft and type", class))
		}
		if level < 0 {
			errs = append(errs, fmt.Errorf("weapon skill %s level must not be negative", class))
		}
	}

	errs = append(errs, c.Inventory.validate()...)

	for i, s := range c.Magic.Spells {
		if s == nil || s.Name == "" {
			errs = append(errs, fmt.Errorf("spell %d has no name", i))
		}
	}
	for i, n := range c.Notes {
		if n == nil || n.ID == "" {
			errs = append(errs, fmt.Errorf("note %d has no id", i))
		}
	}

	return errors.Join(errs...)
}

func (i *Inventory) validate() []error {
	var errs []error
	ids := make(map[string]bool)
	checkID := func(itemType equipment.ItemType, index int, id string) {
		switch {
		case id == "":
			errs = append(errs, fmt.Errorf("%s %d has no id", itemType, index))
		case ids[id]:
			errs = append(errs, fmt.Errorf("duplicate item id %q", id))
		}
		ids[id] = true
	}

	for idx, w := range i.Weapons {
		if w == nil {
			errs = append(errs, fmt.Errorf("weapon %d is null", idx))
			continue
		}
		checkID(equipment.ItemTypeWeapon, idx, w.ID)
		if err := w.Check(); err != nil {
			errs = append(errs, fmt.Errorf("weapon %q: %w", w.ID, err))
		}
	}

	equippedArmor := 0
	for idx, a := range i.Armor {
		if a == nil {
			errs = append(errs, fmt.Errorf("armor %d is null", idx))
			continue
		}
		checkID(equipment.ItemTypeArmor, idx, a.ID)
		if !a.Category.Valid() {
			errs = append(errs, fmt.Errorf("armor %q has unknown category %q", a.ID, a.Category))
		}
		if a.Equipped {
			equippedArmor++
		}
	}
	if equippedArmor > 1 {
		errs = append(errs, fmt.Errorf("%d armors equipped, at most 1 allowed", equippedArmor))
	}

	equippedShields := 0
	for idx, s := range i.Shields {
		if s == nil {
			errs = append(errs, fmt.Errorf("shield %d is null", idx))
			continue
		}
		checkID(equipment.ItemTypeShield, idx, s.ID)
		if s.Durability < 0 || s.Durability > s.MaxDurability {
			errs = append(errs, fmt.Errorf("shield %q durability %d outside [0, %d]", s.ID, s.Durability, s.MaxDurability))
		}
		if s.Equipped {
			equippedShields++
		}
	}
	if equippedShields > 1 {
		errs = append(errs, fmt.Errorf("%d shields equipped, at most 1 allowed", equippedShields))
	}

	attuned := 0
	for idx, e := range i.Equipment {
		if e == nil {
			errs = append(errs, fmt.Errorf("equipment %d is null", idx))
			continue
		}
		checkID(equipment.ItemTypeEquipment, idx, e.ID)
		if e.Quantity < 0 {
			errs = append(errs, fmt.Errorf("equipment %q quantity must not be negative", e.ID))
		}
		if !e.StatEffected.Valid() {
			errs = append(errs, fmt.Errorf("equipment %q has unknown stat %q", e.ID, e.StatEffected))
		}
		if e.Charges < 0 || (e.MaxCharges > 0 && e.Charges > e.MaxCharges) {
			errs = append(errs, fmt.Errorf("equipment %q charges %d outside [0, %d]", e.ID, e.Charges, e.MaxCharges))
		}
		if e.Attuned {
			attuned++
		}
	}
	if attuned > MaxAttunements {
		errs = append(errs, fmt.Errorf("%d items attuned, at most %d allowed", attuned, MaxAttunements))
	}

	for idx, item := range i.Consumables {
		if item == nil {
			errs = append(errs, fmt.Errorf("consumable %d is null", idx))
			continue
		}
		checkID(equipment.ItemTypeConsumable, idx, item.ID)
		if item.Quantity < 0 {
			errs = append(errs, fmt.Errorf("consumable %q quantity must not be negative", item.ID))
		}
		if !item.StatEffected.Valid() {
			errs = append(errs, fmt.Errorf("consumable %q has unknown stat %q", item.ID, item.StatEffected))
		}
	}

	return errs
}
