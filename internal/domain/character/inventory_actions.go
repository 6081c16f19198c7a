package character

import (
	"fmt"
	"strings"

	"github.com/KirkDiggler/character-sheet/internal/domain/equipment"
	sheeterr "github.com/KirkDiggler/character-sheet/internal/errors"
)

// rejected builds the validation error returned by every refused transition
func rejected(cause error, format string, args ...any) *sheeterr.Error {
	return sheeterr.WrapWithCode(cause, sheeterr.CodeValidation, fmt.Sprintf(format, args...))
}

func (c *Character) checkNewItem(item equipment.Item) error {
	if strings.TrimSpace(item.GetID()) == "" {
		return sheeterr.InvalidArgument("item ID is required")
	}
	if strings.TrimSpace(item.GetName()) == "" {
		return sheeterr.InvalidArgument("item name is required")
	}
	if c.Inventory.Find(item.GetID()) != nil {
		return sheeterr.AlreadyExistsf("item with ID '%s' already exists", item.GetID()).
			WithMeta("item_id", item.GetID())
	}
	return nil
}

func (c *Character) AddWeapon(w *equipment.Weapon) error {
	if w == nil {
		return sheeterr.InvalidArgument("weapon cannot be nil")
	}
	if err := c.checkNewItem(w); err != nil {
		return err
	}
	if err := w.Check(); err != nil {
		return sheeterr.InvalidArgumentf("weapon %s: %v", w.Name, err).WithMeta("item_id", w.ID)
	}

	c.Inventory.Weapons = append(c.Inventory.Weapons, w)
	return nil
}

// AddArmor adds armor; armor that arrives equipped displaces the worn piece
func (c *Character) AddArmor(a *equipment.Armor) error {
	if a == nil {
		return sheeterr.InvalidArgument("armor cannot be nil")
	}
	if err := c.checkNewItem(a); err != nil {
		return err
	}
	if a.Category == "" {
		a.Category = equipment.ArmorCategoryUnarmored
	}
	if !a.Category.Valid() {
		return sheeterr.InvalidArgumentf("unknown armor category %q", a.Category)
	}

	if a.Equipped {
		for _, other := range c.Inventory.Armor {
			other.Equipped = false
		}
	}
	c.Inventory.Armor = append(c.Inventory.Armor, a)
	return nil
}

// AddShield adds a shield; a shield that arrives equipped displaces the carried one
func (c *Character) AddShield(s *equipment.Shield) error {
	if s == nil {
		return sheeterr.InvalidArgument("shield cannot be nil")
	}
	if err := c.checkNewItem(s); err != nil {
		return err
	}
	if s.MaxDurability < 0 {
		return sheeterr.InvalidArgument("shield max durability must not be negative")
	}
	if s.Durability < 0 || s.Durability > s.MaxDurability {
		s.Durability = s.MaxDurability
	}

	if s.Equipped {
		for _, other := range c.Inventory.Shields {
			other.Equipped = false
		}
	}
	c.Inventory.Shields = append(c.Inventory.Shields, s)
	return nil
}

// AddEquipment adds an item; it always starts unattuned
func (c *Character) AddEquipment(e *equipment.Equipment) error {
	if e == nil {
		return sheeterr.InvalidArgument("equipment cannot be nil")
	}
	if err := c.checkNewItem(e); err != nil {
		return err
	}
	if !e.StatEffected.Valid() {
		return sheeterr.InvalidArgumentf("unknown stat %q", e.StatEffected)
	}

	e.Attuned = false
	c.Inventory.Equipment = append(c.Inventory.Equipment, e)
	return nil
}

func (c *Character) AddConsumable(item *equipment.Consumable) error {
	if item == nil {
		return sheeterr.InvalidArgument("consumable cannot be nil")
	}
	if err := c.checkNewItem(item); err != nil {
		return err
	}
	if !item.StatEffected.Valid() {
		return sheeterr.InvalidArgumentf("unknown stat %q", item.StatEffected)
	}
	if item.Quantity < 0 {
		return sheeterr.InvalidArgument("quantity must not be negative")
	}

	c.Inventory.Consumables = append(c.Inventory.Consumables, item)
	return nil
}

// Remove deletes the item with the given id from whichever list holds it
func (c *Character) Remove(id string) error {
	inv := &c.Inventory
	if idx := indexOf(inv.Weapons, id); idx >= 0 {
		inv.Weapons = append(inv.Weapons[:idx], inv.Weapons[idx+1:]...)
		return nil
	}
	if idx := indexOf(inv.Armor, id); idx >= 0 {
		inv.Armor = append(inv.Armor[:idx], inv.Armor[idx+1:]...)
		return nil
	}
	if idx := indexOf(inv.Shields, id); idx >= 0 {
		inv.Shields = append(inv.Shields[:idx], inv.Shields[idx+1:]...)
		return nil
	}
	if idx := indexOf(inv.Equipment, id); idx >= 0 {
		inv.Equipment = append(inv.Equipment[:idx], inv.Equipment[idx+1:]...)
		return nil
	}
	if idx := indexOf(inv.Consumables, id); idx >= 0 {
		inv.Consumables = append(inv.Consumables[:idx], inv.Consumables[idx+1:]...)
		return nil
	}

	return sheeterr.NotFoundf("item '%s' not found", id).WithMeta("item_id", id)
}

func indexOf[T equipment.Item](items []T, id string) int {
	for i, item := range items {
		if item.GetID() == id {
			return i
		}
	}
	return -1
}

// EquipArmor wears the armor and takes off any other
func (c *Character) EquipArmor(id string) error {
	target, err := c.Inventory.armor(id)
	if err != nil {
		return err
	}

	for _, a := range c.Inventory.Armor {
		a.Equipped = false
	}
	target.Equipped = true
	return nil
}

func (c *Character) UnequipArmor(id string) error {
	target, err := c.Inventory.armor(id)
	if err != nil {
		return err
	}

	target.Equipped = false
	return nil
}

// EquipShield readies the shield and puts away any other
func (c *Character) EquipShield(id string) error {
	target, err := c.Inventory.shield(id)
	if err != nil {
		return err
	}

	for _, s := range c.Inventory.Shields {
		s.Equipped = false
	}
	target.Equipped = true
	return nil
}

func (c *Character) UnequipShield(id string) error {
	target, err := c.Inventory.shield(id)
	if err != nil {
		return err
	}

	target.Equipped = false
	return nil
}

// ToggleWeapon flips the weapon's equipped flag and returns the new state.
// Any number of weapons may be equipped.
func (c *Character) ToggleWeapon(id string) (bool, error) {
	w, err := c.Inventory.weapon(id)
	if err != nil {
		return false, err
	}

	w.Equipped = !w.Equipped
	return w.Equipped, nil
}

// ToggleEquipment flips the item's equipped flag and returns the new state
func (c *Character) ToggleEquipment(id string) (bool, error) {
	e, err := c.Inventory.gear(id)
	if err != nil {
		return false, err
	}

	e.Equipped = !e.Equipped
	return e.Equipped, nil
}

// Attune binds an equipment item. It is rejected once MaxAttunements items
// are attuned; attuning an already attuned item is a no-op.
func (c *Character) Attune(id string) error {
	e, err := c.Inventory.gear(id)
	if err != nil {
		return err
	}
	if e.Attuned {
		return nil
	}

	if c.Inventory.AttunedCount() >= MaxAttunements {
		return rejected(ErrAttunementLimit, "cannot attune %s: already attuned to %d items", e.Name, MaxAttunements).
			WithMeta("item_id", id)
	}

	e.Attuned = true
	return nil
}

// Unattune always succeeds for a known item
func (c *Character) Unattune(id string) error {
	e, err := c.Inventory.gear(id)
	if err != nil {
		return err
	}

	e.Attuned = false
	return nil
}

// UseConsumable applies the item's stat modifier and decrements its quantity.
// Hit points and energy may not drop below 0; gains cap at the resource max
// when one is set. A stack that reaches zero is removed.
func (c *Character) UseConsumable(id string) error {
	item, err := c.Inventory.consumable(id)
	if err != nil {
		return err
	}
	if item.Quantity <= 0 {
		return rejected(ErrOutOfStock, "cannot use %s", item.Name).WithMeta("item_id", id)
	}

	if err := c.applyStat(item.Name, item.StatEffected, item.StatModifier); err != nil {
		return err
	}

	item.Quantity--
	if item.Quantity == 0 {
		return c.Remove(id)
	}
	return nil
}

func (c *Character) applyStat(source string, stat equipment.Stat, modifier int) error {
	switch stat {
	case equipment.StatHitPoints:
		next, err := applyResource(source, "hit points", c.Base.HitPoints, c.Base.MaxHitPoints, modifier)
		if err != nil {
			return err
		}
		c.Base.HitPoints = next
	case equipment.StatEnergy:
		next, err := applyResource(source, "energy", c.Base.Energy, c.Base.MaxEnergy, modifier)
		if err != nil {
			return err
		}
		c.Base.Energy = next
	case equipment.StatStrength:
		c.Base.Strength += modifier
	case equipment.StatDexterity:
		c.Base.Dexterity += modifier
	}
	return nil
}

func applyResource(source, resource string, current, maxValue, modifier int) (int, error) {
	next := current + modifier
	if next < 0 {
		return current, rejected(ErrResourceBelowZero, "cannot use %s: %s would drop to %d", source, resource, next).
			WithMeta("resource", resource)
	}
	if maxValue > 0 && next > maxValue {
		next = maxValue
	}
	return next, nil
}

func (c *Character) UseCharge(id string) error {
	e, err := c.Inventory.gear(id)
	if err != nil {
		return err
	}
	return e.UseCharge()
}

func (c *Character) Recharge(id string) error {
	e, err := c.Inventory.gear(id)
	if err != nil {
		return err
	}
	return e.Recharge()
}

// DamageShield lowers durability, clamped at 0, and returns the new value
func (c *Character) DamageShield(id string, amount int) (int, error) {
	if amount < 0 {
		return 0, rejected(ErrNegativeAmount, "cannot damage shield by %d", amount)
	}
	s, err := c.Inventory.shield(id)
	if err != nil {
		return 0, err
	}
	return s.Damage(amount), nil
}

// RepairShield raises durability, clamped at the max, and returns the new value
func (c *Character) RepairShield(id string, amount int) (int, error) {
	if amount < 0 {
		return 0, rejected(ErrNegativeAmount, "cannot repair shield by %d", amount)
	}
	s, err := c.Inventory.shield(id)
	if err != nil {
		return 0, err
	}
	return s.Repair(amount), nil
}

func (c *Character) AddGold(amount int) error {
	if amount <= 0 {
		return rejected(ErrNonPositiveAmount, "cannot add %d gold", amount)
	}
	c.Inventory.Gold += amount
	return nil
}

func (c *Character) SpendGold(amount int) error {
	if amount <= 0 {
		return rejected(ErrNonPositiveAmount, "cannot spend %d gold", amount)
	}
	if amount > c.Inventory.Gold {
		return rejected(ErrInsufficientGold, "cannot spend %d gold: only %d available", amount, c.Inventory.Gold)
	}
	c.Inventory.Gold -= amount
	return nil
}
