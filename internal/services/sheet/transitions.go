package sheet

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/KirkDiggler/character-sheet/internal/dice"
	"github.com/KirkDiggler/character-sheet/internal/domain/calculators"
	"github.com/KirkDiggler/character-sheet/internal/domain/character"
	"github.com/KirkDiggler/character-sheet/internal/domain/equipment"
	sheeterr "github.com/KirkDiggler/character-sheet/internal/errors"
)

func (s *service) idOr(id string) string {
	if id != "" {
		return id
	}
	return s.ids.New()
}

func (s *service) AddWeapon(w *equipment.Weapon) (string, error) {
	if w == nil {
		return "", sheeterr.InvalidArgument("weapon cannot be nil")
	}
	item := *w
	item.ID = s.idOr(item.ID)
	return item.ID, s.apply("add_weapon", func(c *character.Character) error {
		return c.AddWeapon(&item)
	})
}

func (s *service) AddArmor(a *equipment.Armor) (string, error) {
	if a == nil {
		return "", sheeterr.InvalidArgument("armor cannot be nil")
	}
	item := *a
	item.ID = s.idOr(item.ID)
	return item.ID, s.apply("add_armor", func(c *character.Character) error {
		return c.AddArmor(&item)
	})
}

func (s *service) AddShield(sh *equipment.Shield) (string, error) {
	if sh == nil {
		return "", sheeterr.InvalidArgument("shield cannot be nil")
	}
	item := *sh
	item.ID = s.idOr(item.ID)
	return item.ID, s.apply("add_shield", func(c *character.Character) error {
		return c.AddShield(&item)
	})
}

func (s *service) AddEquipment(e *equipment.Equipment) (string, error) {
	if e == nil {
		return "", sheeterr.InvalidArgument("equipment cannot be nil")
	}
	item := *e
	item.ID = s.idOr(item.ID)
	return item.ID, s.apply("add_equipment", func(c *character.Character) error {
		return c.AddEquipment(&item)
	})
}

func (s *service) AddConsumable(con *equipment.Consumable) (string, error) {
	if con == nil {
		return "", sheeterr.InvalidArgument("consumable cannot be nil")
	}
	item := *con
	item.ID = s.idOr(item.ID)
	return item.ID, s.apply("add_consumable", func(c *character.Character) error {
		return c.AddConsumable(&item)
	})
}

func (s *service) RemoveItem(id string) error {
	return s.apply("remove_item", func(c *character.Character) error { return c.Remove(id) })
}

func (s *service) EquipArmor(id string) error {
	return s.apply("equip_armor", func(c *character.Character) error { return c.EquipArmor(id) })
}

func (s *service) UnequipArmor(id string) error {
	return s.apply("unequip_armor", func(c *character.Character) error { return c.UnequipArmor(id) })
}

func (s *service) EquipShield(id string) error {
	return s.apply("equip_shield", func(c *character.Character) error { return c.EquipShield(id) })
}

func (s *service) UnequipShield(id string) error {
	return s.apply("unequip_shield", func(c *character.Character) error { return c.UnequipShield(id) })
}

func (s *service) ToggleWeapon(id string) (bool, error) {
	var equipped bool
	err := s.apply("toggle_weapon", func(c *character.Character) (err error) {
		equipped, err = c.ToggleWeapon(id)
		return err
	})
	return equipped, err
}

func (s *service) ToggleEquipment(id string) (bool, error) {
	var equipped bool
	err := s.apply("toggle_equipment", func(c *character.Character) (err error) {
		equipped, err = c.ToggleEquipment(id)
		return err
	})
	return equipped, err
}

func (s *service) Attune(id string) error {
	return s.apply("attune", func(c *character.Character) error { return c.Attune(id) })
}

func (s *service) Unattune(id string) error {
	return s.apply("unattune", func(c *character.Character) error { return c.Unattune(id) })
}

func (s *service) UseConsumable(id string) error {
	return s.apply("use_consumable", func(c *character.Character) error { return c.UseConsumable(id) })
}

func (s *service) UseCharge(id string) error {
	return s.apply("use_charge", func(c *character.Character) error { return c.UseCharge(id) })
}

func (s *service) Recharge(id string) error {
	return s.apply("recharge", func(c *character.Character) error { return c.Recharge(id) })
}

func (s *service) DamageShield(id string, amount int) (int, error) {
	var durability int
	err := s.apply("damage_shield", func(c *character.Character) (err error) {
		durability, err = c.DamageShield(id, amount)
		return err
	})
	return durability, err
}

func (s *service) RepairShield(id string, amount int) (int, error) {
	var durability int
	err := s.apply("repair_shield", func(c *character.Character) (err error) {
		durability, err = c.RepairShield(id, amount)
		return err
	})
	return durability, err
}

func (s *service) AddGold(amount int) error {
	return s.apply("add_gold", func(c *character.Character) error { return c.AddGold(amount) })
}

func (s *service) SpendGold(amount int) error {
	return s.apply("spend_gold", func(c *character.Character) error { return c.SpendGold(amount) })
}

func (s *service) EarnPoints(amount int) error {
	return s.apply("earn_points", func(c *character.Character) error { return c.EarnPoints(amount) })
}

func (s *service) UpgradeSkill(skill string) (int, error) {
	target, err := character.ParseSkillTarget(strings.TrimSpace(skill))
	if err != nil {
		return 0, err
	}

	var level int
	err = s.apply("upgrade_skill", func(c *character.Character) (err error) {
		level, err = c.UpgradeSkill(target, s.rules.CostFunc())
		return err
	})
	return level, err
}

func (s *service) LearnSpell(ctx context.Context, name string) (*character.Spell, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, sheeterr.InvalidArgument("spell name is required")
	}

	spell, err := s.lookupSpell(ctx, name)
	if err != nil {
		return nil, err
	}

	if err := s.apply("learn_spell", func(c *character.Character) error { return c.LearnSpell(spell) }); err != nil {
		return nil, err
	}
	return spell, nil
}

// lookupSpell prefers the catalog record; when the backend is down the
// name alone is recorded
func (s *service) lookupSpell(ctx context.Context, name string) (*character.Spell, error) {
	if s.catalog == nil {
		return &character.Spell{Name: name}, nil
	}

	spell, err := s.catalog.Get(ctx, name)
	switch {
	case err == nil && spell == nil:
		return nil, sheeterr.NotFoundf("spell %s not found", name)
	case err == nil:
		return spell, nil
	case sheeterr.IsNotFound(err):
		return nil, err
	default:
		s.logger.Warn("spell catalog unavailable", zap.String("spell", name), zap.Error(err))
		return &character.Spell{Name: name}, nil
	}
}

func (s *service) ForgetSpell(name string) error {
	return s.apply("forget_spell", func(c *character.Character) error { return c.ForgetSpell(name) })
}

func (s *service) AddNote(title, body string) (*character.Note, error) {
	if strings.TrimSpace(title) == "" && strings.TrimSpace(body) == "" {
		return nil, sheeterr.InvalidArgument("note is empty")
	}

	note := &character.Note{ID: s.ids.New(), Title: title, Body: body}
	if err := s.apply("add_note", func(c *character.Character) error { return c.AddNote(note) }); err != nil {
		return nil, err
	}

	out := *note
	return &out, nil
}

func (s *service) RemoveNote(id string) error {
	return s.apply("remove_note", func(c *character.Character) error { return c.RemoveNote(id) })
}

func (s *service) RollDamage(weaponID string) (*dice.RollResult, error) {
	var result *dice.RollResult
	err := s.apply("roll_damage", func(c *character.Character) error {
		weapon, ok := c.Inventory.Find(weaponID).(*equipment.Weapon)
		if !ok {
			return sheeterr.NotFoundf("weapon '%s' not found", weaponID).WithMeta("item_id", weaponID)
		}

		var err error
		result, err = calculators.RollDamage(s.roller, c, weapon)
		return err
	})
	return result, err
}
