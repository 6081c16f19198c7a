package character

import (
	"fmt"

	"github.com/KirkDiggler/character-sheet/internal/domain/equipment"
	sheeterr "github.com/KirkDiggler/character-sheet/internal/errors"
)

// CostFunc returns the build points needed to reach level. Implementations
// must be pure and monotonically increasing.
type CostFunc func(level int) int

type SkillKind string

const (
	SkillDodge  SkillKind = "dodge"
	SkillParry  SkillKind = "parry"
	SkillWeapon SkillKind = "weapon"
)

// SkillTarget names the skill to raise; Weapon is only read for SkillWeapon
type SkillTarget struct {
	Kind   SkillKind
	Weapon equipment.WeaponClass
}

func (t SkillTarget) String() string {
	if t.Kind == SkillWeapon {
		return fmt.Sprintf("%s %s", t.Kind, t.Weapon)
	}
	return string(t.Kind)
}

// ParseSkillTarget accepts "dodge", "parry" or a weapon class like "2H/Swing"
func ParseSkillTarget(s string) (SkillTarget, error) {
	switch SkillKind(s) {
	case SkillDodge, SkillParry:
		return SkillTarget{Kind: SkillKind(s)}, nil
	}

	class, err := equipment.ParseWeaponClass(s)
	if err != nil {
		return SkillTarget{}, sheeterr.InvalidArgumentf("unknown skill %q", s)
	}
	return SkillTarget{Kind: SkillWeapon, Weapon: class}, nil
}

// SpendPoints moves amount from remaining to spent
func (c *Character) SpendPoints(amount int) error {
	if amount <= 0 {
		return rejected(ErrNonPositiveAmount, "cannot spend %d build points", amount)
	}
	remaining := c.Base.BuildPoints.Remaining()
	if amount > remaining {
		return rejected(ErrInsufficientPoints, "need %d build points, %d remaining", amount, remaining).
			WithMeta("required", amount).
			WithMeta("remaining", remaining)
	}

	c.Base.BuildPoints.Spent += amount
	return nil
}

// RefundPoints moves amount from spent back to remaining
func (c *Character) RefundPoints(amount int) error {
	if amount <= 0 {
		return rejected(ErrNonPositiveAmount, "cannot refund %d build points", amount)
	}
	if amount > c.Base.BuildPoints.Spent {
		return rejected(ErrRefundExceedsSpent, "cannot refund %d build points, only %d spent", amount, c.Base.BuildPoints.Spent)
	}

	c.Base.BuildPoints.Spent -= amount
	return nil
}

// EarnPoints grants build points
func (c *Character) EarnPoints(amount int) error {
	if amount <= 0 {
		return rejected(ErrNonPositiveAmount, "cannot earn %d build points", amount)
	}
	c.Base.BuildPoints.Earned += amount
	return nil
}

// SkillLevel returns the current level of the targeted skill
func (c *Character) SkillLevel(target SkillTarget) int {
	switch target.Kind {
	case SkillDodge:
		return c.Skills.Dodge
	case SkillParry:
		return c.Skills.Parry
	case SkillWeapon:
		return c.Skills.WeaponLevel(target.Weapon)
	}
	return 0
}

// UpgradeSkill raises the targeted skill by one level, paying cost(next level).
// Nothing changes when the points cannot be spent.
func (c *Character) UpgradeSkill(target SkillTarget, cost CostFunc) (int, error) {
	if cost == nil {
		return 0, sheeterr.InvalidArgument("cost function is required")
	}
	if target.Kind == SkillWeapon && !target.Weapon.Complete() {
		return 0, sheeterr.InvalidArgument("weapon skill requires a heft/type weapon class")
	}

	next := c.SkillLevel(target) + 1
	switch target.Kind {
	case SkillDodge, SkillParry, SkillWeapon:
	default:
		return 0, sheeterr.InvalidArgumentf("unknown skill %q", target.Kind)
	}

	if err := c.SpendPoints(cost(next)); err != nil {
		return next - 1, err
	}

	switch target.Kind {
	case SkillDodge:
		c.Skills.Dodge = next
	case SkillParry:
		c.Skills.Parry = next
	case SkillWeapon:
		if c.Skills.Weapons == nil {
			c.Skills.Weapons = make(map[equipment.WeaponClass]int)
		}
		c.Skills.Weapons[target.Weapon] = next
	}
	return next, nil
}
