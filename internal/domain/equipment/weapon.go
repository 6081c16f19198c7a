package equipment

import (
	"errors"
	"fmt"
	"strings"
)

// Attribute selects which score drives a weapon's attack bonus
type Attribute string

const (
	AttributeStrength  Attribute = "str"
	AttributeDexterity Attribute = "dex"
	// AttributeHigher uses whichever of strength and dexterity is higher
	AttributeHigher Attribute = ""
)

// Heft is the first axis of a weapon classification
type Heft string

const (
	HeftLight     Heft = "Light"
	HeftOneHanded Heft = "1H"
	HeftTwoHanded Heft = "2H"
)

// WeaponType is the second axis of a weapon classification
type WeaponType string

const (
	WeaponTypeSwing  WeaponType = "Swing"
	WeaponTypeThrust WeaponType = "Thrust"
	WeaponTypeRanged WeaponType = "Ranged"
	WeaponTypeThrown WeaponType = "Thrown"
)

// WeaponClass is the (heft, type) pair matched against learned weapon skills.
// It encodes as text ("2H/Swing") so it can key JSON maps; the zero class
// encodes as "".
type WeaponClass struct {
	Heft Heft
	Type WeaponType
}

func (c WeaponClass) String() string {
	return string(c.Heft) + "/" + string(c.Type)
}

// IsZero reports an unclassified weapon
func (c WeaponClass) IsZero() bool {
	return c.Heft == "" && c.Type == ""
}

// Complete reports whether both axes are set. Only zero or complete classes
// survive the text encoding.
func (c WeaponClass) Complete() bool {
	return c.Heft != "" && c.Type != ""
}

func (c WeaponClass) MarshalText() ([]byte, error) {
	if c.IsZero() {
		return []byte{}, nil
	}
	return []byte(c.String()), nil
}

func (c *WeaponClass) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*c = WeaponClass{}
		return nil
	}
	parsed, err := ParseWeaponClass(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseWeaponClass parses "heft/type"
func ParseWeaponClass(s string) (WeaponClass, error) {
	heft, kind, ok := strings.Cut(s, "/")
	if !ok || heft == "" || kind == "" {
		return WeaponClass{}, fmt.Errorf("invalid weapon class %q: want heft/type", s)
	}
	return WeaponClass{Heft: Heft(heft), Type: WeaponType(kind)}, nil
}

// MaxDiceCount bounds how many damage dice a weapon may roll
const MaxDiceCount = 100

type Weapon struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	DiceType    DiceType    `json:"diceType"`
	DiceCount   int         `json:"diceCount"`
	AttackBonus int         `json:"attackBonus"`
	DamageBonus int         `json:"damageBonus"`
	Attribute   Attribute   `json:"attribute"`
	Class       WeaponClass `json:"class"`
	Versatile   bool        `json:"versatile"`
	TwoHanded   bool        `json:"twoHanded"`
	Equipped    bool        `json:"equipped"`
}

// Check reports a class with one axis missing or a dice count outside
// [0, MaxDiceCount]
func (w *Weapon) Check() error {
	var errs []error
	if !w.Class.IsZero() && !w.Class.Complete() {
		errs = append(errs, fmt.Errorf("weapon class %q needs both heft and type", w.Class.String()))
	}
	if w.DiceCount < 0 || w.DiceCount > MaxDiceCount {
		errs = append(errs, fmt.Errorf("dice count %d outside [0, %d]", w.DiceCount, MaxDiceCount))
	}
	return errors.Join(errs...)
}

func (w *Weapon) GetID() string         { return w.ID }
func (w *Weapon) GetName() string       { return w.Name }
func (w *Weapon) GetItemType() ItemType { return ItemTypeWeapon }

// Dice renders the damage dice, e.g. "2d8". A zero count is shown as one die.
func (w *Weapon) Dice() string {
	count := w.DiceCount
	if count < 1 {
		count = 1
	}
	return fmt.Sprintf("%d%s", count, w.DiceType)
}
