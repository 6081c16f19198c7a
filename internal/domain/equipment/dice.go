package equipment

import "fmt"

// DiceType is the ordinal a weapon or armor stores for its die.
// 1..6 map to d4, d6, d8, d10, d12 and d20.
type DiceType int

const (
	DiceNone DiceType = 0
	DiceD4   DiceType = 1
	DiceD6   DiceType = 2
	DiceD8   DiceType = 3
	DiceD10  DiceType = 4
	DiceD12  DiceType = 5
	DiceD20  DiceType = 6
)

var diceSides = map[DiceType]int{
	DiceD4:  4,
	DiceD6:  6,
	DiceD8:  8,
	DiceD10: 10,
	DiceD12: 12,
	DiceD20: 20,
}

// Sides returns the number of faces. Ordinals outside the table are taken
// literally, so 7 rolls as a d7.
func (d DiceType) Sides() int {
	if sides, ok := diceSides[d]; ok {
		return sides
	}
	return int(d)
}

// String renders the die, e.g. "d8"
func (d DiceType) String() string {
	return fmt.Sprintf("d%d", d.Sides())
}

// Known reports whether the ordinal is one of the six standard dice
func (d DiceType) Known() bool {
	_, ok := diceSides[d]
	return ok
}
