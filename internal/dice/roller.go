package dice

import (
	"fmt"
	"strconv"
	"strings"
)

// Roller rolls dice. Inject a scripted roller in tests.
type Roller interface {
	// Roll rolls count dice with the given sides and adds bonus
	Roll(count, sides, bonus int) (*RollResult, error)
}

// RollResult contains detailed information about a dice roll
type RollResult struct {
	Total int   `json:"total"`
	Rolls []int `json:"rolls"`
	Bonus int   `json:"bonus"`
	Count int   `json:"count"`
	Sides int   `json:"sides"`
}

// Notation renders the roll the way a player writes it: "2d6+3"
func (r *RollResult) Notation() string {
	return Notation(r.Count, r.Sides, r.Bonus)
}

func (r *RollResult) String() string {
	compact := strings.ReplaceAll(fmt.Sprintf("%v", r.Rolls), " ", ",")
	return fmt.Sprintf("%s = %d %s", r.Notation(), r.Total, compact)
}

// Notation renders count, sides and bonus as "2d6", "1d8+2" or "1d4-1"
func Notation(count, sides, bonus int) string {
	switch {
	case bonus > 0:
		return fmt.Sprintf("%dd%d+%d", count, sides, bonus)
	case bonus < 0:
		return fmt.Sprintf("%dd%d%d", count, sides, bonus)
	}
	return fmt.Sprintf("%dd%d", count, sides)
}

// Parse reads "XdY", "XdY+Z" or "XdY-Z". A missing count means one die.
func Parse(notation string) (count, sides, bonus int, err error) {
	s := strings.ToLower(strings.TrimSpace(notation))
	dice, mod := s, ""
	if i := strings.IndexAny(s, "+-"); i >= 0 {
		dice, mod = s[:i], s[i:]
	}

	countStr, sidesStr, ok := strings.Cut(dice, "d")
	if !ok {
		return 0, 0, 0, fmt.Errorf("invalid dice notation %q", notation)
	}

	count = 1
	if countStr != "" {
		if count, err = strconv.Atoi(countStr); err != nil {
			return 0, 0, 0, fmt.Errorf("invalid dice count in %q", notation)
		}
	}
	if sides, err = strconv.Atoi(sidesStr); err != nil {
		return 0, 0, 0, fmt.Errorf("invalid dice sides in %q", notation)
	}
	if mod != "" {
		if bonus, err = strconv.Atoi(mod); err != nil {
			return 0, 0, 0, fmt.Errorf("invalid bonus in %q", notation)
		}
	}
	if count < 1 || sides < 1 {
		return 0, 0, 0, fmt.Errorf("invalid dice notation %q", notation)
	}

	return count, sides, bonus, nil
}

func validate(count, sides int) error {
	if count < 1 {
		return fmt.Errorf("invalid dice count %d", count)
	}
	if sides < 1 {
		return fmt.Errorf("invalid dice size %d", sides)
	}
	return nil
}
