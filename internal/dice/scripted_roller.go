package dice

import (
	"fmt"
	"sync"
)

// ScriptedRoller returns predetermined die faces in order. It is meant for
// tests and for replaying a table's physical rolls.
type ScriptedRoller struct {
	mu        sync.Mutex
	rolls     []int
	rollIndex int
}

func NewScriptedRoller(rolls ...int) *ScriptedRoller {
	return &ScriptedRoller{rolls: rolls}
}

// SetRolls replaces the script and rewinds it
func (m *ScriptedRoller) SetRolls(rolls ...int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rolls = rolls
	m.rollIndex = 0
}

// Remaining reports how many scripted faces are left
func (m *ScriptedRoller) Remaining() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rolls) - m.rollIndex
}

func (m *ScriptedRoller) Roll(count, sides, bonus int) (*RollResult, error) {
	if err := validate(count, sides); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.rollIndex+count > len(m.rolls) {
		return nil, fmt.Errorf("no more scripted rolls available (used %d of %d, need %d)", m.rollIndex, len(m.rolls), count)
	}

	rolls := make([]int, count)
	total := bonus
	for i := range rolls {
		roll := m.rolls[m.rollIndex+i]
		if roll < 1 || roll > sides {
			return nil, fmt.Errorf("invalid roll %d for d%d", roll, sides)
		}
		rolls[i] = roll
		total += roll
	}
	m.rollIndex += count

	return &RollResult{
		Total: total,
		Rolls: rolls,
		Bonus: bonus,
		Count: count,
		Sides: sides,
	}, nil
}
