package dice_test

import (
	"testing"

	"github.com/KirkDiggler/character-sheet/internal/dice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestScriptedRoller_Roll(t *testing.T) {
	tests := []struct {
		name       string
		setupRolls []int
		count      int
		sides      int
		bonus      int
		wantTotal  int
		wantRolls  []int
		wantErr    bool
	}{
		{
			name:       "single d20 roll",
			setupRolls: []int{15},
			count:      1,
			sides:      20,
			wantTotal:  15,
			wantRolls:  []int{15},
		},
		{
			name:       "2d6+3",
			setupRolls: []int{4, 5},
			count:      2,
			sides:      6,
			bonus:      3,
			wantTotal:  12,
			wantRolls:  []int{4, 5},
		},
		{
			name:       "negative bonus",
			setupRolls: []int{1},
			count:      1,
			sides:      4,
			bonus:      -2,
			wantTotal:  -1,
			wantRolls:  []int{1},
		},
		{
			name:       "not enough rolls",
			setupRolls: []int{10},
			count:      2,
			sides:      6,
			wantErr:    true,
		},
		{
			name:       "invalid roll for die size",
			setupRolls: []int{7},
			count:      1,
			sides:      6,
			wantErr:    true,
		},
		{
			name:    "zero dice",
			count:   0,
			sides:   6,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roller := dice.NewScriptedRoller(tt.setupRolls...)

			result, err := roller.Roll(tt.count, tt.sides, tt.bonus)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantTotal, result.Total)
			assert.Equal(t, tt.wantRolls, result.Rolls)
			assert.Equal(t, tt.count, result.Count)
			assert.Equal(t, tt.sides, result.Sides)
		})
	}
}

func TestScriptedRoller_FailedRollConsumesNothing(t *testing.T) {
	roller := dice.NewScriptedRoller(3)

	_, err := roller.Roll(2, 6, 0)
	require.Error(t, err)
	assert.Equal(t, 1, roller.Remaining())

	roller.SetRolls(2, 2)
	result, err := roller.Roll(2, 4, 0)
	require.NoError(t, err)
	assert.Equal(t, 4, result.Total)
	assert.Equal(t, 0, roller.Remaining())
}

func TestRandomRoller_InRange(t *testing.T) {
	roller := dice.NewRandomRoller()

	rapid.Check(t, func(t *rapid.T) {
		count := rapid.IntRange(1, 10).Draw(t, "count")
		sides := rapid.SampledFrom([]int{4, 6, 8, 10, 12, 20}).Draw(t, "sides")
		bonus := rapid.IntRange(-5, 5).Draw(t, "bonus")

		result, err := roller.Roll(count, sides, bonus)
		require.NoError(t, err)
		require.Len(t, result.Rolls, count)

		sum := 0
		for _, r := range result.Rolls {
			if r < 1 || r > sides {
				t.Fatalf("roll %d outside d%d", r, sides)
			}
			sum += r
		}
		assert.Equal(t, sum+bonus, result.Total)
	})
}

func TestSeededRoller_Deterministic(t *testing.T) {
	a, err := dice.NewSeededRoller(42).Roll(5, 20, 0)
	require.NoError(t, err)
	b, err := dice.NewSeededRoller(42).Roll(5, 20, 0)
	require.NoError(t, err)

	assert.Equal(t, a.Rolls, b.Rolls)
}

func TestParse(t *testing.T) {
	tests := []struct {
		in                  string
		count, sides, bonus int
		wantErr             bool
	}{
		{in: "2d6", count: 2, sides: 6},
		{in: "d20", count: 1, sides: 20},
		{in: "1d8+2", count: 1, sides: 8, bonus: 2},
		{in: "3D4-1", count: 3, sides: 4, bonus: -1},
		{in: "", wantErr: true},
		{in: "2x6", wantErr: true},
		{in: "0d6", wantErr: true},
		{in: "2d6+x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			count, sides, bonus, err := dice.Parse(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, []int{tt.count, tt.sides, tt.bonus}, []int{count, sides, bonus})
		})
	}
}

func TestNotation(t *testing.T) {
	assert.Equal(t, "2d6", dice.Notation(2, 6, 0))
	assert.Equal(t, "1d8+2", dice.Notation(1, 8, 2))
	assert.Equal(t, "1d4-1", dice.Notation(1, 4, -1))

	result := &dice.RollResult{Total: 9, Rolls: []int{4, 5}, Count: 2, Sides: 6}
	assert.Equal(t, "2d6 = 9 [4,5]", result.String())
}
