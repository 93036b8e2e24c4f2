package dice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"mafia-casino-bot/internal/game"
	"mafia-casino-bot/internal/pkg/random"
)

// scriptedSource feeds fixed die faces; values are zero-based so a
// script of 4 rolls a 5.
type scriptedSource struct {
	ints []int
}

func (s *scriptedSource) Intn(n int) int {
	v := s.ints[0]
	s.ints = s.ints[1:]
	return v % n
}

func (s *scriptedSource) Int63n(n int64) int64        { return 0 }
func (s *scriptedSource) Float64() float64            { return 0 }
func (s *scriptedSource) Shuffle(int, func(i, j int)) {}

func TestMultiplierTable(t *testing.T) {
	// Symmetric around 7, rarest sums pay the most.
	assert.Equal(t, int64(30), Multipliers[2])
	assert.Equal(t, int64(30), Multipliers[12])
	assert.Equal(t, int64(15), Multipliers[3])
	assert.Equal(t, int64(15), Multipliers[11])
	assert.Equal(t, int64(10), Multipliers[4])
	assert.Equal(t, int64(10), Multipliers[10])
	assert.Equal(t, int64(7), Multipliers[5])
	assert.Equal(t, int64(7), Multipliers[9])
	assert.Equal(t, int64(6), Multipliers[6])
	assert.Equal(t, int64(6), Multipliers[8])
	assert.Equal(t, int64(5), Multipliers[7])
}

func TestRollSettlement(t *testing.T) {
	tests := []struct {
		name       string
		dice       []int // zero-based faces
		prediction int
		wager      int64
		wantWon    bool
		wantWin    int64
	}{
		{"snake eyes pays 30", []int{0, 0}, 2, 100, true, 3000},
		{"boxcars pays 30", []int{5, 5}, 12, 100, true, 3000},
		{"ten pays 10", []int{4, 4}, 10, 100, true, 1000},
		{"seven pays 5", []int{2, 3}, 7, 100, true, 500},
		{"miss pays nothing", []int{2, 3}, 8, 100, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Roll(&scriptedSource{ints: tt.dice}, tt.wager, tt.prediction)
			require.NoError(t, err)

			assert.Equal(t, tt.dice[0]+1, res.Dice[0])
			assert.Equal(t, tt.dice[1]+1, res.Dice[1])
			assert.Equal(t, res.Dice[0]+res.Dice[1], res.Total)
			assert.Equal(t, tt.wantWon, res.Won)
			assert.Equal(t, tt.wantWin, res.WinAmount)
		})
	}
}

func TestRollValidation(t *testing.T) {
	src := &scriptedSource{ints: []int{0, 0}}

	_, err := Roll(src, 0, 7)
	assert.ErrorIs(t, err, game.ErrInvalidWager)

	_, err = Roll(src, -5, 7)
	assert.ErrorIs(t, err, game.ErrInvalidWager)

	_, err = Roll(src, 100, 1)
	assert.ErrorIs(t, err, game.ErrInvalidPrediction)

	_, err = Roll(src, 100, 13)
	assert.ErrorIs(t, err, game.ErrInvalidPrediction)
}

// TestRollInvariantsProperty checks die ranges and payout arithmetic
// over random rolls and predictions.
func TestRollInvariantsProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		seed := rapid.Int64().Draw(t, "seed")
		wager := rapid.Int64Range(1, 1_000_000).Draw(t, "wager")
		prediction := rapid.IntRange(2, 12).Draw(t, "prediction")

		res, err := Roll(random.NewSeeded(seed), wager, prediction)
		if err != nil {
			t.Fatalf("roll failed: %v", err)
		}

		for _, d := range res.Dice {
			if d < 1 || d > 6 {
				t.Fatalf("die face %d out of range", d)
			}
		}
		if res.Total != res.Dice[0]+res.Dice[1] {
			t.Fatalf("total %d != %d + %d", res.Total, res.Dice[0], res.Dice[1])
		}
		if res.Won != (res.Total == prediction) {
			t.Fatalf("won=%v with total %d prediction %d", res.Won, res.Total, prediction)
		}
		if res.Won && res.WinAmount != wager*Multipliers[prediction] {
			t.Fatalf("payout %d != wager %d * %d", res.WinAmount, wager, Multipliers[prediction])
		}
		if !res.Won && res.WinAmount != 0 {
			t.Fatalf("losing roll paid %d", res.WinAmount)
		}
	})
}
