package slots

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"mafia-casino-bot/internal/catalog"
	"mafia-casino-bot/internal/game"
	"mafia-casino-bot/internal/pkg/random"
)

// scriptedSource feeds predetermined draws so outcomes are exact.
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

// Default symbol order: cherry, lemon, orange, star, diamond.
func TestSpinOutcomes(t *testing.T) {
	cat := catalog.Default()

	tests := []struct {
		name        string
		draws       []int
		wager       int64
		wantOutcome Outcome
		wantMult    int64
		wantWin     int64
	}{
		{"three diamonds jackpot", []int{4, 4, 4}, 100, OutcomeJackpot, 25, 2500},
		{"three cherries jackpot", []int{0, 0, 0}, 100, OutcomeJackpot, 2, 200},
		{"three stars jackpot", []int{3, 3, 3}, 50, OutcomeJackpot, 10, 500},
		{"diamond pair pays half", []int{4, 4, 0}, 100, OutcomePair, 12, 1200},
		{"cherry pair rounds to nothing", []int{0, 0, 1}, 100, OutcomePair, 1, 100},
		{"split pair counts", []int{2, 0, 2}, 100, OutcomePair, 2, 200},
		{"trailing pair counts", []int{0, 3, 3}, 100, OutcomePair, 5, 500},
		{"all different loses", []int{0, 1, 2}, 100, OutcomeLoss, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &scriptedSource{ints: tt.draws}
			res, err := Spin(src, cat, tt.wager)
			require.NoError(t, err)

			assert.Equal(t, tt.wantOutcome, res.Outcome)
			assert.Equal(t, tt.wantMult, res.Multiplier)
			assert.Equal(t, tt.wantWin, res.WinAmount)
		})
	}
}

func TestSpinRejectsInvalidWager(t *testing.T) {
	cat := catalog.Default()
	src := &scriptedSource{ints: []int{0, 0, 0}}

	_, err := Spin(src, cat, 0)
	assert.ErrorIs(t, err, game.ErrInvalidWager)

	_, err = Spin(src, cat, -50)
	assert.ErrorIs(t, err, game.ErrInvalidWager)
}

// TestSpinPayoutConsistencyProperty checks that the payout always equals
// wager times multiplier and the multiplier matches the outcome class.
func TestSpinPayoutConsistencyProperty(t *testing.T) {
	cat := catalog.Default()

	rapid.Check(t, func(t *rapid.T) {
		seed := rapid.Int64().Draw(t, "seed")
		wager := rapid.Int64Range(1, 1_000_000).Draw(t, "wager")

		res, err := Spin(random.NewSeeded(seed), cat, wager)
		if err != nil {
			t.Fatalf("spin failed: %v", err)
		}

		if res.WinAmount != wager*res.Multiplier {
			t.Fatalf("payout %d != wager %d * multiplier %d", res.WinAmount, wager, res.Multiplier)
		}

		switch res.Outcome {
		case OutcomeLoss:
			if res.Multiplier != 0 {
				t.Fatalf("loss with multiplier %d", res.Multiplier)
			}
		case OutcomeJackpot:
			m, err := cat.SymbolMultiplier(res.Symbols[0])
			if err != nil || res.Multiplier != m {
				t.Fatalf("jackpot multiplier %d, table says %d", res.Multiplier, m)
			}
		case OutcomePair:
			if res.Multiplier < 0 {
				t.Fatalf("negative pair multiplier %d", res.Multiplier)
			}
		}
	})
}
