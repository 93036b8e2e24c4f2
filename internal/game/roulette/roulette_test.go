package roulette

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"mafia-casino-bot/internal/game"
	"mafia-casino-bot/internal/pkg/random"
)

// fixedSource always lands the wheel on the same pocket.
type fixedSource struct {
	pocket int
}

func (s *fixedSource) Intn(n int) int              { return s.pocket % n }
func (s *fixedSource) Int63n(n int64) int64        { return 0 }
func (s *fixedSource) Float64() float64            { return 0 }
func (s *fixedSource) Shuffle(int, func(i, j int)) {}

func TestColorOf(t *testing.T) {
	assert.Equal(t, ColorGreen, ColorOf(0))
	assert.Equal(t, ColorRed, ColorOf(1))
	assert.Equal(t, ColorBlack, ColorOf(2))
	assert.Equal(t, ColorRed, ColorOf(36))
	assert.Equal(t, ColorBlack, ColorOf(35))
}

func TestSpinSettlement(t *testing.T) {
	tests := []struct {
		name     string
		pocket   int
		kind     BetKind
		value    string
		wager    int64
		wantWon  bool
		wantMult int64
	}{
		{"red wins on red pocket", 1, BetColor, "red", 100, true, 2},
		{"red loses on black pocket", 2, BetColor, "red", 100, false, 0},
		{"black wins on black pocket", 2, BetColor, "black", 100, true, 2},
		{"color loses on zero", 0, BetColor, "red", 100, false, 0},
		{"even wins", 8, BetParity, "even", 100, true, 2},
		{"odd wins", 9, BetParity, "odd", 100, true, 2},
		{"zero loses even bet", 0, BetParity, "even", 100, false, 0},
		{"zero loses odd bet", 0, BetParity, "odd", 100, false, 0},
		{"straight number pays 35", 17, BetNumber, "17", 100, true, 35},
		{"straight number misses", 17, BetNumber, "18", 100, false, 0},
		{"zero straight wins", 0, BetNumber, "0", 100, true, 35},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Spin(&fixedSource{pocket: tt.pocket}, tt.kind, tt.value, tt.wager)
			require.NoError(t, err)

			assert.Equal(t, tt.pocket, res.Number)
			assert.Equal(t, tt.wantWon, res.Won)
			assert.Equal(t, tt.wantMult, res.Multiplier)
			assert.Equal(t, tt.wager*tt.wantMult, res.WinAmount)
		})
	}
}

func TestSpinValidation(t *testing.T) {
	src := &fixedSource{}

	tests := []struct {
		name    string
		kind    BetKind
		value   string
		wager   int64
		wantErr error
	}{
		{"zero wager", BetColor, "red", 0, game.ErrInvalidWager},
		{"negative wager", BetColor, "red", -10, game.ErrInvalidWager},
		{"bad color", BetColor, "green", 100, game.ErrInvalidBet},
		{"bad parity", BetParity, "prime", 100, game.ErrInvalidBet},
		{"number too high", BetNumber, "37", 100, game.ErrInvalidBet},
		{"negative number", BetNumber, "-1", 100, game.ErrInvalidBet},
		{"non-numeric number", BetNumber, "red", 100, game.ErrInvalidBet},
		{"unknown kind", BetKind("dozen"), "1", 100, game.ErrInvalidBet},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Spin(src, tt.kind, tt.value, tt.wager)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// TestSpinInvariantsProperty checks pocket range, color assignment and
// payout arithmetic across random wheels and bets.
func TestSpinInvariantsProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		seed := rapid.Int64().Draw(t, "seed")
		wager := rapid.Int64Range(1, 1_000_000).Draw(t, "wager")

		kinds := []struct {
			kind  BetKind
			value string
		}{
			{BetColor, "red"},
			{BetColor, "black"},
			{BetParity, "even"},
			{BetParity, "odd"},
			{BetNumber, "17"},
		}
		pick := kinds[rapid.IntRange(0, len(kinds)-1).Draw(t, "bet")]

		res, err := Spin(random.NewSeeded(seed), pick.kind, pick.value, wager)
		if err != nil {
			t.Fatalf("spin failed: %v", err)
		}

		if res.Number < 0 || res.Number > 36 {
			t.Fatalf("pocket %d out of range", res.Number)
		}
		if res.Color != ColorOf(res.Number) {
			t.Fatalf("pocket %d colored %s, want %s", res.Number, res.Color, ColorOf(res.Number))
		}
		if res.WinAmount != wager*res.Multiplier {
			t.Fatalf("payout %d != wager %d * multiplier %d", res.WinAmount, wager, res.Multiplier)
		}
		if res.Won && res.Multiplier != 2 && res.Multiplier != 35 {
			t.Fatalf("winning multiplier %d not in table", res.Multiplier)
		}
		if !res.Won && res.Multiplier != 0 {
			t.Fatalf("losing bet with multiplier %d", res.Multiplier)
		}
	})
}
