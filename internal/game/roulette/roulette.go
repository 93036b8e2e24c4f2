// Package roulette implements the roulette resolver.
package roulette

import (
	"strconv"

	"mafia-casino-bot/internal/game"
	"mafia-casino-bot/internal/pkg/random"
)

// BetKind is the category of roulette bet.
type BetKind string

const (
	BetColor  BetKind = "color"  // value: "red" | "black"
	BetParity BetKind = "parity" // value: "even" | "odd"
	BetNumber BetKind = "number" // value: "0".."36"
)

// Pocket colors.
const (
	ColorGreen = "green"
	ColorRed   = "red"
	ColorBlack = "black"
)

// redPockets is the standard red number set; 0 is green, the rest black.
var redPockets = map[int]bool{
	1: true, 3: true, 5: true, 7: true, 9: true, 12: true,
	14: true, 16: true, 18: true, 19: true, 21: true, 23: true,
	25: true, 27: true, 30: true, 32: true, 34: true, 36: true,
}

// ColorOf returns the color of a pocket number.
func ColorOf(number int) string {
	switch {
	case number == 0:
		return ColorGreen
	case redPockets[number]:
		return ColorRed
	default:
		return ColorBlack
	}
}

// Result is the outcome of one roulette spin. WinAmount is gross; the
// caller deducts the wager separately.
type Result struct {
	Number     int
	Color      string
	Won        bool
	Multiplier int64
	WinAmount  int64
}

// Spin draws one pocket in [0,36] and settles the bet. Color and parity
// bets pay x2, a straight number bet pays x35. Zero always loses parity
// bets.
func Spin(src random.Source, kind BetKind, value string, wager int64) (*Result, error) {
	if wager <= 0 {
		return nil, game.ErrInvalidWager
	}
	if err := validate(kind, value); err != nil {
		return nil, err
	}

	number := src.Intn(37)
	res := &Result{Number: number, Color: ColorOf(number)}

	switch kind {
	case BetColor:
		if value == res.Color {
			res.Won = true
			res.Multiplier = 2
		}
	case BetParity:
		// Zero counts as neither even nor odd.
		if number != 0 {
			even := number%2 == 0
			if (even && value == "even") || (!even && value == "odd") {
				res.Won = true
				res.Multiplier = 2
			}
		}
	case BetNumber:
		picked, _ := strconv.Atoi(value)
		if picked == number {
			res.Won = true
			res.Multiplier = 35
		}
	}

	res.WinAmount = wager * res.Multiplier
	return res, nil
}

func validate(kind BetKind, value string) error {
	switch kind {
	case BetColor:
		if value != ColorRed && value != ColorBlack {
			return game.ErrInvalidBet
		}
	case BetParity:
		if value != "even" && value != "odd" {
			return game.ErrInvalidBet
		}
	case BetNumber:
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 || n > 36 {
			return game.ErrInvalidBet
		}
	default:
		return game.ErrInvalidBet
	}
	return nil
}

// Game describes roulette for the command registry.
type Game struct{}

func (Game) Name() string    { return "Roulette" }
func (Game) Command() string { return "roulette" }
func (Game) Description() string {
	return "Bet on red/black, even/odd (x2) or a single number (x35)"
}
