// Package slots implements the slot machine resolver.
package slots

import (
	"mafia-casino-bot/internal/catalog"
	"mafia-casino-bot/internal/game"
	"mafia-casino-bot/internal/pkg/random"
)

// Outcome classifies a spin for the presentation layer.
type Outcome int

const (
	OutcomeLoss    Outcome = iota // no matching symbols
	OutcomePair                   // exactly two matching symbols
	OutcomeJackpot                // three matching symbols
)

// Result is the outcome of one spin. WinAmount is the gross payout;
// the caller deducts the wager separately.
type Result struct {
	Symbols    [3]catalog.Symbol
	Outcome    Outcome
	Multiplier int64
	WinAmount  int64
}

// Spin draws three independent uniform symbols and resolves the payout:
// three of a kind pays the symbol's table multiplier, a pair pays the
// doubled symbol's multiplier halved (integer division), anything else
// pays nothing.
func Spin(src random.Source, cat *catalog.Catalog, wager int64) (*Result, error) {
	if wager <= 0 {
		return nil, game.ErrInvalidWager
	}

	symbols := cat.Symbols()
	var drawn [3]catalog.Symbol
	for i := range drawn {
		drawn[i] = symbols[src.Intn(len(symbols))]
	}

	res := &Result{Symbols: drawn}

	switch {
	case drawn[0] == drawn[1] && drawn[1] == drawn[2]:
		m, err := cat.SymbolMultiplier(drawn[0])
		if err != nil {
			return nil, err
		}
		res.Outcome = OutcomeJackpot
		res.Multiplier = m
	case drawn[0] == drawn[1] || drawn[1] == drawn[2] || drawn[0] == drawn[2]:
		pair := drawn[0]
		if drawn[1] == drawn[2] {
			pair = drawn[1]
		}
		m, err := cat.SymbolMultiplier(pair)
		if err != nil {
			return nil, err
		}
		res.Outcome = OutcomePair
		res.Multiplier = m / 2
	default:
		res.Outcome = OutcomeLoss
	}

	res.WinAmount = wager * res.Multiplier
	return res, nil
}

// Game describes slots for the command registry.
type Game struct{}

func (Game) Name() string    { return "Slots" }
func (Game) Command() string { return "slots" }
func (Game) Description() string {
	return "Spin three reels: three of a kind pays the symbol multiplier, a pair pays half"
}
