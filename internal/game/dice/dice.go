// Package dice implements the two-die sum prediction resolver.
package dice

import (
	"mafia-casino-bot/internal/game"
	"mafia-casino-bot/internal/pkg/random"
)

// Multipliers keys a predicted sum to its payout multiplier. The values
// track the true combinatorial odds of a fair two-die sum: 2 and 12
// have one combination out of 36, 7 has six.
var Multipliers = map[int]int64{
	2: 30, 12: 30,
	3: 15, 11: 15,
	4: 10, 10: 10,
	5: 7, 9: 7,
	6: 6, 8: 6,
	7: 5,
}

// Result is the outcome of one roll. WinAmount is gross; the caller
// deducts the wager separately.
type Result struct {
	Dice       [2]int
	Total      int
	Prediction int
	Won        bool
	Multiplier int64
	WinAmount  int64
}

// Roll throws two dice and pays the prediction's multiplier when the
// sum matches, nothing otherwise.
func Roll(src random.Source, wager int64, prediction int) (*Result, error) {
	if wager <= 0 {
		return nil, game.ErrInvalidWager
	}
	if prediction < 2 || prediction > 12 {
		return nil, game.ErrInvalidPrediction
	}

	d1 := random.IntRange(src, 1, 6)
	d2 := random.IntRange(src, 1, 6)
	total := d1 + d2

	res := &Result{
		Dice:       [2]int{d1, d2},
		Total:      total,
		Prediction: prediction,
	}
	if total == prediction {
		res.Won = true
		res.Multiplier = Multipliers[prediction]
		res.WinAmount = wager * res.Multiplier
	}
	return res, nil
}

// Game describes dice for the command registry.
type Game struct{}

func (Game) Name() string    { return "Dice" }
func (Game) Command() string { return "dice" }
func (Game) Description() string {
	return "Predict the sum of two dice: rare sums pay up to x30"
}
