// Package blackjack implements the three-phase blackjack round. Each
// round owns its deck: the deck is created at deal time, passed through
// hit/stand implicitly via the round, and discarded with it. Nothing is
// shared between rounds.
package blackjack

import (
	"errors"

	"mafia-casino-bot/internal/game"
	"mafia-casino-bot/internal/game/cards"
	"mafia-casino-bot/internal/pkg/random"
)

// State is the round's lifecycle phase.
type State int

const (
	StatePlaying State = iota // player may hit or stand
	StateBust                 // player went over 21, wager lost
	StateSettled              // stand resolved against the dealer
)

// Outcome classifies a settled round.
type Outcome int

const (
	OutcomeBust       Outcome = iota // player bust, wager lost
	OutcomeDealerBust                // dealer over 21, pays x2
	OutcomeWin                       // player beat dealer, pays x2
	OutcomePush                      // tie, wager returned
	OutcomeLoss                      // dealer beat player
)

// ErrRoundFinished is returned when hit or stand is called after the
// round reached a terminal state.
var ErrRoundFinished = errors.New("blackjack round already finished")

// Round holds one in-progress blackjack game. It lives in caller-side
// transient session state between deal and settlement and is never
// persisted to the player record.
type Round struct {
	Wager  int64
	Player []cards.Card
	Dealer []cards.Card
	State  State

	deck *cards.Deck
}

// Settlement carries the final scores and payout of a round.
// WinAmount is gross; the caller deducts the wager separately.
type Settlement struct {
	Outcome     Outcome
	PlayerScore int
	DealerScore int
	Multiplier  int64
	WinAmount   int64
}

// Deal starts a round: fresh shuffled deck, two cards each. The second
// dealer card stays hidden in the display until settlement but is
// always part of dealer scoring.
func Deal(src random.Source, wager int64) (*Round, error) {
	if wager <= 0 {
		return nil, game.ErrInvalidWager
	}

	deck := cards.NewDeck(src)
	r := &Round{
		Wager: wager,
		State: StatePlaying,
		deck:  deck,
	}
	r.Player = []cards.Card{deck.Draw(), deck.Draw()}
	r.Dealer = []cards.Card{deck.Draw(), deck.Draw()}
	return r, nil
}

// Hit draws one card into the player's hand. Going over 21 moves the
// round to StateBust and forfeits the wager.
func (r *Round) Hit() error {
	if r.State != StatePlaying {
		return ErrRoundFinished
	}

	r.Player = append(r.Player, r.deck.Draw())
	if cards.Score(r.Player) > 21 {
		r.State = StateBust
	}
	return nil
}

// Stand ends the player's turn: the dealer draws until scoring at
// least 17, then the hands are compared. Dealer bust or a higher player
// score pays x2, a tie returns the wager, otherwise the wager is lost.
func (r *Round) Stand() (*Settlement, error) {
	if r.State != StatePlaying {
		return nil, ErrRoundFinished
	}

	for cards.Score(r.Dealer) < 17 {
		r.Dealer = append(r.Dealer, r.deck.Draw())
	}

	playerScore := cards.Score(r.Player)
	dealerScore := cards.Score(r.Dealer)

	s := &Settlement{PlayerScore: playerScore, DealerScore: dealerScore}
	switch {
	case dealerScore > 21:
		s.Outcome = OutcomeDealerBust
		s.Multiplier = 2
	case playerScore > dealerScore:
		s.Outcome = OutcomeWin
		s.Multiplier = 2
	case playerScore < dealerScore:
		s.Outcome = OutcomeLoss
	default:
		s.Outcome = OutcomePush
		s.Multiplier = 1
	}
	s.WinAmount = r.Wager * s.Multiplier

	r.State = StateSettled
	return s, nil
}

// BustSettlement returns the terminal settlement for a busted round.
func (r *Round) BustSettlement() *Settlement {
	return &Settlement{
		Outcome:     OutcomeBust,
		PlayerScore: cards.Score(r.Player),
		DealerScore: cards.Score(r.Dealer),
	}
}

// PlayerScore returns the current player hand value.
func (r *Round) PlayerScore() int {
	return cards.Score(r.Player)
}

// DealerVisible returns the dealer hand as shown to the player while
// the round is live: first card up, second replaced by the hidden
// placeholder.
func (r *Round) DealerVisible() []cards.Card {
	if r.State == StatePlaying && len(r.Dealer) >= 2 {
		return []cards.Card{r.Dealer[0], cards.Hidden}
	}
	return append([]cards.Card(nil), r.Dealer...)
}

// Game describes blackjack for the command registry.
type Game struct{}

func (Game) Name() string    { return "Blackjack" }
func (Game) Command() string { return "blackjack" }
func (Game) Description() string {
	return "Draw to 21: hit or stand, dealer draws to 17, winning pays x2"
}
