// Package cards provides the deck and hand-scoring primitives shared by
// blackjack and poker.
package cards

import (
	"mafia-casino-bot/internal/pkg/random"
)

// Rank is a card rank token: "2".."10", "J", "Q", "K", "A".
type Rank string

// Suit is a card suit token.
type Suit string

const (
	Spades   Suit = "♠"
	Hearts   Suit = "♥"
	Diamonds Suit = "♦"
	Clubs    Suit = "♣"
)

var ranks = []Rank{"2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K", "A"}
var suits = []Suit{Spades, Hearts, Diamonds, Clubs}

// Card is one card token. The zero value is the hidden-card
// placeholder: it renders as a card back and scores zero.
type Card struct {
	Rank Rank
	Suit Suit
}

// Hidden is the placeholder shown for the dealer's face-down card.
var Hidden = Card{}

// IsHidden reports whether the card is the hidden placeholder.
func (c Card) IsHidden() bool {
	return c.Rank == ""
}

// String renders the card as rank+suit, or a card back when hidden.
func (c Card) String() string {
	if c.IsHidden() {
		return "🂠"
	}
	return string(c.Rank) + string(c.Suit)
}

// blackjackValue returns the card's fixed blackjack value; aces are
// handled separately by Score.
func (c Card) blackjackValue() int {
	switch c.Rank {
	case "J", "Q", "K":
		return 10
	case "10":
		return 10
	case "9":
		return 9
	case "8":
		return 8
	case "7":
		return 7
	case "6":
		return 6
	case "5":
		return 5
	case "4":
		return 4
	case "3":
		return 3
	case "2":
		return 2
	default:
		return 0
	}
}

// Deck is an ephemeral shuffled 52-card deck. It is owned by a single
// in-progress round and must not be shared across rounds.
type Deck struct {
	cards []Card
	src   random.Source
}

// NewDeck builds a freshly shuffled deck drawing order from src.
func NewDeck(src random.Source) *Deck {
	d := &Deck{src: src}
	d.refill()
	return d
}

func (d *Deck) refill() {
	d.cards = make([]Card, 0, 52)
	for _, s := range suits {
		for _, r := range ranks {
			d.cards = append(d.cards, Card{Rank: r, Suit: s})
		}
	}
	d.src.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Draw removes and returns the top card. An exhausted deck reshuffles
// automatically; with 52 cards and at most ~10 draws per round this
// only matters as a safety net.
func (d *Deck) Draw() Card {
	if len(d.cards) == 0 {
		d.refill()
	}
	top := d.cards[len(d.cards)-1]
	d.cards = d.cards[:len(d.cards)-1]
	return top
}

// Remaining returns the number of undrawn cards.
func (d *Deck) Remaining() int {
	return len(d.cards)
}

// Score computes the blackjack value of a hand. Face cards count 10,
// number cards their face value, and each ace counts 11 unless that
// busts the hand, in which case it counts 1. Aces are valued one at a
// time and an ace locked in at 11 is never demoted by a later one, so
// [10, A, A] scores 22 rather than 12. Hidden placeholders score zero
// and are skipped.
func Score(hand []Card) int {
	score := 0
	aces := 0
	for _, c := range hand {
		if c.IsHidden() {
			continue
		}
		if c.Rank == "A" {
			aces++
			continue
		}
		score += c.blackjackValue()
	}
	for i := 0; i < aces; i++ {
		if score+11 <= 21 {
			score += 11
		} else {
			score++
		}
	}
	return score
}

// Poker hand strength classes, strongest first.
const (
	StrengthQuads    = 8
	StrengthTrips    = 4
	StrengthTwoPair  = 3
	StrengthPair     = 2
	StrengthHighCard = 1
)

// HandStrength returns a simplified poker strength for a set of cards,
// scoring only rank multiplicities: four of a kind 8, three of a kind
// 4, two pair 3, one pair 2, high card 1.
func HandStrength(hand []Card) int {
	counts := make(map[Rank]int)
	for _, c := range hand {
		if c.IsHidden() {
			continue
		}
		counts[c.Rank]++
	}

	maxCount := 0
	pairs := 0
	for _, n := range counts {
		if n > maxCount {
			maxCount = n
		}
		if n == 2 {
			pairs++
		}
	}

	switch {
	case maxCount >= 4:
		return StrengthQuads
	case maxCount == 3:
		return StrengthTrips
	case pairs >= 2:
		return StrengthTwoPair
	case pairs == 1:
		return StrengthPair
	default:
		return StrengthHighCard
	}
}
