package cards

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mafia-casino-bot/internal/pkg/random"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name string
		hand []Card
		want int
	}{
		{"empty hand", nil, 0},
		{"number cards", []Card{{Rank: "2", Suit: Spades}, {Rank: "9", Suit: Hearts}}, 11},
		{"face cards count ten", []Card{{Rank: "J", Suit: Spades}, {Rank: "Q", Suit: Hearts}}, 20},
		{"natural blackjack", []Card{{Rank: "10", Suit: Spades}, {Rank: "A", Suit: Hearts}}, 21},
		{"ace stays high at 21", []Card{{Rank: "A", Suit: Spades}, {Rank: "5", Suit: Hearts}, {Rank: "5", Suit: Clubs}}, 21},
		{"two aces split high and low", []Card{{Rank: "A", Suit: Spades}, {Rank: "A", Suit: Hearts}, {Rank: "9", Suit: Clubs}}, 21},
		{"ace drops to one on bust risk", []Card{{Rank: "A", Suit: Spades}, {Rank: "K", Suit: Hearts}, {Rank: "5", Suit: Clubs}}, 16},
		{"second ace cannot demote the first", []Card{{Rank: "10", Suit: Spades}, {Rank: "A", Suit: Hearts}, {Rank: "A", Suit: Diamonds}}, 22},
		{"bust is reported as is", []Card{{Rank: "K", Suit: Spades}, {Rank: "Q", Suit: Hearts}, {Rank: "2", Suit: Clubs}}, 22},
		{"hidden cards score zero", []Card{{Rank: "K", Suit: Spades}, Hidden}, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Score(tt.hand))
		})
	}
}

func TestCardString(t *testing.T) {
	assert.Equal(t, "A♠", Card{Rank: "A", Suit: Spades}.String())
	assert.Equal(t, "10♥", Card{Rank: "10", Suit: Hearts}.String())
	assert.Equal(t, "🂠", Hidden.String())
	assert.True(t, Hidden.IsHidden())
	assert.False(t, Card{Rank: "2", Suit: Clubs}.IsHidden())
}

func TestDeckHas52UniqueCards(t *testing.T) {
	d := NewDeck(random.NewSeeded(1))
	require.Equal(t, 52, d.Remaining())

	seen := make(map[Card]bool)
	for i := 0; i < 52; i++ {
		c := d.Draw()
		assert.False(t, seen[c], "duplicate card %s", c)
		seen[c] = true
	}
	assert.Equal(t, 0, d.Remaining())
	assert.Len(t, seen, 52)
}

func TestDeckRefillsWhenExhausted(t *testing.T) {
	d := NewDeck(random.NewSeeded(1))
	for i := 0; i < 52; i++ {
		d.Draw()
	}
	require.Equal(t, 0, d.Remaining())

	c := d.Draw()
	assert.False(t, c.IsHidden())
	assert.Equal(t, 51, d.Remaining())
}

func TestHandStrength(t *testing.T) {
	tests := []struct {
		name string
		hand []Card
		want int
	}{
		{"high card", []Card{{Rank: "2", Suit: Spades}, {Rank: "7", Suit: Hearts}, {Rank: "K", Suit: Clubs}}, StrengthHighCard},
		{"one pair", []Card{{Rank: "7", Suit: Spades}, {Rank: "7", Suit: Hearts}, {Rank: "K", Suit: Clubs}}, StrengthPair},
		{"two pair", []Card{{Rank: "7", Suit: Spades}, {Rank: "7", Suit: Hearts}, {Rank: "K", Suit: Clubs}, {Rank: "K", Suit: Diamonds}}, StrengthTwoPair},
		{"three of a kind", []Card{{Rank: "7", Suit: Spades}, {Rank: "7", Suit: Hearts}, {Rank: "7", Suit: Clubs}}, StrengthTrips},
		{"four of a kind", []Card{{Rank: "7", Suit: Spades}, {Rank: "7", Suit: Hearts}, {Rank: "7", Suit: Clubs}, {Rank: "7", Suit: Diamonds}}, StrengthQuads},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HandStrength(tt.hand))
		})
	}
}
