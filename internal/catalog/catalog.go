// Package catalog holds the static game configuration: crime
// definitions, territories, shop items, slot symbols, rank thresholds
// and action cooldowns. The catalog is built once at startup and is
// immutable afterwards; every lookup goes through a typed identifier.
package catalog

import (
	"fmt"
	"time"

	"mafia-casino-bot/internal/game"
	"mafia-casino-bot/internal/model"
)

// Typed identifiers for catalog entries.
type (
	CrimeID     string
	TerritoryID string
	ItemID      string
	Symbol      string
)

// Crime describes one crime tier.
type Crime struct {
	ID          CrimeID
	Name        string
	MinMoney    int64
	SuccessRate float64
	RewardMin   int64
	RewardMax   int64
	JailTime    time.Duration
	// Reputation deltas applied in full on success; on failure the
	// deltas are halved with truncation toward zero.
	Reputation map[model.Faction]int
}

// FailureReputation returns the half-magnitude deltas applied when the
// crime fails. Integer division truncates toward zero, so -5 becomes -2.
func (c Crime) FailureReputation() map[model.Faction]int {
	out := make(map[model.Faction]int, len(c.Reputation))
	for f, v := range c.Reputation {
		out[f] = v / 2
	}
	return out
}

// Territory describes one purchasable territory.
type Territory struct {
	ID     TerritoryID
	Name   string
	Cost   int64
	Income int64   // per collection interval
	Risk   float64 // seizure probability per collection
}

// Item describes one shop item. Bonus is carried for display; no
// resolver currently consumes it.
type Item struct {
	ID       ItemID
	Name     string
	Cost     int64
	Category string
	Bonus    float64
}

// RankTier is one bracket of the ordered rank table. A player holds the
// highest tier whose money and reputation floors are both met.
type RankTier struct {
	Name          string
	MinMoney      int64
	MinReputation int
}

// Cooldowns gates one action class each.
type Cooldowns struct {
	DailyBonus      time.Duration
	Crime           time.Duration
	Casino          time.Duration
	TerritoryIncome time.Duration
}

// Catalog is the immutable lookup structure for all static game data.
type Catalog struct {
	crimes         map[CrimeID]Crime
	crimeOrder     []CrimeID
	territories    map[TerritoryID]Territory
	territoryOrder []TerritoryID
	items          map[ItemID]Item
	itemOrder      []ItemID
	symbols        []Symbol
	multipliers    map[Symbol]int64
	ranks          []RankTier
	cooldowns      Cooldowns
	dailyBonus     int64
	startingMoney  int64
}

// Crime looks up a crime definition by id.
func (c *Catalog) Crime(id CrimeID) (Crime, error) {
	crime, ok := c.crimes[id]
	if !ok {
		return Crime{}, fmt.Errorf("%w: crime %q", game.ErrUnknownEntity, id)
	}
	return crime, nil
}

// Crimes returns all crimes in definition order (cheapest first).
func (c *Catalog) Crimes() []Crime {
	out := make([]Crime, 0, len(c.crimeOrder))
	for _, id := range c.crimeOrder {
		out = append(out, c.crimes[id])
	}
	return out
}

// Territory looks up a territory definition by id.
func (c *Catalog) Territory(id TerritoryID) (Territory, error) {
	t, ok := c.territories[id]
	if !ok {
		return Territory{}, fmt.Errorf("%w: territory %q", game.ErrUnknownEntity, id)
	}
	return t, nil
}

// Territories returns all territories in definition order.
func (c *Catalog) Territories() []Territory {
	out := make([]Territory, 0, len(c.territoryOrder))
	for _, id := range c.territoryOrder {
		out = append(out, c.territories[id])
	}
	return out
}

// Item looks up a shop item by id.
func (c *Catalog) Item(id ItemID) (Item, error) {
	item, ok := c.items[id]
	if !ok {
		return Item{}, fmt.Errorf("%w: item %q", game.ErrUnknownEntity, id)
	}
	return item, nil
}

// Items returns all shop items in definition order.
func (c *Catalog) Items() []Item {
	out := make([]Item, 0, len(c.itemOrder))
	for _, id := range c.itemOrder {
		out = append(out, c.items[id])
	}
	return out
}

// Symbols returns the slot symbol set in definition order.
func (c *Catalog) Symbols() []Symbol {
	return append([]Symbol(nil), c.symbols...)
}

// SymbolMultiplier returns the three-of-a-kind payout multiplier for a
// symbol, or an error for a symbol outside the set.
func (c *Catalog) SymbolMultiplier(s Symbol) (int64, error) {
	m, ok := c.multipliers[s]
	if !ok {
		return 0, fmt.Errorf("%w: slot symbol %q", game.ErrUnknownEntity, s)
	}
	return m, nil
}

// Ranks returns the ordered rank table, lowest tier first.
func (c *Catalog) Ranks() []RankTier {
	return append([]RankTier(nil), c.ranks...)
}

// Cooldowns returns the action cooldown intervals.
func (c *Catalog) Cooldowns() Cooldowns {
	return c.cooldowns
}

// DailyBonus returns the daily bonus amount.
func (c *Catalog) DailyBonus() int64 {
	return c.dailyBonus
}

// StartingMoney returns the balance granted on account creation.
func (c *Catalog) StartingMoney() int64 {
	return c.startingMoney
}
