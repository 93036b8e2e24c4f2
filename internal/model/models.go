// Package model defines the data models for the mafia casino bot.
package model

import "time"

// Faction is one of the three groups a player holds reputation with.
type Faction string

const (
	FactionPolice   Faction = "police"
	FactionMafia    Faction = "mafia"
	FactionCitizens Faction = "citizens"
)

// Factions lists all factions in a stable order.
func Factions() []Faction {
	return []Faction{FactionPolice, FactionMafia, FactionCitizens}
}

// Reputation maps a faction to a signed standing score.
// Values are unbounded in both directions.
type Reputation map[Faction]int

// Total returns the sum of all faction scores. Rank thresholds are
// checked against this sum.
func (r Reputation) Total() int {
	total := 0
	for _, v := range r {
		total += v
	}
	return total
}

// Clone returns a copy so resolvers can return new values without
// mutating the caller's aggregate.
func (r Reputation) Clone() Reputation {
	out := make(Reputation, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// NewReputation returns a zeroed reputation map covering every faction.
func NewReputation() Reputation {
	rep := make(Reputation, 3)
	for _, f := range Factions() {
		rep[f] = 0
	}
	return rep
}

// Statistics holds per-player lifetime counters.
type Statistics struct {
	GamesPlayed      int64            `json:"games_played"`
	GamesWon         int64            `json:"games_won"`
	CrimesCommitted  int64            `json:"crimes_committed"`
	CrimesSuccessful int64            `json:"crimes_successful"`
	MoneyEarned      int64            `json:"money_earned"`
	MoneyLost        int64            `json:"money_lost"`
	GamePlays        map[string]int64 `json:"game_plays,omitempty"`
}

// CountPlay increments the per-game play counter for the named game.
func (s *Statistics) CountPlay(game string) {
	if s.GamePlays == nil {
		s.GamePlays = make(map[string]int64)
	}
	s.GamePlays[game]++
	s.GamesPlayed++
}

// Player represents the full persisted state for one chat user.
// Resolvers consume snapshots of these fields and return new values;
// the repository persists one row per player.
type Player struct {
	ID           int64      `db:"id"`
	Username     string     `db:"username"`
	DisplayName  string     `db:"display_name"`
	Money        int64      `db:"money"`
	Rank         string     `db:"rank"`
	Reputation   Reputation `db:"reputation"`
	Territories  []string   `db:"territories"`
	Inventory    []string   `db:"inventory"`
	JailUntil    *time.Time `db:"jail_until"`
	LastCrimeAt  *time.Time `db:"last_crime_at"`
	LastIncomeAt *time.Time `db:"last_income_at"`
	DailyBonusAt *time.Time `db:"daily_bonus_at"`
	Statistics   Statistics `db:"statistics"`
	Achievements []string   `db:"achievements"`
	Banned       bool       `db:"banned"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
}

// OwnsTerritory reports whether the player already owns the named territory.
func (p *Player) OwnsTerritory(name string) bool {
	for _, t := range p.Territories {
		if t == name {
			return true
		}
	}
	return false
}

// InJail reports whether the player is jailed at the given instant.
func (p *Player) InJail(now time.Time) bool {
	return p.JailUntil != nil && p.JailUntil.After(now)
}

// JailRemaining returns how long the player stays jailed from now,
// or zero when not jailed.
func (p *Player) JailRemaining(now time.Time) time.Duration {
	if !p.InJail(now) {
		return 0
	}
	return p.JailUntil.Sub(now)
}

// Transaction represents a balance change record in the ledger.
type Transaction struct {
	ID          int64     `db:"id"`
	PlayerID    int64     `db:"player_id"`
	Amount      int64     `db:"amount"`
	Type        string    `db:"type"`
	Description *string   `db:"description"`
	CreatedAt   time.Time `db:"created_at"`
}

// Transaction types for categorizing balance changes.
const (
	TxTypeInitial         = "initial"          // Initial balance on account creation
	TxTypeDaily           = "daily"            // Daily bonus claim
	TxTypeSlots           = "slots"            // Slot machine result
	TxTypeRoulette        = "roulette"         // Roulette result
	TxTypeBlackjack       = "blackjack"        // Blackjack settlement
	TxTypeDice            = "dice"             // Dice game result
	TxTypeCrime           = "crime"            // Crime reward
	TxTypeEscape          = "escape"           // Jail escape cost
	TxTypeTerritoryBuy    = "territory_buy"    // Territory purchase
	TxTypeTerritoryIncome = "territory_income" // Territory income collection
	TxTypeShopPurchase    = "shop_purchase"    // Shop item purchase
	TxTypeAdminAdd        = "admin_add"        // Admin added balance
	TxTypeAdminSet        = "admin_set"        // Admin set balance
)

// GameTransactionTypes returns the transaction types that count towards
// the daily winner/loser rankings (gambling and crime outcomes only).
func GameTransactionTypes() []string {
	return []string{TxTypeSlots, TxTypeRoulette, TxTypeBlackjack, TxTypeDice, TxTypeCrime}
}

// DailyRank represents a player's daily net result for ranking.
type DailyRank struct {
	PlayerID  int64  `db:"player_id"`
	Username  string `db:"username"`
	NetProfit int64  `db:"net_profit"`
}

// TopSort selects the ordering for leaderboard queries.
type TopSort string

const (
	TopByMoney       TopSort = "money"
	TopByRank        TopSort = "rank"
	TopByReputation  TopSort = "reputation"
	TopByTerritories TopSort = "territories"
)
