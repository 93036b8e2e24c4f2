package catalog

import (
	"time"

	"mafia-casino-bot/internal/model"
)

// Built-in crime ids.
const (
	CrimePickpocket CrimeID = "pickpocket"
	CrimeRobbery    CrimeID = "robbery"
	CrimeSmuggling  CrimeID = "smuggling"
	CrimeBankHeist  CrimeID = "bank_heist"
)

// Built-in territory ids.
const (
	TerritorySuburbs       TerritoryID = "suburbs"
	TerritoryDistrict      TerritoryID = "district"
	TerritoryDowntown      TerritoryID = "downtown"
	TerritoryEliteDistrict TerritoryID = "elite_district"
)

// Built-in shop item ids.
const (
	ItemKnife       ItemID = "knife"
	ItemPistol      ItemID = "pistol"
	ItemRifle       ItemID = "rifle"
	ItemArmoredVest ItemID = "armored_vest"
	ItemPoliceTies  ItemID = "police_ties"
)

// Slot symbols and their three-of-a-kind multipliers.
const (
	SymbolCherry  Symbol = "🍒"
	SymbolLemon   Symbol = "🍋"
	SymbolOrange  Symbol = "🍊"
	SymbolStar    Symbol = "⭐"
	SymbolDiamond Symbol = "💎"
)

func defaultCrimes() []Crime {
	return []Crime{
		{
			ID: CrimePickpocket, Name: "Pickpocketing",
			MinMoney: 0, SuccessRate: 0.8,
			RewardMin: 50, RewardMax: 200,
			JailTime: 5 * time.Minute,
			Reputation: map[model.Faction]int{
				model.FactionPolice: -5, model.FactionMafia: 2, model.FactionCitizens: -3,
			},
		},
		{
			ID: CrimeRobbery, Name: "Robbery",
			MinMoney: 1000, SuccessRate: 0.6,
			RewardMin: 200, RewardMax: 800,
			JailTime: 30 * time.Minute,
			Reputation: map[model.Faction]int{
				model.FactionPolice: -10, model.FactionMafia: 5, model.FactionCitizens: -8,
			},
		},
		{
			ID: CrimeSmuggling, Name: "Smuggling",
			MinMoney: 5000, SuccessRate: 0.5,
			RewardMin: 500, RewardMax: 2000,
			JailTime: time.Hour,
			Reputation: map[model.Faction]int{
				model.FactionPolice: -15, model.FactionMafia: 10, model.FactionCitizens: -5,
			},
		},
		{
			ID: CrimeBankHeist, Name: "Bank Heist",
			MinMoney: 10000, SuccessRate: 0.3,
			RewardMin: 1000, RewardMax: 5000,
			JailTime: 2 * time.Hour,
			Reputation: map[model.Faction]int{
				model.FactionPolice: -25, model.FactionMafia: 20, model.FactionCitizens: -15,
			},
		},
	}
}

func defaultTerritories() []Territory {
	return []Territory{
		{ID: TerritorySuburbs, Name: "Suburbs", Cost: 5000, Income: 50, Risk: 0.1},
		{ID: TerritoryDistrict, Name: "District", Cost: 15000, Income: 150, Risk: 0.05},
		{ID: TerritoryDowntown, Name: "Downtown", Cost: 50000, Income: 500, Risk: 0.02},
		{ID: TerritoryEliteDistrict, Name: "Elite District", Cost: 100000, Income: 1000, Risk: 0.01},
	}
}

func defaultItems() []Item {
	return []Item{
		{ID: ItemKnife, Name: "Knife", Cost: 500, Category: "weapon", Bonus: 0.05},
		{ID: ItemPistol, Name: "Pistol", Cost: 2000, Category: "weapon", Bonus: 0.1},
		{ID: ItemRifle, Name: "Rifle", Cost: 10000, Category: "weapon", Bonus: 0.2},
		{ID: ItemArmoredVest, Name: "Armored Vest", Cost: 1000, Category: "armor", Bonus: 0.1},
		{ID: ItemPoliceTies, Name: "Police Connections", Cost: 5000, Category: "connections", Bonus: 0.15},
	}
}

func defaultSymbols() []symbolPayout {
	return []symbolPayout{
		{SymbolCherry, 2},
		{SymbolLemon, 3},
		{SymbolOrange, 5},
		{SymbolStar, 10},
		{SymbolDiamond, 25},
	}
}

// defaultRanks returns the tier table, lowest first. Floors are
// monotonic: each tier requires at least the money and reputation of
// every tier below it.
func defaultRanks() []RankTier {
	return []RankTier{
		{Name: "Errand Boy", MinMoney: 0, MinReputation: 0},
		{Name: "Soldier", MinMoney: 5000, MinReputation: 10},
		{Name: "Authority", MinMoney: 15000, MinReputation: 25},
		{Name: "Overseer", MinMoney: 30000, MinReputation: 50},
		{Name: "Thief in Law", MinMoney: 60000, MinReputation: 100},
		{Name: "Don", MinMoney: 100000, MinReputation: 200},
	}
}

func defaultCooldowns() Cooldowns {
	return Cooldowns{
		DailyBonus:      24 * time.Hour,
		Crime:           5 * time.Minute,
		Casino:          time.Minute,
		TerritoryIncome: time.Hour,
	}
}

// DefaultDailyBonus is the coin amount granted per daily claim.
const DefaultDailyBonus int64 = 100

// DefaultStartingMoney is the balance granted on account creation.
const DefaultStartingMoney int64 = 1000

type symbolPayout struct {
	symbol     Symbol
	multiplier int64
}

// Default returns the catalog built entirely from compiled-in tables.
func Default() *Catalog {
	c := &Catalog{
		crimes:        make(map[CrimeID]Crime),
		territories:   make(map[TerritoryID]Territory),
		items:         make(map[ItemID]Item),
		multipliers:   make(map[Symbol]int64),
		ranks:         defaultRanks(),
		cooldowns:     defaultCooldowns(),
		dailyBonus:    DefaultDailyBonus,
		startingMoney: DefaultStartingMoney,
	}
	for _, crime := range defaultCrimes() {
		c.crimes[crime.ID] = crime
		c.crimeOrder = append(c.crimeOrder, crime.ID)
	}
	for _, t := range defaultTerritories() {
		c.territories[t.ID] = t
		c.territoryOrder = append(c.territoryOrder, t.ID)
	}
	for _, item := range defaultItems() {
		c.items[item.ID] = item
		c.itemOrder = append(c.itemOrder, item.ID)
	}
	for _, sp := range defaultSymbols() {
		c.symbols = append(c.symbols, sp.symbol)
		c.multipliers[sp.symbol] = sp.multiplier
	}
	return c
}
