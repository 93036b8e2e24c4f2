// Package crime implements the crime attempt and jail escape resolvers.
package crime

import (
	"time"

	"mafia-casino-bot/internal/catalog"
	"mafia-casino-bot/internal/economy"
	"mafia-casino-bot/internal/game"
	"mafia-casino-bot/internal/model"
	"mafia-casino-bot/internal/pkg/random"
)

// Result is the outcome of one crime attempt. Whatever the outcome,
// the attempt happened: the caller stamps lastCrimeAt.
type Result struct {
	Crime   catalog.Crime
	Success bool

	// Reward is the coins gained; zero on failure.
	Reward int64

	// Reputation holds the deltas actually applied: full magnitude on
	// success, halved (truncating toward zero) on failure.
	Reputation map[model.Faction]int

	// NewReputation is the player's reputation after applying the deltas.
	NewReputation model.Reputation

	// JailUntil is set on failure to now plus the crime's jail time.
	JailUntil *time.Time
}

// Commit resolves a crime attempt. It validates the preconditions the
// command layer is expected to have checked already (bankroll floor,
// cooldown, jail status) and rejects with the matching error kind when
// one is violated.
func Commit(
	src random.Source,
	cat *catalog.Catalog,
	p *model.Player,
	id catalog.CrimeID,
	now time.Time,
) (*Result, error) {
	def, err := cat.Crime(id)
	if err != nil {
		return nil, err
	}

	if p.Money < def.MinMoney {
		return nil, game.ErrInsufficientFunds
	}
	if remaining := economy.CooldownRemaining(p.LastCrimeAt, cat.Cooldowns().Crime, now); remaining > 0 {
		return nil, game.CooldownError(remaining)
	}
	if p.InJail(now) {
		return nil, game.ErrInJail
	}

	res := &Result{Crime: def}
	if random.Chance(src, def.SuccessRate) {
		res.Success = true
		res.Reward = random.Int64Range(src, def.RewardMin, def.RewardMax)
		res.Reputation = def.Reputation
	} else {
		jailEnd := now.Add(def.JailTime)
		res.JailUntil = &jailEnd
		res.Reputation = def.FailureReputation()
	}

	rep := p.Reputation.Clone()
	for f, delta := range res.Reputation {
		rep[f] += delta
	}
	res.NewReputation = rep

	return res, nil
}

// Escape tuning constants.
const (
	// EscapeBaseCost is the minimum bribe regardless of remaining time.
	EscapeBaseCost int64 = 100

	// EscapeBaseChance is the success probability with zero police
	// reputation; each point of police standing adds EscapeChancePerRep
	// up to EscapeMaxChance.
	EscapeBaseChance   = 0.3
	EscapeChancePerRep = 0.02
	EscapeMaxChance    = 0.8
)

// EscapeCost returns the bribe for escaping with the given time left:
// one coin per ten remaining seconds, floored at EscapeBaseCost.
func EscapeCost(remaining time.Duration) int64 {
	cost := int64(remaining.Seconds()) / 10
	if cost < EscapeBaseCost {
		return EscapeBaseCost
	}
	return cost
}

// EscapeChance returns the success probability for a player with the
// given police faction reputation.
func EscapeChance(policeRep int) float64 {
	chance := EscapeBaseChance + float64(policeRep)*EscapeChancePerRep
	if chance > EscapeMaxChance {
		return EscapeMaxChance
	}
	return chance
}

// EscapeResult is the outcome of one escape attempt. The cost is paid
// whether or not the escape succeeds.
type EscapeResult struct {
	Success bool
	Cost    int64
	Chance  float64

	// JailUntil is nil on success; on failure the remaining sentence is
	// extended by half of what was left.
	JailUntil *time.Time
}

// Escape resolves a jail escape attempt. The caller guards against a
// second concurrent attempt for the same player.
func Escape(src random.Source, p *model.Player, now time.Time) (*EscapeResult, error) {
	if !p.InJail(now) {
		return nil, game.ErrNotInJail
	}

	remaining := p.JailRemaining(now)
	cost := EscapeCost(remaining)
	if p.Money < cost {
		return nil, game.ErrInsufficientFunds
	}

	chance := EscapeChance(p.Reputation[model.FactionPolice])
	res := &EscapeResult{Cost: cost, Chance: chance}

	if random.Chance(src, chance) {
		res.Success = true
		return res, nil
	}

	extended := p.JailUntil.Add(remaining / 2)
	res.JailUntil = &extended
	return res, nil
}
