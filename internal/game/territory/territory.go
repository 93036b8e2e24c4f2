// Package territory implements the territory resolvers: purchase,
// income collection with seizure risk, and PvP territory attacks.
package territory

import (
	"time"

	"mafia-casino-bot/internal/catalog"
	"mafia-casino-bot/internal/economy"
	"mafia-casino-bot/internal/game"
	"mafia-casino-bot/internal/model"
	"mafia-casino-bot/internal/pkg/random"
)

// PurchaseResult is the outcome of a successful territory purchase.
type PurchaseResult struct {
	Territory catalog.Territory
	Cost      int64
}

// Purchase validates and resolves buying a territory. A territory name
// appears at most once in the owned set; buying a duplicate is rejected.
func Purchase(cat *catalog.Catalog, p *model.Player, id catalog.TerritoryID) (*PurchaseResult, error) {
	def, err := cat.Territory(id)
	if err != nil {
		return nil, err
	}
	if p.OwnsTerritory(string(id)) {
		return nil, game.ErrAlreadyOwned
	}
	if p.Money < def.Cost {
		return nil, game.ErrInsufficientFunds
	}
	return &PurchaseResult{Territory: def, Cost: def.Cost}, nil
}

// IncomeResult is the outcome of an income collection pass.
type IncomeResult struct {
	// Seized is set when a seizure roll fired. The named territory is
	// removed and the whole collection aborts: income accumulated from
	// territories processed earlier in the same pass is discarded, not
	// banked.
	Seized          bool
	SeizedTerritory catalog.TerritoryID

	TotalIncome int64
	Incomes     map[catalog.TerritoryID]int64

	// NewTerritories is the owned set after the pass; it only differs
	// from the input when a seizure occurred.
	NewTerritories []string
}

// CollectIncome resolves one income collection over all owned
// territories. Each territory rolls its seizure risk in ownership
// order; the first seizure ends the pass immediately with no payout.
func CollectIncome(src random.Source, cat *catalog.Catalog, p *model.Player, now time.Time) (*IncomeResult, error) {
	if len(p.Territories) == 0 {
		return nil, game.ErrNoTerritories
	}
	if remaining := economy.CooldownRemaining(p.LastIncomeAt, cat.Cooldowns().TerritoryIncome, now); remaining > 0 {
		return nil, game.CooldownError(remaining)
	}

	res := &IncomeResult{Incomes: make(map[catalog.TerritoryID]int64)}
	for _, name := range p.Territories {
		id := catalog.TerritoryID(name)
		def, err := cat.Territory(id)
		if err != nil {
			// Owned id no longer in the catalog: skip, keep ownership.
			continue
		}

		if random.Chance(src, def.Risk) {
			res.Seized = true
			res.SeizedTerritory = id
			res.TotalIncome = 0
			res.Incomes = nil
			res.NewTerritories = removeTerritory(p.Territories, name)
			return res, nil
		}

		res.Incomes[id] = def.Income
		res.TotalIncome += def.Income
	}

	res.NewTerritories = append([]string(nil), p.Territories...)
	return res, nil
}

// Attack success chance bounds.
const (
	AttackBaseChance   = 0.3
	AttackChancePerRep = 0.01
	AttackMinChance    = 0.1
	AttackMaxChance    = 0.9
)

// AttackChance returns the clamped success probability for an attacker
// and target with the given mafia reputations.
func AttackChance(attackerMafiaRep, targetMafiaRep int) float64 {
	chance := AttackBaseChance + float64(attackerMafiaRep-targetMafiaRep)*AttackChancePerRep
	if chance < AttackMinChance {
		return AttackMinChance
	}
	if chance > AttackMaxChance {
		return AttackMaxChance
	}
	return chance
}

// AttackResult is the outcome of a PvP territory attack.
type AttackResult struct {
	Success   bool
	Territory string
	Chance    float64

	// Reputation deltas applied to each side. The target is untouched
	// on a failed attack.
	AttackerRepChanges map[model.Faction]int
	TargetRepChanges   map[model.Faction]int

	NewAttackerRep model.Reputation
	NewTargetRep   model.Reputation

	// Updated owned sets; only change on success.
	NewAttackerTerritories []string
	NewTargetTerritories   []string
}

// Attack resolves one territory attack. A uniformly random territory of
// the target is contested; the attacker must own at least one territory
// and be out of jail.
func Attack(src random.Source, attacker, target *model.Player, now time.Time) (*AttackResult, error) {
	if len(target.Territories) == 0 {
		return nil, game.ErrNoTerritories
	}
	if len(attacker.Territories) == 0 {
		return nil, game.ErrNoTerritories
	}
	if attacker.InJail(now) {
		return nil, game.ErrInJail
	}

	contested := target.Territories[src.Intn(len(target.Territories))]
	chance := AttackChance(
		attacker.Reputation[model.FactionMafia],
		target.Reputation[model.FactionMafia],
	)

	res := &AttackResult{Territory: contested, Chance: chance}

	if random.Chance(src, chance) {
		res.Success = true
		res.AttackerRepChanges = map[model.Faction]int{
			model.FactionMafia:    5,
			model.FactionCitizens: -3,
		}
		res.TargetRepChanges = map[model.Faction]int{
			model.FactionMafia: -2,
		}
		res.NewAttackerTerritories = append(append([]string(nil), attacker.Territories...), contested)
		res.NewTargetTerritories = removeTerritory(target.Territories, contested)
	} else {
		res.AttackerRepChanges = map[model.Faction]int{
			model.FactionMafia:  -3,
			model.FactionPolice: -2,
		}
		res.NewAttackerTerritories = append([]string(nil), attacker.Territories...)
		res.NewTargetTerritories = append([]string(nil), target.Territories...)
	}

	res.NewAttackerRep = applyRep(attacker.Reputation, res.AttackerRepChanges)
	res.NewTargetRep = applyRep(target.Reputation, res.TargetRepChanges)
	return res, nil
}

func applyRep(rep model.Reputation, deltas map[model.Faction]int) model.Reputation {
	out := rep.Clone()
	for f, d := range deltas {
		out[f] += d
	}
	return out
}

func removeTerritory(owned []string, name string) []string {
	out := make([]string, 0, len(owned))
	for _, t := range owned {
		if t != name {
			out = append(out, t)
		}
	}
	return out
}
