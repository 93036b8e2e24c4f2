package service

import (
	"context"
	"fmt"
	"time"

	"mafia-casino-bot/internal/catalog"
	"mafia-casino-bot/internal/economy"
	"mafia-casino-bot/internal/game"
	"mafia-casino-bot/internal/game/territory"
	"mafia-casino-bot/internal/model"
	"mafia-casino-bot/internal/pkg/lock"
	"mafia-casino-bot/internal/pkg/random"
	"mafia-casino-bot/internal/repository"
)

// PurchaseOutcome is a persisted territory purchase.
type PurchaseOutcome struct {
	Territory catalog.Territory
	NewMoney  int64
	NewRank   string
}

// IncomeOutcome is a persisted income collection.
type IncomeOutcome struct {
	Result   *territory.IncomeResult
	NewMoney int64
	NewRank  string
}

// AttackOutcome is a persisted territory attack.
type AttackOutcome struct {
	Result       *territory.AttackResult
	AttackerRank string
	TargetRank   string
}

// TerritoryService orchestrates purchases, income collection and
// player-versus-player territory attacks.
type TerritoryService struct {
	players *repository.PlayerRepository
	ledger  *repository.TransactionRepository
	cat     *catalog.Catalog
	locks   *lock.PlayerLock
	rng     random.Source
}

// NewTerritoryService creates a new TerritoryService instance.
func NewTerritoryService(
	players *repository.PlayerRepository,
	ledger *repository.TransactionRepository,
	cat *catalog.Catalog,
	locks *lock.PlayerLock,
	rng random.Source,
) *TerritoryService {
	return &TerritoryService{players: players, ledger: ledger, cat: cat, locks: locks, rng: rng}
}

// Buy purchases a territory for the player.
func (s *TerritoryService) Buy(ctx context.Context, id int64, territoryID catalog.TerritoryID) (*PurchaseOutcome, error) {
	var out *PurchaseOutcome
	err := s.locks.WithLock(id, func() error {
		player, err := s.players.GetByID(ctx, id)
		if err != nil {
			return err
		}

		res, err := territory.Purchase(s.cat, player, territoryID)
		if err != nil {
			return err
		}

		newMoney := player.Money - res.Cost
		newTerritories := append(append([]string(nil), player.Territories...), string(territoryID))
		newRank := economy.RankFor(s.cat.Ranks(), newMoney, player.Reputation.Total())

		updated, err := s.players.Update(ctx, id, repository.PlayerUpdate{
			Money:       &newMoney,
			Rank:        &newRank,
			Territories: &newTerritories,
		})
		if err != nil {
			return fmt.Errorf("failed to persist territory purchase: %w", err)
		}

		desc := res.Territory.Name
		if _, err := s.ledger.Create(ctx, id, -res.Cost, model.TxTypeTerritoryBuy, &desc); err != nil {
			// Non-fatal, balance was already updated
		}

		out = &PurchaseOutcome{Territory: res.Territory, NewMoney: updated.Money, NewRank: updated.Rank}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CollectIncome collects income from all owned territories. A seizure
// mid-pass costs that territory and forfeits the whole payout; either
// way the collection cooldown restarts.
func (s *TerritoryService) CollectIncome(ctx context.Context, id int64) (*IncomeOutcome, error) {
	var out *IncomeOutcome
	err := s.locks.WithLock(id, func() error {
		player, err := s.players.GetByID(ctx, id)
		if err != nil {
			return err
		}

		now := time.Now()
		res, err := territory.CollectIncome(s.rng, s.cat, player, now)
		if err != nil {
			return err
		}

		newMoney := player.Money + res.TotalIncome
		newRank := economy.RankFor(s.cat.Ranks(), newMoney, player.Reputation.Total())

		updated, err := s.players.Update(ctx, id, repository.PlayerUpdate{
			Money:        &newMoney,
			Rank:         &newRank,
			Territories:  &res.NewTerritories,
			LastIncomeAt: &now,
		})
		if err != nil {
			return fmt.Errorf("failed to persist income collection: %w", err)
		}

		if res.TotalIncome > 0 {
			desc := "territory income"
			if _, err := s.ledger.Create(ctx, id, res.TotalIncome, model.TxTypeTerritoryIncome, &desc); err != nil {
				// Non-fatal, balance was already updated
			}
		}

		out = &IncomeOutcome{Result: res, NewMoney: updated.Money, NewRank: updated.Rank}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Attack contests a random territory of the target player. Both player
// records change, so both locks are held, in ascending ID order.
func (s *TerritoryService) Attack(ctx context.Context, attackerID, targetID int64) (*AttackOutcome, error) {
	if attackerID == targetID {
		return nil, game.ErrNoTerritories
	}

	var out *AttackOutcome
	err := s.locks.WithPairLock(attackerID, targetID, func() error {
		attacker, err := s.players.GetByID(ctx, attackerID)
		if err != nil {
			return err
		}
		target, err := s.players.GetByID(ctx, targetID)
		if err != nil {
			return err
		}

		res, err := territory.Attack(s.rng, attacker, target, time.Now())
		if err != nil {
			return err
		}

		attackerRank := economy.RankFor(s.cat.Ranks(), attacker.Money, res.NewAttackerRep.Total())
		updatedAttacker, err := s.players.Update(ctx, attackerID, repository.PlayerUpdate{
			Rank:        &attackerRank,
			Reputation:  res.NewAttackerRep,
			Territories: &res.NewAttackerTerritories,
		})
		if err != nil {
			return fmt.Errorf("failed to persist attacker result: %w", err)
		}

		targetRank := economy.RankFor(s.cat.Ranks(), target.Money, res.NewTargetRep.Total())
		updatedTarget, err := s.players.Update(ctx, targetID, repository.PlayerUpdate{
			Rank:        &targetRank,
			Reputation:  res.NewTargetRep,
			Territories: &res.NewTargetTerritories,
		})
		if err != nil {
			return fmt.Errorf("failed to persist target result: %w", err)
		}

		out = &AttackOutcome{
			Result:       res,
			AttackerRank: updatedAttacker.Rank,
			TargetRank:   updatedTarget.Rank,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
