package service

import (
	"context"
	"fmt"
	"time"

	"mafia-casino-bot/internal/catalog"
	"mafia-casino-bot/internal/economy"
	"mafia-casino-bot/internal/model"
	"mafia-casino-bot/internal/pkg/lock"
	"mafia-casino-bot/internal/repository"
)

// GlobalStats aggregates the whole player base for the admin overview.
type GlobalStats struct {
	Players          int
	Banned           int
	TotalMoney       int64
	TotalTerritories int
	TotalCrimes      int64
	TotalGames       int64
	Jailed           int
}

// AdminService implements the moderator operations: bans, balance
// grants and aggregate statistics.
type AdminService struct {
	players *repository.PlayerRepository
	ledger  *repository.TransactionRepository
	cat     *catalog.Catalog
	locks   *lock.PlayerLock
}

// NewAdminService creates a new AdminService instance.
func NewAdminService(
	players *repository.PlayerRepository,
	ledger *repository.TransactionRepository,
	cat *catalog.Catalog,
	locks *lock.PlayerLock,
) *AdminService {
	return &AdminService{players: players, ledger: ledger, cat: cat, locks: locks}
}

// SetBanned flips the ban flag on a player.
func (s *AdminService) SetBanned(ctx context.Context, id int64, banned bool) error {
	_, err := s.players.Update(ctx, id, repository.PlayerUpdate{Banned: &banned})
	return err
}

// AddMoney grants (or with a negative amount, removes) balance.
func (s *AdminService) AddMoney(ctx context.Context, id int64, amount int64) (*model.Player, error) {
	var updated *model.Player
	err := s.locks.WithLock(id, func() error {
		player, err := s.players.GetByID(ctx, id)
		if err != nil {
			return err
		}

		newMoney := player.Money + amount
		newRank := economy.RankFor(s.cat.Ranks(), newMoney, player.Reputation.Total())

		updated, err = s.players.Update(ctx, id, repository.PlayerUpdate{
			Money: &newMoney,
			Rank:  &newRank,
		})
		if err != nil {
			return fmt.Errorf("failed to grant balance: %w", err)
		}

		desc := "admin grant"
		if _, err := s.ledger.Create(ctx, id, amount, model.TxTypeAdminAdd, &desc); err != nil {
			// Non-fatal, balance was already updated
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// SetMoney sets the balance to an exact value.
func (s *AdminService) SetMoney(ctx context.Context, id int64, amount int64) (*model.Player, error) {
	var updated *model.Player
	err := s.locks.WithLock(id, func() error {
		player, err := s.players.GetByID(ctx, id)
		if err != nil {
			return err
		}

		newRank := economy.RankFor(s.cat.Ranks(), amount, player.Reputation.Total())
		updated, err = s.players.Update(ctx, id, repository.PlayerUpdate{
			Money: &amount,
			Rank:  &newRank,
		})
		if err != nil {
			return fmt.Errorf("failed to set balance: %w", err)
		}

		desc := "admin set"
		if _, err := s.ledger.Create(ctx, id, amount-player.Money, model.TxTypeAdminSet, &desc); err != nil {
			// Non-fatal, balance was already updated
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Stats aggregates counters over the whole player base.
func (s *AdminService) Stats(ctx context.Context) (*GlobalStats, error) {
	players, err := s.players.All(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	stats := &GlobalStats{Players: len(players)}
	for _, p := range players {
		stats.TotalMoney += p.Money
		stats.TotalTerritories += len(p.Territories)
		stats.TotalCrimes += p.Statistics.CrimesCommitted
		stats.TotalGames += p.Statistics.GamesPlayed
		if p.Banned {
			stats.Banned++
		}
		if p.InJail(now) {
			stats.Jailed++
		}
	}
	return stats, nil
}
