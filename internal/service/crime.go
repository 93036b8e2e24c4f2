package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"mafia-casino-bot/internal/catalog"
	"mafia-casino-bot/internal/economy"
	"mafia-casino-bot/internal/game"
	"mafia-casino-bot/internal/game/crime"
	"mafia-casino-bot/internal/model"
	"mafia-casino-bot/internal/pkg/lock"
	"mafia-casino-bot/internal/pkg/random"
	"mafia-casino-bot/internal/repository"
)

// CrimeOutcome is a persisted crime attempt.
type CrimeOutcome struct {
	Result   *crime.Result
	NewMoney int64
	NewRank  string
}

// EscapeOutcome is a persisted jail escape attempt.
type EscapeOutcome struct {
	Result   *crime.EscapeResult
	NewMoney int64
}

// CrimeService orchestrates crime attempts and jail escapes.
type CrimeService struct {
	players *repository.PlayerRepository
	ledger  *repository.TransactionRepository
	cat     *catalog.Catalog
	locks   *lock.PlayerLock
	rng     random.Source

	mu       sync.Mutex
	escaping map[int64]bool
}

// NewCrimeService creates a new CrimeService instance.
func NewCrimeService(
	players *repository.PlayerRepository,
	ledger *repository.TransactionRepository,
	cat *catalog.Catalog,
	locks *lock.PlayerLock,
	rng random.Source,
) *CrimeService {
	return &CrimeService{
		players:  players,
		ledger:   ledger,
		cat:      cat,
		locks:    locks,
		rng:      rng,
		escaping: make(map[int64]bool),
	}
}

// CommitCrime runs one crime attempt for the player. The attempt stamps
// the crime cooldown whether it succeeds or fails.
func (s *CrimeService) CommitCrime(ctx context.Context, id int64, crimeID catalog.CrimeID) (*CrimeOutcome, error) {
	var out *CrimeOutcome
	err := s.locks.WithLock(id, func() error {
		player, err := s.players.GetByID(ctx, id)
		if err != nil {
			return err
		}

		now := time.Now()
		res, err := crime.Commit(s.rng, s.cat, player, crimeID, now)
		if err != nil {
			return err
		}

		stats := player.Statistics
		stats.CrimesCommitted++
		if res.Success {
			stats.CrimesSuccessful++
			stats.MoneyEarned += res.Reward
		}

		newMoney := player.Money + res.Reward
		newRank := economy.RankFor(s.cat.Ranks(), newMoney, res.NewReputation.Total())

		upd := repository.PlayerUpdate{
			Money:       &newMoney,
			Rank:        &newRank,
			Reputation:  res.NewReputation,
			LastCrimeAt: &now,
			Statistics:  &stats,
		}
		if res.JailUntil != nil {
			upd.JailUntil = res.JailUntil
		}

		updated, err := s.players.Update(ctx, id, upd)
		if err != nil {
			return fmt.Errorf("failed to persist crime result: %w", err)
		}

		if res.Reward != 0 {
			desc := res.Crime.Name
			if _, err := s.ledger.Create(ctx, id, res.Reward, model.TxTypeCrime, &desc); err != nil {
				// Non-fatal, balance was already updated
			}
		}

		out = &CrimeOutcome{Result: res, NewMoney: updated.Money, NewRank: updated.Rank}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Escape runs one jail escape attempt. The bribe is paid win or lose;
// a failed attempt extends the sentence by half the remaining time.
// A second attempt while one is being resolved is rejected.
func (s *CrimeService) Escape(ctx context.Context, id int64) (*EscapeOutcome, error) {
	s.mu.Lock()
	if s.escaping[id] {
		s.mu.Unlock()
		return nil, game.ErrEscapeInProgress
	}
	s.escaping[id] = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		delete(s.escaping, id)
		s.mu.Unlock()
	}()

	var out *EscapeOutcome
	err := s.locks.WithLock(id, func() error {
		player, err := s.players.GetByID(ctx, id)
		if err != nil {
			return err
		}

		now := time.Now()
		res, err := crime.Escape(s.rng, player, now)
		if err != nil {
			return err
		}

		newMoney := player.Money - res.Cost
		upd := repository.PlayerUpdate{Money: &newMoney}
		if res.Success {
			upd.ClearJail = true
		} else {
			upd.JailUntil = res.JailUntil
		}

		updated, err := s.players.Update(ctx, id, upd)
		if err != nil {
			return fmt.Errorf("failed to persist escape result: %w", err)
		}

		desc := "jail escape bribe"
		if _, err := s.ledger.Create(ctx, id, -res.Cost, model.TxTypeEscape, &desc); err != nil {
			// Non-fatal, balance was already updated
		}

		out = &EscapeOutcome{Result: res, NewMoney: updated.Money}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
