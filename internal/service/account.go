// Package service provides business logic implementations. Services
// load the player aggregate under the per-player lock, run the pure
// resolvers, and persist the outcome plus a ledger entry.
package service

import (
	"context"
	"fmt"
	"time"

	"mafia-casino-bot/internal/catalog"
	"mafia-casino-bot/internal/economy"
	"mafia-casino-bot/internal/game"
	"mafia-casino-bot/internal/model"
	"mafia-casino-bot/internal/pkg/lock"
	"mafia-casino-bot/internal/repository"
)

// AccountService handles registration, profiles and the daily bonus.
type AccountService struct {
	players *repository.PlayerRepository
	ledger  *repository.TransactionRepository
	cat     *catalog.Catalog
	locks   *lock.PlayerLock
}

// NewAccountService creates a new AccountService instance.
func NewAccountService(
	players *repository.PlayerRepository,
	ledger *repository.TransactionRepository,
	cat *catalog.Catalog,
	locks *lock.PlayerLock,
) *AccountService {
	return &AccountService{players: players, ledger: ledger, cat: cat, locks: locks}
}

// newPlayerDefaults builds the aggregate inserted on first contact.
func (s *AccountService) newPlayerDefaults(id int64, username, displayName string) *model.Player {
	ranks := s.cat.Ranks()
	rank := ""
	if len(ranks) > 0 {
		rank = ranks[0].Name
	}
	return &model.Player{
		ID:           id,
		Username:     username,
		DisplayName:  displayName,
		Money:        s.cat.StartingMoney(),
		Rank:         rank,
		Reputation:   model.NewReputation(),
		Territories:  []string{},
		Inventory:    []string{},
		Achievements: []string{},
	}
}

// EnsureUser ensures a player row exists, creating one with the default
// starting balance if necessary. Returns the player and whether it was
// newly created.
func (s *AccountService) EnsureUser(ctx context.Context, id int64, username, displayName string) (*model.Player, bool, error) {
	player, created, err := s.players.GetOrCreate(ctx, s.newPlayerDefaults(id, username, displayName))
	if err != nil {
		return nil, false, fmt.Errorf("failed to ensure player: %w", err)
	}

	if created {
		desc := "starting balance"
		if _, err := s.ledger.Create(ctx, id, player.Money, model.TxTypeInitial, &desc); err != nil {
			// Non-fatal, the account itself exists
		}
		return player, true, nil
	}

	// Refresh the identity fields when they changed on the chat side
	if (username != "" && player.Username != username) ||
		(displayName != "" && player.DisplayName != displayName) {
		upd := repository.PlayerUpdate{}
		if username != "" {
			upd.Username = &username
			player.Username = username
		}
		if displayName != "" {
			upd.DisplayName = &displayName
			player.DisplayName = displayName
		}
		if _, err := s.players.Update(ctx, id, upd); err != nil {
			// Non-fatal, stale identity is acceptable
		}
	}

	return player, false, nil
}

// GetPlayer retrieves a player by ID.
func (s *AccountService) GetPlayer(ctx context.Context, id int64) (*model.Player, error) {
	return s.players.GetByID(ctx, id)
}

// GetPlayerByUsername retrieves a player by username.
func (s *AccountService) GetPlayerByUsername(ctx context.Context, username string) (*model.Player, error) {
	return s.players.GetByUsername(ctx, username)
}

// DailyResult describes a granted daily bonus.
type DailyResult struct {
	Amount   int64
	NewMoney int64
	NewRank  string
}

// ClaimDaily grants the daily bonus if the cooldown has elapsed;
// otherwise it fails with a cooldown error carrying the remaining time.
func (s *AccountService) ClaimDaily(ctx context.Context, id int64) (*DailyResult, error) {
	var res *DailyResult
	err := s.locks.WithLock(id, func() error {
		player, err := s.players.GetByID(ctx, id)
		if err != nil {
			return err
		}

		now := time.Now()
		if remaining := economy.CooldownRemaining(player.DailyBonusAt, s.cat.Cooldowns().DailyBonus, now); remaining > 0 {
			return game.CooldownError(remaining)
		}

		amount := s.cat.DailyBonus()
		newMoney := player.Money + amount
		newRank := economy.RankFor(s.cat.Ranks(), newMoney, player.Reputation.Total())

		updated, err := s.players.Update(ctx, id, repository.PlayerUpdate{
			Money:        &newMoney,
			Rank:         &newRank,
			DailyBonusAt: &now,
		})
		if err != nil {
			return fmt.Errorf("failed to grant daily bonus: %w", err)
		}

		desc := "daily bonus"
		if _, err := s.ledger.Create(ctx, id, amount, model.TxTypeDaily, &desc); err != nil {
			// Non-fatal, balance was already updated
		}

		res = &DailyResult{Amount: amount, NewMoney: updated.Money, NewRank: updated.Rank}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}
