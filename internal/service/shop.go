package service

import (
	"context"
	"fmt"

	"mafia-casino-bot/internal/catalog"
	"mafia-casino-bot/internal/game"
	"mafia-casino-bot/internal/model"
	"mafia-casino-bot/internal/pkg/lock"
	"mafia-casino-bot/internal/repository"
)

// ShopOutcome is a persisted item purchase.
type ShopOutcome struct {
	Item     catalog.Item
	NewMoney int64
}

// ShopService handles shop listings and item purchases.
type ShopService struct {
	players *repository.PlayerRepository
	ledger  *repository.TransactionRepository
	cat     *catalog.Catalog
	locks   *lock.PlayerLock
}

// NewShopService creates a new ShopService instance.
func NewShopService(
	players *repository.PlayerRepository,
	ledger *repository.TransactionRepository,
	cat *catalog.Catalog,
	locks *lock.PlayerLock,
) *ShopService {
	return &ShopService{players: players, ledger: ledger, cat: cat, locks: locks}
}

// Items returns all shop items in catalog order.
func (s *ShopService) Items() []catalog.Item {
	return s.cat.Items()
}

// Buy purchases an item into the player's inventory. Items stack:
// buying twice records the id twice.
func (s *ShopService) Buy(ctx context.Context, id int64, itemID catalog.ItemID) (*ShopOutcome, error) {
	item, err := s.cat.Item(itemID)
	if err != nil {
		return nil, err
	}

	var out *ShopOutcome
	err = s.locks.WithLock(id, func() error {
		player, err := s.players.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if player.Money < item.Cost {
			return game.ErrInsufficientFunds
		}

		newMoney := player.Money - item.Cost
		newInventory := append(append([]string(nil), player.Inventory...), string(itemID))

		updated, err := s.players.Update(ctx, id, repository.PlayerUpdate{
			Money:     &newMoney,
			Inventory: &newInventory,
		})
		if err != nil {
			return fmt.Errorf("failed to persist item purchase: %w", err)
		}

		desc := item.Name
		if _, err := s.ledger.Create(ctx, id, -item.Cost, model.TxTypeShopPurchase, &desc); err != nil {
			// Non-fatal, balance was already updated
		}

		out = &ShopOutcome{Item: item, NewMoney: updated.Money}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
