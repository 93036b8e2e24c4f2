package service

import (
	"context"
	"time"

	"mafia-casino-bot/internal/catalog"
	"mafia-casino-bot/internal/model"
	"mafia-casino-bot/internal/repository"
)

// RankingService builds the leaderboards.
type RankingService struct {
	players *repository.PlayerRepository
	ledger  *repository.TransactionRepository
	cat     *catalog.Catalog
}

// NewRankingService creates a new RankingService instance.
func NewRankingService(
	players *repository.PlayerRepository,
	ledger *repository.TransactionRepository,
	cat *catalog.Catalog,
) *RankingService {
	return &RankingService{players: players, ledger: ledger, cat: cat}
}

// rankOrder lists rank names lowest tier first, for the rank sort.
func (s *RankingService) rankOrder() []string {
	ranks := s.cat.Ranks()
	names := make([]string, 0, len(ranks))
	for _, tier := range ranks {
		names = append(names, tier.Name)
	}
	return names
}

// Top returns the top players under the given ordering.
func (s *RankingService) Top(ctx context.Context, sort model.TopSort, limit int) ([]*model.Player, error) {
	return s.players.TopPlayers(ctx, sort, s.rankOrder(), limit)
}

// DailyWinners returns the day's biggest net winners from the ledger.
func (s *RankingService) DailyWinners(ctx context.Context, date time.Time, limit int) ([]*model.DailyRank, error) {
	return s.ledger.GetDailyWinners(ctx, date, limit)
}

// DailyLosers returns the day's biggest net losers from the ledger.
func (s *RankingService) DailyLosers(ctx context.Context, date time.Time, limit int) ([]*model.DailyRank, error) {
	return s.ledger.GetDailyLosers(ctx, date, limit)
}
