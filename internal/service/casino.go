package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"mafia-casino-bot/internal/catalog"
	"mafia-casino-bot/internal/economy"
	"mafia-casino-bot/internal/game"
	"mafia-casino-bot/internal/game/blackjack"
	"mafia-casino-bot/internal/game/dice"
	"mafia-casino-bot/internal/game/roulette"
	"mafia-casino-bot/internal/game/slots"
	"mafia-casino-bot/internal/model"
	"mafia-casino-bot/internal/pkg/lock"
	"mafia-casino-bot/internal/pkg/random"
	"mafia-casino-bot/internal/repository"
)

// Casino session errors.
var (
	ErrRoundInProgress = errors.New("a blackjack round is already in progress")
	ErrNoActiveRound   = errors.New("no blackjack round in progress")
)

// Outcome carries the balance effect common to every settled game.
// Net is win amount minus wager over the whole round.
type Outcome struct {
	Wager    int64
	Net      int64
	NewMoney int64
	NewRank  string
}

// SlotsOutcome is a settled slots spin.
type SlotsOutcome struct {
	Outcome
	Spin *slots.Result
}

// RouletteOutcome is a settled roulette spin.
type RouletteOutcome struct {
	Outcome
	Spin *roulette.Result
}

// DiceOutcome is a settled dice roll.
type DiceOutcome struct {
	Outcome
	Roll *dice.Result
}

// BlackjackOutcome is a settled blackjack round.
type BlackjackOutcome struct {
	Outcome
	Settlement *blackjack.Settlement
	Round      *blackjack.Round
}

// CasinoService orchestrates the casino games: wager validation,
// resolver invocation and outcome persistence. Blackjack rounds live in
// an in-memory session map, one concurrent round per player.
type CasinoService struct {
	players *repository.PlayerRepository
	ledger  *repository.TransactionRepository
	cat     *catalog.Catalog
	locks   *lock.PlayerLock
	rng     random.Source

	mu     sync.Mutex
	rounds map[int64]*blackjack.Round
}

// NewCasinoService creates a new CasinoService instance.
func NewCasinoService(
	players *repository.PlayerRepository,
	ledger *repository.TransactionRepository,
	cat *catalog.Catalog,
	locks *lock.PlayerLock,
	rng random.Source,
) *CasinoService {
	return &CasinoService{
		players: players,
		ledger:  ledger,
		cat:     cat,
		locks:   locks,
		rng:     rng,
		rounds:  make(map[int64]*blackjack.Round),
	}
}

// settle persists a game result: money delta, lifetime statistics,
// rank refresh and the ledger entry. Net drives the statistics; delta
// is the balance movement and ledger amount, which differs from net in
// blackjack where the wager was already escrowed at deal time. Must run
// under the player lock.
func (s *CasinoService) settle(ctx context.Context, p *model.Player, gameName, txType string, wager, winAmount, delta int64, won bool) (Outcome, error) {
	net := winAmount - wager

	stats := p.Statistics
	stats.CountPlay(gameName)
	if won {
		stats.GamesWon++
	}
	if net > 0 {
		stats.MoneyEarned += net
	} else {
		stats.MoneyLost += -net
	}

	newMoney := p.Money + delta
	newRank := economy.RankFor(s.cat.Ranks(), newMoney, p.Reputation.Total())

	updated, err := s.players.Update(ctx, p.ID, repository.PlayerUpdate{
		Money:      &newMoney,
		Rank:       &newRank,
		Statistics: &stats,
	})
	if err != nil {
		return Outcome{}, fmt.Errorf("failed to settle %s result: %w", gameName, err)
	}

	if delta != 0 {
		if _, err := s.ledger.Create(ctx, p.ID, delta, txType, nil); err != nil {
			// Non-fatal, balance was already updated
		}
	}

	return Outcome{Wager: wager, Net: net, NewMoney: updated.Money, NewRank: updated.Rank}, nil
}

// PlaySlots runs one slot spin for the player.
func (s *CasinoService) PlaySlots(ctx context.Context, id int64, wager int64) (*SlotsOutcome, error) {
	var out *SlotsOutcome
	err := s.locks.WithLock(id, func() error {
		player, err := s.players.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if player.Money < wager {
			return game.ErrInsufficientFunds
		}

		spin, err := slots.Spin(s.rng, s.cat, wager)
		if err != nil {
			return err
		}

		settled, err := s.settle(ctx, player, "slots", model.TxTypeSlots, wager, spin.WinAmount, spin.WinAmount-wager, spin.WinAmount > 0)
		if err != nil {
			return err
		}
		out = &SlotsOutcome{Outcome: settled, Spin: spin}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// PlayRoulette runs one roulette spin for the player.
func (s *CasinoService) PlayRoulette(ctx context.Context, id int64, kind roulette.BetKind, value string, wager int64) (*RouletteOutcome, error) {
	var out *RouletteOutcome
	err := s.locks.WithLock(id, func() error {
		player, err := s.players.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if player.Money < wager {
			return game.ErrInsufficientFunds
		}

		spin, err := roulette.Spin(s.rng, kind, value, wager)
		if err != nil {
			return err
		}

		settled, err := s.settle(ctx, player, "roulette", model.TxTypeRoulette, wager, spin.WinAmount, spin.WinAmount-wager, spin.Won)
		if err != nil {
			return err
		}
		out = &RouletteOutcome{Outcome: settled, Spin: spin}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// PlayDice runs one dice roll for the player.
func (s *CasinoService) PlayDice(ctx context.Context, id int64, wager int64, prediction int) (*DiceOutcome, error) {
	var out *DiceOutcome
	err := s.locks.WithLock(id, func() error {
		player, err := s.players.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if player.Money < wager {
			return game.ErrInsufficientFunds
		}

		roll, err := dice.Roll(s.rng, wager, prediction)
		if err != nil {
			return err
		}

		settled, err := s.settle(ctx, player, "dice", model.TxTypeDice, wager, roll.WinAmount, roll.WinAmount-wager, roll.Won)
		if err != nil {
			return err
		}
		out = &DiceOutcome{Outcome: settled, Roll: roll}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// StartBlackjack deals a new round for the player. Only one round per
// player may be live at a time. The wager leaves the balance at deal
// time; settlement pays winnings gross, so the balance can never go
// negative whatever happens between deal and stand.
func (s *CasinoService) StartBlackjack(ctx context.Context, id int64, wager int64) (*blackjack.Round, error) {
	var round *blackjack.Round
	err := s.locks.WithLock(id, func() error {
		s.mu.Lock()
		_, active := s.rounds[id]
		s.mu.Unlock()
		if active {
			return ErrRoundInProgress
		}

		player, err := s.players.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if player.Money < wager {
			return game.ErrInsufficientFunds
		}

		round, err = blackjack.Deal(s.rng, wager)
		if err != nil {
			return err
		}

		newMoney := player.Money - wager
		newRank := economy.RankFor(s.cat.Ranks(), newMoney, player.Reputation.Total())
		if _, err := s.players.Update(ctx, id, repository.PlayerUpdate{
			Money: &newMoney,
			Rank:  &newRank,
		}); err != nil {
			return fmt.Errorf("failed to escrow blackjack wager: %w", err)
		}

		desc := "blackjack wager"
		if _, err := s.ledger.Create(ctx, id, -wager, model.TxTypeBlackjack, &desc); err != nil {
			// Non-fatal, balance was already updated
		}

		s.mu.Lock()
		s.rounds[id] = round
		s.mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return round, nil
}

// ActiveRound returns the player's live blackjack round, if any.
func (s *CasinoService) ActiveRound(id int64) (*blackjack.Round, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	round, ok := s.rounds[id]
	return round, ok
}

// BlackjackHit draws a card for the player. A bust settles the round
// immediately; otherwise the round stays live and the outcome is nil.
func (s *CasinoService) BlackjackHit(ctx context.Context, id int64) (*blackjack.Round, *BlackjackOutcome, error) {
	var (
		round *blackjack.Round
		out   *BlackjackOutcome
	)
	err := s.locks.WithLock(id, func() error {
		s.mu.Lock()
		r, ok := s.rounds[id]
		s.mu.Unlock()
		if !ok {
			return ErrNoActiveRound
		}
		round = r

		if err := r.Hit(); err != nil {
			return err
		}
		if r.State != blackjack.StateBust {
			return nil
		}

		settlement := r.BustSettlement()
		settled, err := s.finishBlackjack(ctx, id, r, settlement)
		if err != nil {
			return err
		}
		out = settled
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return round, out, nil
}

// BlackjackStand ends the player's turn and settles against the dealer.
func (s *CasinoService) BlackjackStand(ctx context.Context, id int64) (*BlackjackOutcome, error) {
	var out *BlackjackOutcome
	err := s.locks.WithLock(id, func() error {
		s.mu.Lock()
		r, ok := s.rounds[id]
		s.mu.Unlock()
		if !ok {
			return ErrNoActiveRound
		}

		settlement, err := r.Stand()
		if err != nil {
			return err
		}

		settled, err := s.finishBlackjack(ctx, id, r, settlement)
		if err != nil {
			return err
		}
		out = settled
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// finishBlackjack persists a terminal settlement and drops the session.
// Must run under the player lock.
func (s *CasinoService) finishBlackjack(ctx context.Context, id int64, r *blackjack.Round, settlement *blackjack.Settlement) (*BlackjackOutcome, error) {
	player, err := s.players.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// The wager was escrowed at deal time, so only the winnings move.
	won := settlement.Outcome == blackjack.OutcomeWin || settlement.Outcome == blackjack.OutcomeDealerBust
	settled, err := s.settle(ctx, player, "blackjack", model.TxTypeBlackjack, r.Wager, settlement.WinAmount, settlement.WinAmount, won)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	delete(s.rounds, id)
	s.mu.Unlock()

	return &BlackjackOutcome{Outcome: settled, Settlement: settlement, Round: r}, nil
}

// AbandonRound forfeits a live round. The escrowed wager stays with
// the house; only the lifetime statistics are recorded.
func (s *CasinoService) AbandonRound(ctx context.Context, id int64) error {
	return s.locks.WithLock(id, func() error {
		s.mu.Lock()
		r, ok := s.rounds[id]
		if ok {
			delete(s.rounds, id)
		}
		s.mu.Unlock()
		if !ok {
			return ErrNoActiveRound
		}

		player, err := s.players.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if _, err := s.settle(ctx, player, "blackjack", model.TxTypeBlackjack, r.Wager, 0, 0, false); err != nil {
			return err
		}
		return nil
	})
}
