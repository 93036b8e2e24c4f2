package handler

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tele "gopkg.in/telebot.v3"

	"mafia-casino-bot/internal/game"
	"mafia-casino-bot/internal/game/blackjack"
	"mafia-casino-bot/internal/game/cards"
	"mafia-casino-bot/internal/game/roulette"
	"mafia-casino-bot/internal/game/slots"
	"mafia-casino-bot/internal/service"
)

// Blackjack callback actions.
const (
	cbBlackjackHit   = "bj_hit"
	cbBlackjackStand = "bj_stand"
)

// CasinoHandler handles the casino game commands.
type CasinoHandler struct {
	accountService *service.AccountService
	casinoService  *service.CasinoService
	registry       *game.Registry
}

// NewCasinoHandler creates a new CasinoHandler.
func NewCasinoHandler(
	accountService *service.AccountService,
	casinoService *service.CasinoService,
	registry *game.Registry,
) *CasinoHandler {
	return &CasinoHandler{
		accountService: accountService,
		casinoService:  casinoService,
		registry:       registry,
	}
}

// ensurePlayer registers the sender on first contact so every game
// command works without a prior /start.
func (h *CasinoHandler) ensurePlayer(ctx context.Context, c tele.Context) (int64, error) {
	sender := c.Sender()
	if sender == nil {
		return 0, fmt.Errorf("no sender")
	}
	username, displayName := senderNames(sender)
	if _, _, err := h.accountService.EnsureUser(ctx, sender.ID, username, displayName); err != nil {
		return 0, err
	}
	return sender.ID, nil
}

func parseWager(arg string) (int64, error) {
	wager, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || wager <= 0 {
		return 0, game.ErrInvalidWager
	}
	return wager, nil
}

// HandleGames handles /games: lists the playable games.
func (h *CasinoHandler) HandleGames(c tele.Context) error {
	var b strings.Builder
	b.WriteString("🎰 Casino floor\n")
	for _, d := range h.registry.List() {
		fmt.Fprintf(&b, "/%s — %s\n", d.Command(), d.Description())
	}
	return c.Reply(b.String())
}

// HandleSlots handles /slots <wager>.
func (h *CasinoHandler) HandleSlots(c tele.Context) error {
	ctx := context.Background()
	id, err := h.ensurePlayer(ctx, c)
	if err != nil {
		return replyError(c, err)
	}

	args := c.Args()
	if len(args) < 1 {
		return c.Reply("Usage: /slots <wager>")
	}
	wager, err := parseWager(args[0])
	if err != nil {
		return replyError(c, err)
	}

	out, err := h.casinoService.PlaySlots(ctx, id, wager)
	if err != nil {
		return replyError(c, err)
	}

	reels := fmt.Sprintf("%s | %s | %s", out.Spin.Symbols[0], out.Spin.Symbols[1], out.Spin.Symbols[2])
	switch out.Spin.Outcome {
	case slots.OutcomeJackpot:
		return c.Reply(fmt.Sprintf("🎰 %s\n💎 JACKPOT x%d! +%d coins. Balance: %d.",
			reels, out.Spin.Multiplier, out.Net, out.NewMoney))
	case slots.OutcomePair:
		return c.Reply(fmt.Sprintf("🎰 %s\n✨ Pair pays x%d. Net %+d. Balance: %d.",
			reels, out.Spin.Multiplier, out.Net, out.NewMoney))
	default:
		return c.Reply(fmt.Sprintf("🎰 %s\n💸 Nothing. -%d coins. Balance: %d.",
			reels, wager, out.NewMoney))
	}
}

// HandleRoulette handles /roulette <wager> <red|black|even|odd|0-36>.
func (h *CasinoHandler) HandleRoulette(c tele.Context) error {
	ctx := context.Background()
	id, err := h.ensurePlayer(ctx, c)
	if err != nil {
		return replyError(c, err)
	}

	args := c.Args()
	if len(args) < 2 {
		return c.Reply("Usage: /roulette <wager> <red|black|even|odd|0-36>")
	}
	wager, err := parseWager(args[0])
	if err != nil {
		return replyError(c, err)
	}

	bet := strings.ToLower(args[1])
	kind := roulette.BetNumber
	switch bet {
	case "red", "black":
		kind = roulette.BetColor
	case "even", "odd":
		kind = roulette.BetParity
	}

	out, err := h.casinoService.PlayRoulette(ctx, id, kind, bet, wager)
	if err != nil {
		return replyError(c, err)
	}

	pocket := fmt.Sprintf("%d (%s)", out.Spin.Number, out.Spin.Color)
	if out.Spin.Won {
		return c.Reply(fmt.Sprintf("🎡 The ball lands on %s.\n✅ x%d pays %+d. Balance: %d.",
			pocket, out.Spin.Multiplier, out.Net, out.NewMoney))
	}
	return c.Reply(fmt.Sprintf("🎡 The ball lands on %s.\n💸 You lose %d. Balance: %d.",
		pocket, wager, out.NewMoney))
}

// HandleDice handles /dice <wager> <2-12>.
func (h *CasinoHandler) HandleDice(c tele.Context) error {
	ctx := context.Background()
	id, err := h.ensurePlayer(ctx, c)
	if err != nil {
		return replyError(c, err)
	}

	args := c.Args()
	if len(args) < 2 {
		return c.Reply("Usage: /dice <wager> <2-12>")
	}
	wager, err := parseWager(args[0])
	if err != nil {
		return replyError(c, err)
	}
	prediction, err := strconv.Atoi(args[1])
	if err != nil {
		return replyError(c, game.ErrInvalidPrediction)
	}

	out, err := h.casinoService.PlayDice(ctx, id, wager, prediction)
	if err != nil {
		return replyError(c, err)
	}

	throw := fmt.Sprintf("🎲 %d + %d = %d (you called %d)",
		out.Roll.Dice[0], out.Roll.Dice[1], out.Roll.Total, prediction)
	if out.Roll.Won {
		return c.Reply(fmt.Sprintf("%s\n✅ x%d pays %+d. Balance: %d.",
			throw, out.Roll.Multiplier, out.Net, out.NewMoney))
	}
	return c.Reply(fmt.Sprintf("%s\n💸 You lose %d. Balance: %d.", throw, wager, out.NewMoney))
}

// blackjackKeyboard builds the hit/stand inline keyboard.
func blackjackKeyboard() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	hit := markup.Data("🃏 Hit", cbBlackjackHit)
	stand := markup.Data("✋ Stand", cbBlackjackStand)
	markup.Inline(markup.Row(hit, stand))
	return markup
}

func renderHand(hand []cards.Card) string {
	parts := make([]string, 0, len(hand))
	for _, card := range hand {
		parts = append(parts, card.String())
	}
	return strings.Join(parts, " ")
}

func renderRound(r *blackjack.Round) string {
	return fmt.Sprintf(
		"🃏 Blackjack — wager %d\nYour hand: %s (%d)\nDealer: %s",
		r.Wager, renderHand(r.Player), r.PlayerScore(), renderHand(r.DealerVisible()),
	)
}

func renderSettlement(out *service.BlackjackOutcome) string {
	s := out.Settlement
	hands := fmt.Sprintf("Your hand: %s (%d)\nDealer: %s (%d)",
		renderHand(out.Round.Player), s.PlayerScore,
		renderHand(out.Round.Dealer), s.DealerScore)

	switch s.Outcome {
	case blackjack.OutcomeBust:
		return fmt.Sprintf("%s\n💥 Bust! You lose %d. Balance: %d.", hands, out.Wager, out.NewMoney)
	case blackjack.OutcomeDealerBust:
		return fmt.Sprintf("%s\n💥 Dealer busts! %+d coins. Balance: %d.", hands, out.Net, out.NewMoney)
	case blackjack.OutcomeWin:
		return fmt.Sprintf("%s\n✅ You win! %+d coins. Balance: %d.", hands, out.Net, out.NewMoney)
	case blackjack.OutcomePush:
		return fmt.Sprintf("%s\n🤝 Push. Wager returned. Balance: %d.", hands, out.NewMoney)
	default:
		return fmt.Sprintf("%s\n💸 Dealer wins. You lose %d. Balance: %d.", hands, out.Wager, out.NewMoney)
	}
}

// HandleBlackjack handles /blackjack <wager>: deals a round with the
// hit/stand keyboard attached. /blackjack quit forfeits a live round.
func (h *CasinoHandler) HandleBlackjack(c tele.Context) error {
	ctx := context.Background()
	id, err := h.ensurePlayer(ctx, c)
	if err != nil {
		return replyError(c, err)
	}

	args := c.Args()
	if len(args) < 1 {
		return c.Reply("Usage: /blackjack <wager>, or /blackjack quit to forfeit a live round.")
	}
	if strings.EqualFold(args[0], "quit") {
		if err := h.casinoService.AbandonRound(ctx, id); err != nil {
			return replyError(c, err)
		}
		return c.Reply("🃏 Round forfeited. The wager stays with the house.")
	}
	wager, err := parseWager(args[0])
	if err != nil {
		return replyError(c, err)
	}

	round, err := h.casinoService.StartBlackjack(ctx, id, wager)
	if err != nil {
		return replyError(c, err)
	}

	return c.Reply(renderRound(round), blackjackKeyboard())
}

// HandleBlackjackCallback resolves the hit/stand button presses.
func (h *CasinoHandler) HandleBlackjackCallback(c tele.Context) error {
	ctx := context.Background()
	callback := c.Callback()
	if callback == nil || c.Sender() == nil {
		return nil
	}
	id := c.Sender().ID

	data := strings.TrimPrefix(callback.Data, "\f")
	// Strip telebot's unique|payload framing if present
	if i := strings.IndexByte(data, '|'); i >= 0 {
		data = data[:i]
	}

	switch data {
	case cbBlackjackHit:
		round, out, err := h.casinoService.BlackjackHit(ctx, id)
		if err != nil {
			return replyError(c, err)
		}
		if out != nil {
			return c.Edit(renderSettlement(out))
		}
		return c.Edit(renderRound(round), blackjackKeyboard())

	case cbBlackjackStand:
		out, err := h.casinoService.BlackjackStand(ctx, id)
		if err != nil {
			return replyError(c, err)
		}
		return c.Edit(renderSettlement(out))
	}
	return nil
}
