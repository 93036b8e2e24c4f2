// Package handler provides the Telegram command handlers. Handlers
// parse arguments, call the services and render outcomes into replies;
// they hold no game logic of their own.
package handler

import (
	"errors"
	"fmt"
	"time"

	tele "gopkg.in/telebot.v3"

	"mafia-casino-bot/internal/game"
	"mafia-casino-bot/internal/repository"
	"mafia-casino-bot/internal/service"
)

// formatDuration renders a wait as the largest two useful units.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	switch {
	case h > 0:
		return fmt.Sprintf("%dh %dm", h, m)
	case m > 0:
		return fmt.Sprintf("%dm %ds", m, s)
	default:
		return fmt.Sprintf("%ds", s)
	}
}

// replyError maps service and resolver errors onto user-facing replies.
// Unknown errors get a generic message so internals never leak to chat.
func replyError(c tele.Context, err error) error {
	var cooldown *game.CooldownErr
	switch {
	case errors.As(err, &cooldown):
		return c.Reply(fmt.Sprintf("⏳ Not so fast. Try again in %s.", formatDuration(cooldown.Remaining)))
	case errors.Is(err, game.ErrInvalidWager):
		return c.Reply("❌ The wager must be a positive number.")
	case errors.Is(err, game.ErrInvalidBet):
		return c.Reply("❌ That bet is not on the table.")
	case errors.Is(err, game.ErrInvalidPrediction):
		return c.Reply("❌ Predict a sum between 2 and 12.")
	case errors.Is(err, game.ErrInsufficientFunds):
		return c.Reply("❌ Not enough money.")
	case errors.Is(err, game.ErrAlreadyOwned):
		return c.Reply("❌ You already own that territory.")
	case errors.Is(err, game.ErrNoTerritories):
		return c.Reply("❌ No territories to work with.")
	case errors.Is(err, game.ErrInJail):
		return c.Reply("🚔 You are in jail. Use /escape to attempt a breakout.")
	case errors.Is(err, game.ErrNotInJail):
		return c.Reply("❌ You are not in jail.")
	case errors.Is(err, game.ErrEscapeInProgress):
		return c.Reply("❌ An escape attempt is already underway.")
	case errors.Is(err, game.ErrUnknownEntity):
		return c.Reply("❌ No such thing around here.")
	case errors.Is(err, service.ErrRoundInProgress):
		return c.Reply("❌ Finish your current blackjack round first.")
	case errors.Is(err, service.ErrNoActiveRound):
		return c.Reply("❌ No blackjack round in progress. Start one with /blackjack <wager>.")
	case errors.Is(err, repository.ErrPlayerNotFound):
		return c.Reply("❌ Player not found. They need to /start first.")
	default:
		return c.Reply("❌ Something went wrong, try again later.")
	}
}
