package handler

import (
	"context"
	"fmt"
	"strings"
	"time"

	tele "gopkg.in/telebot.v3"

	"mafia-casino-bot/internal/model"
	"mafia-casino-bot/internal/service"
)

// AccountHandler handles registration, profile and daily bonus commands.
type AccountHandler struct {
	accountService *service.AccountService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountService *service.AccountService) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

// senderNames extracts the username and display name of the sender.
func senderNames(sender *tele.User) (username, displayName string) {
	username = sender.Username
	displayName = strings.TrimSpace(sender.FirstName + " " + sender.LastName)
	if displayName == "" {
		displayName = username
	}
	return username, displayName
}

// HandleStart handles the /start command: creates the account with the
// starting balance on first contact.
func (h *AccountHandler) HandleStart(c tele.Context) error {
	ctx := context.Background()
	sender := c.Sender()
	if sender == nil {
		return nil
	}

	username, displayName := senderNames(sender)
	player, created, err := h.accountService.EnsureUser(ctx, sender.ID, username, displayName)
	if err != nil {
		return replyError(c, err)
	}

	if created {
		return c.Reply(fmt.Sprintf(
			"🕴 Welcome to the family, %s!\n\n"+
				"Starting capital: %d coins\n\n"+
				"/profile — your record\n"+
				"/daily — daily bonus\n"+
				"/slots /roulette /blackjack /dice — casino\n"+
				"/crime /territories — street work\n"+
				"/shop — equipment\n"+
				"/top — leaderboards",
			displayName, player.Money,
		))
	}

	return c.Reply(fmt.Sprintf(
		"👋 Welcome back, %s. Balance: %d coins, rank: %s.",
		displayName, player.Money, player.Rank,
	))
}

// HandleProfile handles the /profile command.
func (h *AccountHandler) HandleProfile(c tele.Context) error {
	ctx := context.Background()
	sender := c.Sender()
	if sender == nil {
		return nil
	}

	username, displayName := senderNames(sender)
	player, _, err := h.accountService.EnsureUser(ctx, sender.ID, username, displayName)
	if err != nil {
		return replyError(c, err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🕴 %s — %s\n", player.DisplayName, player.Rank)
	fmt.Fprintf(&b, "💰 Money: %d\n", player.Money)
	fmt.Fprintf(&b, "🤝 Reputation: police %d, mafia %d, citizens %d\n",
		player.Reputation[model.FactionPolice],
		player.Reputation[model.FactionMafia],
		player.Reputation[model.FactionCitizens],
	)
	fmt.Fprintf(&b, "🏘 Territories: %d\n", len(player.Territories))
	fmt.Fprintf(&b, "🎒 Items: %d\n", len(player.Inventory))
	fmt.Fprintf(&b, "🎲 Games: %d played, %d won\n",
		player.Statistics.GamesPlayed, player.Statistics.GamesWon)
	fmt.Fprintf(&b, "🔪 Crimes: %d committed, %d successful",
		player.Statistics.CrimesCommitted, player.Statistics.CrimesSuccessful)

	if player.InJail(time.Now()) {
		fmt.Fprintf(&b, "\n🚔 In jail for another %s", formatDuration(player.JailRemaining(time.Now())))
	}

	return c.Reply(b.String())
}

// HandleDaily handles the /daily command.
func (h *AccountHandler) HandleDaily(c tele.Context) error {
	ctx := context.Background()
	sender := c.Sender()
	if sender == nil {
		return nil
	}

	username, displayName := senderNames(sender)
	if _, _, err := h.accountService.EnsureUser(ctx, sender.ID, username, displayName); err != nil {
		return replyError(c, err)
	}

	res, err := h.accountService.ClaimDaily(ctx, sender.ID)
	if err != nil {
		return replyError(c, err)
	}

	return c.Reply(fmt.Sprintf(
		"🎁 Daily bonus collected: +%d coins. Balance: %d.",
		res.Amount, res.NewMoney,
	))
}
