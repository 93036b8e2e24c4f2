package handler

import (
	"context"
	"fmt"
	"strings"

	tele "gopkg.in/telebot.v3"

	"mafia-casino-bot/internal/catalog"
	"mafia-casino-bot/internal/model"
	"mafia-casino-bot/internal/service"
)

// CrimeHandler handles the crime and jail commands.
type CrimeHandler struct {
	accountService *service.AccountService
	crimeService   *service.CrimeService
	cat            *catalog.Catalog
}

// NewCrimeHandler creates a new CrimeHandler.
func NewCrimeHandler(
	accountService *service.AccountService,
	crimeService *service.CrimeService,
	cat *catalog.Catalog,
) *CrimeHandler {
	return &CrimeHandler{accountService: accountService, crimeService: crimeService, cat: cat}
}

func (h *CrimeHandler) ensurePlayer(ctx context.Context, c tele.Context) (int64, error) {
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

// HandleCrime handles /crime [id]. Without an argument it lists the
// available jobs; with one it attempts the named crime.
func (h *CrimeHandler) HandleCrime(c tele.Context) error {
	ctx := context.Background()
	id, err := h.ensurePlayer(ctx, c)
	if err != nil {
		return replyError(c, err)
	}

	args := c.Args()
	if len(args) < 1 {
		var b strings.Builder
		b.WriteString("🔪 Jobs on offer\n")
		for _, crime := range h.cat.Crimes() {
			fmt.Fprintf(&b, "/crime %s — %s: %d-%d coins, %.0f%% odds",
				crime.ID, crime.Name, crime.RewardMin, crime.RewardMax, crime.SuccessRate*100)
			if crime.MinMoney > 0 {
				fmt.Fprintf(&b, ", needs %d on hand", crime.MinMoney)
			}
			b.WriteString("\n")
		}
		return c.Reply(b.String())
	}

	out, err := h.crimeService.CommitCrime(ctx, id, catalog.CrimeID(strings.ToLower(args[0])))
	if err != nil {
		return replyError(c, err)
	}

	res := out.Result
	if res.Success {
		return c.Reply(fmt.Sprintf(
			"✅ %s pulled off! +%d coins.\n"+
				"Reputation: police %+d, mafia %+d, citizens %+d.\nBalance: %d.",
			res.Crime.Name, res.Reward,
			res.Reputation[model.FactionPolice],
			res.Reputation[model.FactionMafia],
			res.Reputation[model.FactionCitizens],
			out.NewMoney,
		))
	}

	return c.Reply(fmt.Sprintf(
		"🚔 Busted during %s! Jail for %s.\n"+
			"Reputation: police %+d, mafia %+d, citizens %+d.",
		res.Crime.Name, formatDuration(res.Crime.JailTime),
		res.Reputation[model.FactionPolice],
		res.Reputation[model.FactionMafia],
		res.Reputation[model.FactionCitizens],
	))
}

// HandleEscape handles /escape: a bribe-funded breakout attempt.
func (h *CrimeHandler) HandleEscape(c tele.Context) error {
	ctx := context.Background()
	id, err := h.ensurePlayer(ctx, c)
	if err != nil {
		return replyError(c, err)
	}

	out, err := h.crimeService.Escape(ctx, id)
	if err != nil {
		return replyError(c, err)
	}

	res := out.Result
	if res.Success {
		return c.Reply(fmt.Sprintf(
			"🏃 You slipped out! The bribe cost %d coins. Balance: %d.",
			res.Cost, out.NewMoney,
		))
	}
	return c.Reply(fmt.Sprintf(
		"🚔 Caught in the corridor. The bribe of %d coins is gone and the guards doubled the watch. Balance: %d.",
		res.Cost, out.NewMoney,
	))
}
