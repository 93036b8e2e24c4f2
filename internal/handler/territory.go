package handler

import (
	"context"
	"fmt"
	"strings"

	tele "gopkg.in/telebot.v3"

	"mafia-casino-bot/internal/catalog"
	"mafia-casino-bot/internal/service"
)

// TerritoryHandler handles the territory commands.
type TerritoryHandler struct {
	accountService   *service.AccountService
	territoryService *service.TerritoryService
	cat              *catalog.Catalog
}

// NewTerritoryHandler creates a new TerritoryHandler.
func NewTerritoryHandler(
	accountService *service.AccountService,
	territoryService *service.TerritoryService,
	cat *catalog.Catalog,
) *TerritoryHandler {
	return &TerritoryHandler{
		accountService:   accountService,
		territoryService: territoryService,
		cat:              cat,
	}
}

func (h *TerritoryHandler) ensurePlayer(ctx context.Context, c tele.Context) (int64, error) {
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

// HandleTerritories handles /territories: the catalog plus holdings.
func (h *TerritoryHandler) HandleTerritories(c tele.Context) error {
	ctx := context.Background()
	id, err := h.ensurePlayer(ctx, c)
	if err != nil {
		return replyError(c, err)
	}

	player, err := h.accountService.GetPlayer(ctx, id)
	if err != nil {
		return replyError(c, err)
	}

	var b strings.Builder
	b.WriteString("🏘 Territories\n")
	for _, t := range h.cat.Territories() {
		owned := ""
		if player.OwnsTerritory(string(t.ID)) {
			owned = " — yours"
		}
		fmt.Fprintf(&b, "/buy_territory %s — %s: %d coins, +%d income, %.0f%% seizure risk%s\n",
			t.ID, t.Name, t.Cost, t.Income, t.Risk*100, owned)
	}
	fmt.Fprintf(&b, "\nOwned: %d. /income to collect, /attack (reply) to raid.", len(player.Territories))
	return c.Reply(b.String())
}

// HandleBuyTerritory handles /buy_territory <id>.
func (h *TerritoryHandler) HandleBuyTerritory(c tele.Context) error {
	ctx := context.Background()
	id, err := h.ensurePlayer(ctx, c)
	if err != nil {
		return replyError(c, err)
	}

	args := c.Args()
	if len(args) < 1 {
		return c.Reply("Usage: /buy_territory <id> — see /territories for ids.")
	}

	out, err := h.territoryService.Buy(ctx, id, catalog.TerritoryID(strings.ToLower(args[0])))
	if err != nil {
		return replyError(c, err)
	}

	return c.Reply(fmt.Sprintf(
		"🏘 %s is yours for %d coins. It pays %d per collection. Balance: %d.",
		out.Territory.Name, out.Territory.Cost, out.Territory.Income, out.NewMoney,
	))
}

// HandleIncome handles /income: collect from every owned territory.
func (h *TerritoryHandler) HandleIncome(c tele.Context) error {
	ctx := context.Background()
	id, err := h.ensurePlayer(ctx, c)
	if err != nil {
		return replyError(c, err)
	}

	out, err := h.territoryService.CollectIncome(ctx, id)
	if err != nil {
		return replyError(c, err)
	}

	res := out.Result
	if res.Seized {
		name := string(res.SeizedTerritory)
		if t, err := h.cat.Territory(res.SeizedTerritory); err == nil {
			name = t.Name
		}
		return c.Reply(fmt.Sprintf(
			"💥 Rivals seized %s during the collection run! No income this time.", name,
		))
	}

	return c.Reply(fmt.Sprintf(
		"💰 Collected %d coins from %d territories. Balance: %d.",
		res.TotalIncome, len(res.Incomes), out.NewMoney,
	))
}

// HandleAttack handles /attack: raid the replied-to player's turf.
func (h *TerritoryHandler) HandleAttack(c tele.Context) error {
	ctx := context.Background()
	id, err := h.ensurePlayer(ctx, c)
	if err != nil {
		return replyError(c, err)
	}

	msg := c.Message()
	if msg == nil || msg.ReplyTo == nil || msg.ReplyTo.Sender == nil {
		return c.Reply("Usage: reply to your target's message with /attack.")
	}
	targetID := msg.ReplyTo.Sender.ID
	if targetID == id {
		return c.Reply("❌ You cannot raid your own turf.")
	}

	out, err := h.territoryService.Attack(ctx, id, targetID)
	if err != nil {
		return replyError(c, err)
	}

	res := out.Result
	name := res.Territory
	if t, err := h.cat.Territory(catalog.TerritoryID(res.Territory)); err == nil {
		name = t.Name
	}

	if res.Success {
		return c.Reply(fmt.Sprintf(
			"⚔️ Raid successful! %s changes hands. (odds were %.0f%%)",
			name, res.Chance*100,
		))
	}
	return c.Reply(fmt.Sprintf(
		"🛡 The raid on %s was repelled. Your standing with the mafia and the police took a hit. (odds were %.0f%%)",
		name, res.Chance*100,
	))
}
