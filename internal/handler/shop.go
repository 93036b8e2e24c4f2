package handler

import (
	"context"
	"fmt"
	"strings"

	tele "gopkg.in/telebot.v3"

	"mafia-casino-bot/internal/catalog"
	"mafia-casino-bot/internal/service"
)

// ShopHandler handles the shop commands.
type ShopHandler struct {
	accountService *service.AccountService
	shopService    *service.ShopService
}

// NewShopHandler creates a new ShopHandler.
func NewShopHandler(accountService *service.AccountService, shopService *service.ShopService) *ShopHandler {
	return &ShopHandler{accountService: accountService, shopService: shopService}
}

func (h *ShopHandler) ensurePlayer(ctx context.Context, c tele.Context) (int64, error) {
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

// HandleShop handles /shop: lists the stock.
func (h *ShopHandler) HandleShop(c tele.Context) error {
	var b strings.Builder
	b.WriteString("🛒 Black market\n")
	for _, item := range h.shopService.Items() {
		fmt.Fprintf(&b, "/buy %s — %s (%s): %d coins\n", item.ID, item.Name, item.Category, item.Cost)
	}
	return c.Reply(b.String())
}

// HandleBuy handles /buy <id>.
func (h *ShopHandler) HandleBuy(c tele.Context) error {
	ctx := context.Background()
	id, err := h.ensurePlayer(ctx, c)
	if err != nil {
		return replyError(c, err)
	}

	args := c.Args()
	if len(args) < 1 {
		return c.Reply("Usage: /buy <id> — see /shop for the stock.")
	}

	out, err := h.shopService.Buy(ctx, id, catalog.ItemID(strings.ToLower(args[0])))
	if err != nil {
		return replyError(c, err)
	}

	return c.Reply(fmt.Sprintf(
		"🛒 %s acquired for %d coins. Balance: %d.",
		out.Item.Name, out.Item.Cost, out.NewMoney,
	))
}
