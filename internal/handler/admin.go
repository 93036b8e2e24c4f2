package handler

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tele "gopkg.in/telebot.v3"

	"mafia-casino-bot/internal/service"
)

// AdminHandler handles the moderator commands.
type AdminHandler struct {
	accountService *service.AccountService
	adminService   *service.AdminService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(accountService *service.AccountService, adminService *service.AdminService) *AdminHandler {
	return &AdminHandler{accountService: accountService, adminService: adminService}
}

// resolveTarget finds the target player id: the replied-to sender, or
// the first argument as @username or numeric id.
func (h *AdminHandler) resolveTarget(ctx context.Context, c tele.Context, args []string) (int64, []string, error) {
	if msg := c.Message(); msg != nil && msg.ReplyTo != nil && msg.ReplyTo.Sender != nil {
		return msg.ReplyTo.Sender.ID, args, nil
	}
	if len(args) == 0 {
		return 0, nil, fmt.Errorf("no target")
	}

	ref := args[0]
	rest := args[1:]
	if strings.HasPrefix(ref, "@") {
		player, err := h.accountService.GetPlayerByUsername(ctx, strings.TrimPrefix(ref, "@"))
		if err != nil {
			return 0, nil, err
		}
		return player.ID, rest, nil
	}

	id, err := strconv.ParseInt(ref, 10, 64)
	if err != nil {
		return 0, nil, fmt.Errorf("no target")
	}
	return id, rest, nil
}

// HandleBan handles /ban <target>.
func (h *AdminHandler) HandleBan(c tele.Context) error {
	ctx := context.Background()
	targetID, _, err := h.resolveTarget(ctx, c, c.Args())
	if err != nil {
		return c.Reply("Usage: /ban @username, or reply to the target.")
	}
	if err := h.adminService.SetBanned(ctx, targetID, true); err != nil {
		return replyError(c, err)
	}
	return c.Reply(fmt.Sprintf("🔨 Player %d banned.", targetID))
}

// HandleUnban handles /unban <target>.
func (h *AdminHandler) HandleUnban(c tele.Context) error {
	ctx := context.Background()
	targetID, _, err := h.resolveTarget(ctx, c, c.Args())
	if err != nil {
		return c.Reply("Usage: /unban @username, or reply to the target.")
	}
	if err := h.adminService.SetBanned(ctx, targetID, false); err != nil {
		return replyError(c, err)
	}
	return c.Reply(fmt.Sprintf("🕊 Player %d unbanned.", targetID))
}

// HandleAdminAdd handles /admin_add <target> <amount>.
func (h *AdminHandler) HandleAdminAdd(c tele.Context) error {
	ctx := context.Background()
	targetID, rest, err := h.resolveTarget(ctx, c, c.Args())
	if err != nil || len(rest) < 1 {
		return c.Reply("Usage: /admin_add @username <amount>.")
	}
	amount, err := strconv.ParseInt(rest[0], 10, 64)
	if err != nil {
		return c.Reply("Usage: /admin_add @username <amount>.")
	}

	player, err := h.adminService.AddMoney(ctx, targetID, amount)
	if err != nil {
		return replyError(c, err)
	}
	return c.Reply(fmt.Sprintf("💰 Granted %+d to player %d. New balance: %d.", amount, targetID, player.Money))
}

// HandleAdminSet handles /admin_set <target> <amount>.
func (h *AdminHandler) HandleAdminSet(c tele.Context) error {
	ctx := context.Background()
	targetID, rest, err := h.resolveTarget(ctx, c, c.Args())
	if err != nil || len(rest) < 1 {
		return c.Reply("Usage: /admin_set @username <amount>.")
	}
	amount, err := strconv.ParseInt(rest[0], 10, 64)
	if err != nil {
		return c.Reply("Usage: /admin_set @username <amount>.")
	}

	player, err := h.adminService.SetMoney(ctx, targetID, amount)
	if err != nil {
		return replyError(c, err)
	}
	return c.Reply(fmt.Sprintf("💰 Balance of player %d set to %d.", targetID, player.Money))
}

// HandleStats handles /stats: the admin overview.
func (h *AdminHandler) HandleStats(c tele.Context) error {
	ctx := context.Background()
	stats, err := h.adminService.Stats(ctx)
	if err != nil {
		return replyError(c, err)
	}

	return c.Reply(fmt.Sprintf(
		"📊 Overview\n"+
			"Players: %d (%d banned, %d jailed)\n"+
			"Money in circulation: %d\n"+
			"Territories held: %d\n"+
			"Games played: %d\n"+
			"Crimes committed: %d",
		stats.Players, stats.Banned, stats.Jailed,
		stats.TotalMoney, stats.TotalTerritories,
		stats.TotalGames, stats.TotalCrimes,
	))
}
