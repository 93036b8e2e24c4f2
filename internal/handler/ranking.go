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

const topLimit = 10

// RankingHandler handles the leaderboard commands.
type RankingHandler struct {
	rankingService *service.RankingService
}

// NewRankingHandler creates a new RankingHandler.
func NewRankingHandler(rankingService *service.RankingService) *RankingHandler {
	return &RankingHandler{rankingService: rankingService}
}

func displayName(p *model.Player) string {
	if p.DisplayName != "" {
		return p.DisplayName
	}
	if p.Username != "" {
		return "@" + p.Username
	}
	return fmt.Sprintf("player %d", p.ID)
}

// HandleTop handles /top [money|rank|reputation|territories].
func (h *RankingHandler) HandleTop(c tele.Context) error {
	ctx := context.Background()

	sort := model.TopByMoney
	if args := c.Args(); len(args) > 0 {
		switch strings.ToLower(args[0]) {
		case "money":
			sort = model.TopByMoney
		case "rank":
			sort = model.TopByRank
		case "reputation", "rep":
			sort = model.TopByReputation
		case "territories", "turf":
			sort = model.TopByTerritories
		default:
			return c.Reply("❌ Sort by one of: money, rank, reputation, territories.")
		}
	}

	players, err := h.rankingService.Top(ctx, sort, topLimit)
	if err != nil {
		return replyError(c, err)
	}
	if len(players) == 0 {
		return c.Reply("Nobody on the board yet.")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🏆 Top %d by %s\n", len(players), sort)
	for i, p := range players {
		switch sort {
		case model.TopByRank:
			fmt.Fprintf(&b, "%d. %s — %s (%d coins)\n", i+1, displayName(p), p.Rank, p.Money)
		case model.TopByReputation:
			fmt.Fprintf(&b, "%d. %s — police %d / mafia %d / citizens %d\n", i+1, displayName(p),
				p.Reputation[model.FactionPolice],
				p.Reputation[model.FactionMafia],
				p.Reputation[model.FactionCitizens])
		case model.TopByTerritories:
			fmt.Fprintf(&b, "%d. %s — %d territories\n", i+1, displayName(p), len(p.Territories))
		default:
			fmt.Fprintf(&b, "%d. %s — %d coins\n", i+1, displayName(p), p.Money)
		}
	}
	return c.Reply(b.String())
}

// HandleDailyTop handles /daily_top: today's biggest winners and losers.
func (h *RankingHandler) HandleDailyTop(c tele.Context) error {
	ctx := context.Background()
	today := time.Now()

	winners, err := h.rankingService.DailyWinners(ctx, today, topLimit)
	if err != nil {
		return replyError(c, err)
	}
	losers, err := h.rankingService.DailyLosers(ctx, today, topLimit)
	if err != nil {
		return replyError(c, err)
	}

	var b strings.Builder
	b.WriteString("📈 Today's winners\n")
	if len(winners) == 0 {
		b.WriteString("— nobody in the black yet\n")
	}
	for i, w := range winners {
		fmt.Fprintf(&b, "%d. @%s +%d\n", i+1, w.Username, w.NetProfit)
	}

	b.WriteString("\n📉 Today's losers\n")
	if len(losers) == 0 {
		b.WriteString("— nobody in the red yet")
	}
	for i, l := range losers {
		fmt.Fprintf(&b, "%d. @%s %d\n", i+1, l.Username, l.NetProfit)
	}

	return c.Reply(b.String())
}
