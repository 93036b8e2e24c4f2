// Package bot provides the Telegram bot initialization and handler registration.
package bot

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	tele "gopkg.in/telebot.v3"

	"mafia-casino-bot/internal/catalog"
	"mafia-casino-bot/internal/config"
	"mafia-casino-bot/internal/game"
	"mafia-casino-bot/internal/handler"
	"mafia-casino-bot/internal/service"
)

// Bot wraps the telebot instance with application dependencies.
type Bot struct {
	bot *tele.Bot
	cfg *config.Config

	accountHandler   *handler.AccountHandler
	rankingHandler   *handler.RankingHandler
	casinoHandler    *handler.CasinoHandler
	crimeHandler     *handler.CrimeHandler
	territoryHandler *handler.TerritoryHandler
	shopHandler      *handler.ShopHandler
	adminHandler     *handler.AdminHandler
}

// Dependencies holds everything the bot handlers need.
type Dependencies struct {
	Config           *config.Config
	Catalog          *catalog.Catalog
	Registry         *game.Registry
	AccountService   *service.AccountService
	CasinoService    *service.CasinoService
	CrimeService     *service.CrimeService
	TerritoryService *service.TerritoryService
	ShopService      *service.ShopService
	RankingService   *service.RankingService
	AdminService     *service.AdminService
}

// New creates a new Bot instance with the given dependencies.
func New(deps *Dependencies) (*Bot, error) {
	if deps.Config.Bot.Token == "" {
		return nil, fmt.Errorf("bot token is required")
	}

	pref := tele.Settings{
		Token:  deps.Config.Bot.Token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}

	teleBot, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	b := &Bot{
		bot: teleBot,
		cfg: deps.Config,
	}

	b.accountHandler = handler.NewAccountHandler(deps.AccountService)
	b.rankingHandler = handler.NewRankingHandler(deps.RankingService)
	b.casinoHandler = handler.NewCasinoHandler(deps.AccountService, deps.CasinoService, deps.Registry)
	b.crimeHandler = handler.NewCrimeHandler(deps.AccountService, deps.CrimeService, deps.Catalog)
	b.territoryHandler = handler.NewTerritoryHandler(deps.AccountService, deps.TerritoryService, deps.Catalog)
	b.shopHandler = handler.NewShopHandler(deps.AccountService, deps.ShopService)
	b.adminHandler = handler.NewAdminHandler(deps.AccountService, deps.AdminService)

	b.registerMiddleware(deps.AccountService)
	b.registerHandlers()

	return b, nil
}

// registerMiddleware registers all middleware.
func (b *Bot) registerMiddleware(accountService *service.AccountService) {
	b.bot.Use(RecoveryMiddleware())
	b.bot.Use(WhitelistMiddleware(b.cfg))
	b.bot.Use(BanMiddleware(accountService))
	b.bot.Use(LoggingMiddleware())
}

// registerHandlers registers all command and callback handlers.
func (b *Bot) registerHandlers() {
	// Account and rankings
	b.bot.Handle("/start", b.accountHandler.HandleStart)
	b.bot.Handle("/profile", b.accountHandler.HandleProfile)
	b.bot.Handle("/daily", b.accountHandler.HandleDaily)
	b.bot.Handle("/top", b.rankingHandler.HandleTop)
	b.bot.Handle("/daily_top", b.rankingHandler.HandleDailyTop)

	// Casino
	b.bot.Handle("/games", b.casinoHandler.HandleGames)
	b.bot.Handle("/slots", b.casinoHandler.HandleSlots)
	b.bot.Handle("/roulette", b.casinoHandler.HandleRoulette)
	b.bot.Handle("/blackjack", b.casinoHandler.HandleBlackjack)
	b.bot.Handle("/dice", b.casinoHandler.HandleDice)

	// Crime and territory
	b.bot.Handle("/crime", b.crimeHandler.HandleCrime)
	b.bot.Handle("/escape", b.crimeHandler.HandleEscape)
	b.bot.Handle("/territories", b.territoryHandler.HandleTerritories)
	b.bot.Handle("/buy_territory", b.territoryHandler.HandleBuyTerritory)
	b.bot.Handle("/income", b.territoryHandler.HandleIncome)
	b.bot.Handle("/attack", b.territoryHandler.HandleAttack)

	// Shop
	b.bot.Handle("/shop", b.shopHandler.HandleShop)
	b.bot.Handle("/buy", b.shopHandler.HandleBuy)

	// Admin commands (with admin middleware)
	adminGroup := b.bot.Group()
	adminGroup.Use(AdminMiddleware(b.cfg))
	adminGroup.Handle("/ban", b.adminHandler.HandleBan)
	adminGroup.Handle("/unban", b.adminHandler.HandleUnban)
	adminGroup.Handle("/admin_add", b.adminHandler.HandleAdminAdd)
	adminGroup.Handle("/admin_set", b.adminHandler.HandleAdminSet)
	adminGroup.Handle("/stats", b.adminHandler.HandleStats)

	// Blackjack hit/stand buttons
	b.bot.Handle(tele.OnCallback, b.casinoHandler.HandleBlackjackCallback)
}

// Start starts the bot polling.
func (b *Bot) Start() {
	log.Info().Msg("Starting bot...")
	b.bot.Start()
}

// Stop stops the bot gracefully.
func (b *Bot) Stop() {
	log.Info().Msg("Stopping bot...")
	b.bot.Stop()
}

// GetBot returns the underlying telebot instance.
func (b *Bot) GetBot() *tele.Bot {
	return b.bot
}
