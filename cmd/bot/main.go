// Package main is the entry point for the mafia casino bot.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"mafia-casino-bot/internal/bot"
	"mafia-casino-bot/internal/catalog"
	"mafia-casino-bot/internal/config"
	"mafia-casino-bot/internal/game"
	"mafia-casino-bot/internal/game/blackjack"
	"mafia-casino-bot/internal/game/dice"
	"mafia-casino-bot/internal/game/roulette"
	"mafia-casino-bot/internal/game/slots"
	"mafia-casino-bot/internal/pkg/db"
	"mafia-casino-bot/internal/pkg/lock"
	"mafia-casino-bot/internal/pkg/random"
	"mafia-casino-bot/internal/repository"
	"mafia-casino-bot/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load("config")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	setupLogging(cfg)
	log.Info().Msg("Configuration loaded successfully")

	// Load the game catalog (crimes, territories, items, ranks)
	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Catalog.Path).Msg("Failed to load catalog")
	}
	log.Info().
		Int("crimes", len(cat.Crimes())).
		Int("territories", len(cat.Territories())).
		Int("items", len(cat.Items())).
		Int("ranks", len(cat.Ranks())).
		Msg("Catalog loaded")

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	dbPool, err := db.NewPool(ctx, &cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer dbPool.Close()

	// Run database migrations
	if err := runMigrations(ctx, dbPool); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	// Initialize repositories
	playerRepo := repository.NewPlayerRepository(dbPool.Pool)
	txRepo := repository.NewTransactionRepository(dbPool.Pool)

	// Initialize per-player locking and the shared random source
	playerLock := lock.NewPlayerLock()
	rng := random.New()

	// Initialize game registry and register casino games
	gameRegistry := game.NewRegistry()
	for _, g := range []game.Descriptor{
		slots.Game{},
		roulette.Game{},
		blackjack.Game{},
		dice.Game{},
	} {
		if err := gameRegistry.Register(g); err != nil {
			log.Fatal().Err(err).Str("game", g.Name()).Msg("Failed to register game")
		}
	}

	log.Info().
		Int("game_count", gameRegistry.Count()).
		Strs("games", gameRegistry.Commands()).
		Msg("Games registered")

	// Initialize services
	accountService := service.NewAccountService(playerRepo, txRepo, cat, playerLock)
	casinoService := service.NewCasinoService(playerRepo, txRepo, cat, playerLock, rng)
	crimeService := service.NewCrimeService(playerRepo, txRepo, cat, playerLock, rng)
	territoryService := service.NewTerritoryService(playerRepo, txRepo, cat, playerLock, rng)
	shopService := service.NewShopService(playerRepo, txRepo, cat, playerLock)
	rankingService := service.NewRankingService(playerRepo, txRepo, cat)
	adminService := service.NewAdminService(playerRepo, txRepo, cat, playerLock)

	// Create bot dependencies
	deps := &bot.Dependencies{
		Config:           cfg,
		Catalog:          cat,
		Registry:         gameRegistry,
		AccountService:   accountService,
		CasinoService:    casinoService,
		CrimeService:     crimeService,
		TerritoryService: territoryService,
		ShopService:      shopService,
		RankingService:   rankingService,
		AdminService:     adminService,
	}

	// Initialize bot
	telegramBot, err := bot.New(deps)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create bot")
	}

	// Setup graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Start bot in a goroutine
	go func() {
		log.Info().Msg("Bot is starting...")
		telegramBot.Start()
	}()

	// Wait for shutdown signal
	sig := <-sigChan
	log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")

	// Graceful shutdown
	telegramBot.Stop()
	log.Info().Msg("Bot stopped gracefully")
}

// setupLogging configures zerolog from the log section of the config.
func setupLogging(cfg *config.Config) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Log.Pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}

// runMigrations executes database migrations.
func runMigrations(ctx context.Context, pool *db.Pool) error {
	log.Info().Msg("Running database migrations...")

	// Migration 1: Create players table
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS players (
			id BIGINT PRIMARY KEY,
			username TEXT NOT NULL DEFAULT '',
			display_name TEXT NOT NULL DEFAULT '',
			money BIGINT NOT NULL DEFAULT 0,
			rank TEXT NOT NULL DEFAULT '',
			reputation JSONB NOT NULL DEFAULT '{}',
			territories JSONB NOT NULL DEFAULT '[]',
			inventory JSONB NOT NULL DEFAULT '[]',
			jail_until TIMESTAMPTZ,
			last_crime_at TIMESTAMPTZ,
			last_income_at TIMESTAMPTZ,
			daily_bonus_at TIMESTAMPTZ,
			statistics JSONB NOT NULL DEFAULT '{}',
			achievements JSONB NOT NULL DEFAULT '[]',
			banned BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_players_money ON players(money DESC);
		CREATE INDEX IF NOT EXISTS idx_players_username ON players(username);
	`)
	if err != nil {
		return err
	}
	log.Info().Msg("Migration 1: players table created")

	// Migration 2: Create transactions table
	_, err = pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS transactions (
			id BIGSERIAL PRIMARY KEY,
			player_id BIGINT NOT NULL REFERENCES players(id) ON DELETE CASCADE,
			amount BIGINT NOT NULL,
			type VARCHAR(50) NOT NULL,
			description TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_transactions_player_time ON transactions(player_id, created_at DESC);
		CREATE INDEX IF NOT EXISTS idx_transactions_type_time ON transactions(type, created_at DESC);
	`)
	if err != nil {
		return err
	}
	log.Info().Msg("Migration 2: transactions table created")

	log.Info().Msg("All migrations completed successfully")
	return nil
}
