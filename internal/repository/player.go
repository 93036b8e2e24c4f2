// Package repository provides data access layer implementations.
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"mafia-casino-bot/internal/model"
)

// Common errors for repository operations.
var (
	ErrPlayerNotFound = errors.New("player not found")
)

const playerColumns = `
	id, username, display_name, money, rank, reputation, territories,
	inventory, jail_until, last_crime_at, last_income_at, daily_bonus_at,
	statistics, achievements, banned, created_at, updated_at
`

// PlayerRepository handles player data persistence. Each player is one
// row; reputation, territories, inventory, statistics and achievements
// are JSONB columns holding the aggregate's collection fields.
type PlayerRepository struct {
	pool *pgxpool.Pool
}

// NewPlayerRepository creates a new PlayerRepository instance.
func NewPlayerRepository(pool *pgxpool.Pool) *PlayerRepository {
	return &PlayerRepository{pool: pool}
}

func scanPlayer(row pgx.Row) (*model.Player, error) {
	var p model.Player
	err := row.Scan(
		&p.ID,
		&p.Username,
		&p.DisplayName,
		&p.Money,
		&p.Rank,
		&p.Reputation,
		&p.Territories,
		&p.Inventory,
		&p.JailUntil,
		&p.LastCrimeAt,
		&p.LastIncomeAt,
		&p.DailyBonusAt,
		&p.Statistics,
		&p.Achievements,
		&p.Banned,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if p.Reputation == nil {
		p.Reputation = model.NewReputation()
	}
	return &p, nil
}

// Create inserts a new player row from the given aggregate. The caller
// supplies the defaults (starting money, lowest rank, zero reputation).
func (r *PlayerRepository) Create(ctx context.Context, p *model.Player) (*model.Player, error) {
	const query = `
		INSERT INTO players (
			id, username, display_name, money, rank, reputation, territories,
			inventory, jail_until, last_crime_at, last_income_at, daily_bonus_at,
			statistics, achievements, banned, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, NOW(), NOW())
		RETURNING ` + playerColumns

	row := r.pool.QueryRow(ctx, query,
		p.ID, p.Username, p.DisplayName, p.Money, p.Rank,
		p.Reputation, p.Territories, p.Inventory,
		p.JailUntil, p.LastCrimeAt, p.LastIncomeAt, p.DailyBonusAt,
		p.Statistics, p.Achievements, p.Banned,
	)
	created, err := scanPlayer(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}
	return created, nil
}

// GetByID retrieves a player by their chat user ID.
// Returns ErrPlayerNotFound if the player does not exist.
func (r *PlayerRepository) GetByID(ctx context.Context, id int64) (*model.Player, error) {
	const query = `SELECT ` + playerColumns + ` FROM players WHERE id = $1`

	p, err := scanPlayer(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	return p, nil
}

// GetByUsername retrieves a player by username (without the @ prefix).
func (r *PlayerRepository) GetByUsername(ctx context.Context, username string) (*model.Player, error) {
	const query = `SELECT ` + playerColumns + ` FROM players WHERE username = $1`

	p, err := scanPlayer(r.pool.QueryRow(ctx, query, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to get player by username: %w", err)
	}
	return p, nil
}

// GetOrCreate retrieves a player by ID, inserting the provided defaults
// when no row exists yet. The bool reports whether a row was created.
func (r *PlayerRepository) GetOrCreate(ctx context.Context, defaults *model.Player) (*model.Player, bool, error) {
	player, err := r.GetByID(ctx, defaults.ID)
	if err == nil {
		return player, false, nil
	}
	if !errors.Is(err, ErrPlayerNotFound) {
		return nil, false, err
	}

	player, err = r.Create(ctx, defaults)
	if err != nil {
		// Handle race condition: another request might have created the row
		player, err = r.GetByID(ctx, defaults.ID)
		if err != nil {
			return nil, false, err
		}
		return player, false, nil
	}

	return player, true, nil
}

// PlayerUpdate is a partial update: only non-nil fields are written.
// ClearJail sets jail_until to NULL regardless of JailUntil.
type PlayerUpdate struct {
	Username     *string
	DisplayName  *string
	Money        *int64
	Rank         *string
	Reputation   model.Reputation
	Territories  *[]string
	Inventory    *[]string
	JailUntil    *time.Time
	ClearJail    bool
	LastCrimeAt  *time.Time
	LastIncomeAt *time.Time
	DailyBonusAt *time.Time
	Statistics   *model.Statistics
	Achievements *[]string
	Banned       *bool
}

// Update applies a partial update and returns the refreshed row.
// Returns ErrPlayerNotFound if the player does not exist.
func (r *PlayerRepository) Update(ctx context.Context, id int64, upd PlayerUpdate) (*model.Player, error) {
	clauses := []string{"updated_at = NOW()"}
	args := []any{id}

	set := func(column string, value any) {
		args = append(args, value)
		clauses = append(clauses, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if upd.Username != nil {
		set("username", *upd.Username)
	}
	if upd.DisplayName != nil {
		set("display_name", *upd.DisplayName)
	}
	if upd.Money != nil {
		set("money", *upd.Money)
	}
	if upd.Rank != nil {
		set("rank", *upd.Rank)
	}
	if upd.Reputation != nil {
		set("reputation", upd.Reputation)
	}
	if upd.Territories != nil {
		set("territories", *upd.Territories)
	}
	if upd.Inventory != nil {
		set("inventory", *upd.Inventory)
	}
	if upd.ClearJail {
		clauses = append(clauses, "jail_until = NULL")
	} else if upd.JailUntil != nil {
		set("jail_until", *upd.JailUntil)
	}
	if upd.LastCrimeAt != nil {
		set("last_crime_at", *upd.LastCrimeAt)
	}
	if upd.LastIncomeAt != nil {
		set("last_income_at", *upd.LastIncomeAt)
	}
	if upd.DailyBonusAt != nil {
		set("daily_bonus_at", *upd.DailyBonusAt)
	}
	if upd.Statistics != nil {
		set("statistics", *upd.Statistics)
	}
	if upd.Achievements != nil {
		set("achievements", *upd.Achievements)
	}
	if upd.Banned != nil {
		set("banned", *upd.Banned)
	}

	query := fmt.Sprintf(
		`UPDATE players SET %s WHERE id = $1 RETURNING %s`,
		strings.Join(clauses, ", "), playerColumns,
	)

	p, err := scanPlayer(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to update player: %w", err)
	}
	return p, nil
}

// TopPlayers retrieves the top N players under the given ordering.
// rankOrder lists rank names lowest tier first and is consulted only
// for the rank sort; reputation sorts by the (police, mafia, citizens)
// tuple descending.
func (r *PlayerRepository) TopPlayers(ctx context.Context, sort model.TopSort, rankOrder []string, limit int) ([]*model.Player, error) {
	base := `SELECT ` + playerColumns + ` FROM players WHERE NOT banned `
	args := []any{limit}

	var orderBy string
	switch sort {
	case model.TopByRank:
		args = append(args, rankOrder)
		orderBy = `ORDER BY array_position($2::text[], rank) DESC NULLS LAST, money DESC`
	case model.TopByReputation:
		orderBy = `ORDER BY (reputation->>'police')::int DESC,
			(reputation->>'mafia')::int DESC,
			(reputation->>'citizens')::int DESC`
	case model.TopByTerritories:
		orderBy = `ORDER BY jsonb_array_length(territories) DESC, money DESC`
	default:
		orderBy = `ORDER BY money DESC`
	}

	rows, err := r.pool.Query(ctx, base+orderBy+` LIMIT $1`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get top players: %w", err)
	}
	defer rows.Close()

	var players []*model.Player
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan player: %w", err)
		}
		players = append(players, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating players: %w", err)
	}
	return players, nil
}

// All retrieves every player row. Used by admin aggregate stats.
func (r *PlayerRepository) All(ctx context.Context) ([]*model.Player, error) {
	const query = `SELECT ` + playerColumns + ` FROM players ORDER BY id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	defer rows.Close()

	var players []*model.Player
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan player: %w", err)
		}
		players = append(players, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating players: %w", err)
	}
	return players, nil
}

// Exists checks if a player with the given ID exists.
func (r *PlayerRepository) Exists(ctx context.Context, id int64) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM players WHERE id = $1)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check player existence: %w", err)
	}
	return exists, nil
}
