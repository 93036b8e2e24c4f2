package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"mafia-casino-bot/internal/model"
)

// TransactionRepository handles the balance-change ledger.
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository instance.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

// Create creates a new transaction record.
func (r *TransactionRepository) Create(ctx context.Context, playerID int64, amount int64, txType string, description *string) (*model.Transaction, error) {
	const query = `
		INSERT INTO transactions (player_id, amount, type, description, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, player_id, amount, type, description, created_at
	`

	var tx model.Transaction
	err := r.pool.QueryRow(ctx, query, playerID, amount, txType, description).Scan(
		&tx.ID,
		&tx.PlayerID,
		&tx.Amount,
		&tx.Type,
		&tx.Description,
		&tx.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	return &tx, nil
}

// CreateWithTime creates a new transaction record with a specific timestamp.
// Useful for testing and data migration.
func (r *TransactionRepository) CreateWithTime(ctx context.Context, playerID int64, amount int64, txType string, description *string, createdAt time.Time) (*model.Transaction, error) {
	const query = `
		INSERT INTO transactions (player_id, amount, type, description, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, player_id, amount, type, description, created_at
	`

	var tx model.Transaction
	err := r.pool.QueryRow(ctx, query, playerID, amount, txType, description, createdAt).Scan(
		&tx.ID,
		&tx.PlayerID,
		&tx.Amount,
		&tx.Type,
		&tx.Description,
		&tx.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	return &tx, nil
}

// GetByPlayerID retrieves transactions for a player, newest first.
func (r *TransactionRepository) GetByPlayerID(ctx context.Context, playerID int64, limit int) ([]*model.Transaction, error) {
	const query = `
		SELECT id, player_id, amount, type, description, created_at
		FROM transactions
		WHERE player_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, playerID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get transactions: %w", err)
	}
	defer rows.Close()

	var transactions []*model.Transaction
	for rows.Next() {
		var tx model.Transaction
		err := rows.Scan(
			&tx.ID,
			&tx.PlayerID,
			&tx.Amount,
			&tx.Type,
			&tx.Description,
			&tx.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, &tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}

	return transactions, nil
}

// GetDailyWinners retrieves the top winners for a date: players whose
// game and crime ledger entries net positive, highest profit first.
func (r *TransactionRepository) GetDailyWinners(ctx context.Context, date time.Time, limit int) ([]*model.DailyRank, error) {
	startOfDay := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	endOfDay := startOfDay.Add(24 * time.Hour)

	const query = `
		SELECT t.player_id, p.username, COALESCE(SUM(t.amount), 0) AS net_profit
		FROM transactions t
		JOIN players p ON t.player_id = p.id
		WHERE t.type = ANY($1)
		  AND t.created_at >= $2
		  AND t.created_at < $3
		GROUP BY t.player_id, p.username
		HAVING SUM(t.amount) > 0
		ORDER BY net_profit DESC
		LIMIT $4
	`

	rows, err := r.pool.Query(ctx, query, model.GameTransactionTypes(), startOfDay, endOfDay, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get daily winners: %w", err)
	}
	defer rows.Close()

	var winners []*model.DailyRank
	for rows.Next() {
		var rank model.DailyRank
		if err := rows.Scan(&rank.PlayerID, &rank.Username, &rank.NetProfit); err != nil {
			return nil, fmt.Errorf("failed to scan winner: %w", err)
		}
		winners = append(winners, &rank)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating winners: %w", err)
	}

	return winners, nil
}

// GetDailyLosers retrieves the top losers for a date: players whose
// game and crime ledger entries net negative, biggest loss first.
func (r *TransactionRepository) GetDailyLosers(ctx context.Context, date time.Time, limit int) ([]*model.DailyRank, error) {
	startOfDay := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	endOfDay := startOfDay.Add(24 * time.Hour)

	const query = `
		SELECT t.player_id, p.username, COALESCE(SUM(t.amount), 0) AS net_profit
		FROM transactions t
		JOIN players p ON t.player_id = p.id
		WHERE t.type = ANY($1)
		  AND t.created_at >= $2
		  AND t.created_at < $3
		GROUP BY t.player_id, p.username
		HAVING SUM(t.amount) < 0
		ORDER BY net_profit ASC
		LIMIT $4
	`

	rows, err := r.pool.Query(ctx, query, model.GameTransactionTypes(), startOfDay, endOfDay, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get daily losers: %w", err)
	}
	defer rows.Close()

	var losers []*model.DailyRank
	for rows.Next() {
		var rank model.DailyRank
		if err := rows.Scan(&rank.PlayerID, &rank.Username, &rank.NetProfit); err != nil {
			return nil, fmt.Errorf("failed to scan loser: %w", err)
		}
		losers = append(losers, &rank)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating losers: %w", err)
	}

	return losers, nil
}

// GetPlayerDailyProfit retrieves one player's net game result for a date.
func (r *TransactionRepository) GetPlayerDailyProfit(ctx context.Context, playerID int64, date time.Time) (int64, error) {
	startOfDay := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	endOfDay := startOfDay.Add(24 * time.Hour)

	const query = `
		SELECT COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE player_id = $1
		  AND type = ANY($2)
		  AND created_at >= $3
		  AND created_at < $4
	`

	var profit int64
	err := r.pool.QueryRow(ctx, query, playerID, model.GameTransactionTypes(), startOfDay, endOfDay).Scan(&profit)
	if err != nil {
		return 0, fmt.Errorf("failed to get player daily profit: %w", err)
	}

	return profit, nil
}
