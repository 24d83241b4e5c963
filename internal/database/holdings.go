package database

import (
	"fmt"
	"time"

	"github.com/rgupta87/portfolio-analyzer/internal/models"
)

// ReplaceAllHoldings atomically replaces a user's holdings with a fresh
// snapshot. Delete and inserts run in a single transaction: the previous
// snapshot survives intact if anything fails.
func (db *DB) ReplaceAllHoldings(userID int, holdings []*models.Holding) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM holdings WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to delete existing holdings: %w", err)
	}

	query := `
		INSERT INTO holdings (user_id, symbol, quantity, avg_price, ltp, pnl, last_updated)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	now := time.Now()
	for _, h := range holdings {
		err := tx.QueryRow(query,
			userID, h.Symbol, h.Quantity, h.AvgPrice, h.LTP, h.PnL, now,
		).Scan(&h.ID)
		if err != nil {
			return fmt.Errorf("failed to insert holding %s: %w", h.Symbol, err)
		}
		h.UserID = userID
		h.LastUpdated = now
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetHoldingsByUserID retrieves a user's holdings ordered by symbol
func (db *DB) GetHoldingsByUserID(userID int) ([]models.Holding, error) {
	query := `
		SELECT id, user_id, symbol, quantity, avg_price, ltp, pnl, last_updated
		FROM holdings
		WHERE user_id = $1
		ORDER BY symbol ASC
	`
	rows, err := db.conn.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get holdings: %w", err)
	}
	defer rows.Close()

	var holdings []models.Holding
	for rows.Next() {
		var h models.Holding
		if err := rows.Scan(&h.ID, &h.UserID, &h.Symbol, &h.Quantity, &h.AvgPrice, &h.LTP, &h.PnL, &h.LastUpdated); err != nil {
			return nil, fmt.Errorf("failed to scan holding: %w", err)
		}
		holdings = append(holdings, h)
	}
	return holdings, rows.Err()
}
