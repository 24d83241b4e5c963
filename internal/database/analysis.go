package database

import (
	"fmt"

	"github.com/rgupta87/portfolio-analyzer/internal/models"
)

// ReplaceRecommendations atomically replaces a user's persisted analysis
// rows. Prior rows are deleted and the new set inserted in one transaction,
// so the store never holds a partial analysis.
func (db *DB) ReplaceRecommendations(userID int, recommendations []*models.Recommendation) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM analysis WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to delete existing analysis: %w", err)
	}

	query := `
		INSERT INTO analysis (user_id, symbol, ai_score, risk, recommendation, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	for _, rec := range recommendations {
		err := tx.QueryRow(query,
			userID, rec.Symbol, rec.AIScore, rec.Risk, rec.Recommendation, rec.Timestamp,
		).Scan(&rec.ID)
		if err != nil {
			return fmt.Errorf("failed to insert analysis for %s: %w", rec.Symbol, err)
		}
		rec.UserID = userID
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetRecommendationsByUserID retrieves the latest persisted analysis rows
// for a user ordered by symbol
func (db *DB) GetRecommendationsByUserID(userID int) ([]models.Recommendation, error) {
	query := `
		SELECT id, user_id, symbol, ai_score, risk, recommendation, timestamp
		FROM analysis
		WHERE user_id = $1
		ORDER BY symbol ASC
	`
	rows, err := db.conn.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get analysis: %w", err)
	}
	defer rows.Close()

	var recommendations []models.Recommendation
	for rows.Next() {
		var rec models.Recommendation
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Symbol, &rec.AIScore, &rec.Risk, &rec.Recommendation, &rec.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan analysis row: %w", err)
		}
		recommendations = append(recommendations, rec)
	}
	return recommendations, rows.Err()
}
