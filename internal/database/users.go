package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rgupta87/portfolio-analyzer/internal/models"
)

// UpsertUser creates a user or refreshes their name and access token after
// a successful broker login
func (db *DB) UpsertUser(u *models.User) error {
	query := `
		INSERT INTO users (email, name, access_token, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO UPDATE SET
			name = COALESCE(NULLIF(EXCLUDED.name, ''), users.name),
			access_token = EXCLUDED.access_token
		RETURNING id, created_at
	`
	now := time.Now()

	err := db.conn.QueryRow(query, u.Email, u.Name, u.AccessToken, now).
		Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert user: %w", err)
	}
	return nil
}

// GetUserByEmail retrieves a user by email
func (db *DB) GetUserByEmail(email string) (*models.User, error) {
	query := `
		SELECT id, email, name, access_token, created_at
		FROM users
		WHERE email = $1
	`
	var u models.User
	var name, accessToken sql.NullString

	err := db.conn.QueryRow(query, email).Scan(&u.ID, &u.Email, &name, &accessToken, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if name.Valid {
		u.Name = name.String
	}
	if accessToken.Valid {
		u.AccessToken = accessToken.String
	}
	return &u, nil
}
