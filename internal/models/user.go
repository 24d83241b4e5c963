package models

import "time"

// User represents an authenticated brokerage user
type User struct {
	ID          int       `json:"id"`
	Email       string    `json:"email"`
	Name        string    `json:"name,omitempty"`
	AccessToken string    `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
}
