package models

import "time"

// User represents a registered learner
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Bio          string    `json:"bio"`
	OAuthSubject string    `json:"-"` // Google subject id when signed in via OAuth
	CreatedAt    time.Time `json:"created_at"`
}

// Session represents an authenticated browser session
type Session struct {
	ID        string    `json:"id"`
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}
