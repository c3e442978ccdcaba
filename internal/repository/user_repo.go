package repository

import (
	"database/sql"
	"time"

	"github.com/aakash391999/ExamSphare-sub000/internal/database"
	"github.com/aakash391999/ExamSphare-sub000/internal/models"
)

// UserRepository handles user and session database operations
type UserRepository struct {
	db *database.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{db: db}
}

// CreateUser creates a new user account
func (r *UserRepository) CreateUser(email, passwordHash, name string) (*models.User, error) {
	id, err := r.db.ExecReturningID(
		"INSERT INTO users (email, password_hash, name) VALUES (?, ?, ?)",
		email, passwordHash, name,
	)
	if err != nil {
		return nil, err
	}
	return r.GetUserByID(id)
}

// CreateOAuthUser creates a user account from an OAuth identity
func (r *UserRepository) CreateOAuthUser(email, name, subject string) (*models.User, error) {
	id, err := r.db.ExecReturningID(
		"INSERT INTO users (email, password_hash, name, oauth_subject) VALUES (?, '', ?, ?)",
		email, name, subject,
	)
	if err != nil {
		return nil, err
	}
	return r.GetUserByID(id)
}

// GetUserByID retrieves a user by id
func (r *UserRepository) GetUserByID(id int64) (*models.User, error) {
	return r.getUser("SELECT id, email, password_hash, name, bio, oauth_subject, created_at FROM users WHERE id = ?", id)
}

// GetUserByEmail retrieves a user by email, or nil when not found
func (r *UserRepository) GetUserByEmail(email string) (*models.User, error) {
	return r.getUser("SELECT id, email, password_hash, name, bio, oauth_subject, created_at FROM users WHERE email = ?", email)
}

func (r *UserRepository) getUser(query string, arg interface{}) (*models.User, error) {
	user := &models.User{}
	err := r.db.QueryRow(query, arg).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Name,
		&user.Bio,
		&user.OAuthSubject,
		&user.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateProfile updates the user's display name and bio
func (r *UserRepository) UpdateProfile(userID int64, name, bio string) error {
	_, err := r.db.Exec("UPDATE users SET name = ?, bio = ? WHERE id = ?", name, bio, userID)
	return err
}

// SearchUsers finds users whose name or email contains the query
func (r *UserRepository) SearchUsers(query string, limit int) ([]models.User, error) {
	pattern := "%" + query + "%"
	rows, err := r.db.Query(
		"SELECT id, email, password_hash, name, bio, oauth_subject, created_at FROM users WHERE name LIKE ? OR email LIKE ? ORDER BY name LIMIT ?",
		pattern, pattern, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Bio, &u.OAuthSubject, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// CreateSession stores a new authenticated session
func (r *UserRepository) CreateSession(sessionID string, userID int64, expiresAt time.Time) error {
	_, err := r.db.Exec(
		"INSERT INTO sessions (id, user_id, expires_at) VALUES (?, ?, ?)",
		sessionID, userID, expiresAt,
	)
	return err
}

// GetSession retrieves a session by id, or nil when not found
func (r *UserRepository) GetSession(sessionID string) (*models.Session, error) {
	session := &models.Session{}
	err := r.db.QueryRow(
		"SELECT id, user_id, created_at, expires_at FROM sessions WHERE id = ?",
		sessionID,
	).Scan(&session.ID, &session.UserID, &session.CreatedAt, &session.ExpiresAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return session, nil
}

// DeleteSession removes a session
func (r *UserRepository) DeleteSession(sessionID string) error {
	_, err := r.db.Exec("DELETE FROM sessions WHERE id = ?", sessionID)
	return err
}

// DeleteExpiredSessions removes all sessions past their expiry
func (r *UserRepository) DeleteExpiredSessions() error {
	_, err := r.db.Exec("DELETE FROM sessions WHERE expires_at < ?", time.Now())
	return err
}
