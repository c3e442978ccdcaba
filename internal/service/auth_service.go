package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/aakash391999/ExamSphare-sub000/internal/models"
	"github.com/aakash391999/ExamSphare-sub000/internal/repository"
	"github.com/aakash391999/ExamSphare-sub000/internal/security"
	"github.com/aakash391999/ExamSphare-sub000/internal/validation"
)

var (
	ErrEmailTaken         = errors.New("email already taken")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrSessionNotFound    = errors.New("session not found")
	ErrSessionExpired     = errors.New("session expired")
)

// AuthService handles authentication business logic
type AuthService struct {
	userRepo        *repository.UserRepository
	sessionDuration time.Duration
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo *repository.UserRepository, sessionDuration time.Duration) *AuthService {
	return &AuthService{
		userRepo:        userRepo,
		sessionDuration: sessionDuration,
	}
}

// Register creates a new user account
func (s *AuthService) Register(email, password, name string) (*models.User, error) {
	if err := validation.ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, err
	}
	if err := validation.ValidateName(name); err != nil {
		return nil, err
	}

	existingUser, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existingUser != nil {
		return nil, ErrEmailTaken
	}

	passwordHash, err := security.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.userRepo.CreateUser(email, passwordHash, name)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// Login verifies credentials and creates a new session
func (s *AuthService) Login(email, password string) (*models.User, string, error) {
	user, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil || user.PasswordHash == "" {
		return nil, "", ErrInvalidCredentials
	}
	if !security.CheckPassword(password, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	sessionID, err := s.createSession(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, sessionID, nil
}

// LoginOAuth finds or creates the account for a verified OAuth identity and
// creates a new session
func (s *AuthService) LoginOAuth(email, name, subject string) (*models.User, string, error) {
	user, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		if name == "" {
			name = email
		}
		user, err = s.userRepo.CreateOAuthUser(email, name, subject)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create user: %w", err)
		}
	}

	sessionID, err := s.createSession(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, sessionID, nil
}

// UpdateProfile changes the user's display name and bio
func (s *AuthService) UpdateProfile(userID int64, name, bio string) (*models.User, error) {
	if err := validation.ValidateName(name); err != nil {
		return nil, err
	}
	if err := s.userRepo.UpdateProfile(userID, name, bio); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return s.userRepo.GetUserByID(userID)
}

// ValidateSession resolves a session id to its user
func (s *AuthService) ValidateSession(sessionID string) (*models.User, error) {
	session, err := s.userRepo.GetSession(sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up session: %w", err)
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	if time.Now().After(session.ExpiresAt) {
		s.userRepo.DeleteSession(sessionID)
		return nil, ErrSessionExpired
	}

	user, err := s.userRepo.GetUserByID(session.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, ErrSessionNotFound
	}
	return user, nil
}

// Logout removes a session
func (s *AuthService) Logout(sessionID string) error {
	return s.userRepo.DeleteSession(sessionID)
}

// CleanupExpiredSessions removes sessions past their expiry
func (s *AuthService) CleanupExpiredSessions() error {
	return s.userRepo.DeleteExpiredSessions()
}

// SessionDuration returns the configured session lifetime
func (s *AuthService) SessionDuration() time.Duration {
	return s.sessionDuration
}

func (s *AuthService) createSession(userID int64) (string, error) {
	sessionID := security.GenerateSessionID()
	expiresAt := time.Now().Add(s.sessionDuration)
	if err := s.userRepo.CreateSession(sessionID, userID, expiresAt); err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}
	return sessionID, nil
}
