package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/aakash391999/ExamSphare-sub000/internal/models"
	"github.com/aakash391999/ExamSphare-sub000/internal/repository"
	"github.com/aakash391999/ExamSphare-sub000/internal/validation"
)

var (
	ErrSelfFollow  = errors.New("cannot follow yourself")
	ErrSelfMessage = errors.New("cannot message yourself")
	ErrNoSuchUser  = errors.New("user not found")
)

const (
	maxPostRunes    = 2000
	maxMessageRunes = 2000
)

// UserProfile is a user's public profile with follow counts
type UserProfile struct {
	User       models.User `json:"user"`
	Followers  int         `json:"followers"`
	Following  int         `json:"following"`
	IsFollowed bool        `json:"is_followed"`
}

// SocialService handles feed, follow, direct message and notification logic
type SocialService struct {
	socialRepo *repository.SocialRepository
	userRepo   *repository.UserRepository
	email      *EmailService
}

// NewSocialService creates a new social service
func NewSocialService(socialRepo *repository.SocialRepository, userRepo *repository.UserRepository, email *EmailService) *SocialService {
	return &SocialService{
		socialRepo: socialRepo,
		userRepo:   userRepo,
		email:      email,
	}
}

// CreatePost publishes a post to the author's feed
func (s *SocialService) CreatePost(userID int64, body string) (*models.Post, error) {
	if err := validation.ValidateBody(body, maxPostRunes); err != nil {
		return nil, err
	}
	return s.socialRepo.CreatePost(userID, body)
}

// Feed returns recent posts from the user and the users they follow
func (s *SocialService) Feed(userID int64, limit int) ([]models.Post, error) {
	return s.socialRepo.ListFeed(userID, limit)
}

// Profile returns a user's public profile as seen by the viewer
func (s *SocialService) Profile(viewerID, userID int64) (*UserProfile, error) {
	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNoSuchUser
	}

	followers, err := s.socialRepo.CountFollowers(userID)
	if err != nil {
		return nil, err
	}
	following, err := s.socialRepo.CountFollowing(userID)
	if err != nil {
		return nil, err
	}
	isFollowed, err := s.socialRepo.IsFollowing(viewerID, userID)
	if err != nil {
		return nil, err
	}

	public := *user
	public.PasswordHash = ""
	return &UserProfile{
		User:       public,
		Followers:  followers,
		Following:  following,
		IsFollowed: isFollowed,
	}, nil
}

// Follow makes follower follow followee and notifies the followee.
// Idempotent; notification and email are best-effort.
func (s *SocialService) Follow(ctx context.Context, followerID, followeeID int64) error {
	if followerID == followeeID {
		return ErrSelfFollow
	}

	followee, err := s.userRepo.GetUserByID(followeeID)
	if err != nil {
		return err
	}
	if followee == nil {
		return ErrNoSuchUser
	}

	already, err := s.socialRepo.IsFollowing(followerID, followeeID)
	if err != nil {
		return err
	}
	if already {
		return nil
	}

	if err := s.socialRepo.Follow(followerID, followeeID); err != nil {
		return fmt.Errorf("failed to follow: %w", err)
	}

	s.notify(ctx, followee, followerID, models.NotificationFollow, "started following you")
	return nil
}

// Unfollow removes a follow edge. Idempotent.
func (s *SocialService) Unfollow(followerID, followeeID int64) error {
	return s.socialRepo.Unfollow(followerID, followeeID)
}

// SendMessage delivers a direct message and notifies the recipient
func (s *SocialService) SendMessage(ctx context.Context, senderID, recipientID int64, body string) (*models.Message, error) {
	if senderID == recipientID {
		return nil, ErrSelfMessage
	}
	if err := validation.ValidateBody(body, maxMessageRunes); err != nil {
		return nil, err
	}

	recipient, err := s.userRepo.GetUserByID(recipientID)
	if err != nil {
		return nil, err
	}
	if recipient == nil {
		return nil, ErrNoSuchUser
	}

	msg, err := s.socialRepo.CreateMessage(senderID, recipientID, body)
	if err != nil {
		return nil, fmt.Errorf("failed to send message: %w", err)
	}

	s.notify(ctx, recipient, senderID, models.NotificationMessage, "sent you a message")
	return msg, nil
}

// Conversation returns the message history between the user and a peer
func (s *SocialService) Conversation(userID, peerID int64, limit int) ([]models.Message, error) {
	return s.socialRepo.ListConversation(userID, peerID, limit)
}

// Notifications returns a user's recent notifications
func (s *SocialService) Notifications(userID int64, limit int) ([]models.Notification, error) {
	return s.socialRepo.ListNotifications(userID, limit)
}

// MarkNotificationsRead marks all of a user's notifications as read
func (s *SocialService) MarkNotificationsRead(userID int64) error {
	return s.socialRepo.MarkNotificationsRead(userID)
}

// SearchUsers finds users by name or email fragment
func (s *SocialService) SearchUsers(query string, limit int) ([]models.User, error) {
	users, err := s.userRepo.SearchUsers(query, limit)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].PasswordHash = ""
	}
	return users, nil
}

// notify records an in-app notification and sends an email when enabled.
// Failures are logged, never surfaced; notifications are best-effort.
func (s *SocialService) notify(ctx context.Context, recipient *models.User, actorID int64, kind models.NotificationKind, text string) {
	actor, err := s.userRepo.GetUserByID(actorID)
	if err != nil || actor == nil {
		log.Printf("Warning: failed to resolve notification actor %d: %v", actorID, err)
		return
	}

	body := actor.Name + " " + text
	if err := s.socialRepo.CreateNotification(recipient.ID, actorID, kind, body); err != nil {
		log.Printf("Warning: failed to create notification for user %d: %v", recipient.ID, err)
	}

	if s.email != nil {
		if err := s.email.SendNotificationEmail(ctx, recipient.Email, "New activity on ExamSphere", body); err != nil {
			log.Printf("Warning: failed to send notification email: %v", err)
		}
	}
}
