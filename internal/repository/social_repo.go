package repository

import (
	"database/sql"

	"github.com/aakash391999/ExamSphare-sub000/internal/database"
	"github.com/aakash391999/ExamSphare-sub000/internal/models"
)

// SocialRepository handles posts, follows, direct messages and notifications
type SocialRepository struct {
	db *database.DB
}

// NewSocialRepository creates a new social repository
func NewSocialRepository(db *database.DB) *SocialRepository {
	return &SocialRepository{db: db}
}

// CreatePost stores a new feed post
func (r *SocialRepository) CreatePost(userID int64, body string) (*models.Post, error) {
	id, err := r.db.ExecReturningID(
		"INSERT INTO posts (user_id, body) VALUES (?, ?)",
		userID, body,
	)
	if err != nil {
		return nil, err
	}

	post := &models.Post{}
	err = r.db.QueryRow(
		"SELECT p.id, p.user_id, u.name, p.body, p.created_at FROM posts p JOIN users u ON u.id = p.user_id WHERE p.id = ?",
		id,
	).Scan(&post.ID, &post.UserID, &post.AuthorName, &post.Body, &post.CreatedAt)
	if err != nil {
		return nil, err
	}
	return post, nil
}

// ListFeed returns recent posts from the users someone follows, plus their own
func (r *SocialRepository) ListFeed(userID int64, limit int) ([]models.Post, error) {
	rows, err := r.db.Query(`
		SELECT p.id, p.user_id, u.name, p.body, p.created_at
		FROM posts p
		JOIN users u ON u.id = p.user_id
		WHERE p.user_id = ?
		   OR p.user_id IN (SELECT followee_id FROM follows WHERE follower_id = ?)
		ORDER BY p.created_at DESC, p.id DESC
		LIMIT ?`,
		userID, userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanPosts(rows)
}

// ListUserPosts returns a user's own posts, newest first
func (r *SocialRepository) ListUserPosts(userID int64, limit int) ([]models.Post, error) {
	rows, err := r.db.Query(`
		SELECT p.id, p.user_id, u.name, p.body, p.created_at
		FROM posts p
		JOIN users u ON u.id = p.user_id
		WHERE p.user_id = ?
		ORDER BY p.created_at DESC, p.id DESC
		LIMIT ?`,
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanPosts(rows)
}

func scanPosts(rows *sql.Rows) ([]models.Post, error) {
	var posts []models.Post
	for rows.Next() {
		var p models.Post
		if err := rows.Scan(&p.ID, &p.UserID, &p.AuthorName, &p.Body, &p.CreatedAt); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// IsFollowing reports whether follower follows followee
func (r *SocialRepository) IsFollowing(followerID, followeeID int64) (bool, error) {
	var count int
	err := r.db.QueryRow(
		"SELECT COUNT(*) FROM follows WHERE follower_id = ? AND followee_id = ?",
		followerID, followeeID,
	).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Follow records that follower follows followee. Idempotent.
func (r *SocialRepository) Follow(followerID, followeeID int64) error {
	following, err := r.IsFollowing(followerID, followeeID)
	if err != nil {
		return err
	}
	if following {
		return nil
	}

	_, err = r.db.Exec(
		"INSERT INTO follows (follower_id, followee_id) VALUES (?, ?)",
		followerID, followeeID,
	)
	return err
}

// Unfollow removes a follow edge. Idempotent.
func (r *SocialRepository) Unfollow(followerID, followeeID int64) error {
	_, err := r.db.Exec(
		"DELETE FROM follows WHERE follower_id = ? AND followee_id = ?",
		followerID, followeeID,
	)
	return err
}

// CountFollowers returns how many users follow the given user
func (r *SocialRepository) CountFollowers(userID int64) (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM follows WHERE followee_id = ?", userID).Scan(&count)
	return count, err
}

// CountFollowing returns how many users the given user follows
func (r *SocialRepository) CountFollowing(userID int64) (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM follows WHERE follower_id = ?", userID).Scan(&count)
	return count, err
}

// CreateMessage stores a direct message
func (r *SocialRepository) CreateMessage(senderID, recipientID int64, body string) (*models.Message, error) {
	id, err := r.db.ExecReturningID(
		"INSERT INTO messages (sender_id, recipient_id, body) VALUES (?, ?, ?)",
		senderID, recipientID, body,
	)
	if err != nil {
		return nil, err
	}

	msg := &models.Message{}
	err = r.db.QueryRow(
		"SELECT id, sender_id, recipient_id, body, created_at FROM messages WHERE id = ?",
		id,
	).Scan(&msg.ID, &msg.SenderID, &msg.RecipientID, &msg.Body, &msg.CreatedAt)
	if err != nil {
		return nil, err
	}
	return msg, nil
}

// ListConversation returns the messages between two users, oldest first
func (r *SocialRepository) ListConversation(userA, userB int64, limit int) ([]models.Message, error) {
	rows, err := r.db.Query(`
		SELECT id, sender_id, recipient_id, body, created_at
		FROM messages
		WHERE (sender_id = ? AND recipient_id = ?)
		   OR (sender_id = ? AND recipient_id = ?)
		ORDER BY created_at, id
		LIMIT ?`,
		userA, userB, userB, userA, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []models.Message
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.ID, &m.SenderID, &m.RecipientID, &m.Body, &m.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

// CreateNotification stores an in-app notification
func (r *SocialRepository) CreateNotification(userID, actorID int64, kind models.NotificationKind, body string) error {
	_, err := r.db.Exec(
		"INSERT INTO notifications (user_id, actor_id, kind, body) VALUES (?, ?, ?, ?)",
		userID, actorID, string(kind), body,
	)
	return err
}

// ListNotifications returns a user's notifications, newest first
func (r *SocialRepository) ListNotifications(userID int64, limit int) ([]models.Notification, error) {
	rows, err := r.db.Query(
		"SELECT id, user_id, actor_id, kind, body, is_read, created_at FROM notifications WHERE user_id = ? ORDER BY created_at DESC, id DESC LIMIT ?",
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []models.Notification
	for rows.Next() {
		var n models.Notification
		var kind string
		if err := rows.Scan(&n.ID, &n.UserID, &n.ActorID, &kind, &n.Body, &n.Read, &n.CreatedAt); err != nil {
			return nil, err
		}
		n.Kind = models.NotificationKind(kind)
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

// MarkNotificationsRead marks all of a user's notifications as read
func (r *SocialRepository) MarkNotificationsRead(userID int64) error {
	_, err := r.db.Exec("UPDATE notifications SET is_read = ? WHERE user_id = ?", true, userID)
	return err
}
