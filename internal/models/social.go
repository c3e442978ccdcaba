package models

import "time"

// Post is a user's post in the study feed
type Post struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	AuthorName string    `json:"author_name,omitempty"`
	Body       string    `json:"body"`
	CreatedAt  time.Time `json:"created_at"`
}

// Follow records that follower follows followee
type Follow struct {
	FollowerID int64     `json:"follower_id"`
	FolloweeID int64     `json:"followee_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// Message is a direct message between two users
type Message struct {
	ID          int64     `json:"id"`
	SenderID    int64     `json:"sender_id"`
	RecipientID int64     `json:"recipient_id"`
	Body        string    `json:"body"`
	CreatedAt   time.Time `json:"created_at"`
}

// NotificationKind tags the event a notification was raised for
type NotificationKind string

const (
	NotificationFollow  NotificationKind = "follow"
	NotificationMessage NotificationKind = "message"
	NotificationPost    NotificationKind = "post"
)

// Notification is an in-app notification for a user
type Notification struct {
	ID        int64            `json:"id"`
	UserID    int64            `json:"user_id"`
	Kind      NotificationKind `json:"kind"`
	ActorID   int64            `json:"actor_id"`
	Body      string           `json:"body"`
	Read      bool             `json:"read"`
	CreatedAt time.Time        `json:"created_at"`
}
