package models

import "time"

// Flashcard is a spaced-repetition card owned by a user
type Flashcard struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	TopicID      string    `json:"topic_id"`
	Front        string    `json:"front"`
	Back         string    `json:"back"`
	IntervalDays int       `json:"interval_days"`
	DueAt        time.Time `json:"due_at"`
	Reviews      int       `json:"reviews"`
	Lapses       int       `json:"lapses"`
	CreatedAt    time.Time `json:"created_at"`
}

// ReviewGrade is the learner's self-assessment of a card review
type ReviewGrade int

const (
	GradeAgain ReviewGrade = iota // forgot, start over
	GradeHard                     // recalled with effort
	GradeEasy                     // recalled cleanly
)
