package models

import "time"

// QuizResult is one entry in a user's quiz history
type QuizResult struct {
	ID     int64     `json:"id"`
	UserID int64     `json:"user_id"`
	ExamID string    `json:"exam_id"`
	Score  int       `json:"score"`
	Total  int       `json:"total"`
	Date   time.Time `json:"date"`
}

// Mistake is one entry in a user's mistake book
type Mistake struct {
	UserID     int64     `json:"user_id"`
	QuestionID string    `json:"question_id"`
	AddedAt    time.Time `json:"added_at"`
}
