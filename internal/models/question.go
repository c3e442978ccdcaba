package models

import "time"

// Question represents a multiple-choice question with exactly 4 options.
// Questions are immutable once created.
type Question struct {
	ID           string    `json:"id"`
	ExamID       string    `json:"exam_id,omitempty"`
	TopicID      string    `json:"topic_id"`
	Text         string    `json:"text"`
	Options      []string  `json:"options"`
	CorrectIndex int       `json:"correct_index"` // 0-based
	Explanation  string    `json:"explanation"`
	CreatedAt    time.Time `json:"created_at"`
}

// QuestionDraft is a generated question before it is assigned an id and persisted
type QuestionDraft struct {
	Text         string   `json:"text"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
	Explanation  string   `json:"explanation"`
}
