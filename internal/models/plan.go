package models

import "time"

// StudyPlan is a user's plan for an exam
type StudyPlan struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	ExamID    string    `json:"exam_id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

// PlanTask is one dated task within a study plan
type PlanTask struct {
	ID      int64     `json:"id"`
	PlanID  int64     `json:"plan_id"`
	TopicID string    `json:"topic_id"`
	Title   string    `json:"title"`
	DueDate time.Time `json:"due_date"`
	Done    bool      `json:"done"`
}
