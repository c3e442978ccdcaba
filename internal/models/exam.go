package models

import "time"

// Exam represents an examination with a browsable syllabus
type Exam struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// Subject groups topics within an exam syllabus
type Subject struct {
	ID     string `json:"id"`
	ExamID string `json:"exam_id"`
	Name   string `json:"name"`
}

// Topic is the smallest syllabus unit questions are tagged with
type Topic struct {
	ID        string `json:"id"`
	ExamID    string `json:"exam_id"`
	SubjectID string `json:"subject_id"`
	Name      string `json:"name"`
}
