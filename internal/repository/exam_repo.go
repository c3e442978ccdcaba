package repository

import (
	"database/sql"

	"github.com/aakash391999/ExamSphare-sub000/internal/database"
	"github.com/aakash391999/ExamSphare-sub000/internal/models"
)

// ExamRepository handles syllabus database operations (exams, subjects, topics)
type ExamRepository struct {
	db *database.DB
}

// NewExamRepository creates a new exam repository
func NewExamRepository(db *database.DB) *ExamRepository {
	return &ExamRepository{db: db}
}

// ListExams retrieves all exams
func (r *ExamRepository) ListExams() ([]models.Exam, error) {
	rows, err := r.db.Query("SELECT id, name, description, created_at FROM exams ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var exams []models.Exam
	for rows.Next() {
		var e models.Exam
		if err := rows.Scan(&e.ID, &e.Name, &e.Description, &e.CreatedAt); err != nil {
			return nil, err
		}
		exams = append(exams, e)
	}
	return exams, rows.Err()
}

// GetExam retrieves a single exam by id
func (r *ExamRepository) GetExam(id string) (*models.Exam, error) {
	var e models.Exam
	err := r.db.QueryRow("SELECT id, name, description, created_at FROM exams WHERE id = ?", id).
		Scan(&e.ID, &e.Name, &e.Description, &e.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// ListSubjects retrieves the subjects of an exam
func (r *ExamRepository) ListSubjects(examID string) ([]models.Subject, error) {
	rows, err := r.db.Query("SELECT id, exam_id, name FROM subjects WHERE exam_id = ? ORDER BY name", examID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subjects []models.Subject
	for rows.Next() {
		var s models.Subject
		if err := rows.Scan(&s.ID, &s.ExamID, &s.Name); err != nil {
			return nil, err
		}
		subjects = append(subjects, s)
	}
	return subjects, rows.Err()
}

// ListTopics retrieves the topics of an exam
func (r *ExamRepository) ListTopics(examID string) ([]models.Topic, error) {
	rows, err := r.db.Query("SELECT id, exam_id, subject_id, name FROM topics WHERE exam_id = ? ORDER BY name", examID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var topics []models.Topic
	for rows.Next() {
		var t models.Topic
		if err := rows.Scan(&t.ID, &t.ExamID, &t.SubjectID, &t.Name); err != nil {
			return nil, err
		}
		topics = append(topics, t)
	}
	return topics, rows.Err()
}

// GetTopic retrieves a single topic by id
func (r *ExamRepository) GetTopic(id string) (*models.Topic, error) {
	var t models.Topic
	err := r.db.QueryRow("SELECT id, exam_id, subject_id, name FROM topics WHERE id = ?", id).
		Scan(&t.ID, &t.ExamID, &t.SubjectID, &t.Name)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}
