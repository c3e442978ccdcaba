package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aakash391999/ExamSphare-sub000/internal/database"
	"github.com/aakash391999/ExamSphare-sub000/internal/models"
)

// QuestionRepository handles question bank database operations.
// Options are stored as a JSON array in a single column.
type QuestionRepository struct {
	db *database.DB
}

// NewQuestionRepository creates a new question repository
func NewQuestionRepository(db *database.DB) *QuestionRepository {
	return &QuestionRepository{db: db}
}

const questionColumns = "id, exam_id, topic_id, text, options, correct_index, explanation, created_at"

// ListQuestions retrieves all questions for an exam
func (r *QuestionRepository) ListQuestions(examID string) ([]models.Question, error) {
	rows, err := r.db.Query(
		"SELECT "+questionColumns+" FROM questions WHERE exam_id = ? ORDER BY created_at, id",
		examID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanQuestions(rows)
}

// ListQuestionsByTopic retrieves all questions for a topic within an exam
func (r *QuestionRepository) ListQuestionsByTopic(examID, topicID string) ([]models.Question, error) {
	rows, err := r.db.Query(
		"SELECT "+questionColumns+" FROM questions WHERE exam_id = ? AND topic_id = ? ORDER BY created_at, id",
		examID, topicID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanQuestions(rows)
}

// ListQuestionsByIDs retrieves questions by id, preserving the given order
func (r *QuestionRepository) ListQuestionsByIDs(ids []string) ([]models.Question, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(ids)), ", ")
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := r.db.Query(
		"SELECT "+questionColumns+" FROM questions WHERE id IN ("+placeholders+")",
		args...,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	questions, err := scanQuestions(rows)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]models.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}

	ordered := make([]models.Question, 0, len(questions))
	for _, id := range ids {
		if q, ok := byID[id]; ok {
			ordered = append(ordered, q)
		}
	}
	return ordered, nil
}

// GetQuestion retrieves a single question by id
func (r *QuestionRepository) GetQuestion(id string) (*models.Question, error) {
	row := r.db.QueryRow("SELECT "+questionColumns+" FROM questions WHERE id = ?", id)

	q, err := scanQuestion(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// AddQuestions persists a batch of generated drafts, assigning ids, and
// returns the stored questions. Questions are immutable once inserted.
func (r *QuestionRepository) AddQuestions(examID, topicID string, drafts []models.QuestionDraft) ([]models.Question, error) {
	tx, err := r.db.DB.Begin()
	if err != nil {
		return nil, err
	}

	query := r.db.Dialect.RewriteQuery(
		"INSERT INTO questions (id, exam_id, topic_id, text, options, correct_index, explanation, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
	)

	now := time.Now()
	questions := make([]models.Question, 0, len(drafts))
	for _, d := range drafts {
		optionsJSON, err := json.Marshal(d.Options)
		if err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("failed to encode options: %w", err)
		}

		q := models.Question{
			ID:           uuid.New().String(),
			ExamID:       examID,
			TopicID:      topicID,
			Text:         d.Text,
			Options:      d.Options,
			CorrectIndex: d.CorrectIndex,
			Explanation:  d.Explanation,
			CreatedAt:    now,
		}

		if _, err := tx.Exec(query, q.ID, q.ExamID, q.TopicID, q.Text, string(optionsJSON), q.CorrectIndex, q.Explanation, q.CreatedAt); err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("failed to insert question: %w", err)
		}
		questions = append(questions, q)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return questions, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanQuestion(row rowScanner) (models.Question, error) {
	var q models.Question
	var optionsJSON string

	err := row.Scan(&q.ID, &q.ExamID, &q.TopicID, &q.Text, &optionsJSON, &q.CorrectIndex, &q.Explanation, &q.CreatedAt)
	if err != nil {
		return models.Question{}, err
	}

	if err := json.Unmarshal([]byte(optionsJSON), &q.Options); err != nil {
		return models.Question{}, fmt.Errorf("failed to decode options for question %s: %w", q.ID, err)
	}
	return q, nil
}

func scanQuestions(rows *sql.Rows) ([]models.Question, error) {
	var questions []models.Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}
