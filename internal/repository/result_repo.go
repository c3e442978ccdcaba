package repository

import (
	"github.com/aakash391999/ExamSphare-sub000/internal/database"
	"github.com/aakash391999/ExamSphare-sub000/internal/models"
)

// ResultRepository handles the append-only quiz history
type ResultRepository struct {
	db *database.DB
}

// NewResultRepository creates a new result repository
func NewResultRepository(db *database.DB) *ResultRepository {
	return &ResultRepository{db: db}
}

// AppendResult records a completed standard-mode quiz
func (r *ResultRepository) AppendResult(result models.QuizResult) error {
	_, err := r.db.Exec(
		"INSERT INTO quiz_results (user_id, exam_id, score, total, date) VALUES (?, ?, ?, ?, ?)",
		result.UserID, result.ExamID, result.Score, result.Total, result.Date,
	)
	return err
}

// ListResults retrieves a user's quiz history, newest first
func (r *ResultRepository) ListResults(userID int64, limit int) ([]models.QuizResult, error) {
	rows, err := r.db.Query(
		"SELECT id, user_id, exam_id, score, total, date FROM quiz_results WHERE user_id = ? ORDER BY date DESC, id DESC LIMIT ?",
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []models.QuizResult
	for rows.Next() {
		var qr models.QuizResult
		if err := rows.Scan(&qr.ID, &qr.UserID, &qr.ExamID, &qr.Score, &qr.Total, &qr.Date); err != nil {
			return nil, err
		}
		results = append(results, qr)
	}
	return results, rows.Err()
}
