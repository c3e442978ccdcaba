package repository

import (
	"github.com/aakash391999/ExamSphare-sub000/internal/database"
)

// MistakeRepository handles the per-user mistake book. The (user_id,
// question_id) pair is the primary key, so a question appears at most once.
type MistakeRepository struct {
	db *database.DB
}

// NewMistakeRepository creates a new mistake repository
func NewMistakeRepository(db *database.DB) *MistakeRepository {
	return &MistakeRepository{db: db}
}

// Add records a question the user answered incorrectly. Idempotent.
func (r *MistakeRepository) Add(userID int64, questionID string) error {
	var count int
	err := r.db.QueryRow(
		"SELECT COUNT(*) FROM mistakes WHERE user_id = ? AND question_id = ?",
		userID, questionID,
	).Scan(&count)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	_, err = r.db.Exec(
		"INSERT INTO mistakes (user_id, question_id) VALUES (?, ?)",
		userID, questionID,
	)
	return err
}

// Remove drops a question from the user's mistake book. Idempotent.
func (r *MistakeRepository) Remove(userID int64, questionID string) error {
	_, err := r.db.Exec(
		"DELETE FROM mistakes WHERE user_id = ? AND question_id = ?",
		userID, questionID,
	)
	return err
}

// List returns the question ids in the user's mistake book, oldest first
func (r *MistakeRepository) List(userID int64) ([]string, error) {
	rows, err := r.db.Query(
		"SELECT question_id FROM mistakes WHERE user_id = ? ORDER BY added_at, question_id",
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Clear empties the user's mistake book
func (r *MistakeRepository) Clear(userID int64) error {
	_, err := r.db.Exec("DELETE FROM mistakes WHERE user_id = ?", userID)
	return err
}
