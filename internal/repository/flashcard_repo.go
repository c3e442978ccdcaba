package repository

import (
	"database/sql"
	"time"

	"github.com/aakash391999/ExamSphare-sub000/internal/database"
	"github.com/aakash391999/ExamSphare-sub000/internal/models"
)

// FlashcardRepository handles spaced-repetition card database operations
type FlashcardRepository struct {
	db *database.DB
}

// NewFlashcardRepository creates a new flashcard repository
func NewFlashcardRepository(db *database.DB) *FlashcardRepository {
	return &FlashcardRepository{db: db}
}

const flashcardColumns = "id, user_id, topic_id, front, back, interval_days, due_at, reviews, lapses, created_at"

// CreateCard stores a new card, due immediately
func (r *FlashcardRepository) CreateCard(userID int64, topicID, front, back string) (*models.Flashcard, error) {
	id, err := r.db.ExecReturningID(
		"INSERT INTO flashcards (user_id, topic_id, front, back, interval_days, due_at) VALUES (?, ?, ?, ?, 0, ?)",
		userID, topicID, front, back, time.Now(),
	)
	if err != nil {
		return nil, err
	}
	return r.GetCard(id)
}

// GetCard retrieves a card by id, or nil when not found
func (r *FlashcardRepository) GetCard(id int64) (*models.Flashcard, error) {
	row := r.db.QueryRow("SELECT "+flashcardColumns+" FROM flashcards WHERE id = ?", id)

	card := &models.Flashcard{}
	err := scanFlashcard(row, card)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return card, nil
}

// ListDueCards returns the user's cards due at or before now, oldest due first
func (r *FlashcardRepository) ListDueCards(userID int64, now time.Time, limit int) ([]models.Flashcard, error) {
	rows, err := r.db.Query(
		"SELECT "+flashcardColumns+" FROM flashcards WHERE user_id = ? AND due_at <= ? ORDER BY due_at, id LIMIT ?",
		userID, now, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cards []models.Flashcard
	for rows.Next() {
		var c models.Flashcard
		if err := scanFlashcard(rows, &c); err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}

// ListCards returns all of the user's cards
func (r *FlashcardRepository) ListCards(userID int64) ([]models.Flashcard, error) {
	rows, err := r.db.Query(
		"SELECT "+flashcardColumns+" FROM flashcards WHERE user_id = ? ORDER BY created_at, id",
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cards []models.Flashcard
	for rows.Next() {
		var c models.Flashcard
		if err := scanFlashcard(rows, &c); err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}

// UpdateSchedule writes the scheduling fields after a review
func (r *FlashcardRepository) UpdateSchedule(card *models.Flashcard) error {
	_, err := r.db.Exec(
		"UPDATE flashcards SET interval_days = ?, due_at = ?, reviews = ?, lapses = ? WHERE id = ?",
		card.IntervalDays, card.DueAt, card.Reviews, card.Lapses, card.ID,
	)
	return err
}

// DeleteCard removes a card
func (r *FlashcardRepository) DeleteCard(userID, cardID int64) error {
	_, err := r.db.Exec("DELETE FROM flashcards WHERE id = ? AND user_id = ?", cardID, userID)
	return err
}

func scanFlashcard(row rowScanner, c *models.Flashcard) error {
	return row.Scan(
		&c.ID,
		&c.UserID,
		&c.TopicID,
		&c.Front,
		&c.Back,
		&c.IntervalDays,
		&c.DueAt,
		&c.Reviews,
		&c.Lapses,
		&c.CreatedAt,
	)
}
