package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/aakash391999/ExamSphare-sub000/internal/models"
	"github.com/aakash391999/ExamSphare-sub000/internal/repository"
	"github.com/aakash391999/ExamSphare-sub000/internal/validation"
)

var ErrNoSuchCard = errors.New("flashcard not found")

// relearnDelay is how soon a lapsed card comes back within the same sitting
const relearnDelay = 10 * time.Minute

// FlashcardService handles spaced-repetition scheduling
type FlashcardService struct {
	cardRepo *repository.FlashcardRepository
}

// NewFlashcardService creates a new flashcard service
func NewFlashcardService(cardRepo *repository.FlashcardRepository) *FlashcardService {
	return &FlashcardService{cardRepo: cardRepo}
}

// CreateCard adds a card to the user's deck, due immediately
func (s *FlashcardService) CreateCard(userID int64, topicID, front, back string) (*models.Flashcard, error) {
	if err := validation.ValidateBody(front, 1000); err != nil {
		return nil, err
	}
	if err := validation.ValidateBody(back, 1000); err != nil {
		return nil, err
	}
	return s.cardRepo.CreateCard(userID, topicID, front, back)
}

// DueCards returns the cards due for review now
func (s *FlashcardService) DueCards(userID int64, limit int) ([]models.Flashcard, error) {
	return s.cardRepo.ListDueCards(userID, time.Now(), limit)
}

// ListCards returns the user's whole deck
func (s *FlashcardService) ListCards(userID int64) ([]models.Flashcard, error) {
	return s.cardRepo.ListCards(userID)
}

// Review grades a card and reschedules it
func (s *FlashcardService) Review(userID, cardID int64, grade models.ReviewGrade) (*models.Flashcard, error) {
	card, err := s.cardRepo.GetCard(cardID)
	if err != nil {
		return nil, err
	}
	if card == nil || card.UserID != userID {
		return nil, ErrNoSuchCard
	}

	applyReview(card, grade, time.Now())

	if err := s.cardRepo.UpdateSchedule(card); err != nil {
		return nil, fmt.Errorf("failed to reschedule card: %w", err)
	}
	return card, nil
}

// DeleteCard removes a card from the user's deck
func (s *FlashcardService) DeleteCard(userID, cardID int64) error {
	return s.cardRepo.DeleteCard(userID, cardID)
}

// applyReview mutates the card's scheduling fields for one graded review.
// Intervals double on an easy recall, hold on a hard one, and reset on a
// lapse, with the lapsed card returning after a short relearn delay.
func applyReview(card *models.Flashcard, grade models.ReviewGrade, now time.Time) {
	card.Reviews++

	switch grade {
	case models.GradeAgain:
		card.Lapses++
		card.IntervalDays = 0
		card.DueAt = now.Add(relearnDelay)
	case models.GradeHard:
		if card.IntervalDays < 1 {
			card.IntervalDays = 1
		}
		card.DueAt = now.AddDate(0, 0, card.IntervalDays)
	default: // GradeEasy
		if card.IntervalDays < 1 {
			card.IntervalDays = 1
		} else {
			card.IntervalDays *= 2
		}
		card.DueAt = now.AddDate(0, 0, card.IntervalDays)
	}
}
