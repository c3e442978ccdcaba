package service

import (
	"testing"
	"time"

	"github.com/aakash391999/ExamSphare-sub000/internal/models"
)

func TestApplyReview(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		interval     int
		grade        models.ReviewGrade
		wantInterval int
		wantDue      time.Time
	}{
		{
			name:         "easy on new card starts at one day",
			interval:     0,
			grade:        models.GradeEasy,
			wantInterval: 1,
			wantDue:      now.AddDate(0, 0, 1),
		},
		{
			name:         "easy doubles the interval",
			interval:     4,
			grade:        models.GradeEasy,
			wantInterval: 8,
			wantDue:      now.AddDate(0, 0, 8),
		},
		{
			name:         "hard keeps the interval",
			interval:     4,
			grade:        models.GradeHard,
			wantInterval: 4,
			wantDue:      now.AddDate(0, 0, 4),
		},
		{
			name:         "hard on new card moves to one day",
			interval:     0,
			grade:        models.GradeHard,
			wantInterval: 1,
			wantDue:      now.AddDate(0, 0, 1),
		},
		{
			name:         "again resets the interval",
			interval:     16,
			grade:        models.GradeAgain,
			wantInterval: 0,
			wantDue:      now.Add(relearnDelay),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card := &models.Flashcard{IntervalDays: tt.interval}

			applyReview(card, tt.grade, now)

			if card.IntervalDays != tt.wantInterval {
				t.Errorf("interval = %d, want %d", card.IntervalDays, tt.wantInterval)
			}
			if !card.DueAt.Equal(tt.wantDue) {
				t.Errorf("due = %v, want %v", card.DueAt, tt.wantDue)
			}
			if card.Reviews != 1 {
				t.Errorf("reviews = %d, want 1", card.Reviews)
			}
		})
	}
}

func TestApplyReviewCountsLapses(t *testing.T) {
	now := time.Now()
	card := &models.Flashcard{IntervalDays: 8}

	applyReview(card, models.GradeAgain, now)
	applyReview(card, models.GradeAgain, now)
	applyReview(card, models.GradeEasy, now)

	if card.Lapses != 2 {
		t.Errorf("lapses = %d, want 2", card.Lapses)
	}
	if card.Reviews != 3 {
		t.Errorf("reviews = %d, want 3", card.Reviews)
	}
	if card.IntervalDays != 1 {
		t.Errorf("interval after relearn = %d, want 1", card.IntervalDays)
	}
}
