package service

import (
	"testing"

	"github.com/aakash391999/ExamSphare-sub000/internal/models"
)

func TestGroupByTopic(t *testing.T) {
	questions := []models.Question{
		{ID: "q1", TopicID: "algebra"},
		{ID: "q2", TopicID: "geometry"},
		{ID: "q3", TopicID: "algebra"},
		{ID: "q4", TopicID: "algebra"},
		{ID: "q5", TopicID: "calculus"},
	}

	grouped := groupByTopic(questions)

	if len(grouped) != 3 {
		t.Fatalf("len(grouped) = %d, want 3", len(grouped))
	}
	if grouped[0].TopicID != "algebra" || grouped[0].Count != 3 {
		t.Errorf("grouped[0] = %+v, want algebra with 3", grouped[0])
	}
	// Equal counts break ties by topic id
	if grouped[1].TopicID != "calculus" || grouped[2].TopicID != "geometry" {
		t.Errorf("tie order = %s, %s, want calculus then geometry", grouped[1].TopicID, grouped[2].TopicID)
	}
}

func TestGroupByTopicEmpty(t *testing.T) {
	if grouped := groupByTopic(nil); len(grouped) != 0 {
		t.Errorf("groupByTopic(nil) = %v, want empty", grouped)
	}
}

func TestRollingAccuracy(t *testing.T) {
	results := []models.QuizResult{
		{Score: 10, Total: 10}, // newest
		{Score: 8, Total: 10},
		{Score: 0, Total: 10},
		{Score: 2, Total: 10}, // oldest, outside window of 3
	}

	tests := []struct {
		name    string
		results []models.QuizResult
		window  int
		want    float64
	}{
		{name: "window smaller than history", results: results, window: 3, want: 0.6},
		{name: "window larger than history", results: results, window: 10, want: 0.5},
		{name: "no results", results: nil, window: 5, want: 0},
		{name: "zero totals", results: []models.QuizResult{{Score: 0, Total: 0}}, window: 5, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rollingAccuracy(tt.results, tt.window)
			if got != tt.want {
				t.Errorf("rollingAccuracy() = %v, want %v", got, tt.want)
			}
		})
	}
}
