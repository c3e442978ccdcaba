package generator

import (
	"strings"
	"testing"

	"github.com/aakash391999/ExamSphare-sub000/internal/models"
)

func TestFilterValidDrafts(t *testing.T) {
	good := models.QuestionDraft{
		Text:         "What is 2+2?",
		Options:      []string{"3", "4", "5", "6"},
		CorrectIndex: 1,
		Explanation:  "basic arithmetic",
	}

	tests := []struct {
		name  string
		draft models.QuestionDraft
		keep  bool
	}{
		{name: "valid draft", draft: good, keep: true},
		{
			name: "empty text",
			draft: models.QuestionDraft{
				Options:      []string{"a", "b", "c", "d"},
				CorrectIndex: 0,
			},
			keep: false,
		},
		{
			name: "three options",
			draft: models.QuestionDraft{
				Text:         "q",
				Options:      []string{"a", "b", "c"},
				CorrectIndex: 0,
			},
			keep: false,
		},
		{
			name: "five options",
			draft: models.QuestionDraft{
				Text:         "q",
				Options:      []string{"a", "b", "c", "d", "e"},
				CorrectIndex: 0,
			},
			keep: false,
		},
		{
			name: "blank option",
			draft: models.QuestionDraft{
				Text:         "q",
				Options:      []string{"a", " ", "c", "d"},
				CorrectIndex: 0,
			},
			keep: false,
		},
		{
			name: "correct index out of range",
			draft: models.QuestionDraft{
				Text:         "q",
				Options:      []string{"a", "b", "c", "d"},
				CorrectIndex: 4,
			},
			keep: false,
		},
		{
			name: "negative correct index",
			draft: models.QuestionDraft{
				Text:         "q",
				Options:      []string{"a", "b", "c", "d"},
				CorrectIndex: -1,
			},
			keep: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := filterValidDrafts([]models.QuestionDraft{tt.draft})
			if kept := len(out) == 1; kept != tt.keep {
				t.Errorf("filterValidDrafts() kept = %v, want %v", kept, tt.keep)
			}
		})
	}
}

func TestBuildPrompt(t *testing.T) {
	prompt := buildPrompt("UPSC Prelims", "Indian Polity", 10)

	for _, want := range []string{"10", "UPSC Prelims", "Indian Polity", "submit_questions", "exactly 4"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
}
