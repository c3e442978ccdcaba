package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/aakash391999/ExamSphare-sub000/internal/models"
)

// OpenAIGenerator produces multiple-choice questions for a topic using GPT-4o
type OpenAIGenerator struct {
	client *openai.Client
}

// NewOpenAIGenerator creates a new generator with an OpenAI client
func NewOpenAIGenerator(apiKey string) *OpenAIGenerator {
	return &OpenAIGenerator{
		client: openai.NewClient(apiKey),
	}
}

// GenerateQuestions requests count questions for the given exam and topic.
// An empty result with a nil error never occurs; malformed items are dropped,
// and a fully malformed response is returned as an error.
func (g *OpenAIGenerator) GenerateQuestions(ctx context.Context, examName, topicName string, count int) ([]models.QuestionDraft, error) {
	log.Printf("Generating %d questions for %s / %s", count, examName, topicName)

	resp, err := g.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: openai.GPT4o,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: "You are an expert exam-preparation tutor. Generate high-quality multiple choice questions with exactly 4 options each.",
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: buildPrompt(examName, topicName, count),
				},
			},
			Tools: []openai.Tool{
				{
					Type: openai.ToolTypeFunction,
					Function: &openai.FunctionDefinition{
						Name:        "submit_questions",
						Description: "Submit generated exam questions",
						Parameters: map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"questions": map[string]interface{}{
									"type": "array",
									"items": map[string]interface{}{
										"type": "object",
										"properties": map[string]interface{}{
											"text": map[string]interface{}{
												"type":        "string",
												"description": "The question text",
											},
											"options": map[string]interface{}{
												"type": "array",
												"items": map[string]interface{}{
													"type": "string",
												},
												"description": "Array of 4 multiple choice options",
											},
											"correct_index": map[string]interface{}{
												"type":        "integer",
												"description": "0-based index of the correct option",
											},
											"explanation": map[string]interface{}{
												"type":        "string",
												"description": "Brief explanation of why the answer is correct",
											},
										},
										"required": []string{"text", "options", "correct_index", "explanation"},
									},
								},
							},
							"required": []string{"questions"},
						},
					},
				},
			},
			ToolChoice: openai.ToolChoice{
				Type: openai.ToolTypeFunction,
				Function: openai.ToolFunction{
					Name: "submit_questions",
				},
			},
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate questions: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from model")
	}

	choice := resp.Choices[0]
	if len(choice.Message.ToolCalls) == 0 {
		return nil, fmt.Errorf("no tool calls in response")
	}

	toolCall := choice.Message.ToolCalls[0]
	if toolCall.Function.Name != "submit_questions" {
		return nil, fmt.Errorf("unexpected tool call: %s", toolCall.Function.Name)
	}

	var toolArgs struct {
		Questions []models.QuestionDraft `json:"questions"`
	}
	if err := json.Unmarshal([]byte(toolCall.Function.Arguments), &toolArgs); err != nil {
		return nil, fmt.Errorf("failed to parse tool arguments: %w", err)
	}

	drafts := filterValidDrafts(toolArgs.Questions)
	if len(drafts) == 0 {
		return nil, fmt.Errorf("model returned no usable questions")
	}

	log.Printf("Generated %d questions", len(drafts))
	return drafts, nil
}

// filterValidDrafts keeps only drafts with exactly 4 options and a correct
// index in range
func filterValidDrafts(drafts []models.QuestionDraft) []models.QuestionDraft {
	var out []models.QuestionDraft
	for _, d := range drafts {
		if !validDraft(d) {
			log.Printf("Dropping malformed generated question: %q", d.Text)
			continue
		}
		out = append(out, d)
	}
	return out
}

func validDraft(d models.QuestionDraft) bool {
	if strings.TrimSpace(d.Text) == "" {
		return false
	}
	if len(d.Options) != 4 {
		return false
	}
	for _, opt := range d.Options {
		if strings.TrimSpace(opt) == "" {
			return false
		}
	}
	return d.CorrectIndex >= 0 && d.CorrectIndex < len(d.Options)
}

func buildPrompt(examName, topicName string, count int) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Generate %d multiple choice questions for the exam %q on the topic %q.\n\n", count, examName, topicName))
	sb.WriteString("Requirements:\n")
	sb.WriteString("- Each question must have exactly 4 multiple choice options\n")
	sb.WriteString("- The correct answer should be non-obvious but clearly correct\n")
	sb.WriteString("- Incorrect options should be plausible but clearly wrong\n")
	sb.WriteString("- Questions should test understanding, not just memorization\n")
	sb.WriteString("- Match the style and difficulty of the named exam\n")
	sb.WriteString("- Provide a brief explanation for why the correct answer is right\n")
	sb.WriteString("- Use the submit_questions tool to return your questions\n")

	return sb.String()
}
