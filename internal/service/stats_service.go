package service

import (
	"sort"

	"github.com/aakash391999/ExamSphare-sub000/internal/models"
	"github.com/aakash391999/ExamSphare-sub000/internal/repository"
)

// TopicMistakes counts the mistake-book entries for one topic
type TopicMistakes struct {
	TopicID   string `json:"topic_id"`
	TopicName string `json:"topic_name"`
	Count     int    `json:"count"`
}

// StudyStats is a user's aggregated performance view
type StudyStats struct {
	TotalQuizzes    int             `json:"total_quizzes"`
	TotalAnswered   int             `json:"total_answered"`
	TotalCorrect    int             `json:"total_correct"`
	OverallAccuracy float64         `json:"overall_accuracy"`
	RecentAccuracy  float64         `json:"recent_accuracy"` // over the rolling window
	MistakesByTopic []TopicMistakes `json:"mistakes_by_topic"`
}

// recentWindow is how many recent quizzes the rolling accuracy covers
const recentWindow = 10

// StatsService aggregates mistakes and quiz history into learner analytics
type StatsService struct {
	mistakeRepo *repository.MistakeRepository
	resultRepo  *repository.ResultRepository
	content     *ContentService
}

// NewStatsService creates a new stats service
func NewStatsService(mistakeRepo *repository.MistakeRepository, resultRepo *repository.ResultRepository, content *ContentService) *StatsService {
	return &StatsService{
		mistakeRepo: mistakeRepo,
		resultRepo:  resultRepo,
		content:     content,
	}
}

// UserStats computes the user's performance summary
func (s *StatsService) UserStats(userID int64) (*StudyStats, error) {
	results, err := s.resultRepo.ListResults(userID, 500)
	if err != nil {
		return nil, err
	}

	mistakes, err := s.mistakesByTopic(userID)
	if err != nil {
		return nil, err
	}

	stats := &StudyStats{
		TotalQuizzes:    len(results),
		MistakesByTopic: mistakes,
	}
	for _, r := range results {
		stats.TotalAnswered += r.Total
		stats.TotalCorrect += r.Score
	}
	stats.OverallAccuracy = accuracy(results)
	stats.RecentAccuracy = rollingAccuracy(results, recentWindow)

	return stats, nil
}

// mistakesByTopic groups the user's mistake book by topic, most mistakes first
func (s *StatsService) mistakesByTopic(userID int64) ([]TopicMistakes, error) {
	ids, err := s.mistakeRepo.List(userID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	questions, err := s.content.ListQuestionsByIDs(ids)
	if err != nil {
		return nil, err
	}

	grouped := groupByTopic(questions)
	for i := range grouped {
		topic, err := s.content.GetTopic(grouped[i].TopicID)
		if err == nil && topic != nil {
			grouped[i].TopicName = topic.Name
		}
	}
	return grouped, nil
}

// groupByTopic counts questions per topic, ordered by count descending
func groupByTopic(questions []models.Question) []TopicMistakes {
	counts := make(map[string]int)
	for _, q := range questions {
		counts[q.TopicID]++
	}

	out := make([]TopicMistakes, 0, len(counts))
	for topicID, count := range counts {
		out = append(out, TopicMistakes{TopicID: topicID, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].TopicID < out[j].TopicID
	})
	return out
}

// accuracy is correct/answered across all given results
func accuracy(results []models.QuizResult) float64 {
	var answered, correct int
	for _, r := range results {
		answered += r.Total
		correct += r.Score
	}
	if answered == 0 {
		return 0
	}
	return float64(correct) / float64(answered)
}

// rollingAccuracy is the accuracy over the most recent n results.
// Results are expected newest first, as ListResults returns them.
func rollingAccuracy(results []models.QuizResult, n int) float64 {
	if len(results) > n {
		results = results[:n]
	}
	return accuracy(results)
}
