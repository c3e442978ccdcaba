package service

import (
	"errors"
	"fmt"

	"github.com/aakash391999/ExamSphare-sub000/internal/models"
	"github.com/aakash391999/ExamSphare-sub000/internal/repository"
)

var ErrNotFound = errors.New("not found")

// SubjectWithTopics is one syllabus section with its topics
type SubjectWithTopics struct {
	Subject models.Subject `json:"subject"`
	Topics  []models.Topic `json:"topics"`
}

// ContentService exposes the question bank and syllabus. It implements
// practice.QuestionStore for the session controller.
type ContentService struct {
	examRepo     *repository.ExamRepository
	questionRepo *repository.QuestionRepository
}

// NewContentService creates a new content service
func NewContentService(examRepo *repository.ExamRepository, questionRepo *repository.QuestionRepository) *ContentService {
	return &ContentService{
		examRepo:     examRepo,
		questionRepo: questionRepo,
	}
}

// ListExams returns all exams
func (s *ContentService) ListExams() ([]models.Exam, error) {
	return s.examRepo.ListExams()
}

// GetExam returns one exam
func (s *ContentService) GetExam(id string) (*models.Exam, error) {
	exam, err := s.examRepo.GetExam(id)
	if err != nil {
		return nil, err
	}
	if exam == nil {
		return nil, ErrNotFound
	}
	return exam, nil
}

// Syllabus returns the subjects of an exam, each with its topics
func (s *ContentService) Syllabus(examID string) ([]SubjectWithTopics, error) {
	subjects, err := s.examRepo.ListSubjects(examID)
	if err != nil {
		return nil, err
	}
	topics, err := s.examRepo.ListTopics(examID)
	if err != nil {
		return nil, err
	}

	bySubject := make(map[string][]models.Topic)
	for _, t := range topics {
		bySubject[t.SubjectID] = append(bySubject[t.SubjectID], t)
	}

	out := make([]SubjectWithTopics, 0, len(subjects))
	for _, subj := range subjects {
		out = append(out, SubjectWithTopics{
			Subject: subj,
			Topics:  bySubject[subj.ID],
		})
	}
	return out, nil
}

// ListQuestions returns all questions for an exam
func (s *ContentService) ListQuestions(examID string) ([]models.Question, error) {
	return s.questionRepo.ListQuestions(examID)
}

// ListQuestionsByTopic returns the questions of one topic
func (s *ContentService) ListQuestionsByTopic(examID, topicID string) ([]models.Question, error) {
	return s.questionRepo.ListQuestionsByTopic(examID, topicID)
}

// ListQuestionsByIDs returns questions by id, preserving order
func (s *ContentService) ListQuestionsByIDs(ids []string) ([]models.Question, error) {
	return s.questionRepo.ListQuestionsByIDs(ids)
}

// GetTopic returns one topic
func (s *ContentService) GetTopic(topicID string) (*models.Topic, error) {
	topic, err := s.examRepo.GetTopic(topicID)
	if err != nil {
		return nil, err
	}
	if topic == nil {
		return nil, fmt.Errorf("topic %s: %w", topicID, ErrNotFound)
	}
	return topic, nil
}

// AddQuestions persists generated drafts into the bank
func (s *ContentService) AddQuestions(examID, topicID string, drafts []models.QuestionDraft) ([]models.Question, error) {
	return s.questionRepo.AddQuestions(examID, topicID, drafts)
}
