package service

import (
	"context"
	"sync"

	"github.com/aakash391999/ExamSphare-sub000/internal/practice"
	"github.com/aakash391999/ExamSphare-sub000/internal/repository"
)

// PracticeService owns one session controller per user. Session state is
// in-memory and ephemeral; it does not survive a restart.
type PracticeService struct {
	content   *ContentService
	mistakes  *repository.MistakeRepository
	results   *repository.ResultRepository
	generator practice.Generator
	cfg       practice.Config

	mu       sync.Mutex
	sessions map[int64]*practice.Controller
}

// NewPracticeService creates a new practice service
func NewPracticeService(content *ContentService, mistakes *repository.MistakeRepository, results *repository.ResultRepository, generator practice.Generator, cfg practice.Config) *PracticeService {
	return &PracticeService{
		content:   content,
		mistakes:  mistakes,
		results:   results,
		generator: generator,
		cfg:       cfg,
		sessions:  make(map[int64]*practice.Controller),
	}
}

// Start begins a practice session for a user against an exam. A user has at
// most one session; starting while one is active or generating is rejected.
func (s *PracticeService) Start(ctx context.Context, userID int64, examID string, mode practice.Mode, topicID string) error {
	exam, err := s.content.GetExam(examID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	existing := s.sessions[userID]
	if existing != nil {
		switch existing.Snapshot().Status {
		case practice.StatusActive, practice.StatusGenerating:
			s.mu.Unlock()
			return practice.ErrSessionInProgress
		default:
			// Stale controller from a previous run; stop its timer before
			// replacing it.
			existing.Reset()
		}
	}

	ctrl := practice.NewController(userID, *exam, s.content, s.mistakes, s.results, s.generator, s.cfg)
	s.sessions[userID] = ctrl
	s.mu.Unlock()

	return ctrl.Start(ctx, mode, topicID)
}

// State returns the user's current session snapshot
func (s *PracticeService) State(userID int64) practice.Session {
	if ctrl := s.controller(userID); ctrl != nil {
		return ctrl.Snapshot()
	}
	return practice.Session{Status: practice.StatusSetup}
}

// SelectOption records the user's choice on the current question
func (s *PracticeService) SelectOption(userID int64, index int) error {
	ctrl := s.controller(userID)
	if ctrl == nil {
		return practice.ErrNotActive
	}
	return ctrl.SelectOption(index)
}

// Submit locks in the selected option and scores it
func (s *PracticeService) Submit(userID int64) error {
	ctrl := s.controller(userID)
	if ctrl == nil {
		return practice.ErrNotActive
	}
	return ctrl.Submit()
}

// Next advances to the next question or finishes the session
func (s *PracticeService) Next(userID int64) error {
	ctrl := s.controller(userID)
	if ctrl == nil {
		return practice.ErrNotActive
	}
	return ctrl.Next()
}

// Reset discards the user's session
func (s *PracticeService) Reset(userID int64) {
	if ctrl := s.controller(userID); ctrl != nil {
		ctrl.Reset()
	}
}

func (s *PracticeService) controller(userID int64) *practice.Controller {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[userID]
}
