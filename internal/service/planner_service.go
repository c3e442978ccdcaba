package service

import (
	"errors"
	"time"

	"github.com/aakash391999/ExamSphare-sub000/internal/models"
	"github.com/aakash391999/ExamSphare-sub000/internal/repository"
	"github.com/aakash391999/ExamSphare-sub000/internal/validation"
)

var ErrNoSuchPlan = errors.New("study plan not found")

// PlannerService handles study plan business logic
type PlannerService struct {
	planRepo *repository.PlanRepository
	content  *ContentService
}

// NewPlannerService creates a new planner service
func NewPlannerService(planRepo *repository.PlanRepository, content *ContentService) *PlannerService {
	return &PlannerService{
		planRepo: planRepo,
		content:  content,
	}
}

// CreatePlan creates a study plan for an existing exam
func (s *PlannerService) CreatePlan(userID int64, examID, title string) (*models.StudyPlan, error) {
	if err := validation.ValidateBody(title, 200); err != nil {
		return nil, err
	}
	if _, err := s.content.GetExam(examID); err != nil {
		return nil, err
	}
	return s.planRepo.CreatePlan(userID, examID, title)
}

// ListPlans returns the user's study plans
func (s *PlannerService) ListPlans(userID int64) ([]models.StudyPlan, error) {
	return s.planRepo.ListPlans(userID)
}

// AddTask adds a dated task to one of the user's plans
func (s *PlannerService) AddTask(userID, planID int64, topicID, title string, dueDate time.Time) (*models.PlanTask, error) {
	if err := validation.ValidateBody(title, 200); err != nil {
		return nil, err
	}

	plan, err := s.planRepo.GetPlan(planID)
	if err != nil {
		return nil, err
	}
	if plan == nil || plan.UserID != userID {
		return nil, ErrNoSuchPlan
	}

	return s.planRepo.AddTask(planID, topicID, title, dueDate)
}

// ListTasks returns the tasks of one of the user's plans
func (s *PlannerService) ListTasks(userID, planID int64) ([]models.PlanTask, error) {
	plan, err := s.planRepo.GetPlan(planID)
	if err != nil {
		return nil, err
	}
	if plan == nil || plan.UserID != userID {
		return nil, ErrNoSuchPlan
	}
	return s.planRepo.ListTasks(planID)
}

// TodayAgenda returns the user's tasks due today
func (s *PlannerService) TodayAgenda(userID int64, now time.Time) ([]models.PlanTask, error) {
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return s.planRepo.ListTasksDueOn(userID, start, start.AddDate(0, 0, 1))
}

// UsersWithTasksDueToday returns users who have unfinished tasks due today
func (s *PlannerService) UsersWithTasksDueToday(now time.Time) ([]int64, error) {
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return s.planRepo.ListUserIDsWithTasksDueOn(start, start.AddDate(0, 0, 1))
}

// SetTaskDone marks a task done or not done, checking plan ownership
func (s *PlannerService) SetTaskDone(userID, planID, taskID int64, done bool) error {
	plan, err := s.planRepo.GetPlan(planID)
	if err != nil {
		return err
	}
	if plan == nil || plan.UserID != userID {
		return ErrNoSuchPlan
	}
	return s.planRepo.SetTaskDone(taskID, done)
}

// DeletePlan removes one of the user's plans
func (s *PlannerService) DeletePlan(userID, planID int64) error {
	return s.planRepo.DeletePlan(userID, planID)
}
