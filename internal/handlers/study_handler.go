package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/aakash391999/ExamSphare-sub000/internal/models"
	"github.com/aakash391999/ExamSphare-sub000/internal/repository"
	"github.com/aakash391999/ExamSphare-sub000/internal/service"
)

// StudyHandler serves the study tooling around practice sessions: the
// mistake book, quiz history, flashcards, study plans and statistics.
type StudyHandler struct {
	contentService   *service.ContentService
	flashcardService *service.FlashcardService
	plannerService   *service.PlannerService
	statsService     *service.StatsService
	mistakeRepo      *repository.MistakeRepository
	resultRepo       *repository.ResultRepository
}

func NewStudyHandler(contentService *service.ContentService, flashcardService *service.FlashcardService, plannerService *service.PlannerService, statsService *service.StatsService, mistakeRepo *repository.MistakeRepository, resultRepo *repository.ResultRepository) *StudyHandler {
	return &StudyHandler{
		contentService:   contentService,
		flashcardService: flashcardService,
		plannerService:   plannerService,
		statsService:     statsService,
		mistakeRepo:      mistakeRepo,
		resultRepo:       resultRepo,
	}
}

// ListMistakes handles GET /api/mistakes
func (h *StudyHandler) ListMistakes(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	ids, err := h.mistakeRepo.List(user.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load mistakes", "Failed to list mistakes", err)
		return
	}

	questions, err := h.contentService.ListQuestionsByIDs(ids)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load mistakes", "Failed to load mistake questions", err)
		return
	}
	respondJSON(w, http.StatusOK, questions)
}

// ClearMistakes handles DELETE /api/mistakes
func (h *StudyHandler) ClearMistakes(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	if err := h.mistakeRepo.Clear(user.ID); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to clear mistakes", "Failed to clear mistakes", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// ListResults handles GET /api/results
func (h *StudyHandler) ListResults(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	results, err := h.resultRepo.ListResults(user.ID, queryLimit(r))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load results", "Failed to list results", err)
		return
	}
	respondJSON(w, http.StatusOK, results)
}

// Stats handles GET /api/stats
func (h *StudyHandler) Stats(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	stats, err := h.statsService.UserStats(user.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load stats", "Failed to compute stats", err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

type createCardRequest struct {
	TopicID string `json:"topic_id"`
	Front   string `json:"front"`
	Back    string `json:"back"`
}

type reviewCardRequest struct {
	Grade string `json:"grade"`
}

// CreateCard handles POST /api/flashcards
func (h *StudyHandler) CreateCard(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	var req createCardRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Front == "" || req.Back == "" {
		respondError(w, http.StatusBadRequest, "front and back are required", "", nil)
		return
	}

	card, err := h.flashcardService.CreateCard(user.ID, req.TopicID, req.Front, req.Back)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to create flashcard", "Failed to create flashcard", err)
		return
	}
	respondJSON(w, http.StatusCreated, card)
}

// ListCards handles GET /api/flashcards
func (h *StudyHandler) ListCards(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	var (
		cards []models.Flashcard
		err   error
	)
	if r.URL.Query().Get("due") == "true" {
		cards, err = h.flashcardService.DueCards(user.ID, queryLimit(r))
	} else {
		cards, err = h.flashcardService.ListCards(user.ID)
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load flashcards", "Failed to list flashcards", err)
		return
	}
	respondJSON(w, http.StatusOK, cards)
}

// ReviewCard handles POST /api/flashcards/{cardID}/review
func (h *StudyHandler) ReviewCard(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	cardID, ok := pathInt64(w, r, "cardID")
	if !ok {
		return
	}

	var req reviewCardRequest
	if !decodeBody(w, r, &req) {
		return
	}

	grade, ok := parseGrade(req.Grade)
	if !ok {
		respondError(w, http.StatusBadRequest, "grade must be again, hard or easy", "", nil)
		return
	}

	card, err := h.flashcardService.Review(user.ID, cardID, grade)
	if err != nil {
		if errors.Is(err, service.ErrNoSuchCard) {
			respondError(w, http.StatusNotFound, "flashcard not found", "", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to review flashcard", "Failed to review flashcard", err)
		return
	}
	respondJSON(w, http.StatusOK, card)
}

// DeleteCard handles DELETE /api/flashcards/{cardID}
func (h *StudyHandler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	cardID, ok := pathInt64(w, r, "cardID")
	if !ok {
		return
	}

	if err := h.flashcardService.DeleteCard(user.ID, cardID); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to delete flashcard", "Failed to delete flashcard", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

type createPlanRequest struct {
	ExamID string `json:"exam_id"`
	Title  string `json:"title"`
}

type addTaskRequest struct {
	TopicID string `json:"topic_id"`
	Title   string `json:"title"`
	DueDate string `json:"due_date"`
}

type setTaskDoneRequest struct {
	Done bool `json:"done"`
}

// CreatePlan handles POST /api/plans
func (h *StudyHandler) CreatePlan(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	var req createPlanRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Title == "" {
		respondError(w, http.StatusBadRequest, "title is required", "", nil)
		return
	}

	plan, err := h.plannerService.CreatePlan(user.ID, req.ExamID, req.Title)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(w, http.StatusNotFound, "exam not found", "", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to create plan", "Failed to create plan", err)
		return
	}
	respondJSON(w, http.StatusCreated, plan)
}

// ListPlans handles GET /api/plans
func (h *StudyHandler) ListPlans(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	plans, err := h.plannerService.ListPlans(user.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load plans", "Failed to list plans", err)
		return
	}
	respondJSON(w, http.StatusOK, plans)
}

// AddTask handles POST /api/plans/{planID}/tasks
func (h *StudyHandler) AddTask(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	planID, ok := pathInt64(w, r, "planID")
	if !ok {
		return
	}

	var req addTaskRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Title == "" {
		respondError(w, http.StatusBadRequest, "title is required", "", nil)
		return
	}

	dueDate, err := time.Parse("2006-01-02", req.DueDate)
	if err != nil {
		respondError(w, http.StatusBadRequest, "due_date must be YYYY-MM-DD", "", nil)
		return
	}

	task, err := h.plannerService.AddTask(user.ID, planID, req.TopicID, req.Title, dueDate)
	if err != nil {
		if errors.Is(err, service.ErrNoSuchPlan) {
			respondError(w, http.StatusNotFound, "study plan not found", "", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to add task", "Failed to add plan task", err)
		return
	}
	respondJSON(w, http.StatusCreated, task)
}

// ListTasks handles GET /api/plans/{planID}/tasks
func (h *StudyHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	planID, ok := pathInt64(w, r, "planID")
	if !ok {
		return
	}

	tasks, err := h.plannerService.ListTasks(user.ID, planID)
	if err != nil {
		if errors.Is(err, service.ErrNoSuchPlan) {
			respondError(w, http.StatusNotFound, "study plan not found", "", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to load tasks", "Failed to list plan tasks", err)
		return
	}
	respondJSON(w, http.StatusOK, tasks)
}

// SetTaskDone handles PATCH /api/plans/{planID}/tasks/{taskID}
func (h *StudyHandler) SetTaskDone(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	planID, ok := pathInt64(w, r, "planID")
	if !ok {
		return
	}
	taskID, ok := pathInt64(w, r, "taskID")
	if !ok {
		return
	}

	var req setTaskDoneRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.plannerService.SetTaskDone(user.ID, planID, taskID, req.Done); err != nil {
		if errors.Is(err, service.ErrNoSuchPlan) {
			respondError(w, http.StatusNotFound, "study plan not found", "", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to update task", "Failed to update plan task", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// DeletePlan handles DELETE /api/plans/{planID}
func (h *StudyHandler) DeletePlan(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	planID, ok := pathInt64(w, r, "planID")
	if !ok {
		return
	}

	if err := h.plannerService.DeletePlan(user.ID, planID); err != nil {
		if errors.Is(err, service.ErrNoSuchPlan) {
			respondError(w, http.StatusNotFound, "study plan not found", "", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to delete plan", "Failed to delete plan", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// TodayAgenda handles GET /api/plans/today
func (h *StudyHandler) TodayAgenda(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	tasks, err := h.plannerService.TodayAgenda(user.ID, time.Now())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load agenda", "Failed to load today agenda", err)
		return
	}
	respondJSON(w, http.StatusOK, tasks)
}

func parseGrade(s string) (models.ReviewGrade, bool) {
	switch s {
	case "again":
		return models.GradeAgain, true
	case "hard":
		return models.GradeHard, true
	case "easy":
		return models.GradeEasy, true
	default:
		return 0, false
	}
}

func pathInt64(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid "+name, "", nil)
		return 0, false
	}
	return id, true
}
