package handlers

import (
	"errors"
	"net/http"

	"github.com/aakash391999/ExamSphare-sub000/internal/practice"
	"github.com/aakash391999/ExamSphare-sub000/internal/service"
)

// PracticeHandler exposes the practice session lifecycle over HTTP. All
// endpoints act on the authenticated user's single session.
type PracticeHandler struct {
	practiceService *service.PracticeService
}

func NewPracticeHandler(practiceService *service.PracticeService) *PracticeHandler {
	return &PracticeHandler{practiceService: practiceService}
}

type startSessionRequest struct {
	ExamID  string `json:"exam_id"`
	Mode    string `json:"mode"`
	TopicID string `json:"topic_id"`
}

type selectOptionRequest struct {
	Index int `json:"index"`
}

// Start handles POST /api/practice/start
func (h *PracticeHandler) Start(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	var req startSessionRequest
	if !decodeBody(w, r, &req) {
		return
	}

	mode := practice.Mode(req.Mode)
	if mode == "" {
		mode = practice.ModeStandard
	}

	err := h.practiceService.Start(r.Context(), user.ID, req.ExamID, mode, req.TopicID)
	if err != nil {
		h.respondPracticeError(w, "Failed to start session", err)
		return
	}
	respondJSON(w, http.StatusOK, h.practiceService.State(user.ID))
}

// State handles GET /api/practice/session
func (h *PracticeHandler) State(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	respondJSON(w, http.StatusOK, h.practiceService.State(user.ID))
}

// SelectOption handles POST /api/practice/select
func (h *PracticeHandler) SelectOption(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	var req selectOptionRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.practiceService.SelectOption(user.ID, req.Index); err != nil {
		h.respondPracticeError(w, "Failed to select option", err)
		return
	}
	respondJSON(w, http.StatusOK, h.practiceService.State(user.ID))
}

// Submit handles POST /api/practice/submit
func (h *PracticeHandler) Submit(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	if err := h.practiceService.Submit(user.ID); err != nil {
		h.respondPracticeError(w, "Failed to submit answer", err)
		return
	}
	respondJSON(w, http.StatusOK, h.practiceService.State(user.ID))
}

// Next handles POST /api/practice/next
func (h *PracticeHandler) Next(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	if err := h.practiceService.Next(user.ID); err != nil {
		h.respondPracticeError(w, "Failed to advance session", err)
		return
	}
	respondJSON(w, http.StatusOK, h.practiceService.State(user.ID))
}

// Reset handles POST /api/practice/reset
func (h *PracticeHandler) Reset(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	h.practiceService.Reset(user.ID)
	respondJSON(w, http.StatusOK, h.practiceService.State(user.ID))
}

func (h *PracticeHandler) respondPracticeError(w http.ResponseWriter, logMsg string, err error) {
	switch {
	case errors.Is(err, practice.ErrSessionInProgress):
		respondError(w, http.StatusConflict, err.Error(), "", nil)
	case errors.Is(err, practice.ErrNoMistakes),
		errors.Is(err, practice.ErrNoQuestions),
		errors.Is(err, practice.ErrInvalidMode),
		errors.Is(err, practice.ErrInvalidOption),
		errors.Is(err, practice.ErrAlreadySubmitted),
		errors.Is(err, practice.ErrNoSelection),
		errors.Is(err, practice.ErrNotSubmitted):
		respondError(w, http.StatusBadRequest, err.Error(), "", nil)
	case errors.Is(err, practice.ErrNotActive):
		respondError(w, http.StatusConflict, err.Error(), "", nil)
	case errors.Is(err, practice.ErrGenerationFailed):
		respondError(w, http.StatusBadGateway, err.Error(), logMsg, err)
	case errors.Is(err, service.ErrNotFound):
		respondError(w, http.StatusNotFound, "exam not found", "", nil)
	default:
		respondError(w, http.StatusInternalServerError, "practice session error", logMsg, err)
	}
}
