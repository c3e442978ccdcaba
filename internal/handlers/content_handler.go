package handlers

import (
	"errors"
	"net/http"

	"github.com/aakash391999/ExamSphare-sub000/internal/service"
)

// ContentHandler serves the exam catalog
type ContentHandler struct {
	contentService *service.ContentService
}

func NewContentHandler(contentService *service.ContentService) *ContentHandler {
	return &ContentHandler{contentService: contentService}
}

// ListExams handles GET /api/exams
func (h *ContentHandler) ListExams(w http.ResponseWriter, r *http.Request) {
	exams, err := h.contentService.ListExams()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load exams", "Failed to list exams", err)
		return
	}
	respondJSON(w, http.StatusOK, exams)
}

// GetExam handles GET /api/exams/{examID}
func (h *ContentHandler) GetExam(w http.ResponseWriter, r *http.Request) {
	exam, err := h.contentService.GetExam(r.PathValue("examID"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(w, http.StatusNotFound, "exam not found", "", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to load exam", "Failed to get exam", err)
		return
	}
	respondJSON(w, http.StatusOK, exam)
}

// Syllabus handles GET /api/exams/{examID}/syllabus
func (h *ContentHandler) Syllabus(w http.ResponseWriter, r *http.Request) {
	subjects, err := h.contentService.Syllabus(r.PathValue("examID"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(w, http.StatusNotFound, "exam not found", "", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to load syllabus", "Failed to load syllabus", err)
		return
	}
	respondJSON(w, http.StatusOK, subjects)
}

// TopicQuestions handles GET /api/exams/{examID}/topics/{topicID}/questions
func (h *ContentHandler) TopicQuestions(w http.ResponseWriter, r *http.Request) {
	questions, err := h.contentService.ListQuestionsByTopic(r.PathValue("examID"), r.PathValue("topicID"))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load questions", "Failed to list topic questions", err)
		return
	}
	respondJSON(w, http.StatusOK, questions)
}
