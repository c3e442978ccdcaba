package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/aakash391999/ExamSphare-sub000/internal/service"
	"github.com/aakash391999/ExamSphare-sub000/internal/validation"
)

const defaultPageLimit = 50

// SocialHandler serves posts, follows, messages and notifications
type SocialHandler struct {
	socialService *service.SocialService
}

func NewSocialHandler(socialService *service.SocialService) *SocialHandler {
	return &SocialHandler{socialService: socialService}
}

type createPostRequest struct {
	Body string `json:"body"`
}

type sendMessageRequest struct {
	Body string `json:"body"`
}

// CreatePost handles POST /api/posts
func (h *SocialHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	var req createPostRequest
	if !decodeBody(w, r, &req) {
		return
	}

	post, err := h.socialService.CreatePost(user.ID, req.Body)
	if err != nil {
		if errors.Is(err, validation.ErrBodyEmpty) || errors.Is(err, validation.ErrBodyTooLong) {
			respondError(w, http.StatusBadRequest, err.Error(), "", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to create post", "Failed to create post", err)
		return
	}
	respondJSON(w, http.StatusCreated, post)
}

// Feed handles GET /api/feed
func (h *SocialHandler) Feed(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	posts, err := h.socialService.Feed(user.ID, queryLimit(r))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load feed", "Failed to load feed", err)
		return
	}
	respondJSON(w, http.StatusOK, posts)
}

// Profile handles GET /api/users/{userID}
func (h *SocialHandler) Profile(w http.ResponseWriter, r *http.Request) {
	viewer := UserFromContext(r.Context())

	userID, ok := pathUserID(w, r)
	if !ok {
		return
	}

	profile, err := h.socialService.Profile(viewer.ID, userID)
	if err != nil {
		if errors.Is(err, service.ErrNoSuchUser) {
			respondError(w, http.StatusNotFound, "user not found", "", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to load profile", "Failed to load profile", err)
		return
	}
	respondJSON(w, http.StatusOK, profile)
}

// Follow handles POST /api/users/{userID}/follow
func (h *SocialHandler) Follow(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	followeeID, ok := pathUserID(w, r)
	if !ok {
		return
	}

	if err := h.socialService.Follow(r.Context(), user.ID, followeeID); err != nil {
		switch {
		case errors.Is(err, service.ErrSelfFollow):
			respondError(w, http.StatusBadRequest, err.Error(), "", nil)
		case errors.Is(err, service.ErrNoSuchUser):
			respondError(w, http.StatusNotFound, "user not found", "", nil)
		default:
			respondError(w, http.StatusInternalServerError, "failed to follow", "Failed to follow user", err)
		}
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"following": true})
}

// Unfollow handles DELETE /api/users/{userID}/follow
func (h *SocialHandler) Unfollow(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	followeeID, ok := pathUserID(w, r)
	if !ok {
		return
	}

	if err := h.socialService.Unfollow(user.ID, followeeID); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to unfollow", "Failed to unfollow user", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"following": false})
}

// SendMessage handles POST /api/users/{userID}/messages
func (h *SocialHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	recipientID, ok := pathUserID(w, r)
	if !ok {
		return
	}

	var req sendMessageRequest
	if !decodeBody(w, r, &req) {
		return
	}

	msg, err := h.socialService.SendMessage(r.Context(), user.ID, recipientID, req.Body)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSelfMessage),
			errors.Is(err, validation.ErrBodyEmpty),
			errors.Is(err, validation.ErrBodyTooLong):
			respondError(w, http.StatusBadRequest, err.Error(), "", nil)
		case errors.Is(err, service.ErrNoSuchUser):
			respondError(w, http.StatusNotFound, "user not found", "", nil)
		default:
			respondError(w, http.StatusInternalServerError, "failed to send message", "Failed to send message", err)
		}
		return
	}
	respondJSON(w, http.StatusCreated, msg)
}

// Conversation handles GET /api/users/{userID}/messages
func (h *SocialHandler) Conversation(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	peerID, ok := pathUserID(w, r)
	if !ok {
		return
	}

	messages, err := h.socialService.Conversation(user.ID, peerID, queryLimit(r))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load conversation", "Failed to load conversation", err)
		return
	}
	respondJSON(w, http.StatusOK, messages)
}

// Notifications handles GET /api/notifications
func (h *SocialHandler) Notifications(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	notifications, err := h.socialService.Notifications(user.ID, queryLimit(r))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load notifications", "Failed to load notifications", err)
		return
	}
	respondJSON(w, http.StatusOK, notifications)
}

// MarkNotificationsRead handles POST /api/notifications/read
func (h *SocialHandler) MarkNotificationsRead(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	if err := h.socialService.MarkNotificationsRead(user.ID); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to mark notifications", "Failed to mark notifications read", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// SearchUsers handles GET /api/users/search?q=
func (h *SocialHandler) SearchUsers(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		respondError(w, http.StatusBadRequest, "query is required", "", nil)
		return
	}

	users, err := h.socialService.SearchUsers(query, queryLimit(r))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "search failed", "Failed to search users", err)
		return
	}
	respondJSON(w, http.StatusOK, users)
}

func pathUserID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	return pathInt64(w, r, "userID")
}

func queryLimit(r *http.Request) int {
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 || limit > 200 {
		return defaultPageLimit
	}
	return limit
}
