package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/aakash391999/ExamSphare-sub000/internal/models"
	"github.com/aakash391999/ExamSphare-sub000/internal/security"
	"github.com/aakash391999/ExamSphare-sub000/internal/service"
	"github.com/aakash391999/ExamSphare-sub000/internal/validation"
)

// AuthHandler handles registration, login and logout
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Bio   string `json:"bio"`
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{ID: u.ID, Email: u.Email, Name: u.Name, Bio: u.Bio}
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeBody(w, r, &req) {
		return
	}

	user, err := h.authService.Register(req.Email, req.Password, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailTaken):
			respondError(w, http.StatusConflict, "email already taken", "", nil)
		case errors.Is(err, validation.ErrInvalidEmail),
			errors.Is(err, validation.ErrPasswordLength),
			errors.Is(err, validation.ErrNameLength):
			respondError(w, http.StatusBadRequest, err.Error(), "", nil)
		default:
			respondError(w, http.StatusInternalServerError, "registration failed", "Failed to register user", err)
		}
		return
	}

	respondJSON(w, http.StatusCreated, toUserResponse(user))
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	user, sessionID, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondError(w, http.StatusUnauthorized, "invalid email or password", "", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "login failed", "Failed to log in", err)
		return
	}

	expires := time.Now().Add(h.authService.SessionDuration())
	http.SetCookie(w, security.CreateSessionCookie(r, SessionCookieName, sessionID, expires))
	respondJSON(w, http.StatusOK, toUserResponse(user))
}

// Logout handles POST /api/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		h.authService.Logout(cookie.Value)
	}
	http.SetCookie(w, security.CreateDeleteCookie(r, SessionCookieName))
	respondJSON(w, http.StatusOK, nil)
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	respondJSON(w, http.StatusOK, toUserResponse(user))
}

type updateProfileRequest struct {
	Name string `json:"name"`
	Bio  string `json:"bio"`
}

// UpdateProfile handles PATCH /api/auth/me
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	var req updateProfileRequest
	if !decodeBody(w, r, &req) {
		return
	}

	updated, err := h.authService.UpdateProfile(user.ID, req.Name, req.Bio)
	if err != nil {
		if errors.Is(err, validation.ErrNameLength) {
			respondError(w, http.StatusBadRequest, err.Error(), "", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to update profile", "Failed to update profile", err)
		return
	}
	respondJSON(w, http.StatusOK, toUserResponse(updated))
}
