package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/hemantthp85-ai/Civic-1/internal/auth"
	"github.com/hemantthp85-ai/Civic-1/internal/services"
	"github.com/hemantthp85-ai/Civic-1/internal/store"
	"github.com/hemantthp85-ai/Civic-1/types"
)

const minPasswordLength = 8

// invalidCredentials is the single message for both unknown email and
// wrong password, so responses don't reveal which one failed.
const invalidCredentials = "invalid email or password"

// AuthHandler provides signup, login, logout, and current-user endpoints.
type AuthHandler struct {
	userService *services.UserService
	sessions    *auth.SessionManager
}

// NewAuthHandler constructs an AuthHandler with the provided dependencies.
func NewAuthHandler(userService *services.UserService, sessions *auth.SessionManager) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		sessions:    sessions,
	}
}

// AuthRouter registers auth routes on the given router.
func AuthRouter(r chi.Router, userService *services.UserService, sessions *auth.SessionManager) {
	handler := NewAuthHandler(userService, sessions)

	r.Post("/signup", handler.Signup)
	r.Post("/login", handler.Login)
	r.Post("/logout", handler.Logout)
	r.With(RequireSession(sessions)).Get("/me", handler.Me)
}

// Signup creates a new account and starts a session.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.FullName = strings.TrimSpace(req.FullName)
	if req.Email == "" || req.Password == "" || req.FullName == "" {
		writeError(w, http.StatusBadRequest, "missing required fields")
		return
	}
	if len(req.Password) < minPasswordLength {
		writeError(w, http.StatusBadRequest, "password must be at least 8 characters")
		return
	}
	// Staff roles come from provisioning, not the public signup form.
	if req.Role != "" && types.Role(req.Role) != types.RoleCitizen {
		writeError(w, http.StatusBadRequest, "invalid role")
		return
	}

	if _, err := h.userService.GetByEmail(r.Context(), req.Email); err == nil {
		writeError(w, http.StatusConflict, "user already exists")
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		log.Printf("signup: check existing user: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to create user")
		return
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		log.Printf("signup: hash password: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to create user")
		return
	}

	user, err := h.userService.Create(r.Context(), types.User{
		ID:           uuid.NewString(),
		Email:        req.Email,
		FullName:     req.FullName,
		Phone:        strings.TrimSpace(req.Phone),
		Role:         types.RoleCitizen,
		IsVerified:   true,
		PasswordHash: hashed,
	})
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			writeError(w, http.StatusConflict, "user already exists")
			return
		}
		log.Printf("signup: create user: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to create user")
		return
	}

	if err := h.sessions.Issue(w, user.ID, user.Email, user.Role); err != nil {
		log.Printf("signup: issue session: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to create session")
		return
	}

	writeJSON(w, http.StatusCreated, UserResponse{User: user.Profile()})
}

// Login verifies credentials and starts a session.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password required")
		return
	}

	user, err := h.userService.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusUnauthorized, invalidCredentials)
			return
		}
		log.Printf("login: fetch user: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to authenticate")
		return
	}

	if !auth.VerifyPassword(req.Password, user.PasswordHash) {
		writeError(w, http.StatusUnauthorized, invalidCredentials)
		return
	}

	// Best effort; a failed timestamp update must not block the login.
	if err := h.userService.TouchLastLogin(r.Context(), user.ID); err != nil {
		log.Printf("login: record last login for %s: %v", user.ID, err)
	}

	if err := h.sessions.Issue(w, user.ID, user.Email, user.Role); err != nil {
		log.Printf("login: issue session: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to create session")
		return
	}

	writeJSON(w, http.StatusOK, UserResponse{User: user.Profile()})
}

// Logout clears the session cookie. There is no server-side session
// state to invalidate.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Clear(w)
	writeJSON(w, http.StatusOK, MessageResponse{Message: "logged out"})
}

// Me returns the current authenticated user.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	user, err := h.userService.GetByID(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		log.Printf("me: fetch user: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to load user")
		return
	}

	writeJSON(w, http.StatusOK, UserResponse{User: user.Profile()})
}

type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserResponse struct {
	User types.UserProfile `json:"user"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
