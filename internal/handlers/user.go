package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"lostfound-backend/internal/models"
	"lostfound-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// UserHandler handles user-related HTTP requests
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// SignupRequest represents the request body for signup
type SignupRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	DateOfBirth string `json:"date_of_birth"`
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse represents a successful auth response
type AuthResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// Signup handles POST /api/v1/users/signup
func (h *UserHandler) Signup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, token, err := h.userService.Signup(ctx, req.Name, req.Email, req.Password, req.DateOfBirth)
	if err != nil {
		log.Error().Err(err).Str("email", req.Email).Msg("Failed to sign up user")

		statusCode := http.StatusBadRequest
		if err.Error() == "user with this email already exists" {
			statusCode = http.StatusConflict
		} else if strings.Contains(err.Error(), "failed to") {
			statusCode = http.StatusInternalServerError
		}

		respondError(w, err.Error(), statusCode)
		return
	}

	log.Info().
		Str("user_id", user.ID).
		Str("email", user.Email).
		Msg("User created")

	respondJSON(w, AuthResponse{User: user, Token: token}, http.StatusCreated)
}

// Login handles POST /api/v1/users/signin
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, token, err := h.userService.Login(ctx, req.Email, req.Password)
	if err != nil {
		log.Error().Err(err).Str("email", req.Email).Msg("Failed to log in user")

		statusCode := http.StatusUnauthorized
		if strings.Contains(err.Error(), "failed to") {
			statusCode = http.StatusInternalServerError
		}

		respondError(w, err.Error(), statusCode)
		return
	}

	log.Info().Str("user_id", user.ID).Msg("User logged in")

	respondJSON(w, AuthResponse{User: user, Token: token}, http.StatusOK)
}
