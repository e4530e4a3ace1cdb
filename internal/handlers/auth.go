package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"crm-backend/internal/auth"
	"crm-backend/internal/dto"
	"crm-backend/internal/models"
	"crm-backend/internal/repository"
	"crm-backend/internal/utils"
)

// UserStore is the persistence surface the auth endpoints need
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
}

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	users     UserStore
	jwtSecret string
	logger    *zap.Logger
}

// NewAuthHandler creates a new AuthHandler instance
func NewAuthHandler(users UserStore, jwtSecret string, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{users: users, jwtSecret: jwtSecret, logger: logger}
}

func userResponse(user *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        user.ID.String(),
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	}
}

// Register handles user registration
// @Summary Register a new user
// @Description Create a new user account with name, email, and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "User registration data"
// @Success 200 {object} dto.UserResponse "User created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data or email taken"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Name == "" || req.Email == "" || req.Password == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "name, email and password are required")
		return
	}

	// Duplicate email check; the unique index backs this up under races
	_, err := h.users.GetByEmail(r.Context(), req.Email)
	if err == nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "email already registered")
		return
	}
	if !errors.Is(err, repository.ErrNotFound) {
		writeRepoError(w, h.logger, err, "")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.logger.Error("password hashing failed", zap.Error(err))
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "internal server error")
		return
	}

	user := &models.User{Name: req.Name, Email: req.Email, PasswordHash: hash}
	if err := h.users.Create(r.Context(), user); err != nil {
		writeRepoError(w, h.logger, err, "")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, userResponse(user))
}

// Login handles user login
// @Summary Login user
// @Description Authenticate with email and password, returns a session token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.AuthResponse "Login successful"
// @Failure 400 {object} dto.ErrorResponse "Unknown email or wrong password"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Email == "" || req.Password == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "email and password are required")
		return
	}

	user, err := h.users.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.WriteErrorResponse(w, http.StatusBadRequest, "user not found")
			return
		}
		writeRepoError(w, h.logger, err, "")
		return
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "incorrect password")
		return
	}

	token, err := auth.GenerateToken(user.ID, user.Name, user.Email, h.jwtSecret)
	if err != nil {
		h.logger.Error("token generation failed", zap.Error(err))
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "internal server error")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.AuthResponse{
		Token: token,
		User: dto.UserResponse{
			ID:    user.ID.String(),
			Name:  user.Name,
			Email: user.Email,
		},
	})
}
