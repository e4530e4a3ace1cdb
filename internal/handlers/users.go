package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"crm-backend/internal/auth"
	"crm-backend/internal/dto"
	"crm-backend/internal/models"
	"crm-backend/internal/repository"
	"crm-backend/internal/utils"
)

// UserHandler handles the /users collection
type UserHandler struct {
	users  UserStore
	logger *zap.Logger
}

// NewUserHandler creates a new UserHandler instance
func NewUserHandler(users UserStore, logger *zap.Logger) *UserHandler {
	return &UserHandler{users: users, logger: logger}
}

// List returns all registered users
// @Summary List users
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.UserResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /users [get]
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		writeRepoError(w, h.logger, err, "")
		return
	}

	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, userResponse(&users[i]))
	}

	utils.WriteJSONResponse(w, http.StatusOK, out)
}

// Create registers a user through the /users collection. Same semantics as
// /auth/register: the password is hashed, never stored or echoed back.
// @Summary Create user
// @Tags users
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "User data"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /users [post]
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Name == "" || req.Email == "" || req.Password == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "name, email and password are required")
		return
	}

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
