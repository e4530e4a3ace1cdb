package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"crm-backend/internal/dto"
	"crm-backend/internal/models"
	"crm-backend/internal/repository"
	"crm-backend/internal/utils"
)

// ClientStore is the persistence surface the client endpoints need
type ClientStore interface {
	List(ctx context.Context, ownerID uuid.UUID, filter repository.ClientFilter, page repository.Page) ([]models.Client, int, error)
	GetByID(ctx context.Context, ownerID, id uuid.UUID) (*models.Client, error)
	Create(ctx context.Context, client *models.Client) error
	Update(ctx context.Context, ownerID, id uuid.UUID, upd repository.ClientUpdate) (*models.Client, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

// ClientHandler handles client CRUD requests
type ClientHandler struct {
	clients ClientStore
	logger  *zap.Logger
}

// NewClientHandler creates a new ClientHandler instance
func NewClientHandler(clients ClientStore, logger *zap.Logger) *ClientHandler {
	return &ClientHandler{clients: clients, logger: logger}
}

func pathID(r *http.Request, key string) (uuid.UUID, error) {
	return uuid.Parse(mux.Vars(r)[key])
}

// List returns the authenticated user's clients, paginated
// @Summary List clients
// @Tags clients
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Param search query string false "Name substring filter"
// @Success 200 {object} dto.ListResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /clients [get]
func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	page, err := parsePage(r)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	filter := repository.ClientFilter{Search: r.URL.Query().Get("search")}

	clients, total, err := h.clients.List(r.Context(), identity.UserID, filter, page)
	if err != nil {
		writeRepoError(w, h.logger, err, "")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.ListResponse{
		Data:     clients,
		Total:    total,
		Page:     page.Number,
		LastPage: page.LastPage(total),
	})
}

// Get returns one of the authenticated user's clients
// @Summary Get client by id
// @Tags clients
// @Produce json
// @Security BearerAuth
// @Param id path string true "Client id"
// @Success 200 {object} models.Client
// @Failure 404 {object} dto.ErrorResponse
// @Router /clients/{id} [get]
func (h *ClientHandler) Get(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "invalid client id")
		return
	}

	client, err := h.clients.GetByID(r.Context(), identity.UserID, id)
	if err != nil {
		writeRepoError(w, h.logger, err, "client not found")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, client)
}

// Create registers a new client owned by the authenticated user
// @Summary Create client
// @Tags clients
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateClientRequest true "Client data"
// @Success 200 {object} models.Client
// @Failure 400 {object} dto.ErrorResponse
// @Router /clients [post]
func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req dto.CreateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}

	var birthday *time.Time
	if req.Birthday != nil && *req.Birthday != "" {
		parsed, err := parseDate(*req.Birthday)
		if err != nil {
			utils.WriteErrorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		birthday = &parsed
	}

	// Owner is always the authenticated identity, never a body field
	client := &models.Client{
		Name:     req.Name,
		Phone:    req.Phone,
		Email:    req.Email,
		Birthday: birthday,
		Notes:    req.Notes,
		UserID:   identity.UserID,
	}
	if err := h.clients.Create(r.Context(), client); err != nil {
		writeRepoError(w, h.logger, err, "")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, client)
}

// Update applies a partial update to one of the authenticated user's clients
// @Summary Update client
// @Tags clients
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Client id"
// @Param request body dto.UpdateClientRequest true "Fields to change"
// @Success 200 {object} models.Client
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /clients/{id} [put]
func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "invalid client id")
		return
	}

	var req dto.UpdateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	upd := repository.ClientUpdate{
		Name:  req.Name,
		Phone: req.Phone,
		Email: req.Email,
		Notes: req.Notes,
	}
	if req.Birthday != nil && *req.Birthday != "" {
		parsed, err := parseDate(*req.Birthday)
		if err != nil {
			utils.WriteErrorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		upd.Birthday = &parsed
	}

	client, err := h.clients.Update(r.Context(), identity.UserID, id, upd)
	if err != nil {
		writeRepoError(w, h.logger, err, "client not found")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, client)
}

// Delete removes one of the authenticated user's clients
// @Summary Delete client
// @Tags clients
// @Produce json
// @Security BearerAuth
// @Param id path string true "Client id"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /clients/{id} [delete]
func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "invalid client id")
		return
	}

	if err := h.clients.Delete(r.Context(), identity.UserID, id); err != nil {
		writeRepoError(w, h.logger, err, "client not found")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.MessageResponse{Message: "client deleted"})
}
