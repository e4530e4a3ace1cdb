package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"crm-backend/internal/dto"
	"crm-backend/internal/models"
	"crm-backend/internal/repository"
	"crm-backend/internal/utils"
)

// NoteStore is the persistence surface the note endpoints need
type NoteStore interface {
	List(ctx context.Context, ownerID uuid.UUID, filter repository.NoteFilter, page repository.Page) ([]models.Note, int, error)
	ListByClient(ctx context.Context, ownerID, clientID uuid.UUID) ([]models.Note, error)
	GetByID(ctx context.Context, ownerID, id uuid.UUID) (*models.Note, error)
	Create(ctx context.Context, note *models.Note) error
	Update(ctx context.Context, ownerID, id uuid.UUID, content *string) (*models.Note, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

// NoteHandler handles note CRUD requests
type NoteHandler struct {
	notes  NoteStore
	logger *zap.Logger
}

// NewNoteHandler creates a new NoteHandler instance
func NewNoteHandler(notes NoteStore, logger *zap.Logger) *NoteHandler {
	return &NoteHandler{notes: notes, logger: logger}
}

// List returns the authenticated user's notes, paginated
// @Summary List notes
// @Tags notes
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Param clientId query string false "Filter by client"
// @Param search query string false "Content substring filter"
// @Success 200 {object} dto.ListResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /notes [get]
func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	page, err := parsePage(r)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	filter := repository.NoteFilter{Search: r.URL.Query().Get("search")}
	if raw := r.URL.Query().Get("clientId"); raw != "" {
		clientID, err := uuid.Parse(raw)
		if err != nil {
			utils.WriteErrorResponse(w, http.StatusBadRequest, "invalid clientId parameter")
			return
		}
		filter.ClientID = &clientID
	}

	notes, total, err := h.notes.List(r.Context(), identity.UserID, filter, page)
	if err != nil {
		writeRepoError(w, h.logger, err, "")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.ListResponse{
		Data:     notes,
		Total:    total,
		Page:     page.Number,
		LastPage: page.LastPage(total),
	})
}

// ListByClient returns every note attached to one client, newest first
// @Summary List notes of a client
// @Tags notes
// @Produce json
// @Security BearerAuth
// @Param clientId path string true "Client id"
// @Success 200 {array} models.Note
// @Failure 400 {object} dto.ErrorResponse
// @Router /notes/client/{clientId} [get]
func (h *NoteHandler) ListByClient(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	clientID, err := pathID(r, "clientId")
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "invalid client id")
		return
	}

	notes, err := h.notes.ListByClient(r.Context(), identity.UserID, clientID)
	if err != nil {
		writeRepoError(w, h.logger, err, "")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, notes)
}

// Get returns one of the authenticated user's notes
// @Summary Get note by id
// @Tags notes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Note id"
// @Success 200 {object} models.Note
// @Failure 404 {object} dto.ErrorResponse
// @Router /notes/{id} [get]
func (h *NoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "invalid note id")
		return
	}

	note, err := h.notes.GetByID(r.Context(), identity.UserID, id)
	if err != nil {
		writeRepoError(w, h.logger, err, "note not found")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, note)
}

// Create attaches a new note to a client
// @Summary Create note
// @Tags notes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateNoteRequest true "Note data"
// @Success 200 {object} models.Note
// @Failure 400 {object} dto.ErrorResponse
// @Router /notes [post]
func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req dto.CreateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Content == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "content is required")
		return
	}
	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "invalid clientId")
		return
	}

	note := &models.Note{
		ClientID: clientID,
		UserID:   identity.UserID,
		Content:  req.Content,
	}
	if err := h.notes.Create(r.Context(), note); err != nil {
		writeRepoError(w, h.logger, err, "")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, note)
}

// Update replaces the content of one of the authenticated user's notes
// @Summary Update note
// @Tags notes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Note id"
// @Param request body dto.UpdateNoteRequest true "Fields to change"
// @Success 200 {object} models.Note
// @Failure 404 {object} dto.ErrorResponse
// @Router /notes/{id} [put]
func (h *NoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "invalid note id")
		return
	}

	var req dto.UpdateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	note, err := h.notes.Update(r.Context(), identity.UserID, id, req.Content)
	if err != nil {
		writeRepoError(w, h.logger, err, "note not found")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, note)
}

// Delete removes one of the authenticated user's notes
// @Summary Delete note
// @Tags notes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Note id"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /notes/{id} [delete]
func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "invalid note id")
		return
	}

	if err := h.notes.Delete(r.Context(), identity.UserID, id); err != nil {
		writeRepoError(w, h.logger, err, "note not found")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.MessageResponse{Message: "note deleted"})
}
