package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"crm-backend/internal/dto"
	"crm-backend/internal/models"
	"crm-backend/internal/repository"
	"crm-backend/internal/utils"
)

// ReminderStore is the persistence surface the reminder endpoints need
type ReminderStore interface {
	List(ctx context.Context, ownerID uuid.UUID, filter repository.ReminderFilter, page repository.Page) ([]models.Reminder, int, error)
	GetByID(ctx context.Context, ownerID, id uuid.UUID) (*models.Reminder, error)
	Create(ctx context.Context, reminder *models.Reminder) error
	Update(ctx context.Context, ownerID, id uuid.UUID, upd repository.ReminderUpdate) (*models.Reminder, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

// ReminderHandler handles reminder CRUD requests
type ReminderHandler struct {
	reminders ReminderStore
	logger    *zap.Logger
}

// NewReminderHandler creates a new ReminderHandler instance
func NewReminderHandler(reminders ReminderStore, logger *zap.Logger) *ReminderHandler {
	return &ReminderHandler{reminders: reminders, logger: logger}
}

func reminderFilterFromQuery(r *http.Request) (repository.ReminderFilter, error) {
	filter := repository.ReminderFilter{Type: r.URL.Query().Get("type")}

	if raw := r.URL.Query().Get("done"); raw != "" {
		done, err := strconv.ParseBool(raw)
		if err != nil {
			return filter, errInvalidParam("done")
		}
		filter.Done = &done
	}
	if raw := r.URL.Query().Get("dateFrom"); raw != "" {
		from, err := parseDate(raw)
		if err != nil {
			return filter, err
		}
		filter.DateFrom = &from
	}
	if raw := r.URL.Query().Get("dateTo"); raw != "" {
		to, err := parseDate(raw)
		if err != nil {
			return filter, err
		}
		filter.DateTo = &to
	}

	return filter, nil
}

// List returns the authenticated user's reminders, paginated, upcoming first
// @Summary List reminders
// @Tags reminders
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Param type query string false "Reminder type filter"
// @Param done query bool false "Done flag filter"
// @Param dateFrom query string false "Earliest date (YYYY-MM-DD)"
// @Param dateTo query string false "Latest date (YYYY-MM-DD)"
// @Success 200 {object} dto.ListResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/reminders [get]
func (h *ReminderHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	page, err := parsePage(r)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	filter, err := reminderFilterFromQuery(r)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	reminders, total, err := h.reminders.List(r.Context(), identity.UserID, filter, page)
	if err != nil {
		writeRepoError(w, h.logger, err, "")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.ListResponse{
		Data:     reminders,
		Total:    total,
		Page:     page.Number,
		LastPage: page.LastPage(total),
	})
}

// Get returns one of the authenticated user's reminders
// @Summary Get reminder by id
// @Tags reminders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reminder id"
// @Success 200 {object} models.Reminder
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/reminders/{id} [get]
func (h *ReminderHandler) Get(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "invalid reminder id")
		return
	}

	reminder, err := h.reminders.GetByID(r.Context(), identity.UserID, id)
	if err != nil {
		writeRepoError(w, h.logger, err, "reminder not found")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, reminder)
}

// Create registers a new reminder for the authenticated user
// @Summary Create reminder
// @Tags reminders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateReminderRequest true "Reminder data"
// @Success 200 {object} models.Reminder
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/reminders [post]
func (h *ReminderHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req dto.CreateReminderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Type == "" || req.Date == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "type and date are required")
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	var clientID *uuid.UUID
	if req.ClientID != nil && *req.ClientID != "" {
		parsed, err := uuid.Parse(*req.ClientID)
		if err != nil {
			utils.WriteErrorResponse(w, http.StatusBadRequest, "invalid clientId")
			return
		}
		clientID = &parsed
	}

	reminder := &models.Reminder{
		Type:        req.Type,
		Description: req.Description,
		Date:        date,
		ClientID:    clientID,
		UserID:      identity.UserID,
	}
	if err := h.reminders.Create(r.Context(), reminder); err != nil {
		writeRepoError(w, h.logger, err, "")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, reminder)
}

// Update applies a partial update to one of the authenticated user's
// reminders
// @Summary Update reminder
// @Tags reminders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reminder id"
// @Param request body dto.UpdateReminderRequest true "Fields to change"
// @Success 200 {object} models.Reminder
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/reminders/{id} [put]
func (h *ReminderHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "invalid reminder id")
		return
	}

	var req dto.UpdateReminderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	upd := repository.ReminderUpdate{
		Type:        req.Type,
		Description: req.Description,
		Done:        req.Done,
	}
	if req.Date != nil && *req.Date != "" {
		date, err := parseDate(*req.Date)
		if err != nil {
			utils.WriteErrorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		upd.Date = &date
	}
	if req.ClientID != nil && *req.ClientID != "" {
		clientID, err := uuid.Parse(*req.ClientID)
		if err != nil {
			utils.WriteErrorResponse(w, http.StatusBadRequest, "invalid clientId")
			return
		}
		upd.ClientID = &clientID
	}

	reminder, err := h.reminders.Update(r.Context(), identity.UserID, id, upd)
	if err != nil {
		writeRepoError(w, h.logger, err, "reminder not found")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, reminder)
}

// Delete removes one of the authenticated user's reminders
// @Summary Delete reminder
// @Tags reminders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reminder id"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/reminders/{id} [delete]
func (h *ReminderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "invalid reminder id")
		return
	}

	if err := h.reminders.Delete(r.Context(), identity.UserID, id); err != nil {
		writeRepoError(w, h.logger, err, "reminder not found")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.MessageResponse{Message: "reminder deleted"})
}
