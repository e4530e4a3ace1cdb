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

// SaleStore is the persistence surface the sale endpoints need
type SaleStore interface {
	List(ctx context.Context, ownerID uuid.UUID, filter repository.SaleFilter, page repository.Page) ([]models.Sale, int, error)
	GetByID(ctx context.Context, ownerID, id uuid.UUID) (*models.Sale, error)
	Create(ctx context.Context, sale *models.Sale) error
	Update(ctx context.Context, ownerID, id uuid.UUID, upd repository.SaleUpdate) (*models.Sale, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

// SaleHandler handles sale CRUD requests
type SaleHandler struct {
	sales  SaleStore
	logger *zap.Logger
}

// NewSaleHandler creates a new SaleHandler instance
func NewSaleHandler(sales SaleStore, logger *zap.Logger) *SaleHandler {
	return &SaleHandler{sales: sales, logger: logger}
}

func saleFilterFromQuery(r *http.Request) (repository.SaleFilter, error) {
	filter := repository.SaleFilter{}

	if raw := r.URL.Query().Get("clientId"); raw != "" {
		clientID, err := uuid.Parse(raw)
		if err != nil {
			return filter, errInvalidParam("clientId")
		}
		filter.ClientID = &clientID
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

// List returns the authenticated user's sales, paginated, most recent first
// @Summary List sales
// @Tags sales
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Param clientId query string false "Filter by client"
// @Param dateFrom query string false "Earliest sale date (YYYY-MM-DD)"
// @Param dateTo query string false "Latest sale date (YYYY-MM-DD)"
// @Success 200 {object} dto.ListResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /sales [get]
func (h *SaleHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	page, err := parsePage(r)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	filter, err := saleFilterFromQuery(r)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	sales, total, err := h.sales.List(r.Context(), identity.UserID, filter, page)
	if err != nil {
		writeRepoError(w, h.logger, err, "")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.ListResponse{
		Data:     sales,
		Total:    total,
		Page:     page.Number,
		LastPage: page.LastPage(total),
	})
}

// Get returns one of the authenticated user's sales
// @Summary Get sale by id
// @Tags sales
// @Produce json
// @Security BearerAuth
// @Param id path string true "Sale id"
// @Success 200 {object} models.Sale
// @Failure 404 {object} dto.ErrorResponse
// @Router /sales/{id} [get]
func (h *SaleHandler) Get(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "invalid sale id")
		return
	}

	sale, err := h.sales.GetByID(r.Context(), identity.UserID, id)
	if err != nil {
		writeRepoError(w, h.logger, err, "sale not found")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, sale)
}

// Create logs a new sale for the authenticated user
// @Summary Create sale
// @Tags sales
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateSaleRequest true "Sale data"
// @Success 200 {object} models.Sale
// @Failure 400 {object} dto.ErrorResponse
// @Router /sales [post]
func (h *SaleHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req dto.CreateSaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Description == "" || req.Date == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "description and date are required")
		return
	}

	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "invalid clientId")
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	sale := &models.Sale{
		ClientID:    clientID,
		UserID:      identity.UserID,
		Description: req.Description,
		Value:       req.Value,
		Date:        date,
	}
	if err := h.sales.Create(r.Context(), sale); err != nil {
		writeRepoError(w, h.logger, err, "")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, sale)
}

// Update applies a partial update to one of the authenticated user's sales
// @Summary Update sale
// @Tags sales
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Sale id"
// @Param request body dto.UpdateSaleRequest true "Fields to change"
// @Success 200 {object} models.Sale
// @Failure 404 {object} dto.ErrorResponse
// @Router /sales/{id} [put]
func (h *SaleHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "invalid sale id")
		return
	}

	var req dto.UpdateSaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	upd := repository.SaleUpdate{
		Description: req.Description,
		Value:       req.Value,
	}
	if req.Date != nil && *req.Date != "" {
		date, err := parseDate(*req.Date)
		if err != nil {
			utils.WriteErrorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		upd.Date = &date
	}

	sale, err := h.sales.Update(r.Context(), identity.UserID, id, upd)
	if err != nil {
		writeRepoError(w, h.logger, err, "sale not found")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, sale)
}

// Delete removes one of the authenticated user's sales
// @Summary Delete sale
// @Tags sales
// @Produce json
// @Security BearerAuth
// @Param id path string true "Sale id"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /sales/{id} [delete]
func (h *SaleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "invalid sale id")
		return
	}

	if err := h.sales.Delete(r.Context(), identity.UserID, id); err != nil {
		writeRepoError(w, h.logger, err, "sale not found")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.MessageResponse{Message: "sale deleted"})
}
