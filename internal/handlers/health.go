package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"crm-backend/internal/dto"
	"crm-backend/internal/utils"
)

// HealthHandler handles health check related requests
type HealthHandler struct {
	db *sql.DB
}

// NewHealthHandler creates a new HealthHandler instance
func NewHealthHandler(db *sql.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Root serves the plain-text liveness response on /
func (h *HealthHandler) Root(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("CRM API is running."))
}

// HealthCheck handles basic health check (no database)
func (h *HealthHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSONResponse(w, http.StatusOK, dto.HealthResponse{Status: "ok"})
}

// ReadinessCheck handles readiness check (includes database connectivity)
func (h *HealthHandler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		utils.WriteJSONResponse(w, http.StatusServiceUnavailable, dto.HealthResponse{
			Status:  "degraded",
			Details: map[string]any{"db": "unreachable"},
		})
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.HealthResponse{
		Status:  "ready",
		Details: map[string]any{"db": "ok"},
	})
}
