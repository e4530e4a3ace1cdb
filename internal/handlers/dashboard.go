package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"crm-backend/internal/dto"
	"crm-backend/internal/repository"
	"crm-backend/internal/utils"
)

// DashboardStore is the aggregation surface the dashboard endpoint needs
type DashboardStore interface {
	Summarize(ctx context.Context, ownerID uuid.UUID, now time.Time) (*repository.Summary, error)
}

// DashboardHandler serves the aggregated per-user summary
type DashboardHandler struct {
	dashboard DashboardStore
	logger    *zap.Logger
	now       func() time.Time
}

// NewDashboardHandler creates a new DashboardHandler instance
func NewDashboardHandler(dashboard DashboardStore, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, logger: logger, now: time.Now}
}

// Summary returns the authenticated user's dashboard for the current month
// @Summary Dashboard summary
// @Description Totals per entity plus current-month revenue and birthdays
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.DashboardResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/dashboard [get]
func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	summary, err := h.dashboard.Summarize(r.Context(), identity.UserID, h.now())
	if err != nil {
		writeRepoError(w, h.logger, err, "")
		return
	}

	birthdays := make([]dto.BirthdayClient, 0, len(summary.BirthdaysThisMonth))
	for _, entry := range summary.BirthdaysThisMonth {
		birthdays = append(birthdays, dto.BirthdayClient{
			ID:       entry.ID.String(),
			Name:     entry.Name,
			Birthday: entry.Birthday.Format("2006-01-02"),
		})
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.DashboardResponse{
		TotalClients:       summary.TotalClients,
		TotalSales:         summary.TotalSales,
		TotalNotes:         summary.TotalNotes,
		TotalReminders:     summary.TotalReminders,
		SalesThisMonth:     summary.SalesThisMonth,
		BirthdaysThisMonth: birthdays,
	})
}
