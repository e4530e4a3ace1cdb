package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"crm-backend/internal/repository"
)

type fakeDashboardStore struct {
	summary *repository.Summary
	err     error

	gotOwnerID uuid.UUID
	gotNow     time.Time
}

func (s *fakeDashboardStore) Summarize(ctx context.Context, ownerID uuid.UUID, now time.Time) (*repository.Summary, error) {
	s.gotOwnerID = ownerID
	s.gotNow = now
	if s.err != nil {
		return nil, s.err
	}
	return s.summary, nil
}

func TestDashboardSummary(t *testing.T) {
	birthdayID := uuid.New()
	store := &fakeDashboardStore{
		summary: &repository.Summary{
			TotalClients:   3,
			TotalSales:     5,
			TotalNotes:     1,
			TotalReminders: 2,
			SalesThisMonth: 99.5,
			BirthdaysThisMonth: []repository.BirthdayEntry{
				{ID: birthdayID, Name: "Bob", Birthday: time.Date(1990, time.March, 9, 0, 0, 0, 0, time.UTC)},
			},
		},
	}
	h := NewDashboardHandler(store, zap.NewNop())
	fixedNow := time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)
	h.now = func() time.Time { return fixedNow }

	me := testIdentity()
	rec := httptest.NewRecorder()
	h.Summary(rec, authedRequest(http.MethodGet, "/api/dashboard", me, nil))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, me.UserID, store.gotOwnerID)
	assert.Equal(t, fixedNow, store.gotNow)

	assert.JSONEq(t, `{
		"totalClients": 3,
		"totalSales": 5,
		"totalNotes": 1,
		"totalReminders": 2,
		"salesThisMonth": 99.5,
		"birthdaysThisMonth": [
			{"id": "`+birthdayID.String()+`", "name": "Bob", "birthday": "1990-03-09"}
		]
	}`, rec.Body.String())
}

func TestDashboardSummary_EmptyBirthdaysIsArray(t *testing.T) {
	store := &fakeDashboardStore{summary: &repository.Summary{}}
	h := NewDashboardHandler(store, zap.NewNop())

	rec := httptest.NewRecorder()
	h.Summary(rec, authedRequest(http.MethodGet, "/api/dashboard", testIdentity(), nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"birthdaysThisMonth":[]`)
	assert.Contains(t, rec.Body.String(), `"salesThisMonth":0`)
}

func TestDashboardSummary_StoreFailure(t *testing.T) {
	store := &fakeDashboardStore{err: errors.New("db down")}
	h := NewDashboardHandler(store, zap.NewNop())

	rec := httptest.NewRecorder()
	h.Summary(rec, authedRequest(http.MethodGet, "/api/dashboard", testIdentity(), nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	// Internal detail never leaks to the client
	assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "db down")
}

func TestDashboardSummary_Unauthenticated(t *testing.T) {
	h := NewDashboardHandler(&fakeDashboardStore{}, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
	rec := httptest.NewRecorder()
	h.Summary(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
