package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"crm-backend/internal/models"
	"crm-backend/internal/repository"
)

type fakeReminderStore struct {
	byID map[uuid.UUID]*models.Reminder

	gotOwnerID uuid.UUID
	gotFilter  repository.ReminderFilter
}

func newFakeReminderStore() *fakeReminderStore {
	return &fakeReminderStore{byID: map[uuid.UUID]*models.Reminder{}}
}

func (s *fakeReminderStore) List(ctx context.Context, ownerID uuid.UUID, filter repository.ReminderFilter, page repository.Page) ([]models.Reminder, int, error) {
	s.gotOwnerID = ownerID
	s.gotFilter = filter

	out := []models.Reminder{}
	for _, rem := range s.byID {
		if rem.UserID == ownerID {
			out = append(out, *rem)
		}
	}
	return out, len(out), nil
}

func (s *fakeReminderStore) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*models.Reminder, error) {
	s.gotOwnerID = ownerID
	rem, ok := s.byID[id]
	if !ok || rem.UserID != ownerID {
		return nil, repository.ErrNotFound
	}
	return rem, nil
}

func (s *fakeReminderStore) Create(ctx context.Context, reminder *models.Reminder) error {
	reminder.ID = uuid.New()
	reminder.Done = false
	s.byID[reminder.ID] = reminder
	return nil
}

func (s *fakeReminderStore) Update(ctx context.Context, ownerID, id uuid.UUID, upd repository.ReminderUpdate) (*models.Reminder, error) {
	rem, err := s.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if upd.Done != nil {
		rem.Done = *upd.Done
	}
	if upd.Type != nil {
		rem.Type = *upd.Type
	}
	return rem, nil
}

func (s *fakeReminderStore) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if _, err := s.GetByID(ctx, ownerID, id); err != nil {
		return err
	}
	delete(s.byID, id)
	return nil
}

func TestReminderList_FilterPassthrough(t *testing.T) {
	store := newFakeReminderStore()
	h := NewReminderHandler(store, zap.NewNop())

	me := testIdentity()
	rec := httptest.NewRecorder()
	h.List(rec, authedRequest(http.MethodGet,
		"/api/reminders?type=call&done=true&dateFrom=2024-03-01&dateTo=2024-03-31", me, nil))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, me.UserID, store.gotOwnerID)
	assert.Equal(t, "call", store.gotFilter.Type)
	require.NotNil(t, store.gotFilter.Done)
	assert.True(t, *store.gotFilter.Done)
	require.NotNil(t, store.gotFilter.DateFrom)
	assert.Equal(t, "2024-03-01", store.gotFilter.DateFrom.Format("2006-01-02"))
	require.NotNil(t, store.gotFilter.DateTo)
	assert.Equal(t, "2024-03-31", store.gotFilter.DateTo.Format("2006-01-02"))
}

func TestReminderList_BadDoneParam(t *testing.T) {
	h := NewReminderHandler(newFakeReminderStore(), zap.NewNop())

	rec := httptest.NewRecorder()
	h.List(rec, authedRequest(http.MethodGet, "/api/reminders?done=maybe", testIdentity(), nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"invalid done parameter"}`, rec.Body.String())
}

func TestReminderList_BadDateParam(t *testing.T) {
	h := NewReminderHandler(newFakeReminderStore(), zap.NewNop())

	rec := httptest.NewRecorder()
	h.List(rec, authedRequest(http.MethodGet, "/api/reminders?dateFrom=31-03-2024", testIdentity(), nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReminderCreate(t *testing.T) {
	store := newFakeReminderStore()
	h := NewReminderHandler(store, zap.NewNop())

	me := testIdentity()
	clientID := uuid.New()

	rec := httptest.NewRecorder()
	h.Create(rec, authedJSON(http.MethodPost, "/api/reminders",
		`{"type":"call","description":"follow up","date":"2024-04-01","clientId":"`+clientID.String()+`"}`,
		me, nil))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var created models.Reminder
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "call", created.Type)
	assert.Equal(t, me.UserID, created.UserID)
	require.NotNil(t, created.ClientID)
	assert.Equal(t, clientID, *created.ClientID)
	// New reminders always start pending
	assert.False(t, created.Done)
	assert.Equal(t, time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC), created.Date)
}

func TestReminderCreate_RequiresTypeAndDate(t *testing.T) {
	h := NewReminderHandler(newFakeReminderStore(), zap.NewNop())

	for _, body := range []string{
		`{"description":"no type or date"}`,
		`{"type":"call"}`,
		`{"date":"2024-04-01"}`,
	} {
		rec := httptest.NewRecorder()
		h.Create(rec, authedJSON(http.MethodPost, "/api/reminders", body, testIdentity(), nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body %s", body)
	}
}

func TestReminderCreate_InvalidClientID(t *testing.T) {
	h := NewReminderHandler(newFakeReminderStore(), zap.NewNop())

	rec := httptest.NewRecorder()
	h.Create(rec, authedJSON(http.MethodPost, "/api/reminders",
		`{"type":"call","date":"2024-04-01","clientId":"nope"}`, testIdentity(), nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"invalid clientId"}`, rec.Body.String())
}

func TestReminderUpdate_MarkDone(t *testing.T) {
	store := newFakeReminderStore()
	h := NewReminderHandler(store, zap.NewNop())

	me := testIdentity()
	rem := &models.Reminder{ID: uuid.New(), Type: "call", Date: time.Now(), UserID: me.UserID}
	store.byID[rem.ID] = rem

	rec := httptest.NewRecorder()
	h.Update(rec, authedJSON(http.MethodPut, "/api/reminders/"+rem.ID.String(),
		`{"done":true}`, me, map[string]string{"id": rem.ID.String()}))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var updated models.Reminder
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.True(t, updated.Done)
	assert.Equal(t, "call", updated.Type)
}

func TestReminderDelete_NotOwnedIs404(t *testing.T) {
	store := newFakeReminderStore()
	h := NewReminderHandler(store, zap.NewNop())

	other := testIdentity()
	rem := &models.Reminder{ID: uuid.New(), Type: "call", UserID: other.UserID}
	store.byID[rem.ID] = rem

	rec := httptest.NewRecorder()
	h.Delete(rec, authedRequest(http.MethodDelete, "/api/reminders/"+rem.ID.String(), testIdentity(),
		map[string]string{"id": rem.ID.String()}))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"reminder not found"}`, rec.Body.String())
}
