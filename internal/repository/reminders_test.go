package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crm-backend/internal/models"
)

func newReminderRepoWithMock(t *testing.T) (*ReminderRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewReminderRepository(db), mock, db
}

func reminderRow(id, ownerID uuid.UUID, reminderType string, date time.Time) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "type", "description", "date", "done", "client_id", "user_id", "created_at"}).
		AddRow(id, reminderType, nil, date, false, nil, ownerID, time.Now())
}

func TestReminderList_CombinedFilters(t *testing.T) {
	repo, mock, db := newReminderRepoWithMock(t)
	defer db.Close()

	ownerID := uuid.New()
	done := false
	from := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC)

	// Predicates are appended in declaration order with positional args
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM reminders WHERE user_id = \$1 AND type = \$2 AND done = \$3 AND date >= \$4 AND date <= \$5`).
		WithArgs(ownerID, "call", false, from, to).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT .+ FROM reminders WHERE user_id = \$1 AND type = \$2 AND done = \$3 AND date >= \$4 AND date <= \$5 ORDER BY date ASC LIMIT \$6 OFFSET \$7`).
		WithArgs(ownerID, "call", false, from, to, 10, 0).
		WillReturnRows(reminderRow(uuid.New(), ownerID, "call", from.AddDate(0, 0, 8)))

	filter := ReminderFilter{Type: "call", Done: &done, DateFrom: &from, DateTo: &to}
	reminders, total, err := repo.List(context.Background(), ownerID, filter, NewPage(1, 10))
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, reminders, 1)
	assert.Equal(t, "call", reminders[0].Type)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReminderList_NoFilters(t *testing.T) {
	repo, mock, db := newReminderRepoWithMock(t)
	defer db.Close()

	ownerID := uuid.New()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM reminders WHERE user_id = \$1`).
		WithArgs(ownerID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`SELECT .+ FROM reminders WHERE user_id = \$1 ORDER BY date ASC LIMIT \$2 OFFSET \$3`).
		WithArgs(ownerID, 10, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "type", "description", "date", "done", "client_id", "user_id", "created_at"}))

	reminders, total, err := repo.List(context.Background(), ownerID, ReminderFilter{}, NewPage(1, 10))
	require.NoError(t, err)
	assert.Equal(t, 0, total)
	assert.NotNil(t, reminders)
}

func TestReminderCreate_StartsNotDone(t *testing.T) {
	repo, mock, db := newReminderRepoWithMock(t)
	defer db.Close()

	ownerID := uuid.New()

	mock.ExpectExec(`INSERT INTO reminders`).
		WithArgs(sqlmock.AnyArg(), "call", nil, sqlmock.AnyArg(), false, nil, ownerID, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	reminder := &models.Reminder{Type: "call", Date: time.Now(), Done: true, UserID: ownerID}
	require.NoError(t, repo.Create(context.Background(), reminder))

	// Done is forced off on insert regardless of the input value
	assert.False(t, reminder.Done)
	assert.NotEqual(t, uuid.Nil, reminder.ID)
}
