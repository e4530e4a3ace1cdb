package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDashboardRepoWithMock(t *testing.T) (*DashboardRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	// Summarize fans out concurrently, so arrival order is unspecified
	mock.MatchExpectationsInOrder(false)
	return NewDashboardRepository(db), mock, db
}

func countRows(n int) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"count"}).AddRow(n)
}

func TestSummarize(t *testing.T) {
	repo, mock, db := newDashboardRepoWithMock(t)
	defer db.Close()

	ownerID := uuid.New()
	now := time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)
	firstOfMonth := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	firstOfNext := time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM clients WHERE user_id = \$1`).
		WithArgs(ownerID).WillReturnRows(countRows(4))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM sales WHERE user_id = \$1`).
		WithArgs(ownerID).WillReturnRows(countRows(7))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM notes WHERE user_id = \$1`).
		WithArgs(ownerID).WillReturnRows(countRows(2))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM reminders WHERE user_id = \$1`).
		WithArgs(ownerID).WillReturnRows(countRows(9))
	mock.ExpectQuery(`SELECT COALESCE\(SUM\(value\), 0\) FROM sales WHERE user_id = \$1 AND date >= \$2 AND date < \$3`).
		WithArgs(ownerID, firstOfMonth, firstOfNext).
		WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(1234.5))
	mock.ExpectQuery(`SELECT id, name, birthday FROM clients`).
		WithArgs(ownerID, 3).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "birthday"}).
			AddRow(uuid.New(), "Bob", time.Date(1990, time.March, 9, 0, 0, 0, 0, time.UTC)))

	summary, err := repo.Summarize(context.Background(), ownerID, now)
	require.NoError(t, err)

	assert.Equal(t, 4, summary.TotalClients)
	assert.Equal(t, 7, summary.TotalSales)
	assert.Equal(t, 2, summary.TotalNotes)
	assert.Equal(t, 9, summary.TotalReminders)
	assert.Equal(t, 1234.5, summary.SalesThisMonth)
	require.Len(t, summary.BirthdaysThisMonth, 1)
	assert.Equal(t, "Bob", summary.BirthdaysThisMonth[0].Name)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSummarize_EmptyMonth(t *testing.T) {
	repo, mock, db := newDashboardRepoWithMock(t)
	defer db.Close()

	ownerID := uuid.New()
	now := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM clients`).WillReturnRows(countRows(0))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM sales WHERE`).WillReturnRows(countRows(0))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM notes`).WillReturnRows(countRows(0))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM reminders`).WillReturnRows(countRows(0))
	mock.ExpectQuery(`SELECT COALESCE\(SUM\(value\), 0\) FROM sales`).
		WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(0.0))
	mock.ExpectQuery(`SELECT id, name, birthday FROM clients`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "birthday"}))

	summary, err := repo.Summarize(context.Background(), ownerID, now)
	require.NoError(t, err)

	// A month with no sales sums to zero, never null or an error
	assert.Equal(t, 0.0, summary.SalesThisMonth)
	assert.NotNil(t, summary.BirthdaysThisMonth)
	assert.Empty(t, summary.BirthdaysThisMonth)
}

func TestSummarize_QueryFailureSurfaces(t *testing.T) {
	repo, mock, db := newDashboardRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM clients`).WillReturnError(errors.New("db down"))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM sales WHERE`).WillReturnRows(countRows(0))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM notes`).WillReturnRows(countRows(0))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM reminders`).WillReturnRows(countRows(0))
	mock.ExpectQuery(`SELECT COALESCE\(SUM\(value\), 0\) FROM sales`).
		WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(0.0))
	mock.ExpectQuery(`SELECT id, name, birthday FROM clients`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "birthday"}))

	_, err := repo.Summarize(context.Background(), uuid.New(), time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db error")
}
