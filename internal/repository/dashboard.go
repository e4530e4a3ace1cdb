package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// DashboardRepository computes the per-user summary shown on the dashboard
type DashboardRepository struct {
	db DBTX
}

// NewDashboardRepository creates a new DashboardRepository instance
func NewDashboardRepository(db DBTX) *DashboardRepository {
	return &DashboardRepository{db: db}
}

// BirthdayEntry is the trimmed client projection for the birthday list
type BirthdayEntry struct {
	ID       uuid.UUID
	Name     string
	Birthday time.Time
}

// Summary aggregates one user's totals for the current calendar month
type Summary struct {
	TotalClients       int
	TotalSales         int
	TotalNotes         int
	TotalReminders     int
	SalesThisMonth     float64
	BirthdaysThisMonth []BirthdayEntry
}

// Summarize runs the six independent dashboard queries concurrently and joins
// the results. "This month" is the calendar month containing now, in now's
// location. Birthdays match on month only, ignoring the year.
func (r *DashboardRepository) Summarize(ctx context.Context, ownerID uuid.UUID, now time.Time) (*Summary, error) {
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	firstOfNextMonth := firstOfMonth.AddDate(0, 1, 0)

	s := &Summary{}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error { return r.countOwned(ctx, "clients", ownerID, &s.TotalClients) })
	g.Go(func() error { return r.countOwned(ctx, "sales", ownerID, &s.TotalSales) })
	g.Go(func() error { return r.countOwned(ctx, "notes", ownerID, &s.TotalNotes) })
	g.Go(func() error { return r.countOwned(ctx, "reminders", ownerID, &s.TotalReminders) })

	g.Go(func() error {
		err := r.db.QueryRowContext(ctx,
			"SELECT COALESCE(SUM(value), 0) FROM sales WHERE user_id = $1 AND date >= $2 AND date < $3",
			ownerID, firstOfMonth, firstOfNextMonth).Scan(&s.SalesThisMonth)
		if err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		entries, err := r.birthdaysInMonth(ctx, ownerID, now.Month())
		if err != nil {
			return err
		}
		s.BirthdaysThisMonth = entries
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return s, nil
}

func (r *DashboardRepository) countOwned(ctx context.Context, table string, ownerID uuid.UUID, out *int) error {
	// table comes from the fixed call sites above, never from input
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE user_id = $1", table)
	if err := r.db.QueryRowContext(ctx, query, ownerID).Scan(out); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *DashboardRepository) birthdaysInMonth(ctx context.Context, ownerID uuid.UUID, month time.Month) ([]BirthdayEntry, error) {
	query := `SELECT id, name, birthday FROM clients
	          WHERE user_id = $1 AND birthday IS NOT NULL AND EXTRACT(MONTH FROM birthday) = $2
	          ORDER BY EXTRACT(DAY FROM birthday)`

	rows, err := r.db.QueryContext(ctx, query, ownerID, int(month))
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	entries := []BirthdayEntry{}
	for rows.Next() {
		var e BirthdayEntry
		if err := rows.Scan(&e.ID, &e.Name, &e.Birthday); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return entries, nil
}
