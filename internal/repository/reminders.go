package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"crm-backend/internal/models"
)

// ReminderRepository persists follow-up reminders, scoped to the owning user
type ReminderRepository struct {
	db DBTX
}

// NewReminderRepository creates a new ReminderRepository instance
func NewReminderRepository(db DBTX) *ReminderRepository {
	return &ReminderRepository{db: db}
}

// ReminderFilter holds the allow-listed list predicates for reminders
type ReminderFilter struct {
	Type     string
	Done     *bool
	DateFrom *time.Time
	DateTo   *time.Time
}

// ReminderUpdate holds the optional fields of a partial update
type ReminderUpdate struct {
	Type        *string
	Description *string
	Date        *time.Time
	Done        *bool
	ClientID    *uuid.UUID
}

const reminderColumns = "id, type, description, date, done, client_id, user_id, created_at"

func scanReminder(row interface{ Scan(dest ...any) error }, m *models.Reminder) error {
	return row.Scan(&m.ID, &m.Type, &m.Description, &m.Date, &m.Done, &m.ClientID, &m.UserID, &m.CreatedAt)
}

// List returns one page of the owner's reminders plus the total match count.
// Ordering is by event date ascending so upcoming reminders come first.
func (r *ReminderRepository) List(ctx context.Context, ownerID uuid.UUID, filter ReminderFilter, page Page) ([]models.Reminder, int, error) {
	where := "WHERE user_id = $1"
	args := []any{ownerID}
	if filter.Type != "" {
		args = append(args, filter.Type)
		where += fmt.Sprintf(" AND type = $%d", len(args))
	}
	if filter.Done != nil {
		args = append(args, *filter.Done)
		where += fmt.Sprintf(" AND done = $%d", len(args))
	}
	if filter.DateFrom != nil {
		args = append(args, *filter.DateFrom)
		where += fmt.Sprintf(" AND date >= $%d", len(args))
	}
	if filter.DateTo != nil {
		args = append(args, *filter.DateTo)
		where += fmt.Sprintf(" AND date <= $%d", len(args))
	}

	var total int
	if err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM reminders "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}

	query := fmt.Sprintf(
		"SELECT %s FROM reminders %s ORDER BY date ASC LIMIT $%d OFFSET $%d",
		reminderColumns, where, len(args)+1, len(args)+2)
	rows, err := r.db.QueryContext(ctx, query, append(args, page.Limit, page.Offset())...)
	if err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	reminders := []models.Reminder{}
	for rows.Next() {
		var m models.Reminder
		if err := scanReminder(rows, &m); err != nil {
			return nil, 0, fmt.Errorf("db error: %w", err)
		}
		reminders = append(reminders, m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}

	return reminders, total, nil
}

// GetByID returns the owner's reminder with the given id
func (r *ReminderRepository) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*models.Reminder, error) {
	query := fmt.Sprintf("SELECT %s FROM reminders WHERE id = $1 AND user_id = $2", reminderColumns)

	m := &models.Reminder{}
	if err := scanReminder(r.db.QueryRowContext(ctx, query, id, ownerID), m); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return m, nil
}

// Create inserts a new reminder owned by reminder.UserID, stamping id and
// created_at server-side. New reminders always start not done.
func (r *ReminderRepository) Create(ctx context.Context, reminder *models.Reminder) error {
	reminder.ID = uuid.New()
	reminder.Done = false
	reminder.CreatedAt = time.Now()

	query := `INSERT INTO reminders (id, type, description, date, done, client_id, user_id, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	if _, err := r.db.ExecContext(ctx, query,
		reminder.ID, reminder.Type, reminder.Description, reminder.Date,
		reminder.Done, reminder.ClientID, reminder.UserID, reminder.CreatedAt); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

// Update applies the provided fields to the owner's reminder and returns the
// updated row
func (r *ReminderRepository) Update(ctx context.Context, ownerID, id uuid.UUID, upd ReminderUpdate) (*models.Reminder, error) {
	query := fmt.Sprintf(`UPDATE reminders
	       SET type = COALESCE($3, type),
	           description = COALESCE($4, description),
	           date = COALESCE($5, date),
	           done = COALESCE($6, done),
	           client_id = COALESCE($7, client_id)
	     WHERE id = $1 AND user_id = $2
	 RETURNING %s`, reminderColumns)

	m := &models.Reminder{}
	err := scanReminder(r.db.QueryRowContext(ctx, query,
		id, ownerID, upd.Type, upd.Description, upd.Date, upd.Done, upd.ClientID), m)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return m, nil
}

// Delete removes the owner's reminder
func (r *ReminderRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM reminders WHERE id = $1 AND user_id = $2", id, ownerID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}
