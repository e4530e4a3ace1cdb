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

// ClientRepository persists client records. Every read and write is scoped to
// the owning user; a row owned by someone else behaves exactly like a row
// that does not exist.
type ClientRepository struct {
	db DBTX
}

// NewClientRepository creates a new ClientRepository instance
func NewClientRepository(db DBTX) *ClientRepository {
	return &ClientRepository{db: db}
}

// ClientFilter holds the allow-listed list predicates for clients
type ClientFilter struct {
	// Search matches the client name, case-insensitive substring
	Search string
}

// ClientUpdate holds the optional fields of a partial update. Nil fields keep
// their stored value.
type ClientUpdate struct {
	Name     *string
	Phone    *string
	Email    *string
	Birthday *time.Time
	Notes    *string
}

const clientColumns = "id, name, phone, email, birthday, notes, user_id, created_at"

func scanClient(row interface{ Scan(dest ...any) error }, c *models.Client) error {
	return row.Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &c.Birthday, &c.Notes, &c.UserID, &c.CreatedAt)
}

// List returns one page of the owner's clients plus the total match count
func (r *ClientRepository) List(ctx context.Context, ownerID uuid.UUID, filter ClientFilter, page Page) ([]models.Client, int, error) {
	where := "WHERE user_id = $1"
	args := []any{ownerID}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		where += fmt.Sprintf(" AND name ILIKE $%d", len(args))
	}

	var total int
	if err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM clients "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}

	query := fmt.Sprintf(
		"SELECT %s FROM clients %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		clientColumns, where, len(args)+1, len(args)+2)
	rows, err := r.db.QueryContext(ctx, query, append(args, page.Limit, page.Offset())...)
	if err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	clients := []models.Client{}
	for rows.Next() {
		var c models.Client
		if err := scanClient(rows, &c); err != nil {
			return nil, 0, fmt.Errorf("db error: %w", err)
		}
		clients = append(clients, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}

	return clients, total, nil
}

// GetByID returns the owner's client with the given id
func (r *ClientRepository) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*models.Client, error) {
	query := fmt.Sprintf("SELECT %s FROM clients WHERE id = $1 AND user_id = $2", clientColumns)

	c := &models.Client{}
	if err := scanClient(r.db.QueryRowContext(ctx, query, id, ownerID), c); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return c, nil
}

// Create inserts a new client owned by client.UserID, stamping id and
// created_at server-side
func (r *ClientRepository) Create(ctx context.Context, client *models.Client) error {
	client.ID = uuid.New()
	client.CreatedAt = time.Now()

	query := `INSERT INTO clients (id, name, phone, email, birthday, notes, user_id, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	if _, err := r.db.ExecContext(ctx, query,
		client.ID, client.Name, client.Phone, client.Email,
		client.Birthday, client.Notes, client.UserID, client.CreatedAt); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

// Update applies the provided fields to the owner's client and returns the
// updated row
func (r *ClientRepository) Update(ctx context.Context, ownerID, id uuid.UUID, upd ClientUpdate) (*models.Client, error) {
	query := fmt.Sprintf(`UPDATE clients
	       SET name = COALESCE($3, name),
	           phone = COALESCE($4, phone),
	           email = COALESCE($5, email),
	           birthday = COALESCE($6, birthday),
	           notes = COALESCE($7, notes)
	     WHERE id = $1 AND user_id = $2
	 RETURNING %s`, clientColumns)

	c := &models.Client{}
	err := scanClient(r.db.QueryRowContext(ctx, query,
		id, ownerID, upd.Name, upd.Phone, upd.Email, upd.Birthday, upd.Notes), c)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return c, nil
}

// Delete removes the owner's client. Notes and sales referencing it cascade
// at the schema level; linked reminders keep running with a cleared client.
func (r *ClientRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM clients WHERE id = $1 AND user_id = $2", id, ownerID)
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
