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

// NoteRepository persists client notes, scoped to the owning user
type NoteRepository struct {
	db DBTX
}

// NewNoteRepository creates a new NoteRepository instance
func NewNoteRepository(db DBTX) *NoteRepository {
	return &NoteRepository{db: db}
}

// NoteFilter holds the allow-listed list predicates for notes
type NoteFilter struct {
	ClientID *uuid.UUID
	// Search matches the note content, case-insensitive substring
	Search string
}

const noteColumns = "id, client_id, user_id, content, created_at"

func scanNote(row interface{ Scan(dest ...any) error }, n *models.Note) error {
	return row.Scan(&n.ID, &n.ClientID, &n.UserID, &n.Content, &n.CreatedAt)
}

// List returns one page of the owner's notes plus the total match count
func (r *NoteRepository) List(ctx context.Context, ownerID uuid.UUID, filter NoteFilter, page Page) ([]models.Note, int, error) {
	where := "WHERE user_id = $1"
	args := []any{ownerID}
	if filter.ClientID != nil {
		args = append(args, *filter.ClientID)
		where += fmt.Sprintf(" AND client_id = $%d", len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		where += fmt.Sprintf(" AND content ILIKE $%d", len(args))
	}

	var total int
	if err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM notes "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}

	query := fmt.Sprintf(
		"SELECT %s FROM notes %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		noteColumns, where, len(args)+1, len(args)+2)
	rows, err := r.db.QueryContext(ctx, query, append(args, page.Limit, page.Offset())...)
	if err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	notes := []models.Note{}
	for rows.Next() {
		var n models.Note
		if err := scanNote(rows, &n); err != nil {
			return nil, 0, fmt.Errorf("db error: %w", err)
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}

	return notes, total, nil
}

// ListByClient returns every note the owner attached to one client,
// newest first
func (r *NoteRepository) ListByClient(ctx context.Context, ownerID, clientID uuid.UUID) ([]models.Note, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM notes WHERE client_id = $1 AND user_id = $2 ORDER BY created_at DESC",
		noteColumns)

	rows, err := r.db.QueryContext(ctx, query, clientID, ownerID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	notes := []models.Note{}
	for rows.Next() {
		var n models.Note
		if err := scanNote(rows, &n); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return notes, nil
}

// GetByID returns the owner's note with the given id
func (r *NoteRepository) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*models.Note, error) {
	query := fmt.Sprintf("SELECT %s FROM notes WHERE id = $1 AND user_id = $2", noteColumns)

	n := &models.Note{}
	if err := scanNote(r.db.QueryRowContext(ctx, query, id, ownerID), n); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return n, nil
}

// Create inserts a new note owned by note.UserID, stamping id and created_at
// server-side
func (r *NoteRepository) Create(ctx context.Context, note *models.Note) error {
	note.ID = uuid.New()
	note.CreatedAt = time.Now()

	query := `INSERT INTO notes (id, client_id, user_id, content, created_at)
	          VALUES ($1, $2, $3, $4, $5)`

	if _, err := r.db.ExecContext(ctx, query,
		note.ID, note.ClientID, note.UserID, note.Content, note.CreatedAt); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

// Update replaces the content of the owner's note and returns the updated row
func (r *NoteRepository) Update(ctx context.Context, ownerID, id uuid.UUID, content *string) (*models.Note, error) {
	query := fmt.Sprintf(`UPDATE notes
	       SET content = COALESCE($3, content)
	     WHERE id = $1 AND user_id = $2
	 RETURNING %s`, noteColumns)

	n := &models.Note{}
	if err := scanNote(r.db.QueryRowContext(ctx, query, id, ownerID, content), n); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return n, nil
}

// Delete removes the owner's note
func (r *NoteRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM notes WHERE id = $1 AND user_id = $2", id, ownerID)
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
