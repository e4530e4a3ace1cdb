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

// SaleRepository persists logged sales, scoped to the owning user
type SaleRepository struct {
	db DBTX
}

// NewSaleRepository creates a new SaleRepository instance
func NewSaleRepository(db DBTX) *SaleRepository {
	return &SaleRepository{db: db}
}

// SaleFilter holds the allow-listed list predicates for sales
type SaleFilter struct {
	ClientID *uuid.UUID
	DateFrom *time.Time
	DateTo   *time.Time
}

// SaleUpdate holds the optional fields of a partial update
type SaleUpdate struct {
	Description *string
	Value       *float64
	Date        *time.Time
}

const saleColumns = "id, client_id, user_id, description, value, date, created_at"

func scanSale(row interface{ Scan(dest ...any) error }, s *models.Sale) error {
	return row.Scan(&s.ID, &s.ClientID, &s.UserID, &s.Description, &s.Value, &s.Date, &s.CreatedAt)
}

// List returns one page of the owner's sales plus the total match count,
// most recent sale date first
func (r *SaleRepository) List(ctx context.Context, ownerID uuid.UUID, filter SaleFilter, page Page) ([]models.Sale, int, error) {
	where := "WHERE user_id = $1"
	args := []any{ownerID}
	if filter.ClientID != nil {
		args = append(args, *filter.ClientID)
		where += fmt.Sprintf(" AND client_id = $%d", len(args))
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
		"SELECT COUNT(*) FROM sales "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}

	query := fmt.Sprintf(
		"SELECT %s FROM sales %s ORDER BY date DESC LIMIT $%d OFFSET $%d",
		saleColumns, where, len(args)+1, len(args)+2)
	rows, err := r.db.QueryContext(ctx, query, append(args, page.Limit, page.Offset())...)
	if err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	sales := []models.Sale{}
	for rows.Next() {
		var s models.Sale
		if err := scanSale(rows, &s); err != nil {
			return nil, 0, fmt.Errorf("db error: %w", err)
		}
		sales = append(sales, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}

	return sales, total, nil
}

// GetByID returns the owner's sale with the given id
func (r *SaleRepository) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*models.Sale, error) {
	query := fmt.Sprintf("SELECT %s FROM sales WHERE id = $1 AND user_id = $2", saleColumns)

	s := &models.Sale{}
	if err := scanSale(r.db.QueryRowContext(ctx, query, id, ownerID), s); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return s, nil
}

// Create inserts a new sale owned by sale.UserID, stamping id and created_at
// server-side
func (r *SaleRepository) Create(ctx context.Context, sale *models.Sale) error {
	sale.ID = uuid.New()
	sale.CreatedAt = time.Now()

	query := `INSERT INTO sales (id, client_id, user_id, description, value, date, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`

	if _, err := r.db.ExecContext(ctx, query,
		sale.ID, sale.ClientID, sale.UserID, sale.Description,
		sale.Value, sale.Date, sale.CreatedAt); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

// Update applies the provided fields to the owner's sale and returns the
// updated row
func (r *SaleRepository) Update(ctx context.Context, ownerID, id uuid.UUID, upd SaleUpdate) (*models.Sale, error) {
	query := fmt.Sprintf(`UPDATE sales
	       SET description = COALESCE($3, description),
	           value = COALESCE($4, value),
	           date = COALESCE($5, date)
	     WHERE id = $1 AND user_id = $2
	 RETURNING %s`, saleColumns)

	s := &models.Sale{}
	err := scanSale(r.db.QueryRowContext(ctx, query,
		id, ownerID, upd.Description, upd.Value, upd.Date), s)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return s, nil
}

// Delete removes the owner's sale
func (r *SaleRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM sales WHERE id = $1 AND user_id = $2", id, ownerID)
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
