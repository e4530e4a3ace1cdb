package repository

import (
	"context"
	"database/sql"
	"errors"
)

// ErrNotFound is returned when a row does not exist or belongs to another
// user. The two cases are deliberately indistinguishable to callers.
var ErrNotFound = errors.New("not found")

// DBTX is the subset of database/sql used by the repositories. Both *sql.DB
// and *sql.Tx satisfy it.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

const (
	defaultPage  = 1
	defaultLimit = 10
)

// Page describes the requested slice of a collection
type Page struct {
	Number int
	Limit  int
}

// NewPage builds a Page with non-positive values replaced by the defaults
// (page 1, limit 10), so the offset can never go negative.
func NewPage(number, limit int) Page {
	if number < 1 {
		number = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}
	return Page{Number: number, Limit: limit}
}

// Offset returns the number of rows to skip for this page
func (p Page) Offset() int {
	return (p.Number - 1) * p.Limit
}

// LastPage returns the index of the final page for the given total
func (p Page) LastPage(total int) int {
	return (total + p.Limit - 1) / p.Limit
}
