// Package migrations embeds the SQL schema migrations and applies them with
// goose at startup.
package migrations

import (
	"context"
	"database/sql"
	"embed"

	"github.com/pressly/goose/v3"
)

//go:embed *.sql
var files embed.FS

// Run applies all pending migrations against the given database
func Run(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(files)

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	return goose.UpContext(ctx, db, ".")
}
