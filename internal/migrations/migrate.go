// Package migrations applies the embedded goose SQL migrations.
package migrations

import (
	"context"
	"database/sql"
	"embed"

	"github.com/pressly/goose/v3"
)

//go:embed sql/*.sql
var files embed.FS

func setup() error {
	goose.SetBaseFS(files)
	return goose.SetDialect("postgres")
}

// Up applies all pending migrations. A nil db is a no-op.
func Up(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return nil
	}
	if err := setup(); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, "sql")
}

// Down rolls back the most recent migration.
func Down(ctx context.Context, db *sql.DB) error {
	if err := setup(); err != nil {
		return err
	}
	return goose.DownContext(ctx, db, "sql")
}

func Status(ctx context.Context, db *sql.DB) error {
	if err := setup(); err != nil {
		return err
	}
	return goose.StatusContext(ctx, db, "sql")
}
