package travelcms

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"

	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

//go:embed data/sql/migrations/*.sql
var migrationsFS embed.FS

// OpenSQLite opens a SQLite-backed bun.DB for the given DSN.
func OpenSQLite(dsn string) (*bun.DB, error) {
	sqldb, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("travelcms: open sqlite: %w", err)
	}
	return bun.NewDB(sqldb, sqlitedialect.New()), nil
}

// NewPostgresDB wraps an already opened Postgres connection. The host owns
// driver selection and pooling.
func NewPostgresDB(sqldb *sql.DB) *bun.DB {
	return bun.NewDB(sqldb, pgdialect.New())
}

// ApplyMigrations executes the embedded schema files in lexical order. Files
// are written to be idempotent (IF NOT EXISTS) so repeated runs are safe.
func ApplyMigrations(ctx context.Context, db *bun.DB) error {
	entries, err := fs.ReadDir(migrationsFS, "data/sql/migrations")
	if err != nil {
		return fmt.Errorf("travelcms: read migrations: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		payload, err := migrationsFS.ReadFile("data/sql/migrations/" + name)
		if err != nil {
			return fmt.Errorf("travelcms: read migration %s: %w", name, err)
		}
		if _, err := db.ExecContext(ctx, string(payload)); err != nil {
			return fmt.Errorf("travelcms: apply migration %s: %w", name, err)
		}
	}
	return nil
}

// GetMigrationsFS exposes the embedded migration files so hosts can run them
// through their own migration tooling instead.
func GetMigrationsFS() embed.FS {
	return migrationsFS
}
