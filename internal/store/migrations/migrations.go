// Package migrations embeds the schema and applies it with goose.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"

	"github.com/5w1tchy/book-catalog/internal/store/dbx"
)

//go:embed postgres/*.sql sqlite/*.sql
var files embed.FS

// NewProvider returns a goose provider for the dialect's migration set.
func NewProvider(db *sql.DB, d dbx.Dialect) (*goose.Provider, error) {
	var (
		dialect goose.Dialect
		dir     string
	)
	switch d {
	case dbx.Postgres:
		dialect, dir = goose.DialectPostgres, "postgres"
	case dbx.SQLite:
		dialect, dir = goose.DialectSQLite3, "sqlite"
	default:
		return nil, fmt.Errorf("migrations: unsupported dialect %q", d)
	}
	sub, err := fs.Sub(files, dir)
	if err != nil {
		return nil, err
	}
	return goose.NewProvider(dialect, db, sub)
}

// Up applies all pending migrations and returns the versions applied.
func Up(ctx context.Context, db *sql.DB, d dbx.Dialect) ([]int64, error) {
	p, err := NewProvider(db, d)
	if err != nil {
		return nil, err
	}
	results, err := p.Up(ctx)
	if err != nil {
		return nil, fmt.Errorf("migrations: up: %w", err)
	}
	applied := make([]int64, 0, len(results))
	for _, r := range results {
		applied = append(applied, r.Source.Version)
	}
	return applied, nil
}

// Down rolls back the most recent migration and returns its version.
func Down(ctx context.Context, db *sql.DB, d dbx.Dialect) (int64, error) {
	p, err := NewProvider(db, d)
	if err != nil {
		return 0, err
	}
	r, err := p.Down(ctx)
	if err != nil {
		return 0, fmt.Errorf("migrations: down: %w", err)
	}
	return r.Source.Version, nil
}

// Status describes one known migration.
type Status struct {
	Version int64
	Path    string
	Applied bool
}

func List(ctx context.Context, db *sql.DB, d dbx.Dialect) ([]Status, error) {
	p, err := NewProvider(db, d)
	if err != nil {
		return nil, err
	}
	sts, err := p.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("migrations: status: %w", err)
	}
	out := make([]Status, 0, len(sts))
	for _, s := range sts {
		out = append(out, Status{
			Version: s.Source.Version,
			Path:    s.Source.Path,
			Applied: s.State == goose.StateApplied,
		})
	}
	return out, nil
}
