package sqlconnect

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/5w1tchy/book-catalog/internal/config"
	"github.com/5w1tchy/book-catalog/internal/store/dbx"
)

// ConnectDB opens the configured driver, applies pool limits and pings.
func ConnectDB(ctx context.Context, cfg config.DB) (*sql.DB, dbx.Dialect, error) {
	if cfg.URL == "" {
		return nil, "", fmt.Errorf("DATABASE_URL not set")
	}
	dialect, err := dbx.DialectFor(cfg.Driver)
	if err != nil {
		return nil, "", err
	}

	db, err := sql.Open(cfg.Driver, cfg.URL)
	if err != nil {
		return nil, "", err
	}

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, "", err
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	if dialect == dbx.SQLite {
		// SQLite allows one writer; serialize through a single connection.
		db.SetMaxOpenConns(1)
	}
	return db, dialect, nil
}
