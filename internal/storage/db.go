// Package storage opens the local database, applies the embedded migrations
// and hands out a single shared *sql.DB to the rest of the app.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"

	"github.com/ariawaludin/smarttourism/internal/dbx"
	"github.com/ariawaludin/smarttourism/internal/migrations"
	"github.com/pressly/goose/v3"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// RunMigrations applies every pending migration of the dialect.
func RunMigrations(ctx context.Context, db *sql.DB, dialect dbx.Dialect) error {
	var (
		gd   goose.Dialect
		fsys fs.FS
	)
	switch dialect {
	case dbx.DialectSQLite:
		gd, fsys = goose.DialectSQLite3, migrations.SQLite()
	case dbx.DialectPostgres:
		gd, fsys = goose.DialectPostgres, migrations.Postgres()
	default:
		return fmt.Errorf("unsupported dialect %q", dialect)
	}

	provider, err := goose.NewProvider(gd, db, fsys)
	if err != nil {
		return fmt.Errorf("goose provider: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

// InitDatabase opens dsn with the driver of dialect and migrates it.
//
// SQLite handles are limited to one connection: writes are serialised and
// ":memory:" databases stay the same database for the life of the handle.
func InitDatabase(ctx context.Context, dialect dbx.Dialect, dsn string) (*sql.DB, error) {
	db, err := sql.Open(string(dialect), dsn)
	if err != nil {
		return nil, err
	}
	if dialect == dbx.DialectSQLite {
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	if err := RunMigrations(ctx, db, dialect); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
