package storage

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/ariawaludin/smarttourism/internal/common"
	"github.com/ariawaludin/smarttourism/internal/dbx"
	"github.com/ariawaludin/smarttourism/internal/logging"
)

// initDatabase is a test seam for InitDatabase.
var initDatabase = InitDatabase

// Provider opens the database on first use. Every caller gets the same
// handle; an initialisation failure is remembered and returned to every
// caller as well.
type Provider struct {
	dialect dbx.Dialect
	dsn     string
	logger  logging.Logger

	once sync.Once
	db   *sql.DB
	err  error
}

func NewProvider(dialect dbx.Dialect, dsn string, logger logging.Logger) *Provider {
	return &Provider{dialect: dialect, dsn: dsn, logger: logger.With("module", "storage")}
}

func (p *Provider) Dialect() dbx.Dialect {
	return p.dialect
}

// DB returns the shared handle, opening and migrating it if needed.
func (p *Provider) DB(ctx context.Context) (*sql.DB, error) {
	p.once.Do(func() {
		p.logger.Info(ctx, "opening database", "driver", p.dialect)
		db, err := initDatabase(ctx, p.dialect, p.dsn)
		if err != nil {
			p.logger.Error(ctx, "database init failed", "error", err)
			p.err = fmt.Errorf("%w: %w", common.ErrStorage, err)
			return
		}
		p.db = db
	})
	return p.db, p.err
}

// Close closes the handle if it was ever opened.
func (p *Provider) Close() error {
	if p.db == nil {
		return nil
	}
	return p.db.Close()
}
