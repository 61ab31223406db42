package storage

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/ariawaludin/smarttourism/internal/common"
	"github.com/ariawaludin/smarttourism/internal/dbx"
	"github.com/ariawaludin/smarttourism/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProvider_InitialisesOnce(t *testing.T) {
	orig := initDatabase
	t.Cleanup(func() { initDatabase = orig })

	var calls atomic.Int32
	initDatabase = func(ctx context.Context, d dbx.Dialect, dsn string) (*sql.DB, error) {
		calls.Add(1)
		return orig(ctx, d, dsn)
	}

	p := NewProvider(dbx.DialectSQLite, ":memory:", logging.Discard())
	t.Cleanup(func() { _ = p.Close() })

	var wg sync.WaitGroup
	handles := make([]*sql.DB, 8)
	for i := range handles {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			db, err := p.DB(context.Background())
			assert.NoError(t, err)
			handles[i] = db
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, h := range handles {
		assert.Same(t, handles[0], h)
	}
	assert.Equal(t, dbx.DialectSQLite, p.Dialect())
}

func TestProvider_RemembersError(t *testing.T) {
	orig := initDatabase
	t.Cleanup(func() { initDatabase = orig })

	var calls int
	initDatabase = func(ctx context.Context, d dbx.Dialect, dsn string) (*sql.DB, error) {
		calls++
		return nil, errors.New("disk full")
	}

	p := NewProvider(dbx.DialectSQLite, "x.db", logging.Discard())

	_, err := p.DB(context.Background())
	require.ErrorIs(t, err, common.ErrStorage)
	assert.Contains(t, err.Error(), "disk full")

	_, err = p.DB(context.Background())
	require.ErrorIs(t, err, common.ErrStorage)
	assert.Equal(t, 1, calls)
	assert.NoError(t, p.Close())
}
