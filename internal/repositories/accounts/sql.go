package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/ariawaludin/smarttourism/internal/common"
	"github.com/ariawaludin/smarttourism/internal/cryptox"
	"github.com/ariawaludin/smarttourism/internal/dbx"
	"github.com/ariawaludin/smarttourism/internal/models"
	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const pgUniqueViolation = "23505"

type SQLRepository struct {
	db      dbx.DBTX
	dialect dbx.Dialect
	hasher  cryptox.PasswordHasher

	decoyOnce sync.Once
	decoy     string
}

var _ Repository = (*SQLRepository)(nil)

func NewSQLRepository(db dbx.DBTX, dialect dbx.Dialect, hasher cryptox.PasswordHasher) *SQLRepository {
	return &SQLRepository{db: db, dialect: dialect, hasher: hasher}
}

func (r *SQLRepository) q(query string) string {
	return dbx.Rebind(r.dialect, query)
}

func (r *SQLRepository) Insert(ctx context.Context, user *models.User) (*models.User, error) {
	query := `INSERT INTO users (username, password) VALUES (?, ?) RETURNING id`

	err := r.db.QueryRowContext(ctx, r.q(query), user.Username, user.Password).Scan(&user.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("insert user[%s]: %w", user.Username, common.ErrDuplicateUsername)
		}
		return nil, fmt.Errorf("%w: failed to insert user[%s]: %w", common.ErrStorage, user.Username, err)
	}

	return user, nil
}

func (r *SQLRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `SELECT id, username, password FROM users WHERE username = ? ORDER BY id LIMIT 1`

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, r.q(query), username).Scan(&user.ID, &user.Username, &user.Password)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("%w: failed to get user[%s]: %w", common.ErrStorage, username, err)
	}

	return user, nil
}

func (r *SQLRepository) FindByUsernameAndPassword(ctx context.Context, username, password string) (*models.User, error) {
	query := `SELECT id, username, password FROM users WHERE username = ? ORDER BY id`

	rows, err := r.db.QueryContext(ctx, r.q(query), username)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get user[%s]: %w", common.ErrStorage, username, err)
	}
	defer rows.Close()

	seen := false
	for rows.Next() {
		user := &models.User{}
		if err := rows.Scan(&user.ID, &user.Username, &user.Password); err != nil {
			return nil, fmt.Errorf("%w: failed to scan user row: %w", common.ErrStorage, err)
		}
		seen = true
		if r.hasher.Verify(user.Password, password) {
			return user, nil
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: failed to iterate user rows: %w", common.ErrStorage, err)
	}

	// Unknown usernames cost one verify too, so timing does not tell them apart.
	if !seen {
		r.hasher.Verify(r.decoyCredential(), password)
	}
	return nil, common.ErrNotFound
}

// decoyCredential is a credential no password matches, encoded once with
// the repository's hasher.
func (r *SQLRepository) decoyCredential() string {
	r.decoyOnce.Do(func() {
		secret, err := common.MakeRandHexString(16)
		if err == nil {
			r.decoy, _ = r.hasher.Hash(secret)
		}
	})
	return r.decoy
}

func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	if errors.As(err, &se) {
		code := se.Code()
		if code == sqlite3.SQLITE_CONSTRAINT_UNIQUE {
			return true
		}
		return code&0xff == sqlite3.SQLITE_CONSTRAINT && strings.Contains(se.Error(), "UNIQUE")
	}

	var pe *pgconn.PgError
	if errors.As(err, &pe) {
		return pe.Code == pgUniqueViolation
	}
	return false
}
