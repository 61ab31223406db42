package preferences

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ariawaludin/smarttourism/internal/dbx"
	"github.com/ariawaludin/smarttourism/internal/models"
)

type SQLRepository struct {
	db      dbx.DBTX
	dialect dbx.Dialect
}

var _ Repository = (*SQLRepository)(nil)

func NewSQLRepository(db dbx.DBTX, dialect dbx.Dialect) *SQLRepository {
	return &SQLRepository{db: db, dialect: dialect}
}

func (r *SQLRepository) Get(ctx context.Context, key string) (*models.Preference, error) {
	p := &models.Preference{Key: key}
	err := r.db.QueryRowContext(ctx, dbx.Rebind(r.dialect, `SELECT kind, value FROM preferences WHERE key = ?`), key).
		Scan(&p.Kind, &p.Value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get preference[%s]: %w", key, err)
	}
	return p, nil
}

func (r *SQLRepository) Set(ctx context.Context, pref models.Preference) error {
	_, err := r.db.ExecContext(ctx, dbx.Rebind(r.dialect, `
		INSERT INTO preferences (key, kind, value) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET kind = excluded.kind, value = excluded.value
	`), pref.Key, pref.Kind, pref.Value)
	if err != nil {
		return fmt.Errorf("failed to set preference[%s]: %w", pref.Key, err)
	}
	return nil
}

func (r *SQLRepository) Delete(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, dbx.Rebind(r.dialect, `DELETE FROM preferences WHERE key = ?`), key)
	if err != nil {
		return fmt.Errorf("failed to delete preference[%s]: %w", key, err)
	}
	return nil
}

func (r *SQLRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM preferences`); err != nil {
		return fmt.Errorf("failed to clear preferences: %w", err)
	}
	return nil
}

func (r *SQLRepository) List(ctx context.Context) ([]models.Preference, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key, kind, value FROM preferences ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("failed to list preferences: %w", err)
	}
	defer rows.Close()

	var result []models.Preference
	for rows.Next() {
		var p models.Preference
		if err := rows.Scan(&p.Key, &p.Kind, &p.Value); err != nil {
			return nil, fmt.Errorf("failed to scan preference row: %w", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate preference rows: %w", err)
	}

	return result, nil
}
