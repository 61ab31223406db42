// Package photos records the pictures taken on the camera screen.
package photos

import (
	"context"
	"fmt"
	"time"

	"github.com/ariawaludin/smarttourism/internal/common"
	"github.com/ariawaludin/smarttourism/internal/dbx"
	"github.com/ariawaludin/smarttourism/internal/models"
)

type Repository interface {
	Insert(ctx context.Context, p *models.Photo) error
	SetRemoteKey(ctx context.Context, id, key string) error
	List(ctx context.Context) ([]models.Photo, error)
}

type SQLRepository struct {
	db      dbx.DBTX
	dialect dbx.Dialect
}

var _ Repository = (*SQLRepository)(nil)

func NewSQLRepository(db dbx.DBTX, dialect dbx.Dialect) *SQLRepository {
	return &SQLRepository{db: db, dialect: dialect}
}

func (r *SQLRepository) Insert(ctx context.Context, p *models.Photo) error {
	query := dbx.Rebind(r.dialect, `INSERT INTO photos (id, local_path, remote_key, taken_at) VALUES (?, ?, ?, ?)`)

	_, err := r.db.ExecContext(ctx, query, p.ID, p.LocalPath, p.RemoteKey, p.TakenAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("%w: failed to insert photo[%s]: %w", common.ErrStorage, p.ID, err)
	}
	return nil
}

func (r *SQLRepository) SetRemoteKey(ctx context.Context, id, key string) error {
	query := dbx.Rebind(r.dialect, `UPDATE photos SET remote_key = ? WHERE id = ?`)

	res, err := r.db.ExecContext(ctx, query, key, id)
	if err != nil {
		return fmt.Errorf("%w: failed to update photo[%s]: %w", common.ErrStorage, id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *SQLRepository) List(ctx context.Context) ([]models.Photo, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, local_path, remote_key, taken_at FROM photos ORDER BY taken_at, id`)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list photos: %w", common.ErrStorage, err)
	}
	defer rows.Close()

	var out []models.Photo
	for rows.Next() {
		var (
			p       models.Photo
			takenAt string
		)
		if err := rows.Scan(&p.ID, &p.LocalPath, &p.RemoteKey, &takenAt); err != nil {
			return nil, fmt.Errorf("%w: failed to scan photo row: %w", common.ErrStorage, err)
		}
		p.TakenAt, err = time.Parse(time.RFC3339Nano, takenAt)
		if err != nil {
			return nil, fmt.Errorf("photo[%s] has a bad timestamp: %w", p.ID, err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: failed to iterate photo rows: %w", common.ErrStorage, err)
	}
	return out, nil
}
