// Package places stores the tourist spots shown on the list screen.
package places

import (
	"context"
	"fmt"

	"github.com/ariawaludin/smarttourism/internal/common"
	"github.com/ariawaludin/smarttourism/internal/dbx"
	"github.com/ariawaludin/smarttourism/internal/models"
)

type Repository interface {
	Insert(ctx context.Context, p *models.Place) (*models.Place, error)
	List(ctx context.Context) ([]models.Place, error)
}

type SQLRepository struct {
	db      dbx.DBTX
	dialect dbx.Dialect
}

var _ Repository = (*SQLRepository)(nil)

func NewSQLRepository(db dbx.DBTX, dialect dbx.Dialect) *SQLRepository {
	return &SQLRepository{db: db, dialect: dialect}
}

func (r *SQLRepository) Insert(ctx context.Context, p *models.Place) (*models.Place, error) {
	query := dbx.Rebind(r.dialect, `INSERT INTO wisata (name, description, location) VALUES (?, ?, ?) RETURNING id`)

	if err := r.db.QueryRowContext(ctx, query, p.Name, p.Description, p.Location).Scan(&p.ID); err != nil {
		return nil, fmt.Errorf("%w: failed to insert place[%s]: %w", common.ErrStorage, p.Name, err)
	}
	return p, nil
}

func (r *SQLRepository) List(ctx context.Context) ([]models.Place, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, description, location FROM wisata ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list places: %w", common.ErrStorage, err)
	}
	defer rows.Close()

	var out []models.Place
	for rows.Next() {
		var p models.Place
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Location); err != nil {
			return nil, fmt.Errorf("%w: failed to scan place row: %w", common.ErrStorage, err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: failed to iterate place rows: %w", common.ErrStorage, err)
	}
	return out, nil
}
