// Package photos keeps the pictures taken on the camera screen: always on
// disk, and in an object store when one is configured.
package photos

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ariawaludin/smarttourism/internal/common"
	"github.com/ariawaludin/smarttourism/internal/dbx"
	"github.com/ariawaludin/smarttourism/internal/filex"
	"github.com/ariawaludin/smarttourism/internal/logging"
	"github.com/ariawaludin/smarttourism/internal/models"
	repo "github.com/ariawaludin/smarttourism/internal/repositories/photos"
	"github.com/google/uuid"
)

const contentType = "image/jpeg"

var ErrEmptyPhoto = errors.New("empty photo")

// ObjectStore receives uploaded photos.
type ObjectStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
}

// StorageKey returns the object key of a photo taken at t.
func StorageKey(t time.Time, id string) string {
	t = t.UTC()
	return fmt.Sprintf("photos/%04d/%02d/%02d/%s.jpg", t.Year(), t.Month(), t.Day(), id)
}

type Album struct {
	dir     string
	db      *sql.DB
	dialect dbx.Dialect
	store   ObjectStore
	logger  logging.Logger
	now     func() time.Time
}

// NewAlbum stores files under dir and records them in db. store may be nil
// for local-only use.
func NewAlbum(dir string, db *sql.DB, dialect dbx.Dialect, store ObjectStore, logger logging.Logger) *Album {
	return &Album{
		dir:     dir,
		db:      db,
		dialect: dialect,
		store:   store,
		logger:  logger.With("module", "photos"),
		now:     time.Now,
	}
}

func (a *Album) repoFor(h dbx.DBTX) repo.Repository {
	return repo.NewSQLRepository(h, a.dialect)
}

// Capture saves data as a new photo. The photo is returned whenever it was
// stored locally; a failed upload is reported as a common.ErrNetwork error
// alongside it and can be retried with UploadPending.
func (a *Album) Capture(ctx context.Context, data []byte) (*models.Photo, error) {
	if len(data) == 0 {
		return nil, ErrEmptyPhoto
	}

	dir, err := filex.EnsureDir(a.dir)
	if err != nil {
		return nil, err
	}

	p := &models.Photo{ID: uuid.NewString(), TakenAt: a.now().UTC()}
	p.LocalPath = filepath.Join(dir, p.ID+".jpg")

	// The row and the file exist together or not at all.
	err = dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := a.repoFor(tx).Insert(ctx, p); err != nil {
			return err
		}
		return filex.WriteFileAtomic(p.LocalPath, data)
	})
	if err != nil {
		_ = os.Remove(p.LocalPath)
		return nil, err
	}
	a.logger.Info(ctx, "photo saved", "id", p.ID, "path", p.LocalPath)

	if a.store == nil {
		return p, nil
	}
	if err := a.upload(ctx, p, data); err != nil {
		return p, err
	}
	return p, nil
}

func (a *Album) upload(ctx context.Context, p *models.Photo, data []byte) error {
	key := StorageKey(p.TakenAt, p.ID)
	if err := a.store.Put(ctx, key, data, contentType); err != nil {
		a.logger.Warn(ctx, "photo upload failed", "id", p.ID, "error", err)
		return fmt.Errorf("%w: %w", common.ErrNetwork, err)
	}
	if err := a.repoFor(a.db).SetRemoteKey(ctx, p.ID, key); err != nil {
		return err
	}
	p.RemoteKey = key
	return nil
}

// UploadPending uploads every photo without a remote key and returns how
// many made it.
func (a *Album) UploadPending(ctx context.Context) (int, error) {
	if a.store == nil {
		return 0, nil
	}

	all, err := a.repoFor(a.db).List(ctx)
	if err != nil {
		return 0, err
	}

	uploaded := 0
	for i := range all {
		p := &all[i]
		if p.RemoteKey != "" {
			continue
		}
		data, err := os.ReadFile(p.LocalPath)
		if err != nil {
			a.logger.Warn(ctx, "photo file missing", "id", p.ID, "path", p.LocalPath, "error", err)
			continue
		}
		if err := a.upload(ctx, p, data); err != nil {
			return uploaded, err
		}
		uploaded++
	}
	return uploaded, nil
}

func (a *Album) List(ctx context.Context) ([]models.Photo, error) {
	return a.repoFor(a.db).List(ctx)
}
