package photos

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/ariawaludin/smarttourism/internal/common"
	"github.com/ariawaludin/smarttourism/internal/dbx"
	"github.com/ariawaludin/smarttourism/internal/logging"
	"github.com/ariawaludin/smarttourism/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	mu   sync.Mutex
	objs map[string][]byte
	err  error
}

func (f *fakeStore) Put(_ context.Context, key string, data []byte, ct string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if f.objs == nil {
		f.objs = map[string][]byte{}
	}
	f.objs[key] = data
	return nil
}

func newAlbum(t *testing.T, store ObjectStore) (*Album, string) {
	t.Helper()
	ctx := context.Background()
	db, err := storage.InitDatabase(ctx, dbx.DialectSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	dir := filepath.Join(t.TempDir(), "photos")
	a := NewAlbum(dir, db, dbx.DialectSQLite, store, logging.Discard())
	a.now = func() time.Time { return time.Date(2025, 3, 7, 9, 30, 0, 0, time.UTC) }
	return a, dir
}

func TestStorageKey(t *testing.T) {
	at := time.Date(2025, 3, 7, 23, 30, 0, 0, time.FixedZone("WIB", 7*3600))
	assert.Equal(t, "photos/2025/03/07/abc.jpg", StorageKey(at, "abc"))
}

func TestCapture_LocalOnly(t *testing.T) {
	a, dir := newAlbum(t, nil)
	ctx := context.Background()

	p, err := a.Capture(ctx, []byte("jpeg-bytes"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, p.ID+".jpg"), p.LocalPath)
	assert.Empty(t, p.RemoteKey)

	b, err := os.ReadFile(p.LocalPath)
	require.NoError(t, err)
	assert.Equal(t, "jpeg-bytes", string(b))

	all, err := a.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, p.ID, all[0].ID)

	n, err := a.UploadPending(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCapture_EmptyData(t *testing.T) {
	a, _ := newAlbum(t, nil)
	_, err := a.Capture(context.Background(), nil)
	require.ErrorIs(t, err, ErrEmptyPhoto)
}

func TestCapture_Uploads(t *testing.T) {
	store := &fakeStore{}
	a, _ := newAlbum(t, store)
	ctx := context.Background()

	p, err := a.Capture(ctx, []byte("jpeg"))
	require.NoError(t, err)
	assert.Equal(t, "photos/2025/03/07/"+p.ID+".jpg", p.RemoteKey)
	assert.Equal(t, []byte("jpeg"), store.objs[p.RemoteKey])

	all, err := a.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, p.RemoteKey, all[0].RemoteKey)
}

func TestCapture_UploadFailureKeepsLocalCopy(t *testing.T) {
	store := &fakeStore{err: errors.New("bucket gone")}
	a, _ := newAlbum(t, store)
	ctx := context.Background()

	p, err := a.Capture(ctx, []byte("jpeg"))
	require.ErrorIs(t, err, common.ErrNetwork)
	require.NotNil(t, p)
	assert.FileExists(t, p.LocalPath)
	assert.Empty(t, p.RemoteKey)

	store.err = nil
	n, err := a.UploadPending(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	all, err := a.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, StorageKey(p.TakenAt, p.ID), all[0].RemoteKey)

	n, err = a.UploadPending(ctx)
	require.NoError(t, err)
	assert.Zero(t, n, "already uploaded")
}

func TestUploadPending_SkipsMissingFiles(t *testing.T) {
	store := &fakeStore{err: errors.New("offline")}
	a, _ := newAlbum(t, store)
	ctx := context.Background()

	p, err := a.Capture(ctx, []byte("jpeg"))
	require.Error(t, err)
	require.NoError(t, os.Remove(p.LocalPath))

	store.err = nil
	n, err := a.UploadPending(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}
