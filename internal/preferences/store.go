// Package preferences is the typed key-value store read by the screens.
//
// Reads are served from an in-memory snapshot and never fail: a missing key
// or a key holding another type yields the caller's default. Writes update
// the snapshot immediately and are persisted in order by a single background
// writer, so callers never wait for the disk.
package preferences

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/ariawaludin/smarttourism/internal/logging"
	"github.com/ariawaludin/smarttourism/internal/models"
	repo "github.com/ariawaludin/smarttourism/internal/repositories/preferences"
)

const queueSize = 64

type opKind int

const (
	opSet opKind = iota
	opDelete
	opClear
	opFlush
)

type op struct {
	kind opKind
	pref models.Preference
	done chan struct{}
}

// Store is safe for concurrent use.
type Store struct {
	repo   repo.Repository
	logger logging.Logger

	mu     sync.RWMutex
	values map[string]models.Preference
	closed bool

	ops      chan op
	finished chan struct{}
}

// Open loads every persisted entry and starts the writer.
func Open(ctx context.Context, r repo.Repository, logger logging.Logger) (*Store, error) {
	rows, err := r.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load preferences: %w", err)
	}

	s := &Store{
		repo:     r,
		logger:   logger.With("module", "preferences"),
		values:   make(map[string]models.Preference, len(rows)),
		ops:      make(chan op, queueSize),
		finished: make(chan struct{}),
	}
	for _, p := range rows {
		s.values[p.Key] = p
	}

	go s.writer()
	return s, nil
}

func (s *Store) writer() {
	defer close(s.finished)

	ctx := context.Background()
	for o := range s.ops {
		var err error
		switch o.kind {
		case opSet:
			err = s.repo.Set(ctx, o.pref)
		case opDelete:
			err = s.repo.Delete(ctx, o.pref.Key)
		case opClear:
			err = s.repo.Clear(ctx)
		case opFlush:
			close(o.done)
		}
		if err != nil {
			s.logger.Error(ctx, "preference write failed", "key", o.pref.Key, "error", err)
		}
	}
}

// enqueue must be called with s.mu held for writing, so the queue order
// matches the order in which the snapshot changed.
func (s *Store) enqueue(o op) {
	if s.closed {
		s.logger.Warn(context.Background(), "store closed, write kept in memory only", "key", o.pref.Key)
		return
	}
	s.ops <- o
}

func (s *Store) put(key string, kind models.PreferenceKind, value string) {
	p := models.Preference{Key: key, Kind: kind, Value: value}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = p
	s.enqueue(op{kind: opSet, pref: p})
}

func (s *Store) lookup(key string, kind models.PreferenceKind) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.values[key]
	if !ok || p.Kind != kind {
		return "", false
	}
	return p.Value, true
}

func (s *Store) GetBool(key string, def bool) bool {
	v, ok := s.lookup(key, models.KindBool)
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func (s *Store) SetBool(key string, value bool) {
	s.put(key, models.KindBool, strconv.FormatBool(value))
}

func (s *Store) GetString(key string, def string) string {
	v, ok := s.lookup(key, models.KindString)
	if !ok {
		return def
	}
	return v
}

func (s *Store) SetString(key string, value string) {
	s.put(key, models.KindString, value)
}

func (s *Store) GetInt(key string, def int32) int32 {
	v, ok := s.lookup(key, models.KindInt)
	if !ok {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 32)
	if err != nil {
		return def
	}
	return int32(n)
}

func (s *Store) SetInt(key string, value int32) {
	s.put(key, models.KindInt, strconv.FormatInt(int64(value), 10))
}

func (s *Store) GetLong(key string, def int64) int64 {
	v, ok := s.lookup(key, models.KindLong)
	if !ok {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return def
	}
	return n
}

func (s *Store) SetLong(key string, value int64) {
	s.put(key, models.KindLong, strconv.FormatInt(value, 10))
}

func (s *Store) GetFloat(key string, def float32) float32 {
	v, ok := s.lookup(key, models.KindFloat)
	if !ok {
		return def
	}
	f, err := strconv.ParseFloat(v, 32)
	if err != nil {
		return def
	}
	return float32(f)
}

func (s *Store) SetFloat(key string, value float32) {
	s.put(key, models.KindFloat, strconv.FormatFloat(float64(value), 'g', -1, 32))
}

// Contains reports whether key holds a value of any type.
func (s *Store) Contains(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.values[key]
	return ok
}

func (s *Store) Remove(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	s.enqueue(op{kind: opDelete, pref: models.Preference{Key: key}})
}

// ClearAll drops every key. Readers see either all old values or none.
func (s *Store) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = make(map[string]models.Preference)
	s.enqueue(op{kind: opClear})
}

func (s *Store) SaveUser(username string) {
	s.SetString(KeyUsername, username)
}

func (s *Store) User() string {
	return s.GetString(KeyUsername, "")
}

func (s *Store) SaveProfile(name, email string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, value := range map[string]string{KeyProfileName: name, KeyProfileEmail: email} {
		p := models.Preference{Key: key, Kind: models.KindString, Value: value}
		s.values[key] = p
		s.enqueue(op{kind: opSet, pref: p})
	}
}

func (s *Store) ProfileName() string {
	return s.GetString(KeyProfileName, "")
}

func (s *Store) ProfileEmail() string {
	return s.GetString(KeyProfileEmail, "")
}

// IsLoggedIn reads the flag set by the login screen.
func (s *Store) IsLoggedIn() bool {
	return s.GetBool(KeyLoggedIn, false)
}

func (s *Store) SetLoggedIn(v bool) {
	s.SetBool(KeyLoggedIn, v)
}

// Flush waits until every write queued before the call has been persisted.
func (s *Store) Flush(ctx context.Context) error {
	done := make(chan struct{})

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.ops <- op{kind: opFlush, done: done}
	s.mu.Unlock()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

var ErrClosed = errors.New("preference store already closed")

// Close persists pending writes and stops the writer. Later writes only
// reach the in-memory snapshot.
func (s *Store) Close(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	s.closed = true
	close(s.ops)
	s.mu.Unlock()

	select {
	case <-s.finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
