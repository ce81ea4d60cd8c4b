// Package memory is a process local store. Nothing survives a restart.
package memory

import (
	"context"
	"sync"

	"github.com/aussiebroadwan/ideadesk/internal/store"
)

type Store struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewStore() *Store {
	return &Store{values: make(map[string]string)}
}

func (s *Store) Values() store.Values { return &valuesRepo{s: s} }

func (s *Store) ApplyMigrations() error { return nil }

func (s *Store) Close() error { return nil }

func (s *Store) Ping(context.Context) error { return nil }

// WithTx stages writes and applies them together when fn succeeds.
func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	tx := &txStore{s: s, staged: make(map[string]*string)}
	if err := fn(tx); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for k, v := range tx.staged {
		if v == nil {
			delete(s.values, k)
			continue
		}
		s.values[k] = *v
	}
	return nil
}

type valuesRepo struct {
	s *Store
}

func (r *valuesRepo) Get(_ context.Context, key string) (string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	v, ok := r.s.values[key]
	if !ok {
		return "", store.ErrNotFound
	}
	return v, nil
}

func (r *valuesRepo) Set(_ context.Context, key, value string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.values[key] = value
	return nil
}

func (r *valuesRepo) Delete(_ context.Context, keys ...string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, k := range keys {
		delete(r.s.values, k)
	}
	return nil
}

// txStore records writes; a nil value is a delete.
type txStore struct {
	s      *Store
	mu     sync.Mutex
	staged map[string]*string
}

func (t *txStore) Values() store.Values { return t }

func (t *txStore) Get(ctx context.Context, key string) (string, error) {
	t.mu.Lock()
	v, ok := t.staged[key]
	t.mu.Unlock()
	if ok {
		if v == nil {
			return "", store.ErrNotFound
		}
		return *v, nil
	}
	return (&valuesRepo{s: t.s}).Get(ctx, key)
}

func (t *txStore) Set(_ context.Context, key, value string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.staged[key] = &value
	return nil
}

func (t *txStore) Delete(_ context.Context, keys ...string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, k := range keys {
		t.staged[k] = nil
	}
	return nil
}
