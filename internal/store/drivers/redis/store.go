// Package redis keeps the session in a redis instance shared by several
// consoles on one workstation.
package redis

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/aussiebroadwan/ideadesk/internal/store"
	goredis "github.com/redis/go-redis/v9"
)

// Values never expire; the session ends on logout or a server rejection.
const keyPrefix = "ideadesk:session:"

type Store struct {
	client *goredis.Client
	prefix string
}

// NewStore connects to addr. An empty namespace uses the default prefix.
func NewStore(addr, namespace string) *Store {
	prefix := keyPrefix
	if namespace != "" {
		prefix += namespace + ":"
	}
	return &Store{
		client: goredis.NewClient(&goredis.Options{Addr: addr}),
		prefix: prefix,
	}
}

func (s *Store) key(k string) string { return s.prefix + k }

func (s *Store) Values() store.Values { return &valuesRepo{s: s} }

func (s *Store) ApplyMigrations() error { return nil }

func (s *Store) Close() error { return s.client.Close() }

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// WithTx buffers writes and sends them in one MULTI/EXEC when fn succeeds.
// Reads inside fn see the buffered writes first.
func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	tx := &txStore{s: s, staged: make(map[string]*string)}
	if err := fn(tx); err != nil {
		return err
	}
	if len(tx.order) == 0 {
		return nil
	}

	_, err := s.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		for _, k := range tx.order {
			if v := tx.staged[k]; v != nil {
				pipe.Set(ctx, s.key(k), *v, 0)
			} else {
				pipe.Del(ctx, s.key(k))
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("commit session values: %w", err)
	}
	return nil
}

type valuesRepo struct {
	s *Store
}

func (r *valuesRepo) Get(ctx context.Context, key string) (string, error) {
	v, err := r.s.client.Get(ctx, r.s.key(key)).Result()
	if errors.Is(err, goredis.Nil) {
		return "", store.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get %q: %w", key, err)
	}
	return v, nil
}

func (r *valuesRepo) Set(ctx context.Context, key, value string) error {
	if err := r.s.client.Set(ctx, r.s.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

func (r *valuesRepo) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = r.s.key(k)
	}
	if err := r.s.client.Del(ctx, full...).Err(); err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	return nil
}

type txStore struct {
	s      *Store
	mu     sync.Mutex
	staged map[string]*string
	order  []string
}

func (t *txStore) Values() store.Values { return t }

func (t *txStore) stage(key string, v *string) {
	if _, seen := t.staged[key]; !seen {
		t.order = append(t.order, key)
	}
	t.staged[key] = v
}

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
	t.stage(key, &value)
	return nil
}

func (t *txStore) Delete(_ context.Context, keys ...string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, k := range keys {
		t.stage(k, nil)
	}
	return nil
}
