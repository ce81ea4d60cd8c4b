// Package storetest holds the behaviour every store driver must share.
package storetest

import (
	"context"
	"errors"
	"testing"

	"github.com/aussiebroadwan/ideadesk/internal/store"
	"github.com/stretchr/testify/require"
)

// Run exercises a driver. open must return an empty, migrated store.
func Run(t *testing.T, open func(t *testing.T) store.Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("missing key", func(t *testing.T) {
		s := open(t)
		_, err := s.Values().Get(ctx, store.KeyAccessToken)
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("set get overwrite", func(t *testing.T) {
		s := open(t)
		require.NoError(t, s.Values().Set(ctx, store.KeyAccessToken, "t1"))
		require.NoError(t, s.Values().Set(ctx, store.KeyAccessToken, "t2"))

		v, err := s.Values().Get(ctx, store.KeyAccessToken)
		require.NoError(t, err)
		require.Equal(t, "t2", v)
	})

	t.Run("delete ignores missing keys", func(t *testing.T) {
		s := open(t)
		require.NoError(t, s.Values().Set(ctx, store.KeyAccessToken, "t1"))
		require.NoError(t, s.Values().Set(ctx, store.KeyRefreshToken, "r1"))

		require.NoError(t, s.Values().Delete(ctx, store.KeyAccessToken, store.KeyRefreshToken, "never-set"))

		_, err := s.Values().Get(ctx, store.KeyAccessToken)
		require.ErrorIs(t, err, store.ErrNotFound)
		_, err = s.Values().Get(ctx, store.KeyRefreshToken)
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("tx commits", func(t *testing.T) {
		s := open(t)
		err := s.WithTx(ctx, func(tx store.Tx) error {
			if err := tx.Values().Set(ctx, store.KeyAccessToken, "t1"); err != nil {
				return err
			}
			return tx.Values().Set(ctx, store.KeyRefreshToken, "r1")
		})
		require.NoError(t, err)

		v, err := s.Values().Get(ctx, store.KeyRefreshToken)
		require.NoError(t, err)
		require.Equal(t, "r1", v)
	})

	t.Run("tx rolls back on error", func(t *testing.T) {
		s := open(t)
		require.NoError(t, s.Values().Set(ctx, store.KeyAccessToken, "keep"))

		boom := errors.New("boom")
		err := s.WithTx(ctx, func(tx store.Tx) error {
			if err := tx.Values().Set(ctx, store.KeyAccessToken, "discard"); err != nil {
				return err
			}
			if err := tx.Values().Set(ctx, store.KeyRefreshToken, "discard"); err != nil {
				return err
			}
			return boom
		})
		require.ErrorIs(t, err, boom)

		v, err := s.Values().Get(ctx, store.KeyAccessToken)
		require.NoError(t, err)
		require.Equal(t, "keep", v)
		_, err = s.Values().Get(ctx, store.KeyRefreshToken)
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("ping", func(t *testing.T) {
		s := open(t)
		require.NoError(t, s.Ping(ctx))
	})
}
