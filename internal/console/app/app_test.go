package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/ideadesk/internal/datasource/demo"
	"github.com/aussiebroadwan/ideadesk/internal/domain"
	"github.com/aussiebroadwan/ideadesk/internal/state"
)

func testConfig(t *testing.T) Config {
	cfg := defaultConfig()
	cfg.DatabaseFile = filepath.Join(t.TempDir(), "ideadesk.db")
	cfg.LogLevel = "error"
	cfg.Env = "test"
	return cfg
}

func TestSessionSurvivesRestart(t *testing.T) {
	cfg := testConfig(t)

	first, err := New(cfg)
	require.NoError(t, err)

	task := first.State().Dispatch(context.Background(), state.Login{Credentials: domain.Credentials{
		Email:    demo.AdminEmail,
		Password: demo.AdminPassword,
	}})
	require.NoError(t, task.Wait())
	token := first.State().Session.AccessToken()
	require.NotEmpty(t, token)
	require.NoError(t, first.Close())

	second, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = second.Close() })

	snap := second.State().Session.Snapshot().Data
	require.Equal(t, token, snap.Token)
	require.True(t, snap.IsAuthenticated)
	require.Nil(t, snap.User)
}

func TestRouterIsWired(t *testing.T) {
	cfg := testConfig(t)
	cfg.Store = StoreMemory

	app, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	for path, want := range map[string]int{
		"/livez":    http.StatusOK,
		"/readyz":   http.StatusOK,
		"/metrics":  http.StatusOK,
		"/projects": http.StatusSeeOther,
	} {
		rec := httptest.NewRecorder()
		app.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, want, rec.Code, path)
	}
}
