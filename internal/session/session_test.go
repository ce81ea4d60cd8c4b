package session

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/ideadesk/internal/domain"
	"github.com/aussiebroadwan/ideadesk/internal/resource"
	"github.com/aussiebroadwan/ideadesk/internal/store"
	"github.com/aussiebroadwan/ideadesk/internal/store/drivers/memory"
	"github.com/aussiebroadwan/ideadesk/pkg/apiclient"
)

var admin = domain.User{ID: 1, Email: "admin@ideateam.com", Role: domain.RoleAdmin, IsActive: true}

// fakeAuth answers from funcs; nil funcs succeed with the admin fixture.
type fakeAuth struct {
	mu          sync.Mutex
	login       func(ctx context.Context, creds domain.Credentials) (domain.LoginResult, error)
	logout      func(ctx context.Context, refresh string) error
	currentUser func(ctx context.Context) (domain.User, error)
	revoked     []string
}

func (f *fakeAuth) Login(ctx context.Context, creds domain.Credentials) (domain.LoginResult, error) {
	if f.login != nil {
		return f.login(ctx, creds)
	}
	return domain.LoginResult{Access: "t1", Refresh: "r1", User: admin}, nil
}

func (f *fakeAuth) Logout(ctx context.Context, refresh string) error {
	f.mu.Lock()
	f.revoked = append(f.revoked, refresh)
	f.mu.Unlock()
	if f.logout != nil {
		return f.logout(ctx, refresh)
	}
	return nil
}

func (f *fakeAuth) CurrentUser(ctx context.Context) (domain.User, error) {
	if f.currentUser != nil {
		return f.currentUser(ctx)
	}
	return admin, nil
}

func newSession(t *testing.T, auth *fakeAuth) (*Session, store.Store) {
	t.Helper()
	st := memory.NewStore()
	return New(auth, st, resource.WithMessages(apiclient.Message)), st
}

func stored(t *testing.T, st store.Store, key string) string {
	t.Helper()
	v, err := st.Values().Get(context.Background(), key)
	if errors.Is(err, store.ErrNotFound) {
		return ""
	}
	require.NoError(t, err)
	return v
}

func signedJWT(t *testing.T, exp time.Time) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "1",
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)
	return tok
}

func TestLoginSuccess(t *testing.T) {
	t.Parallel()

	s, st := newSession(t, &fakeAuth{})

	task := s.Login(context.Background(), domain.Credentials{Email: "admin@ideateam.com", Password: "admin123"})
	require.NoError(t, task.Wait())

	snap := s.Snapshot()
	require.False(t, snap.Loading)
	require.Empty(t, snap.Error)
	require.True(t, snap.Data.IsAuthenticated)
	require.Equal(t, "t1", snap.Data.Token)
	require.Equal(t, "r1", snap.Data.RefreshToken)
	require.Equal(t, domain.ID(1), snap.Data.User.ID)
	require.Equal(t, "t1", s.AccessToken())

	require.Equal(t, "t1", stored(t, st, store.KeyAccessToken))
	require.Equal(t, "r1", stored(t, st, store.KeyRefreshToken))
}

func TestLoginFailure(t *testing.T) {
	t.Parallel()

	s, st := newSession(t, &fakeAuth{
		login: func(context.Context, domain.Credentials) (domain.LoginResult, error) {
			return domain.LoginResult{}, &apiclient.Error{Kind: apiclient.KindValidation, StatusCode: http.StatusBadRequest, Message: "Invalid email or password."}
		},
	})

	err := s.Login(context.Background(), domain.Credentials{Email: "a", Password: "b"}).Wait()
	require.True(t, apiclient.IsValidation(err))

	snap := s.Snapshot()
	require.False(t, snap.Loading)
	require.Equal(t, "Invalid email or password.", snap.Error)
	require.False(t, snap.Data.IsAuthenticated)
	require.Empty(t, stored(t, st, store.KeyAccessToken))

	s.ClearError()
	require.Empty(t, s.Snapshot().Error)
}

func TestLogout(t *testing.T) {
	t.Parallel()

	t.Run("success clears state and storage", func(t *testing.T) {
		t.Parallel()

		auth := &fakeAuth{}
		s, st := newSession(t, auth)
		require.NoError(t, s.Login(context.Background(), domain.Credentials{}).Wait())

		require.NoError(t, s.Logout(context.Background()).Wait())

		require.Equal(t, []string{"r1"}, auth.revoked)
		require.Equal(t, State{}, s.Snapshot().Data)
		require.Equal(t, MsgSignedOut, s.Snapshot().Success)
		require.Empty(t, stored(t, st, store.KeyAccessToken))
		require.Empty(t, stored(t, st, store.KeyRefreshToken))
	})

	t.Run("failure still signs out and records the error", func(t *testing.T) {
		t.Parallel()

		auth := &fakeAuth{logout: func(context.Context, string) error {
			return &apiclient.Error{Kind: apiclient.KindTransport, Message: apiclient.MsgTransport}
		}}
		s, st := newSession(t, auth)
		require.NoError(t, s.Login(context.Background(), domain.Credentials{}).Wait())

		require.Error(t, s.Logout(context.Background()).Wait())

		snap := s.Snapshot()
		require.Equal(t, apiclient.MsgTransport, snap.Error)
		require.Empty(t, snap.Success)
		require.False(t, snap.Data.IsAuthenticated)
		require.Empty(t, snap.Data.Token)
		require.Empty(t, stored(t, st, store.KeyAccessToken))
	})

	t.Run("no refresh token skips the server", func(t *testing.T) {
		t.Parallel()

		auth := &fakeAuth{}
		s, _ := newSession(t, auth)
		require.NoError(t, s.SetCredentials(domain.LoginResult{Access: "t1", User: admin}))

		require.NoError(t, s.Logout(context.Background()).Wait())
		require.Empty(t, auth.revoked)
		require.False(t, s.Snapshot().Data.IsAuthenticated)
	})
}

func TestGetCurrentUser(t *testing.T) {
	t.Parallel()

	t.Run("success fills the user", func(t *testing.T) {
		t.Parallel()

		s, _ := newSession(t, &fakeAuth{})
		require.NoError(t, s.SetCredentials(domain.LoginResult{Access: "t1", Refresh: "r1"}))

		require.NoError(t, s.GetCurrentUser(context.Background()).Wait())
		snap := s.Snapshot()
		require.True(t, snap.Data.IsAuthenticated)
		require.Equal(t, admin.Email, snap.Data.User.Email)
	})

	t.Run("failure signs out", func(t *testing.T) {
		t.Parallel()

		s, st := newSession(t, &fakeAuth{currentUser: func(context.Context) (domain.User, error) {
			return domain.User{}, &apiclient.Error{Kind: apiclient.KindSessionExpired, StatusCode: http.StatusUnauthorized, Message: apiclient.MsgSessionExpired}
		}})
		require.NoError(t, s.SetCredentials(domain.LoginResult{Access: "t1", Refresh: "r1"}))
		require.Equal(t, "t1", stored(t, st, store.KeyAccessToken))

		require.Error(t, s.GetCurrentUser(context.Background()).Wait())

		snap := s.Snapshot()
		require.False(t, snap.Data.IsAuthenticated)
		require.Empty(t, snap.Data.Token)
		require.Nil(t, snap.Data.User)
		require.Equal(t, apiclient.MsgSessionExpired, snap.Error)
		require.Empty(t, stored(t, st, store.KeyAccessToken))
	})
}

func TestLateLoginDoesNotUndoLogout(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	s, st := newSession(t, &fakeAuth{login: func(ctx context.Context, _ domain.Credentials) (domain.LoginResult, error) {
		<-release
		return domain.LoginResult{Access: "t1", Refresh: "r1", User: admin}, nil
	}})

	login := s.Login(context.Background(), domain.Credentials{})
	require.NoError(t, s.Logout(context.Background()).Wait())
	close(release)

	require.ErrorIs(t, login.Wait(), resource.ErrSuperseded)
	require.False(t, s.Snapshot().Data.IsAuthenticated)
	require.Empty(t, stored(t, st, store.KeyAccessToken))
}

func TestRestore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		access   string
		wantAuth bool
	}{
		{"nothing stored", "", false},
		{"opaque token is kept", "opaque-token", true},
		{"live jwt is kept", signedJWT(t, time.Now().Add(time.Hour)), true},
		{"expired jwt is dropped", signedJWT(t, time.Now().Add(-time.Minute)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s, st := newSession(t, &fakeAuth{})
			ctx := context.Background()
			if tt.access != "" {
				require.NoError(t, st.Values().Set(ctx, store.KeyAccessToken, tt.access))
				require.NoError(t, st.Values().Set(ctx, store.KeyRefreshToken, "r1"))
			}

			require.NoError(t, s.Restore(ctx))

			snap := s.Snapshot()
			require.Equal(t, tt.wantAuth, snap.Data.IsAuthenticated)
			require.Nil(t, snap.Data.User)
			if tt.wantAuth {
				require.Equal(t, tt.access, snap.Data.Token)
				require.Equal(t, "r1", snap.Data.RefreshToken)
				require.Equal(t, tt.access, stored(t, st, store.KeyAccessToken))
			} else {
				require.Empty(t, snap.Data.Token)
				require.Empty(t, stored(t, st, store.KeyAccessToken))
				require.Empty(t, stored(t, st, store.KeyRefreshToken))
			}
		})
	}
}

func TestInvalidate(t *testing.T) {
	t.Parallel()

	s, st := newSession(t, &fakeAuth{})
	require.NoError(t, s.Login(context.Background(), domain.Credentials{}).Wait())

	s.Invalidate()

	snap := s.Snapshot()
	require.False(t, snap.Data.IsAuthenticated)
	require.Equal(t, apiclient.MsgSessionExpired, snap.Error)
	require.Empty(t, stored(t, st, store.KeyAccessToken))
}

func TestExpire(t *testing.T) {
	t.Parallel()

	t.Run("current token signs out", func(t *testing.T) {
		t.Parallel()

		s, st := newSession(t, &fakeAuth{})
		require.NoError(t, s.Login(context.Background(), domain.Credentials{}).Wait())

		require.True(t, s.Expire("t1"))

		snap := s.Snapshot()
		require.False(t, snap.Data.IsAuthenticated)
		require.Equal(t, apiclient.MsgSessionExpired, snap.Error)
		require.Empty(t, stored(t, st, store.KeyAccessToken))
	})

	t.Run("replaced token is ignored", func(t *testing.T) {
		t.Parallel()

		logins := 0
		auth := &fakeAuth{login: func(context.Context, domain.Credentials) (domain.LoginResult, error) {
			logins++
			if logins == 1 {
				return domain.LoginResult{Access: "t1", Refresh: "r1", User: admin}, nil
			}
			return domain.LoginResult{Access: "t2", Refresh: "r2", User: admin}, nil
		}}
		s, st := newSession(t, auth)
		require.NoError(t, s.Login(context.Background(), domain.Credentials{}).Wait())
		require.NoError(t, s.Login(context.Background(), domain.Credentials{}).Wait())

		require.False(t, s.Expire("t1"))

		snap := s.Snapshot()
		require.True(t, snap.Data.IsAuthenticated)
		require.Equal(t, "t2", snap.Data.Token)
		require.Empty(t, snap.Error)
		require.Equal(t, "t2", stored(t, st, store.KeyAccessToken))
	})
}

// failingStore rejects every write.
type failingStore struct{ store.Store }

type failingValues struct{ store.Values }

var errDisk = errors.New("disk full")

func (f failingStore) Values() store.Values { return failingValues{f.Store.Values()} }

func (f failingStore) WithTx(context.Context, func(store.Tx) error) error { return errDisk }

func (failingValues) Delete(context.Context, ...string) error { return errDisk }

func TestPersistFailureIsReported(t *testing.T) {
	t.Parallel()

	s := New(&fakeAuth{}, failingStore{memory.NewStore()})
	require.NoError(t, s.Login(context.Background(), domain.Credentials{}).Wait())

	require.True(t, s.Snapshot().Data.IsAuthenticated)
	require.ErrorIs(t, s.PersistErr(), errDisk)
}
