package guard

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/ideadesk/internal/domain"
	"github.com/aussiebroadwan/ideadesk/internal/resource"
	"github.com/aussiebroadwan/ideadesk/internal/session"
	"github.com/aussiebroadwan/ideadesk/internal/store/drivers/memory"
	"github.com/aussiebroadwan/ideadesk/pkg/apiclient"
)

var admin = domain.User{ID: 1, Email: "admin@ideateam.com", Role: domain.RoleAdmin}

type fakeAuth struct {
	calls   atomic.Int32
	release chan struct{} // when set, CurrentUser blocks until closed
	fail    bool
}

func (f *fakeAuth) Login(context.Context, domain.Credentials) (domain.LoginResult, error) {
	return domain.LoginResult{Access: "t1", Refresh: "r1", User: admin}, nil
}

func (f *fakeAuth) Logout(context.Context, string) error { return nil }

func (f *fakeAuth) CurrentUser(ctx context.Context) (domain.User, error) {
	f.calls.Add(1)
	if f.release != nil {
		select {
		case <-f.release:
		case <-ctx.Done():
			return domain.User{}, ctx.Err()
		}
	}
	if f.fail {
		return domain.User{}, &apiclient.Error{Kind: apiclient.KindSessionExpired, StatusCode: http.StatusUnauthorized, Message: apiclient.MsgSessionExpired}
	}
	return admin, nil
}

// withToken returns a session holding a token but no user record.
func withToken(t *testing.T, auth *fakeAuth) *session.Session {
	t.Helper()
	sess := session.New(auth, memory.NewStore())
	require.NoError(t, sess.SetCredentials(domain.LoginResult{Access: "t1", Refresh: "r1"}))
	return sess
}

func status(data session.State, loading bool) resource.Status[session.State] {
	return resource.Status[session.State]{Data: data, Loading: loading}
}

func TestEvaluate(t *testing.T) {
	t.Parallel()

	user := admin
	tests := []struct {
		name      string
		st        resource.Status[session.State]
		want      State
		fetchUser bool
	}{
		{"no token", status(session.State{}, false), Unauthorized, false},
		{"token not authenticated", status(session.State{Token: "t1"}, false), Unauthorized, false},
		{"token without user", status(session.State{Token: "t1", IsAuthenticated: true}, false), Checking, true},
		{"token without user while loading", status(session.State{Token: "t1", IsAuthenticated: true}, true), Checking, false},
		{"token and user", status(session.State{Token: "t1", IsAuthenticated: true, User: &user}, false), Authorized, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			d := Evaluate(tt.st)
			require.Equal(t, tt.want, d.State)
			require.Equal(t, tt.fetchUser, d.FetchUser)
		})
	}
}

func TestCheckStartsOneFetch(t *testing.T) {
	t.Parallel()

	auth := &fakeAuth{release: make(chan struct{})}
	g := New(withToken(t, auth))

	d, task := g.Check(context.Background())
	require.Equal(t, Checking, d.State)
	require.NotNil(t, task)

	d, again := g.Check(context.Background())
	require.Equal(t, Checking, d.State)
	require.Nil(t, again)

	close(auth.release)
	require.NoError(t, task.Wait())
	require.Equal(t, int32(1), auth.calls.Load())

	d, _ = g.Check(context.Background())
	require.Equal(t, Authorized, d.State)
}

func TestCheckingFailureBecomesUnauthorized(t *testing.T) {
	t.Parallel()

	g := New(withToken(t, &fakeAuth{fail: true}))

	_, task := g.Check(context.Background())
	require.Error(t, task.Wait())

	d, next := g.Check(context.Background())
	require.Equal(t, Unauthorized, d.State)
	require.Nil(t, next)
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	protected := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	t.Run("unauthorized redirects to login", func(t *testing.T) {
		t.Parallel()

		g := New(session.New(&fakeAuth{}, memory.NewStore()))
		rec := httptest.NewRecorder()
		g.Middleware(protected).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/projects?q=site", nil))

		require.Equal(t, http.StatusSeeOther, rec.Code)
		require.Equal(t, "/login?next=%2Fprojects%3Fq%3Dsite", rec.Header().Get("Location"))
	})

	t.Run("checking shows the loading indicator", func(t *testing.T) {
		t.Parallel()

		auth := &fakeAuth{release: make(chan struct{})}
		t.Cleanup(func() { close(auth.release) })
		g := New(withToken(t, auth))
		g.Settle = 10 * time.Millisecond

		rec := httptest.NewRecorder()
		g.Middleware(protected).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/projects", nil))

		require.Equal(t, http.StatusAccepted, rec.Code)
		require.Equal(t, "1", rec.Header().Get("Retry-After"))
		require.JSONEq(t, `{"state":"checking","message":"Verifying your identity..."}`, rec.Body.String())
	})

	t.Run("checking settles into authorized", func(t *testing.T) {
		t.Parallel()

		g := New(withToken(t, &fakeAuth{}))
		rec := httptest.NewRecorder()
		g.Middleware(protected).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/projects", nil))

		require.Equal(t, http.StatusTeapot, rec.Code)
	})

	t.Run("authorized passes through", func(t *testing.T) {
		t.Parallel()

		sess := session.New(&fakeAuth{}, memory.NewStore())
		require.NoError(t, sess.SetCredentials(domain.LoginResult{Access: "t1", User: admin}))

		rec := httptest.NewRecorder()
		New(sess).Middleware(protected).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/me", nil))
		require.Equal(t, http.StatusTeapot, rec.Code)
	})
}

func TestLoginURL(t *testing.T) {
	t.Parallel()

	require.Equal(t, "/login", LoginURL("/login", ""))
	require.Equal(t, "/login", LoginURL("/login", "/login"))
	require.Equal(t, "/login?next=%2Finvoices", LoginURL("/login", "/invoices"))
}

func TestSafeNext(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"":                     "/",
		"/projects":            "/projects",
		"/projects?q=a":        "/projects?q=a",
		"//evil.example.com":   "/",
		"https://evil.example": "/",
		"projects":             "/",
		`/\evil.example.com`:   "/",
		"javascript:alert(1)":  "/",
	}
	for next, want := range tests {
		require.Equal(t, want, SafeNext(next, "/"), next)
	}
}
