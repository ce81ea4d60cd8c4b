// Package guard decides whether a protected view may be shown, based on the
// session alone.
package guard

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/aussiebroadwan/ideadesk/internal/resource"
	"github.com/aussiebroadwan/ideadesk/internal/session"
	"github.com/aussiebroadwan/ideadesk/pkg/httpx"
)

// State is the guard state for one evaluation.
type State int

const (
	// Checking: a token exists but the user record has not been loaded.
	Checking State = iota
	Authorized
	Unauthorized
)

func (s State) String() string {
	switch s {
	case Checking:
		return "checking"
	case Authorized:
		return "authorized"
	case Unauthorized:
		return "unauthorized"
	default:
		return "unknown"
	}
}

func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *State) UnmarshalText(b []byte) error {
	for _, st := range []State{Checking, Authorized, Unauthorized} {
		if st.String() == string(b) {
			*s = st
			return nil
		}
	}
	return fmt.Errorf("guard: unknown state %q", b)
}

// Decision is the outcome of Evaluate.
type Decision struct {
	State State `json:"state"`

	// FetchUser is set when the user record should be requested now.
	FetchUser bool `json:"-"`
}

// Evaluate maps a session snapshot to a guard decision. It has no side effects.
func Evaluate(st resource.Status[session.State]) Decision {
	data := st.Data
	switch {
	case data.Token == "" || !data.IsAuthenticated:
		return Decision{State: Unauthorized}
	case data.User == nil:
		return Decision{State: Checking, FetchUser: !st.Loading}
	default:
		return Decision{State: Authorized}
	}
}

const (
	DefaultLoginPath = "/login"
	checkingMessage  = "Verifying your identity..."
)

// Guard gates protected views on a session.
type Guard struct {
	sess *session.Session

	// LoginPath is where unauthorized callers are sent.
	LoginPath string

	// Settle is how long the middleware waits for a user fetch it started
	// before answering with the loading indicator.
	Settle time.Duration

	mu sync.Mutex
}

func New(sess *session.Session) *Guard {
	return &Guard{sess: sess, LoginPath: DefaultLoginPath, Settle: 2 * time.Second}
}

// Check evaluates the session and starts the user fetch when needed. The
// returned task is nil unless this call started the fetch. The fetch outlives
// ctx's cancellation.
func (g *Guard) Check(ctx context.Context) (Decision, *resource.Task) {
	g.mu.Lock()
	defer g.mu.Unlock()

	d := Evaluate(g.sess.Snapshot())
	if !d.FetchUser {
		return d, nil
	}
	return d, g.sess.GetCurrentUser(context.WithoutCancel(ctx))
}

// Middleware renders the guard decision over HTTP. Checking answers 202 with
// Retry-After, Unauthorized redirects to the login path with the requested
// location in next.
func (g *Guard) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		d, task := g.Check(r.Context())

		if d.State == Checking && task != nil && g.Settle > 0 {
			timer := time.NewTimer(g.Settle)
			select {
			case <-task.Done():
				d = Evaluate(g.sess.Snapshot())
			case <-timer.C:
			case <-r.Context().Done():
			}
			timer.Stop()
		}

		switch d.State {
		case Authorized:
			next.ServeHTTP(w, r)
		case Checking:
			w.Header().Set("Retry-After", "1")
			httpx.WriteJSON(w, http.StatusAccepted, map[string]string{
				"state":   Checking.String(),
				"message": checkingMessage,
			})
		default:
			httpx.NoCache(w)
			http.Redirect(w, r, LoginURL(g.LoginPath, r.URL.RequestURI()), http.StatusSeeOther)
		}
	})
}

// LoginURL returns loginPath carrying the requested location.
func LoginURL(loginPath, requested string) string {
	if requested == "" || requested == loginPath {
		return loginPath
	}
	return loginPath + "?next=" + url.QueryEscape(requested)
}

// SafeNext returns next when it is a path on this host and fallback
// otherwise. The redirect target after login is advisory only.
func SafeNext(next, fallback string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.Contains(next, `\`) {
		return fallback
	}
	u, err := url.Parse(next)
	if err != nil || u.IsAbs() || u.Host != "" {
		return fallback
	}
	return next
}
