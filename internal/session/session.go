// Package session holds the signed in operator: the bearer tokens, the user
// record and whether the client considers itself authenticated. The tokens of
// the applied state are mirrored into a store.Store so a restart resumes the
// session.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/aussiebroadwan/ideadesk/internal/datasource"
	"github.com/aussiebroadwan/ideadesk/internal/domain"
	"github.com/aussiebroadwan/ideadesk/internal/resource"
	"github.com/aussiebroadwan/ideadesk/internal/store"
	"github.com/aussiebroadwan/ideadesk/pkg/apiclient"
	"github.com/aussiebroadwan/ideadesk/pkg/slogx"
)

// Operation kinds.
const (
	KindLogin       = "login"
	KindLogout      = "logout"
	KindCurrentUser = "current_user"
)

// Every session operation shares one lane, so a late login cannot undo a
// later logout.
const lane = "session"

const persistTimeout = 5 * time.Second

// MsgSignedOut is the success message of an applied logout.
const MsgSignedOut = "You have been signed out."

// State is the session data. Tokens never leave the process in JSON.
type State struct {
	Token           string       `json:"-"`
	RefreshToken    string       `json:"-"`
	User            *domain.User `json:"user"`
	IsAuthenticated bool         `json:"is_authenticated"`
}

type tokens struct{ access, refresh string }

// Session is the auth slice.
type Session struct {
	slice *resource.Slice[State]
	auth  datasource.Auth
	store store.Store

	// persistMu serialises mirror writes; persisted is what storage holds.
	persistMu  sync.Mutex
	persisted  tokens
	persistErr error
}

var _ apiclient.TokenSource = (*Session)(nil)

// New returns a signed out session. Call Restore to pick up persisted tokens.
func New(auth datasource.Auth, st store.Store, opts ...resource.Option) *Session {
	s := &Session{
		slice: resource.NewSlice("auth", State{}, opts...),
		auth:  auth,
		store: st,
	}
	s.slice.Subscribe(s.mirror)
	return s
}

// Slice exposes the underlying slice for subscriptions.
func (s *Session) Slice() *resource.Slice[State] { return s.slice }

func (s *Session) Snapshot() resource.Status[State] { return s.slice.Snapshot() }

// AccessToken implements apiclient.TokenSource.
func (s *Session) AccessToken() string { return s.slice.Snapshot().Data.Token }

// PersistErr returns the last storage failure, or nil once a write succeeds.
func (s *Session) PersistErr() error {
	s.persistMu.Lock()
	defer s.persistMu.Unlock()
	return s.persistErr
}

// Restore loads the persisted tokens. A JWT access token that has already
// expired is discarded together with its refresh token; opaque tokens are
// trusted until the server says otherwise.
func (s *Session) Restore(ctx context.Context) error {
	vals := s.store.Values()

	access, err := lookup(ctx, vals, store.KeyAccessToken)
	if err != nil {
		return err
	}
	refresh, err := lookup(ctx, vals, store.KeyRefreshToken)
	if err != nil {
		return err
	}

	s.persistMu.Lock()
	s.persisted = tokens{access: access, refresh: refresh}
	s.persistMu.Unlock()

	if access != "" && expired(access, time.Now()) {
		slogx.FromContext(ctx).Info("session_expired_on_restore")
		access, refresh = "", ""
	}

	s.slice.Update(func(st *State) {
		*st = State{Token: access, RefreshToken: refresh, IsAuthenticated: access != ""}
	})
	return s.PersistErr()
}

// Login exchanges credentials for tokens.
func (s *Session) Login(ctx context.Context, creds domain.Credentials) *resource.Task {
	return resource.Dispatch(ctx, s.slice, resource.Op[State, domain.LoginResult]{
		Kind: KindLogin,
		Lane: lane,
		Run: func(ctx context.Context) (domain.LoginResult, error) {
			return s.auth.Login(ctx, creds)
		},
		Reduce: func(st *State, res domain.LoginResult) {
			*st = signedIn(res)
		},
	})
}

// Logout revokes the refresh token when there is one. The session is signed
// out whether or not the server call succeeds.
func (s *Session) Logout(ctx context.Context) *resource.Task {
	refresh := s.slice.Snapshot().Data.RefreshToken

	return resource.Dispatch(ctx, s.slice, resource.Op[State, resource.Empty]{
		Kind:    KindLogout,
		Lane:    lane,
		Success: MsgSignedOut,
		Run: func(ctx context.Context) (resource.Empty, error) {
			if refresh == "" {
				return resource.Empty{}, nil
			}
			return resource.Empty{}, s.auth.Logout(ctx, refresh)
		},
		Reduce: func(st *State, _ resource.Empty) { *st = State{} },
		Fail:   func(st *State, _ error) { *st = State{} },
	})
}

// GetCurrentUser loads the user that owns the access token. Any failure
// signs the session out.
func (s *Session) GetCurrentUser(ctx context.Context) *resource.Task {
	return resource.Dispatch(ctx, s.slice, resource.Op[State, domain.User]{
		Kind: KindCurrentUser,
		Lane: lane,
		Run:  s.auth.CurrentUser,
		Reduce: func(st *State, u domain.User) {
			st.User = &u
			st.IsAuthenticated = true
		},
		Fail: func(st *State, _ error) { *st = State{} },
	})
}

// SetCredentials installs tokens obtained elsewhere.
func (s *Session) SetCredentials(res domain.LoginResult) error {
	s.slice.Update(func(st *State) { *st = signedIn(res) })
	return s.PersistErr()
}

func (s *Session) ClearError() { s.slice.ClearError() }

// Invalidate signs the session out after the server rejected its token. In
// flight session operations are canceled first.
func (s *Session) Invalidate() {
	s.slice.CancelAll()
	s.slice.Update(func(st *State) { *st = State{} })
	s.slice.SetError(apiclient.MsgSessionExpired)
}

// Expire invalidates the session when token is still its access token. A
// rejection of a token the session has already replaced is ignored. It
// reports whether the session was signed out.
func (s *Session) Expire(token string) bool {
	current := false
	s.slice.Update(func(st *State) {
		if st.Token == token {
			*st = State{}
			current = true
		}
	})
	if !current {
		return false
	}
	s.slice.CancelAll()
	s.slice.SetError(apiclient.MsgSessionExpired)
	return true
}

func signedIn(res domain.LoginResult) State {
	user := res.User
	return State{Token: res.Access, RefreshToken: res.Refresh, User: &user, IsAuthenticated: true}
}

// mirror writes the tokens of the current state to storage. It always reads
// the latest snapshot, so the last write wins regardless of notification
// order.
func (s *Session) mirror() {
	s.persistMu.Lock()
	defer s.persistMu.Unlock()

	data := s.slice.Snapshot().Data
	want := tokens{access: data.Token, refresh: data.RefreshToken}
	if want == s.persisted {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	if err := s.write(ctx, want); err != nil {
		s.persistErr = err
		slogx.FromContext(ctx).Warn("session_persist_failed", "err", err)
		return
	}
	s.persisted, s.persistErr = want, nil
}

func (s *Session) write(ctx context.Context, t tokens) error {
	if t.access == "" {
		if err := s.store.Values().Delete(ctx, store.KeyAccessToken, store.KeyRefreshToken); err != nil {
			return fmt.Errorf("failed to clear session: %w", err)
		}
		return nil
	}

	err := s.store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Values().Set(ctx, store.KeyAccessToken, t.access); err != nil {
			return err
		}
		if t.refresh == "" {
			return tx.Values().Delete(ctx, store.KeyRefreshToken)
		}
		return tx.Values().Set(ctx, store.KeyRefreshToken, t.refresh)
	})
	if err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}
	return nil
}

func lookup(ctx context.Context, vals store.Values, key string) (string, error) {
	v, err := vals.Get(ctx, key)
	if errors.Is(err, store.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", key, err)
	}
	return v, nil
}

// expired reports whether token is a JWT whose exp is not after now. The
// signature is not checked; the server remains the authority.
func expired(token string, now time.Time) bool {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return false
	}
	return claims.ExpiresAt != nil && !claims.ExpiresAt.After(now)
}
