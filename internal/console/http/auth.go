package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/ideadesk/internal/domain"
	"github.com/aussiebroadwan/ideadesk/internal/guard"
	"github.com/aussiebroadwan/ideadesk/internal/state"
	"github.com/aussiebroadwan/ideadesk/pkg/httpx"
	"github.com/aussiebroadwan/ideadesk/pkg/slogx"
)

// LoginView is the body of the login view.
type LoginView struct {
	State guard.State  `json:"state"`
	Next  string       `json:"next"`
	User  *domain.User `json:"user,omitempty"`
	Error string       `json:"error,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Next     string `json:"next"`
}

// SessionHandler serves the sign in, sign out and current user views.
type SessionHandler struct {
	State *state.Store

	// Home is where a signed in caller lands when next is unusable.
	Home      string
	LoginPath string
}

// HandleLoginView handles GET /login. A signed in caller is sent on to next.
func (h *SessionHandler) HandleLoginView(w http.ResponseWriter, r *http.Request) {
	next := guard.SafeNext(r.URL.Query().Get("next"), h.Home)
	st := h.State.Session.Snapshot()

	d := guard.Evaluate(st)
	if d.State == guard.Authorized {
		httpx.NoCache(w)
		http.Redirect(w, r, next, http.StatusSeeOther)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, LoginView{
		State: d.State,
		Next:  next,
		Error: st.Error,
	})
}

// HandleLogin handles POST /login. Accepts JSON or a urlencoded form.
func (h *SessionHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req loginRequest
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
		if err := r.ParseForm(); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Invalid form body")
			return
		}
		req = loginRequest{
			Email:    r.PostForm.Get("email"),
			Password: r.PostForm.Get("password"),
			Next:     r.PostForm.Get("next"),
		}
	} else if !decodeBody(w, r, &req) {
		return
	}
	if req.Next == "" {
		req.Next = r.URL.Query().Get("next")
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Email and password are required")
		return
	}

	task := h.State.Dispatch(ctx, state.Login{Credentials: domain.Credentials{
		Email:    req.Email,
		Password: req.Password,
	}})
	code := outcome(task, http.StatusOK)

	st := h.State.Session.Snapshot()
	view := LoginView{
		State: guard.Evaluate(st).State,
		Next:  guard.SafeNext(req.Next, h.Home),
		User:  st.Data.User,
		Error: st.Error,
	}
	if code != http.StatusOK {
		log.Info("login_failed", "status", code)
	}
	httpx.WriteJSON(w, code, view)
}

// HandleLogout handles POST /logout. The session is cleared even when the
// caller goes away mid request.
func (h *SessionHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	task := h.State.Dispatch(context.WithoutCancel(r.Context()), state.Logout{})
	if err := task.Wait(); err != nil {
		slogx.FromContext(r.Context()).Warn("logout_revoke_failed", "error", err)
	}

	httpx.WriteJSON(w, http.StatusOK, LoginView{
		State: guard.Evaluate(h.State.Session.Snapshot()).State,
		Next:  h.LoginPath,
	})
}

// HandleMe handles GET /me.
func (h *SessionHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, h.State.Session.Snapshot())
}
