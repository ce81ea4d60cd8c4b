package http

import (
	"net/http"

	"github.com/aussiebroadwan/ideadesk/internal/domain"
	"github.com/aussiebroadwan/ideadesk/internal/state"
	"github.com/aussiebroadwan/ideadesk/pkg/httpx"
)

// UsersHandler binds the user management views.
type UsersHandler struct {
	State *state.Store
}

// list renders the users view. Besides q, role narrows the items to one role.
func (h *UsersHandler) list(w http.ResponseWriter, r *http.Request, code int) {
	st := h.State.Users.Snapshot()
	q := r.URL.Query()

	view := newListView(st, st.Data.Users, "", state.UserFields).withStats(st.Data.Stats())
	view.Items = state.SearchUsers(st.Data.Users.Items, q.Get("q"), domain.Role(q.Get("role")))
	httpx.WriteJSON(w, code, view)
}

// HandleList handles GET /users.
func (h *UsersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	task := h.State.Dispatch(r.Context(), state.FetchUsers{Query: serverQuery(r.URL.Query())})
	h.list(w, r, outcome(task, http.StatusOK))
}

// HandleActivate handles POST /users/{id}/activate.
func (h *UsersHandler) HandleActivate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	task := h.State.Dispatch(r.Context(), state.ActivateUser{ID: id})
	h.list(w, r, outcome(task, http.StatusOK))
}

// HandleDeactivate handles POST /users/{id}/deactivate.
func (h *UsersHandler) HandleDeactivate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	task := h.State.Dispatch(r.Context(), state.DeactivateUser{ID: id})
	h.list(w, r, outcome(task, http.StatusOK))
}

// HandleDelete handles DELETE /users/{id}.
func (h *UsersHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	task := h.State.Dispatch(r.Context(), state.DeleteUser{ID: id})
	h.list(w, r, outcome(task, http.StatusOK))
}
