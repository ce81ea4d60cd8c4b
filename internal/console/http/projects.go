package http

import (
	"net/http"

	"github.com/aussiebroadwan/ideadesk/internal/domain"
	"github.com/aussiebroadwan/ideadesk/internal/state"
	"github.com/aussiebroadwan/ideadesk/pkg/httpx"
)

// ProjectsHandler binds the projects views to the projects slice.
type ProjectsHandler struct {
	State *state.Store
}

func (h *ProjectsHandler) list(w http.ResponseWriter, r *http.Request, code int) {
	st := h.State.Projects.Snapshot()
	view := newListView(st, st.Data.Projects, r.URL.Query().Get("q"), state.ProjectFields).
		withStats(st.Data.Stats())
	httpx.WriteJSON(w, code, view)
}

func (h *ProjectsHandler) item(w http.ResponseWriter, code int, id domain.ID) {
	st := h.State.Projects.Snapshot()
	var item *domain.Project
	if st.Data.Current != nil && st.Data.Current.ID == id {
		item = st.Data.Current
	} else if p, ok := st.Data.Projects.Find(id.String()); ok {
		item = &p
	}
	httpx.WriteJSON(w, code, newItemView(st, item))
}

// HandleList handles GET /projects.
func (h *ProjectsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	task := h.State.Dispatch(r.Context(), state.FetchProjects{Query: serverQuery(r.URL.Query())})
	h.list(w, r, outcome(task, http.StatusOK))
}

// HandleCreate handles POST /projects.
func (h *ProjectsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in domain.ProjectInput
	if !decodeBody(w, r, &in) {
		return
	}
	task := h.State.Dispatch(r.Context(), state.CreateProject{Input: in})
	h.list(w, r, outcome(task, http.StatusCreated))
}

// HandleGet handles GET /projects/{id}.
func (h *ProjectsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	task := h.State.Dispatch(r.Context(), state.FetchProject{ID: id})
	h.item(w, outcome(task, http.StatusOK), id)
}

// HandleUpdate handles PUT /projects/{id}.
func (h *ProjectsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in domain.ProjectInput
	if !decodeBody(w, r, &in) {
		return
	}
	task := h.State.Dispatch(r.Context(), state.UpdateProject{ID: id, Input: in})
	h.item(w, outcome(task, http.StatusOK), id)
}

// HandleDelete handles DELETE /projects/{id}.
func (h *ProjectsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	task := h.State.Dispatch(r.Context(), state.DeleteProject{ID: id})
	h.list(w, r, outcome(task, http.StatusOK))
}
