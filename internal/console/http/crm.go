package http

import (
	"net/http"

	"github.com/aussiebroadwan/ideadesk/internal/domain"
	"github.com/aussiebroadwan/ideadesk/internal/state"
	"github.com/aussiebroadwan/ideadesk/pkg/httpx"
)

// CRMHandler binds the clients and leads views. Both share one slice.
type CRMHandler struct {
	State *state.Store
}

func (h *CRMHandler) clients(w http.ResponseWriter, r *http.Request, code int) {
	st := h.State.Clients.Snapshot()
	view := newListView(st, st.Data.Clients, r.URL.Query().Get("q"), state.ClientFields).
		withStats(st.Data.Stats())
	httpx.WriteJSON(w, code, view)
}

func (h *CRMHandler) leads(w http.ResponseWriter, r *http.Request, code int) {
	st := h.State.Clients.Snapshot()
	view := newListView(st, st.Data.Leads, r.URL.Query().Get("q"), state.LeadFields).
		withStats(st.Data.Stats())
	httpx.WriteJSON(w, code, view)
}

// HandleListClients handles GET /clients.
func (h *CRMHandler) HandleListClients(w http.ResponseWriter, r *http.Request) {
	task := h.State.Dispatch(r.Context(), state.FetchClients{Query: serverQuery(r.URL.Query())})
	h.clients(w, r, outcome(task, http.StatusOK))
}

// HandleCreateClient handles POST /clients.
func (h *CRMHandler) HandleCreateClient(w http.ResponseWriter, r *http.Request) {
	var in domain.ClientInput
	if !decodeBody(w, r, &in) {
		return
	}
	task := h.State.Dispatch(r.Context(), state.CreateClient{Input: in})
	h.clients(w, r, outcome(task, http.StatusCreated))
}

// HandleListLeads handles GET /leads.
func (h *CRMHandler) HandleListLeads(w http.ResponseWriter, r *http.Request) {
	task := h.State.Dispatch(r.Context(), state.FetchLeads{Query: serverQuery(r.URL.Query())})
	h.leads(w, r, outcome(task, http.StatusOK))
}

// HandleCreateLead handles POST /leads.
func (h *CRMHandler) HandleCreateLead(w http.ResponseWriter, r *http.Request) {
	var in domain.LeadInput
	if !decodeBody(w, r, &in) {
		return
	}
	task := h.State.Dispatch(r.Context(), state.CreateLead{Input: in})
	h.leads(w, r, outcome(task, http.StatusCreated))
}

// HandleConvertLead handles POST /leads/{id}/convert. The response is the
// clients view, where the new client now leads the list.
func (h *CRMHandler) HandleConvertLead(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	task := h.State.Dispatch(r.Context(), state.ConvertLead{ID: id})
	h.clients(w, r, outcome(task, http.StatusOK))
}
