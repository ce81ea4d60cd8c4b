package http

import (
	"net/http"

	"github.com/aussiebroadwan/ideadesk/internal/domain"
	"github.com/aussiebroadwan/ideadesk/internal/state"
	"github.com/aussiebroadwan/ideadesk/pkg/httpx"
)

// InvoicesHandler binds the invoices views.
type InvoicesHandler struct {
	State *state.Store
}

func (h *InvoicesHandler) list(w http.ResponseWriter, r *http.Request, code int) {
	st := h.State.Invoices.Snapshot()
	view := newListView(st, st.Data.Invoices, r.URL.Query().Get("q"), state.InvoiceFields).
		withStats(st.Data.Stats())
	httpx.WriteJSON(w, code, view)
}

func (h *InvoicesHandler) item(w http.ResponseWriter, code int, id domain.ID) {
	st := h.State.Invoices.Snapshot()
	var item *domain.Invoice
	if inv, ok := st.Data.Invoices.Find(id.String()); ok {
		item = &inv
	}
	httpx.WriteJSON(w, code, newItemView(st, item))
}

// HandleList handles GET /invoices.
func (h *InvoicesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	task := h.State.Dispatch(r.Context(), state.FetchInvoices{Query: serverQuery(r.URL.Query())})
	h.list(w, r, outcome(task, http.StatusOK))
}

// HandleCreate handles POST /invoices.
func (h *InvoicesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in domain.InvoiceInput
	if !decodeBody(w, r, &in) {
		return
	}
	task := h.State.Dispatch(r.Context(), state.CreateInvoice{Input: in})
	h.list(w, r, outcome(task, http.StatusCreated))
}

// HandleUpdate handles PUT /invoices/{id}.
func (h *InvoicesHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in domain.InvoiceInput
	if !decodeBody(w, r, &in) {
		return
	}
	task := h.State.Dispatch(r.Context(), state.UpdateInvoice{ID: id, Input: in})
	h.item(w, outcome(task, http.StatusOK), id)
}

// HandleSend handles POST /invoices/{id}/send.
func (h *InvoicesHandler) HandleSend(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	task := h.State.Dispatch(r.Context(), state.SendInvoice{ID: id})
	h.item(w, outcome(task, http.StatusOK), id)
}

// HandleMarkPaid handles POST /invoices/{id}/mark-paid.
func (h *InvoicesHandler) HandleMarkPaid(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var payment domain.Payment
	if !decodeBody(w, r, &payment) {
		return
	}
	task := h.State.Dispatch(r.Context(), state.MarkInvoicePaid{ID: id, Payment: payment})
	h.item(w, outcome(task, http.StatusOK), id)
}
