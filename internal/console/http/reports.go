package http

import (
	"net/http"

	"github.com/aussiebroadwan/ideadesk/internal/domain"
	"github.com/aussiebroadwan/ideadesk/internal/state"
	"github.com/aussiebroadwan/ideadesk/pkg/httpx"
)

// ReportsHandler binds the reports views.
type ReportsHandler struct {
	State *state.Store
}

type generateRequest struct {
	Type domain.ReportType `json:"report_type"`
	domain.DateRange
}

func (h *ReportsHandler) list(w http.ResponseWriter, r *http.Request, code int) {
	st := h.State.Reports.Snapshot()
	view := newListView(st, st.Data.Reports, r.URL.Query().Get("q"), state.ReportFields).
		withStats(st.Data.Stats())
	httpx.WriteJSON(w, code, view)
}

// HandleList handles GET /reports.
func (h *ReportsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	task := h.State.Dispatch(r.Context(), state.FetchReports{Query: serverQuery(r.URL.Query())})
	h.list(w, r, outcome(task, http.StatusOK))
}

// HandleDashboard handles GET /reports/dashboard.
func (h *ReportsHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	task := h.State.Dispatch(r.Context(), state.FetchDashboardStats{})
	code := outcome(task, http.StatusOK)
	st := h.State.Reports.Snapshot()
	httpx.WriteJSON(w, code, newItemView(st, st.Data.Dashboard))
}

// HandleGenerate handles POST /reports/generate.
func (h *ReportsHandler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	var in generateRequest
	if !decodeBody(w, r, &in) {
		return
	}
	task := h.State.Dispatch(r.Context(), state.GenerateReport{Type: in.Type, Period: in.DateRange})
	h.list(w, r, outcome(task, http.StatusCreated))
}
