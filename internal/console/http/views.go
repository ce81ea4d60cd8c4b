package http

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/aussiebroadwan/ideadesk/internal/domain"
	"github.com/aussiebroadwan/ideadesk/internal/resource"
	"github.com/aussiebroadwan/ideadesk/pkg/apiclient"
	"github.com/aussiebroadwan/ideadesk/pkg/httpx"
)

// ListView is the body of every list view.
type ListView[T any] struct {
	Items      []T                  `json:"items"`
	Loading    bool                 `json:"loading"`
	Pending    []resource.Pending   `json:"pending,omitempty"`
	Error      string               `json:"error,omitempty"`
	Success    string               `json:"success,omitempty"`
	Pagination *resource.Pagination `json:"pagination,omitempty"`
	Stats      any                  `json:"stats,omitempty"`
}

func newListView[S any, T resource.Keyed](st resource.Status[S], c resource.Collection[T], term string, fields func(T) []string) ListView[T] {
	p := c.Pagination
	return ListView[T]{
		Items:      resource.Filter(c.Items, term, fields),
		Loading:    st.Loading,
		Pending:    st.Pending,
		Error:      st.Error,
		Success:    st.Success,
		Pagination: &p,
	}
}

func (v ListView[T]) withStats(stats any) ListView[T] {
	v.Stats = stats
	return v
}

// ItemView is the body of single record views.
type ItemView[T any] struct {
	Item    *T                 `json:"item"`
	Loading bool               `json:"loading"`
	Pending []resource.Pending `json:"pending,omitempty"`
	Error   string             `json:"error,omitempty"`
	Success string             `json:"success,omitempty"`
}

func newItemView[S, T any](st resource.Status[S], item *T) ItemView[T] {
	return ItemView[T]{
		Item:    item,
		Loading: st.Loading,
		Pending: st.Pending,
		Error:   st.Error,
		Success: st.Success,
	}
}

// outcome waits for task and returns the status code for its result. A result
// superseded by a newer operation still renders with ok.
func outcome(task *resource.Task, ok int) int {
	err := task.Wait()
	if err == nil || errors.Is(err, resource.ErrSuperseded) {
		return ok
	}
	return errorStatus(err)
}

func errorStatus(err error) int {
	if errors.Is(err, resource.ErrCanceled) {
		return http.StatusRequestTimeout
	}

	var apiErr *apiclient.Error
	if !errors.As(err, &apiErr) {
		return http.StatusInternalServerError
	}

	switch apiErr.Kind {
	case apiclient.KindSessionExpired:
		return http.StatusUnauthorized
	case apiclient.KindValidation:
		return http.StatusBadRequest
	case apiclient.KindCanceled:
		return http.StatusRequestTimeout
	case apiclient.KindServer:
		if apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 {
			return apiErr.StatusCode
		}
		return http.StatusBadGateway
	default:
		return http.StatusBadGateway
	}
}

// serverQuery drops the console-only parameters before a query is forwarded.
func serverQuery(q url.Values) url.Values {
	out := url.Values{}
	for k, v := range q {
		switch k {
		case "q", "role":
			continue
		}
		out[k] = v
	}
	return out
}

func pathID(w http.ResponseWriter, r *http.Request) (domain.ID, bool) {
	id, err := domain.ParseID(r.PathValue("id"))
	if err != nil || id <= 0 {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Invalid id in path")
		return 0, false
	}
	return id, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := httpx.DecodeJSON(r, v); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON in request body")
		return false
	}
	return true
}
