package http

import (
	"net/http"
	"strings"

	"github.com/aussiebroadwan/ideadesk/internal/domain"
	"github.com/aussiebroadwan/ideadesk/internal/state"
	"github.com/aussiebroadwan/ideadesk/pkg/httpx"
)

// ContentHandler binds the CMS views. Content is addressed by slug.
type ContentHandler struct {
	State *state.Store
}

func (h *ContentHandler) list(w http.ResponseWriter, r *http.Request, code int) {
	st := h.State.Content.Snapshot()
	view := newListView(st, st.Data.Contents, r.URL.Query().Get("q"), state.ContentFields).
		withStats(st.Data.Stats())
	httpx.WriteJSON(w, code, view)
}

func pathSlug(w http.ResponseWriter, r *http.Request) (string, bool) {
	slug := strings.TrimSpace(r.PathValue("slug"))
	if slug == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Missing slug in path")
		return "", false
	}
	return slug, true
}

// HandleList handles GET /content. type and status filter on the server.
func (h *ContentHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	task := h.State.Dispatch(r.Context(), state.FetchContents{Filter: domain.ContentFilter{
		ContentType: q.Get("type"),
		Status:      domain.ContentStatus(q.Get("status")),
	}})
	h.list(w, r, outcome(task, http.StatusOK))
}

// HandleCategories handles GET /content/categories.
func (h *ContentHandler) HandleCategories(w http.ResponseWriter, r *http.Request) {
	code := outcome(h.State.Dispatch(r.Context(), state.FetchCategories{}), http.StatusOK)
	st := h.State.Content.Snapshot()
	httpx.WriteJSON(w, code, newListView(st, st.Data.Categories, r.URL.Query().Get("q"), state.CategoryFields))
}

// HandleTags handles GET /content/tags.
func (h *ContentHandler) HandleTags(w http.ResponseWriter, r *http.Request) {
	code := outcome(h.State.Dispatch(r.Context(), state.FetchTags{}), http.StatusOK)
	st := h.State.Content.Snapshot()
	httpx.WriteJSON(w, code, newListView(st, st.Data.Tags, r.URL.Query().Get("q"), state.TagFields))
}

// HandlePublish handles POST /content/{slug}/publish.
func (h *ContentHandler) HandlePublish(w http.ResponseWriter, r *http.Request) {
	slug, ok := pathSlug(w, r)
	if !ok {
		return
	}
	task := h.State.Dispatch(r.Context(), state.PublishContent{Slug: slug})
	h.list(w, r, outcome(task, http.StatusOK))
}

// HandleArchive handles POST /content/{slug}/archive.
func (h *ContentHandler) HandleArchive(w http.ResponseWriter, r *http.Request) {
	slug, ok := pathSlug(w, r)
	if !ok {
		return
	}
	task := h.State.Dispatch(r.Context(), state.ArchiveContent{Slug: slug})
	h.list(w, r, outcome(task, http.StatusOK))
}

// HandleDelete handles DELETE /content/{slug}.
func (h *ContentHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	slug, ok := pathSlug(w, r)
	if !ok {
		return
	}
	task := h.State.Dispatch(r.Context(), state.DeleteContent{Slug: slug})
	h.list(w, r, outcome(task, http.StatusOK))
}
