package http

import (
	"net/http"

	"github.com/aussiebroadwan/ideadesk/internal/domain"
	"github.com/aussiebroadwan/ideadesk/internal/state"
	"github.com/aussiebroadwan/ideadesk/pkg/httpx"
)

// SocialHandler binds the social media views.
type SocialHandler struct {
	State *state.Store
}

func (h *SocialHandler) posts(w http.ResponseWriter, r *http.Request, code int) {
	st := h.State.Social.Snapshot()
	view := newListView(st, st.Data.Posts, r.URL.Query().Get("q"), state.PostFields).
		withStats(st.Data.Stats())
	httpx.WriteJSON(w, code, view)
}

// HandleAccounts handles GET /social/accounts.
func (h *SocialHandler) HandleAccounts(w http.ResponseWriter, r *http.Request) {
	code := outcome(h.State.Dispatch(r.Context(), state.FetchAccounts{}), http.StatusOK)
	st := h.State.Social.Snapshot()
	view := newListView(st, st.Data.Accounts, r.URL.Query().Get("q"), state.AccountFields).
		withStats(st.Data.Stats())
	httpx.WriteJSON(w, code, view)
}

// HandleCampaigns handles GET /social/campaigns.
func (h *SocialHandler) HandleCampaigns(w http.ResponseWriter, r *http.Request) {
	code := outcome(h.State.Dispatch(r.Context(), state.FetchCampaigns{}), http.StatusOK)
	st := h.State.Social.Snapshot()
	httpx.WriteJSON(w, code, newListView(st, st.Data.Campaigns, r.URL.Query().Get("q"), state.CampaignFields))
}

// HandleListPosts handles GET /social/posts.
func (h *SocialHandler) HandleListPosts(w http.ResponseWriter, r *http.Request) {
	task := h.State.Dispatch(r.Context(), state.FetchPosts{Query: serverQuery(r.URL.Query())})
	h.posts(w, r, outcome(task, http.StatusOK))
}

// HandleCreatePost handles POST /social/posts.
func (h *SocialHandler) HandleCreatePost(w http.ResponseWriter, r *http.Request) {
	var in domain.PostInput
	if !decodeBody(w, r, &in) {
		return
	}
	task := h.State.Dispatch(r.Context(), state.CreatePost{Input: in})
	h.posts(w, r, outcome(task, http.StatusCreated))
}

// HandlePublishPost handles POST /social/posts/{id}/publish.
func (h *SocialHandler) HandlePublishPost(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	task := h.State.Dispatch(r.Context(), state.PublishPost{ID: id})
	h.posts(w, r, outcome(task, http.StatusOK))
}
