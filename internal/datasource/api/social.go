package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/aussiebroadwan/ideadesk/internal/domain"
	"github.com/aussiebroadwan/ideadesk/pkg/apiclient"
)

type socialSource struct{ c *apiclient.Client }

func postPath(id domain.ID) string { return "/api/social-media/posts/" + id.String() + "/" }

func (s socialSource) ListAccounts(ctx context.Context) (apiclient.Page[domain.SocialAccount], error) {
	return list[domain.SocialAccount](ctx, s.c, "/api/social-media/accounts/", nil)
}

func (s socialSource) ListPosts(ctx context.Context, query url.Values) (apiclient.Page[domain.Post], error) {
	return list[domain.Post](ctx, s.c, "/api/social-media/posts/", query)
}

func (s socialSource) ListCampaigns(ctx context.Context) (apiclient.Page[domain.Campaign], error) {
	return list[domain.Campaign](ctx, s.c, "/api/social-media/campaigns/", nil)
}

func (s socialSource) CreatePost(ctx context.Context, in domain.PostInput) (domain.Post, error) {
	return apiclient.Fetch[domain.Post](ctx, s.c, http.MethodPost, "/api/social-media/posts/", in, nil)
}

func (s socialSource) PublishPost(ctx context.Context, id domain.ID) (domain.Post, error) {
	return action[domain.Post](ctx, s.c, postPath(id)+"publish/", nil, postPath(id), "id")
}
