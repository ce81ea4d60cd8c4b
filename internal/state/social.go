package state

import (
	"context"
	"net/url"

	"github.com/aussiebroadwan/ideadesk/internal/domain"
	"github.com/aussiebroadwan/ideadesk/internal/resource"
	"github.com/aussiebroadwan/ideadesk/pkg/apiclient"
)

const (
	KindFetchAccounts  = "fetch_accounts"
	KindFetchPosts     = "fetch_posts"
	KindFetchCampaigns = "fetch_campaigns"
	KindCreatePost     = "create_post"
	KindPublishPost    = "publish_post"
)

type Social struct {
	Accounts  resource.Collection[domain.SocialAccount] `json:"accounts"`
	Posts     resource.Collection[domain.Post]          `json:"posts"`
	Campaigns resource.Collection[domain.Campaign]      `json:"campaigns"`
}

type SocialStats struct {
	ActiveAccounts int `json:"active_accounts"`
	Published      int `json:"published"`
	Scheduled      int `json:"scheduled"`
}

func (so Social) Stats() SocialStats {
	return SocialStats{
		ActiveAccounts: so.Accounts.Count(func(a domain.SocialAccount) bool { return a.IsActive }),
		Published:      so.Posts.Count(func(p domain.Post) bool { return p.Status == domain.PostPublished }),
		Scheduled:      so.Posts.Count(func(p domain.Post) bool { return p.Status == domain.PostScheduled }),
	}
}

func accountsLens(st *Social) *resource.Collection[domain.SocialAccount] { return &st.Accounts }
func postsLens(st *Social) *resource.Collection[domain.Post]             { return &st.Posts }
func campaignsLens(st *Social) *resource.Collection[domain.Campaign]     { return &st.Campaigns }

type FetchAccounts struct{}

func (FetchAccounts) dispatch(ctx context.Context, s *Store) *resource.Task {
	return resource.Dispatch(ctx, s.Social, resource.ListOp(KindFetchAccounts, accountsLens,
		s.src.Social().ListAccounts))
}

type FetchPosts struct{ Query url.Values }

func (a FetchPosts) dispatch(ctx context.Context, s *Store) *resource.Task {
	return resource.Dispatch(ctx, s.Social, resource.ListOp(KindFetchPosts, postsLens,
		func(ctx context.Context) (apiclient.Page[domain.Post], error) {
			return s.src.Social().ListPosts(ctx, a.Query)
		}))
}

type FetchCampaigns struct{}

func (FetchCampaigns) dispatch(ctx context.Context, s *Store) *resource.Task {
	return resource.Dispatch(ctx, s.Social, resource.ListOp(KindFetchCampaigns, campaignsLens,
		s.src.Social().ListCampaigns))
}

type CreatePost struct{ Input domain.PostInput }

func (a CreatePost) dispatch(ctx context.Context, s *Store) *resource.Task {
	return resource.Dispatch(ctx, s.Social, resource.CreateOp(KindCreatePost, postsLens,
		func(ctx context.Context) (domain.Post, error) {
			return s.src.Social().CreatePost(ctx, a.Input)
		}, "Post created successfully"))
}

type PublishPost struct{ ID domain.ID }

func (a PublishPost) dispatch(ctx context.Context, s *Store) *resource.Task {
	return resource.Dispatch(ctx, s.Social, resource.UpdateOp(KindPublishPost, a.ID.String(), postsLens,
		func(ctx context.Context) (domain.Post, error) {
			return s.src.Social().PublishPost(ctx, a.ID)
		}, "Post published successfully"))
}
