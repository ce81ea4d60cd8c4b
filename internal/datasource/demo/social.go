package demo

import (
	"context"
	"net/url"
	"strings"

	"github.com/aussiebroadwan/ideadesk/internal/domain"
	"github.com/aussiebroadwan/ideadesk/pkg/apiclient"
)

type socialSource struct{ s *Source }

func (so socialSource) ListAccounts(ctx context.Context) (apiclient.Page[domain.SocialAccount], error) {
	_, done, err := so.s.enter(ctx)
	if err != nil {
		return apiclient.Page[domain.SocialAccount]{}, err
	}
	defer done()
	return page(so.s.accounts, nil), nil
}

func (so socialSource) ListPosts(ctx context.Context, query url.Values) (apiclient.Page[domain.Post], error) {
	_, done, err := so.s.enter(ctx)
	if err != nil {
		return apiclient.Page[domain.Post]{}, err
	}
	defer done()

	status := domain.PostStatus(query.Get("status"))
	return page(so.s.posts, func(p domain.Post) bool {
		return status == "" || p.Status == status
	}), nil
}

func (so socialSource) ListCampaigns(ctx context.Context) (apiclient.Page[domain.Campaign], error) {
	_, done, err := so.s.enter(ctx)
	if err != nil {
		return apiclient.Page[domain.Campaign]{}, err
	}
	defer done()
	return page(so.s.campaigns, nil), nil
}

func (so socialSource) CreatePost(ctx context.Context, in domain.PostInput) (domain.Post, error) {
	_, done, err := so.s.enter(ctx)
	if err != nil {
		return domain.Post{}, err
	}
	defer done()

	if strings.TrimSpace(in.Content) == "" {
		return domain.Post{}, invalid("content", "This field may not be blank.")
	}
	ai := indexOf(so.s.accounts, in.Account.String())
	if ai < 0 {
		return domain.Post{}, invalid("account", `Invalid pk "`+in.Account.String()+`" - object does not exist.`)
	}
	acc := so.s.accounts[ai]

	p := domain.Post{
		ID:          so.s.newID(),
		Account:     acc.ID,
		AccountName: acc.AccountName,
		Platform:    acc.Platform,
		Content:     in.Content,
		MediaURLs:   in.MediaURLs,
		Status:      domain.PostDraft,
		ScheduledAt: in.ScheduledAt,
		CreatedAt:   so.s.now().UTC(),
	}
	switch {
	case in.Status != "":
		p.Status = in.Status
	case in.ScheduledAt != nil:
		p.Status = domain.PostScheduled
	}

	so.s.posts = prepend(so.s.posts, p)
	so.s.accounts[ai].PostsCount++
	return p, nil
}

// PublishPost publishes immediately. Posts on a disconnected account fail.
func (so socialSource) PublishPost(ctx context.Context, id domain.ID) (domain.Post, error) {
	_, done, err := so.s.enter(ctx)
	if err != nil {
		return domain.Post{}, err
	}
	defer done()

	i := indexOf(so.s.posts, id.String())
	if i < 0 {
		return domain.Post{}, notFound()
	}
	p := so.s.posts[i]
	if p.Status == domain.PostPublished {
		return domain.Post{}, rejected("Post is already published.")
	}

	if ai := indexOf(so.s.accounts, p.Account.String()); ai < 0 || !so.s.accounts[ai].IsActive {
		p.Status = domain.PostFailed
		p.ErrorMessage = "Account is not connected."
	} else {
		p.Status = domain.PostPublished
		p.PublishedAt = so.s.stamp()
		p.ErrorMessage = ""
	}
	so.s.posts[i] = p
	return p, nil
}
