package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/aussiebroadwan/ideadesk/internal/domain"
	"github.com/aussiebroadwan/ideadesk/pkg/apiclient"
)

type cmsSource struct{ c *apiclient.Client }

func contentPath(slug string) string { return "/api/cms/contents/" + url.PathEscape(slug) + "/" }

func (s cmsSource) ListContents(ctx context.Context, filter domain.ContentFilter) (apiclient.Page[domain.Content], error) {
	query := url.Values{}
	if filter.ContentType != "" {
		query.Set("type", filter.ContentType)
	}
	if filter.Status != "" {
		query.Set("status", string(filter.Status))
	}
	return list[domain.Content](ctx, s.c, "/api/cms/contents/", query)
}

func (s cmsSource) ListCategories(ctx context.Context) (apiclient.Page[domain.Category], error) {
	return list[domain.Category](ctx, s.c, "/api/cms/categories/", nil)
}

func (s cmsSource) ListTags(ctx context.Context) (apiclient.Page[domain.Tag], error) {
	return list[domain.Tag](ctx, s.c, "/api/cms/tags/", nil)
}

func (s cmsSource) Publish(ctx context.Context, slug string) (domain.Content, error) {
	return action[domain.Content](ctx, s.c, contentPath(slug)+"publish/", nil, contentPath(slug), "slug")
}

func (s cmsSource) Archive(ctx context.Context, slug string) (domain.Content, error) {
	return action[domain.Content](ctx, s.c, contentPath(slug)+"archive/", nil, contentPath(slug), "slug")
}

func (s cmsSource) Delete(ctx context.Context, slug string) error {
	_, err := s.c.Request(ctx, http.MethodDelete, contentPath(slug), nil, nil)
	return err
}
