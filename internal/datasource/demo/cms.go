package demo

import (
	"context"

	"github.com/aussiebroadwan/ideadesk/internal/domain"
	"github.com/aussiebroadwan/ideadesk/pkg/apiclient"
)

type cmsSource struct{ s *Source }

func (c cmsSource) ListContents(ctx context.Context, filter domain.ContentFilter) (apiclient.Page[domain.Content], error) {
	_, done, err := c.s.enter(ctx)
	if err != nil {
		return apiclient.Page[domain.Content]{}, err
	}
	defer done()

	return page(c.s.contents, func(ct domain.Content) bool {
		return (filter.ContentType == "" || ct.ContentType == filter.ContentType) &&
			(filter.Status == "" || ct.Status == filter.Status)
	}), nil
}

func (c cmsSource) ListCategories(ctx context.Context) (apiclient.Page[domain.Category], error) {
	_, done, err := c.s.enter(ctx)
	if err != nil {
		return apiclient.Page[domain.Category]{}, err
	}
	defer done()
	return page(c.s.categories, nil), nil
}

func (c cmsSource) ListTags(ctx context.Context) (apiclient.Page[domain.Tag], error) {
	_, done, err := c.s.enter(ctx)
	if err != nil {
		return apiclient.Page[domain.Tag]{}, err
	}
	defer done()
	return page(c.s.tags, nil), nil
}

func (c cmsSource) Publish(ctx context.Context, slug string) (domain.Content, error) {
	return c.mutate(ctx, slug, func(ct *domain.Content) error {
		if ct.Status == domain.ContentPublished {
			return rejected("Content is already published.")
		}
		ct.Status = domain.ContentPublished
		ct.PublishedAt = c.s.stamp()
		return nil
	})
}

func (c cmsSource) Archive(ctx context.Context, slug string) (domain.Content, error) {
	return c.mutate(ctx, slug, func(ct *domain.Content) error {
		ct.Status = domain.ContentArchived
		return nil
	})
}

func (c cmsSource) Delete(ctx context.Context, slug string) error {
	_, done, err := c.s.enter(ctx)
	if err != nil {
		return err
	}
	defer done()

	i := indexOf(c.s.contents, slug)
	if i < 0 {
		return notFound()
	}
	c.s.contents = removeAt(c.s.contents, i)
	return nil
}

func (c cmsSource) mutate(ctx context.Context, slug string, fn func(*domain.Content) error) (domain.Content, error) {
	_, done, err := c.s.enter(ctx)
	if err != nil {
		return domain.Content{}, err
	}
	defer done()

	i := indexOf(c.s.contents, slug)
	if i < 0 {
		return domain.Content{}, notFound()
	}
	ct := c.s.contents[i]
	if err := fn(&ct); err != nil {
		return domain.Content{}, err
	}
	ct.UpdatedAt = c.s.now().UTC()
	c.s.contents[i] = ct
	return ct, nil
}
