package state

import (
	"context"

	"github.com/aussiebroadwan/ideadesk/internal/domain"
	"github.com/aussiebroadwan/ideadesk/internal/resource"
	"github.com/aussiebroadwan/ideadesk/pkg/apiclient"
)

const (
	KindFetchContents   = "fetch_contents"
	KindFetchCategories = "fetch_categories"
	KindFetchTags       = "fetch_tags"
	KindPublishContent  = "publish_content"
	KindArchiveContent  = "archive_content"
	KindDeleteContent   = "delete_content"
)

type Content struct {
	Contents   resource.Collection[domain.Content]  `json:"contents"`
	Categories resource.Collection[domain.Category] `json:"categories"`
	Tags       resource.Collection[domain.Tag]      `json:"tags"`
}

type ContentStats struct {
	Total     int `json:"total"`
	Published int `json:"published"`
}

func (c Content) Stats() ContentStats {
	return ContentStats{
		Total:     c.Contents.Len(),
		Published: c.Contents.Count(func(ct domain.Content) bool { return ct.Status == domain.ContentPublished }),
	}
}

func contentsLens(st *Content) *resource.Collection[domain.Content]    { return &st.Contents }
func categoriesLens(st *Content) *resource.Collection[domain.Category] { return &st.Categories }
func tagsLens(st *Content) *resource.Collection[domain.Tag]            { return &st.Tags }

type FetchContents struct{ Filter domain.ContentFilter }

func (a FetchContents) dispatch(ctx context.Context, s *Store) *resource.Task {
	return resource.Dispatch(ctx, s.Content, resource.ListOp(KindFetchContents, contentsLens,
		func(ctx context.Context) (apiclient.Page[domain.Content], error) {
			return s.src.CMS().ListContents(ctx, a.Filter)
		}))
}

type FetchCategories struct{}

func (FetchCategories) dispatch(ctx context.Context, s *Store) *resource.Task {
	return resource.Dispatch(ctx, s.Content, resource.ListOp(KindFetchCategories, categoriesLens,
		s.src.CMS().ListCategories))
}

type FetchTags struct{}

func (FetchTags) dispatch(ctx context.Context, s *Store) *resource.Task {
	return resource.Dispatch(ctx, s.Content, resource.ListOp(KindFetchTags, tagsLens,
		s.src.CMS().ListTags))
}

func contentStatusLane(slug string) string { return "content_status/" + slug }

type PublishContent struct{ Slug string }

func (a PublishContent) dispatch(ctx context.Context, s *Store) *resource.Task {
	op := resource.UpdateOp(KindPublishContent, a.Slug, contentsLens,
		func(ctx context.Context) (domain.Content, error) {
			return s.src.CMS().Publish(ctx, a.Slug)
		}, "Content published successfully")
	op.Lane = contentStatusLane(a.Slug)
	return resource.Dispatch(ctx, s.Content, op)
}

type ArchiveContent struct{ Slug string }

func (a ArchiveContent) dispatch(ctx context.Context, s *Store) *resource.Task {
	op := resource.UpdateOp(KindArchiveContent, a.Slug, contentsLens,
		func(ctx context.Context) (domain.Content, error) {
			return s.src.CMS().Archive(ctx, a.Slug)
		}, "Content archived successfully")
	op.Lane = contentStatusLane(a.Slug)
	return resource.Dispatch(ctx, s.Content, op)
}

type DeleteContent struct{ Slug string }

func (a DeleteContent) dispatch(ctx context.Context, s *Store) *resource.Task {
	return resource.Dispatch(ctx, s.Content, resource.DeleteOp(KindDeleteContent, a.Slug, contentsLens,
		func(ctx context.Context) error {
			return s.src.CMS().Delete(ctx, a.Slug)
		}, "Content deleted successfully"))
}
