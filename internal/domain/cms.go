package domain

import "time"

type ContentStatus string

const (
	ContentDraft     ContentStatus = "draft"
	ContentPublished ContentStatus = "published"
	ContentArchived  ContentStatus = "archived"
)

type Tag struct {
	ID            ID     `json:"id"`
	Name          string `json:"name"`
	Slug          string `json:"slug"`
	ContentsCount int    `json:"contents_count,omitempty"`
}

func (t Tag) Key() string { return t.ID.String() }

type Category struct {
	ID            ID     `json:"id"`
	Name          string `json:"name"`
	Slug          string `json:"slug"`
	Description   string `json:"description,omitempty"`
	ContentsCount int    `json:"contents_count,omitempty"`
}

func (c Category) Key() string { return c.ID.String() }

// Content is an article, page, news item or blog post. It is addressed by slug.
type Content struct {
	ID            ID            `json:"id"`
	Title         string        `json:"title"`
	Slug          string        `json:"slug"`
	ContentType   string        `json:"content_type"`
	Excerpt       string        `json:"excerpt,omitempty"`
	Status        ContentStatus `json:"status"`
	Author        *ID           `json:"author,omitempty"`
	AuthorName    string        `json:"author_name,omitempty"`
	Category      *ID           `json:"category,omitempty"`
	CategoryName  string        `json:"category_name,omitempty"`
	Tags          []Tag         `json:"tags_list,omitempty"`
	ViewsCount    int           `json:"views_count"`
	CommentsCount int           `json:"comments_count"`
	PublishedAt   *time.Time    `json:"published_at,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

func (c Content) Key() string { return c.Slug }

// ContentFilter narrows the content list on the server.
type ContentFilter struct {
	ContentType string
	Status      ContentStatus
}
