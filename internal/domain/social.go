package domain

import "time"

type SocialAccount struct {
	ID          ID        `json:"id"`
	Platform    string    `json:"platform"`
	AccountName string    `json:"account_name"`
	AccountID   string    `json:"account_id,omitempty"`
	IsActive    bool      `json:"is_active"`
	PostsCount  int       `json:"posts_count"`
	CreatedAt   time.Time `json:"created_at"`
}

func (a SocialAccount) Key() string { return a.ID.String() }

type PostStatus string

const (
	PostDraft     PostStatus = "draft"
	PostScheduled PostStatus = "scheduled"
	PostPublished PostStatus = "published"
	PostFailed    PostStatus = "failed"
)

type Post struct {
	ID           ID         `json:"id"`
	Account      ID         `json:"account"`
	AccountName  string     `json:"account_name,omitempty"`
	Platform     string     `json:"platform,omitempty"`
	Content      string     `json:"content"`
	MediaURLs    []string   `json:"media_urls,omitempty"`
	Status       PostStatus `json:"status"`
	ScheduledAt  *time.Time `json:"scheduled_at,omitempty"`
	PublishedAt  *time.Time `json:"published_at,omitempty"`
	ErrorMessage string     `json:"error_message,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

func (p Post) Key() string { return p.ID.String() }

type PostInput struct {
	Account     ID         `json:"account"`
	Content     string     `json:"content"`
	MediaURLs   []string   `json:"media_urls,omitempty"`
	Status      PostStatus `json:"status,omitempty"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
}

type Campaign struct {
	ID          ID        `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status"`
	StartDate   string    `json:"start_date,omitempty"`
	EndDate     string    `json:"end_date,omitempty"`
	Budget      string    `json:"budget,omitempty"`
	PostsCount  int       `json:"posts_count"`
	CreatedAt   time.Time `json:"created_at"`
}

func (c Campaign) Key() string { return c.ID.String() }
