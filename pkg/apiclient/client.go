package apiclient

import (
	"log/slog"
	"net/http"
	"strings"

	"golang.org/x/time/rate"
)

// TokenSource yields the current access token, or "" when signed out.
type TokenSource interface {
	AccessToken() string
}

// TokenFunc adapts a function to TokenSource.
type TokenFunc func() string

func (f TokenFunc) AccessToken() string { return f() }

// Client is a client for the Idea platform REST API.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	// Tokens supplies the bearer credential. Nil means every request is anonymous.
	Tokens TokenSource

	// Limiter, when set, paces outbound requests.
	Limiter *rate.Limiter

	// Logger receives one debug record per request. Nil falls back to the
	// context logger.
	Logger *slog.Logger

	UserAgent string
}

// New creates a client for baseURL with no request timeout.
func New(baseURL string) *Client {
	return &Client{
		BaseURL:    strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{},
		UserAgent:  "ideadesk",
	}
}
