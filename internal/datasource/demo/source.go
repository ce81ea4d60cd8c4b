// Package demo implements datasource.Source over a seeded in-memory dataset.
// Failures are reported as *apiclient.Error values shaped like the real
// backend's, so the rest of the client cannot tell the two apart.
package demo

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/aussiebroadwan/ideadesk/internal/datasource"
	"github.com/aussiebroadwan/ideadesk/internal/domain"
	"github.com/aussiebroadwan/ideadesk/pkg/apiclient"
	"github.com/aussiebroadwan/ideadesk/pkg/cryptox"
)

// Option configures a Source.
type Option func(*Source)

// WithHasher overrides the password hasher used for the seeded accounts.
func WithHasher(h cryptox.Hasher) Option {
	return func(s *Source) { s.hasher = h }
}

func WithClock(now func() time.Time) Option {
	return func(s *Source) { s.now = now }
}

// WithLatency delays every call by d, honouring cancellation.
func WithLatency(d time.Duration) Option {
	return func(s *Source) { s.latency = d }
}

type account struct {
	user domain.User
	hash string
}

type grant struct {
	userID domain.ID
	access string // fingerprint
}

// Source is the demo driver. Set Tokens before use so calls can be attributed
// to a signed in user.
type Source struct {
	Tokens apiclient.TokenSource

	hasher  cryptox.Hasher
	now     func() time.Time
	latency time.Duration

	mu      sync.Mutex
	nextID  domain.ID
	users   []account
	access  map[string]domain.ID // access fingerprint -> user
	refresh map[string]grant     // refresh fingerprint -> grant

	projects   []domain.Project
	clients    []domain.Client
	leads      []domain.Lead
	invoices   []domain.Invoice
	contents   []domain.Content
	categories []domain.Category
	tags       []domain.Tag
	accounts   []domain.SocialAccount
	posts      []domain.Post
	campaigns  []domain.Campaign
	reports    []domain.Report
}

var _ datasource.Source = (*Source)(nil)

// New returns a Source seeded with the demo dataset.
func New(opts ...Option) (*Source, error) {
	s := &Source{
		hasher:  cryptox.NewHasher(""),
		now:     time.Now,
		nextID:  100,
		access:  make(map[string]domain.ID),
		refresh: make(map[string]grant),
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.seed(); err != nil {
		return nil, fmt.Errorf("failed to seed demo data: %w", err)
	}
	return s, nil
}

func (s *Source) Auth() datasource.Auth         { return authSource{s} }
func (s *Source) Projects() datasource.Projects { return projectSource{s} }
func (s *Source) CRM() datasource.CRM           { return crmSource{s} }
func (s *Source) Billing() datasource.Billing   { return billingSource{s} }
func (s *Source) Users() datasource.Users       { return userSource{s} }
func (s *Source) CMS() datasource.CMS           { return cmsSource{s} }
func (s *Source) Social() datasource.Social     { return socialSource{s} }
func (s *Source) Reports() datasource.Reports   { return reportSource{s} }

// wait simulates the round trip.
func (s *Source) wait(ctx context.Context) error {
	if s.latency > 0 {
		t := time.NewTimer(s.latency)
		defer t.Stop()
		select {
		case <-ctx.Done():
		case <-t.C:
		}
	}
	if err := ctx.Err(); err != nil {
		return &apiclient.Error{Kind: apiclient.KindCanceled, Message: apiclient.MsgCanceled, Err: err}
	}
	return nil
}

// enter waits, locks the dataset and resolves the caller. On success the
// returned func releases the lock.
func (s *Source) enter(ctx context.Context) (domain.User, func(), error) {
	if err := s.wait(ctx); err != nil {
		return domain.User{}, nil, err
	}

	s.mu.Lock()
	u, err := s.caller()
	if err != nil {
		s.mu.Unlock()
		return domain.User{}, nil, err
	}
	return u, s.mu.Unlock, nil
}

// caller must be called with mu held.
func (s *Source) caller() (domain.User, error) {
	token := ""
	if s.Tokens != nil {
		token = s.Tokens.AccessToken()
	}
	if token == "" {
		return domain.User{}, unauthorized(token, "Authentication credentials were not provided.")
	}

	id, ok := s.access[cryptox.Fingerprint(token)]
	if !ok {
		return domain.User{}, unauthorized(token, "Given token not valid for any token type")
	}
	i := s.userIndex(id)
	if i < 0 || !s.users[i].user.IsActive {
		return domain.User{}, unauthorized(token, "User is inactive")
	}
	return s.users[i].user, nil
}

func (s *Source) newID() domain.ID {
	s.nextID++
	return s.nextID
}

func (s *Source) today() string { return s.now().UTC().Format(time.DateOnly) }

func (s *Source) stamp() *time.Time {
	t := s.now().UTC()
	return &t
}

func unauthorized(token, msg string) error {
	return &apiclient.Error{
		Kind:       apiclient.KindSessionExpired,
		StatusCode: http.StatusUnauthorized,
		Message:    msg,
		Token:      token,
	}
}

func forbidden() error {
	return &apiclient.Error{
		Kind:       apiclient.KindServer,
		StatusCode: http.StatusForbidden,
		Message:    "You do not have permission to perform this action.",
	}
}

func notFound() error {
	return &apiclient.Error{
		Kind:       apiclient.KindServer,
		StatusCode: http.StatusNotFound,
		Message:    "Not found.",
		Err:        datasource.ErrNotFound,
	}
}

// invalid reports a single field error the way the backend does.
func invalid(field, msg string) error {
	return &apiclient.Error{
		Kind:       apiclient.KindValidation,
		StatusCode: http.StatusBadRequest,
		Message:    field + ": " + msg,
		Fields:     map[string][]string{field: {msg}},
	}
}

// rejected reports a non-field validation error.
func rejected(msg string) error {
	return &apiclient.Error{Kind: apiclient.KindValidation, StatusCode: http.StatusBadRequest, Message: msg}
}

const msgRequired = "This field is required."

type keyed interface{ Key() string }

func indexOf[T keyed](items []T, key string) int {
	for i, it := range items {
		if it.Key() == key {
			return i
		}
	}
	return -1
}

func removeAt[T any](items []T, i int) []T {
	out := make([]T, 0, len(items)-1)
	out = append(out, items[:i]...)
	return append(out, items[i+1:]...)
}

func prepend[T any](items []T, item T) []T {
	return append([]T{item}, items...)
}

// page copies the items that satisfy keep.
func page[T any](items []T, keep func(T) bool) apiclient.Page[T] {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if keep == nil || keep(it) {
			out = append(out, it)
		}
	}
	return apiclient.Page[T]{Items: out, Count: len(out)}
}
