// Package state aggregates the session and the per-resource slices into one
// container. The container is created once per process and passed to every
// consumer; nothing here is global.
package state

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aussiebroadwan/ideadesk/internal/datasource"
	"github.com/aussiebroadwan/ideadesk/internal/metrics"
	"github.com/aussiebroadwan/ideadesk/internal/resource"
	"github.com/aussiebroadwan/ideadesk/internal/session"
	"github.com/aussiebroadwan/ideadesk/internal/store"
	"github.com/aussiebroadwan/ideadesk/pkg/apiclient"
)

// Top level keys.
const (
	KeyAuth     = "auth"
	KeyProjects = "projects"
	KeyClients  = "clients"
	KeyInvoices = "invoices"
	KeyUsers    = "users"
	KeyContent  = "content"
	KeySocial   = "social"
	KeyReports  = "reports"
)

type Config struct {
	Source  datasource.Source
	Storage store.Store

	// Recorder and Logger are optional.
	Recorder metrics.Recorder
	Logger   *slog.Logger
}

// Store is the state container.
type Store struct {
	Session  *session.Session
	Projects *resource.Slice[Projects]
	Clients  *resource.Slice[CRM]
	Invoices *resource.Slice[Billing]
	Users    *resource.Slice[Users]
	Content  *resource.Slice[Content]
	Social   *resource.Slice[Social]
	Reports  *resource.Slice[Reports]

	src datasource.Source
}

// Action is a request to change state. Every action dispatches exactly one
// operation.
type Action interface {
	dispatch(ctx context.Context, s *Store) *resource.Task
}

// Snapshot is a point in time view of every slice.
type Snapshot struct {
	Auth     resource.Status[session.State] `json:"auth"`
	Projects resource.Status[Projects]      `json:"projects"`
	Clients  resource.Status[CRM]           `json:"clients"`
	Invoices resource.Status[Billing]       `json:"invoices"`
	Users    resource.Status[Users]         `json:"users"`
	Content  resource.Status[Content]       `json:"content"`
	Social   resource.Status[Social]        `json:"social"`
	Reports  resource.Status[Reports]       `json:"reports"`
}

// New builds the container. Call Session.Restore before serving.
func New(cfg Config) *Store {
	s := &Store{src: cfg.Source}

	base := []resource.Option{resource.WithMessages(apiclient.Message)}
	if cfg.Recorder != nil {
		base = append(base, resource.WithRecorder(cfg.Recorder))
	}
	if cfg.Logger != nil {
		base = append(base, resource.WithLogger(cfg.Logger))
	}

	// Resource slices sign the session out when the server rejects the
	// token. The session slice handles its own failures.
	opts := append([]resource.Option{resource.WithErrorHook(s.onError)}, base...)

	s.Session = session.New(cfg.Source.Auth(), cfg.Storage, base...)
	s.Projects = resource.NewSlice(KeyProjects, Projects{}, opts...)
	s.Clients = resource.NewSlice(KeyClients, CRM{}, opts...)
	s.Invoices = resource.NewSlice(KeyInvoices, Billing{}, opts...)
	s.Users = resource.NewSlice(KeyUsers, Users{}, opts...)
	s.Content = resource.NewSlice(KeyContent, Content{}, opts...)
	s.Social = resource.NewSlice(KeySocial, Social{}, opts...)
	s.Reports = resource.NewSlice(KeyReports, Reports{}, opts...)
	return s
}

// onError signs the session out when the server rejected the token the
// failed request was sent with, provided the session still holds it.
func (s *Store) onError(_ string, err error) {
	var apiErr *apiclient.Error
	if errors.As(err, &apiErr) && apiErr.Kind == apiclient.KindSessionExpired {
		s.Session.Expire(apiErr.Token)
	}
}

// Dispatch starts a.
func (s *Store) Dispatch(ctx context.Context, a Action) *resource.Task {
	return a.dispatch(ctx, s)
}

func (s *Store) Snapshot() Snapshot {
	return Snapshot{
		Auth:     s.Session.Snapshot(),
		Projects: s.Projects.Snapshot(),
		Clients:  s.Clients.Snapshot(),
		Invoices: s.Invoices.Snapshot(),
		Users:    s.Users.Snapshot(),
		Content:  s.Content.Snapshot(),
		Social:   s.Social.Snapshot(),
		Reports:  s.Reports.Snapshot(),
	}
}

// Subscribe runs fn after any slice changes.
func (s *Store) Subscribe(fn func()) (unsubscribe func()) {
	unsubs := []func(){
		s.Session.Slice().Subscribe(fn),
		s.Projects.Subscribe(fn),
		s.Clients.Subscribe(fn),
		s.Invoices.Subscribe(fn),
		s.Users.Subscribe(fn),
		s.Content.Subscribe(fn),
		s.Social.Subscribe(fn),
		s.Reports.Subscribe(fn),
	}
	return func() {
		for _, u := range unsubs {
			u()
		}
	}
}

// ClearFlash clears the error and success messages of every slice.
func (s *Store) ClearFlash() {
	s.Session.Slice().ClearFlash()
	s.Projects.ClearFlash()
	s.Clients.ClearFlash()
	s.Invoices.ClearFlash()
	s.Users.ClearFlash()
	s.Content.ClearFlash()
	s.Social.ClearFlash()
	s.Reports.ClearFlash()
}

// CancelAll cancels every operation in flight.
func (s *Store) CancelAll() {
	s.Session.Slice().CancelAll()
	s.Projects.CancelAll()
	s.Clients.CancelAll()
	s.Invoices.CancelAll()
	s.Users.CancelAll()
	s.Content.CancelAll()
	s.Social.CancelAll()
	s.Reports.CancelAll()
}
