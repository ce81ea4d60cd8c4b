// Package datasource declares every call the client makes to the business
// backend. The api driver talks to the real REST API; the demo driver serves a
// seeded in-memory dataset. Which one runs is a configuration decision.
package datasource

import (
	"context"
	"errors"
	"net/url"

	"github.com/aussiebroadwan/ideadesk/internal/domain"
	"github.com/aussiebroadwan/ideadesk/pkg/apiclient"
)

var ErrNotFound = errors.New("datasource: not found")

// Source is the root capability. It exposes one sub-source per backend area.
type Source interface {
	Auth() Auth
	Projects() Projects
	CRM() CRM
	Billing() Billing
	Users() Users
	CMS() CMS
	Social() Social
	Reports() Reports
}

type Auth interface {
	Login(ctx context.Context, creds domain.Credentials) (domain.LoginResult, error)

	// Logout revokes refresh on the server.
	Logout(ctx context.Context, refresh string) error

	// CurrentUser returns the user owning the bearer token of the request.
	CurrentUser(ctx context.Context) (domain.User, error)
}

type Projects interface {
	List(ctx context.Context, query url.Values) (apiclient.Page[domain.Project], error)
	Get(ctx context.Context, id domain.ID) (domain.Project, error)
	Create(ctx context.Context, in domain.ProjectInput) (domain.Project, error)
	Update(ctx context.Context, id domain.ID, in domain.ProjectInput) (domain.Project, error)
	Delete(ctx context.Context, id domain.ID) error
}

type CRM interface {
	ListClients(ctx context.Context, query url.Values) (apiclient.Page[domain.Client], error)
	ListLeads(ctx context.Context, query url.Values) (apiclient.Page[domain.Lead], error)
	CreateClient(ctx context.Context, in domain.ClientInput) (domain.Client, error)
	CreateLead(ctx context.Context, in domain.LeadInput) (domain.Lead, error)

	// ConvertLead turns a lead into a client.
	ConvertLead(ctx context.Context, id domain.ID) (domain.Conversion, error)
}

type Billing interface {
	ListInvoices(ctx context.Context, query url.Values) (apiclient.Page[domain.Invoice], error)
	CreateInvoice(ctx context.Context, in domain.InvoiceInput) (domain.Invoice, error)
	UpdateInvoice(ctx context.Context, id domain.ID, in domain.InvoiceInput) (domain.Invoice, error)
	SendInvoice(ctx context.Context, id domain.ID) (domain.Invoice, error)
	MarkInvoicePaid(ctx context.Context, id domain.ID, payment domain.Payment) (domain.Invoice, error)
}

type Users interface {
	List(ctx context.Context, query url.Values) (apiclient.Page[domain.User], error)
	Activate(ctx context.Context, id domain.ID) (domain.User, error)
	Deactivate(ctx context.Context, id domain.ID) (domain.User, error)
	Delete(ctx context.Context, id domain.ID) error
}

type CMS interface {
	ListContents(ctx context.Context, filter domain.ContentFilter) (apiclient.Page[domain.Content], error)
	ListCategories(ctx context.Context) (apiclient.Page[domain.Category], error)
	ListTags(ctx context.Context) (apiclient.Page[domain.Tag], error)
	Publish(ctx context.Context, slug string) (domain.Content, error)
	Archive(ctx context.Context, slug string) (domain.Content, error)
	Delete(ctx context.Context, slug string) error
}

type Social interface {
	ListAccounts(ctx context.Context) (apiclient.Page[domain.SocialAccount], error)
	ListPosts(ctx context.Context, query url.Values) (apiclient.Page[domain.Post], error)
	ListCampaigns(ctx context.Context) (apiclient.Page[domain.Campaign], error)
	CreatePost(ctx context.Context, in domain.PostInput) (domain.Post, error)
	PublishPost(ctx context.Context, id domain.ID) (domain.Post, error)
}

type Reports interface {
	List(ctx context.Context, query url.Values) (apiclient.Page[domain.Report], error)
	DashboardStats(ctx context.Context) (domain.DashboardStats, error)

	// Generate builds a report of a type for which ReportType.Generated holds.
	Generate(ctx context.Context, kind domain.ReportType, period domain.DateRange) (domain.Report, error)
}
