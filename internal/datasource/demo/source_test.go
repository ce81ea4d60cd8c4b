package demo_test

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/ideadesk/internal/datasource"
	"github.com/aussiebroadwan/ideadesk/internal/datasource/demo"
	"github.com/aussiebroadwan/ideadesk/internal/domain"
	"github.com/aussiebroadwan/ideadesk/pkg/apiclient"
	"github.com/aussiebroadwan/ideadesk/pkg/cryptox"
)

var fastHasher = cryptox.Hasher{Params: cryptox.Params{Memory: 1024, Iterations: 1, Parallelism: 1, KeyLength: 32, SaltLength: 16}}

// tokenBox is a mutable token source.
type tokenBox struct {
	mu    sync.Mutex
	token string
}

func (b *tokenBox) AccessToken() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.token
}

func (b *tokenBox) set(token string) {
	b.mu.Lock()
	b.token = token
	b.mu.Unlock()
}

func newSource(t *testing.T, opts ...demo.Option) (*demo.Source, *tokenBox) {
	t.Helper()

	opts = append([]demo.Option{demo.WithHasher(fastHasher)}, opts...)
	src, err := demo.New(opts...)
	require.NoError(t, err)

	box := &tokenBox{}
	src.Tokens = box
	return src, box
}

// signIn logs in as email and installs the access token.
func signIn(t *testing.T, src *demo.Source, box *tokenBox, email, password string) domain.LoginResult {
	t.Helper()

	res, err := src.Auth().Login(context.Background(), domain.Credentials{Email: email, Password: password})
	require.NoError(t, err)
	box.set(res.Access)
	return res
}

func TestLogin(t *testing.T) {
	t.Parallel()

	src, box := newSource(t)

	t.Run("admin credentials", func(t *testing.T) {
		res := signIn(t, src, box, demo.AdminEmail, demo.AdminPassword)
		require.NotEmpty(t, res.Access)
		require.NotEmpty(t, res.Refresh)
		require.NotEqual(t, res.Access, res.Refresh)
		require.Equal(t, domain.ID(1), res.User.ID)
		require.Equal(t, domain.RoleAdmin, res.User.Role)
		require.NotNil(t, res.User.LastLogin)

		u, err := src.Auth().CurrentUser(context.Background())
		require.NoError(t, err)
		require.Equal(t, demo.AdminEmail, u.Email)
	})

	t.Run("email is case insensitive", func(t *testing.T) {
		_, err := src.Auth().Login(context.Background(), domain.Credentials{Email: "ADMIN@ideateam.com", Password: demo.AdminPassword})
		require.NoError(t, err)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := src.Auth().Login(context.Background(), domain.Credentials{Email: demo.AdminEmail, Password: "nope"})
		require.True(t, apiclient.IsValidation(err))
		require.Equal(t, "Invalid email or password.", apiclient.Message(err))
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := src.Auth().Login(context.Background(), domain.Credentials{Email: "ghost@ideateam.com", Password: "x"})
		require.True(t, apiclient.IsValidation(err))
	})

	t.Run("missing password", func(t *testing.T) {
		_, err := src.Auth().Login(context.Background(), domain.Credentials{Email: demo.AdminEmail})
		var apiErr *apiclient.Error
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, []string{"This field is required."}, apiErr.Fields["password"])
	})
}

func TestRequestsNeedAValidToken(t *testing.T) {
	t.Parallel()

	src, box := newSource(t)
	ctx := context.Background()

	_, err := src.Projects().List(ctx, nil)
	require.True(t, apiclient.IsSessionExpired(err))

	box.set("forged")
	_, err = src.Auth().CurrentUser(ctx)
	require.True(t, apiclient.IsSessionExpired(err))
}

func TestLogoutRevokesTokens(t *testing.T) {
	t.Parallel()

	src, box := newSource(t)
	ctx := context.Background()
	res := signIn(t, src, box, demo.AdminEmail, demo.AdminPassword)

	require.NoError(t, src.Auth().Logout(ctx, res.Refresh))

	_, err := src.Auth().CurrentUser(ctx)
	require.True(t, apiclient.IsSessionExpired(err))

	err = src.Auth().Logout(ctx, res.Refresh)
	require.True(t, apiclient.IsValidation(err))
}

func TestProjects(t *testing.T) {
	t.Parallel()

	src, box := newSource(t)
	signIn(t, src, box, demo.AdminEmail, demo.AdminPassword)
	ctx := context.Background()

	all, err := src.Projects().List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all.Items, 4)

	active, err := src.Projects().List(ctx, url.Values{"status": {"active"}})
	require.NoError(t, err)
	require.Len(t, active.Items, 2)

	client := domain.ID(2)
	created, err := src.Projects().Create(ctx, domain.ProjectInput{Title: "Loyalty program", Client: &client})
	require.NoError(t, err)
	require.Equal(t, domain.ProjectDraft, created.Status)
	require.Equal(t, "Delta Foods", created.ClientName)

	all, err = src.Projects().List(ctx, nil)
	require.NoError(t, err)
	require.Equal(t, created.ID, all.Items[0].ID)

	updated, err := src.Projects().Update(ctx, created.ID, domain.ProjectInput{Status: domain.ProjectActive})
	require.NoError(t, err)
	require.Equal(t, "Loyalty program", updated.Title)
	require.Equal(t, domain.ProjectActive, updated.Status)

	got, err := src.Projects().Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, updated, got)

	require.NoError(t, src.Projects().Delete(ctx, created.ID))
	_, err = src.Projects().Get(ctx, created.ID)
	require.ErrorIs(t, err, datasource.ErrNotFound)

	_, err = src.Projects().Create(ctx, domain.ProjectInput{})
	require.True(t, apiclient.IsValidation(err))
	require.Equal(t, "title: This field is required.", apiclient.Message(err))
}

func TestConvertLead(t *testing.T) {
	t.Parallel()

	src, box := newSource(t)
	signIn(t, src, box, demo.AdminEmail, demo.AdminPassword)
	ctx := context.Background()

	conv, err := src.CRM().ConvertLead(ctx, 11)
	require.NoError(t, err)
	require.Equal(t, domain.ID(11), conv.LeadID)
	require.Equal(t, "Blue Sea Hotels", conv.Client.CompanyName)
	require.Equal(t, domain.ClientActive, conv.Client.Status)

	leads, err := src.CRM().ListLeads(ctx, nil)
	require.NoError(t, err)
	for _, l := range leads.Items {
		require.NotEqual(t, domain.ID(11), l.ID)
	}

	clients, err := src.CRM().ListClients(ctx, nil)
	require.NoError(t, err)
	require.Equal(t, conv.Client.ID, clients.Items[0].ID)

	_, err = src.CRM().ConvertLead(ctx, 11)
	require.ErrorIs(t, err, datasource.ErrNotFound)
}

func TestInvoiceLifecycle(t *testing.T) {
	t.Parallel()

	src, box := newSource(t)
	signIn(t, src, box, demo.AdminEmail, demo.AdminPassword)
	ctx := context.Background()

	inv, err := src.Billing().CreateInvoice(ctx, domain.InvoiceInput{Client: 1, TotalAmount: "500.00"})
	require.NoError(t, err)
	require.Equal(t, domain.InvoiceDraft, inv.Status)
	require.Equal(t, "Nile Trading", inv.ClientName)
	require.NotEmpty(t, inv.InvoiceNumber)

	inv, err = src.Billing().SendInvoice(ctx, inv.ID)
	require.NoError(t, err)
	require.Equal(t, domain.InvoiceSent, inv.Status)
	require.NotNil(t, inv.SentAt)

	_, err = src.Billing().MarkInvoicePaid(ctx, inv.ID, domain.Payment{})
	require.True(t, apiclient.IsValidation(err))

	inv, err = src.Billing().MarkInvoicePaid(ctx, inv.ID, domain.Payment{Amount: "500.00", PaymentMethod: "cash"})
	require.NoError(t, err)
	require.Equal(t, domain.InvoicePaid, inv.Status)

	_, err = src.Billing().SendInvoice(ctx, inv.ID)
	require.True(t, apiclient.IsValidation(err))

	_, err = src.Billing().CreateInvoice(ctx, domain.InvoiceInput{Client: 999, TotalAmount: "1"})
	require.True(t, apiclient.IsValidation(err))
}

func TestUserManagementRequiresStaff(t *testing.T) {
	t.Parallel()

	src, box := newSource(t)
	ctx := context.Background()

	signIn(t, src, box, "omar@ideateam.com", "employee123")
	_, err := src.Users().List(ctx, nil)
	require.Equal(t, apiclient.KindServer, apiclient.KindOf(err))

	signIn(t, src, box, demo.AdminEmail, demo.AdminPassword)
	users, err := src.Users().List(ctx, url.Values{"role": {"manager"}})
	require.NoError(t, err)
	require.Len(t, users.Items, 1)

	u, err := src.Users().Activate(ctx, 4)
	require.NoError(t, err)
	require.True(t, u.IsActive)

	_, err = src.Users().Deactivate(ctx, 1)
	require.True(t, apiclient.IsValidation(err))

	require.NoError(t, src.Users().Delete(ctx, 4))
	require.ErrorIs(t, src.Users().Delete(ctx, 4), datasource.ErrNotFound)
}

func TestDeactivatedUserLosesAccess(t *testing.T) {
	t.Parallel()

	src, box := newSource(t)
	ctx := context.Background()

	omar := signIn(t, src, box, "omar@ideateam.com", "employee123")
	signIn(t, src, box, demo.AdminEmail, demo.AdminPassword)
	_, err := src.Users().Deactivate(ctx, 3)
	require.NoError(t, err)

	box.set(omar.Access)
	_, err = src.Auth().CurrentUser(ctx)
	require.True(t, apiclient.IsSessionExpired(err))
}

func TestContent(t *testing.T) {
	t.Parallel()

	src, box := newSource(t)
	signIn(t, src, box, demo.AdminEmail, demo.AdminPassword)
	ctx := context.Background()

	drafts, err := src.CMS().ListContents(ctx, domain.ContentFilter{Status: domain.ContentDraft})
	require.NoError(t, err)
	require.Len(t, drafts.Items, 1)
	require.Equal(t, "pricing", drafts.Items[0].Slug)

	c, err := src.CMS().Publish(ctx, "pricing")
	require.NoError(t, err)
	require.Equal(t, domain.ContentPublished, c.Status)
	require.NotNil(t, c.PublishedAt)

	c, err = src.CMS().Archive(ctx, "pricing")
	require.NoError(t, err)
	require.Equal(t, domain.ContentArchived, c.Status)

	require.NoError(t, src.CMS().Delete(ctx, "pricing"))
	_, err = src.CMS().Publish(ctx, "pricing")
	require.ErrorIs(t, err, datasource.ErrNotFound)

	cats, err := src.CMS().ListCategories(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, cats.Items)
	tags, err := src.CMS().ListTags(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, tags.Items)
}

func TestSocial(t *testing.T) {
	t.Parallel()

	src, box := newSource(t)
	signIn(t, src, box, demo.AdminEmail, demo.AdminPassword)
	ctx := context.Background()

	p, err := src.Social().CreatePost(ctx, domain.PostInput{Account: 2, Content: "Hello"})
	require.NoError(t, err)
	require.Equal(t, domain.PostDraft, p.Status)
	require.Equal(t, "linkedin", p.Platform)

	p, err = src.Social().PublishPost(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, domain.PostPublished, p.Status)

	offline, err := src.Social().CreatePost(ctx, domain.PostInput{Account: 3, Content: "Hi"})
	require.NoError(t, err)
	offline, err = src.Social().PublishPost(ctx, offline.ID)
	require.NoError(t, err)
	require.Equal(t, domain.PostFailed, offline.Status)

	_, err = src.Social().CreatePost(ctx, domain.PostInput{Account: 1})
	require.True(t, apiclient.IsValidation(err))

	campaigns, err := src.Social().ListCampaigns(ctx)
	require.NoError(t, err)
	require.Len(t, campaigns.Items, 1)
	accounts, err := src.Social().ListAccounts(ctx)
	require.NoError(t, err)
	require.Len(t, accounts.Items, 3)
}

func TestReports(t *testing.T) {
	t.Parallel()

	clock := func() time.Time { return time.Date(2024, 6, 20, 12, 0, 0, 0, time.UTC) }
	src, box := newSource(t, demo.WithClock(clock))
	ctx := context.Background()

	t.Run("managers see their own reports", func(t *testing.T) {
		signIn(t, src, box, "sara@ideateam.com", "manager123")
		reports, err := src.Reports().List(ctx, nil)
		require.NoError(t, err)
		require.Len(t, reports.Items, 1)
		require.Equal(t, domain.ReportClient, reports.Items[0].ReportType)

		signIn(t, src, box, "omar@ideateam.com", "employee123")
		reports, err = src.Reports().List(ctx, nil)
		require.NoError(t, err)
		require.Len(t, reports.Items, 2)
	})

	signIn(t, src, box, demo.AdminEmail, demo.AdminPassword)

	t.Run("dashboard stats", func(t *testing.T) {
		stats, err := src.Reports().DashboardStats(ctx)
		require.NoError(t, err)
		require.Equal(t, domain.DashboardStats{
			TotalProjects:     4,
			ActiveProjects:    2,
			CompletedProjects: 1,
			TotalClients:      3,
			TotalRevenue:      "167000",
			MonthlyProjects:   1,
		}, stats)
	})

	t.Run("sales report covers the period", func(t *testing.T) {
		r, err := src.Reports().Generate(ctx, domain.ReportSales, domain.DateRange{StartDate: "2024-03-01", EndDate: "2024-06-30"})
		require.NoError(t, err)
		require.Equal(t, "Sales report - 2024-06-20", r.Title)
		require.Equal(t, domain.ID(1), r.CreatedBy)
		require.Len(t, r.SalesMetrics, 1)

		m := r.SalesMetrics[0]
		require.Equal(t, 3, m.TotalProjects)
		require.Equal(t, 2, m.ActiveProjects)
		require.Equal(t, "87000.00", m.TotalRevenue)
		require.Equal(t, "29000.00", m.AverageProjectValue)
		require.Equal(t, "2024-03-01", m.PeriodStart)
	})

	t.Run("project performance", func(t *testing.T) {
		r, err := src.Reports().Generate(ctx, domain.ReportProjectPerformance, domain.DateRange{})
		require.NoError(t, err)
		require.Len(t, r.ProjectMetrics, 4)

		byProject := map[domain.ID]domain.ProjectMetric{}
		for _, m := range r.ProjectMetrics {
			byProject[m.Project] = m
		}
		require.Equal(t, 30, byProject[1].DaysRemaining)
		require.True(t, byProject[1].IsOnTrack)
		require.Equal(t, "22500.00", byProject[1].BudgetUsed)
		require.False(t, byProject[2].IsOnTrack)
	})

	t.Run("client report", func(t *testing.T) {
		r, err := src.Reports().Generate(ctx, domain.ReportClient, domain.DateRange{})
		require.NoError(t, err)
		require.Len(t, r.ClientMetrics, 3)

		nile := r.ClientMetrics[0]
		require.Equal(t, "Nile Trading", nile.ClientName)
		require.Equal(t, 2, nile.TotalProjects)
		require.Equal(t, "57000.00", nile.TotalSpent)
		require.Equal(t, "2024-06-05", nile.LastProjectDate)
	})

	t.Run("invalid requests", func(t *testing.T) {
		_, err := src.Reports().Generate(ctx, domain.ReportFinancial, domain.DateRange{})
		require.True(t, apiclient.IsValidation(err))

		_, err = src.Reports().Generate(ctx, domain.ReportSales, domain.DateRange{StartDate: "2024-13-01"})
		require.True(t, apiclient.IsValidation(err))
	})

	reports, err := src.Reports().List(ctx, url.Values{"report_type": {"sales"}})
	require.NoError(t, err)
	require.Len(t, reports.Items, 2)
	require.Equal(t, "Sales report - 2024-06-20", reports.Items[0].Title)
}

func TestLatencyHonoursCancellation(t *testing.T) {
	t.Parallel()

	src, _ := newSource(t, demo.WithLatency(time.Hour))

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() {
		_, err := src.Projects().List(ctx, nil)
		errc <- err
	}()
	cancel()

	select {
	case err := <-errc:
		require.True(t, apiclient.IsCanceled(err))
		require.True(t, errors.Is(err, context.Canceled))
	case <-time.After(5 * time.Second):
		t.Fatal("list did not return after cancel")
	}
}
