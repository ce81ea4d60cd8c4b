package state_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/ideadesk/internal/datasource/api"
	"github.com/aussiebroadwan/ideadesk/internal/datasource/demo"
	"github.com/aussiebroadwan/ideadesk/internal/domain"
	"github.com/aussiebroadwan/ideadesk/internal/metrics"
	"github.com/aussiebroadwan/ideadesk/internal/resource"
	"github.com/aussiebroadwan/ideadesk/internal/state"
	"github.com/aussiebroadwan/ideadesk/internal/store/drivers/memory"
	"github.com/aussiebroadwan/ideadesk/pkg/apiclient"
	"github.com/aussiebroadwan/ideadesk/pkg/cryptox"
)

var fastHasher = cryptox.Hasher{Params: cryptox.Params{Memory: 1024, Iterations: 1, Parallelism: 1, KeyLength: 32, SaltLength: 16}}

func newStore(t *testing.T, cfg state.Config, opts ...demo.Option) *state.Store {
	t.Helper()

	src, err := demo.New(append([]demo.Option{demo.WithHasher(fastHasher)}, opts...)...)
	require.NoError(t, err)

	cfg.Source = src
	cfg.Storage = memory.NewStore()
	s := state.New(cfg)
	src.Tokens = s.Session
	return s
}

func signedIn(t *testing.T, cfg state.Config) *state.Store {
	t.Helper()

	s := newStore(t, cfg)
	run(t, s, state.Login{Credentials: domain.Credentials{Email: demo.AdminEmail, Password: demo.AdminPassword}})
	return s
}

func run(t *testing.T, s *state.Store, a state.Action) {
	t.Helper()
	require.NoError(t, s.Dispatch(context.Background(), a).Wait())
}

func TestInitialSnapshot(t *testing.T) {
	t.Parallel()

	snap := newStore(t, state.Config{}).Snapshot()
	require.False(t, snap.Auth.Data.IsAuthenticated)
	require.False(t, snap.Projects.Loading)
	require.Empty(t, snap.Projects.Data.Projects.Items)
	require.Nil(t, snap.Projects.Data.Current)
	require.Empty(t, snap.Invoices.Error)
}

func TestLoginAuthenticatesEverySlice(t *testing.T) {
	t.Parallel()

	s := signedIn(t, state.Config{})
	snap := s.Snapshot()
	require.True(t, snap.Auth.Data.IsAuthenticated)
	require.Equal(t, demo.AdminEmail, snap.Auth.Data.User.Email)

	run(t, s, state.FetchProjects{})
	require.Len(t, s.Snapshot().Projects.Data.Projects.Items, 4)
}

func TestProjects(t *testing.T) {
	t.Parallel()

	s := signedIn(t, state.Config{})
	run(t, s, state.FetchProjects{})

	stats := s.Projects.Snapshot().Data.Stats()
	require.Equal(t, state.ProjectStats{Total: 4, Active: 2, Completed: 1}, stats)

	run(t, s, state.FetchProject{ID: 1})
	require.Equal(t, domain.ID(1), s.Projects.Snapshot().Data.Current.ID)

	run(t, s, state.UpdateProject{ID: 1, Input: domain.ProjectInput{Title: "Website v2"}})
	snap := s.Projects.Snapshot()
	require.Equal(t, "Project updated successfully", snap.Success)
	require.Equal(t, "Website v2", snap.Data.Current.Title)
	p, ok := snap.Data.Projects.Find("1")
	require.True(t, ok)
	require.Equal(t, "Website v2", p.Title)

	run(t, s, state.CreateProject{Input: domain.ProjectInput{Title: "Intranet"}})
	snap = s.Projects.Snapshot()
	require.Equal(t, "Intranet", snap.Data.Projects.Items[0].Title)
	require.Equal(t, 5, snap.Data.Projects.Len())

	run(t, s, state.DeleteProject{ID: 1})
	snap = s.Projects.Snapshot()
	require.Nil(t, snap.Data.Current)
	_, ok = snap.Data.Projects.Find("1")
	require.False(t, ok)

	run(t, s, state.FetchProject{ID: 2})
	s.ClearCurrentProject()
	require.Nil(t, s.Projects.Snapshot().Data.Current)
}

func TestRejectedCreateKeepsItems(t *testing.T) {
	t.Parallel()

	s := signedIn(t, state.Config{})
	run(t, s, state.FetchProjects{})
	before := s.Projects.Snapshot().Data.Projects.Items

	err := s.Dispatch(context.Background(), state.CreateProject{}).Wait()
	require.True(t, apiclient.IsValidation(err))

	snap := s.Projects.Snapshot()
	require.Equal(t, "title: This field is required.", snap.Error)
	require.Equal(t, before, snap.Data.Projects.Items)
	require.False(t, snap.Loading)
	require.True(t, s.Snapshot().Auth.Data.IsAuthenticated)
}

func TestConvertLead(t *testing.T) {
	t.Parallel()

	s := signedIn(t, state.Config{})
	run(t, s, state.FetchClients{})
	run(t, s, state.FetchLeads{})
	require.Equal(t, 3, s.Clients.Snapshot().Data.Leads.Len())
	require.Equal(t, 2, s.Clients.Snapshot().Data.Stats().ActiveClients)

	run(t, s, state.ConvertLead{ID: 10})

	data := s.Clients.Snapshot().Data
	require.Equal(t, 2, data.Leads.Len())
	_, ok := data.Leads.Find("10")
	require.False(t, ok)
	require.Equal(t, "Cairo Tech", data.Clients.Items[0].CompanyName)
	require.Equal(t, 4, data.Clients.Len())
}

func TestInvoices(t *testing.T) {
	t.Parallel()

	s := signedIn(t, state.Config{})
	run(t, s, state.FetchInvoices{})
	require.Equal(t, state.InvoiceStats{Total: 4, Paid: 1, Pending: 1, Overdue: 1}, s.Invoices.Snapshot().Data.Stats())

	run(t, s, state.SendInvoice{ID: 4})
	inv, _ := s.Invoices.Snapshot().Data.Invoices.Find("4")
	require.Equal(t, domain.InvoiceSent, inv.Status)

	run(t, s, state.MarkInvoicePaid{ID: 4, Payment: domain.Payment{Amount: "1200.00", PaymentMethod: "cash"}})
	snap := s.Invoices.Snapshot()
	inv, _ = snap.Data.Invoices.Find("4")
	require.Equal(t, domain.InvoicePaid, inv.Status)
	require.Equal(t, "Payment recorded successfully", snap.Success)
	require.Equal(t, 2, snap.Data.Stats().Paid)

	run(t, s, state.CreateInvoice{Input: domain.InvoiceInput{Client: 2, TotalAmount: "99.00"}})
	require.Equal(t, 5, s.Invoices.Snapshot().Data.Invoices.Len())

	run(t, s, state.UpdateInvoice{ID: 2, Input: domain.InvoiceInput{Notes: "net 30"}})
	inv, _ = s.Invoices.Snapshot().Data.Invoices.Find("2")
	require.Equal(t, "net 30", inv.Notes)
}

func TestUsers(t *testing.T) {
	t.Parallel()

	s := signedIn(t, state.Config{})
	run(t, s, state.FetchUsers{})

	stats := s.Users.Snapshot().Data.Stats()
	require.Equal(t, 4, stats.Total)
	require.Equal(t, 3, stats.Active)
	require.Equal(t, 1, stats.Inactive)
	require.Equal(t, 1, stats.ByRole[domain.RoleAdmin])

	run(t, s, state.ActivateUser{ID: 4})
	require.Equal(t, 4, s.Users.Snapshot().Data.Stats().Active)

	run(t, s, state.DeactivateUser{ID: 3})
	run(t, s, state.DeleteUser{ID: 3})
	require.Equal(t, 3, s.Users.Snapshot().Data.Users.Len())

	managers := state.SearchUsers(s.Users.Snapshot().Data.Users.Items, "", domain.RoleManager)
	require.Len(t, managers, 1)
	require.Equal(t, "sara@ideateam.com", managers[0].Email)

	byName := state.SearchUsers(s.Users.Snapshot().Data.Users.Items, "ADMIN", "")
	require.Len(t, byName, 1)
}

func TestContentAndSocial(t *testing.T) {
	t.Parallel()

	s := signedIn(t, state.Config{})
	run(t, s, state.FetchContents{})
	run(t, s, state.FetchCategories{})
	run(t, s, state.FetchTags{})
	require.Equal(t, 1, s.Content.Snapshot().Data.Stats().Published)

	run(t, s, state.PublishContent{Slug: "pricing"})
	require.Equal(t, 2, s.Content.Snapshot().Data.Stats().Published)

	run(t, s, state.ArchiveContent{Slug: "pricing"})
	run(t, s, state.DeleteContent{Slug: "pricing"})
	snap := s.Content.Snapshot()
	require.Equal(t, 2, snap.Data.Contents.Len())
	require.Equal(t, 2, snap.Data.Categories.Len())
	require.Equal(t, 2, snap.Data.Tags.Len())

	run(t, s, state.FetchContents{Filter: domain.ContentFilter{ContentType: "blog"}})
	require.Equal(t, 1, s.Content.Snapshot().Data.Contents.Len())

	run(t, s, state.FetchAccounts{})
	run(t, s, state.FetchPosts{})
	run(t, s, state.FetchCampaigns{})
	run(t, s, state.CreatePost{Input: domain.PostInput{Account: 1, Content: "Ramadan hours"}})

	social := s.Social.Snapshot().Data
	require.Equal(t, 4, social.Posts.Len())
	newPost := social.Posts.Items[0]

	run(t, s, state.PublishPost{ID: newPost.ID})
	require.Equal(t, 2, s.Social.Snapshot().Data.Stats().Published)
	require.Equal(t, 2, s.Social.Snapshot().Data.Stats().ActiveAccounts)
	require.Equal(t, 1, s.Social.Snapshot().Data.Campaigns.Len())
}

func TestReports(t *testing.T) {
	t.Parallel()

	s := signedIn(t, state.Config{})
	run(t, s, state.FetchReports{})
	run(t, s, state.FetchDashboardStats{})

	reports := s.Reports.Snapshot().Data
	require.Equal(t, 2, reports.Reports.Len())
	require.NotNil(t, reports.Dashboard)
	require.Equal(t, 4, reports.Dashboard.TotalProjects)
	require.Equal(t, 3, reports.Dashboard.TotalClients)

	run(t, s, state.GenerateReport{Type: domain.ReportSales, Period: domain.DateRange{StartDate: "2020-01-01"}})

	snap := s.Reports.Snapshot()
	require.Equal(t, "Report generated successfully", snap.Success)
	require.Equal(t, 3, snap.Data.Reports.Len())
	require.Equal(t, domain.ReportSales, snap.Data.Reports.Items[0].ReportType)
	require.Len(t, snap.Data.ByType(domain.ReportSales), 2)
	require.Len(t, snap.Data.ByType(""), 3)
	require.NotNil(t, snap.Data.Dashboard)

	err := s.Dispatch(context.Background(), state.GenerateReport{Type: domain.ReportFinancial}).Wait()
	require.True(t, apiclient.IsValidation(err))
	snap = s.Reports.Snapshot()
	require.NotEmpty(t, snap.Error)
	require.Equal(t, 3, snap.Data.Reports.Len())
}

func TestSessionExpiryFromAnySliceSignsOut(t *testing.T) {
	t.Parallel()

	s := signedIn(t, state.Config{})
	run(t, s, state.FetchProjects{})

	// A token the server does not know.
	err := s.Session.SetCredentials(domain.LoginResult{Access: "revoked", Refresh: "r"})
	require.NoError(t, err)

	err = s.Dispatch(context.Background(), state.FetchInvoices{}).Wait()
	require.True(t, apiclient.IsSessionExpired(err))

	snap := s.Snapshot()
	require.False(t, snap.Auth.Data.IsAuthenticated)
	require.Empty(t, snap.Auth.Data.Token)
	require.Equal(t, apiclient.MsgSessionExpired, snap.Auth.Error)
	require.NotEmpty(t, snap.Invoices.Error)
	require.Len(t, snap.Projects.Data.Projects.Items, 4)
}

func TestRejectionOfReplacedTokenKeepsNewSession(t *testing.T) {
	t.Parallel()

	var logins atomic.Int32
	release := make(chan struct{})
	started := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/auth/login/":
			n := logins.Add(1)
			_, _ = io.WriteString(w, `{"access":"t`+strconv.Itoa(int(n))+`","refresh":"r","user":{"id":1,"email":"admin@ideateam.com","role":"admin","is_active":true}}`)
		case "/projects/":
			close(started)
			<-release
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = io.WriteString(w, `{"detail":"Given token not valid for any token type"}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)

	c := apiclient.New(srv.URL)
	s := state.New(state.Config{Source: api.New(c), Storage: memory.NewStore()})
	c.Tokens = s.Session

	run(t, s, state.Login{})
	require.Equal(t, "t1", s.Session.AccessToken())

	fetch := s.Dispatch(context.Background(), state.FetchProjects{})
	<-started
	run(t, s, state.Login{})
	require.Equal(t, "t2", s.Session.AccessToken())

	close(release)
	require.True(t, apiclient.IsSessionExpired(fetch.Wait()))

	auth := s.Snapshot().Auth
	require.True(t, auth.Data.IsAuthenticated)
	require.Equal(t, "t2", auth.Data.Token)
	require.Empty(t, auth.Error)
}

func TestLogoutThenAnonymousRequestsFail(t *testing.T) {
	t.Parallel()

	s := signedIn(t, state.Config{})
	run(t, s, state.Logout{})
	require.False(t, s.Snapshot().Auth.Data.IsAuthenticated)

	err := s.Dispatch(context.Background(), state.FetchProjects{}).Wait()
	require.True(t, apiclient.IsSessionExpired(err))
}

func TestGetCurrentUserAfterRestore(t *testing.T) {
	t.Parallel()

	s := signedIn(t, state.Config{})
	run(t, s, state.GetCurrentUser{})
	require.Equal(t, domain.RoleAdmin, s.Snapshot().Auth.Data.User.Role)
}

func TestSubscribeAndFlash(t *testing.T) {
	t.Parallel()

	s := signedIn(t, state.Config{})

	var calls atomic.Int32
	unsubscribe := s.Subscribe(func() { calls.Add(1) })

	run(t, s, state.CreateProject{Input: domain.ProjectInput{Title: "Flash"}})
	require.GreaterOrEqual(t, calls.Load(), int32(2)) // pending and fulfilled
	require.NotEmpty(t, s.Projects.Snapshot().Success)

	s.ClearFlash()
	require.Empty(t, s.Projects.Snapshot().Success)

	unsubscribe()
	seen := calls.Load()
	run(t, s, state.FetchProjects{})
	require.Equal(t, seen, calls.Load())
}

type outcome struct {
	slice, op string
	outcome   metrics.Outcome
}

type fakeRecorder struct {
	mu       sync.Mutex
	outcomes []outcome
}

func (f *fakeRecorder) ObserveOperation(slice, op string, o metrics.Outcome, _ time.Duration) {
	f.mu.Lock()
	f.outcomes = append(f.outcomes, outcome{slice, op, o})
	f.mu.Unlock()
}

func (f *fakeRecorder) SetInflight(string, int) {}

func (f *fakeRecorder) seen(slice, op string, o metrics.Outcome) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, got := range f.outcomes {
		if got == (outcome{slice, op, o}) {
			return true
		}
	}
	return false
}

func TestRecorderObservesOperations(t *testing.T) {
	t.Parallel()

	rec := &fakeRecorder{}
	s := signedIn(t, state.Config{Recorder: rec})

	run(t, s, state.FetchProjects{})
	_ = s.Dispatch(context.Background(), state.CreateProject{}).Wait()

	require.True(t, rec.seen(state.KeyAuth, "login", metrics.OutcomeFulfilled))
	require.True(t, rec.seen(state.KeyProjects, state.KindFetchProjects, metrics.OutcomeFulfilled))
	require.True(t, rec.seen(state.KeyProjects, state.KindCreateProject, metrics.OutcomeRejected))
}

func TestCanceledFetchLeavesNoTrace(t *testing.T) {
	t.Parallel()

	s := newStore(t, state.Config{}, demo.WithLatency(time.Hour))

	task := s.Dispatch(context.Background(), state.FetchProjects{})

	snap := s.Projects.Snapshot()
	require.True(t, snap.Loading)
	require.True(t, snap.IsPending(state.KindFetchProjects, ""))

	task.Cancel()
	require.ErrorIs(t, task.Wait(), resource.ErrCanceled)

	snap = s.Projects.Snapshot()
	require.False(t, snap.Loading)
	require.Empty(t, snap.Error)
	require.Empty(t, snap.Pending)
}
