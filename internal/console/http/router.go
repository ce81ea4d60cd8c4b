// Package http exposes the state container as JSON views. Each handler
// dispatches one action, waits for it to settle and renders the slice.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/ideadesk/internal/guard"
	"github.com/aussiebroadwan/ideadesk/internal/metrics"
	"github.com/aussiebroadwan/ideadesk/internal/state"
	"github.com/aussiebroadwan/ideadesk/internal/store"
	"github.com/aussiebroadwan/ideadesk/pkg/httpx"
	"github.com/aussiebroadwan/ideadesk/pkg/slogx"
	"github.com/prometheus/client_golang/prometheus"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	state    *state.Store
	storage  store.Store
	guard    *guard.Guard
	gatherer prometheus.Gatherer

	// LoginLimit paces POST /login per client address.
	LoginLimit httpx.RateLimitConfig
	// Home is the landing page after sign in.
	Home string
}

func NewRouter(
	st *state.Store,
	g *guard.Guard,
	storage store.Store,
	gatherer prometheus.Gatherer,
	buildVersion string,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		logger:       logger,
		state:        st,
		storage:      storage,
		guard:        g,
		gatherer:     gatherer,
		LoginLimit:   httpx.LoginLimit,
		Home:         "/projects",
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger, "/livez", "/readyz", "/metrics"),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerSession()
	r.registerProjects()
	r.registerCRM()
	r.registerInvoices()
	r.registerUsers()
	r.registerContent()
	r.registerSocial()
	r.registerReports()
	r.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// guarded wraps h in the route guard.
func (r *Router) guarded(h http.HandlerFunc) http.Handler {
	return httpx.Chain(h, r.guard.Middleware)
}

func (r *Router) registerSession() {
	h := &SessionHandler{
		State:     r.state,
		Home:      r.Home,
		LoginPath: r.guard.LoginPath,
	}

	r.Mux.HandleFunc("GET "+r.guard.LoginPath, h.HandleLoginView)

	// Password guessing is limited per client address.
	r.Mux.Handle("POST "+r.guard.LoginPath,
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIP(r.LoginLimit),
		),
	)

	r.Mux.HandleFunc("POST /logout", h.HandleLogout)
	r.Mux.Handle("GET /me", r.guarded(h.HandleMe))
}

func (r *Router) registerProjects() {
	h := &ProjectsHandler{State: r.state}

	r.Mux.Handle("GET /projects", r.guarded(h.HandleList))
	r.Mux.Handle("POST /projects", r.guarded(h.HandleCreate))
	r.Mux.Handle("GET /projects/{id}", r.guarded(h.HandleGet))
	r.Mux.Handle("PUT /projects/{id}", r.guarded(h.HandleUpdate))
	r.Mux.Handle("DELETE /projects/{id}", r.guarded(h.HandleDelete))
}

func (r *Router) registerCRM() {
	h := &CRMHandler{State: r.state}

	r.Mux.Handle("GET /clients", r.guarded(h.HandleListClients))
	r.Mux.Handle("POST /clients", r.guarded(h.HandleCreateClient))
	r.Mux.Handle("GET /leads", r.guarded(h.HandleListLeads))
	r.Mux.Handle("POST /leads", r.guarded(h.HandleCreateLead))
	r.Mux.Handle("POST /leads/{id}/convert", r.guarded(h.HandleConvertLead))
}

func (r *Router) registerInvoices() {
	h := &InvoicesHandler{State: r.state}

	r.Mux.Handle("GET /invoices", r.guarded(h.HandleList))
	r.Mux.Handle("POST /invoices", r.guarded(h.HandleCreate))
	r.Mux.Handle("PUT /invoices/{id}", r.guarded(h.HandleUpdate))
	r.Mux.Handle("POST /invoices/{id}/send", r.guarded(h.HandleSend))
	r.Mux.Handle("POST /invoices/{id}/mark-paid", r.guarded(h.HandleMarkPaid))
}

func (r *Router) registerUsers() {
	h := &UsersHandler{State: r.state}

	r.Mux.Handle("GET /users", r.guarded(h.HandleList))
	r.Mux.Handle("POST /users/{id}/activate", r.guarded(h.HandleActivate))
	r.Mux.Handle("POST /users/{id}/deactivate", r.guarded(h.HandleDeactivate))
	r.Mux.Handle("DELETE /users/{id}", r.guarded(h.HandleDelete))
}

func (r *Router) registerContent() {
	h := &ContentHandler{State: r.state}

	r.Mux.Handle("GET /content", r.guarded(h.HandleList))
	r.Mux.Handle("GET /content/categories", r.guarded(h.HandleCategories))
	r.Mux.Handle("GET /content/tags", r.guarded(h.HandleTags))
	r.Mux.Handle("POST /content/{slug}/publish", r.guarded(h.HandlePublish))
	r.Mux.Handle("POST /content/{slug}/archive", r.guarded(h.HandleArchive))
	r.Mux.Handle("DELETE /content/{slug}", r.guarded(h.HandleDelete))
}

func (r *Router) registerSocial() {
	h := &SocialHandler{State: r.state}

	r.Mux.Handle("GET /social/accounts", r.guarded(h.HandleAccounts))
	r.Mux.Handle("GET /social/posts", r.guarded(h.HandleListPosts))
	r.Mux.Handle("POST /social/posts", r.guarded(h.HandleCreatePost))
	r.Mux.Handle("POST /social/posts/{id}/publish", r.guarded(h.HandlePublishPost))
	r.Mux.Handle("GET /social/campaigns", r.guarded(h.HandleCampaigns))
}

func (r *Router) registerReports() {
	h := &ReportsHandler{State: r.state}

	r.Mux.Handle("GET /reports", r.guarded(h.HandleList))
	r.Mux.Handle("GET /reports/dashboard", r.guarded(h.HandleDashboard))
	r.Mux.Handle("POST /reports/generate", r.guarded(h.HandleGenerate))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.storage, r.state.Session))
	r.Mux.Handle("GET /metrics", metrics.HTTPHandler(r.gatherer))
}
