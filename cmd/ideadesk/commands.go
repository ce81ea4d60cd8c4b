package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/aussiebroadwan/ideadesk/internal/console/app"
	"github.com/aussiebroadwan/ideadesk/internal/domain"
	"github.com/aussiebroadwan/ideadesk/internal/resource"
	"github.com/aussiebroadwan/ideadesk/internal/state"
	"github.com/aussiebroadwan/ideadesk/pkg/apiclient"
)

var errNotSignedIn = errors.New("not signed in, run `ideadesk login` first")

// open loads the configuration and builds the application. The session is
// restored from the store before it returns.
func open() (*app.Application, error) {
	cfg, err := app.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return app.New(cfg)
}

// run dispatches a on a fresh application, waits for it and hands the
// resulting state to fn. With signedIn set it refuses to run without a
// persisted token.
func run(a state.Action, signedIn bool, fn func(*state.Store) error) error {
	application, err := open()
	if err != nil {
		return err
	}
	defer func() { _ = application.Close() }()

	st := application.State()
	if signedIn && st.Session.AccessToken() == "" {
		return errNotSignedIn
	}
	if err := st.Dispatch(context.Background(), a).Wait(); err != nil {
		return errors.New(apiclient.Message(err))
	}
	return fn(st)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

type ServeCmd struct{}

func (ServeCmd) Run(_ *CLI) error {
	application, err := open()
	if err != nil {
		return err
	}
	return application.Run()
}

type LoginCmd struct {
	Email    string `short:"e" required:"" help:"Account email"`
	Password string `short:"p" required:"" env:"IDEADESK_PASSWORD" help:"Account password"`
}

func (c *LoginCmd) Run(_ *CLI) error {
	creds := domain.Credentials{Email: c.Email, Password: c.Password}
	return run(state.Login{Credentials: creds}, false, func(st *state.Store) error {
		return printJSON(st.Session.Snapshot().Data.User)
	})
}

type LogoutCmd struct{}

func (LogoutCmd) Run(_ *CLI) error {
	return run(state.Logout{}, false, func(st *state.Store) error {
		fmt.Println(st.Session.Snapshot().Success)
		return nil
	})
}

type WhoamiCmd struct{}

func (WhoamiCmd) Run(_ *CLI) error {
	return run(state.GetCurrentUser{}, true, func(st *state.Store) error {
		return printJSON(st.Session.Snapshot().Data.User)
	})
}

type ListCmd struct {
	Resource string `arg:"" enum:"projects,clients,leads,invoices,users,content,posts,reports" help:"One of ${enum}"`
	Search   string `short:"s" help:"Only records matching this text"`
	Role     string `help:"Only users with this role"`
}

func (c *ListCmd) Run(_ *CLI) error {
	var (
		a      state.Action
		render func(*state.Store) error
	)
	switch c.Resource {
	case "projects":
		a = state.FetchProjects{}
		render = func(st *state.Store) error {
			return printJSON(resource.Filter(st.Projects.Snapshot().Data.Projects.Items, c.Search, state.ProjectFields))
		}
	case "clients":
		a = state.FetchClients{}
		render = func(st *state.Store) error {
			return printJSON(resource.Filter(st.Clients.Snapshot().Data.Clients.Items, c.Search, state.ClientFields))
		}
	case "leads":
		a = state.FetchLeads{}
		render = func(st *state.Store) error {
			return printJSON(resource.Filter(st.Clients.Snapshot().Data.Leads.Items, c.Search, state.LeadFields))
		}
	case "invoices":
		a = state.FetchInvoices{}
		render = func(st *state.Store) error {
			return printJSON(resource.Filter(st.Invoices.Snapshot().Data.Invoices.Items, c.Search, state.InvoiceFields))
		}
	case "users":
		a = state.FetchUsers{}
		render = func(st *state.Store) error {
			return printJSON(state.SearchUsers(st.Users.Snapshot().Data.Users.Items, c.Search, domain.Role(c.Role)))
		}
	case "content":
		a = state.FetchContents{}
		render = func(st *state.Store) error {
			return printJSON(resource.Filter(st.Content.Snapshot().Data.Contents.Items, c.Search, state.ContentFields))
		}
	case "posts":
		a = state.FetchPosts{}
		render = func(st *state.Store) error {
			return printJSON(resource.Filter(st.Social.Snapshot().Data.Posts.Items, c.Search, state.PostFields))
		}
	case "reports":
		a = state.FetchReports{}
		render = func(st *state.Store) error {
			return printJSON(resource.Filter(st.Reports.Snapshot().Data.Reports.Items, c.Search, state.ReportFields))
		}
	default:
		return fmt.Errorf("unknown resource %q", c.Resource)
	}
	return run(a, true, render)
}
