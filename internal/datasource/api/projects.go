package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/aussiebroadwan/ideadesk/internal/domain"
	"github.com/aussiebroadwan/ideadesk/pkg/apiclient"
)

type projectSource struct{ c *apiclient.Client }

func projectPath(id domain.ID) string { return "/projects/" + id.String() + "/" }

func (p projectSource) List(ctx context.Context, query url.Values) (apiclient.Page[domain.Project], error) {
	return list[domain.Project](ctx, p.c, "/projects/", query)
}

func (p projectSource) Get(ctx context.Context, id domain.ID) (domain.Project, error) {
	return apiclient.Fetch[domain.Project](ctx, p.c, http.MethodGet, projectPath(id), nil, nil)
}

func (p projectSource) Create(ctx context.Context, in domain.ProjectInput) (domain.Project, error) {
	return apiclient.Fetch[domain.Project](ctx, p.c, http.MethodPost, "/projects/", in, nil)
}

func (p projectSource) Update(ctx context.Context, id domain.ID, in domain.ProjectInput) (domain.Project, error) {
	return apiclient.Fetch[domain.Project](ctx, p.c, http.MethodPut, projectPath(id), in, nil)
}

func (p projectSource) Delete(ctx context.Context, id domain.ID) error {
	_, err := p.c.Request(ctx, http.MethodDelete, projectPath(id), nil, nil)
	return err
}
