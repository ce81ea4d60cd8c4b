package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/aussiebroadwan/ideadesk/internal/domain"
	"github.com/aussiebroadwan/ideadesk/pkg/apiclient"
)

type userSource struct{ c *apiclient.Client }

func userPath(id domain.ID) string { return "/api/users/users/" + id.String() + "/" }

func (u userSource) List(ctx context.Context, query url.Values) (apiclient.Page[domain.User], error) {
	return list[domain.User](ctx, u.c, "/api/users/users/", query)
}

func (u userSource) Activate(ctx context.Context, id domain.ID) (domain.User, error) {
	return action[domain.User](ctx, u.c, userPath(id)+"activate/", nil, userPath(id), "id")
}

func (u userSource) Deactivate(ctx context.Context, id domain.ID) (domain.User, error) {
	return action[domain.User](ctx, u.c, userPath(id)+"deactivate/", nil, userPath(id), "id")
}

func (u userSource) Delete(ctx context.Context, id domain.ID) error {
	_, err := u.c.Request(ctx, http.MethodDelete, userPath(id), nil, nil)
	return err
}
