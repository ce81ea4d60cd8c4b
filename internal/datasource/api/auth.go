package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/aussiebroadwan/ideadesk/internal/domain"
	"github.com/aussiebroadwan/ideadesk/pkg/apiclient"
)

var errNoAccessToken = errors.New("api: login response carries no access token")

type authSource struct{ c *apiclient.Client }

func (a authSource) Login(ctx context.Context, creds domain.Credentials) (domain.LoginResult, error) {
	res, err := apiclient.Fetch[domain.LoginResult](ctx, a.c, http.MethodPost, "/auth/login/", creds, nil)
	if err != nil {
		return res, err
	}
	if res.Access == "" {
		return res, &apiclient.Error{Kind: apiclient.KindServer, StatusCode: http.StatusOK, Message: "Login failed.", Err: errNoAccessToken}
	}
	return res, nil
}

func (a authSource) Logout(ctx context.Context, refresh string) error {
	_, err := a.c.Request(ctx, http.MethodPost, "/auth/logout/", map[string]string{"refresh": refresh}, nil)
	return err
}

func (a authSource) CurrentUser(ctx context.Context) (domain.User, error) {
	return apiclient.Fetch[domain.User](ctx, a.c, http.MethodGet, "/auth/user/", nil, nil)
}
