package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/tidwall/gjson"

	"github.com/aussiebroadwan/ideadesk/internal/domain"
	"github.com/aussiebroadwan/ideadesk/pkg/apiclient"
)

type crmSource struct{ c *apiclient.Client }

func (s crmSource) ListClients(ctx context.Context, query url.Values) (apiclient.Page[domain.Client], error) {
	return list[domain.Client](ctx, s.c, "/clients/", query)
}

func (s crmSource) ListLeads(ctx context.Context, query url.Values) (apiclient.Page[domain.Lead], error) {
	return list[domain.Lead](ctx, s.c, "/leads/", query)
}

func (s crmSource) CreateClient(ctx context.Context, in domain.ClientInput) (domain.Client, error) {
	return apiclient.Fetch[domain.Client](ctx, s.c, http.MethodPost, "/clients/", in, nil)
}

func (s crmSource) CreateLead(ctx context.Context, in domain.LeadInput) (domain.Lead, error) {
	return apiclient.Fetch[domain.Lead](ctx, s.c, http.MethodPost, "/leads/", in, nil)
}

// ConvertLead accepts either the new client as the body or a {"client": ...}
// envelope.
func (s crmSource) ConvertLead(ctx context.Context, id domain.ID) (domain.Conversion, error) {
	conv := domain.Conversion{LeadID: id}

	raw, err := s.c.Request(ctx, http.MethodPost, "/leads/"+id.String()+"/convert/", nil, nil)
	if err != nil {
		return conv, err
	}

	body := gjson.ParseBytes(raw)
	if env := body.Get("client"); env.IsObject() {
		body = env
	}
	if !body.Get("id").Exists() {
		return conv, fmt.Errorf("convert lead %s: %w", id, apiclient.ErrUnexpectedShape)
	}
	if err := json.Unmarshal([]byte(body.Raw), &conv.Client); err != nil {
		return conv, fmt.Errorf("convert lead %s: %w", id, err)
	}
	return conv, nil
}
