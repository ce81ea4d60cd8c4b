// Package api implements datasource.Source over the Idea platform REST API.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/tidwall/gjson"

	"github.com/aussiebroadwan/ideadesk/internal/datasource"
	"github.com/aussiebroadwan/ideadesk/pkg/apiclient"
)

// Source is the REST driver. All sub-sources share one client.
type Source struct {
	c *apiclient.Client
}

var _ datasource.Source = (*Source)(nil)

func New(c *apiclient.Client) *Source {
	return &Source{c: c}
}

func (s *Source) Auth() datasource.Auth         { return authSource{s.c} }
func (s *Source) Projects() datasource.Projects { return projectSource{s.c} }
func (s *Source) CRM() datasource.CRM           { return crmSource{s.c} }
func (s *Source) Billing() datasource.Billing   { return billingSource{s.c} }
func (s *Source) Users() datasource.Users       { return userSource{s.c} }
func (s *Source) CMS() datasource.CMS           { return cmsSource{s.c} }
func (s *Source) Social() datasource.Social     { return socialSource{s.c} }
func (s *Source) Reports() datasource.Reports   { return reportSource{s.c} }

func list[T any](ctx context.Context, c *apiclient.Client, path string, query url.Values) (apiclient.Page[T], error) {
	raw, err := c.Request(ctx, http.MethodGet, path, nil, query)
	if err != nil {
		return apiclient.Page[T]{}, err
	}
	return apiclient.DecodePage[T](raw)
}

// action posts to path and decodes the record from the response. Several
// endpoints answer with a status message only, in which case the record is
// read back from detail. key is the field that identifies a record body.
func action[T any](ctx context.Context, c *apiclient.Client, path string, body any, detail, key string) (T, error) {
	var out T

	raw, err := c.Request(ctx, http.MethodPost, path, body, nil)
	if err != nil {
		return out, err
	}

	if raw != nil && gjson.GetBytes(raw, key).Exists() {
		if err := json.Unmarshal(raw, &out); err != nil {
			return out, fmt.Errorf("failed to decode %s: %w", path, err)
		}
		return out, nil
	}

	return apiclient.Fetch[T](ctx, c, http.MethodGet, detail, nil, nil)
}
