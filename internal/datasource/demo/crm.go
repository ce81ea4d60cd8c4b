package demo

import (
	"context"
	"net/url"
	"strings"

	"github.com/aussiebroadwan/ideadesk/internal/domain"
	"github.com/aussiebroadwan/ideadesk/pkg/apiclient"
)

type crmSource struct{ s *Source }

func (c crmSource) ListClients(ctx context.Context, query url.Values) (apiclient.Page[domain.Client], error) {
	_, done, err := c.s.enter(ctx)
	if err != nil {
		return apiclient.Page[domain.Client]{}, err
	}
	defer done()

	status := domain.ClientStatus(query.Get("status"))
	return page(c.s.clients, func(cl domain.Client) bool {
		return status == "" || cl.Status == status
	}), nil
}

func (c crmSource) ListLeads(ctx context.Context, query url.Values) (apiclient.Page[domain.Lead], error) {
	_, done, err := c.s.enter(ctx)
	if err != nil {
		return apiclient.Page[domain.Lead]{}, err
	}
	defer done()

	status := domain.LeadStatus(query.Get("status"))
	return page(c.s.leads, func(l domain.Lead) bool {
		return status == "" || l.Status == status
	}), nil
}

func (c crmSource) CreateClient(ctx context.Context, in domain.ClientInput) (domain.Client, error) {
	_, done, err := c.s.enter(ctx)
	if err != nil {
		return domain.Client{}, err
	}
	defer done()

	switch {
	case strings.TrimSpace(in.CompanyName) == "":
		return domain.Client{}, invalid("company_name", msgRequired)
	case strings.TrimSpace(in.Email) == "":
		return domain.Client{}, invalid("email", msgRequired)
	}
	for _, existing := range c.s.clients {
		if strings.EqualFold(existing.Email, in.Email) {
			return domain.Client{}, invalid("email", "client with this email already exists.")
		}
	}

	now := c.s.now().UTC()
	cl := domain.Client{
		ID:          c.s.newID(),
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		Email:       in.Email,
		Phone:       in.Phone,
		CompanyName: in.CompanyName,
		Industry:    in.Industry,
		Status:      domain.ClientActive,
		ClientSince: c.s.today(),
		Notes:       in.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if in.Status != "" {
		cl.Status = in.Status
	}
	c.s.clients = prepend(c.s.clients, cl)
	return cl, nil
}

func (c crmSource) CreateLead(ctx context.Context, in domain.LeadInput) (domain.Lead, error) {
	_, done, err := c.s.enter(ctx)
	if err != nil {
		return domain.Lead{}, err
	}
	defer done()

	switch {
	case strings.TrimSpace(in.FirstName) == "":
		return domain.Lead{}, invalid("first_name", msgRequired)
	case strings.TrimSpace(in.Email) == "":
		return domain.Lead{}, invalid("email", msgRequired)
	}

	now := c.s.now().UTC()
	l := domain.Lead{
		ID:          c.s.newID(),
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		Email:       in.Email,
		Phone:       in.Phone,
		CompanyName: in.CompanyName,
		Status:      domain.LeadNew,
		Source:      in.Source,
		Notes:       in.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if in.Status != "" {
		l.Status = in.Status
	}
	c.s.leads = prepend(c.s.leads, l)
	return l, nil
}

// ConvertLead moves the lead out of the pipeline and opens a client for it.
func (c crmSource) ConvertLead(ctx context.Context, id domain.ID) (domain.Conversion, error) {
	_, done, err := c.s.enter(ctx)
	if err != nil {
		return domain.Conversion{}, err
	}
	defer done()

	i := indexOf(c.s.leads, id.String())
	if i < 0 {
		return domain.Conversion{}, notFound()
	}
	l := c.s.leads[i]
	if l.Status == domain.LeadLost || l.Status == domain.LeadCancelled {
		return domain.Conversion{}, rejected("Lost or cancelled leads cannot be converted.")
	}

	now := c.s.now().UTC()
	cl := domain.Client{
		ID:          c.s.newID(),
		FirstName:   l.FirstName,
		LastName:    l.LastName,
		Email:       l.Email,
		Phone:       l.Phone,
		CompanyName: l.CompanyName,
		Industry:    l.Industry,
		Status:      domain.ClientActive,
		ClientSince: c.s.today(),
		Notes:       l.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	c.s.leads = removeAt(c.s.leads, i)
	c.s.clients = prepend(c.s.clients, cl)
	return domain.Conversion{LeadID: id, Client: cl}, nil
}
