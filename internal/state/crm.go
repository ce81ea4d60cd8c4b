package state

import (
	"context"
	"net/url"

	"github.com/aussiebroadwan/ideadesk/internal/domain"
	"github.com/aussiebroadwan/ideadesk/internal/resource"
	"github.com/aussiebroadwan/ideadesk/pkg/apiclient"
)

const (
	KindFetchClients = "fetch_clients"
	KindFetchLeads   = "fetch_leads"
	KindCreateClient = "create_client"
	KindCreateLead   = "create_lead"
	KindConvertLead  = "convert_lead"
)

// CRM is the clients slice state. Clients and leads paginate independently.
type CRM struct {
	Clients resource.Collection[domain.Client] `json:"clients"`
	Leads   resource.Collection[domain.Lead]   `json:"leads"`
}

type CRMStats struct {
	Clients       int `json:"clients"`
	ActiveClients int `json:"active_clients"`
	Leads         int `json:"leads"`
}

func (c CRM) Stats() CRMStats {
	return CRMStats{
		Clients:       c.Clients.Len(),
		ActiveClients: c.Clients.Count(func(cl domain.Client) bool { return cl.Status == domain.ClientActive }),
		Leads:         c.Leads.Len(),
	}
}

func clientsLens(st *CRM) *resource.Collection[domain.Client] { return &st.Clients }
func leadsLens(st *CRM) *resource.Collection[domain.Lead]     { return &st.Leads }

type FetchClients struct{ Query url.Values }

func (a FetchClients) dispatch(ctx context.Context, s *Store) *resource.Task {
	return resource.Dispatch(ctx, s.Clients, resource.ListOp(KindFetchClients, clientsLens,
		func(ctx context.Context) (apiclient.Page[domain.Client], error) {
			return s.src.CRM().ListClients(ctx, a.Query)
		}))
}

type FetchLeads struct{ Query url.Values }

func (a FetchLeads) dispatch(ctx context.Context, s *Store) *resource.Task {
	return resource.Dispatch(ctx, s.Clients, resource.ListOp(KindFetchLeads, leadsLens,
		func(ctx context.Context) (apiclient.Page[domain.Lead], error) {
			return s.src.CRM().ListLeads(ctx, a.Query)
		}))
}

type CreateClient struct{ Input domain.ClientInput }

func (a CreateClient) dispatch(ctx context.Context, s *Store) *resource.Task {
	return resource.Dispatch(ctx, s.Clients, resource.CreateOp(KindCreateClient, clientsLens,
		func(ctx context.Context) (domain.Client, error) {
			return s.src.CRM().CreateClient(ctx, a.Input)
		}, "Client created successfully"))
}

type CreateLead struct{ Input domain.LeadInput }

func (a CreateLead) dispatch(ctx context.Context, s *Store) *resource.Task {
	return resource.Dispatch(ctx, s.Clients, resource.CreateOp(KindCreateLead, leadsLens,
		func(ctx context.Context) (domain.Lead, error) {
			return s.src.CRM().CreateLead(ctx, a.Input)
		}, "Lead created successfully"))
}

// ConvertLead removes the lead and prepends the new client in one step.
type ConvertLead struct{ ID domain.ID }

func (a ConvertLead) dispatch(ctx context.Context, s *Store) *resource.Task {
	return resource.Dispatch(ctx, s.Clients, resource.Op[CRM, domain.Conversion]{
		Kind:    KindConvertLead,
		Target:  a.ID.String(),
		Success: "Lead converted to client",
		Run: func(ctx context.Context) (domain.Conversion, error) {
			return s.src.CRM().ConvertLead(ctx, a.ID)
		},
		Writes: resource.Writes(
			func(st *CRM) any { return leadsLens(st) },
			func(st *CRM) any { return clientsLens(st) },
		),
		Reduce: func(st *CRM, conv domain.Conversion) {
			st.Leads = st.Leads.Remove(conv.LeadID.String())
			st.Clients = st.Clients.Prepend(conv.Client)
		},
	})
}
