package domain

import "time"

type ClientStatus string

const (
	ClientActive     ClientStatus = "active"
	ClientInactive   ClientStatus = "inactive"
	ClientSuspended  ClientStatus = "suspended"
	ClientTerminated ClientStatus = "terminated"
)

type Client struct {
	ID             ID           `json:"id"`
	FirstName      string       `json:"first_name"`
	LastName       string       `json:"last_name"`
	Email          string       `json:"email"`
	Phone          string       `json:"phone,omitempty"`
	CompanyName    string       `json:"company_name"`
	CompanyWebsite string       `json:"company_website,omitempty"`
	Industry       string       `json:"industry,omitempty"`
	City           string       `json:"city,omitempty"`
	Country        string       `json:"country,omitempty"`
	Status         ClientStatus `json:"status"`
	ClientSince    string       `json:"client_since,omitempty"`
	Notes          string       `json:"notes,omitempty"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

func (c Client) Key() string { return c.ID.String() }

type LeadStatus string

const (
	LeadNew          LeadStatus = "new"
	LeadContacted    LeadStatus = "contacted"
	LeadQualified    LeadStatus = "qualified"
	LeadProposalSent LeadStatus = "proposal_sent"
	LeadNegotiation  LeadStatus = "negotiation"
	LeadWon          LeadStatus = "won"
	LeadLost         LeadStatus = "lost"
	LeadCancelled    LeadStatus = "cancelled"
)

type Lead struct {
	ID                 ID         `json:"id"`
	FirstName          string     `json:"first_name"`
	LastName           string     `json:"last_name"`
	Email              string     `json:"email"`
	Phone              string     `json:"phone,omitempty"`
	CompanyName        string     `json:"company_name,omitempty"`
	JobTitle           string     `json:"job_title,omitempty"`
	Industry           string     `json:"industry,omitempty"`
	Status             LeadStatus `json:"status"`
	Source             string     `json:"source,omitempty"`
	InterestedServices string     `json:"interested_services,omitempty"`
	BudgetRange        string     `json:"budget_range,omitempty"`
	Notes              string     `json:"notes,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

func (l Lead) Key() string { return l.ID.String() }

// ClientInput creates a client.
type ClientInput struct {
	FirstName   string       `json:"first_name"`
	LastName    string       `json:"last_name"`
	Email       string       `json:"email"`
	Phone       string       `json:"phone,omitempty"`
	CompanyName string       `json:"company_name"`
	Industry    string       `json:"industry,omitempty"`
	Status      ClientStatus `json:"status,omitempty"`
	Notes       string       `json:"notes,omitempty"`
}

// LeadInput creates a lead.
type LeadInput struct {
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone,omitempty"`
	CompanyName string     `json:"company_name,omitempty"`
	Status      LeadStatus `json:"status,omitempty"`
	Source      string     `json:"source,omitempty"`
	Notes       string     `json:"notes,omitempty"`
}

// Conversion is the outcome of converting a lead: the lead that left the
// pipeline and the client that replaced it.
type Conversion struct {
	LeadID ID
	Client Client
}
