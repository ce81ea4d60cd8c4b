package state

import (
	"github.com/aussiebroadwan/ideadesk/internal/domain"
	"github.com/aussiebroadwan/ideadesk/internal/resource"
)

// Search fields per record type, used with resource.Filter.

func ProjectFields(p domain.Project) []string { return []string{p.Title, p.ClientName} }

func InvoiceFields(i domain.Invoice) []string { return []string{i.InvoiceNumber, i.ClientName} }

func ClientFields(c domain.Client) []string {
	return []string{c.CompanyName, c.FirstName, c.LastName}
}

func LeadFields(l domain.Lead) []string {
	return []string{l.CompanyName, l.FirstName, l.LastName}
}

func ContentFields(c domain.Content) []string { return []string{c.Title, c.Excerpt} }

func UserFields(u domain.User) []string { return []string{u.DisplayName(), u.Email} }

func CategoryFields(c domain.Category) []string { return []string{c.Name, c.Slug} }

func TagFields(t domain.Tag) []string { return []string{t.Name, t.Slug} }

func PostFields(p domain.Post) []string { return []string{p.Content, p.AccountName} }

func AccountFields(a domain.SocialAccount) []string { return []string{a.AccountName, a.Platform} }

func ReportFields(r domain.Report) []string {
	return []string{r.Title, r.Description, r.CreatedByName}
}

func CampaignFields(c domain.Campaign) []string { return []string{c.Name, c.Description} }

// SearchUsers filters by term and, when role is set, by role.
func SearchUsers(users []domain.User, term string, role domain.Role) []domain.User {
	out := resource.Filter(users, term, UserFields)
	if role == "" {
		return out
	}
	kept := out[:0]
	for _, u := range out {
		if u.Role == role {
			kept = append(kept, u)
		}
	}
	return kept
}
