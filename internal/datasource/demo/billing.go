package demo

import (
	"cmp"
	"context"
	"fmt"
	"net/url"

	"github.com/aussiebroadwan/ideadesk/internal/domain"
	"github.com/aussiebroadwan/ideadesk/pkg/apiclient"
)

type billingSource struct{ s *Source }

func (b billingSource) ListInvoices(ctx context.Context, query url.Values) (apiclient.Page[domain.Invoice], error) {
	_, done, err := b.s.enter(ctx)
	if err != nil {
		return apiclient.Page[domain.Invoice]{}, err
	}
	defer done()

	status := domain.InvoiceStatus(query.Get("status"))
	return page(b.s.invoices, func(inv domain.Invoice) bool {
		return status == "" || inv.Status == status
	}), nil
}

func (b billingSource) CreateInvoice(ctx context.Context, in domain.InvoiceInput) (domain.Invoice, error) {
	_, done, err := b.s.enter(ctx)
	if err != nil {
		return domain.Invoice{}, err
	}
	defer done()

	switch {
	case in.Client == 0:
		return domain.Invoice{}, invalid("client", msgRequired)
	case in.TotalAmount == "":
		return domain.Invoice{}, invalid("total_amount", msgRequired)
	}

	now := b.s.now().UTC()
	id := b.s.newID()
	inv := domain.Invoice{
		ID:            id,
		InvoiceNumber: fmt.Sprintf("INV-%d-%03d", now.Year(), id),
		IssueDate:     b.s.today(),
		Status:        domain.InvoiceDraft,
		CreatedAt:     now,
	}
	if err := b.s.applyInvoice(&inv, in); err != nil {
		return domain.Invoice{}, err
	}
	b.s.invoices = prepend(b.s.invoices, inv)
	return inv, nil
}

func (b billingSource) UpdateInvoice(ctx context.Context, id domain.ID, in domain.InvoiceInput) (domain.Invoice, error) {
	return b.mutate(ctx, id, func(inv *domain.Invoice) error {
		return b.s.applyInvoice(inv, in)
	})
}

func (b billingSource) SendInvoice(ctx context.Context, id domain.ID) (domain.Invoice, error) {
	return b.mutate(ctx, id, func(inv *domain.Invoice) error {
		if inv.Status == domain.InvoicePaid || inv.Status == domain.InvoiceCancelled {
			return rejected("Paid or cancelled invoices cannot be sent.")
		}
		inv.Status = domain.InvoiceSent
		inv.SentAt = b.s.stamp()
		return nil
	})
}

func (b billingSource) MarkInvoicePaid(ctx context.Context, id domain.ID, payment domain.Payment) (domain.Invoice, error) {
	return b.mutate(ctx, id, func(inv *domain.Invoice) error {
		switch {
		case payment.Amount == "":
			return invalid("amount", msgRequired)
		case inv.Status == domain.InvoicePaid:
			return rejected("Invoice is already paid.")
		case inv.Status == domain.InvoiceCancelled:
			return rejected("Cancelled invoices cannot be paid.")
		}
		inv.Status = domain.InvoicePaid
		inv.PaidAt = b.s.stamp()
		return nil
	})
}

// mutate applies fn to a copy of the invoice and stores it if fn succeeds.
func (b billingSource) mutate(ctx context.Context, id domain.ID, fn func(*domain.Invoice) error) (domain.Invoice, error) {
	_, done, err := b.s.enter(ctx)
	if err != nil {
		return domain.Invoice{}, err
	}
	defer done()

	i := indexOf(b.s.invoices, id.String())
	if i < 0 {
		return domain.Invoice{}, notFound()
	}
	inv := b.s.invoices[i]
	if err := fn(&inv); err != nil {
		return domain.Invoice{}, err
	}
	inv.UpdatedAt = b.s.now().UTC()
	b.s.invoices[i] = inv
	return inv, nil
}

// applyInvoice must be called with mu held.
func (s *Source) applyInvoice(inv *domain.Invoice, in domain.InvoiceInput) error {
	if in.Client != 0 {
		ci := indexOf(s.clients, in.Client.String())
		if ci < 0 {
			return invalid("client", `Invalid pk "`+in.Client.String()+`" - object does not exist.`)
		}
		inv.Client, inv.ClientName = in.Client, s.clients[ci].CompanyName
	}
	if in.Project != nil {
		if indexOf(s.projects, in.Project.String()) < 0 {
			return invalid("project", `Invalid pk "`+in.Project.String()+`" - object does not exist.`)
		}
		inv.Project = in.Project
	}
	inv.InvoiceNumber = cmp.Or(in.InvoiceNumber, inv.InvoiceNumber)
	inv.IssueDate = cmp.Or(in.IssueDate, inv.IssueDate)
	inv.DueDate = cmp.Or(in.DueDate, inv.DueDate)
	inv.TotalAmount = cmp.Or(in.TotalAmount, inv.TotalAmount)
	inv.Status = cmp.Or(in.Status, inv.Status)
	inv.Notes = cmp.Or(in.Notes, inv.Notes)
	inv.UpdatedAt = s.now().UTC()
	return nil
}
