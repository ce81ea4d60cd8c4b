package state

import (
	"context"
	"net/url"

	"github.com/aussiebroadwan/ideadesk/internal/domain"
	"github.com/aussiebroadwan/ideadesk/internal/resource"
	"github.com/aussiebroadwan/ideadesk/pkg/apiclient"
)

const (
	KindFetchInvoices = "fetch_invoices"
	KindCreateInvoice = "create_invoice"
	KindUpdateInvoice = "update_invoice"
	KindSendInvoice   = "send_invoice"
	KindMarkPaid      = "mark_invoice_paid"
)

type Billing struct {
	Invoices resource.Collection[domain.Invoice] `json:"invoices"`
}

// InvoiceStats counts invoices by status. Pending means sent and unpaid.
type InvoiceStats struct {
	Total   int `json:"total"`
	Paid    int `json:"paid"`
	Pending int `json:"pending"`
	Overdue int `json:"overdue"`
}

func (b Billing) Stats() InvoiceStats {
	status := func(want domain.InvoiceStatus) func(domain.Invoice) bool {
		return func(inv domain.Invoice) bool { return inv.Status == want }
	}
	return InvoiceStats{
		Total:   b.Invoices.Len(),
		Paid:    b.Invoices.Count(status(domain.InvoicePaid)),
		Pending: b.Invoices.Count(status(domain.InvoiceSent)),
		Overdue: b.Invoices.Count(status(domain.InvoiceOverdue)),
	}
}

func invoicesLens(st *Billing) *resource.Collection[domain.Invoice] { return &st.Invoices }

type FetchInvoices struct{ Query url.Values }

func (a FetchInvoices) dispatch(ctx context.Context, s *Store) *resource.Task {
	return resource.Dispatch(ctx, s.Invoices, resource.ListOp(KindFetchInvoices, invoicesLens,
		func(ctx context.Context) (apiclient.Page[domain.Invoice], error) {
			return s.src.Billing().ListInvoices(ctx, a.Query)
		}))
}

type CreateInvoice struct{ Input domain.InvoiceInput }

func (a CreateInvoice) dispatch(ctx context.Context, s *Store) *resource.Task {
	return resource.Dispatch(ctx, s.Invoices, resource.CreateOp(KindCreateInvoice, invoicesLens,
		func(ctx context.Context) (domain.Invoice, error) {
			return s.src.Billing().CreateInvoice(ctx, a.Input)
		}, "Invoice created successfully"))
}

type UpdateInvoice struct {
	ID    domain.ID
	Input domain.InvoiceInput
}

// invoiceLane groups every write to one invoice.
func invoiceLane(id domain.ID) string { return "invoice/" + id.String() }

func (a UpdateInvoice) dispatch(ctx context.Context, s *Store) *resource.Task {
	op := resource.UpdateOp(KindUpdateInvoice, a.ID.String(), invoicesLens,
		func(ctx context.Context) (domain.Invoice, error) {
			return s.src.Billing().UpdateInvoice(ctx, a.ID, a.Input)
		}, "Invoice updated successfully")
	op.Lane = invoiceLane(a.ID)
	return resource.Dispatch(ctx, s.Invoices, op)
}

type SendInvoice struct{ ID domain.ID }

func (a SendInvoice) dispatch(ctx context.Context, s *Store) *resource.Task {
	op := resource.UpdateOp(KindSendInvoice, a.ID.String(), invoicesLens,
		func(ctx context.Context) (domain.Invoice, error) {
			return s.src.Billing().SendInvoice(ctx, a.ID)
		}, "Invoice sent successfully")
	op.Lane = invoiceLane(a.ID)
	return resource.Dispatch(ctx, s.Invoices, op)
}

type MarkInvoicePaid struct {
	ID      domain.ID
	Payment domain.Payment
}

func (a MarkInvoicePaid) dispatch(ctx context.Context, s *Store) *resource.Task {
	op := resource.UpdateOp(KindMarkPaid, a.ID.String(), invoicesLens,
		func(ctx context.Context) (domain.Invoice, error) {
			return s.src.Billing().MarkInvoicePaid(ctx, a.ID, a.Payment)
		}, "Payment recorded successfully")
	op.Lane = invoiceLane(a.ID)
	return resource.Dispatch(ctx, s.Invoices, op)
}
