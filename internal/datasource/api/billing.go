package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/aussiebroadwan/ideadesk/internal/domain"
	"github.com/aussiebroadwan/ideadesk/pkg/apiclient"
)

type billingSource struct{ c *apiclient.Client }

func invoicePath(id domain.ID) string { return "/invoices/" + id.String() + "/" }

func (b billingSource) ListInvoices(ctx context.Context, query url.Values) (apiclient.Page[domain.Invoice], error) {
	return list[domain.Invoice](ctx, b.c, "/invoices/", query)
}

func (b billingSource) CreateInvoice(ctx context.Context, in domain.InvoiceInput) (domain.Invoice, error) {
	return apiclient.Fetch[domain.Invoice](ctx, b.c, http.MethodPost, "/invoices/", in, nil)
}

func (b billingSource) UpdateInvoice(ctx context.Context, id domain.ID, in domain.InvoiceInput) (domain.Invoice, error) {
	return apiclient.Fetch[domain.Invoice](ctx, b.c, http.MethodPut, invoicePath(id), in, nil)
}

func (b billingSource) SendInvoice(ctx context.Context, id domain.ID) (domain.Invoice, error) {
	return action[domain.Invoice](ctx, b.c, invoicePath(id)+"send/", nil, invoicePath(id), "id")
}

func (b billingSource) MarkInvoicePaid(ctx context.Context, id domain.ID, payment domain.Payment) (domain.Invoice, error) {
	return action[domain.Invoice](ctx, b.c, invoicePath(id)+"mark-paid/", payment, invoicePath(id), "id")
}
