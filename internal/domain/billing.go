package domain

import "time"

type InvoiceStatus string

const (
	InvoiceDraft     InvoiceStatus = "draft"
	InvoiceSent      InvoiceStatus = "sent"
	InvoiceViewed    InvoiceStatus = "viewed"
	InvoicePaid      InvoiceStatus = "paid"
	InvoiceOverdue   InvoiceStatus = "overdue"
	InvoiceCancelled InvoiceStatus = "cancelled"
)

type Invoice struct {
	ID             ID            `json:"id"`
	InvoiceNumber  string        `json:"invoice_number"`
	Client         ID            `json:"client"`
	ClientName     string        `json:"client_name,omitempty"`
	Project        *ID           `json:"project,omitempty"`
	IssueDate      string        `json:"issue_date"`
	DueDate        string        `json:"due_date"`
	Subtotal       string        `json:"subtotal,omitempty"`
	TaxRate        string        `json:"tax_rate,omitempty"`
	TaxAmount      string        `json:"tax_amount,omitempty"`
	DiscountAmount string        `json:"discount_amount,omitempty"`
	TotalAmount    string        `json:"total_amount"`
	Status         InvoiceStatus `json:"status"`
	Notes          string        `json:"notes,omitempty"`
	SentAt         *time.Time    `json:"sent_at,omitempty"`
	PaidAt         *time.Time    `json:"paid_at,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

func (i Invoice) Key() string { return i.ID.String() }

type InvoiceInput struct {
	InvoiceNumber string        `json:"invoice_number,omitempty"`
	Client        ID            `json:"client,omitempty"`
	Project       *ID           `json:"project,omitempty"`
	IssueDate     string        `json:"issue_date,omitempty"`
	DueDate       string        `json:"due_date,omitempty"`
	TotalAmount   string        `json:"total_amount,omitempty"`
	Status        InvoiceStatus `json:"status,omitempty"`
	Notes         string        `json:"notes,omitempty"`
}

// Payment is recorded when an invoice is marked paid.
type Payment struct {
	Amount        string `json:"amount"`
	PaymentMethod string `json:"payment_method"`
	PaymentDate   string `json:"payment_date,omitempty"`
	Reference     string `json:"reference_number,omitempty"`
	Notes         string `json:"notes,omitempty"`
}
