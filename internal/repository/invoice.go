package repository

import (
	"context"

	"invoiceapi/internal/analytics"
	"invoiceapi/internal/model"
)

// ListQuery holds the filters accepted by the invoice list endpoint.
// Sort must be one of the whitelisted column aliases; implementations fall
// back to created_at when it is empty or unknown.
type ListQuery struct {
	Search string
	Sort   string
	Order  string // "asc" or "desc"
}

// StatusCount pairs an invoice count with the summed totals for a status.
type StatusCount struct {
	Count int
	Total float64
}

// InvoiceRepository defines data access for invoices using SQL queries
// only. No business logic here — strictly persistence operations.
type InvoiceRepository interface {
	// CreateInvoice inserts the invoice and all its relations (vendor,
	// customer, line items, payment, summary) in one transaction.
	CreateInvoice(ctx context.Context, inv *model.Invoice) (*model.Invoice, error)

	// ListInvoices returns flattened invoice rows with relations joined in,
	// optionally filtered by a case-insensitive search on vendor name or
	// invoice number.
	ListInvoices(ctx context.Context, q ListQuery) ([]model.InvoiceRow, error)

	// Records loads the full invoice collection as analytics records.
	// Each call is an independent snapshot; nothing is cached.
	Records(ctx context.Context) ([]analytics.InvoiceRecord, error)

	// Stats returns the dashboard headline aggregates.
	Stats(ctx context.Context) (*model.Stats, error)

	// SumByStatus returns count and summed invoice totals for one status.
	SumByStatus(ctx context.Context, status string) (*StatusCount, error)

	// RecentInvoices returns the most recently created rows, newest first.
	RecentInvoices(ctx context.Context, limit int) ([]model.InvoiceRow, error)

	// AttachDocument records an uploaded source document for an invoice.
	AttachDocument(ctx context.Context, doc *model.InvoiceDocument) (*model.InvoiceDocument, error)

	// FindDocument returns the stored source document of an invoice.
	FindDocument(ctx context.Context, invoiceID string) (*model.InvoiceDocument, error)

	// InvoiceExists reports whether an invoice row exists.
	InvoiceExists(ctx context.Context, id string) (bool, error)
}
