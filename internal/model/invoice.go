package model

import "time"

// Package model contains the domain models for the invoice store. These are
// pure structs with no database-specific dependencies or tags, shared across
// the HTTP, service and repository layers.

// Vendor is the party that issued an invoice.
type Vendor struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Customer is the party an invoice is billed to.
type Customer struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// LineItem is a single billed position on an invoice.
type LineItem struct {
	ID          string  `json:"id"`
	InvoiceID   string  `json:"invoice_id"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Total       float64 `json:"total"`
}

// Payment carries the payment terms extracted for an invoice.
type Payment struct {
	ID        string     `json:"id"`
	InvoiceID string     `json:"invoice_id"`
	DueDate   *time.Time `json:"due_date,omitempty"`
	Terms     string     `json:"terms,omitempty"`
}

// Summary holds the monetary totals of an invoice.
type Summary struct {
	ID           string  `json:"id"`
	InvoiceID    string  `json:"invoice_id"`
	SubTotal     float64 `json:"sub_total"`
	TotalTax     float64 `json:"total_tax"`
	InvoiceTotal float64 `json:"invoice_total"`
	Currency     string  `json:"currency"`
}

// Invoice is the root aggregate of the store. Vendor, line items, payment
// and summary are optional: extraction payloads can be partial.
type Invoice struct {
	ID            string     `json:"id"`
	InvoiceNumber string     `json:"invoice_number"`
	InvoiceDate   *time.Time `json:"invoice_date,omitempty"`
	Status        string     `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
	Vendor        *Vendor    `json:"vendor,omitempty"`
	Customer      *Customer  `json:"customer,omitempty"`
	LineItems     []LineItem `json:"line_items,omitempty"`
	Payment       *Payment   `json:"payment,omitempty"`
	Summary       *Summary   `json:"summary,omitempty"`
}

// InvoiceRow is the flattened projection served by the invoice list
// endpoint. Missing relations are resolved to display defaults when the
// row is built, so consumers never see empty fields.
type InvoiceRow struct {
	ID            string    `json:"id"`
	VendorName    string    `json:"vendorName"`
	InvoiceNumber string    `json:"invoiceNumber"`
	InvoiceDate   time.Time `json:"invoiceDate"`
	Amount        float64   `json:"amount"`
	Status        string    `json:"status"`
	Category      string    `json:"category"`
	DueDate       time.Time `json:"dueDate"`
	CreatedAt     time.Time `json:"createdAt"`
}

// InvoiceDocument is the stored source file (PDF scan) attached to an
// invoice.
type InvoiceDocument struct {
	ID          string    `json:"id"`
	InvoiceID   string    `json:"invoice_id"`
	Filename    string    `json:"filename"`
	StoragePath string    `json:"storage_path"`
	Size        int64     `json:"size"`
	ContentType string    `json:"content_type"`
	CreatedAt   time.Time `json:"created_at"`
}

// Stats is the dashboard headline block.
type Stats struct {
	TotalSpend          float64 `json:"totalSpend"`
	InvoicesProcessed   int     `json:"invoicesProcessed"`
	DocumentsUploaded   int     `json:"documentsUploaded"`
	AverageInvoiceValue float64 `json:"averageInvoiceValue"`
}
