package analytics

import "time"

// Package analytics contains the aggregation and categorization engine that
// powers the dashboard views. All functions are pure: they take a snapshot
// of invoice records and return freshly computed aggregates. Nothing here
// touches the database or holds state between calls.

// UnknownVendor is the fallback display name for invoices without a vendor.
const UnknownVendor = "Unknown Vendor"

// InvoiceRecord is the read-only projection the engine consumes.
// Defaulting (missing vendor name, signed amounts, absent dates) is resolved
// by the adapter that builds the record, not by the aggregation functions.
type InvoiceRecord struct {
	ID                   string
	VendorName           string
	Amount               float64 // non-negative; callers take the absolute value
	InvoiceDate          *time.Time
	DueDate              *time.Time
	Status               string
	LineItemDescriptions []string
	CreatedAt            time.Time
}

// monthKey returns the YYYY-MM bucket for a timestamp.
func monthKey(t time.Time) string {
	return t.Format("2006-01")
}

// trendMonth picks the month key for trend grouping: invoice date when
// present, otherwise the record creation timestamp.
func (r InvoiceRecord) trendMonth() string {
	if r.InvoiceDate != nil {
		return monthKey(*r.InvoiceDate)
	}
	return monthKey(r.CreatedAt)
}
