package chat

import (
	"context"
	"fmt"
	"strings"

	"invoiceapi/internal/analytics"
	"invoiceapi/internal/model"
	"invoiceapi/internal/repository"
)

// Package chat answers natural-language questions about the invoice data
// with a fixed set of canned aggregate queries. Questions are resolved by
// an ordered list of (predicate, handler) rules — first match wins — so the
// rule order stays auditable and each handler is testable on its own.

// Answer is one chat response: a human sentence, the representative SQL
// (display only, never executed from here) and the backing result rows.
type Answer struct {
	Answer  string           `json:"answer"`
	SQL     string           `json:"sql"`
	Results []map[string]any `json:"results"`
}

// DataSource is the slice of the repository the handlers consume.
type DataSource interface {
	Stats(ctx context.Context) (*model.Stats, error)
	SumByStatus(ctx context.Context, status string) (*repository.StatusCount, error)
	Records(ctx context.Context) ([]analytics.InvoiceRecord, error)
	RecentInvoices(ctx context.Context, limit int) ([]model.InvoiceRow, error)
}

// handler produces an answer once its rule matched.
type handler func(ctx context.Context) (*Answer, error)

type rule struct {
	name   string
	match  func(q string) bool
	handle handler
}

// Dispatcher resolves questions against its rule table.
type Dispatcher struct {
	ds       DataSource
	rules    []rule
	fallback handler
}

// containsAny builds a predicate matching when the lowercased question
// contains at least one of the phrases.
func containsAny(phrases ...string) func(string) bool {
	return func(q string) bool {
		for _, p := range phrases {
			if strings.Contains(q, p) {
				return true
			}
		}
		return false
	}
}

// NewDispatcher wires the rule table. Order matters and is part of the
// contract: "top vendor by total spend" must hit the total-spend rule
// first, exactly as the shipped dashboard behaves.
func NewDispatcher(ds DataSource) *Dispatcher {
	d := &Dispatcher{ds: ds}
	d.rules = []rule{
		{"total_spend", containsAny("total spend", "total cost"), d.totalSpend},
		{"invoice_count", containsAny("how many invoices", "number of invoices"), d.invoiceCount},
		{"top_vendor", containsAny("top vendor", "highest spend"), d.topVendor},
		{"pending_status", containsAny("pending", "unpaid", "status"), d.pendingInvoices},
		{"category_breakdown", containsAny("category", "categories"), d.categoryBreakdown},
		{"average_value", containsAny("average", "mean"), d.averageValue},
		{"monthly_trend", containsAny("month", "trend", "over time"), d.monthlyTrend},
	}
	d.fallback = d.recentInvoices
	return d
}

// Dispatch resolves a question through the rule table.
func (d *Dispatcher) Dispatch(ctx context.Context, query string) (*Answer, error) {
	q := strings.ToLower(query)
	for _, r := range d.rules {
		if r.match(q) {
			return r.handle(ctx)
		}
	}
	return d.fallback(ctx)
}

// RuleNames exposes the rule order for introspection and tests.
func (d *Dispatcher) RuleNames() []string {
	names := make([]string, len(d.rules))
	for i, r := range d.rules {
		names[i] = r.name
	}
	return names
}

func (d *Dispatcher) totalSpend(ctx context.Context) (*Answer, error) {
	stats, err := d.ds.Stats(ctx)
	if err != nil {
		return nil, err
	}
	total := analytics.Round2(stats.TotalSpend)
	return &Answer{
		Answer:  fmt.Sprintf("The total spend across all invoices is €%.2f", total),
		SQL:     "SELECT SUM(invoice_total) AS total_spend FROM summary;",
		Results: []map[string]any{{"total_spend": total}},
	}, nil
}

func (d *Dispatcher) invoiceCount(ctx context.Context) (*Answer, error) {
	stats, err := d.ds.Stats(ctx)
	if err != nil {
		return nil, err
	}
	return &Answer{
		Answer:  fmt.Sprintf("There are %d invoices in the system.", stats.InvoicesProcessed),
		SQL:     "SELECT COUNT(*) AS invoice_count FROM invoice;",
		Results: []map[string]any{{"invoice_count": stats.InvoicesProcessed}},
	}, nil
}

func (d *Dispatcher) topVendor(ctx context.Context) (*Answer, error) {
	records, err := d.ds.Records(ctx)
	if err != nil {
		return nil, err
	}
	ranked := analytics.TopVendorSpend(records)
	if len(ranked) == 0 {
		return &Answer{
			Answer:  "There are no vendors with invoices yet.",
			SQL:     topVendorSQL,
			Results: []map[string]any{},
		}, nil
	}
	top := ranked[0]
	return &Answer{
		Answer:  fmt.Sprintf("The top vendor by spend is %s with €%.2f", top.Name, top.Spend),
		SQL:     topVendorSQL,
		Results: []map[string]any{{"vendor_name": top.Name, "total": top.Spend}},
	}, nil
}

const topVendorSQL = "SELECT v.name, SUM(s.invoice_total) AS total FROM invoice i " +
	"JOIN vendor v ON i.vendor_id = v.id JOIN summary s ON i.id = s.invoice_id " +
	"GROUP BY v.name ORDER BY total DESC LIMIT 1;"

func (d *Dispatcher) pendingInvoices(ctx context.Context) (*Answer, error) {
	sc, err := d.ds.SumByStatus(ctx, "pending")
	if err != nil {
		return nil, err
	}
	total := analytics.Round2(sc.Total)
	return &Answer{
		Answer: fmt.Sprintf("There are %d pending invoices totaling €%.2f", sc.Count, total),
		SQL: "SELECT COUNT(*) AS count, SUM(s.invoice_total) AS total FROM invoice i " +
			"JOIN summary s ON i.id = s.invoice_id WHERE i.status = 'pending';",
		Results: []map[string]any{{"count": sc.Count, "total": total}},
	}, nil
}

func (d *Dispatcher) categoryBreakdown(ctx context.Context) (*Answer, error) {
	records, err := d.ds.Records(ctx)
	if err != nil {
		return nil, err
	}
	breakdown := analytics.CategorySpendBreakdown(records)
	results := make([]map[string]any, 0, len(breakdown))
	for _, c := range breakdown {
		results = append(results, map[string]any{"name": c.Name, "value": c.Value})
	}
	return &Answer{
		Answer:  "Here is the spend breakdown by category",
		SQL:     "SELECT category, SUM(amount) FROM invoices GROUP BY category;",
		Results: results,
	}, nil
}

func (d *Dispatcher) averageValue(ctx context.Context) (*Answer, error) {
	stats, err := d.ds.Stats(ctx)
	if err != nil {
		return nil, err
	}
	avg := analytics.Round2(stats.AverageInvoiceValue)
	return &Answer{
		Answer:  fmt.Sprintf("The average invoice value is €%.2f", avg),
		SQL:     "SELECT AVG(invoice_total) AS average_value FROM summary;",
		Results: []map[string]any{{"average_value": avg}},
	}, nil
}

func (d *Dispatcher) monthlyTrend(ctx context.Context) (*Answer, error) {
	records, err := d.ds.Records(ctx)
	if err != nil {
		return nil, err
	}
	trend := analytics.MonthlyInvoiceTrend(records)
	results := make([]map[string]any, 0, len(trend))
	for _, m := range trend {
		results = append(results, map[string]any{"month": m.Month, "count": m.Count, "spend": m.Spend})
	}
	return &Answer{
		Answer: fmt.Sprintf("Here are the monthly invoice trends for the last %d months", len(trend)),
		SQL: "SELECT DATE_TRUNC('month', invoice_date) AS month, COUNT(*) AS count, " +
			"SUM(invoice_total) AS spend FROM invoice JOIN summary ON invoice.id = summary.invoice_id " +
			"GROUP BY month ORDER BY month;",
		Results: results,
	}, nil
}

func (d *Dispatcher) recentInvoices(ctx context.Context) (*Answer, error) {
	rows, err := d.ds.RecentInvoices(ctx, 5)
	if err != nil {
		return nil, err
	}
	results := make([]map[string]any, 0, len(rows))
	for _, r := range rows {
		results = append(results, map[string]any{
			"invoice_number": r.InvoiceNumber,
			"vendor_name":    r.VendorName,
			"amount":         r.Amount,
			"date":           r.InvoiceDate.Format("2006-01-02"),
		})
	}
	return &Answer{
		Answer: "I analyzed your query and here are the most recent invoices from the database.",
		SQL: "SELECT invoice_number, vendor_name, amount, invoice_date FROM invoice " +
			"ORDER BY created_at DESC LIMIT 5;",
		Results: results,
	}, nil
}
