package analytics

import (
	"math"
	"sort"
	"time"
)

// VendorSpend is one ranked entry of the vendor spend view.
// Percentage is the share of the full vendor universe, not just of the
// top 10 entries that survive truncation.
type VendorSpend struct {
	Name       string  `json:"name"`
	Spend      float64 `json:"spend"`
	Percentage float64 `json:"percentage,omitempty"`
}

// CategorySpend is one slice of the category breakdown.
type CategorySpend struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// MonthlyTrend is one month of the invoice volume/spend trend.
type MonthlyTrend struct {
	Month string  `json:"month"` // YYYY-MM
	Count int     `json:"count"`
	Spend float64 `json:"spend"`
}

// CashOutflow is one month of the absolute cash outflow forecast.
type CashOutflow struct {
	Date   string  `json:"date"` // YYYY-MM of the due date
	Amount float64 `json:"amount"`
}

// OutflowBucket is one relative day-offset bucket of the forecast.
type OutflowBucket struct {
	Period string  `json:"period"`
	Amount float64 `json:"amount"`
}

const topVendorCount = 10

// TopVendorSpend groups records by vendor display name, ranks them by total
// spend and keeps the top 10. Grouping is by the name shown on the invoice,
// not by vendor identity: two vendor rows sharing a name merge here.
// Percentages are computed against the total over ALL vendors before the
// ranking is truncated.
func TopVendorSpend(records []InvoiceRecord) []VendorSpend {
	type vendorAcc struct {
		name  string
		spend float64
	}
	totals := make(map[string]*vendorAcc)
	order := make([]string, 0)

	var universe float64
	for _, rec := range records {
		name := rec.VendorName
		if name == "" {
			name = UnknownVendor
		}
		acc, ok := totals[name]
		if !ok {
			acc = &vendorAcc{name: name}
			totals[name] = acc
			order = append(order, name)
		}
		acc.spend += rec.Amount
		universe += rec.Amount
	}

	ranked := make([]VendorSpend, 0, len(order))
	for _, name := range order {
		acc := totals[name]
		ranked = append(ranked, VendorSpend{
			Name:       acc.name,
			Spend:      acc.spend,
			Percentage: PercentageOf(acc.spend, universe),
		})
	}
	// Stable: ties keep first-encounter order.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Spend > ranked[j].Spend
	})
	if len(ranked) > topVendorCount {
		ranked = ranked[:topVendorCount]
	}
	for i := range ranked {
		ranked[i].Spend = Round2(ranked[i].Spend)
		ranked[i].Percentage = Round2(ranked[i].Percentage)
	}
	return ranked
}

// CategorySpendBreakdown sums invoice amounts per heuristic category.
// Output order is the order in which each category was first seen during
// the traversal; categories that received no invoice are omitted.
func CategorySpendBreakdown(records []InvoiceRecord) []CategorySpend {
	totals := make(map[string]float64)
	order := make([]string, 0)

	for _, rec := range records {
		cat := Categorize(rec.LineItemDescriptions)
		if _, ok := totals[cat]; !ok {
			order = append(order, cat)
		}
		totals[cat] += rec.Amount
	}

	out := make([]CategorySpend, 0, len(order))
	for _, cat := range order {
		out = append(out, CategorySpend{Name: cat, Value: Round2(totals[cat])})
	}
	return out
}

// MonthlyInvoiceTrend buckets records per calendar month of the invoice
// date (creation date when absent), counting invoices and summing spend.
// Months without invoices are absent; the chart layer decides whether to
// zero-fill.
func MonthlyInvoiceTrend(records []InvoiceRecord) []MonthlyTrend {
	type monthAcc struct {
		count int
		spend float64
	}
	months := make(map[string]*monthAcc)

	for _, rec := range records {
		key := rec.trendMonth()
		acc, ok := months[key]
		if !ok {
			acc = &monthAcc{}
			months[key] = acc
		}
		acc.count++
		acc.spend += rec.Amount
	}

	keys := make([]string, 0, len(months))
	for k := range months {
		keys = append(keys, k)
	}
	// Lexicographic == chronological for YYYY-MM keys.
	sort.Strings(keys)

	out := make([]MonthlyTrend, 0, len(keys))
	for _, k := range keys {
		acc := months[k]
		out = append(out, MonthlyTrend{Month: k, Count: acc.count, Spend: Round2(acc.spend)})
	}
	return out
}

// CashOutflowForecast sums amounts due per calendar month of the due date,
// ascending. Records without a due date are excluded.
func CashOutflowForecast(records []InvoiceRecord) []CashOutflow {
	months := make(map[string]float64)
	for _, rec := range records {
		if rec.DueDate == nil {
			continue
		}
		months[monthKey(*rec.DueDate)] += rec.Amount
	}

	keys := make([]string, 0, len(months))
	for k := range months {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]CashOutflow, 0, len(keys))
	for _, k := range keys {
		out = append(out, CashOutflow{Date: k, Amount: Round2(months[k])})
	}
	return out
}

// Relative forecast bucket labels, in payout order.
var outflowPeriods = [4]string{"0-7 days", "8-30 days", "31-60 days", "60+ days"}

const dayMillis = 24 * 60 * 60 * 1000

// CashOutflowBuckets is the relative variant of the forecast: amounts due
// are assigned to fixed day-offset ranges from now. Offsets are whole days,
// floor of the millisecond difference, so anything already overdue lands in
// the first bucket. All four buckets are always returned.
func CashOutflowBuckets(records []InvoiceRecord, now time.Time) []OutflowBucket {
	out := make([]OutflowBucket, len(outflowPeriods))
	for i, p := range outflowPeriods {
		out[i] = OutflowBucket{Period: p}
	}

	for _, rec := range records {
		if rec.DueDate == nil {
			continue
		}
		days := int(math.Floor(float64(rec.DueDate.Sub(now).Milliseconds()) / dayMillis))
		switch {
		case days <= 7:
			out[0].Amount += rec.Amount
		case days <= 30:
			out[1].Amount += rec.Amount
		case days <= 60:
			out[2].Amount += rec.Amount
		default:
			out[3].Amount += rec.Amount
		}
	}

	for i := range out {
		out[i].Amount = Round2(out[i].Amount)
	}
	return out
}
