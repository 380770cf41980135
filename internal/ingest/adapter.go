package ingest

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"invoiceapi/internal/model"
)

// dateLayouts lists the formats the extraction pipeline is known to emit.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.000Z",
	"2006-01-02",
}

// Adapter converts extraction payloads into domain invoices.
type Adapter struct {
	log zerolog.Logger
	now func() time.Time
}

// NewAdapter constructs an Adapter logging with the given logger.
func NewAdapter(log zerolog.Logger) *Adapter {
	return &Adapter{
		log: log.With().Str("component", "ingest").Logger(),
		now: time.Now,
	}
}

// Invoice maps one payload to a fully defaulted model.Invoice:
//   - identifiers are generated when the payload carries none
//   - the invoice total is stored as its absolute value (credit memos come
//     in negative)
//   - malformed date strings are logged at warn level and dropped; the
//     invoice still ingests, it is simply absent from date-keyed aggregates
func (a *Adapter) Invoice(p *Payload) *model.Invoice {
	inv := &model.Invoice{
		ID:     p.ID,
		Status: p.Status,
	}
	if inv.ID == "" {
		inv.ID = uuid.NewString()
	}
	if inv.Status == "" {
		inv.Status = "pending"
	}

	inv.CreatedAt = a.now().UTC()
	if p.CreatedAt != nil && p.CreatedAt.Date != "" {
		if t, ok := a.parseDate(inv.ID, "createdAt", p.CreatedAt.Date); ok {
			inv.CreatedAt = t
		}
	}

	data := p.llm()
	if data == nil {
		return inv
	}

	if name := strField(vendorName(data)); name != "" {
		inv.Vendor = &model.Vendor{ID: uuid.NewString(), Name: name}
	}
	if data.Customer != nil && data.Customer.Value != nil {
		if name := strField(data.Customer.Value.CustomerName); name != "" {
			inv.Customer = &model.Customer{ID: uuid.NewString(), Name: name}
		}
	}

	if data.Invoice != nil && data.Invoice.Value != nil {
		inv.InvoiceNumber = strField(data.Invoice.Value.InvoiceID)
		if raw := strField(data.Invoice.Value.InvoiceDate); raw != "" {
			if t, ok := a.parseDate(inv.ID, "invoiceDate", raw); ok {
				inv.InvoiceDate = &t
			}
		}
	}

	if data.Summary != nil && data.Summary.Value != nil {
		sv := data.Summary.Value
		sum := &model.Summary{
			ID:        uuid.NewString(),
			InvoiceID: inv.ID,
			Currency:  "EUR",
		}
		if sv.InvoiceTotal != nil {
			sum.InvoiceTotal = math.Abs(sv.InvoiceTotal.Value)
		}
		if sv.SubTotal != nil {
			sum.SubTotal = math.Abs(sv.SubTotal.Value)
		}
		if sv.TotalTax != nil {
			sum.TotalTax = math.Abs(sv.TotalTax.Value)
		}
		if cur := strField(sv.CurrencySymbol); cur != "" {
			sum.Currency = cur
		}
		inv.Summary = sum
	}

	if data.LineItems != nil && data.LineItems.Value != nil && data.LineItems.Value.Items != nil {
		for _, item := range data.LineItems.Value.Items.Value {
			li := model.LineItem{
				ID:          uuid.NewString(),
				InvoiceID:   inv.ID,
				Description: strField(item.Description),
			}
			if item.Quantity != nil {
				li.Quantity = item.Quantity.Value
			}
			if item.UnitPrice != nil {
				li.UnitPrice = item.UnitPrice.Value
			}
			if item.Amount != nil {
				li.Total = item.Amount.Value
			}
			inv.LineItems = append(inv.LineItems, li)
		}
	}

	if data.Payment != nil && data.Payment.Value != nil {
		pay := &model.Payment{
			ID:        uuid.NewString(),
			InvoiceID: inv.ID,
			Terms:     strField(data.Payment.Value.Terms),
		}
		if raw := strField(data.Payment.Value.DueDate); raw != "" {
			if t, ok := a.parseDate(inv.ID, "dueDate", raw); ok {
				pay.DueDate = &t
			}
		}
		inv.Payment = pay
	}

	return inv
}

// parseDate tries the known layouts. Failures are logged and reported as
// not-ok rather than aborting the ingest.
func (a *Adapter) parseDate(invoiceID, field, raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), true
		}
	}
	a.log.Warn().
		Str("invoice_id", invoiceID).
		Str("field", field).
		Str("value", raw).
		Msg("unparsable date dropped")
	return time.Time{}, false
}

func vendorName(data *llmData) *valueStr {
	if data.Vendor == nil || data.Vendor.Value == nil {
		return nil
	}
	return data.Vendor.Value.VendorName
}

func strField(v *valueStr) string {
	if v == nil {
		return ""
	}
	return strings.TrimSpace(v.Value)
}
