package ingest

// Package ingest maps raw extraction payloads into typed domain models.
// The upstream extraction pipeline wraps every field in {value: ...}
// envelopes and omits anything it failed to extract, so the payload types
// below are pointer-heavy on purpose. All defaulting happens here, once,
// at this boundary; downstream code works with the typed model only.

// valueStr is a {value: string} envelope.
type valueStr struct {
	Value string `json:"value"`
}

// valueNum is a {value: number} envelope.
type valueNum struct {
	Value float64 `json:"value"`
}

type vendorData struct {
	Value *struct {
		VendorName *valueStr `json:"vendorName"`
	} `json:"value"`
}

type customerData struct {
	Value *struct {
		CustomerName *valueStr `json:"customerName"`
	} `json:"value"`
}

type summaryData struct {
	Value *struct {
		InvoiceTotal   *valueNum `json:"invoiceTotal"`
		SubTotal       *valueNum `json:"subTotal"`
		TotalTax       *valueNum `json:"totalTax"`
		CurrencySymbol *valueStr `json:"currencySymbol"`
	} `json:"value"`
}

type invoiceData struct {
	Value *struct {
		InvoiceID   *valueStr `json:"invoiceId"`
		InvoiceDate *valueStr `json:"invoiceDate"`
	} `json:"value"`
}

type lineItemData struct {
	Description *valueStr `json:"description"`
	Quantity    *valueNum `json:"quantity"`
	UnitPrice   *valueNum `json:"unitPrice"`
	Amount      *valueNum `json:"amount"`
}

type lineItemsData struct {
	Value *struct {
		Items *struct {
			Value []lineItemData `json:"value"`
		} `json:"items"`
	} `json:"value"`
}

type paymentData struct {
	Value *struct {
		DueDate *valueStr `json:"dueDate"`
		Terms   *valueStr `json:"terms"`
	} `json:"value"`
}

type llmData struct {
	Vendor    *vendorData    `json:"vendor"`
	Customer  *customerData  `json:"customer"`
	Summary   *summaryData   `json:"summary"`
	Invoice   *invoiceData   `json:"invoice"`
	LineItems *lineItemsData `json:"lineItems"`
	Payment   *paymentData   `json:"payment"`
}

// Payload is one extracted invoice as produced by the extraction pipeline.
type Payload struct {
	ID            string `json:"_id"`
	Name          string `json:"name"`
	Status        string `json:"status"`
	CreatedAt     *struct {
		Date string `json:"$date"`
	} `json:"createdAt"`
	ExtractedData *struct {
		LLMData *llmData `json:"llmData"`
	} `json:"extractedData"`
}

func (p *Payload) llm() *llmData {
	if p.ExtractedData == nil {
		return nil
	}
	return p.ExtractedData.LLMData
}
