package analytics

import "strings"

// Category labels assigned by the heuristic categorizer.
const (
	CategoryOperations = "Operations"
	CategoryMarketing  = "Marketing"
	CategoryFacilities = "Facilities"
	CategorySoftware   = "Software"
	CategoryLegal      = "Legal"
)

// categoryRule maps a set of lowercase substrings to a category label.
type categoryRule struct {
	category string
	keywords []string
}

// categoryRules is evaluated in order; the first keyword hit wins.
// The order is part of the contract: "Monthly Marketing Service Fee"
// must land in Marketing even though it also mentions "service".
var categoryRules = []categoryRule{
	{CategoryMarketing, []string{"market", "service"}},
	{CategoryFacilities, []string{"facilit", "heating"}},
	{CategorySoftware, []string{"software", "tech"}},
	{CategoryLegal, []string{"legal"}},
}

// Categorize assigns a category label to an invoice based on its line items.
// Only the first description is inspected; this mirrors how the extraction
// pipeline summarizes invoices and is intentional, not a simplification to
// revisit. Invoices without line items fall into Operations.
func Categorize(lineItemDescriptions []string) string {
	if len(lineItemDescriptions) == 0 {
		return CategoryOperations
	}
	desc := strings.ToLower(strings.TrimSpace(lineItemDescriptions[0]))
	if desc == "" {
		return CategoryOperations
	}
	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(desc, kw) {
				return rule.category
			}
		}
	}
	return CategoryOperations
}
