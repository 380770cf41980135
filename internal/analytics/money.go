package analytics

import "github.com/shopspring/decimal"

// Round2 rounds a monetary value to two decimal places, half-up on the
// cents digit. Aggregate sums accumulate binary float noise (0.1+0.2 style),
// so every aggregate is passed through here before it reaches a consumer.
func Round2(x float64) float64 {
	f, _ := decimal.NewFromFloat(x).Round(2).Float64()
	return f
}

// PercentageOf returns part/whole as a percentage. A zero whole yields 0
// rather than NaN so an empty dataset renders cleanly.
func PercentageOf(part, whole float64) float64 {
	if whole == 0 {
		return 0
	}
	return part / whole * 100
}
