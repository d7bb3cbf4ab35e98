package narrative

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// formatNumber renders v in its shortest decimal form (2.1, not 2.10 or 2.1000000000000001)
func formatNumber(v float64) string {
	return decimal.NewFromFloat(v).String()
}

// exactFractionDigits is enough to write any float64 without rounding
const exactFractionDigits = 1074

// formatFixed1 renders v with exactly one decimal place. Rounding works on the
// exact binary value, half away from zero, so 1.45 (stored as 1.4499...) gives 1.4.
func formatFixed1(v float64) string {
	exact, err := decimal.NewFromString(strconv.FormatFloat(v, 'f', exactFractionDigits, 64))
	if err != nil {
		return strconv.FormatFloat(v, 'f', 1, 64)
	}
	return exact.StringFixed(1)
}

// tickerLabel renders " (TICKER)" or nothing when the event has no ticker
func tickerLabel(ticker string) string {
	if strings.TrimSpace(ticker) == "" {
		return ""
	}
	return " (" + ticker + ")"
}

// firstN returns at most n leading items without copying
func firstN(items []string, n int) []string {
	if len(items) < n {
		return items
	}
	return items[:n]
}
