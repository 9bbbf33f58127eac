package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// normalizeText trims surrounding whitespace.
func normalizeText(value string) string {
	return strings.TrimSpace(value)
}

// normalizeNumberText strips thousands separators and currency symbols so
// "$1,234.50" becomes "1234.50".
func normalizeNumberText(value string) string {
	cleaned := strings.ReplaceAll(value, ",", "")
	cleaned = strings.ReplaceAll(cleaned, "$", "")
	return strings.TrimSpace(cleaned)
}

// formatDecimal renders a decimal without trimming trailing zeros, matching
// the scale the value was parsed with: "19.90" stays "19.90", not "19.9".
func formatDecimal(d decimal.Decimal) string {
	if d.Exponent() < 0 {
		return d.StringFixed(-d.Exponent())
	}
	return d.String()
}

// parseAmount parses a money field. An empty field is zero; an unparseable
// one is logged as PARSE_ERROR against the record and coerced to zero so a
// malformed value never aborts the run. The raw, un-normalized text goes
// into the log entry.
func parseAmount(raw string, rec Record, field string, log *ReconLog) decimal.Decimal {
	cleaned := normalizeNumberText(raw)
	if cleaned == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		log.Add(ReasonParseError, rec,
			KV{Key: "Field", Value: field},
			KV{Key: "Value", Value: raw},
		)
		return decimal.Zero
	}
	return d
}
