package exporter

import (
	"time"

	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// formatDecimal formats a value with exactly 2 decimal places; null is empty
func formatDecimal(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return d.Decimal.StringFixed(2)
}

// formatDate formats a date as ISO 8601; nil is empty
func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}
