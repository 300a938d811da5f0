package dashboard

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatCurrency renders an amount with two decimals and thousands separators,
// e.g. "$1,234.56". Negative amounts carry the sign before the symbol.
func FormatCurrency(symbol string, amount decimal.Decimal) string {
	rounded := amount.Round(2)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Abs()
	}
	whole, frac, _ := strings.Cut(rounded.StringFixed(2), ".")
	return sign + symbol + groupThousands(whole) + "." + frac
}

// groupThousands inserts a comma every three digits from the right
func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head := len(digits) % 3
	if head == 0 {
		head = 3
	}
	var b strings.Builder
	b.WriteString(digits[:head])
	for i := head; i < len(digits); i += 3 {
		b.WriteByte(',')
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// FormatPercent renders a percentage with one decimal, e.g. "12.3%"
func FormatPercent(pct float64) string {
	return printer.Sprintf("%.1f%%", pct)
}

// FormatCount renders an integer with thousands separators
func FormatCount(n int) string {
	return printer.Sprintf("%d", n)
}
