package dashboard

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		amount string
		want   string
	}{
		{"0", "$0.00"},
		{"1234.56", "$1,234.56"},
		{"1234567.891", "$1,234,567.89"},
		{"999.999", "$1,000.00"},
		{"12.5", "$12.50"},
		{"-42.1", "-$42.10"},
		{"100", "$100.00"},
		{"123456", "$123,456.00"},
		{"-0.001", "$0.00"},
		{"123456789012345678.995", "$123,456,789,012,345,679.00"},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCurrency("$", decimal.RequireFromString(tt.amount)))
		})
	}
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "100.0%", FormatPercent(100))
	assert.Equal(t, "12.3%", FormatPercent(12.34))
	assert.Equal(t, "0.0%", FormatPercent(0))
	assert.Equal(t, "66.7%", FormatPercent(200.0/3))
}

func TestFormatCount(t *testing.T) {
	assert.Equal(t, "0", FormatCount(0))
	assert.Equal(t, "12,345", FormatCount(12345))
}
