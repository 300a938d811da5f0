package dashboard

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"procurepulse/pkg/contracts/domain"
)

func TestRenderPage(t *testing.T) {
	data := records(
		rec{supplier: "Acme", value: "1000", flag: "A", status: domain.DeliveryOnTime},
		rec{supplier: "<script>alert(1)</script>", value: "234.56", flag: "M", status: domain.DeliveryLate},
	)
	summary := Summarize(data, DefaultOptions())

	var buf bytes.Buffer
	err := RenderPage(&buf, summary, PageOptions{
		Title:   "Compras",
		Filters: domain.FilterOptions{SelectedYear: 2024, Plants: []string{"P1", "P2"}, Groups: []string{"G1"}},
	})
	require.NoError(t, err)
	out := buf.String()

	assert.Contains(t, out, "<title>Compras</title>")
	assert.Contains(t, out, `<strong id="total-spend">$1,234.56</strong>`)
	assert.Contains(t, out, `<strong id="automation-percent">50.0%</strong>`)
	assert.Contains(t, out, "Year 2024")
	assert.Contains(t, out, "Plants: P1, P2")
	assert.Contains(t, out, "Suppliers with most late deliveries")
	assert.Contains(t, out, DefaultAssetsHost)
	assert.Contains(t, out, "<td>4500001</td>")
	assert.NotContains(t, out, "<td><script>")

	// header comes first, table last
	body := strings.Index(out, "<body>")
	header := strings.Index(out, `class="pulse-header"`)
	table := strings.Index(out, `<table id="orders">`)
	closing := strings.LastIndex(out, "</body>")
	require.True(t, body >= 0 && closing >= 0)
	assert.True(t, body < header && header < table && table < closing)
}

func TestRenderPage_EmptySummary(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderPage(&buf, Summarize(nil, Options{}), PageOptions{}))

	out := buf.String()
	assert.Contains(t, out, "Purchasing Dashboard")
	assert.Contains(t, out, `<strong id="total-spend">$0.00</strong>`)
	assert.Contains(t, out, `<table id="orders">`)
}

func TestInject_WithoutBody(t *testing.T) {
	got := inject([]byte("charts"), []byte("H"), []byte("T"))
	assert.Equal(t, "HchartsT", string(got))
}
