package dashboard

import (
	"sort"

	"github.com/shopspring/decimal"

	"procurepulse/pkg/contracts/domain"
)

// Summarize computes every dashboard figure for a filtered working set
func Summarize(records []domain.OrderRecord, opts Options) domain.DashboardSummary {
	opts = opts.normalized()

	total := TotalSpend(records)
	pct := AutomationPercent(records, opts.AutomaticMarker)

	return domain.DashboardSummary{
		RowCount:                   len(records),
		TotalSpend:                 total,
		TotalSpendFormatted:        FormatCurrency(opts.CurrencySymbol, total),
		AutomationPercent:          pct,
		AutomationPercentFormatted: FormatPercent(pct),
		TopSuppliersBySpend:        TopSuppliersBySpend(records, opts.TopN),
		TopSuppliersOnTime:         TopSuppliersByStatus(records, domain.DeliveryOnTime, opts.TopN),
		TopSuppliersLate:           TopSuppliersByStatus(records, domain.DeliveryLate, opts.TopN),
		AutomationSplit:            AutomationSplit(records, opts.AutomaticMarker),
		DeliveryStatusSplit:        DeliveryStatusSplit(records),
		Orders:                     Rows(records),
	}
}

// TotalSpend sums the non-null order values
func TotalSpend(records []domain.OrderRecord) decimal.Decimal {
	total := decimal.Zero
	for _, r := range records {
		if r.TotalValue.Valid {
			total = total.Add(r.TotalValue.Decimal)
		}
	}
	return total
}

// AutomationPercent is the share of rows flagged with marker among rows
// that carry any flag, scaled to 0..100
func AutomationPercent(records []domain.OrderRecord, marker string) float64 {
	flagged, automatic := 0, 0
	for _, r := range records {
		if r.AutomationFlag == "" {
			continue
		}
		flagged++
		if r.IsAutomatic(marker) {
			automatic++
		}
	}
	if flagged == 0 {
		return 0
	}
	return float64(automatic) / float64(flagged) * 100
}

// TopSuppliersBySpend sums order value per supplier and keeps the n largest,
// ordered ascending so the largest comes last
func TopSuppliersBySpend(records []domain.OrderRecord, n int) []domain.LabelValue {
	acc := newAccumulator()
	for _, r := range records {
		if r.SupplierName == "" {
			continue
		}
		v := decimal.Zero
		if r.TotalValue.Valid {
			v = r.TotalValue.Decimal
		}
		acc.add(r.SupplierName, v)
	}
	return acc.top(n)
}

// TopSuppliersByStatus counts lines with the given delivery status per
// supplier and keeps the n largest, ascending
func TopSuppliersByStatus(records []domain.OrderRecord, status domain.DeliveryStatus, n int) []domain.LabelValue {
	acc := newAccumulator()
	one := decimal.NewFromInt(1)
	for _, r := range records {
		if r.SupplierName == "" || r.DeliveryStatus != status {
			continue
		}
		acc.add(r.SupplierName, one)
	}
	return acc.top(n)
}

// AutomationSplit counts rows by automation flag. The marker maps to
// AutomaticLabel and every other non-empty flag to ManualLabel.
func AutomationSplit(records []domain.OrderRecord, marker string) []domain.CategoryCount {
	c := newCounter()
	for _, r := range records {
		if r.AutomationFlag == "" {
			continue
		}
		if r.IsAutomatic(marker) {
			c.add(AutomaticLabel)
		} else {
			c.add(ManualLabel)
		}
	}
	return c.descending()
}

// DeliveryStatusSplit counts rows by delivery status
func DeliveryStatusSplit(records []domain.OrderRecord) []domain.CategoryCount {
	c := newCounter()
	for _, r := range records {
		c.add(string(r.DeliveryStatus))
	}
	return c.descending()
}

// Rows projects the records onto the table columns, keeping their order
func Rows(records []domain.OrderRecord) []domain.OrderRow {
	rows := make([]domain.OrderRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, r.Row())
	}
	return rows
}

// accumulator sums values per label, remembering first-seen order
type accumulator struct {
	order  []string
	totals map[string]decimal.Decimal
}

func newAccumulator() *accumulator {
	return &accumulator{totals: make(map[string]decimal.Decimal)}
}

func (a *accumulator) add(label string, v decimal.Decimal) {
	cur, ok := a.totals[label]
	if !ok {
		a.order = append(a.order, label)
		cur = decimal.Zero
	}
	a.totals[label] = cur.Add(v)
}

// top sorts ascending, ties keeping first-seen order, and keeps the trailing n
func (a *accumulator) top(n int) []domain.LabelValue {
	out := make([]domain.LabelValue, 0, len(a.order))
	for _, label := range a.order {
		out = append(out, domain.LabelValue{Label: label, Value: a.totals[label]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Value.LessThan(out[j].Value)
	})
	if len(out) > n {
		out = out[len(out)-n:]
	}
	return out
}

type counter struct {
	order  []string
	counts map[string]int
}

func newCounter() *counter {
	return &counter{counts: make(map[string]int)}
}

func (c *counter) add(category string) {
	if _, ok := c.counts[category]; !ok {
		c.order = append(c.order, category)
	}
	c.counts[category]++
}

func (c *counter) descending() []domain.CategoryCount {
	out := make([]domain.CategoryCount, 0, len(c.order))
	for _, category := range c.order {
		out = append(out, domain.CategoryCount{Category: category, Count: c.counts[category]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}
