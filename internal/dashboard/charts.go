package dashboard

import (
	"bytes"
	"fmt"
	"html/template"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"procurepulse/pkg/contracts/domain"
)

// DefaultAssetsHost serves the echarts scripts referenced by rendered pages
const DefaultAssetsHost = "https://go-echarts.github.io/go-echarts-assets/assets/"

// PageOptions controls the HTML dashboard page
type PageOptions struct {
	Title          string
	AssetsHost     string
	CurrencySymbol string

	// Filters is echoed in the page header
	Filters domain.FilterOptions
}

func (o PageOptions) normalized() PageOptions {
	if o.Title == "" {
		o.Title = "Purchasing Dashboard"
	}
	if o.AssetsHost == "" {
		o.AssetsHost = DefaultAssetsHost
	}
	if o.CurrencySymbol == "" {
		o.CurrencySymbol = DefaultOptions().CurrencySymbol
	}
	return o
}

var (
	bodyOpen  = []byte("<body>")
	bodyClose = []byte("</body>")
)

// RenderPage writes the dashboard for summary as a standalone HTML page:
// the headline metrics, the spend and automation charts, the delivery
// charts and finally the order table.
func RenderPage(w io.Writer, summary domain.DashboardSummary, pageOpts PageOptions) error {
	pageOpts = pageOpts.normalized()

	page := components.NewPage()
	page.PageTitle = pageOpts.Title
	page.SetAssetsHost(pageOpts.AssetsHost)
	page.SetLayout(components.PageFlexLayout)
	page.AddCharts(
		horizontalBar(pageOpts, fmt.Sprintf("Top %d suppliers by spend", len(summary.TopSuppliersBySpend)),
			"USD", "royalblue", summary.TopSuppliersBySpend),
		donut(pageOpts, "Automatic vs manual orders", automationSlices(summary.AutomationSplit)),
		horizontalBar(pageOpts, "Suppliers with most on-time deliveries",
			"On-time orders", "mediumseagreen", summary.TopSuppliersOnTime),
		horizontalBar(pageOpts, "Suppliers with most late deliveries",
			"Late orders", "crimson", summary.TopSuppliersLate),
		donut(pageOpts, "On-time vs late deliveries", statusSlices(summary.DeliveryStatusSplit)),
	)

	var charts bytes.Buffer
	if err := page.Render(&charts); err != nil {
		return fmt.Errorf("failed to render charts: %w", err)
	}

	var header, table bytes.Buffer
	if err := headerTemplate.Execute(&header, headerView(summary, pageOpts)); err != nil {
		return fmt.Errorf("failed to render header: %w", err)
	}
	if err := tableTemplate.Execute(&table, tableView(summary, pageOpts)); err != nil {
		return fmt.Errorf("failed to render order table: %w", err)
	}

	_, err := w.Write(inject(charts.Bytes(), header.Bytes(), table.Bytes()))
	return err
}

// inject places header right after <body> and table right before </body>
func inject(page, header, table []byte) []byte {
	out := make([]byte, 0, len(page)+len(header)+len(table))

	open := bytes.Index(page, bodyOpen)
	closing := bytes.LastIndex(page, bodyClose)
	if open < 0 || closing < open {
		out = append(out, header...)
		out = append(out, page...)
		return append(out, table...)
	}

	split := open + len(bodyOpen)
	out = append(out, page[:split]...)
	out = append(out, header...)
	out = append(out, page[split:closing]...)
	out = append(out, table...)
	return append(out, page[closing:]...)
}

func horizontalBar(pageOpts PageOptions, title, axis, color string, values []domain.LabelValue) *charts.Bar {
	labels := make([]string, 0, len(values))
	data := make([]opts.BarData, 0, len(values))
	for _, v := range values {
		labels = append(labels, v.Label)
		data = append(data, opts.BarData{Value: v.Value.InexactFloat64()})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "48%", Height: "480px", AssetsHost: pageOpts.AssetsHost}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: axis, NameLocation: "middle", NameGap: 25}),
		charts.WithGridOpts(opts.Grid{ContainLabel: opts.Bool(true)}),
	)
	bar.SetXAxis(labels).
		AddSeries(axis, data,
			charts.WithItemStyleOpts(opts.ItemStyle{Color: color}),
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "right"}),
		)
	bar.XYReversal()
	return bar
}

func donut(pageOpts PageOptions, title string, slices []opts.PieData) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "48%", Height: "480px", AssetsHost: pageOpts.AssetsHost}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Bottom: "0"}),
	)
	pie.AddSeries(title, slices,
		charts.WithPieChartOpts(opts.PieChart{Radius: []string{"40%", "70%"}}),
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Formatter: "{b}: {d}%"}),
	)
	return pie
}

func automationSlices(split []domain.CategoryCount) []opts.PieData {
	out := make([]opts.PieData, 0, len(split))
	for _, c := range split {
		out = append(out, opts.PieData{Name: c.Category, Value: c.Count})
	}
	return out
}

func statusSlices(split []domain.CategoryCount) []opts.PieData {
	out := make([]opts.PieData, 0, len(split))
	for _, c := range split {
		out = append(out, opts.PieData{Name: domain.DeliveryStatus(c.Category).Label(), Value: c.Count})
	}
	return out
}

type header struct {
	Title      string
	TotalSpend string
	Automation string
	Rows       string
	Year       int
	Plants     []string
	Groups     []string
}

func headerView(s domain.DashboardSummary, pageOpts PageOptions) header {
	return header{
		Title:      pageOpts.Title,
		TotalSpend: s.TotalSpendFormatted,
		Automation: s.AutomationPercentFormatted,
		Rows:       FormatCount(s.RowCount),
		Year:       pageOpts.Filters.SelectedYear,
		Plants:     pageOpts.Filters.Plants,
		Groups:     pageOpts.Filters.Groups,
	}
}

type tableRow struct {
	OrderID     string
	OrderLineID string
	OrderDate   string
	Supplier    string
	Plant       string
	Value       string
}

func tableView(s domain.DashboardSummary, pageOpts PageOptions) []tableRow {
	rows := make([]tableRow, 0, len(s.Orders))
	for _, o := range s.Orders {
		row := tableRow{
			OrderID:     o.OrderID,
			OrderLineID: o.OrderLineID,
			Supplier:    o.SupplierName,
			Plant:       o.Plant,
		}
		if o.OrderDate != nil {
			row.OrderDate = o.OrderDate.Format("2006-01-02")
		}
		if o.TotalValue.Valid {
			row.Value = FormatCurrency(pageOpts.CurrencySymbol, o.TotalValue.Decimal)
		}
		rows = append(rows, row)
	}
	return rows
}

var headerTemplate = template.Must(template.New("header").Parse(`
<div class="pulse-header" style="font-family: sans-serif; padding: 12px 24px;">
  <h1>{{.Title}}</h1>
  <div class="pulse-metrics" style="display: flex; gap: 48px;">
    <div><div>Total spend (USD)</div><strong id="total-spend">{{.TotalSpend}}</strong></div>
    <div><div>Automatic orders</div><strong id="automation-percent">{{.Automation}}</strong></div>
    <div><div>Order lines</div><strong id="row-count">{{.Rows}}</strong></div>
  </div>
  <p class="pulse-filters">{{if .Year}}Year {{.Year}} · {{end}}Plants: {{range $i, $p := .Plants}}{{if $i}}, {{end}}{{$p}}{{end}} · Groups: {{range $i, $g := .Groups}}{{if $i}}, {{end}}{{$g}}{{end}}</p>
</div>
`))

var tableTemplate = template.Must(template.New("table").Parse(`
<div class="pulse-orders" style="font-family: sans-serif; padding: 12px 24px;">
  <h2>Orders</h2>
  <table id="orders">
    <thead>
      <tr><th>Order</th><th>Line</th><th>Order date</th><th>Supplier</th><th>Plant</th><th>Total value USD</th></tr>
    </thead>
    <tbody>
{{- range .}}
      <tr><td>{{.OrderID}}</td><td>{{.OrderLineID}}</td><td>{{.OrderDate}}</td><td>{{.Supplier}}</td><td>{{.Plant}}</td><td>{{.Value}}</td></tr>
{{- end}}
    </tbody>
  </table>
</div>
`))
