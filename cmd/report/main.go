package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"procurepulse/internal/config"
	"procurepulse/internal/dashboard"
	"procurepulse/internal/dataprocessing"
	"procurepulse/internal/exporter"
	"procurepulse/internal/infrastructure"
	"procurepulse/internal/services"
	"procurepulse/pkg/contracts"
	"procurepulse/pkg/contracts/domain"
)

// Output file names written under the export directory
const (
	CSVFile  = "orders.csv"
	XLSXFile = "orders.xlsx"
	HTMLFile = "dashboard.html"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// listFlag collects repeated or comma-separated values
type listFlag []string

func (l *listFlag) String() string {
	return strings.Join(*l, ",")
}

func (l *listFlag) Set(v string) error {
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			*l = append(*l, part)
		}
	}
	return nil
}

type options struct {
	configFile string
	dataset    string
	year       int
	plants     listFlag
	groups     listFlag
	allGroups  bool
	outDir     string
	csv        bool
	xlsx       bool
	html       bool
	version    bool
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	o := &options{}
	fs := flag.NewFlagSet("report", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.configFile, "config", "", "configuration file (defaults to config.yaml or $PULSE_CONFIG_FILE)")
	fs.StringVar(&o.dataset, "dataset", "", "dataset path, overrides the configured one")
	fs.IntVar(&o.year, "year", 0, "order year (defaults to the most recent year)")
	fs.Var(&o.plants, "plant", "plant to include; repeatable, defaults to every plant")
	fs.Var(&o.groups, "group", "purchasing group to include when -all-groups=false; repeatable")
	fs.BoolVar(&o.allGroups, "all-groups", true, "include every purchasing group")
	fs.StringVar(&o.outDir, "out", "", "output directory for -csv, -xlsx and -html (defaults to the configured export dir)")
	fs.BoolVar(&o.csv, "csv", false, "write "+CSVFile)
	fs.BoolVar(&o.xlsx, "xlsx", false, "write "+XLSXFile)
	fs.BoolVar(&o.html, "html", false, "write "+HTMLFile)
	fs.BoolVar(&o.version, "version", false, "print version information and exit")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return o, nil
}

func (o *options) selection() dataprocessing.Selection {
	sel := dataprocessing.Selection{Year: o.year}
	if len(o.plants) > 0 {
		sel.Plants = dataprocessing.ExplicitPlants(o.plants...)
	}
	if !o.allGroups {
		sel.Groups = dataprocessing.ExplicitGroups(o.groups...)
	}
	return sel
}

// run loads the dataset, prints the metrics and top lists for the selected
// filters and writes the requested outputs. Load and header failures are
// printed as is and end the run with status 1.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return 2
	}
	if opts.version {
		fmt.Fprintln(stdout, contracts.Build().String())
		return 0
	}

	cfg, err := loadConfig(opts.configFile)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	if opts.dataset != "" {
		cfg.Dataset.Path = opts.dataset
	}
	if opts.outDir == "" {
		opts.outDir = cfg.Dashboard.ExportDir
	}

	// stdout carries the report; logs go to stderr
	logger := infrastructure.NewLogger(cfg.Logging, stderr)
	svc := services.NewDashboardService(cfg, logger)

	if _, err := svc.Load(ctx); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	sel := opts.selection()
	view, err := svc.Dashboard(ctx, sel)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	printReport(stdout, cfg.Dashboard.Title, cfg.Dashboard.CurrencySymbol, view)

	writer := exporter.NewCSVWriter(opts.outDir).WithLogger(logger)
	outputs := []struct {
		enabled bool
		name    string
		write   func() error
	}{
		{opts.csv, CSVFile, func() error {
			rows, err := svc.Orders(ctx, services.ViewCSV, sel)
			if err != nil {
				return err
			}
			return writer.WriteOrders(CSVFile, svc.OrderHeaders(), rows)
		}},
		{opts.xlsx, XLSXFile, func() error {
			return writer.WriteFile(XLSXFile, func(w io.Writer) error { return svc.ExportXLSX(ctx, w, sel) })
		}},
		{opts.html, HTMLFile, func() error {
			return writer.WriteFile(HTMLFile, func(w io.Writer) error {
				page, err := svc.RenderHTML(ctx, sel)
				if err != nil {
					return err
				}
				_, err = w.Write(page)
				return err
			})
		}},
	}
	for _, out := range outputs {
		if !out.enabled {
			continue
		}
		if err := out.write(); err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		fmt.Fprintf(stdout, "wrote %s\n", writer.Path(out.name))
	}

	return 0
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}

func printReport(w io.Writer, title, symbol string, view *services.DashboardView) {
	s := view.Summary

	fmt.Fprintln(w, title)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if view.Filters.SelectedYear != 0 {
		fmt.Fprintf(tw, "Year:\t%d\n", view.Filters.SelectedYear)
	}
	fmt.Fprintf(tw, "Rows:\t%s\n", dashboard.FormatCount(s.RowCount))
	fmt.Fprintf(tw, "Total spend:\t%s\n", dashboard.FormatCurrency(symbol, s.TotalSpend))
	fmt.Fprintf(tw, "Automatic orders:\t%s\n", dashboard.FormatPercent(s.AutomationPercent))
	tw.Flush()

	printTop(w, "Top suppliers by spend", s.TopSuppliersBySpend, func(v domain.LabelValue) string {
		return dashboard.FormatCurrency(symbol, v.Value)
	})
	printTop(w, "Top suppliers on time", s.TopSuppliersOnTime, func(v domain.LabelValue) string {
		return v.Value.String()
	})
	printTop(w, "Top suppliers late", s.TopSuppliersLate, func(v domain.LabelValue) string {
		return v.Value.String()
	})
}

// printTop lists values largest first; the aggregates keep them ascending
func printTop(w io.Writer, heading string, values []domain.LabelValue, format func(domain.LabelValue) string) {
	fmt.Fprintf(w, "\n%s\n", heading)
	if len(values) == 0 {
		fmt.Fprintln(w, "  (none)")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for i := len(values) - 1; i >= 0; i-- {
		fmt.Fprintf(tw, "  %s\t%s\n", values[i].Label, format(values[i]))
	}
	tw.Flush()
}
