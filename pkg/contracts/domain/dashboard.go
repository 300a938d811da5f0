package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LabelValue is one bar of a horizontal bar chart
type LabelValue struct {
	Label string          `json:"label"`
	Value decimal.Decimal `json:"value"`
}

// CategoryCount is one slice of a categorical split
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// DashboardSummary holds every aggregate the dashboard renders for one filter selection
type DashboardSummary struct {
	RowCount int `json:"row_count"`

	TotalSpend          decimal.Decimal `json:"total_spend"`
	TotalSpendFormatted string          `json:"total_spend_formatted"`

	AutomationPercent          float64 `json:"automation_percent"`
	AutomationPercentFormatted string  `json:"automation_percent_formatted"`

	TopSuppliersBySpend []LabelValue `json:"top_suppliers_by_spend"`
	TopSuppliersOnTime  []LabelValue `json:"top_suppliers_on_time"`
	TopSuppliersLate    []LabelValue `json:"top_suppliers_late"`

	AutomationSplit     []CategoryCount `json:"automation_split"`
	DeliveryStatusSplit []CategoryCount `json:"delivery_status_split"`

	Orders []OrderRow `json:"orders"`
}

// FilterOptions lists the choices offered by each filter stage and what was applied
type FilterOptions struct {
	Years        []int    `json:"years"`
	SelectedYear int      `json:"selected_year,omitempty"`
	Plants       []string `json:"plants"`
	Groups       []string `json:"groups"`
}

// DatasetInfo describes the currently cached raw dataset
type DatasetInfo struct {
	Path     string    `json:"path"`
	Rows     int       `json:"rows"`
	Columns  []string  `json:"columns"`
	LoadedAt time.Time `json:"loaded_at"`
}
