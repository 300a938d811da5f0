package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DeliveryStatus classifies an order line by the days between shipment and invoice entry
type DeliveryStatus string

const (
	DeliveryOnTime DeliveryStatus = "OnTime"
	DeliveryLate   DeliveryStatus = "Late"
)

// Label returns the human readable form used in charts
func (s DeliveryStatus) Label() string {
	switch s {
	case DeliveryOnTime:
		return "On time"
	case DeliveryLate:
		return "Late"
	default:
		return string(s)
	}
}

// OrderRecord is one purchase order line with its derived delivery attributes.
// Nil dates and day counts mean the source cell was missing or unparseable.
type OrderRecord struct {
	OrderID          string              `json:"order_id"`
	OrderLineID      string              `json:"order_line_id"`
	PurchasingGroup  string              `json:"purchasing_group"`
	Plant            string              `json:"plant"`
	SupplierName     string              `json:"supplier_name"`
	AutomationFlag   string              `json:"automation_flag"`
	OrderDate        *time.Time          `json:"order_date"`
	InvoiceEntryDate *time.Time          `json:"invoice_entry_date"`
	ShipmentDate     *time.Time          `json:"shipment_date"`
	TotalValue       decimal.NullDecimal `json:"total_value"`

	// Derived columns
	LeadTimeOrderToShipment *int           `json:"lead_time_order_to_shipment"`
	TimeShipmentToInvoice   *int           `json:"time_shipment_to_invoice"`
	DeliveryStatus          DeliveryStatus `json:"delivery_status"`
}

// OrderYear returns the calendar year of the order date
func (r OrderRecord) OrderYear() (int, bool) {
	if r.OrderDate == nil {
		return 0, false
	}
	return r.OrderDate.Year(), true
}

// IsAutomatic reports whether the automation flag equals the given marker
func (r OrderRecord) IsAutomatic(marker string) bool {
	return r.AutomationFlag == marker
}

// OrderRow is the row-level projection shown in the orders table
type OrderRow struct {
	OrderID      string              `json:"order_id"`
	OrderLineID  string              `json:"order_line_id"`
	OrderDate    *time.Time          `json:"order_date"`
	SupplierName string              `json:"supplier_name"`
	Plant        string              `json:"plant"`
	TotalValue   decimal.NullDecimal `json:"total_value"`
}

// Row projects the record onto the table columns
func (r OrderRecord) Row() OrderRow {
	return OrderRow{
		OrderID:      r.OrderID,
		OrderLineID:  r.OrderLineID,
		OrderDate:    r.OrderDate,
		SupplierName: r.SupplierName,
		Plant:        r.Plant,
		TotalValue:   r.TotalValue,
	}
}
