package dataprocessing

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"procurepulse/pkg/contracts/domain"
)

// Derive converts a validated table into order records, parsing the date
// columns and computing the lead time, the shipment-to-invoice time and the
// delivery status. The table is not modified.
func Derive(table *Table, cols Columns) []domain.OrderRecord {
	if table.Len() == 0 {
		return []domain.OrderRecord{}
	}

	idx := func(name string) int {
		i, _ := table.ColumnIndex(name)
		return i
	}
	var (
		orderDateIdx    = idx(cols.OrderDate)
		invoiceDateIdx  = idx(cols.InvoiceEntryDate)
		shipmentDateIdx = idx(cols.ShipmentDate)
		valueIdx        = idx(cols.TotalValue)
		plantIdx        = idx(cols.Plant)
		flagIdx         = idx(cols.AutomationFlag)
		supplierIdx     = idx(cols.SupplierName)
		orderIdx        = idx(cols.OrderID)
		lineIdx         = idx(cols.OrderLineID)
		groupIdx        = idx(cols.PurchasingGroup)
	)

	records := make([]domain.OrderRecord, 0, len(table.Rows))
	for _, row := range table.Rows {
		record := domain.OrderRecord{
			OrderID:          cell(row, orderIdx),
			OrderLineID:      cell(row, lineIdx),
			PurchasingGroup:  cell(row, groupIdx),
			Plant:            cell(row, plantIdx),
			SupplierName:     cell(row, supplierIdx),
			AutomationFlag:   cell(row, flagIdx),
			OrderDate:        parseDatePtr(cell(row, orderDateIdx)),
			InvoiceEntryDate: parseDatePtr(cell(row, invoiceDateIdx)),
			ShipmentDate:     parseDatePtr(cell(row, shipmentDateIdx)),
			TotalValue:       parseValue(cell(row, valueIdx)),
		}
		deriveDelivery(&record)
		records = append(records, record)
	}

	return records
}

// deriveDelivery fills the derived columns. A shipment-to-invoice time of
// zero, a negative one or a missing one all classify the line as Late.
func deriveDelivery(r *domain.OrderRecord) {
	if r.OrderDate != nil && r.ShipmentDate != nil {
		days := daysBetween(*r.OrderDate, *r.ShipmentDate)
		r.LeadTimeOrderToShipment = &days
	}
	if r.ShipmentDate != nil && r.InvoiceEntryDate != nil {
		days := daysBetween(*r.ShipmentDate, *r.InvoiceEntryDate)
		r.TimeShipmentToInvoice = &days
	}

	r.DeliveryStatus = domain.DeliveryLate
	if r.TimeShipmentToInvoice != nil && *r.TimeShipmentToInvoice > 0 {
		r.DeliveryStatus = domain.DeliveryOnTime
	}
}

func parseDatePtr(s string) *time.Time {
	t, ok := ParseDate(s)
	if !ok {
		return nil
	}
	return &t
}

// parseValue accepts plain decimals and tolerates thousands separators and a
// leading currency symbol. Anything else is null.
func parseValue(s string) decimal.NullDecimal {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}
