package dataprocessing

// RenamedTotalValueColumn is the stable name the value column carries after derivation
const RenamedTotalValueColumn = "Valor Total USD"

// Columns maps each required field to its header in the source file
type Columns struct {
	OrderDate        string
	InvoiceEntryDate string
	ShipmentDate     string
	TotalValue       string
	Plant            string
	AutomationFlag   string
	SupplierName     string
	OrderID          string
	OrderLineID      string
	PurchasingGroup  string
}

// DefaultColumns returns the headers used by the purchasing BI export
func DefaultColumns() Columns {
	return Columns{
		OrderDate:        "Data do pedido",
		InvoiceEntryDate: "Data Entrada NF",
		ShipmentDate:     "Data de Remessa",
		TotalValue:       "Valor total. USD",
		Plant:            "Planta",
		AutomationFlag:   "Automação",
		SupplierName:     "Nome do fornecedor",
		OrderID:          "Pedido",
		OrderLineID:      "Item do pedido",
		PurchasingGroup:  "Grupo de compras",
	}
}

// Required lists the required headers in validation order
func (c Columns) Required() []string {
	return []string{
		c.OrderDate,
		c.InvoiceEntryDate,
		c.ShipmentDate,
		c.TotalValue,
		c.Plant,
		c.AutomationFlag,
		c.SupplierName,
		c.OrderID,
		c.OrderLineID,
		c.PurchasingGroup,
	}
}
