package dataprocessing

import (
	"procurepulse/pkg/contracts/domain"
)

// Processor defines the interface for the load-independent part of the pipeline
type Processor interface {
	// Process validates, derives and filters a raw table
	Process(table *Table, sel Selection) (*Result, error)
}

// Result is the outcome of one pipeline run
type Result struct {
	// Records is the filtered working set in source row order
	Records []domain.OrderRecord

	// Options lists the choices offered by each filter stage
	Options domain.FilterOptions

	// DerivedRows counts the rows before filtering
	DerivedRows int
}
