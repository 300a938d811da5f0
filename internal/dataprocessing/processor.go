package dataprocessing

// Run validates the table schema, derives the delivery columns and applies
// the filter chain. It holds no state: every call starts from the raw table.
func Run(table *Table, cols Columns, sel Selection) (*Result, error) {
	if err := ValidateSchema(table, cols.Required()); err != nil {
		return nil, err
	}

	records := Derive(table, cols)
	filtered, opts := ApplyFilters(records, sel)

	return &Result{
		Records:     filtered,
		Options:     opts,
		DerivedRows: len(records),
	}, nil
}

// PipelineProcessor binds a column mapping to Run
type PipelineProcessor struct {
	columns Columns
}

// NewPipelineProcessor creates a processor for the given column mapping
func NewPipelineProcessor(cols Columns) *PipelineProcessor {
	return &PipelineProcessor{columns: cols}
}

// Columns returns the column mapping in use
func (p *PipelineProcessor) Columns() Columns {
	return p.columns
}

// Process implements Processor
func (p *PipelineProcessor) Process(table *Table, sel Selection) (*Result, error) {
	return Run(table, p.columns, sel)
}
