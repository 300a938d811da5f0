package dataprocessing

// ValidateSchema checks that every required column is present in the table header.
// Missing names are reported in the order they were required.
func ValidateSchema(table *Table, required []string) error {
	present := make(map[string]struct{})
	if table != nil {
		for _, h := range table.Header {
			present[h] = struct{}{}
		}
	}

	var missing []string
	for _, name := range required {
		if _, ok := present[name]; !ok {
			missing = append(missing, name)
		}
	}

	if len(missing) > 0 {
		return &SchemaError{Missing: missing}
	}
	return nil
}
