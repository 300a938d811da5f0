package dataprocessing

import (
	"fmt"
	"strings"
)

// LoadError reports a dataset file that is missing, unreadable or malformed
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load dataset %q: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// SchemaError reports required columns absent from the loaded table
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	quoted := make([]string, len(e.Missing))
	for i, name := range e.Missing {
		quoted[i] = fmt.Sprintf("%q", name)
	}
	return fmt.Sprintf("the following required columns are missing: [%s]", strings.Join(quoted, ", "))
}
