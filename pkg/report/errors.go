package report

import (
	"fmt"
	"strings"
)

// SchemaFetchError means the report type describe call failed. It is fatal:
// no validation runs and no document is produced.
type SchemaFetchError struct {
	ReportType string
	Err        error
}

func (e *SchemaFetchError) Error() string {
	return fmt.Sprintf("failed to fetch schema for report type %q: %v", e.ReportType, e.Err)
}

func (e *SchemaFetchError) Unwrap() error {
	return e.Err
}

// ValidationError means a requested column, filter field, or grouping field
// is not part of the report type. The message enumerates every valid field
// so the caller can self-correct.
type ValidationError struct {
	Field   string
	Allowed []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("unknown report field %q; valid fields are: %s", e.Field, strings.Join(e.Allowed, ", "))
}
