package loader

import (
	"fmt"
	"strings"
)

// DataAccessError reports a source file that is absent or unreadable.
// It aborts the load.
type DataAccessError struct {
	Path string
	Err  error
}

func (e *DataAccessError) Error() string {
	return fmt.Sprintf("read dataset %s: %v", e.Path, e.Err)
}

func (e *DataAccessError) Unwrap() error { return e.Err }

// FormatError reports required columns absent from the source header.
// It aborts the load.
type FormatError struct {
	Missing []string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("dataset header missing required columns: %s",
		strings.Join(e.Missing, ", "))
}
