// Package loader reads the raw UCI Air Quality export (CSV or XLSX) and
// produces a cleaned, ordered, missing-aware domain.Dataset.
//
// Structural problems fail fast: a missing or unreadable file yields a
// *DataAccessError, a header without the required columns a *FormatError.
// Row-level problems are tolerated: rows with an unparseable Date/Time pair
// are excluded and reported in Result.Skipped, and unparseable or sentinel
// numeric tokens become missing fields. The load is a pure single-pass
// transform: the same file always yields the same Result.
package loader

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/openairlab/air-quality-service/internal/domain"
)

// Result is the outcome of one load: the cleaned dataset in source order
// plus the rows that had to be excluded.
type Result struct {
	Dataset domain.Dataset
	Skipped []domain.RowError
}

// Func is the load contract: path in, cleaned dataset out.
type Func func(path string) (*Result, error)

// Load reads and cleans the file at path, dispatching on its extension:
// .xlsx opens the workbook distribution, anything else is treated as the
// semicolon-delimited CSV.
func Load(path string) (*Result, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return LoadXLSX(path)
	}
	return LoadCSV(path)
}

// assembler accumulates cleaned rows against a validated header index.
type assembler struct {
	index   map[string]int
	dataset domain.Dataset
	skipped []domain.RowError
}

// headerIndex maps trimmed column names to their positions and verifies all
// required columns are present. Unnamed trailing columns (an export
// artifact) are ignored.
func headerIndex(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}

	var missing []string
	for _, col := range domain.RequiredColumns() {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &FormatError{Missing: missing}
	}
	return index, nil
}

func newAssembler(index map[string]int) *assembler {
	return &assembler{index: index}
}

// add cleans one source row. Fully blank rows are dropped silently; rows
// with a bad Date/Time pair are recorded as skipped.
func (a *assembler) add(row []string, line int) {
	if isBlankRow(row) {
		return
	}

	raw := make(domain.RawRecord, len(a.index))
	for name, i := range a.index {
		if i < len(row) {
			raw[name] = row[i]
		}
	}

	obs, err := domain.CleanRecord(raw, line)
	if err != nil {
		var rowErr *domain.RowError
		if !errors.As(err, &rowErr) {
			rowErr = &domain.RowError{Line: line, Err: err}
		}
		a.skipped = append(a.skipped, *rowErr)
		return
	}
	a.dataset = append(a.dataset, obs)
}

func (a *assembler) result() *Result {
	return &Result{Dataset: a.dataset, Skipped: a.skipped}
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
