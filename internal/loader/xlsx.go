package loader

import (
	"errors"

	"github.com/xuri/excelize/v2"

	"github.com/openairlab/air-quality-service/internal/domain"
)

// LoadXLSX reads and cleans the XLSX workbook distribution of the dataset.
// The first sheet is used; its first row must be the header.
func LoadXLSX(path string) (*Result, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &DataAccessError{Path: path, Err: err}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &DataAccessError{Path: path, Err: errors.New("workbook has no sheets")}
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, &DataAccessError{Path: path, Err: err}
	}
	if len(rows) == 0 {
		return nil, &FormatError{Missing: domain.RequiredColumns()}
	}

	index, err := headerIndex(rows[0])
	if err != nil {
		return nil, err
	}

	asm := newAssembler(index)
	for i, row := range rows[1:] {
		asm.add(row, i+2)
	}

	return asm.result(), nil
}
