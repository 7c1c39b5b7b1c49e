package loader

import (
	"encoding/csv"
	"errors"
	"io"
	"os"

	"github.com/openairlab/air-quality-service/internal/domain"
)

// LoadCSV reads and cleans the semicolon-delimited CSV distribution.
func LoadCSV(path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &DataAccessError{Path: path, Err: err}
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = ';'
	// Trailing semicolons give rows a varying field count.
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, &DataAccessError{Path: path, Err: err}
	}

	index, err := headerIndex(header)
	if err != nil {
		return nil, err
	}

	asm := newAssembler(index)
	for line := 2; ; line++ {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			asm.skipped = append(asm.skipped, domain.RowError{Line: line, Err: err})
			continue
		}
		asm.add(row, line)
	}

	return asm.result(), nil
}
