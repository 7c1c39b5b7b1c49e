package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Sentinel is the reserved value the export uses for "no reading".
const Sentinel = -200

// Source column names outside the measured fields.
const (
	ColumnDate = "Date"
	ColumnTime = "Time"
)

// RequiredColumns returns every header column a source file must carry.
func RequiredColumns() []string {
	cols := make([]string, 0, len(Fields)+2)
	cols = append(cols, ColumnDate, ColumnTime)
	for _, f := range Fields {
		cols = append(cols, string(f))
	}
	return cols
}

// RawRecord is one source row as a column-name to raw-token mapping. It
// exists only transiently during cleaning.
type RawRecord map[string]string

// RowError reports a source row excluded during cleaning.
type RowError struct {
	Line int // 1-based line number in the source file
	Err  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d excluded: %v", e.Line, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

// CleanRecord converts one raw row into an Observation. An unparseable
// Date/Time pair yields a *RowError and the row must be excluded by the
// caller; a bad numeric token only downgrades that field to missing.
func CleanRecord(raw RawRecord, line int) (Observation, error) {
	ts, err := ParseTimestamp(raw[ColumnDate], raw[ColumnTime])
	if err != nil {
		return Observation{}, &RowError{Line: line, Err: err}
	}

	measurements := make(map[Field]float64, len(Fields))
	for _, f := range Fields {
		if v, ok := ParseMeasurement(raw[string(f)]); ok {
			measurements[f] = v
		}
	}

	return Observation{Timestamp: ts, Measurements: measurements}, nil
}

// ParseTimestamp combines the Date and Time tokens into a single UTC
// timestamp. Dates are DD/MM/YYYY; times are HH.MM.SS, with HH:MM:SS
// accepted for mirrors that re-export with colons.
func ParseTimestamp(date, clock string) (time.Time, error) {
	date = strings.TrimSpace(date)
	clock = strings.TrimSpace(clock)
	if date == "" || clock == "" {
		return time.Time{}, fmt.Errorf("empty date %q or time %q", date, clock)
	}

	d, err := time.ParseInLocation("02/01/2006", date, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", date, err)
	}

	t, err := time.Parse("15.04.05", clock)
	if err != nil {
		t, err = time.Parse("15:04:05", clock)
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("parse time %q: %w", clock, err)
	}

	return time.Date(d.Year(), d.Month(), d.Day(),
		t.Hour(), t.Minute(), t.Second(), 0, time.UTC), nil
}

// ParseMeasurement parses a raw numeric token, normalizing the decimal comma
// first. Returns false for empty tokens, unparseable tokens, and the -200
// sentinel regardless of decimal formatting ("-200", "-200,0", "-200.0").
func ParseMeasurement(token string) (float64, bool) {
	token = strings.TrimSpace(token)
	if token == "" {
		return 0, false
	}

	v, err := strconv.ParseFloat(strings.ReplaceAll(token, ",", "."), 64)
	if err != nil {
		return 0, false
	}
	if v == Sentinel {
		return 0, false
	}
	return v, true
}
