// Command validate performs data integrity checks on a UCI Air Quality
// source CSV against the loader's guarantees: header completeness, cleaned
// row parity, sentinel-to-missing propagation, timestamp ordering, and
// double-load determinism.
//
// Usage:
//
//	go run ./cmd/validate -data data/AirQualityUCI.csv
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/openairlab/air-quality-service/internal/domain"
	"github.com/openairlab/air-quality-service/internal/loader"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	dataPath := flag.String("data", "", "path to the AirQualityUCI CSV file")
	flag.Parse()

	if *dataPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*dataPath); code != 0 {
		os.Exit(code)
	}
}

// rawRow is one source row with tokens keyed by header name.
type rawRow struct {
	lineNum int
	fields  map[string]string
}

func run(path string) int {
	fmt.Println("=== Air Quality Dataset Validation ===")
	fmt.Println()

	header, rows, err := loadRawCSV(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load raw CSV: %v\n", err)
		return 1
	}

	result, err := loader.LoadCSV(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load cleaned dataset: %v\n", err)
		return 1
	}

	phases := []*phase{
		validateHeader(header),
		validateRowParity(rows, result),
		validateSentinels(rows, result),
		validateOrdering(result),
		validateDeterminism(path, result),
	}

	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Records: %d raw rows, %d cleaned observations, %d skipped\n",
		len(rows), len(result.Dataset), len(result.Skipped))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

// ── Data loading ──

func loadRawCSV(path string) ([]string, []rawRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = ';'
	r.FieldsPerRecord = -1

	all, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(all) == 0 {
		return nil, nil, fmt.Errorf("no rows in %s", path)
	}

	header := all[0]
	var rows []rawRow
	for i, row := range all[1:] {
		if isBlank(row) {
			continue
		}
		fields := make(map[string]string, len(header))
		for j, h := range header {
			h = strings.TrimSpace(h)
			if h != "" && j < len(row) {
				fields[h] = strings.TrimSpace(row[j])
			}
		}
		rows = append(rows, rawRow{lineNum: i + 2, fields: fields})
	}
	return header, rows, nil
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ── Validation phases ──

func validateHeader(header []string) *phase {
	p := &phase{name: "header completeness"}
	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[strings.TrimSpace(h)] = true
	}
	for _, col := range domain.RequiredColumns() {
		if !present[col] {
			p.errorf("required column %q absent from header", col)
		}
	}
	return p
}

// validateRowParity checks that every non-blank raw row is accounted for:
// either cleaned into the dataset or reported as skipped.
func validateRowParity(rows []rawRow, result *loader.Result) *phase {
	p := &phase{name: "row parity"}
	got := len(result.Dataset) + len(result.Skipped)
	if got != len(rows) {
		p.errorf("raw rows %d != cleaned %d + skipped %d",
			len(rows), len(result.Dataset), len(result.Skipped))
	}
	return p
}

// validateSentinels re-cleans every raw row and checks that each -200 token
// (any decimal formatting) produced a missing field, and every valid token a
// present one.
func validateSentinels(rows []rawRow, result *loader.Result) *phase {
	p := &phase{name: "sentinel propagation"}

	skipped := make(map[int]bool, len(result.Skipped))
	for _, re := range result.Skipped {
		skipped[re.Line] = true
	}

	i := 0
	for _, row := range rows {
		if skipped[row.lineNum] {
			continue
		}
		if i >= len(result.Dataset) {
			p.errorf("row %d has no cleaned observation", row.lineNum)
			break
		}
		obs := result.Dataset[i]
		i++

		for _, f := range domain.Fields {
			token := row.fields[string(f)]
			_, present := obs.Value(f)
			if isSentinelToken(token) && present {
				p.errorf("row %d field %s: sentinel %q kept as a reading", row.lineNum, f, token)
			}
			if v, ok := domain.ParseMeasurement(token); ok {
				got, hasGot := obs.Value(f)
				if !hasGot || got != v {
					p.errorf("row %d field %s: expected %g, cleaned value missing or different", row.lineNum, f, v)
				}
			}
		}
	}
	return p
}

func isSentinelToken(token string) bool {
	token = strings.TrimSpace(token)
	if token == "" {
		return false
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(token, ",", "."), 64)
	return err == nil && v == domain.Sentinel
}

// validateOrdering checks that cleaned timestamps never decrease, since the
// loader must preserve source order.
func validateOrdering(result *loader.Result) *phase {
	p := &phase{name: "timestamp ordering"}
	for i := 1; i < len(result.Dataset); i++ {
		prev, cur := result.Dataset[i-1].Timestamp, result.Dataset[i].Timestamp
		if cur.Before(prev) {
			p.errorf("observation %d at %s precedes %s", i, cur, prev)
		}
	}
	return p
}

// validateDeterminism loads the file a second time and requires an
// element-for-element equal result.
func validateDeterminism(path string, first *loader.Result) *phase {
	p := &phase{name: "load determinism"}
	second, err := loader.LoadCSV(path)
	if err != nil {
		p.errorf("second load failed: %v", err)
		return p
	}
	if !reflect.DeepEqual(first.Dataset, second.Dataset) {
		p.errorf("datasets differ between loads")
	}
	if !reflect.DeepEqual(first.Skipped, second.Skipped) {
		p.errorf("skipped rows differ between loads")
	}
	return p
}
