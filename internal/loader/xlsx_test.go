package loader_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/openairlab/air-quality-service/internal/domain"
	"github.com/openairlab/air-quality-service/internal/loader"
)

// writeXLSX builds a workbook with the same cell tokens as the CSV fixture.
func writeXLSX(t *testing.T, header string, rows ...string) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	lines := append([]string{header}, rows...)
	for i, line := range lines {
		cells := strings.Split(line, ";")
		values := make([]any, len(cells))
		for j, c := range cells {
			values[j] = c
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &values))
	}

	path := filepath.Join(t.TempDir(), "AirQualityUCI.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestLoadXLSX(t *testing.T) {
	t.Run("matches the CSV distribution", func(t *testing.T) {
		xlsxPath := writeXLSX(t, csvHeader, fixtureRows...)
		csvPath := writeCSV(t, csvHeader, fixtureRows...)

		fromXLSX, err := loader.Load(xlsxPath)
		require.NoError(t, err)
		fromCSV, err := loader.Load(csvPath)
		require.NoError(t, err)

		assert.Equal(t, fromCSV.Dataset, fromXLSX.Dataset)
	})

	t.Run("sentinel handling", func(t *testing.T) {
		path := writeXLSX(t, csvHeader, fixtureRows...)

		result, err := loader.LoadXLSX(path)
		require.NoError(t, err)
		require.Len(t, result.Dataset, 3)

		_, ok := result.Dataset[1].Value(domain.FieldCO)
		assert.False(t, ok)
	})

	t.Run("missing required column", func(t *testing.T) {
		header := strings.Replace(csvHeader, "NOx(GT);", "", 1)
		path := writeXLSX(t, header)

		_, err := loader.LoadXLSX(path)
		var formatErr *loader.FormatError
		require.ErrorAs(t, err, &formatErr)
		assert.Contains(t, formatErr.Missing, "NOx(GT)")
	})

	t.Run("nonexistent file", func(t *testing.T) {
		_, err := loader.LoadXLSX(filepath.Join(t.TempDir(), "nope.xlsx"))
		var accessErr *loader.DataAccessError
		require.ErrorAs(t, err, &accessErr)
	})
}
