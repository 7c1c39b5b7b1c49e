package loader_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openairlab/air-quality-service/internal/domain"
	"github.com/openairlab/air-quality-service/internal/loader"
)

// Header and rows mirror the UCI export, trailing semicolons included.
const csvHeader = "Date;Time;CO(GT);PT08.S1(CO);NMHC(GT);C6H6(GT);PT08.S2(NMHC);NOx(GT);PT08.S3(NOx);NO2(GT);PT08.S4(NO2);PT08.S5(O3);T;RH;AH;;"

var fixtureRows = []string{
	"10/03/2004;18.00.00;2,6;1360;150;11,9;1046;166;1056;113;1692;1268;13,6;48,9;0,7578;;",
	"10/03/2004;19.00.00;-200,0;1292;112;9,4;955;103;1174;92;1559;972;13,3;47,7;0,7255;;",
	"10/03/2004;20.00.00;2,2;1402;88;9,0;939;131;1140;114;1555;1074;11,9;54,0;0,7502;;",
}

func writeCSV(t *testing.T, header string, rows ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "AirQualityUCI.csv")
	content := strings.Join(append([]string{header}, rows...), "\n") + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadCSV(t *testing.T) {
	t.Run("cleans all rows", func(t *testing.T) {
		path := writeCSV(t, csvHeader, fixtureRows...)

		result, err := loader.LoadCSV(path)
		require.NoError(t, err)
		require.Len(t, result.Dataset, 3)
		assert.Empty(t, result.Skipped)

		first := result.Dataset[0]
		assert.Equal(t, time.Date(2004, 3, 10, 18, 0, 0, 0, time.UTC), first.Timestamp)

		co, ok := first.Value(domain.FieldCO)
		require.True(t, ok)
		assert.Equal(t, 2.6, co)

		ah, ok := first.Value(domain.FieldAH)
		require.True(t, ok)
		assert.Equal(t, 0.7578, ah)
	})

	t.Run("sentinel CO is missing while other fields parse", func(t *testing.T) {
		path := writeCSV(t, csvHeader, fixtureRows...)

		result, err := loader.LoadCSV(path)
		require.NoError(t, err)

		sentinelRow := result.Dataset[1]
		_, ok := sentinelRow.Value(domain.FieldCO)
		assert.False(t, ok, "-200,0 must clean to missing")

		temp, ok := sentinelRow.Value(domain.FieldT)
		require.True(t, ok)
		assert.Equal(t, 13.3, temp)

		rh, ok := sentinelRow.Value(domain.FieldRH)
		require.True(t, ok)
		assert.Equal(t, 47.7, rh)
	})

	t.Run("trailing blank rows are dropped", func(t *testing.T) {
		rows := append(append([]string{}, fixtureRows...),
			";;;;;;;;;;;;;;;;",
			";;;;;;;;;;;;;;;;",
		)
		path := writeCSV(t, csvHeader, rows...)

		result, err := loader.LoadCSV(path)
		require.NoError(t, err)
		assert.Len(t, result.Dataset, 3)
		assert.Empty(t, result.Skipped, "blank export artifacts are not parse failures")
	})

	t.Run("malformed date row is excluded, rest load", func(t *testing.T) {
		rows := []string{
			fixtureRows[0],
			"not-a-date;19.00.00;2,0;1292;112;9,4;955;103;1174;92;1559;972;13,3;47,7;0,7255;;",
			fixtureRows[2],
		}
		path := writeCSV(t, csvHeader, rows...)

		result, err := loader.LoadCSV(path)
		require.NoError(t, err, "one malformed row must not abort the load")
		assert.Len(t, result.Dataset, 2)

		require.Len(t, result.Skipped, 1)
		assert.Equal(t, 3, result.Skipped[0].Line)
	})

	t.Run("deterministic", func(t *testing.T) {
		path := writeCSV(t, csvHeader, fixtureRows...)

		first, err := loader.LoadCSV(path)
		require.NoError(t, err)
		second, err := loader.LoadCSV(path)
		require.NoError(t, err)

		assert.Equal(t, first.Dataset, second.Dataset)
		assert.Equal(t, first.Skipped, second.Skipped)
	})

	t.Run("missing required column", func(t *testing.T) {
		header := strings.Replace(csvHeader, "CO(GT);", "", 1)
		path := writeCSV(t, header, fixtureRows...)

		_, err := loader.LoadCSV(path)
		require.Error(t, err)

		var formatErr *loader.FormatError
		require.ErrorAs(t, err, &formatErr)
		assert.Contains(t, formatErr.Missing, "CO(GT)")
	})

	t.Run("nonexistent file", func(t *testing.T) {
		_, err := loader.LoadCSV(filepath.Join(t.TempDir(), "nope.csv"))
		require.Error(t, err)

		var accessErr *loader.DataAccessError
		require.ErrorAs(t, err, &accessErr)
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})
}

func TestLoad_DispatchesOnExtension(t *testing.T) {
	path := writeCSV(t, csvHeader, fixtureRows...)

	result, err := loader.Load(path)
	require.NoError(t, err)
	assert.Len(t, result.Dataset, 3)
}
