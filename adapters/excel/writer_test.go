package excel

import (
	"encoding/csv"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"matguard/domain/fdr"
	"matguard/internal/rules"
)

func TestWriteFDR_CSV(t *testing.T) {
	pvals := []float64{0.001, math.NaN(), 0.8}
	res := fdr.Correct(pvals, 0.05)

	path := filepath.Join(t.TempDir(), "fdr.csv")
	require.NoError(t, NewWriter(path).WriteFDR(pvals, res))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4) // header + 3 tests

	require.Equal(t, []string{"test", "p_value", "adjusted_p", "significant", "critical_p", "q"}, records[0])
	require.Equal(t, "1", records[1][0])
	require.Equal(t, "0.001", records[1][1])
	require.Equal(t, "NaN", records[2][1])
	require.Equal(t, "NaN", records[2][2])
	require.Equal(t, "false", records[2][3])
}

func TestWriteChecks_Excel(t *testing.T) {
	results := []rules.CheckResult{
		{Rule: "Delimiter Balance", Section: "1. SYNTAX VALIDATION", Passed: true, Gate: true, Detail: "balanced"},
		{Rule: "fdr_bh() calls", Section: "2. HELPER FUNCTIONS", Passed: true, Observed: "3"},
	}

	path := filepath.Join(t.TempDir(), "checks.xlsx")
	require.NoError(t, NewWriter(path).WriteChecks(results))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	a1, err := f.GetCellValue("Sheet1", "A1")
	require.NoError(t, err)
	require.Equal(t, "section", a1)

	b2, err := f.GetCellValue("Sheet1", "B2")
	require.NoError(t, err)
	require.Equal(t, "Delimiter Balance", b2)

	e3, err := f.GetCellValue("Sheet1", "E3")
	require.NoError(t, err)
	require.Equal(t, "3", e3)
}

func TestWriter_ExtensionSelection(t *testing.T) {
	require.Equal(t, "csv", NewWriter("out.CSV").fileType)
	require.Equal(t, "xlsx", NewWriter("out.xlsx").fileType)
	require.Equal(t, "xlsx", NewWriter("out").fileType)
}
