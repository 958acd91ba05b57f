// Package excel exports correction results and validation check tables to
// Excel or CSV files, selected by extension.
package excel

import (
	"encoding/csv"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"matguard/domain/core"
	"matguard/domain/fdr"
	"matguard/internal/errors"
	"matguard/internal/rules"
)

// Writer handles writing result tables to Excel and CSV files
type Writer struct {
	filePath string
	fileType string // "xlsx" or "csv"
}

// NewWriter creates a writer for the given path; .csv gets CSV output,
// .xlsx gets Excel output
func NewWriter(filePath string) *Writer {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	return &Writer{filePath: filePath, fileType: fileType}
}

// WriteFDR writes one row per test: raw p, adjusted p, significance, plus
// the run-level critical p and q on every row so the file stands alone
func (w *Writer) WriteFDR(pvals []float64, res fdr.Result) error {
	rows := [][]string{{"test", "p_value", "adjusted_p", "significant", "critical_p", "q"}}
	for i, p := range pvals {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			formatP(p),
			formatP(res.Adjusted[i]),
			strconv.FormatBool(res.Significant[i]),
			formatP(res.CriticalP),
			formatP(res.Level),
		})
	}
	return w.write(rows)
}

// WriteChecks writes the validation check table
func (w *Writer) WriteChecks(results []rules.CheckResult) error {
	rows := [][]string{{"section", "rule", "passed", "gate", "observed", "detail"}}
	for _, r := range results {
		rows = append(rows, []string{
			r.Section,
			r.Rule,
			strconv.FormatBool(r.Passed),
			strconv.FormatBool(r.Gate),
			r.Observed,
			r.Detail,
		})
	}
	return w.write(rows)
}

func (w *Writer) write(rows [][]string) error {
	log.Printf("[ResultWriter] Writing %d rows to %s file: %s", len(rows)-1, w.fileType, w.filePath)

	var err error
	switch w.fileType {
	case "csv":
		err = w.writeCSV(rows)
	case "xlsx":
		err = w.writeExcel(rows)
	default:
		err = fmt.Errorf("%w: %s", core.ErrUnsupportedFormat, w.fileType)
	}
	if err != nil {
		return errors.WithCode(errors.CodeExportFailed,
			errors.Wrapf(err, "failed to write %s", w.filePath))
	}
	return nil
}

func (w *Writer) writeCSV(rows [][]string) error {
	f, err := os.Create(w.filePath)
	if err != nil {
		return err
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	return cw.Error()
}

func (w *Writer) writeExcel(rows [][]string) error {
	f := excelize.NewFile()
	defer f.Close()

	for r, row := range rows {
		for c, val := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue("Sheet1", cell, val); err != nil {
				return err
			}
		}
	}
	return f.SaveAs(w.filePath)
}

// formatP renders p-values with NaN as the literal "NaN", matching how the
// MATLAB pipeline exports missing entries
func formatP(p float64) string {
	if math.IsNaN(p) {
		return "NaN"
	}
	return strconv.FormatFloat(p, 'g', -1, 64)
}
