package core

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

const reportSheet = "Reconciliation"

// WriteReportXLSX renders the reconciliation entries as a workbook for
// reviewers who work from spreadsheets rather than the text log: one row per
// entry, base record fields as columns and the extras joined into a details
// column.
func WriteReportXLSX(path string, entries []LogEntry) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}

	f := excelize.NewFile()
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close report file: %w", closeErr)
		}
	}()

	if err := f.SetSheetName("Sheet1", reportSheet); err != nil {
		return fmt.Errorf("failed to name report sheet: %w", err)
	}

	header := []interface{}{"Reason"}
	for _, field := range baseFields {
		header = append(header, field)
	}
	header = append(header, "Details")
	if err := f.SetSheetRow(reportSheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write report header: %w", err)
	}

	for i, e := range entries {
		row := make([]interface{}, 0, len(baseFields)+2)
		row = append(row, e.Reason)
		for _, field := range baseFields {
			row = append(row, e.Record.Get(field))
		}
		var details []string
		for _, kv := range e.Extra {
			details = append(details, kv.Key+"="+kv.Value)
		}
		row = append(row, strings.Join(details, "; "))

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(reportSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write report row %d: %w", i+2, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	return nil
}
