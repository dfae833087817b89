// Package excel exports batch outcomes as a spreadsheet for operators who
// review drift outside the terminal.
package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/genoslab/docregress/internal/core/domain"
)

const sheetName = "Regression"

var headers = []string{"Run ID", "Format", "Sample", "Mode", "Passed", "Findings", "Duration (ms)", "Report"}

type Writer struct{}

func NewWriter() *Writer {
	return &Writer{}
}

func (w *Writer) Write(path string, outcomes []*domain.Outcome) error {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("create report sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("drop default sheet: %w", err)
	}

	for col, h := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("header cell name: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}

	for i, outcome := range outcomes {
		row := i + 2
		values := []any{
			outcome.RunID,
			outcome.Format,
			outcome.SampleID,
			string(outcome.Mode),
			outcome.Passed,
			len(outcome.Findings),
			outcome.Duration.Milliseconds(),
			reportCell(outcome),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return fmt.Errorf("cell name: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return fmt.Errorf("write outcome row %d: %w", row, err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return domain.WrapError(domain.ErrStoreWrite, "save report", err)
	}
	return nil
}

func reportCell(outcome *domain.Outcome) string {
	if outcome.Report != "" {
		return outcome.Report
	}
	return outcome.Err
}
