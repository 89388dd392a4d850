// Package xlsxexport renders usage reports as Excel workbooks.
package xlsxexport

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"opslink/internal/domain"
)

const sheetName = "Usage Report"

// rows defines the report layout: label column, value column.
func rows(rec *domain.UsageRecord, stats *domain.ProcessingStats) [][2]interface{} {
	return [][2]interface{}{
		{"User", rec.UserID},
		{"Plan", string(rec.Plan)},
		{"Monthly limit", rec.MonthlyLimit},
		{"Documents this period", rec.CurrentCount},
		{"Remaining", rec.Remaining()},
		{"Period resets", rec.ResetAt.Format(time.RFC3339)},
		{"Total processed", stats.TotalProcessed},
		{"Average per day", stats.AveragePerDay},
		{"Success rate (%)", stats.SuccessRate},
		{"Avg processing time (ms)", stats.AvgProcessingMS},
	}
}

// WriteUsageReport writes a one-sheet workbook summarizing a user's usage
// standing and processing statistics.
func WriteUsageReport(w io.Writer, rec *domain.UsageRecord, stats *domain.ProcessingStats) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("creating sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("removing default sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating style: %w", err)
	}

	if err := f.SetCellValue(sheetName, "A1", "Metric"); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if err := f.SetCellValue(sheetName, "B1", "Value"); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if err := f.SetCellStyle(sheetName, "A1", "B1", bold); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}

	for i, row := range rows(rec, stats) {
		cellA, _ := excelize.CoordinatesToCellName(1, i+2)
		cellB, _ := excelize.CoordinatesToCellName(2, i+2)
		if err := f.SetCellValue(sheetName, cellA, row[0]); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
		if err := f.SetCellValue(sheetName, cellB, row[1]); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
	}

	if err := f.SetColWidth(sheetName, "A", "A", 28); err != nil {
		return fmt.Errorf("sizing columns: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}
