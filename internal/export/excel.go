// Package export renders day-log entries as Excel workbooks.
package export

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"worklogbot/internal/domain"
)

const sheetName = "Work log"

var headers = []string{"Date", "Raw text", "Analysis", "Created at"}

// Filename returns the workbook name for a given day.
func Filename(date time.Time) string {
	return fmt.Sprintf("day-%s.xlsx", date.UTC().Format(time.DateOnly))
}

// DayWorkbook renders all entries of one day into a single-sheet workbook,
// one row per entry, in the order given.
func DayWorkbook(entries []domain.DayLogEntry) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	for col, h := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return nil, fmt.Errorf("write header: %w", err)
		}
	}

	for i, e := range entries {
		values := []any{
			e.LogDate.Format(time.DateOnly),
			e.RawText,
			e.StructuredText,
			e.CreatedAt.UTC().Format(time.RFC3339),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, fmt.Errorf("data cell: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return nil, fmt.Errorf("write row %d: %w", i+1, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}
