// Package xlsx writes summary tables into an Excel workbook.
package xlsx

import (
	"fmt"
	"io"
	"math"

	"github.com/xuri/excelize/v2"

	"nyc_rent_dashboard/internal/analytics"
)

// Sheet is one named summary table.
type Sheet struct {
	Name    string
	Summary analytics.Summary
}

// Write renders every sheet (header row, then one row per group) and streams the workbook to w.
func Write(w io.Writer, sheets []Sheet) error {
	f := excelize.NewFile()
	defer f.Close()

	const defaultSheet = "Sheet1"
	for i, s := range sheets {
		name := s.Name
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, name); err != nil {
				return fmt.Errorf("rename sheet %s: %w", name, err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("create sheet %s: %w", name, err)
		}
		if err := writeSummary(f, name, s.Summary); err != nil {
			return err
		}
	}
	if len(sheets) > 0 {
		f.SetActiveSheet(0)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeSummary(f *excelize.File, sheet string, s analytics.Summary) error {
	header := append(append([]string{}, s.Dimensions...), fmt.Sprintf("%s (%s)", s.Measure, s.Reducer))
	for col, name := range header {
		if err := setCell(f, sheet, col+1, 1, name); err != nil {
			return err
		}
	}

	for r, row := range s.Rows {
		for col, k := range row.Keys {
			var v any = k.Text
			if k.Numeric {
				v = k.Num
			}
			if err := setCell(f, sheet, col+1, r+2, v); err != nil {
				return err
			}
		}
		// missing and infinite aggregates stay blank
		if math.IsNaN(row.Value) || math.IsInf(row.Value, 0) {
			continue
		}
		if err := setCell(f, sheet, len(row.Keys)+1, r+2, row.Value); err != nil {
			return err
		}
	}
	return nil
}

func setCell(f *excelize.File, sheet string, col, row int, v any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	if err := f.SetCellValue(sheet, cell, v); err != nil {
		return fmt.Errorf("set %s!%s: %w", sheet, cell, err)
	}
	return nil
}
