package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"camcheck/internal/engine"
)

const reportSheet = "Validation Report"

// WriteExcel renders the results as a styled workbook: dark green
// header band, and each status cell tinted green or red.
func WriteExcel(w io.Writer, results []engine.Result) error {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(reportSheet)
	if err != nil {
		return fmt.Errorf("failed to create report sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to drop default sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4A7C59"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("failed to build header style: %w", err)
	}
	passStyle, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"E8F5E9"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to build pass style: %w", err)
	}
	failStyle, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"FFEBEE"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to build fail style: %w", err)
	}

	for col, name := range columns {
		ref, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellStr(reportSheet, ref, name); err != nil {
			return err
		}
		if err := f.SetCellStyle(reportSheet, ref, ref, headerStyle); err != nil {
			return err
		}
	}

	for i, r := range results {
		row := i + 2
		values := []string{r.RuleName, r.SheetName, string(r.Status), r.Expected, r.Actual, r.Location}
		for col, v := range values {
			ref, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellStr(reportSheet, ref, v); err != nil {
				return err
			}
		}

		statusRef, _ := excelize.CoordinatesToCellName(3, row)
		style := failStyle
		if r.Passed() {
			style = passStyle
		}
		if err := f.SetCellStyle(reportSheet, statusRef, statusRef, style); err != nil {
			return err
		}
	}

	widths := []float64{30, 20, 10, 50, 50, 15}
	for col, width := range widths {
		letter, _ := excelize.ColumnNumberToName(col + 1)
		if err := f.SetColWidth(reportSheet, letter, letter, width); err != nil {
			return err
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write report workbook: %w", err)
	}
	return nil
}
