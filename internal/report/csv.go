// Package report renders validation Result sequences into exportable
// artifacts: a plain CSV and a styled Excel workbook.
package report

import (
	"encoding/csv"
	"fmt"
	"io"

	"camcheck/internal/engine"
)

var columns = []string{"Rule Name", "Sheet Name", "Status", "Expected", "Actual", "Location"}

// WriteCSV streams the results as CSV with a fixed header row.
func WriteCSV(w io.Writer, results []engine.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return fmt.Errorf("failed to write report header: %w", err)
	}
	for _, r := range results {
		row := []string{r.RuleName, r.SheetName, string(r.Status), r.Expected, r.Actual, r.Location}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write report row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
