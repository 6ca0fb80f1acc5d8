package report

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"camcheck/internal/engine"
)

func sampleResults() []engine.Result {
	return []engine.Result{
		{
			RuleName:  "Rule 16: Serial Number Standardization",
			SheetName: "Missing Notes",
			Status:    engine.StatusPass,
			Expected:  "Sequential serial numbers",
			Actual:    "Serial numbers are sequential",
		},
		{
			RuleName:  "Rule 17: Price Validity Date Format",
			SheetName: "BOM MATRIX",
			Status:    engine.StatusFail,
			Expected:  "Date format below Price validity header",
			Actual:    "Found weeks notation: 12 wks",
			Location:  "F18",
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleResults()); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(rows))
	}

	header := strings.Join(rows[0], ",")
	if header != "Rule Name,Sheet Name,Status,Expected,Actual,Location" {
		t.Errorf("unexpected header: %s", header)
	}
	if rows[1][2] != "PASS" || rows[2][2] != "FAIL" {
		t.Errorf("status column wrong: %v / %v", rows[1][2], rows[2][2])
	}
	if rows[2][5] != "F18" {
		t.Errorf("expected location F18, got %q", rows[2][5])
	}
}

func TestWriteCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, nil); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected header only, got %d rows", len(rows))
	}
}

func TestWriteExcel(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteExcel(&buf, sampleResults()); err != nil {
		t.Fatalf("WriteExcel: %v", err)
	}
	// xlsx files are zip archives
	if buf.Len() < 4 || buf.Bytes()[0] != 'P' || buf.Bytes()[1] != 'K' {
		t.Errorf("output does not look like an xlsx file")
	}
}
