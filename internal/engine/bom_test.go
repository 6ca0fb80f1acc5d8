package engine

import (
	"strconv"
	"strings"
	"testing"

	"camcheck/domain/workbook"
)

func TestBOMSerialSequence(t *testing.T) {
	tpl := DefaultBOMTemplate()

	tests := []struct {
		name    string
		serials []int
		status  Status
		actual  string
	}{
		{name: "contiguous", serials: []int{1, 2, 3}, status: StatusPass},
		{name: "gap", serials: []int{1, 2, 4}, status: StatusFail, actual: "expected 3, found 4"},
		{name: "repeat", serials: []int{1, 1, 2}, status: StatusFail, actual: "expected 2, found 1"},
		{name: "out of order contiguous", serials: []int{3, 1, 2}, status: StatusPass},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sheet := workbook.NewSheet(tpl.NotesSheet)
			for i, serial := range tt.serials {
				sheet.SetCell(i*3+1, 1, strconv.Itoa(serial)+". Section")
			}
			wb := workbook.New(sheet)

			results := bomSerialSequence(wb, tpl)
			if len(results) != 1 {
				t.Fatalf("got %d results, want 1", len(results))
			}
			if results[0].Status != tt.status {
				t.Fatalf("status = %s, want %s (%s)", results[0].Status, tt.status, results[0].Actual)
			}
			if tt.actual != "" && !strings.Contains(results[0].Actual, tt.actual) {
				t.Errorf("actual = %q, want substring %q", results[0].Actual, tt.actual)
			}
		})
	}
}

func TestBOMUncostedCount(t *testing.T) {
	tpl := DefaultBOMTemplate()

	notes := workbook.NewSheet(tpl.NotesSheet)
	notes.SetCell(1, 1, "1. Uncosted Parts")
	notes.SetCell(2, 1, "SI.no")
	for i := 1; i <= 5; i++ {
		notes.SetCell(2+i, 1, strconv.Itoa(i))
	}
	notes.SetCell(10, 1, "2. NCNR Mentioned")

	cbom := workbook.NewSheet("7.0 CBOM VL-2")
	cbom.SetCell(5, tpl.IsDataColumn, "Is Data")
	cbom.SetCell(5, 3, "Part Number")
	parts := []string{"A1", "A2", "A3", "A3", "A4"}
	for i, p := range parts {
		cbom.SetCell(6+i, tpl.IsDataColumn, "False")
		cbom.SetCell(6+i, 3, p)
	}

	wb := workbook.New(notes, cbom)

	results := bomUncostedCount(wb, tpl)
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	r := results[0]
	if r.Status != StatusFail {
		t.Fatalf("status = %s, want FAIL (declared 5 vs 4 unique)", r.Status)
	}
	if !strings.Contains(r.Expected, "(5)") || !strings.Contains(r.Expected, "(4)") {
		t.Errorf("expected text should cite both counts, got %q", r.Expected)
	}

	// Adding the missing fifth unique part reconciles the counts.
	cbom.SetCell(11, tpl.IsDataColumn, "FALSE")
	cbom.SetCell(11, 3, "A5")
	results = bomUncostedCount(wb, tpl)
	if results[0].Status != StatusPass {
		t.Fatalf("status = %s, want PASS after reconciliation (%s)", results[0].Status, results[0].Actual)
	}
}

func TestBOMCBOMHeader(t *testing.T) {
	tpl := DefaultBOMTemplate()

	good := workbook.NewSheet("7.0 CBOM VL-1")
	good.SetCell(12, 8, "Ext Part Vol Price (Splits) #1 (Conv.)")
	bad := workbook.NewSheet("7.0 CBOM VL-2")
	bad.SetCell(12, 8, "Ext Part Vol Price (Splits) #1 (Conv.)")

	wb := workbook.New(good, bad)

	results := bomCBOMHeader(wb, tpl)
	if len(results) != 2 {
		t.Fatalf("got %d results, want one per CBOM sheet", len(results))
	}
	if results[0].Status != StatusPass || results[0].SheetName != "7.0 CBOM VL-1" {
		t.Errorf("VL-1 = %+v", results[0])
	}
	if results[1].Status != StatusFail {
		t.Errorf("VL-2 should fail: header suffix does not match sheet number")
	}
	if !strings.Contains(results[1].Actual, "Found:") {
		t.Errorf("near-miss header should be surfaced, got %q", results[1].Actual)
	}
}

func TestBOMCurrency_CBOM(t *testing.T) {
	tpl := DefaultBOMTemplate()

	sheet := workbook.NewSheet("7.0 CBOM VL-1")
	sheet.SetCell(10, 4, "Ext Price #1 (Conv.)")
	sheet.SetCell(11, 4, "$1,200.00")
	sheet.SetCell(10, 5, "Ext Part Vol Price #1 (Conv.)")
	sheet.SetCell(11, 5, "1200")

	wb := workbook.New(sheet)

	results := bomCBOMCurrency(wb, tpl)
	if len(results) != 2 {
		t.Fatalf("got %d results, want one per price column", len(results))
	}
	if results[0].Status != StatusPass {
		t.Errorf("column with $ value should pass, got %+v", results[0])
	}
	if results[1].Status != StatusFail {
		t.Errorf("bare numeric column should fail, got %+v", results[1])
	}
	if results[1].Location != "E11" {
		t.Errorf("failure location = %s, want E11 (the offending cell)", results[1].Location)
	}
}

func TestBOMCurrency_NumberFormatCounts(t *testing.T) {
	tpl := DefaultBOMTemplate()

	sheet := workbook.NewSheet("7.0 CBOM VL-1")
	sheet.SetCell(10, 4, "Ext Price #1 (Conv.)")
	sheet.SetCell(11, 4, "1200")
	sheet.SetNumberFormat(11, 4, `"$"#,##0.00`)
	sheet.SetCell(10, 5, "Ext Part Vol Price #1 (Conv.)")
	sheet.SetCell(11, 5, "€12.00")

	wb := workbook.New(sheet)

	for _, r := range bomCBOMCurrency(wb, tpl) {
		if r.Status != StatusPass {
			t.Errorf("currency via format or value should pass, got %+v", r)
		}
	}
}

func TestBOMProtoConditionals(t *testing.T) {
	tpl := DefaultBOMTemplate()

	matrix := workbook.NewSheet(tpl.MatrixSheet)
	matrix.SetCell(17, 10, "Proto Qty")
	matrix.SetCell(17, 11, "Proto Price")
	proto := workbook.NewSheet(tpl.ProtoSheet)

	// Declared and present: both conditional rules pass.
	wb := workbook.New(matrix, proto)
	if r := bomCBOMProtoSheet(wb, tpl); r[0].Status != StatusPass {
		t.Errorf("declared+present should pass, got %+v", r[0])
	}
	if r := bomProtoColumns(wb, tpl); r[0].Status != StatusPass {
		t.Errorf("proto columns with proto sheet should pass, got %+v", r[0])
	}

	// Declared but sheet missing.
	wb = workbook.New(matrix)
	if r := bomCBOMProtoSheet(wb, tpl); r[0].Status != StatusFail {
		t.Error("declared without proto sheet should fail")
	}

	// Sheet present without declaration.
	bare := workbook.NewSheet(tpl.MatrixSheet)
	wb = workbook.New(bare, proto)
	if r := bomCBOMProtoSheet(wb, tpl); r[0].Status != StatusFail {
		t.Error("proto sheet without declaration should fail")
	}

	// Neither declared nor present.
	wb = workbook.New(bare)
	if r := bomCBOMProtoSheet(wb, tpl); r[0].Status != StatusPass {
		t.Error("no declaration and no sheet should pass")
	}
}

func TestBOMEffectiveDate(t *testing.T) {
	tpl := DefaultBOMTemplate()

	sheet := workbook.NewSheet(tpl.MatrixSheet)
	sheet.SetCell(17, 6, "Effective Date")
	sheet.SetCell(18, 6, "12 wks")
	wb := workbook.New(sheet)

	results := bomEffectiveDate(wb, tpl)
	if results[0].Status != StatusFail {
		t.Fatal("weeks notation should fail")
	}
	if !strings.Contains(results[0].Actual, "weeks") {
		t.Errorf("weeks failure should be explicit, got %q", results[0].Actual)
	}
	if results[0].Location != "F18" {
		t.Errorf("location = %s, want F18", results[0].Location)
	}

	sheet.SetCell(18, 6, "2026-03-31")
	results = bomEffectiveDate(wb, tpl)
	if results[0].Status != StatusPass {
		t.Fatalf("date value should pass, got %+v", results[0])
	}
}

func TestBOMProtoVolumeQuantity(t *testing.T) {
	tpl := DefaultBOMTemplate()

	matrix := workbook.NewSheet(tpl.MatrixSheet)
	matrix.SetCell(17, 10, "Proto Qty")
	matrix.SetCell(17, 11, "Proto Price")
	matrix.SetCell(18, 10, "100")

	summary := workbook.NewSheet(tpl.SummarySheet)
	summary.SetCell(5, 3, "Proto Volume (500)")

	wb := workbook.New(matrix, summary)
	results := bomProtoVolumeSummary(wb, tpl)
	if results[0].Status != StatusFail {
		t.Fatalf("header quantity 500 vs stated 100 should fail, got %+v", results[0])
	}
	if !strings.Contains(results[0].Actual, "500") || !strings.Contains(results[0].Expected, "100") {
		t.Errorf("mismatch should cite both quantities, got %+v", results[0])
	}

	summary.SetCell(5, 3, "Proto Volume (100)")
	results = bomProtoVolumeSummary(wb, tpl)
	if results[0].Status != StatusPass {
		t.Fatalf("matching quantities should pass, got %+v", results[0])
	}

	// A plain header without an embedded quantity stays a presence check.
	summary.SetCell(5, 3, "Proto Volume")
	results = bomProtoVolumeSummary(wb, tpl)
	if results[0].Status != StatusPass {
		t.Fatalf("presence without quantity should pass, got %+v", results[0])
	}
}

func TestBOMCurrency_MatrixVLProbesAbove(t *testing.T) {
	tpl := DefaultBOMTemplate()

	sheet := workbook.NewSheet(tpl.MatrixSheet)
	sheet.SetCell(17, 4, "Unit Price")
	sheet.SetCell(18, 4, "$10.00")
	sheet.SetCell(20, 8, "VL-1")
	sheet.SetCell(17, 8, "$2,500.00") // 3 rows above the VL header

	wb := workbook.New(sheet)
	results := bomMatrixCurrency(wb, tpl)

	var vl *Result
	for i := range results {
		if strings.Contains(results[i].Expected+results[i].Actual, "VL-1") {
			vl = &results[i]
		}
	}
	if vl == nil {
		t.Fatalf("expected a result for the VL-1 column, got %+v", results)
	}
	if vl.Status != StatusPass {
		t.Errorf("currency 3 rows above the VL header should pass, got %+v", vl)
	}
}
