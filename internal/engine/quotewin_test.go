package engine

import (
	"testing"

	"camcheck/domain/workbook"
)

func quoteWinFixture() (*workbook.Workbook, QuoteWinTemplate) {
	tpl := DefaultQuoteWinTemplate()
	sheet := workbook.NewSheet("Quote Win")

	sheet.SetCell(tpl.ProjectRow, tpl.ProjectValueColumn, "Falcon")

	sheet.SetCell(tpl.HeaderRow, 1, "Project")
	sheet.SetCell(tpl.HeaderRow, 2, "Part Number")
	sheet.SetCell(tpl.HeaderRow, 3, "Award #1")
	sheet.SetCell(tpl.HeaderRow, 4, "Award #2")

	// P100 is awarded in the second Award column; P200 never reaches 100.
	sheet.SetCell(tpl.DataStartRow, 1, "Falcon")
	sheet.SetCell(tpl.DataStartRow, 2, "P100")
	sheet.SetCell(tpl.DataStartRow, 3, "90")
	sheet.SetCell(tpl.DataStartRow, 4, "100")

	sheet.SetCell(tpl.DataStartRow+1, 2, "P200")
	sheet.SetCell(tpl.DataStartRow+1, 3, "90")
	sheet.SetCell(tpl.DataStartRow+1, 4, "90")

	return workbook.New(sheet), tpl
}

func TestQuoteWinAwards(t *testing.T) {
	wb, tpl := quoteWinFixture()

	results := quoteWinAwards(wb, tpl)
	if len(results) != 2 {
		t.Fatalf("got %d results, want one per part number", len(results))
	}

	byPart := map[string]Result{}
	for _, r := range results {
		byPart[r.Location] = r
	}

	p100 := byPart[workbook.Ref(tpl.DataStartRow, 2)]
	if p100.Status != StatusPass {
		t.Errorf("P100 status = %s, want PASS (%s)", p100.Status, p100.Actual)
	}
	p200 := byPart[workbook.Ref(tpl.DataStartRow+1, 2)]
	if p200.Status != StatusFail {
		t.Errorf("P200 status = %s, want FAIL", p200.Status)
	}
}

func TestQuoteWinProjectName(t *testing.T) {
	wb, tpl := quoteWinFixture()

	results := quoteWinProjectName(wb, tpl)
	if len(results) != 1 || results[0].Status != StatusPass {
		t.Fatalf("matching project names should pass, got %+v", results)
	}

	sheet := wb.Sheets()[0]
	sheet.SetCell(tpl.ProjectRow, tpl.ProjectValueColumn, "Eagle")
	results = quoteWinProjectName(wb, tpl)
	if results[0].Status != StatusFail {
		t.Fatalf("mismatched project names should fail, got %+v", results[0])
	}
	if results[0].Location != workbook.Ref(tpl.ProjectRow, tpl.ProjectValueColumn) {
		t.Errorf("location = %s", results[0].Location)
	}
}

func TestQuoteWinFilters(t *testing.T) {
	wb, tpl := quoteWinFixture()

	results := quoteWinFilters(wb, tpl)
	if results[0].Status != StatusPass {
		t.Fatalf("no filter should pass, got %+v", results[0])
	}

	wb.Sheets()[0].AutoFilter = "A16:Z40"
	results = quoteWinFilters(wb, tpl)
	if results[0].Status != StatusFail {
		t.Fatal("active filter should fail")
	}
	if results[0].Location != "A16" {
		t.Errorf("location = %s, want A16 (filter range start)", results[0].Location)
	}
}

func TestQuoteWinHeaders_MissingPerHeader(t *testing.T) {
	tpl := DefaultQuoteWinTemplate()
	sheet := workbook.NewSheet("Quote Win")
	// Summary row fully absent, main row holds a single static header.
	sheet.SetCell(tpl.HeaderRow, 1, "Project")
	wb := workbook.New(sheet)

	results := quoteWinHeaders(wb, tpl)

	wantMissing := len(tpl.SummaryStaticHeaders) + len(tpl.SummaryDynamicFamilies) +
		len(tpl.StaticHeaders) - 1 + len(tpl.DynamicFamilies)
	if len(results) != wantMissing {
		t.Fatalf("got %d results, want %d (one per missing header)", len(results), wantMissing)
	}
	for _, r := range results {
		if r.Status != StatusFail {
			t.Fatalf("expected only FAIL results, got %+v", r)
		}
	}
}

func TestValidateIdempotence(t *testing.T) {
	wb, _ := quoteWinFixture()

	first, err := Validate(wb, ValidatorQuoteWin)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Validate(wb, ValidatorQuoteWin)
	if err != nil {
		t.Fatal(err)
	}

	if len(first) != len(second) {
		t.Fatalf("run lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("result %d differs: %+v vs %+v", i, first[i], second[i])
		}
	}
}
