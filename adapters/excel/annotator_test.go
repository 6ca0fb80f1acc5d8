package excel

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"camcheck/internal/engine"
)

func writeFixture(t *testing.T, path string) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", "Quote Win"); err != nil {
		t.Fatal(err)
	}
	if err := f.SetCellStr("Quote Win", "C21", "P200"); err != nil {
		t.Fatal(err)
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
}

func TestAnnotateIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "input.xlsx")
	writeFixture(t, input)

	plan := []engine.Annotation{{
		Sheet:   "Quote Win",
		CellRef: "C21",
		Rule:    "Rule 4: Award Validation",
		Note:    "Rule 4: Award Validation\nExpected: At least one award of 100\nActual: No 100% award found",
	}}

	first := filepath.Join(dir, "first.xlsx")
	annotator := NewAnnotator()
	if err := annotator.Annotate(input, first, plan); err != nil {
		t.Fatalf("Annotate: %v", err)
	}

	// annotating the annotated copy must not stack duplicate comments
	second := filepath.Join(dir, "second.xlsx")
	if err := annotator.Annotate(first, second, plan); err != nil {
		t.Fatalf("re-Annotate: %v", err)
	}

	f, err := excelize.OpenFile(second)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	comments, err := f.GetComments("Quote Win")
	if err != nil {
		t.Fatal(err)
	}
	if len(comments) != 1 {
		t.Fatalf("expected exactly 1 comment, got %d", len(comments))
	}
	if comments[0].Cell != "C21" || comments[0].Author != "Validation Tool" {
		t.Errorf("unexpected comment: %+v", comments[0])
	}

	if got := mustValue(t, f, "C21"); got != "P200" {
		t.Errorf("cell value must be untouched, got %q", got)
	}
}

func TestAnnotateSkipsMissingSheet(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "input.xlsx")
	writeFixture(t, input)

	plan := []engine.Annotation{{Sheet: "No Such Sheet", CellRef: "A1", Rule: "r", Note: "n"}}
	output := filepath.Join(dir, "output.xlsx")
	if err := NewAnnotator().Annotate(input, output, plan); err != nil {
		t.Fatalf("Annotate should skip unknown sheets, got %v", err)
	}
}

func mustValue(t *testing.T, f *excelize.File, ref string) string {
	t.Helper()
	v, err := f.GetCellValue("Quote Win", ref)
	if err != nil {
		t.Fatal(err)
	}
	return v
}
