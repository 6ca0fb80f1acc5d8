package engine

import (
	"testing"

	"camcheck/domain/workbook"
)

func TestSections(t *testing.T) {
	sheet := workbook.NewSheet("Missing Notes")
	sheet.SetCell(1, 1, "1. Uncosted Parts")
	sheet.SetCell(2, 1, "SI.no")
	sheet.SetCell(3, 1, "1")
	sheet.SetCell(5, 1, "2. NCNR Mentioned")
	sheet.SetCell(8, 1, "3.NRFND")
	sheet.SetCell(9, 1, "not a section")

	sections := Sections(sheet)
	if len(sections) != 3 {
		t.Fatalf("got %d sections, want 3", len(sections))
	}
	if sections[0].Serial != 1 || sections[0].Label != "Uncosted Parts" || sections[0].Row != 1 {
		t.Errorf("first section = %+v", sections[0])
	}
	if sections[2].Serial != 3 || sections[2].Label != "NRFND" {
		t.Errorf("third section = %+v", sections[2])
	}
}

func TestFindSection(t *testing.T) {
	sheet := workbook.NewSheet("Missing Notes")
	sheet.SetCell(4, 1, "2. Manufacturer Name Mismatch")

	s, ok := FindSection(sheet, "manufacturer name")
	if !ok {
		t.Fatal("section not found")
	}
	if s.Row != 4 || s.Serial != 2 {
		t.Errorf("section = %+v", s)
	}

	if _, ok := FindSection(sheet, "NRFND"); ok {
		t.Error("unexpected match for absent section")
	}
}

func TestValueHelpers(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{"100", true},
		{" 100 ", true},
		{"100%", true},
		{"100.0", true},
		{"90", false},
		{"", false},
		{"award", false},
	}
	for _, tt := range tests {
		if got := equalsHundred(tt.raw); got != tt.want {
			t.Errorf("equalsHundred(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}

	if !looksLikeWeeks("12 wks") || !looksLikeWeeks("8 weeks") {
		t.Error("weeks notation not recognized")
	}
	if looksLikeWeeks("2025-01-31") {
		t.Error("date misread as weeks")
	}
	if !looksLikeDate("2025-01-31") || !looksLikeDate("31/01/2025") {
		t.Error("date shape not recognized")
	}
}
