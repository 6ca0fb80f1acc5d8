package workbook

import "testing"

func TestColumnLetter(t *testing.T) {
	cases := []struct {
		col  int
		want string
	}{
		{1, "A"},
		{26, "Z"},
		{27, "AA"},
		{32, "AF"},
		{52, "AZ"},
		{702, "ZZ"},
		{703, "AAA"},
	}
	for _, tc := range cases {
		if got := ColumnLetter(tc.col); got != tc.want {
			t.Errorf("ColumnLetter(%d): expected %s, got %s", tc.col, tc.want, got)
		}
	}
}

func TestRefRoundTrip(t *testing.T) {
	cases := []struct {
		row, col int
		ref      string
	}{
		{1, 1, "A1"},
		{17, 4, "D17"},
		{100, 32, "AF100"},
	}
	for _, tc := range cases {
		if got := Ref(tc.row, tc.col); got != tc.ref {
			t.Errorf("Ref(%d, %d): expected %s, got %s", tc.row, tc.col, tc.ref, got)
		}
		row, col, ok := ParseRef(tc.ref)
		if !ok || row != tc.row || col != tc.col {
			t.Errorf("ParseRef(%s): expected (%d, %d), got (%d, %d, %v)", tc.ref, tc.row, tc.col, row, col, ok)
		}
	}
}

func TestParseRefRejects(t *testing.T) {
	for _, ref := range []string{"", "17", "AF", "a1", "A1:B2", "$A$1"} {
		if _, _, ok := ParseRef(ref); ok {
			t.Errorf("ParseRef(%q): expected rejection", ref)
		}
	}
}

func TestSheetBasics(t *testing.T) {
	s := NewSheet("Missing Notes")
	s.SetCell(3, 2, "hello")

	if s.Value(3, 2) != "hello" {
		t.Errorf("expected stored value, got %q", s.Value(3, 2))
	}
	if s.Value(99, 99) != "" {
		t.Error("missing cells should read as empty")
	}
	if s.MaxRow() < 3 || s.MaxCol() < 2 {
		t.Errorf("bounds not tracked: row %d col %d", s.MaxRow(), s.MaxCol())
	}
	if !s.RowIsBlank(5) {
		t.Error("row 5 should be blank")
	}

	wb := New(s)
	if !wb.HasSheet("Missing Notes") {
		t.Error("workbook should contain the sheet")
	}
	if _, ok := wb.Sheet("Other"); ok {
		t.Error("unknown sheet lookup should fail")
	}
}
