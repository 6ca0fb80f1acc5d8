package workbook

import "strings"

// Cell holds a single cell's display value and number-format string.
// The zero value represents an empty, unformatted cell.
type Cell struct {
	Value        string
	NumberFormat string
}

// IsEmpty reports whether the cell has no value after trimming.
func (c Cell) IsEmpty() bool {
	return strings.TrimSpace(c.Value) == ""
}

// Sheet is a 2-D grid of cells addressed by (row, column), both
// 1-based to match spreadsheet conventions. Reads outside the
// populated range return empty cells rather than errors.
type Sheet struct {
	Name string

	// AutoFilter holds the sheet's auto-filter range reference
	// (e.g. "A16:AZ300"), or "" when no filter is applied.
	AutoFilter string

	rows   [][]Cell
	maxCol int
}

// NewSheet creates an empty sheet.
func NewSheet(name string) *Sheet {
	return &Sheet{Name: name}
}

// SetCell stores a value at (row, col), growing the grid as needed.
func (s *Sheet) SetCell(row, col int, value string) {
	s.ensure(row, col)
	s.rows[row-1][col-1].Value = value
}

// SetNumberFormat stores a number-format string at (row, col).
func (s *Sheet) SetNumberFormat(row, col int, format string) {
	s.ensure(row, col)
	s.rows[row-1][col-1].NumberFormat = format
}

func (s *Sheet) ensure(row, col int) {
	if row < 1 || col < 1 {
		return
	}
	for len(s.rows) < row {
		s.rows = append(s.rows, nil)
	}
	r := s.rows[row-1]
	for len(r) < col {
		r = append(r, Cell{})
	}
	s.rows[row-1] = r
	if col > s.maxCol {
		s.maxCol = col
	}
}

// Cell returns the cell at (row, col); empty cell when out of range.
func (s *Sheet) Cell(row, col int) Cell {
	if row < 1 || col < 1 || row > len(s.rows) {
		return Cell{}
	}
	r := s.rows[row-1]
	if col > len(r) {
		return Cell{}
	}
	return r[col-1]
}

// Value returns the trimmed cell value at (row, col).
func (s *Sheet) Value(row, col int) string {
	return strings.TrimSpace(s.Cell(row, col).Value)
}

// MaxRow returns the highest populated row number, 0 for an empty sheet.
func (s *Sheet) MaxRow() int {
	return len(s.rows)
}

// MaxCol returns the highest populated column number, 0 for an empty sheet.
func (s *Sheet) MaxCol() int {
	return s.maxCol
}

// RowIsBlank reports whether every cell in the row up to maxCol is empty.
func (s *Sheet) RowIsBlank(row int) bool {
	for col := 1; col <= s.maxCol; col++ {
		if !s.Cell(row, col).IsEmpty() {
			return false
		}
	}
	return true
}
