package workbook

import (
	"fmt"
	"regexp"
	"strconv"
)

// ColumnLetter converts a 1-based column number to its spreadsheet
// letter form (1 -> A, 26 -> Z, 27 -> AA).
func ColumnLetter(col int) string {
	result := ""
	for col > 0 {
		col--
		result = string(rune('A'+(col%26))) + result
		col /= 26
	}
	return result
}

// Ref formats a 1-based (row, col) pair as an A1-style reference.
func Ref(row, col int) string {
	return fmt.Sprintf("%s%d", ColumnLetter(col), row)
}

var refPattern = regexp.MustCompile(`^([A-Z]+)(\d+)$`)

// ParseRef parses an A1-style reference back into 1-based (row, col).
// ok is false for anything that is not a plain single-cell reference.
func ParseRef(ref string) (row, col int, ok bool) {
	m := refPattern.FindStringSubmatch(ref)
	if m == nil {
		return 0, 0, false
	}
	for _, r := range m[1] {
		col = col*26 + int(r-'A') + 1
	}
	row, err := strconv.Atoi(m[2])
	if err != nil || row < 1 || col < 1 {
		return 0, 0, false
	}
	return row, col, true
}
