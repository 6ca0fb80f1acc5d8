package engine

import (
	"regexp"
	"strconv"
	"strings"

	"camcheck/domain/workbook"
)

// Section is a serial-numbered block in column A of a checklist sheet,
// written as "3. Costing Confirmation". Row is where the marker sits;
// the section's body runs from Row+1 to the row before the next marker.
type Section struct {
	Serial int
	Label  string
	Row    int
}

var sectionMarker = regexp.MustCompile(`^(\d+)\.\s*(.*)$`)

// Sections lists every serial-numbered section marker in column A, in
// row order. Rows whose first cell does not match the marker shape are
// ignored, so data rows inside a section never register as sections.
func Sections(sheet *workbook.Sheet) []Section {
	var out []Section
	for row := 1; row <= sheet.MaxRow(); row++ {
		text := sheet.Value(row, 1)
		if text == "" {
			continue
		}
		m := sectionMarker.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		serial, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		out = append(out, Section{Serial: serial, Label: strings.TrimSpace(m[2]), Row: row})
	}
	return out
}

// FindSection locates the section whose label contains the given text,
// case-insensitively. The second return is false when no marker matches.
func FindSection(sheet *workbook.Sheet, label string) (Section, bool) {
	needle := strings.ToLower(label)
	for _, s := range Sections(sheet) {
		if strings.Contains(strings.ToLower(s.Label), needle) {
			return s, true
		}
	}
	return Section{}, false
}

// sectionEnd returns the last row of the section's body: the row before
// the next marker, or the sheet's last row for the final section.
func sectionEnd(sheet *workbook.Sheet, sections []Section, idx int) int {
	if idx+1 < len(sections) {
		return sections[idx+1].Row - 1
	}
	return sheet.MaxRow()
}
