// Package workbook models a spreadsheet workbook as an addressable,
// read-mostly structure the validation engine can traverse without
// knowing anything about the underlying file format.
package workbook

import (
	"regexp"
	"sort"
)

// Workbook is an ordered collection of sheets. It is built once per
// validation request by an external loader and treated as immutable
// for the duration of a validation pass.
type Workbook struct {
	sheets []*Sheet
	byName map[string]*Sheet
}

// New creates a workbook from sheets in order. Later sheets with a
// duplicate name are ignored, matching spreadsheet semantics where
// sheet names are unique.
func New(sheets ...*Sheet) *Workbook {
	wb := &Workbook{byName: make(map[string]*Sheet)}
	for _, s := range sheets {
		wb.Add(s)
	}
	return wb
}

// Add appends a sheet to the workbook.
func (w *Workbook) Add(s *Sheet) {
	if s == nil {
		return
	}
	if _, exists := w.byName[s.Name]; exists {
		return
	}
	w.sheets = append(w.sheets, s)
	w.byName[s.Name] = s
}

// Sheet returns the sheet with the given exact name.
func (w *Workbook) Sheet(name string) (*Sheet, bool) {
	s, ok := w.byName[name]
	return s, ok
}

// HasSheet reports whether a sheet with the given name exists.
func (w *Workbook) HasSheet(name string) bool {
	_, ok := w.byName[name]
	return ok
}

// Sheets returns all sheets in workbook order.
func (w *Workbook) Sheets() []*Sheet {
	out := make([]*Sheet, len(w.sheets))
	copy(out, w.sheets)
	return out
}

// SheetNames returns the sheet names in workbook order.
func (w *Workbook) SheetNames() []string {
	names := make([]string, len(w.sheets))
	for i, s := range w.sheets {
		names[i] = s.Name
	}
	return names
}

// SheetsMatching returns the sheets whose name matches the pattern,
// in workbook order.
func (w *Workbook) SheetsMatching(pattern *regexp.Regexp) []*Sheet {
	var out []*Sheet
	for _, s := range w.sheets {
		if pattern.MatchString(s.Name) {
			out = append(out, s)
		}
	}
	return out
}

// NumberedSheet pairs a sheet with the integer extracted from its name
// by a family pattern such as `^7\.0 CBOM VL-(\d+)$`.
type NumberedSheet struct {
	Number int
	Sheet  *Sheet
}

// NumberedSheets returns sheets matching a pattern with one integer
// capture group, sorted by the captured number ascending.
func (w *Workbook) NumberedSheets(pattern *regexp.Regexp) []NumberedSheet {
	var out []NumberedSheet
	for _, s := range w.sheets {
		m := pattern.FindStringSubmatch(s.Name)
		if len(m) != 2 {
			continue
		}
		n := 0
		for _, r := range m[1] {
			n = n*10 + int(r-'0')
		}
		out = append(out, NumberedSheet{Number: n, Sheet: s})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out
}
