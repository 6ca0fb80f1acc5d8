package excel

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"camcheck/domain/workbook"
	apperrors "camcheck/internal/errors"
)

// Loader reads an Excel file into the domain workbook model: every
// sheet's cell values, the number formats validation rules care about,
// and auto-filter state.
type Loader struct{}

func NewLoader() *Loader {
	return &Loader{}
}

// LoadFile opens an Excel file from disk.
func (l *Loader) LoadFile(path string) (*workbook.Workbook, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, apperrors.WorkbookError(fmt.Sprintf("workbook file not found: %s", path), err)
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperrors.WorkbookError("failed to open workbook", err)
	}
	defer f.Close()
	return l.load(f)
}

// Load opens an Excel workbook from a stream (an upload body).
func (l *Loader) Load(r io.Reader) (*workbook.Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, apperrors.WorkbookError("failed to open workbook", err)
	}
	defer f.Close()
	return l.load(f)
}

func (l *Loader) load(f *excelize.File) (*workbook.Workbook, error) {
	start := time.Now()
	wb := workbook.New()
	filters := filterRanges(f)

	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, apperrors.WorkbookError(fmt.Sprintf("failed to read sheet %q", name), err)
		}

		sheet := workbook.NewSheet(name)
		sheet.AutoFilter = filters[name]
		formatCache := map[int]string{}

		for ri, row := range rows {
			for ci, value := range row {
				if strings.TrimSpace(value) == "" {
					continue
				}
				sheet.SetCell(ri+1, ci+1, value)
				if format := l.cellFormat(f, name, ri+1, ci+1, formatCache); format != "" {
					sheet.SetNumberFormat(ri+1, ci+1, format)
				}
			}
		}
		wb.Add(sheet)
	}

	log.Printf("[Loader] workbook loaded in %.2fms (%d sheets)",
		float64(time.Since(start).Nanoseconds())/1e6, len(wb.Sheets()))
	return wb, nil
}

// cellFormat resolves a cell's number format string, caching by style
// ID since most cells in a column share one style.
func (l *Loader) cellFormat(f *excelize.File, sheet string, row, col int, cache map[int]string) string {
	ref := workbook.Ref(row, col)
	styleID, err := f.GetCellStyle(sheet, ref)
	if err != nil {
		return ""
	}
	if format, ok := cache[styleID]; ok {
		return format
	}

	format := ""
	if style, err := f.GetStyle(styleID); err == nil && style != nil {
		if style.CustomNumFmt != nil {
			format = *style.CustomNumFmt
		} else {
			format = builtInNumFmt[style.NumFmt]
		}
	}
	cache[styleID] = format
	return format
}

// filterRanges extracts per-sheet auto-filter ranges. Excel records an
// active filter as the _xlnm._FilterDatabase defined name scoped to the
// sheet, referring to the filtered range.
func filterRanges(f *excelize.File) map[string]string {
	filters := map[string]string{}
	for _, dn := range f.GetDefinedName() {
		if dn.Name != "_xlnm._FilterDatabase" {
			continue
		}
		sheet, ref := splitDefinedRef(dn.RefersTo)
		if sheet != "" && ref != "" {
			filters[sheet] = ref
		}
	}
	return filters
}

// splitDefinedRef parses "'Sheet Name'!$A$16:$Z$40" into its sheet and
// plain range parts.
func splitDefinedRef(refersTo string) (sheet, ref string) {
	i := strings.LastIndex(refersTo, "!")
	if i < 0 {
		return "", ""
	}
	sheet = strings.Trim(refersTo[:i], "'")
	ref = strings.ReplaceAll(refersTo[i+1:], "$", "")
	return sheet, ref
}

// builtInNumFmt covers the built-in format codes the validation rules
// inspect: currency, percent, and date styles. Custom formats carry
// their own code strings and bypass this table.
var builtInNumFmt = map[int]string{
	2:  "0.00",
	5:  "$#,##0",
	6:  "$#,##0",
	7:  "$#,##0.00",
	8:  "$#,##0.00",
	9:  "0%",
	10: "0.00%",
	14: "m/d/yyyy",
	15: "d-mmm-yy",
	16: "d-mmm",
	17: "mmm-yy",
	22: "m/d/yyyy h:mm",
	37: "#,##0",
	38: "#,##0",
	39: "#,##0.00",
	40: "#,##0.00",
	44: `_("$"* #,##0.00_)`,
	45: "mm:ss",
	46: "[h]:mm:ss",
	47: "mm:ss.0",
}
