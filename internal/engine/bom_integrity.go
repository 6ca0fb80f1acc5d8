package engine

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"camcheck/domain/workbook"
)

// Rule 16. Section serial numbers in Missing Notes must form the
// contiguous sequence 1, 2, 3 with no gaps or repeats, regardless of
// the order rows appear in. The first broken position is reported.
func bomSerialSequence(wb *workbook.Workbook, tpl BOMTemplate) []Result {
	const ruleName = "Rule 16: Serial Number Standardization"
	sheet, ok := wb.Sheet(tpl.NotesSheet)
	if !ok {
		return missingSheet(ruleName, tpl.NotesSheet)
	}

	sections := Sections(sheet)
	if len(sections) == 0 {
		return []Result{{
			RuleName:  ruleName,
			SheetName: sheet.Name,
			Status:    StatusFail,
			Expected:  "Numbered section headers should be present",
			Actual:    "No numbered sections found in Missing Notes",
		}}
	}

	serials := make([]int, len(sections))
	for i, s := range sections {
		serials[i] = s.Serial
	}
	sort.Ints(serials)

	for i, got := range serials {
		want := i + 1
		if got != want {
			return []Result{{
				RuleName:  ruleName,
				SheetName: sheet.Name,
				Status:    StatusFail,
				Expected:  fmt.Sprintf("Serial numbers in sequential order (1, 2, 3...): expected %d at position %d", want, want),
				Actual:    fmt.Sprintf("Serial number mismatch: expected %d, found %d", want, got),
			}}
		}
	}

	return []Result{{
		RuleName:  ruleName,
		SheetName: sheet.Name,
		Status:    StatusPass,
		Expected:  "Serial numbers in sequential order (1, 2, 3...)",
		Actual:    fmt.Sprintf("Serial numbers are in standard format (%d sections found)", len(sections)),
	}}
}

// Rule 17. The Effective Date column in BOM MATRIX must hold
// date-formatted values. Weeks notation is its own failure: it means
// price validity was stated relatively instead of as a date.
func bomEffectiveDate(wb *workbook.Workbook, tpl BOMTemplate) []Result {
	const ruleName = "Rule 17: Price Validity Date Format"
	sheet, ok := wb.Sheet(tpl.MatrixSheet)
	if !ok {
		return missingSheet(ruleName, tpl.MatrixSheet)
	}

	row, col, _, found := findCell(sheet, tpl.HeaderSearchRows, 100, func(v string) bool {
		return strings.Contains(v, "Effective Date")
	})
	if !found {
		return []Result{{
			RuleName:  ruleName,
			SheetName: sheet.Name,
			Status:    StatusFail,
			Expected:  "'Effective Date' header should be present",
			Actual:    fmt.Sprintf("'Effective Date' header not found in %s", tpl.MatrixSheet),
		}}
	}

	headerRef := workbook.Ref(row, col)
	weeksRef := ""
	for r := row + 1; r <= row+100 && r <= sheet.MaxRow(); r++ {
		cell := sheet.Cell(r, col)
		if cell.IsEmpty() {
			continue
		}
		if isDateCell(cell) {
			return []Result{{
				RuleName:  ruleName,
				SheetName: sheet.Name,
				Status:    StatusPass,
				Expected:  "Price validity in date format",
				Actual:    "Price Validity in date format",
				Location:  headerRef,
			}}
		}
		if weeksRef == "" && looksLikeWeeks(cell.Value) {
			weeksRef = workbook.Ref(r, col)
		}
	}

	if weeksRef != "" {
		return []Result{{
			RuleName:  ruleName,
			SheetName: sheet.Name,
			Status:    StatusFail,
			Expected:  "Price validity as a date, not weeks notation",
			Actual:    "Effective Date column holds a weeks value instead of a date",
			Location:  weeksRef,
		}}
	}
	return []Result{{
		RuleName:  ruleName,
		SheetName: sheet.Name,
		Status:    StatusFail,
		Expected:  "At least one cell below 'Effective Date' should have date format",
		Actual:    "No date format found in Effective Date column",
		Location:  headerRef,
	}}
}

// Rule 18. The declared uncosted part count in Missing Notes (the last
// SI.no under the Uncosted Parts section) must match the number of
// unique part numbers flagged Is Data = False in the highest-numbered
// CBOM VL sheet.
func bomUncostedCount(wb *workbook.Workbook, tpl BOMTemplate) []Result {
	const ruleName = "Rule 18: Part count is not matching for uncosted parts"
	notes, ok := wb.Sheet(tpl.NotesSheet)
	if !ok {
		return missingSheet(ruleName, tpl.NotesSheet)
	}

	uncosted, found := FindSection(notes, "Uncosted Parts")
	if !found {
		return []Result{{
			RuleName:  ruleName,
			SheetName: notes.Name,
			Status:    StatusFail,
			Expected:  "'#. Uncosted Parts' section should exist",
			Actual:    "'Uncosted Parts' section not found",
		}}
	}

	// The SI.no sub-header sits within a few rows below the section
	// marker; its spelling varies across files.
	siCol, siRow := 0, 0
	for col := 1; col <= 20 && siCol == 0; col++ {
		for offset := 1; offset <= 4; offset++ {
			v := strings.ToUpper(notes.Value(uncosted.Row+offset, col))
			v = strings.ReplaceAll(v, " ", "")
			if v == "SL.NO" || v == "SI.NO" || v == "S.NO" || v == "SLNO" || v == "SINO" {
				siCol = col
				siRow = uncosted.Row + offset
				break
			}
		}
	}
	if siCol == 0 {
		return []Result{{
			RuleName:  ruleName,
			SheetName: notes.Name,
			Status:    StatusFail,
			Expected:  "'SI.no' sub-header should exist under '#. Uncosted Parts'",
			Actual:    "'SI.no' sub-header not found",
			Location:  workbook.Ref(uncosted.Row, 1),
		}}
	}

	// The last SI.no before the next section marker is the declared
	// count.
	declared := -1
	for row := siRow + 1; row <= notes.MaxRow(); row++ {
		if first := notes.Value(row, 1); first != "" && sectionMarker.MatchString(first) {
			break
		}
		if n, err := strconv.Atoi(strings.TrimSpace(notes.Value(row, siCol))); err == nil {
			declared = n
		}
	}
	if declared < 0 {
		return []Result{{
			RuleName:  ruleName,
			SheetName: notes.Name,
			Status:    StatusFail,
			Expected:  "At least one SI.no value under '#. Uncosted Parts'",
			Actual:    "No SI.no values found",
			Location:  workbook.Ref(siRow, siCol),
		}}
	}

	last, ok := lastNumberedSheet(wb, regexp.MustCompile(tpl.CBOMSheetPattern))
	if !ok {
		return noMatchingSheets(ruleName, tpl.CBOMSheetPattern)
	}
	cbom := last.Sheet

	isDataRow := 0
	for row := 1; row <= min(50, cbom.MaxRow()); row++ {
		if strings.Contains(cbom.Value(row, tpl.IsDataColumn), "Is Data") {
			isDataRow = row
			break
		}
	}
	if isDataRow == 0 {
		return []Result{{
			RuleName:  ruleName,
			SheetName: cbom.Name,
			Status:    StatusFail,
			Expected:  fmt.Sprintf("'Is Data' column should exist in column %s", workbook.ColumnLetter(tpl.IsDataColumn)),
			Actual:    "'Is Data' column not found",
		}}
	}

	partCol := 0
	for col := 1; col <= min(50, cbom.MaxCol()); col++ {
		if cbom.Value(isDataRow, col) == "Part Number" {
			partCol = col
			break
		}
	}
	if partCol == 0 {
		return []Result{{
			RuleName:  ruleName,
			SheetName: cbom.Name,
			Status:    StatusFail,
			Expected:  "'Part Number' column should exist",
			Actual:    "'Part Number' column not found",
			Location:  workbook.Ref(isDataRow, 1),
		}}
	}

	uniqueFalse := map[string]struct{}{}
	for row := isDataRow + 1; row <= cbom.MaxRow(); row++ {
		if !strings.EqualFold(cbom.Value(row, tpl.IsDataColumn), "false") {
			continue
		}
		if part := cbom.Value(row, partCol); part != "" {
			uniqueFalse[part] = struct{}{}
		}
	}
	actual := len(uniqueFalse)

	sheets := fmt.Sprintf("%s, %s", notes.Name, cbom.Name)
	if declared == actual {
		return []Result{{
			RuleName:  ruleName,
			SheetName: sheets,
			Status:    StatusPass,
			Expected:  fmt.Sprintf("Part count matching between %s and %s", notes.Name, cbom.Name),
			Actual:    "Part count is matching for uncosted parts",
			Location:  workbook.Ref(uncosted.Row, 1),
		}}
	}
	return []Result{{
		RuleName:  ruleName,
		SheetName: sheets,
		Status:    StatusFail,
		Expected:  fmt.Sprintf("Last SI.no (%d) should match unique Part Number count with Is Data=False (%d)", declared, actual),
		Actual:    fmt.Sprintf("Part count is not matching for uncosted parts (SI.no: %d, Is Data=False count: %d)", declared, actual),
		Location:  workbook.Ref(uncosted.Row, 1),
	}}
}

// Rule 19. Per FG part listed in Lead Time (FG Wise), the Grand Total
// count must match the unique part numbers under the matching FG
// blocks in the highest-numbered CBOM VL sheet. One Result per FG.
func bomCPNCount(wb *workbook.Workbook, tpl BOMTemplate) []Result {
	const ruleName = "Rule 19: CPN count is not matching"
	lt, ok := wb.Sheet(tpl.LeadTimeSheet)
	if !ok {
		return missingSheet(ruleName, tpl.LeadTimeSheet)
	}

	type fgCount struct {
		part  string
		count int64
	}
	var fgParts []fgCount
	for col := 1; col <= min(50, lt.MaxCol()); col++ {
		header := lt.Value(1, col)
		if !strings.Contains(header, "LT in weeks -") {
			continue
		}
		fg := strings.TrimSpace(strings.Replace(header, "LT in weeks -", "", 1))

		for row := 2; row <= min(100, lt.MaxRow()); row++ {
			if !strings.Contains(lt.Value(row, col), "Grand Total") {
				continue
			}
			if d, ok := parseDecimal(lt.Value(row, col+1)); ok {
				fgParts = append(fgParts, fgCount{part: fg, count: d.IntPart()})
			}
			break
		}
	}
	if len(fgParts) == 0 {
		return []Result{{
			RuleName:  ruleName,
			SheetName: lt.Name,
			Status:    StatusFail,
			Expected:  "At least one 'LT in weeks - #' header with Grand Total",
			Actual:    "No FG parts with Grand Total found",
		}}
	}

	last, ok := lastNumberedSheet(wb, regexp.MustCompile(tpl.CBOMSheetPattern))
	if !ok {
		return noMatchingSheets(ruleName, tpl.CBOMSheetPattern)
	}
	cbom := last.Sheet

	var fgBlocks []int
	for row := 1; row <= cbom.MaxRow(); row++ {
		if cbom.Value(row, 1) == "FG part number" {
			fgBlocks = append(fgBlocks, row)
		}
	}
	if len(fgBlocks) == 0 {
		return []Result{{
			RuleName:  ruleName,
			SheetName: cbom.Name,
			Status:    StatusFail,
			Expected:  "'FG part number' headers in Column A",
			Actual:    "No 'FG part number' headers found",
		}}
	}

	location := fmt.Sprintf("Lead Time vs %s", cbom.Name)
	var results []Result
	for _, fg := range fgParts {
		unique := map[string]struct{}{}
		for _, start := range fgBlocks {
			for row := start + 1; row <= cbom.MaxRow(); row++ {
				fgValue := cbom.Value(row, 1)
				if fgValue == "" {
					break
				}
				if fgValue == fg.part {
					if part := cbom.Value(row, 3); part != "" {
						unique[part] = struct{}{}
					}
				}
			}
		}
		actual := int64(len(unique))

		switch {
		case actual == fg.count:
			results = append(results, Result{
				RuleName:  ruleName,
				SheetName: lt.Name,
				Status:    StatusPass,
				Expected:  fmt.Sprintf("Count %d for FG %s", fg.count, fg.part),
				Actual:    fmt.Sprintf("%s: %d == %d", fg.part, fg.count, actual),
				Location:  location,
			})
		case actual == 0:
			results = append(results, Result{
				RuleName:  ruleName,
				SheetName: lt.Name,
				Status:    StatusFail,
				Expected:  fmt.Sprintf("Count %d for FG %s", fg.count, fg.part),
				Actual:    fmt.Sprintf("%s: not found in CBOM", fg.part),
				Location:  location,
			})
		default:
			results = append(results, Result{
				RuleName:  ruleName,
				SheetName: lt.Name,
				Status:    StatusFail,
				Expected:  fmt.Sprintf("Count %d for FG %s", fg.count, fg.part),
				Actual:    fmt.Sprintf("%s: %d != %d", fg.part, fg.count, actual),
				Location:  location,
			})
		}
	}
	return results
}
