package engine

import (
	"fmt"
	"strings"

	"camcheck/domain/workbook"
)

// Rule 2. Corrected MPNs must be reflected through the Quoted MPN
// sub-header: Quoted MPN present with values, and the older Corrected
// MPN sub-header absent. The two header variants are mutually
// exclusive.
func bomQuotedMPN(wb *workbook.Workbook, tpl BOMTemplate) []Result {
	const ruleName = "Rule 2: Quoted MPN Validation"
	sheet, ok := wb.Sheet(tpl.NotesSheet)
	if !ok {
		return missingSheet(ruleName, tpl.NotesSheet)
	}

	quotedRow, quotedCol, _, quotedFound := findCell(sheet, 500, 20, func(v string) bool {
		return v == "Quoted MPN"
	})
	_, _, _, correctedFound := findCell(sheet, 500, 20, func(v string) bool {
		return v == "Corrected MPN"
	})

	switch {
	case correctedFound:
		return []Result{{
			RuleName:  ruleName,
			SheetName: sheet.Name,
			Status:    StatusFail,
			Expected:  "'Corrected MPN' sub-header should NOT be present",
			Actual:    "'Corrected MPN' sub-header found (should only have 'Quoted MPN')",
		}}
	case !quotedFound:
		return []Result{{
			RuleName:  ruleName,
			SheetName: sheet.Name,
			Status:    StatusFail,
			Expected:  "'Quoted MPN' header should be present under 'Corrected MPN Mentioned' section",
			Actual:    "Quoted MPN header not found",
		}}
	case !hasValuesBelow(sheet, quotedRow, quotedCol, 100):
		return []Result{{
			RuleName:  ruleName,
			SheetName: sheet.Name,
			Status:    StatusFail,
			Expected:  "'Quoted MPN' header with values",
			Actual:    "Quoted MPN found but no values present",
			Location:  workbook.Ref(quotedRow, quotedCol),
		}}
	default:
		return []Result{{
			RuleName:  ruleName,
			SheetName: sheet.Name,
			Status:    StatusPass,
			Expected:  "'Quoted MPN' header with values",
			Actual:    "Quoted MPN is present",
			Location:  workbook.Ref(quotedRow, quotedCol),
		}}
	}
}

// Rule 8. Quoted MFR with values under the Manufacturer Name Mismatch
// section.
func bomQuotedMFR(wb *workbook.Workbook, tpl BOMTemplate) []Result {
	const ruleName = "Rule 8: Quoted MFR Validation"
	sheet, ok := wb.Sheet(tpl.NotesSheet)
	if !ok {
		return missingSheet(ruleName, tpl.NotesSheet)
	}

	row, col, _, found := findCell(sheet, 500, 20, func(v string) bool { return v == "Quoted MFR" })
	switch {
	case !found:
		return []Result{{
			RuleName:  ruleName,
			SheetName: sheet.Name,
			Status:    StatusFail,
			Expected:  "'Quoted MFR' header should be present",
			Actual:    "Quoted MFR header not found",
		}}
	case !hasValuesBelow(sheet, row, col, 100):
		return []Result{{
			RuleName:  ruleName,
			SheetName: sheet.Name,
			Status:    StatusFail,
			Expected:  "'Quoted MFR' header with values",
			Actual:    "Quoted MFR found but no values present",
			Location:  workbook.Ref(row, col),
		}}
	default:
		return []Result{{
			RuleName:  ruleName,
			SheetName: sheet.Name,
			Status:    StatusPass,
			Expected:  "'Quoted MFR' header with values",
			Actual:    "Quoted MFR is present",
			Location:  workbook.Ref(row, col),
		}}
	}
}

// Rule 9. Numbered NRFND sections must be present in Missing Notes,
// with at least one value row inside a section body.
func bomNRFND(wb *workbook.Workbook, tpl BOMTemplate) []Result {
	const ruleName = "Rule 9: NRFND Validation"
	sheet, ok := wb.Sheet(tpl.NotesSheet)
	if !ok {
		return missingSheet(ruleName, tpl.NotesSheet)
	}

	var nrfnd []Section
	for _, s := range Sections(sheet) {
		if strings.Contains(strings.ToUpper(s.Label), "NRFND") {
			nrfnd = append(nrfnd, s)
		}
	}

	if len(nrfnd) == 0 {
		return []Result{{
			RuleName:  ruleName,
			SheetName: sheet.Name,
			Status:    StatusFail,
			Expected:  "'#. NRFND' sections should be present (e.g., '1. NRFND', '2. NRFND')",
			Actual:    "NRFND sections not found",
		}}
	}

	hasValues := false
	for _, s := range nrfnd {
		// The row directly below the marker is the sub-header row;
		// data starts one further down.
		for row := s.Row + 2; row <= s.Row+100 && row <= sheet.MaxRow(); row++ {
			if !sheet.RowIsBlank(row) {
				hasValues = true
				break
			}
		}
		if hasValues {
			break
		}
	}

	names := make([]string, len(nrfnd))
	for i, s := range nrfnd {
		names[i] = fmt.Sprintf("%d. %s", s.Serial, s.Label)
	}

	if !hasValues {
		return []Result{{
			RuleName:  ruleName,
			SheetName: sheet.Name,
			Status:    StatusFail,
			Expected:  "'#. NRFND' sections with values",
			Actual:    "NRFND sections found but no values present",
			Location:  workbook.Ref(nrfnd[0].Row, 1),
		}}
	}
	return []Result{{
		RuleName:  ruleName,
		SheetName: sheet.Name,
		Status:    StatusPass,
		Expected:  "'#. NRFND' sections with values",
		Actual:    fmt.Sprintf("NRFND present in missing notes (%d section(s): %s)", len(nrfnd), strings.Join(names, ", ")),
		Location:  workbook.Ref(nrfnd[0].Row, 1),
	}}
}
