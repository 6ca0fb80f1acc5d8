package engine

import (
	"fmt"
	"regexp"
	"strings"

	"camcheck/domain/workbook"
)

// Rule 1. Every CBOM VL sheet must carry the Ext Part Vol Price header
// whose suffix matches the sheet's own number.
func bomCBOMHeader(wb *workbook.Workbook, tpl BOMTemplate) []Result {
	const ruleName = "Rule 1: Header Validation"
	members := wb.NumberedSheets(regexp.MustCompile(tpl.CBOMSheetPattern))
	if len(members) == 0 {
		return noMatchingSheets(ruleName, tpl.CBOMSheetPattern)
	}

	var results []Result
	for _, m := range members {
		expected := fmt.Sprintf("Ext Part Vol Price (Splits) #%d (Conv.)", m.Number)
		row, col, _, found := findCell(m.Sheet, 100, 100, func(v string) bool {
			return v == expected
		})
		if found {
			results = append(results, Result{
				RuleName:  ruleName,
				SheetName: m.Sheet.Name,
				Status:    StatusPass,
				Expected:  expected,
				Actual:    expected,
				Location:  workbook.Ref(row, col),
			})
			continue
		}

		// Surface a near-miss header when one exists, so the report
		// shows what the sheet has instead.
		actual := "Header not found"
		location := ""
		if r, c, v, ok := findCell(m.Sheet, 100, 100, func(v string) bool {
			return strings.Contains(v, "Ext Part Vol Price") && strings.Contains(v, "Splits")
		}); ok {
			actual = fmt.Sprintf("Found: '%s'", v)
			location = workbook.Ref(r, c)
		}
		results = append(results, Result{
			RuleName:  ruleName,
			SheetName: m.Sheet.Name,
			Status:    StatusFail,
			Expected:  expected,
			Actual:    actual,
			Location:  location,
		})
	}
	return results
}

// Rule 4. The MOQ Cost column must carry a percentage value in the cell
// directly above the header.
func bomMOQCost(wb *workbook.Workbook, tpl BOMTemplate) []Result {
	const ruleName = "Rule 4: MOQ Cost % Validation"
	members := wb.NumberedSheets(regexp.MustCompile(tpl.CBOMSheetPattern))
	if len(members) == 0 {
		return noMatchingSheets(ruleName, tpl.CBOMSheetPattern)
	}

	var results []Result
	for _, m := range members {
		sheet := m.Sheet
		row, col, _, found := findCell(sheet, 50, 50, func(v string) bool { return v == "MOQ Cost" })
		if !found {
			results = append(results, Result{
				RuleName:  ruleName,
				SheetName: sheet.Name,
				Status:    StatusFail,
				Expected:  "'MOQ Cost' header should be present",
				Actual:    "'MOQ Cost' header not found",
			})
			continue
		}

		loc := workbook.Ref(row, col)
		hasPercent := false
		if row > 1 {
			above := sheet.Cell(row-1, col)
			if !above.IsEmpty() {
				if strings.Contains(above.NumberFormat, "%") || strings.Contains(above.Value, "%") {
					hasPercent = true
				} else if _, ok := parseDecimal(above.Value); ok {
					// A bare number above the header is accepted; the
					// percent style is often lost on export.
					hasPercent = true
				}
			}
		}

		if hasPercent {
			results = append(results, Result{
				RuleName:  ruleName,
				SheetName: sheet.Name,
				Status:    StatusPass,
				Expected:  "MOQ Cost with percentage above",
				Actual:    "MOQ Cost present",
				Location:  loc,
			})
		} else {
			results = append(results, Result{
				RuleName:  ruleName,
				SheetName: sheet.Name,
				Status:    StatusFail,
				Expected:  "Percentage value above 'MOQ Cost'",
				Actual:    fmt.Sprintf("No percentage found above MOQ Cost at %s", loc),
				Location:  workbook.Ref(max(1, row-1), col),
			})
		}
	}
	return results
}

// Rule 6. Every Ex Inv VL sheet must carry the Net Ordering qty header.
func bomNetOrderingQty(wb *workbook.Workbook, tpl BOMTemplate) []Result {
	const ruleName = "Rule 6: Net Ordering qty Header Validation"
	members := wb.NumberedSheets(regexp.MustCompile(tpl.ExInvSheetPattern))
	if len(members) == 0 {
		return noMatchingSheets(ruleName, tpl.ExInvSheetPattern)
	}

	var results []Result
	for _, m := range members {
		row, col, _, found := findCell(m.Sheet, 50, 50, func(v string) bool { return v == "Net Ordering qty" })
		if found {
			results = append(results, Result{
				RuleName:  ruleName,
				SheetName: m.Sheet.Name,
				Status:    StatusPass,
				Expected:  "'Net Ordering qty' header present",
				Actual:    "Header is inline",
				Location:  workbook.Ref(row, col),
			})
		} else {
			results = append(results, Result{
				RuleName:  ruleName,
				SheetName: m.Sheet.Name,
				Status:    StatusFail,
				Expected:  "'Net Ordering qty' header should be present",
				Actual:    "Header not found",
			})
		}
	}
	return results
}
