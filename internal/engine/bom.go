package engine

import (
	"regexp"
	"strings"

	"camcheck/domain/workbook"
)

// BOMCatalog builds the rule catalog for BOM Matrix workbooks. The
// named sheets in RequiredSheets must exist unconditionally; the CBOM
// and Ex Inv families are pattern-matched per rule and their absence is
// each rule's own finding.
func BOMCatalog(tpl BOMTemplate) Catalog {
	return Catalog{
		Type:           ValidatorBOM,
		RequiredSheets: []string{tpl.MatrixSheet, tpl.NotesSheet, tpl.AClassSheet},
		Rules: []Rule{
			{
				Number:      1,
				Title:       "Header Validation",
				Description: "Each CBOM VL sheet carries the Ext Part Vol Price (Splits) header matching its sheet number",
				Run:         func(wb *workbook.Workbook) []Result { return bomCBOMHeader(wb, tpl) },
			},
			{
				Number:      2,
				Title:       "Quoted MPN Validation",
				Description: "Quoted MPN header with values under Corrected MPN Mentioned; the old Corrected MPN sub-header must be absent",
				Sheets:      []string{tpl.NotesSheet},
				Run:         func(wb *workbook.Workbook) []Result { return bomQuotedMPN(wb, tpl) },
			},
			{
				Number:      3,
				Title:       "Currency Symbol Validation (CBOM)",
				Description: "Ext Price and Ext Part Vol Price columns in CBOM VL sheets hold currency-formatted values",
				Run:         func(wb *workbook.Workbook) []Result { return bomCBOMCurrency(wb, tpl) },
			},
			{
				Number:      4,
				Title:       "MOQ Cost % Validation",
				Description: "MOQ Cost column in CBOM VL sheets carries a percentage value above the header",
				Run:         func(wb *workbook.Workbook) []Result { return bomMOQCost(wb, tpl) },
			},
			{
				Number:      5,
				Title:       "Currency Symbol Validation (Ex Inv)",
				Description: "Excess cost and buy value columns in Ex Inv VL sheets hold currency-formatted values",
				Run:         func(wb *workbook.Workbook) []Result { return bomExInvCurrency(wb, tpl) },
			},
			{
				Number:      6,
				Title:       "Net Ordering qty Header Validation",
				Description: "Net Ordering qty header present in every Ex Inv VL sheet",
				Run:         func(wb *workbook.Workbook) []Result { return bomNetOrderingQty(wb, tpl) },
			},
			{
				Number:      7,
				Title:       "Currency Validation (A CLASS PARTS)",
				Description: "Cost, Ext Price (Splits), and Ext Vol Cost (Splits) columns in A CLASS PARTS hold currency-formatted values",
				Sheets:      []string{tpl.AClassSheet},
				Run:         func(wb *workbook.Workbook) []Result { return bomAClassCurrency(wb, tpl) },
			},
			{
				Number:      8,
				Title:       "Quoted MFR Validation",
				Description: "Quoted MFR header with values under the Manufacturer Name Mismatch section",
				Sheets:      []string{tpl.NotesSheet},
				Run:         func(wb *workbook.Workbook) []Result { return bomQuotedMFR(wb, tpl) },
			},
			{
				Number:      9,
				Title:       "NRFND Validation",
				Description: "Numbered NRFND sections present in Missing Notes with at least one value row",
				Sheets:      []string{tpl.NotesSheet},
				Run:         func(wb *workbook.Workbook) []Result { return bomNRFND(wb, tpl) },
			},
			{
				Number:      10,
				Title:       "Currency Validation (BOM MATRIX)",
				Description: "Unit Price, second Grand Total, Net Excess Cost, and trailing VL columns hold currency-formatted values",
				Sheets:      []string{tpl.MatrixSheet},
				Run:         func(wb *workbook.Workbook) []Result { return bomMatrixCurrency(wb, tpl) },
			},
			{
				Number:      11,
				Title:       "CBOM Proto Sheet Validation",
				Description: "7.0 CBOM Proto sheet exists exactly when Proto Qty and Proto Price headers are declared in BOM MATRIX",
				Sheets:      []string{tpl.MatrixSheet},
				Run:         func(wb *workbook.Workbook) []Result { return bomCBOMProtoSheet(wb, tpl) },
			},
			{
				Number:      12,
				Title:       "Proto Volume in Summary",
				Description: "Proto Volume header in Summary tracks the Proto declaration in BOM MATRIX",
				Sheets:      []string{tpl.MatrixSheet},
				Run:         func(wb *workbook.Workbook) []Result { return bomProtoVolumeSummary(wb, tpl) },
			},
			{
				Number:      13,
				Title:       "Proto Pricing in Missing Notes",
				Description: "Numbered Proto Pricing No Cost sections track the Proto declaration in BOM MATRIX",
				Sheets:      []string{tpl.MatrixSheet, tpl.NotesSheet},
				Run:         func(wb *workbook.Workbook) []Result { return bomProtoPricingNotes(wb, tpl) },
			},
			{
				Number:      14,
				Title:       "Ex Inv VL-proto Sheet Validation",
				Description: "Ex Inv VL-proto sheet exists exactly when Proto headers are declared in BOM MATRIX",
				Sheets:      []string{tpl.MatrixSheet},
				Run:         func(wb *workbook.Workbook) []Result { return bomExInvProtoSheet(wb, tpl) },
			},
			{
				Number:      15,
				Title:       "Proto Columns in BOM MATRIX",
				Description: "Proto Qty and Proto Price columns present exactly when the 7.0 CBOM Proto sheet exists",
				Sheets:      []string{tpl.MatrixSheet},
				Run:         func(wb *workbook.Workbook) []Result { return bomProtoColumns(wb, tpl) },
			},
			{
				Number:      16,
				Title:       "Serial Number Standardization",
				Description: "Section serial numbers in Missing Notes form the contiguous sequence 1, 2, 3 with no gaps or repeats",
				Sheets:      []string{tpl.NotesSheet},
				Run:         func(wb *workbook.Workbook) []Result { return bomSerialSequence(wb, tpl) },
			},
			{
				Number:      17,
				Title:       "Price Validity Date Format",
				Description: "Effective Date column in BOM MATRIX holds date-formatted values, not weeks notation",
				Sheets:      []string{tpl.MatrixSheet},
				Run:         func(wb *workbook.Workbook) []Result { return bomEffectiveDate(wb, tpl) },
			},
			{
				Number:      18,
				Title:       "Part count is not matching for uncosted parts",
				Description: "Uncosted part count in Missing Notes matches the unique part numbers flagged Is Data = False in the last CBOM VL sheet",
				Sheets:      []string{tpl.NotesSheet},
				Run:         func(wb *workbook.Workbook) []Result { return bomUncostedCount(wb, tpl) },
			},
			{
				Number:      19,
				Title:       "CPN count is not matching",
				Description: "Grand Total count per FG part in Lead Time (FG Wise) matches the unique part numbers under its blocks in the last CBOM VL sheet",
				Run:         func(wb *workbook.Workbook) []Result { return bomCPNCount(wb, tpl) },
			},
		},
	}
}

// findCell scans row-major within the given bounds and returns the
// first cell whose trimmed value satisfies pred.
func findCell(sheet *workbook.Sheet, maxRow, maxCol int, pred func(string) bool) (row, col int, value string, found bool) {
	if r := sheet.MaxRow(); r < maxRow {
		maxRow = r
	}
	if c := sheet.MaxCol(); c < maxCol {
		maxCol = c
	}
	for r := 1; r <= maxRow; r++ {
		for c := 1; c <= maxCol; c++ {
			v := sheet.Value(r, c)
			if v != "" && pred(v) {
				return r, c, v, true
			}
		}
	}
	return 0, 0, "", false
}

// currencyNearHeader probes the cells below a header (then above, when
// nothing below qualifies) for a currency signal. It returns whether
// one was found and the reference of the first non-empty probed cell,
// which is the natural location for a failure.
func currencyNearHeader(sheet *workbook.Sheet, headerRow, col, below, above int) (bool, string) {
	firstRef := ""
	for row := headerRow + 1; row <= headerRow+below && row <= sheet.MaxRow(); row++ {
		cell := sheet.Cell(row, col)
		if cell.IsEmpty() {
			continue
		}
		if firstRef == "" {
			firstRef = workbook.Ref(row, col)
		}
		if isCurrencyCell(cell) {
			return true, workbook.Ref(row, col)
		}
	}
	for row := max(1, headerRow-above); row < headerRow; row++ {
		cell := sheet.Cell(row, col)
		if cell.IsEmpty() {
			continue
		}
		if isCurrencyCell(cell) {
			return true, workbook.Ref(row, col)
		}
	}
	if firstRef == "" {
		firstRef = workbook.Ref(headerRow, col)
	}
	return false, firstRef
}

// hasValuesBelow reports whether any cell in the given column within
// limit rows below start is non-empty.
func hasValuesBelow(sheet *workbook.Sheet, start, col, limit int) bool {
	for row := start + 1; row <= start+limit && row <= sheet.MaxRow(); row++ {
		if sheet.Value(row, col) != "" {
			return true
		}
	}
	return false
}

// noMatchingSheets is the shared finding for a pattern-scoped rule when
// its sheet family is entirely absent.
func noMatchingSheets(ruleName, pattern string) []Result {
	return []Result{{
		RuleName:  ruleName,
		SheetName: "N/A",
		Status:    StatusFail,
		Expected:  "Sheets matching pattern '" + displayPattern(pattern) + "'",
		Actual:    "No matching sheets found",
	}}
}

// missingSheet is the shared finding for a rule whose named sheet does
// not exist.
func missingSheet(ruleName, sheetName string) []Result {
	return []Result{{
		RuleName:  ruleName,
		SheetName: sheetName,
		Status:    StatusFail,
		Expected:  "Sheet '" + sheetName + "' should exist",
		Actual:    "Sheet not found",
	}}
}

// displayPattern renders a sheet-name regexp back into the {X} form the
// reports use.
func displayPattern(pattern string) string {
	s := strings.TrimPrefix(pattern, "^")
	s = strings.TrimSuffix(s, "$")
	s = strings.ReplaceAll(s, `(\d+)`, "{X}")
	s = strings.ReplaceAll(s, `\.`, ".")
	return s
}

// protoHeadersDeclared reports whether BOM MATRIX declares both the
// Proto Qty and Proto Price column headers. Rules 11 through 15 all key
// off this one declaration.
func protoHeadersDeclared(wb *workbook.Workbook, tpl BOMTemplate) bool {
	sheet, ok := wb.Sheet(tpl.MatrixSheet)
	if !ok {
		return false
	}
	qty := false
	price := false
	maxRow := min(tpl.HeaderSearchRows, sheet.MaxRow())
	for row := 1; row <= maxRow; row++ {
		for col := 1; col <= sheet.MaxCol(); col++ {
			v := sheet.Value(row, col)
			if v == "" {
				continue
			}
			if strings.Contains(v, "Proto Qty") {
				qty = true
			}
			if strings.Contains(v, "Proto Price") {
				price = true
			}
		}
		if qty && price {
			break
		}
	}
	return qty && price
}

// lastNumberedSheet returns the highest-numbered sheet of a family, or
// false when the family has no members.
func lastNumberedSheet(wb *workbook.Workbook, pattern *regexp.Regexp) (workbook.NumberedSheet, bool) {
	members := wb.NumberedSheets(pattern)
	if len(members) == 0 {
		return workbook.NumberedSheet{}, false
	}
	return members[len(members)-1], true
}
