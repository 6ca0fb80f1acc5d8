package engine

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"camcheck/domain/workbook"
)

// Rule 3. Price columns in CBOM VL sheets must hold currency-formatted
// values. The headers carry the sheet's own number; the header row
// floats inside the first 15 rows.
func bomCBOMCurrency(wb *workbook.Workbook, tpl BOMTemplate) []Result {
	const ruleName = "Rule 3: Currency Symbol Validation (CBOM)"
	members := wb.NumberedSheets(regexp.MustCompile(tpl.CBOMSheetPattern))
	if len(members) == 0 {
		return noMatchingSheets(ruleName, tpl.CBOMSheetPattern)
	}

	var results []Result
	for _, m := range members {
		sheet := m.Sheet
		headers := []string{
			fmt.Sprintf("Ext Price #%d (Conv.)", m.Number),
			fmt.Sprintf("Ext Part Vol Price #%d (Conv.)", m.Number),
		}

		for _, header := range headers {
			row, col, _, found := findCell(sheet, 15, 50, func(v string) bool { return v == header })
			if !found {
				results = append(results, Result{
					RuleName:  ruleName,
					SheetName: sheet.Name,
					Status:    StatusFail,
					Expected:  fmt.Sprintf("Header '%s' with currency-formatted values", header),
					Actual:    "Header not found",
				})
				continue
			}

			ok, ref := currencyNearHeader(sheet, row, col, 9, 5)
			if ok {
				results = append(results, Result{
					RuleName:  ruleName,
					SheetName: sheet.Name,
					Status:    StatusPass,
					Expected:  fmt.Sprintf("Currency symbols in '%s'", header),
					Actual:    "Currency symbol present",
					Location:  ref,
				})
			} else {
				results = append(results, Result{
					RuleName:  ruleName,
					SheetName: sheet.Name,
					Status:    StatusFail,
					Expected:  "Values with currency symbols ($, €, £, etc.)",
					Actual:    fmt.Sprintf("No currency format in '%s'", header),
					Location:  ref,
				})
			}
		}
	}
	return results
}

// Rule 5. Excess cost and buy value columns in Ex Inv VL sheets must
// hold currency-formatted values; header suffixes track the sheet
// number.
func bomExInvCurrency(wb *workbook.Workbook, tpl BOMTemplate) []Result {
	const ruleName = "Rule 5: Currency Symbol Validation (Ex Inv)"
	members := wb.NumberedSheets(regexp.MustCompile(tpl.ExInvSheetPattern))
	if len(members) == 0 {
		return noMatchingSheets(ruleName, tpl.ExInvSheetPattern)
	}

	var results []Result
	for _, m := range members {
		sheet := m.Sheet
		n := m.Number
		headers := []string{
			fmt.Sprintf("Excess Cost #%d", n),
			fmt.Sprintf("Cost #%d", n),
			fmt.Sprintf("Ext Vol Cost (Splits) #%d", n),
			fmt.Sprintf("Excess Cost #%d -B%d", n, n),
			fmt.Sprintf("Buy value after -B%d", n),
			fmt.Sprintf("Net Excess Cost #%d", n),
		}

		for _, header := range headers {
			row, col, _, found := findCell(sheet, 50, 50, func(v string) bool { return v == header })
			if !found {
				// Ex Inv layouts vary; an absent optional column is not
				// an offense, only a present column without currency is.
				continue
			}
			ok, ref := currencyNearHeader(sheet, row, col, 9, 5)
			if ok {
				results = append(results, Result{
					RuleName:  ruleName,
					SheetName: sheet.Name,
					Status:    StatusPass,
					Expected:  fmt.Sprintf("Currency symbols in '%s'", header),
					Actual:    "Currency symbol present",
					Location:  ref,
				})
			} else {
				results = append(results, Result{
					RuleName:  ruleName,
					SheetName: sheet.Name,
					Status:    StatusFail,
					Expected:  fmt.Sprintf("Currency symbols in '%s'", header),
					Actual:    fmt.Sprintf("'%s' missing currency", header),
					Location:  ref,
				})
			}
		}
	}
	return results
}

// Rule 7. Cost and price columns in A CLASS PARTS must hold currency
// values. The columns are discovered dynamically by prefix since the
// family sizes vary per workbook.
func bomAClassCurrency(wb *workbook.Workbook, tpl BOMTemplate) []Result {
	const ruleName = "Rule 7: Currency Validation (A CLASS PARTS)"
	sheet, ok := wb.Sheet(tpl.AClassSheet)
	if !ok {
		return missingSheet(ruleName, tpl.AClassSheet)
	}

	type header struct {
		text string
		row  int
		col  int
	}
	var headers []header
	maxRow := min(20, sheet.MaxRow())
	for row := 1; row <= maxRow; row++ {
		for col := 1; col <= sheet.MaxCol(); col++ {
			v := sheet.Value(row, col)
			if v == "" {
				continue
			}
			if strings.HasPrefix(v, "Cost #") ||
				strings.Contains(v, "Ext Price (Splits) #") ||
				strings.Contains(v, "Ext Vol Cost (Splits) #") {
				headers = append(headers, header{text: v, row: row, col: col})
			}
		}
	}

	var results []Result
	for _, h := range headers {
		ok, ref := currencyNearHeader(sheet, h.row, h.col, 9, 5)
		if ok {
			results = append(results, Result{
				RuleName:  ruleName,
				SheetName: sheet.Name,
				Status:    StatusPass,
				Expected:  fmt.Sprintf("Currency symbols in '%s'", h.text),
				Actual:    "Currency symbol present",
				Location:  ref,
			})
		} else {
			results = append(results, Result{
				RuleName:  ruleName,
				SheetName: sheet.Name,
				Status:    StatusFail,
				Expected:  fmt.Sprintf("Currency symbols in '%s'", h.text),
				Actual:    fmt.Sprintf("'%s' missing currency", h.text),
				Location:  ref,
			})
		}
	}

	if len(results) == 0 {
		results = append(results, Result{
			RuleName:  ruleName,
			SheetName: sheet.Name,
			Status:    StatusFail,
			Expected:  "Cost #{X}, Ext Price (Splits) #{X}, and Ext Vol Cost (Splits) #{X} columns",
			Actual:    "No cost or price columns found",
		})
	}
	return results
}

// Rule 10. Currency in BOM MATRIX price columns: every Unit Price and
// Net Excess Cost column, the second Grand Total occurrence in column
// order, and VL-{X} columns sitting after the last Unit Price column.
func bomMatrixCurrency(wb *workbook.Workbook, tpl BOMTemplate) []Result {
	const ruleName = "Rule 10: Currency Validation (BOM MATRIX)"
	sheet, ok := wb.Sheet(tpl.MatrixSheet)
	if !ok {
		return missingSheet(ruleName, tpl.MatrixSheet)
	}

	type target struct {
		text  string
		row   int
		col   int
		below int
		above int
	}
	var targets []target
	var grandTotals []target
	var vlHeaders []target
	lastUnitPriceCol := 0

	maxRow := min(tpl.HeaderSearchRows, sheet.MaxRow())
	for row := 1; row <= maxRow; row++ {
		for col := 1; col <= sheet.MaxCol(); col++ {
			v := sheet.Value(row, col)
			if v == "" {
				continue
			}
			switch {
			case strings.Contains(v, "Unit Price"):
				targets = append(targets, target{text: v, row: row, col: col, below: 9, above: 5})
				if col > lastUnitPriceCol {
					lastUnitPriceCol = col
				}
			case strings.Contains(v, "Net Excess Cost"):
				targets = append(targets, target{text: v, row: row, col: col, below: 9, above: 5})
			case strings.Contains(v, "Grand Total"):
				grandTotals = append(grandTotals, target{text: v, row: row, col: col, below: 9, above: 5})
			case strings.HasPrefix(v, "VL-"):
				// VL columns sit in a shallow band, probed 3 rows each way.
				vlHeaders = append(vlHeaders, target{text: v, row: row, col: col, below: 3, above: 3})
			}
		}
	}

	// The second Grand Total in column order is the priced one; the
	// first is a quantity rollup.
	sort.Slice(grandTotals, func(i, j int) bool { return grandTotals[i].col < grandTotals[j].col })
	if len(grandTotals) >= 2 {
		targets = append(targets, grandTotals[1])
	}

	// VL-{X} columns only carry prices after the last Unit Price block.
	for _, t := range vlHeaders {
		if t.col > lastUnitPriceCol {
			targets = append(targets, t)
		}
	}

	var results []Result
	for _, t := range targets {
		ok, ref := currencyNearHeader(sheet, t.row, t.col, t.below, t.above)
		if ok {
			results = append(results, Result{
				RuleName:  ruleName,
				SheetName: sheet.Name,
				Status:    StatusPass,
				Expected:  fmt.Sprintf("Currency symbols in '%s' (column %s)", t.text, workbook.ColumnLetter(t.col)),
				Actual:    "Currency symbol present",
				Location:  ref,
			})
		} else {
			results = append(results, Result{
				RuleName:  ruleName,
				SheetName: sheet.Name,
				Status:    StatusFail,
				Expected:  "Currency symbols in all price columns",
				Actual:    fmt.Sprintf("Missing currency: %s (column %s)", t.text, workbook.ColumnLetter(t.col)),
				Location:  ref,
			})
		}
	}

	if len(results) == 0 {
		results = append(results, Result{
			RuleName:  ruleName,
			SheetName: sheet.Name,
			Status:    StatusFail,
			Expected:  "Unit Price, Grand Total, Net Excess Cost, and VL-{X} price columns",
			Actual:    "No price columns found",
		})
	}
	return results
}
