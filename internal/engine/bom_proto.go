package engine

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"camcheck/domain/workbook"
)

// Rules 11 through 15 share one pivot: whether BOM MATRIX declares the
// Proto Qty and Proto Price column headers. Each rule checks a
// different artifact for presence symmetry against that declaration; a
// Proto artifact existing without the declaration is as much a failure
// as the declaration without the artifact.

// Rule 11. The 7.0 CBOM Proto sheet exists exactly when Proto headers
// are declared.
func bomCBOMProtoSheet(wb *workbook.Workbook, tpl BOMTemplate) []Result {
	const ruleName = "Rule 11: CBOM Proto Sheet Validation"
	declared := protoHeadersDeclared(wb, tpl)
	exists := wb.HasSheet(tpl.ProtoSheet)

	switch {
	case declared && exists:
		return []Result{{
			RuleName:  ruleName,
			SheetName: tpl.ProtoSheet,
			Status:    StatusPass,
			Expected:  fmt.Sprintf("'%s' sheet should exist when Proto headers present", tpl.ProtoSheet),
			Actual:    "Proto present",
		}}
	case declared && !exists:
		return []Result{{
			RuleName:  ruleName,
			SheetName: "N/A",
			Status:    StatusFail,
			Expected:  fmt.Sprintf("'%s' sheet should exist", tpl.ProtoSheet),
			Actual:    fmt.Sprintf("Proto headers present in %s but %s sheet missing", tpl.MatrixSheet, tpl.ProtoSheet),
		}}
	case !declared && exists:
		return []Result{{
			RuleName:  ruleName,
			SheetName: tpl.ProtoSheet,
			Status:    StatusFail,
			Expected:  fmt.Sprintf("'%s' sheet should not exist without Proto headers", tpl.ProtoSheet),
			Actual:    fmt.Sprintf("Proto not declared but %s sheet present", tpl.ProtoSheet),
		}}
	default:
		return []Result{{
			RuleName:  ruleName,
			SheetName: "N/A",
			Status:    StatusPass,
			Expected:  "No Proto headers, no Proto sheet",
			Actual:    "Proto not specified, sheet correctly absent",
		}}
	}
}

// Rule 12. The Proto Volume header in Summary tracks the Proto
// declaration. When the header embeds a quantity, it must agree with
// the Proto Qty value stated in BOM MATRIX.
func bomProtoVolumeSummary(wb *workbook.Workbook, tpl BOMTemplate) []Result {
	const ruleName = "Rule 12: Proto Volume in Summary"
	declared := protoHeadersDeclared(wb, tpl)

	sheet, ok := wb.Sheet(tpl.SummarySheet)
	if !ok {
		return missingSheet(ruleName, tpl.SummarySheet)
	}

	row, col, header, found := findCell(sheet, tpl.HeaderSearchRows, 50, func(v string) bool {
		return strings.Contains(v, "Proto Volume")
	})
	loc := ""
	if found {
		loc = workbook.Ref(row, col)
	}

	switch {
	case declared && found:
		headerQty, headerHasQty := embeddedQuantity(header)
		statedQty, statedHasQty := protoQtyValue(wb, tpl)
		if headerHasQty && statedHasQty {
			if !headerQty.Equal(statedQty) {
				return []Result{{
					RuleName:  ruleName,
					SheetName: sheet.Name,
					Status:    StatusFail,
					Expected:  fmt.Sprintf("Proto Volume quantity should match Proto Qty in %s (%s)", tpl.MatrixSheet, statedQty.String()),
					Actual:    fmt.Sprintf("Proto Volume header states %s", headerQty.String()),
					Location:  loc,
				}}
			}
			return []Result{{
				RuleName:  ruleName,
				SheetName: sheet.Name,
				Status:    StatusPass,
				Expected:  "'Proto Volume' header should be present",
				Actual:    fmt.Sprintf("Proto volume present in summary, quantity %s matches %s", headerQty.String(), tpl.MatrixSheet),
				Location:  loc,
			}}
		}
		return []Result{{
			RuleName:  ruleName,
			SheetName: sheet.Name,
			Status:    StatusPass,
			Expected:  "'Proto Volume' header should be present",
			Actual:    "Proto volume present in summary",
			Location:  loc,
		}}
	case declared && !found:
		return []Result{{
			RuleName:  ruleName,
			SheetName: sheet.Name,
			Status:    StatusFail,
			Expected:  "'Proto Volume' header should be present when Proto specified",
			Actual:    "Proto volume not present in summary",
		}}
	case !declared && found:
		return []Result{{
			RuleName:  ruleName,
			SheetName: sheet.Name,
			Status:    StatusFail,
			Expected:  "'Proto Volume' should not be present without Proto specification",
			Actual:    fmt.Sprintf("Proto volume present but Proto not specified in %s", tpl.MatrixSheet),
			Location:  loc,
		}}
	default:
		return []Result{{
			RuleName:  ruleName,
			SheetName: sheet.Name,
			Status:    StatusPass,
			Expected:  "No Proto Volume when Proto not specified",
			Actual:    "Proto not specified, Proto Volume correctly absent",
		}}
	}
}

// Rule 13. Numbered Proto Pricing No Cost sections in Missing Notes
// track the Proto declaration.
func bomProtoPricingNotes(wb *workbook.Workbook, tpl BOMTemplate) []Result {
	const ruleName = "Rule 13: Proto Pricing in Missing Notes"
	declared := protoHeadersDeclared(wb, tpl)

	sheet, ok := wb.Sheet(tpl.NotesSheet)
	if !ok {
		return missingSheet(ruleName, tpl.NotesSheet)
	}

	var sections []Section
	for _, s := range Sections(sheet) {
		if strings.Contains(strings.ToUpper(s.Label), "PROTO PRICING NO COST") {
			sections = append(sections, s)
		}
	}
	found := len(sections) > 0

	switch {
	case declared && found:
		names := make([]string, len(sections))
		for i, s := range sections {
			names[i] = fmt.Sprintf("%d. %s", s.Serial, s.Label)
		}
		return []Result{{
			RuleName:  ruleName,
			SheetName: sheet.Name,
			Status:    StatusPass,
			Expected:  "'#. Proto Pricing No Cost' sections should be present",
			Actual:    fmt.Sprintf("Proto Pricing No Cost present in missing notes (%d section(s): %s)", len(sections), strings.Join(names, ", ")),
			Location:  workbook.Ref(sections[0].Row, 1),
		}}
	case declared && !found:
		return []Result{{
			RuleName:  ruleName,
			SheetName: sheet.Name,
			Status:    StatusFail,
			Expected:  "'#. Proto Pricing No Cost' sections should be present (e.g., '1. Proto Pricing No Cost')",
			Actual:    "Proto specified but Proto Pricing No Cost sections not found in missing notes",
		}}
	case !declared && found:
		return []Result{{
			RuleName:  ruleName,
			SheetName: sheet.Name,
			Status:    StatusFail,
			Expected:  "'#. Proto Pricing No Cost' should not be present without Proto",
			Actual:    "Proto Pricing No Cost present but Proto not specified",
			Location:  workbook.Ref(sections[0].Row, 1),
		}}
	default:
		return []Result{{
			RuleName:  ruleName,
			SheetName: sheet.Name,
			Status:    StatusPass,
			Expected:  "No Proto Pricing when Proto not specified",
			Actual:    "Proto not specified, Proto Pricing correctly absent",
		}}
	}
}

// Rule 14. The Ex Inv VL-proto sheet tracks the Proto declaration.
func bomExInvProtoSheet(wb *workbook.Workbook, tpl BOMTemplate) []Result {
	const ruleName = "Rule 14: Ex Inv VL-proto Sheet Validation"
	declared := protoHeadersDeclared(wb, tpl)
	exists := wb.HasSheet(tpl.ExInvProtoSheet)

	switch {
	case declared && exists:
		return []Result{{
			RuleName:  ruleName,
			SheetName: tpl.ExInvProtoSheet,
			Status:    StatusPass,
			Expected:  fmt.Sprintf("'%s' sheet should exist when Proto specified", tpl.ExInvProtoSheet),
			Actual:    fmt.Sprintf("Proto specified and %s sheet present", tpl.ExInvProtoSheet),
		}}
	case declared && !exists:
		return []Result{{
			RuleName:  ruleName,
			SheetName: "N/A",
			Status:    StatusFail,
			Expected:  fmt.Sprintf("'%s' sheet should exist when Proto specified", tpl.ExInvProtoSheet),
			Actual:    fmt.Sprintf("Proto specified but %s sheet missing", tpl.ExInvProtoSheet),
		}}
	case !declared && exists:
		return []Result{{
			RuleName:  ruleName,
			SheetName: tpl.ExInvProtoSheet,
			Status:    StatusFail,
			Expected:  fmt.Sprintf("'%s' should not exist without Proto", tpl.ExInvProtoSheet),
			Actual:    fmt.Sprintf("%s present but Proto not specified", tpl.ExInvProtoSheet),
		}}
	default:
		return []Result{{
			RuleName:  ruleName,
			SheetName: "N/A",
			Status:    StatusPass,
			Expected:  "No Ex Inv Proto sheet when Proto not specified",
			Actual:    fmt.Sprintf("Proto not specified, %s correctly absent", tpl.ExInvProtoSheet),
		}}
	}
}

// Rule 15. The mirror of Rule 11: Proto columns in BOM MATRIX must
// exist exactly when the 7.0 CBOM Proto sheet exists.
func bomProtoColumns(wb *workbook.Workbook, tpl BOMTemplate) []Result {
	const ruleName = "Rule 15: Proto Columns in BOM MATRIX"
	declared := protoHeadersDeclared(wb, tpl)
	protoSheet := wb.HasSheet(tpl.ProtoSheet)

	switch {
	case protoSheet && declared:
		return []Result{{
			RuleName:  ruleName,
			SheetName: tpl.MatrixSheet,
			Status:    StatusPass,
			Expected:  "'Proto Qty' and 'Proto Price' headers should be present",
			Actual:    fmt.Sprintf("Proto Qty and Proto Price headers present in %s", tpl.MatrixSheet),
		}}
	case protoSheet && !declared:
		return []Result{{
			RuleName:  ruleName,
			SheetName: tpl.MatrixSheet,
			Status:    StatusFail,
			Expected:  fmt.Sprintf("'Proto Qty' and 'Proto Price' should be present when %s exists", tpl.ProtoSheet),
			Actual:    fmt.Sprintf("%s sheet exists but Proto columns missing in %s", tpl.ProtoSheet, tpl.MatrixSheet),
		}}
	case !protoSheet && declared:
		return []Result{{
			RuleName:  ruleName,
			SheetName: tpl.MatrixSheet,
			Status:    StatusFail,
			Expected:  fmt.Sprintf("Proto columns should not exist without %s sheet", tpl.ProtoSheet),
			Actual:    fmt.Sprintf("Proto Qty/Proto Price present but %s sheet missing", tpl.ProtoSheet),
		}}
	default:
		return []Result{{
			RuleName:  ruleName,
			SheetName: tpl.MatrixSheet,
			Status:    StatusPass,
			Expected:  "No Proto columns when Proto sheet absent",
			Actual:    "Proto sheet absent, Proto columns correctly absent",
		}}
	}
}

var quantityPattern = regexp.MustCompile(`(\d[\d,]*(?:\.\d+)?)`)

// embeddedQuantity extracts the quantity a Proto Volume header carries
// in its text, e.g. "Proto Volume (500)".
func embeddedQuantity(header string) (decimal.Decimal, bool) {
	rest := header
	if i := strings.Index(header, "Proto Volume"); i >= 0 {
		rest = header[i+len("Proto Volume"):]
	}
	m := quantityPattern.FindString(rest)
	if m == "" {
		return decimal.Decimal{}, false
	}
	return parseDecimal(m)
}

// protoQtyValue returns the first numeric value below the Proto Qty
// header in BOM MATRIX.
func protoQtyValue(wb *workbook.Workbook, tpl BOMTemplate) (decimal.Decimal, bool) {
	sheet, ok := wb.Sheet(tpl.MatrixSheet)
	if !ok {
		return decimal.Decimal{}, false
	}
	headerRow, col, _, found := findCell(sheet, tpl.HeaderSearchRows, sheet.MaxCol(), func(v string) bool {
		return strings.Contains(v, "Proto Qty")
	})
	if !found {
		return decimal.Decimal{}, false
	}
	for row := headerRow + 1; row <= sheet.MaxRow(); row++ {
		v := sheet.Value(row, col)
		if v == "" {
			continue
		}
		return parseDecimal(v)
	}
	return decimal.Decimal{}, false
}
