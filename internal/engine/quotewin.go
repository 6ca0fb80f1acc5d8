package engine

import (
	"fmt"
	"strings"

	"camcheck/domain/workbook"
)

// QuoteWinCatalog builds the four-rule catalog for Quote Win template
// workbooks. Quote Win files are single-template: every rule reads the
// workbook's first sheet.
func QuoteWinCatalog(tpl QuoteWinTemplate) Catalog {
	return Catalog{
		Type: ValidatorQuoteWin,
		Rules: []Rule{
			{
				Number:      1,
				Title:       "Header Validation",
				Description: "Required headers present in the summary row and the main header row, including dynamic column families",
				Run:         func(wb *workbook.Workbook) []Result { return quoteWinHeaders(wb, tpl) },
			},
			{
				Number:      2,
				Title:       "Project Name",
				Description: "Project value in the title block matches the first project value in the data section",
				Run:         func(wb *workbook.Workbook) []Result { return quoteWinProjectName(wb, tpl) },
			},
			{
				Number:      3,
				Title:       "Filter Validation",
				Description: "No auto-filter applied; active filters can hide rows from review",
				Run:         func(wb *workbook.Workbook) []Result { return quoteWinFilters(wb, tpl) },
			},
			{
				Number:      4,
				Title:       "Award Validation",
				Description: "Each unique part number carries an Award value of 100 in some Award column",
				Run:         func(wb *workbook.Workbook) []Result { return quoteWinAwards(wb, tpl) },
			},
		},
	}
}

// quoteWinSheet returns the template sheet a Quote Win rule operates on.
func quoteWinSheet(wb *workbook.Workbook, ruleName string) (*workbook.Sheet, []Result) {
	sheets := wb.Sheets()
	if len(sheets) == 0 {
		return nil, []Result{{
			RuleName:  ruleName,
			SheetName: "N/A",
			Status:    StatusFail,
			Expected:  "Workbook with at least one sheet",
			Actual:    "Workbook contains no sheets",
		}}
	}
	return sheets[0], nil
}

func quoteWinHeaders(wb *workbook.Workbook, tpl QuoteWinTemplate) []Result {
	const ruleName = "Rule 1: Header Validation"
	sheet, failed := quoteWinSheet(wb, ruleName)
	if failed != nil {
		return failed
	}

	summary := ResolveHeaders(sheet, tpl.SummaryHeaderRow, tpl.SummaryStaticHeaders, tpl.SummaryDynamicFamilies)
	main := ResolveHeaders(sheet, tpl.HeaderRow, tpl.StaticHeaders, tpl.DynamicFamilies)

	var results []Result
	for _, h := range summary.Missing {
		results = append(results, Result{
			RuleName:  ruleName,
			SheetName: sheet.Name,
			Status:    StatusFail,
			Expected:  fmt.Sprintf("Header '%s' present in summary row %d", h, tpl.SummaryHeaderRow),
			Actual:    "Header not found",
			Location:  workbook.Ref(tpl.SummaryHeaderRow, 1),
		})
	}
	for _, h := range main.Missing {
		results = append(results, Result{
			RuleName:  ruleName,
			SheetName: sheet.Name,
			Status:    StatusFail,
			Expected:  fmt.Sprintf("Header '%s' present in main header row %d", h, tpl.HeaderRow),
			Actual:    "Header not found",
			Location:  workbook.Ref(tpl.HeaderRow, 1),
		})
	}
	for _, h := range append(append([]string{}, summary.Extras...), main.Extras...) {
		results = append(results, Result{
			RuleName:  ruleName,
			SheetName: sheet.Name,
			Status:    StatusFail,
			Expected:  "Dynamic column families numbered contiguously from #1",
			Actual:    fmt.Sprintf("Unexpected header '%s' beyond the end of its family", h),
		})
	}

	if len(results) == 0 {
		results = append(results, Result{
			RuleName:  ruleName,
			SheetName: sheet.Name,
			Status:    StatusPass,
			Expected:  "All required headers present in both header rows",
			Actual:    "All required headers present",
		})
	}
	return results
}

func quoteWinProjectName(wb *workbook.Workbook, tpl QuoteWinTemplate) []Result {
	const ruleName = "Rule 2: Project Name"
	sheet, failed := quoteWinSheet(wb, ruleName)
	if failed != nil {
		return failed
	}

	declared := sheet.Value(tpl.ProjectRow, tpl.ProjectValueColumn)

	var dataValue string
	for row := tpl.DataStartRow; row <= sheet.MaxRow(); row++ {
		if v := sheet.Value(row, 1); v != "" {
			dataValue = v
			break
		}
	}

	loc := workbook.Ref(tpl.ProjectRow, tpl.ProjectValueColumn)
	if declared != dataValue {
		return []Result{{
			RuleName:  ruleName,
			SheetName: sheet.Name,
			Status:    StatusFail,
			Expected:  fmt.Sprintf("Project name '%s' (from data section)", dataValue),
			Actual:    fmt.Sprintf("Project name '%s'", declared),
			Location:  loc,
		}}
	}
	return []Result{{
		RuleName:  ruleName,
		SheetName: sheet.Name,
		Status:    StatusPass,
		Expected:  "Project names match between title block and data section",
		Actual:    fmt.Sprintf("Project name '%s'", declared),
		Location:  loc,
	}}
}

func quoteWinFilters(wb *workbook.Workbook, tpl QuoteWinTemplate) []Result {
	const ruleName = "Rule 3: Filter Validation"
	sheet, failed := quoteWinSheet(wb, ruleName)
	if failed != nil {
		return failed
	}

	if ref := sheet.AutoFilter; ref != "" {
		start := ref
		if i := strings.Index(ref, ":"); i >= 0 {
			start = ref[:i]
		}
		return []Result{{
			RuleName:  ruleName,
			SheetName: sheet.Name,
			Status:    StatusFail,
			Expected:  "No filter applied",
			Actual:    fmt.Sprintf("Filter applied at %s", ref),
			Location:  start,
		}}
	}
	return []Result{{
		RuleName:  ruleName,
		SheetName: sheet.Name,
		Status:    StatusPass,
		Expected:  "No filter applied",
		Actual:    "No filters present",
	}}
}

func quoteWinAwards(wb *workbook.Workbook, tpl QuoteWinTemplate) []Result {
	const ruleName = "Rule 4: Award Validation"
	sheet, failed := quoteWinSheet(wb, ruleName)
	if failed != nil {
		return failed
	}

	headers := ResolveHeaders(sheet, tpl.HeaderRow, []string{tpl.PartNumberHeader}, tpl.DynamicFamilies)
	partCol := headers.Column(tpl.PartNumberHeader)
	if partCol == 0 {
		return []Result{{
			RuleName:  ruleName,
			SheetName: sheet.Name,
			Status:    StatusFail,
			Expected:  fmt.Sprintf("'%s' column in header row %d", tpl.PartNumberHeader, tpl.HeaderRow),
			Actual:    "Column not found",
			Location:  workbook.Ref(tpl.HeaderRow, 1),
		}}
	}

	var awardCols []int
	for _, fam := range tpl.DynamicFamilies {
		if fam.Label == "Award #X" {
			awardCols = headers.FamilyColumns(fam)
		}
	}
	if len(awardCols) == 0 {
		return []Result{{
			RuleName:  ruleName,
			SheetName: sheet.Name,
			Status:    StatusFail,
			Expected:  "At least one Award column in the main header row",
			Actual:    "No Award columns found",
			Location:  workbook.Ref(tpl.HeaderRow, 1),
		}}
	}

	// Group data rows by part number, preserving first-appearance order.
	type group struct {
		firstRow int
		rows     []int
	}
	order := []string{}
	groups := map[string]*group{}
	for row := tpl.DataStartRow; row <= sheet.MaxRow(); row++ {
		part := sheet.Value(row, partCol)
		if part == "" {
			continue
		}
		g, ok := groups[part]
		if !ok {
			g = &group{firstRow: row}
			groups[part] = g
			order = append(order, part)
		}
		g.rows = append(g.rows, row)
	}

	var results []Result
	for _, part := range order {
		g := groups[part]
		awarded := false
		for _, row := range g.rows {
			for _, col := range awardCols {
				if equalsHundred(sheet.Value(row, col)) {
					awarded = true
					break
				}
			}
			if awarded {
				break
			}
		}

		loc := workbook.Ref(g.firstRow, partCol)
		if awarded {
			results = append(results, Result{
				RuleName:  ruleName,
				SheetName: sheet.Name,
				Status:    StatusPass,
				Expected:  fmt.Sprintf("Award value of 100 for part number %s", part),
				Actual:    "Award of 100 present",
				Location:  loc,
			})
		} else {
			results = append(results, Result{
				RuleName:  ruleName,
				SheetName: sheet.Name,
				Status:    StatusFail,
				Expected:  fmt.Sprintf("Award value of 100 for part number %s", part),
				Actual:    "No Award column holds 100 for this part number",
				Location:  loc,
			})
		}
	}

	if len(results) == 0 {
		results = append(results, Result{
			RuleName:  ruleName,
			SheetName: sheet.Name,
			Status:    StatusFail,
			Expected:  "Data rows with part numbers below the header row",
			Actual:    "No part numbers found in the data section",
			Location:  workbook.Ref(tpl.DataStartRow, partCol),
		})
	}
	return results
}
