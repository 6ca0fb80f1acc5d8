package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"camcheck/domain/workbook"
	apperrors "camcheck/internal/errors"
)

func TestValidate_UnknownValidatorType(t *testing.T) {
	_, err := Validate(workbook.New(), ValidatorType("PRICE_BOOK"))
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeConfigInvalid, apperrors.GetCode(err))
}

func TestValidate_StructuralMissingSheet(t *testing.T) {
	// A BOM workbook with only the matrix sheet: Missing Notes and
	// A CLASS PARTS each get one structural FAIL, the rules scoped to
	// them are skipped, and everything else still runs.
	matrix := workbook.NewSheet("BOM MATRIX")
	wb := workbook.New(matrix)

	results, err := Validate(wb, ValidatorBOM)
	require.NoError(t, err)

	structural := 0
	for _, r := range results {
		if r.RuleName == "Structural Validation" {
			structural++
			assert.Equal(t, StatusFail, r.Status)
		}
		assert.NotContains(t, []string{
			"Rule 2: Quoted MPN Validation",
			"Rule 9: NRFND Validation",
			"Rule 16: Serial Number Standardization",
			"Rule 7: Currency Validation (A CLASS PARTS)",
		}, r.RuleName, "rules scoped to missing sheets must be skipped")
	}
	assert.Equal(t, 2, structural)

	// Pattern-scoped rules still ran and reported their own absences.
	names := map[string]bool{}
	for _, r := range results {
		names[r.RuleName] = true
	}
	assert.True(t, names["Rule 1: Header Validation"])
	assert.True(t, names["Rule 10: Currency Validation (BOM MATRIX)"])
}

func TestValidate_RecoveryProducesResult(t *testing.T) {
	rule := Rule{
		Number: 99,
		Title:  "Exploding",
		Run:    func(*workbook.Workbook) []Result { panic("header row is not text") },
	}

	results := runRule(rule, workbook.New())
	require.Len(t, results, 1)
	assert.Equal(t, StatusFail, results[0].Status)
	assert.Contains(t, results[0].Actual, "header row is not text")
}

func TestListRules(t *testing.T) {
	infos, err := ListRules(ValidatorBOM)
	require.NoError(t, err)
	require.Len(t, infos, 19)
	assert.Equal(t, "Rule 1", infos[0].RuleNum)
	assert.Equal(t, "Rule 19", infos[18].RuleNum)
	assert.Equal(t, "Serial Number Standardization", infos[15].Title)

	qw, err := ListRules(ValidatorQuoteWin)
	require.NoError(t, err)
	assert.Len(t, qw, 4)
}

func TestPlanAnnotations(t *testing.T) {
	results := []Result{
		{RuleName: "Rule 4: Award Validation", SheetName: "Quote Win", Status: StatusFail, Expected: "Award 100", Actual: "none", Location: "B17"},
		{RuleName: "Rule 4: Award Validation", SheetName: "Quote Win", Status: StatusFail, Expected: "Award 100", Actual: "none", Location: "B17"},
		{RuleName: "Rule 2: Project Name", SheetName: "Quote Win", Status: StatusPass, Location: "D3"},
		{RuleName: "Rule 19: CPN count is not matching", SheetName: "Lead Time (FG Wise)", Status: StatusFail, Location: "Lead Time vs 7.0 CBOM VL-2"},
	}

	plan := PlanAnnotations(results)
	require.Len(t, plan, 1, "duplicates, passes, and non-cell locations are all excluded")
	assert.Equal(t, "B17", plan[0].CellRef)
	assert.Contains(t, plan[0].Note, "Expected: Award 100")
}
