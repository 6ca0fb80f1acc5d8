package engine

import (
	"fmt"
	"log"

	"camcheck/domain/workbook"
	apperrors "camcheck/internal/errors"
)

// Catalogs returns the rule catalogs for both validator types, built
// from the embedded templates.
func Catalogs() map[ValidatorType]Catalog {
	return map[ValidatorType]Catalog{
		ValidatorQuoteWin: QuoteWinCatalog(DefaultQuoteWinTemplate()),
		ValidatorBOM:      BOMCatalog(DefaultBOMTemplate()),
	}
}

// CatalogFor resolves a validator type to its catalog. An unknown type
// is a configuration error, not a data-quality finding.
func CatalogFor(t ValidatorType) (Catalog, error) {
	cat, ok := Catalogs()[t]
	if !ok {
		return Catalog{}, apperrors.ConfigInvalid(fmt.Sprintf("unknown validator type: %s", t))
	}
	return cat, nil
}

// ListRules returns the static rule listing for a validator type,
// independent of any workbook.
func ListRules(t ValidatorType) ([]RuleInfo, error) {
	cat, err := CatalogFor(t)
	if err != nil {
		return nil, err
	}
	return cat.Infos(), nil
}

// Validate runs the full catalog for the given validator type against
// a loaded workbook and returns every Result in catalog order. The run
// never stops at a failure and never panics out: malformed input
// becomes FAIL Results, and only an unknown validator type errors.
func Validate(wb *workbook.Workbook, t ValidatorType) ([]Result, error) {
	cat, err := CatalogFor(t)
	if err != nil {
		return nil, err
	}

	var results []Result

	// Structural pre-check: unconditionally required sheets. A missing
	// one is a single FAIL and suppresses only the rules scoped to it.
	missing := map[string]bool{}
	for _, name := range cat.RequiredSheets {
		if !wb.HasSheet(name) {
			missing[name] = true
			results = append(results, Result{
				RuleName:  "Structural Validation",
				SheetName: name,
				Status:    StatusFail,
				Expected:  fmt.Sprintf("Sheet '%s' should exist", name),
				Actual:    "Sheet not found",
			})
		}
	}

	for _, rule := range cat.Rules {
		if skip, sheet := ruleBlockedBy(rule, missing); skip {
			log.Printf("[Engine] skipping %s: required sheet %q is missing", rule.Name(), sheet)
			continue
		}
		results = append(results, runRule(rule, wb)...)
	}

	log.Printf("[Engine] %s run complete: %d results", t, len(results))
	return results, nil
}

// ruleBlockedBy reports whether the rule is scoped to a sheet the
// structural pre-check already reported missing.
func ruleBlockedBy(rule Rule, missing map[string]bool) (bool, string) {
	for _, name := range rule.Sheets {
		if missing[name] {
			return true, name
		}
	}
	return false, ""
}

// runRule executes one rule with panic recovery: an unexpected shape in
// the workbook becomes a FAIL Result instead of crashing the run.
func runRule(rule Rule, wb *workbook.Workbook) (results []Result) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Engine] %s panicked: %v", rule.Name(), r)
			results = []Result{{
				RuleName: rule.Name(),
				Status:   StatusFail,
				Expected: "Rule evaluates against the workbook",
				Actual:   fmt.Sprintf("Rule could not be evaluated: %v", r),
			}}
		}
	}()
	return rule.Run(wb)
}
