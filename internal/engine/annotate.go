package engine

import (
	"fmt"

	"camcheck/domain/workbook"
)

// Annotation is one planned workbook marking: a highlight plus an
// explanatory comment on a single cell. The engine decides what must
// be annotated; the excel adapter applies the presentation.
type Annotation struct {
	Sheet   string
	CellRef string
	Rule    string
	Note    string
}

// PlanAnnotations turns FAIL Results into annotations. Only results
// whose location parses as a single cell reference are annotatable;
// range and prose locations are report-only. Annotations are keyed by
// (sheet, cell, rule) so replanning the same results never duplicates.
func PlanAnnotations(results []Result) []Annotation {
	seen := map[string]bool{}
	var plan []Annotation
	for _, r := range results {
		if r.Passed() || r.Location == "" {
			continue
		}
		if _, _, ok := workbook.ParseRef(r.Location); !ok {
			continue
		}
		key := r.SheetName + "!" + r.Location + "|" + r.RuleName
		if seen[key] {
			continue
		}
		seen[key] = true
		plan = append(plan, Annotation{
			Sheet:   r.SheetName,
			CellRef: r.Location,
			Rule:    r.RuleName,
			Note:    fmt.Sprintf("%s\nExpected: %s\nActual: %s", r.RuleName, r.Expected, r.Actual),
		})
	}
	return plan
}
