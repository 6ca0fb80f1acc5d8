// Package engine evaluates workbook validation rule catalogs. It models
// headers and sections as discoverable structure (resolved per sheet at
// run time) and folds an ordered rule catalog over a loaded workbook,
// emitting one Result per check instance.
package engine

// Status is the outcome of a single rule check.
type Status string

const (
	StatusPass Status = "PASS"
	StatusFail Status = "FAIL"
)

// Result is one rule-check outcome. Results are immutable value
// records; a validation run produces an ordered sequence of them in
// catalog order, then emission order within a rule.
type Result struct {
	RuleName  string `json:"rule_name"`
	SheetName string `json:"sheet_name"`
	Status    Status `json:"status"`
	Expected  string `json:"expected"`
	Actual    string `json:"actual"`
	Location  string `json:"location,omitempty"`
}

// Passed reports whether the result is a PASS.
func (r Result) Passed() bool {
	return r.Status == StatusPass
}

// Summary aggregates counts over a result sequence.
type Summary struct {
	Total  int `json:"total"`
	Passed int `json:"passed"`
	Failed int `json:"failed"`
}

// Summarize counts PASS and FAIL results.
func Summarize(results []Result) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		if r.Passed() {
			s.Passed++
		} else {
			s.Failed++
		}
	}
	return s
}
