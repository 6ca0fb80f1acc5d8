package engine

import (
	"fmt"

	"camcheck/domain/workbook"
)

// ValidatorType selects which rule catalog and template configuration
// applies to a workbook.
type ValidatorType string

const (
	ValidatorQuoteWin ValidatorType = "QUOTE_WIN"
	ValidatorBOM      ValidatorType = "BOM"
)

// Rule is one entry in a validator's catalog: a stable number and
// title, the exact sheet names it needs unconditionally (empty for
// rules scoped by pattern or to the whole workbook), and a pure check
// function over the workbook.
type Rule struct {
	Number      int
	Title       string
	Description string

	// Sheets lists exact sheet names this rule is scoped to. When every
	// listed sheet is structurally absent the orchestrator skips the
	// rule; the absence itself is reported once as a structural failure.
	Sheets []string

	Run func(wb *workbook.Workbook) []Result
}

// Name returns the rule's stable display name, e.g. "Rule 4: Award Validation".
func (r Rule) Name() string {
	return fmt.Sprintf("Rule %d: %s", r.Number, r.Title)
}

// RuleInfo is the static, workbook-independent description of a rule,
// served by the rules-info surface.
type RuleInfo struct {
	RuleNum     string `json:"rule_num"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Catalog is the ordered rule list for one validator type, plus the
// sheets the rule set assumes must exist unconditionally.
type Catalog struct {
	Type           ValidatorType
	RequiredSheets []string
	Rules          []Rule
}

// Infos returns the static rule listing for the catalog.
func (c Catalog) Infos() []RuleInfo {
	infos := make([]RuleInfo, len(c.Rules))
	for i, r := range c.Rules {
		infos[i] = RuleInfo{
			RuleNum:     fmt.Sprintf("Rule %d", r.Number),
			Title:       r.Title,
			Description: r.Description,
		}
	}
	return infos
}
