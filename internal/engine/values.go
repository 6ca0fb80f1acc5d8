package engine

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"camcheck/domain/workbook"
)

const currencySymbols = "$€£¥₹¤"

// containsCurrencySymbol reports whether any recognized currency glyph
// appears in the text.
func containsCurrencySymbol(s string) bool {
	return strings.ContainsAny(s, currencySymbols)
}

// isCurrencyCell accepts a cell as currency-formatted when either its
// number format carries a currency glyph or the displayed value does.
// Spreadsheets exported through round trips often lose the style but
// keep the symbol baked into the text, so both signals count.
func isCurrencyCell(cell workbook.Cell) bool {
	if containsCurrencySymbol(cell.NumberFormat) {
		return true
	}
	return containsCurrencySymbol(cell.Value)
}

var weeksNotation = regexp.MustCompile(`(?i)\d+\s*(?:wk|wks|week|weeks)\b`)

// looksLikeWeeks reports whether a lead-time value is written in weeks
// notation instead of a date, e.g. "12 wks" or "8 weeks".
func looksLikeWeeks(s string) bool {
	return weeksNotation.MatchString(s)
}

var dateShape = regexp.MustCompile(`^\d{1,4}[-/.]\d{1,2}[-/.]\d{1,4}$`)

// looksLikeDate accepts the common numeric date layouts produced by
// spreadsheet cells rendered as text (2025-01-31, 31/01/2025, 1.31.25).
func looksLikeDate(s string) bool {
	return dateShape.MatchString(strings.TrimSpace(s))
}

// isDateCell checks the number format first, then falls back to the
// text shape, mirroring the currency check.
func isDateCell(cell workbook.Cell) bool {
	f := strings.ToLower(cell.NumberFormat)
	if strings.ContainsAny(f, "ymd") && !strings.Contains(f, "general") {
		return true
	}
	return looksLikeDate(cell.Value)
}

var hundred = decimal.NewFromInt(100)

// equalsHundred reports whether a cell value represents exactly 100,
// tolerating surrounding whitespace and a trailing percent sign.
func equalsHundred(raw string) bool {
	s := strings.TrimSpace(raw)
	s = strings.TrimSpace(strings.TrimSuffix(s, "%"))
	if s == "" {
		return false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return false
	}
	return d.Equal(hundred)
}

// parseDecimal parses a numeric cell value, stripping currency glyphs
// and thousands separators first. The second return is false when the
// remainder is not a number.
func parseDecimal(raw string) (decimal.Decimal, bool) {
	s := strings.TrimSpace(raw)
	s = strings.Map(func(r rune) rune {
		if strings.ContainsRune(currencySymbols, r) || r == ',' || r == ' ' {
			return -1
		}
		return r
	}, s)
	if s == "" {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}
