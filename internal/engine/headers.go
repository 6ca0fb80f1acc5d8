package engine

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"camcheck/domain/workbook"
)

// HeaderMap maps canonical header text to its 1-based column index.
type HeaderMap map[string]int

// HeaderResolution is the outcome of resolving one header row: the
// located columns, the size of each dynamic family, every required
// header that could not be found, and family members appearing after a
// suffix gap (which close the family rather than extend it).
type HeaderResolution struct {
	Columns     HeaderMap
	FamilySizes map[string]int
	Missing     []string
	Extras      []string
}

// Column returns the column index for a canonical header, 0 when absent.
func (hr HeaderResolution) Column(name string) int {
	return hr.Columns[name]
}

// FamilyColumns returns the columns of a dynamic family's members in
// suffix order (#1, #2, ...), up to the family's resolved size.
func (hr HeaderResolution) FamilyColumns(family DynamicFamily) []int {
	size := hr.FamilySizes[family.Label]
	cols := make([]int, 0, size)
	for n := 1; n <= size; n++ {
		if col, ok := hr.Columns[fmt.Sprintf(family.Format, n)]; ok {
			cols = append(cols, col)
		}
	}
	return cols
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// normalizeHeader trims, collapses internal whitespace, and case-folds
// header text so matching tolerates spreadsheet formatting noise.
func normalizeHeader(s string) string {
	return strings.ToLower(whitespaceRun.ReplaceAllString(strings.TrimSpace(s), " "))
}

// ResolveHeaders scans headerRow left to right and builds the header
// map for the required static headers and dynamic families. Dynamic
// families are probed at suffix #1, #2, ... and closed at the first
// missing suffix; members beyond a gap are surfaced as extras, not
// silently included. The resolution's Missing list is the direct
// evidence for header-validation rules.
func ResolveHeaders(sheet *workbook.Sheet, headerRow int, static []string, families []DynamicFamily) HeaderResolution {
	found := make(map[string]int)
	for col := 1; col <= sheet.MaxCol(); col++ {
		text := sheet.Value(headerRow, col)
		if text == "" {
			continue
		}
		key := normalizeHeader(text)
		if _, seen := found[key]; !seen {
			found[key] = col
		}
	}

	res := HeaderResolution{
		Columns:     make(HeaderMap),
		FamilySizes: make(map[string]int),
	}

	for _, h := range static {
		col, ok := found[normalizeHeader(h)]
		if !ok {
			res.Missing = append(res.Missing, h)
			continue
		}
		res.Columns[h] = col
	}

	for _, fam := range families {
		size := 0
		for n := 1; ; n++ {
			name := fmt.Sprintf(fam.Format, n)
			col, ok := found[normalizeHeader(name)]
			if !ok {
				break
			}
			res.Columns[name] = col
			size = n
		}
		res.FamilySizes[fam.Label] = size
		if size == 0 {
			res.Missing = append(res.Missing, fam.Label)
			continue
		}

		// Members past the first gap closed the family; report them so
		// a sheet with Award #1 and Award #3 is flagged, not accepted.
		memberPattern := familyPattern(fam)
		for key := range found {
			m := memberPattern.FindStringSubmatch(key)
			if m == nil {
				continue
			}
			if suffix, err := strconv.Atoi(m[1]); err == nil && suffix > size {
				res.Extras = append(res.Extras, fmt.Sprintf(fam.Format, suffix))
			}
		}
	}

	return res
}

// familyPattern derives a match regexp from a family's format string,
// with the numeric suffix as the single capture group.
func familyPattern(fam DynamicFamily) *regexp.Regexp {
	probe := fmt.Sprintf(fam.Format, 1)
	quoted := regexp.QuoteMeta(normalizeHeader(probe))
	// The probe rendered suffix 1; widen it back to any integer.
	pattern := strings.Replace(quoted, "#1", `#(\d+)`, 1)
	return regexp.MustCompile("^" + pattern + "$")
}
