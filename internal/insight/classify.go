package insight

import (
	"strings"
	"time"

	"datalens/internal/dataset"
)

// Column type classification. Pure function of the table: inspects names and
// cell values, never errors. Rule order, first match wins:
//
//  1. date-flagged name AND every non-null value parses as a date → date
//  2. every non-null value is numeric (and at least one exists)   → numeric
//  3. distinct ≤ 50% of rows AND distinct < 50                    → categorical
//  4. otherwise                                                   → text
//
// Zero-row tables and all-null columns carry too little signal to infer
// anything and default to text.

// dateNameHints flag columns worth attempting date parsing on.
var dateNameHints = []string{"date", "time", "day", "month", "year"}

// dateLayouts is the permissive set of calendar formats accepted for date
// columns. A single unparsable value disqualifies the whole column.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"01/02/2006",
	"02/01/2006",
	"2006/01/02",
	"Jan 2, 2006",
	"2 Jan 2006",
	"Jan-2006",
	"January 2006",
}

// Classify infers a type for every column of the table. The returned map
// contains each column name exactly once.
func Classify(t *dataset.Table) TypeMap {
	types := make(TypeMap, t.ColumnCount())
	for _, col := range t.Columns() {
		types[col.Name] = classifyColumn(col, t.RowCount())
	}
	return types
}

func classifyColumn(col dataset.Column, rows int) ColumnType {
	nonNull := 0
	numeric := 0
	distinct := make(map[string]struct{})

	for _, v := range col.Values {
		if v.IsNull() {
			continue
		}
		nonNull++
		if v.Kind == dataset.KindNumber {
			numeric++
		}
		distinct[v.String()] = struct{}{}
	}

	if nonNull == 0 {
		return TypeText
	}

	if hasDateHint(col.Name) && allParseAsDates(col.Values) {
		return TypeDate
	}

	if numeric == nonNull {
		return TypeNumeric
	}

	if float64(len(distinct)) <= float64(rows)*0.5 && len(distinct) < 50 {
		return TypeCategorical
	}

	return TypeText
}

func hasDateHint(name string) bool {
	lower := strings.ToLower(name)
	for _, hint := range dateNameHints {
		if strings.Contains(lower, hint) {
			return true
		}
	}
	return false
}

func allParseAsDates(values []dataset.Value) bool {
	found := false
	for _, v := range values {
		if v.IsNull() {
			continue
		}
		if _, ok := parseDate(v); !ok {
			return false
		}
		found = true
	}
	return found
}

// parseDate attempts every accepted layout against a cell's text form.
func parseDate(v dataset.Value) (time.Time, bool) {
	if v.Kind != dataset.KindText {
		return time.Time{}, false
	}
	s := strings.TrimSpace(v.Text)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// distinctNonNull counts the distinct non-null values of a column.
func distinctNonNull(col dataset.Column) int {
	seen := make(map[string]struct{})
	for _, v := range col.Values {
		if v.IsNull() {
			continue
		}
		seen[v.String()] = struct{}{}
	}
	return len(seen)
}
