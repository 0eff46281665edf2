package insight

import (
	"strings"

	"datalens/internal/dataset"
)

// RoleMatcher finds the columns that satisfy semantic roles. The default
// implementation is keyword-based; stricter or learned matchers can be
// substituted without touching metric or chart derivation.
type RoleMatcher interface {
	Match(t *dataset.Table, types TypeMap) RoleMap
}

// roleOrder fixes the resolution order of the numeric roles.
var roleOrder = []Role{RoleQuantity, RoleTarget, RoleActual, RoleCost, RoleDuration}

// roleKeywords drives the default matcher. A column qualifies for a role when
// its lowercased name contains any keyword. The lists are load-bearing:
// changing them changes which metrics and charts come out.
var roleKeywords = map[Role][]string{
	RoleQuantity: {"qty", "quantity", "amount", "total", "count", "units"},
	RoleTarget:   {"target", "plan", "planned"},
	RoleActual:   {"actual", "real", "achieve"},
	RoleCost:     {"cost", "price", "amount", "rupees", "dollar"},
	RoleDuration: {"hour", "minute", "time", "duration"},
}

// KeywordMatcher is the default RoleMatcher: case-insensitive substring
// matching of column names against per-role keyword lists, restricted to
// numeric columns (date columns for the date axis role).
//
// Matching is deliberately non-exclusive: a column assigned to one role stays
// eligible for every later role. "Target_Qty" resolves both quantity and
// target.
type KeywordMatcher struct{}

// Match scans numeric columns in declared order for each role; the first
// name containing a role keyword wins. Roles with no candidate are absent
// from the result, which is a valid outcome, not an error.
func (KeywordMatcher) Match(t *dataset.Table, types TypeMap) RoleMap {
	roles := make(RoleMap)

	for _, role := range roleOrder {
		for _, col := range t.Columns() {
			if types[col.Name] != TypeNumeric {
				continue
			}
			if nameMatchesRole(col.Name, role) {
				roles[role] = col.Name
				break
			}
		}
	}

	// First date column in declared order carries the date axis.
	for _, col := range t.Columns() {
		if types[col.Name] == TypeDate {
			roles[RoleDateAxis] = col.Name
			break
		}
	}

	return roles
}

func nameMatchesRole(name string, role Role) bool {
	lower := strings.ToLower(name)
	for _, kw := range roleKeywords[role] {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
