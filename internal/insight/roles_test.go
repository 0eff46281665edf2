package insight

import (
	"testing"

	"datalens/internal/dataset"
)

func TestKeywordMatcherNonExclusiveAssignment(t *testing.T) {
	// "Target_Qty" contains both "qty" and "target": quantity resolves first
	// (fixed role order) and the column stays eligible for target.
	tbl := mustTable(t, []dataset.Column{
		{Name: "Date", Values: textValues("2025-01-01", "2025-01-02")},
		{Name: "Product", Values: textValues("A", "A")},
		{Name: "Target_Qty", Values: numberValues(100, 100)},
		{Name: "Actual_Qty", Values: numberValues(90, 95)},
	})
	types := Classify(tbl)

	roles := KeywordMatcher{}.Match(tbl, types)

	if roles[RoleQuantity] != "Target_Qty" {
		t.Errorf("quantity = %q, want Target_Qty", roles[RoleQuantity])
	}
	if roles[RoleTarget] != "Target_Qty" {
		t.Errorf("target = %q, want Target_Qty (non-exclusive)", roles[RoleTarget])
	}
	if roles[RoleActual] != "Actual_Qty" {
		t.Errorf("actual = %q, want Actual_Qty", roles[RoleActual])
	}
	if roles[RoleDateAxis] != "Date" {
		t.Errorf("date_axis = %q, want Date", roles[RoleDateAxis])
	}
	if _, ok := roles[RoleCost]; ok {
		t.Errorf("cost should be absent, got %q", roles[RoleCost])
	}
}

func TestKeywordMatcherFirstColumnWins(t *testing.T) {
	tbl := mustTable(t, []dataset.Column{
		{Name: "unit_price", Values: numberValues(5, 6)},
		{Name: "total_cost", Values: numberValues(50, 60)},
	})
	types := Classify(tbl)

	roles := KeywordMatcher{}.Match(tbl, types)

	if roles[RoleCost] != "unit_price" {
		t.Errorf("cost = %q, want unit_price (first in declared order)", roles[RoleCost])
	}
	// "total_cost" contains "total", a quantity keyword, but unit_price does
	// not, so quantity lands on the later column.
	if roles[RoleQuantity] != "total_cost" {
		t.Errorf("quantity = %q, want total_cost", roles[RoleQuantity])
	}
}

func TestKeywordMatcherAmountMatchesQuantityAndCost(t *testing.T) {
	tbl := mustTable(t, []dataset.Column{
		{Name: "amount", Values: numberValues(1, 2)},
	})
	types := Classify(tbl)

	roles := KeywordMatcher{}.Match(tbl, types)

	if roles[RoleQuantity] != "amount" {
		t.Errorf("quantity = %q, want amount", roles[RoleQuantity])
	}
	if roles[RoleCost] != "amount" {
		t.Errorf("cost = %q, want amount (lists overlap on purpose)", roles[RoleCost])
	}
}

func TestKeywordMatcherIgnoresNonNumericColumns(t *testing.T) {
	// "quantity_note" matches the quantity keywords but is text-typed.
	tbl := mustTable(t, []dataset.Column{
		{Name: "quantity_note", Values: textValues("ten-ish", "about twenty")},
		{Name: "produced", Values: numberValues(10, 20)},
	})
	types := Classify(tbl)

	roles := KeywordMatcher{}.Match(tbl, types)

	if _, ok := roles[RoleQuantity]; ok {
		t.Errorf("quantity should be absent, got %q", roles[RoleQuantity])
	}
}

func TestKeywordMatcherAbsentRolesAreValid(t *testing.T) {
	tbl := mustTable(t, []dataset.Column{
		{Name: "alpha", Values: numberValues(1, 2)},
		{Name: "beta", Values: numberValues(3, 4)},
	})
	types := Classify(tbl)

	roles := KeywordMatcher{}.Match(tbl, types)

	for _, role := range roleOrder {
		if col, ok := roles[role]; ok {
			t.Errorf("role %s unexpectedly resolved to %q", role, col)
		}
	}
}

func TestKeywordMatcherCaseInsensitive(t *testing.T) {
	tbl := mustTable(t, []dataset.Column{
		{Name: "PLANNED_OUTPUT", Values: numberValues(10, 10)},
	})
	types := Classify(tbl)

	roles := KeywordMatcher{}.Match(tbl, types)
	if roles[RoleTarget] != "PLANNED_OUTPUT" {
		t.Errorf("target = %q, want PLANNED_OUTPUT", roles[RoleTarget])
	}
}
