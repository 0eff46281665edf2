package insight

import (
	"fmt"

	"datalens/internal/dataset"
)

// Metric derivation. Combines role matches into scalar and grouped results.
// Missing roles, all-null columns, and zero denominators drop the affected
// metric rather than erroring.

// totaledRoles get a "Total <role>" sum metric when resolved.
var totaledRoles = []Role{RoleQuantity, RoleCost, RoleDuration}

// DeriveMetrics computes the metrics block for one table given its column
// types and role map.
func DeriveMetrics(t *dataset.Table, types TypeMap, roles RoleMap) []Metric {
	var metrics []Metric

	for _, role := range totaledRoles {
		colName, ok := roles[role]
		if !ok {
			continue
		}
		if m, ok := totalMetric(t, role, colName); ok {
			metrics = append(metrics, m)
		}
	}

	if m, ok := efficiencyMetric(t, roles); ok {
		metrics = append(metrics, m)
	}

	// Numeric columns not consumed by any role still get a summary so that
	// datasets with no recognized roles produce something.
	consumed := make(map[string]bool, len(roles))
	for _, colName := range roles {
		consumed[colName] = true
	}
	for _, col := range t.Columns() {
		if types[col.Name] != TypeNumeric || consumed[col.Name] {
			continue
		}
		if m, ok := averageMetric(col); ok {
			metrics = append(metrics, m)
		}
	}

	if groupCol, ok := firstCategorical(t, types); ok {
		for _, role := range totaledRoles {
			colName, ok := roles[role]
			if !ok {
				continue
			}
			if m, ok := groupedTotalMetric(t, role, colName, groupCol); ok {
				metrics = append(metrics, m)
			}
		}
	}

	return metrics
}

func totalMetric(t *dataset.Table, role Role, colName string) (Metric, bool) {
	col, ok := t.Column(colName)
	if !ok {
		return Metric{}, false
	}
	sum, n := sumColumn(col)
	if n == 0 {
		return Metric{}, false
	}
	return Metric{
		Name:    "Total " + Humanize(string(role)),
		Value:   sum,
		Formula: fmt.Sprintf("SUM(%s)", colName),
	}, true
}

// efficiencyMetric computes actual/target attainment as a percentage.
// Omitted entirely when either role is missing or the target sum is zero.
func efficiencyMetric(t *dataset.Table, roles RoleMap) (Metric, bool) {
	targetName, hasTarget := roles[RoleTarget]
	actualName, hasActual := roles[RoleActual]
	if !hasTarget || !hasActual {
		return Metric{}, false
	}

	targetCol, ok := t.Column(targetName)
	if !ok {
		return Metric{}, false
	}
	actualCol, ok := t.Column(actualName)
	if !ok {
		return Metric{}, false
	}

	targetSum, _ := sumColumn(targetCol)
	if targetSum == 0 {
		return Metric{}, false
	}
	actualSum, _ := sumColumn(actualCol)

	return Metric{
		Name:    "Efficiency",
		Value:   (actualSum / targetSum) * 100,
		Unit:    "%",
		Formula: fmt.Sprintf("(SUM(%s) / SUM(%s)) * 100", actualName, targetName),
	}, true
}

func averageMetric(col dataset.Column) (Metric, bool) {
	sum, n := sumColumn(col)
	if n == 0 {
		return Metric{}, false
	}
	return Metric{
		Name:    "Average " + Humanize(col.Name),
		Value:   sum / float64(n),
		Formula: fmt.Sprintf("AVG(%s)", col.Name),
	}, true
}

func groupedTotalMetric(t *dataset.Table, role Role, colName, groupCol string) (Metric, bool) {
	labels, sums, total, ok := groupedSums(t, groupCol, colName)
	if !ok {
		return Metric{}, false
	}

	groups := make([]MetricGroup, len(labels))
	for i, label := range labels {
		groups[i] = MetricGroup{Label: label, Value: sums[i]}
	}

	return Metric{
		Name:    fmt.Sprintf("Total %s by %s", Humanize(string(role)), Humanize(groupCol)),
		Value:   total,
		Formula: fmt.Sprintf("SUM(%s) GROUP BY %s", colName, groupCol),
		GroupBy: groupCol,
		Groups:  groups,
	}, true
}

// sumColumn sums the non-null numeric cells of a column and reports how many
// contributed.
func sumColumn(col dataset.Column) (float64, int) {
	var sum float64
	n := 0
	for _, v := range col.Values {
		if v.Kind != dataset.KindNumber {
			continue
		}
		sum += v.Num
		n++
	}
	return sum, n
}

// groupedSums aggregates a numeric column per distinct value of a grouping
// column, preserving first-appearance order. Rows with a null group or a
// non-numeric cell are skipped.
func groupedSums(t *dataset.Table, groupName, valueName string) (labels []string, sums []float64, total float64, ok bool) {
	groupCol, found := t.Column(groupName)
	if !found {
		return nil, nil, 0, false
	}
	valueCol, found := t.Column(valueName)
	if !found {
		return nil, nil, 0, false
	}

	index := make(map[string]int)
	counted := 0
	for i := 0; i < t.RowCount(); i++ {
		g := groupCol.Values[i]
		v := valueCol.Values[i]
		if g.IsNull() || v.Kind != dataset.KindNumber {
			continue
		}
		label := g.String()
		pos, exists := index[label]
		if !exists {
			pos = len(labels)
			index[label] = pos
			labels = append(labels, label)
			sums = append(sums, 0)
		}
		sums[pos] += v.Num
		total += v.Num
		counted++
	}

	if counted == 0 {
		return nil, nil, 0, false
	}
	return labels, sums, total, true
}

// firstCategorical returns the first categorical column in declared order.
func firstCategorical(t *dataset.Table, types TypeMap) (string, bool) {
	for _, col := range t.Columns() {
		if types[col.Name] == TypeCategorical {
			return col.Name, true
		}
	}
	return "", false
}
