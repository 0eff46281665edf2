package insight

import (
	"fmt"
	"sort"
	"time"

	"datalens/internal/dataset"
)

// Chart selection. Pairs axes by inferred type and picks a representation:
//
//   - categorical × numeric → bar (grouped sums), skipped past 20 categories
//   - date × numeric        → line (chronological, duplicate dates summed)
//   - categorical alone     → pie up to 8 categories, doughnut up to 20
//
// Tables without a categorical or date column yield no charts at all, which
// is a valid outcome.

const (
	maxBarCategories = 20
	maxPieCategories = 8
)

// SelectCharts builds the chart list for one table.
func SelectCharts(t *dataset.Table, types TypeMap, roles RoleMap) []Chart {
	var charts []Chart

	var categorical, numeric, dates []dataset.Column
	for _, col := range t.Columns() {
		switch types[col.Name] {
		case TypeCategorical:
			categorical = append(categorical, col)
		case TypeNumeric:
			numeric = append(numeric, col)
		case TypeDate:
			dates = append(dates, col)
		}
	}

	for _, cat := range categorical {
		if distinctNonNull(cat) > maxBarCategories {
			continue
		}
		for _, num := range numeric {
			if c, ok := barChart(t, cat, num); ok {
				charts = append(charts, c)
			}
		}
	}

	for _, date := range dates {
		for _, num := range numeric {
			if c, ok := lineChart(t, date, num); ok {
				charts = append(charts, c)
			}
		}
	}

	for _, cat := range categorical {
		if c, ok := distributionChart(t, cat); ok {
			charts = append(charts, c)
		}
	}

	return charts
}

func barChart(t *dataset.Table, cat, num dataset.Column) (Chart, bool) {
	labels, sums, _, ok := groupedSums(t, cat.Name, num.Name)
	if !ok {
		return Chart{}, false
	}
	return Chart{
		Type:        ChartBar,
		Title:       fmt.Sprintf("%s by %s", Humanize(num.Name), Humanize(cat.Name)),
		Description: fmt.Sprintf("Sum of %s per %s", Humanize(num.Name), Humanize(cat.Name)),
		XAxis:       XAxis{Label: Humanize(cat.Name), Values: labels},
		YAxis:       YAxis{Label: Humanize(num.Name), Values: sums},
	}, true
}

// lineChart sums a numeric column per calendar date, ascending. Duplicate
// dates collapse into one point.
func lineChart(t *dataset.Table, date, num dataset.Column) (Chart, bool) {
	type point struct {
		at  time.Time
		sum float64
	}
	byDate := make(map[string]*point)

	for i := 0; i < t.RowCount(); i++ {
		d := date.Values[i]
		v := num.Values[i]
		if v.Kind != dataset.KindNumber {
			continue
		}
		at, ok := parseDate(d)
		if !ok {
			continue
		}
		key := at.Format("2006-01-02")
		if p, exists := byDate[key]; exists {
			p.sum += v.Num
		} else {
			byDate[key] = &point{at: at, sum: v.Num}
		}
	}

	if len(byDate) == 0 {
		return Chart{}, false
	}

	points := make([]point, 0, len(byDate))
	for _, p := range byDate {
		points = append(points, *p)
	}
	sort.Slice(points, func(i, j int) bool { return points[i].at.Before(points[j].at) })

	labels := make([]string, len(points))
	sums := make([]float64, len(points))
	for i, p := range points {
		labels[i] = p.at.Format("2006-01-02")
		sums[i] = p.sum
	}

	return Chart{
		Type:        ChartLine,
		Title:       fmt.Sprintf("%s by %s", Humanize(num.Name), Humanize(date.Name)),
		Description: fmt.Sprintf("Trend of %s over %s", Humanize(num.Name), Humanize(date.Name)),
		XAxis:       XAxis{Label: Humanize(date.Name), Values: labels},
		YAxis:       YAxis{Label: Humanize(num.Name), Values: sums},
	}, true
}

// distributionChart shows the share of rows per category. Pie up to 8
// distinct values, doughnut up to 20 for legend density, nothing above that.
func distributionChart(t *dataset.Table, cat dataset.Column) (Chart, bool) {
	var labels []string
	var counts []float64
	index := make(map[string]int)

	for _, v := range cat.Values {
		if v.IsNull() {
			continue
		}
		label := v.String()
		pos, exists := index[label]
		if !exists {
			pos = len(labels)
			index[label] = pos
			labels = append(labels, label)
			counts = append(counts, 0)
		}
		counts[pos]++
	}

	if len(labels) == 0 || len(labels) > maxBarCategories {
		return Chart{}, false
	}

	chartType := ChartPie
	if len(labels) > maxPieCategories {
		chartType = ChartDoughnut
	}

	return Chart{
		Type:        chartType,
		Title:       fmt.Sprintf("%s Distribution", Humanize(cat.Name)),
		Description: fmt.Sprintf("Share of rows per %s", Humanize(cat.Name)),
		XAxis:       XAxis{Label: Humanize(cat.Name), Values: labels},
		YAxis:       YAxis{Label: "Rows", Values: counts},
	}, true
}
