package insight

import "datalens/internal/dataset"

// Assembler orchestrates the full derivation pipeline for one table:
// classify → match roles → (derive metrics, select charts) → merge.
// It is stateless across calls; identical input yields identical output,
// so one Assembler can serve any number of goroutines.
type Assembler struct {
	Matcher RoleMatcher
}

// NewAssembler returns an Assembler with the default keyword role matcher.
func NewAssembler() *Assembler {
	return &Assembler{Matcher: KeywordMatcher{}}
}

// Assemble produces the dashboard for one table. The metric and chart paths
// are independent of each other; neither feeds the other.
func (a *Assembler) Assemble(t *dataset.Table) *Dashboard {
	types := Classify(t)
	roles := a.Matcher.Match(t, types)

	return &Dashboard{
		Metrics:     DeriveMetrics(t, types, roles),
		Charts:      SelectCharts(t, types, roles),
		RowCount:    t.RowCount(),
		ColumnCount: t.ColumnCount(),
	}
}
