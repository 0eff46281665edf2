package insight

// ColumnType is the inferred type of one table column.
type ColumnType string

const (
	TypeNumeric     ColumnType = "numeric"
	TypeCategorical ColumnType = "categorical"
	TypeDate        ColumnType = "date"
	TypeText        ColumnType = "text"
)

// TypeMap maps every column name of a table to its inferred type.
// It is derived fresh per table and never cached across tables.
type TypeMap map[string]ColumnType

// Role is a domain-agnostic semantic purpose assigned to a column,
// independent of the dataset's actual business domain.
type Role string

const (
	RoleQuantity Role = "quantity"
	RoleTarget   Role = "target"
	RoleActual   Role = "actual"
	RoleCost     Role = "cost"
	RoleDuration Role = "duration"
	RoleDateAxis Role = "date_axis"
)

// RoleMap maps a role to the column that satisfies it. Roles with no
// matching column are simply absent.
type RoleMap map[Role]string

// Metric is one derived scalar or grouped result. Formula carries
// human-readable provenance for how the value was computed.
type Metric struct {
	Name    string        `json:"name"`
	Value   float64       `json:"value"`
	Unit    string        `json:"unit,omitempty"`
	Formula string        `json:"formula"`
	GroupBy string        `json:"group_by,omitempty"`
	Groups  []MetricGroup `json:"groups,omitempty"`
}

// MetricGroup is one per-category slice of a grouped metric.
type MetricGroup struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// ChartType selects the rendering primitive. The renderer maps this enum
// to a drawing library and must not re-derive chart selection.
type ChartType string

const (
	ChartBar      ChartType = "bar"
	ChartLine     ChartType = "line"
	ChartPie      ChartType = "pie"
	ChartDoughnut ChartType = "doughnut"
)

// Chart is one render-ready chart: axis labels, row-aligned axis values,
// and the chart type the selector decided on.
type Chart struct {
	Type        ChartType `json:"type"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	XAxis       XAxis     `json:"x_axis"`
	YAxis       YAxis     `json:"y_axis"`
	Series      string    `json:"series,omitempty"`
}

// XAxis holds the categorical/date axis of a chart.
type XAxis struct {
	Label  string   `json:"label"`
	Values []string `json:"values"`
}

// YAxis holds the numeric axis of a chart.
type YAxis struct {
	Label  string    `json:"label"`
	Values []float64 `json:"values"`
}

// Dashboard is the assembled output for one table: the metrics block plus
// the chart list, with basic shape info for the caller.
type Dashboard struct {
	Metrics     []Metric `json:"metrics"`
	Charts      []Chart  `json:"charts"`
	RowCount    int      `json:"row_count"`
	ColumnCount int      `json:"column_count"`
}
