package dataset

import (
	"fmt"
	"strconv"
)

// Kind discriminates the variants of a cell Value.
type Kind int

const (
	KindNull Kind = iota
	KindNumber
	KindText
)

// Value is a single table cell. CSV cells arrive loosely typed, so each cell
// is resolved into one of three variants exactly once at ingestion and never
// re-parsed afterwards.
type Value struct {
	Kind Kind
	Num  float64
	Text string
}

func Number(f float64) Value { return Value{Kind: KindNumber, Num: f} }
func Text(s string) Value    { return Value{Kind: KindText, Text: s} }
func Null() Value            { return Value{Kind: KindNull} }

func (v Value) IsNull() bool { return v.Kind == KindNull }

// String returns the canonical string form of a value, used as a grouping key.
func (v Value) String() string {
	switch v.Kind {
	case KindNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case KindText:
		return v.Text
	default:
		return ""
	}
}

// Column is a named, ordered sequence of cells.
type Column struct {
	Name   string
	Values []Value
}

// Table is a column-oriented, in-memory view of one dataset. Columns keep
// their declared order, share one row count, and have unique names.
type Table struct {
	columns []Column
	byName  map[string]int
	rows    int
}

// New builds a Table from columns, validating the table invariants:
// at least one column, unique column names, equal row counts.
func New(columns []Column) (*Table, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("table must have at least one column")
	}

	t := &Table{
		columns: columns,
		byName:  make(map[string]int, len(columns)),
		rows:    len(columns[0].Values),
	}

	for i, col := range columns {
		if col.Name == "" {
			return nil, fmt.Errorf("column %d has an empty name", i)
		}
		if _, dup := t.byName[col.Name]; dup {
			return nil, fmt.Errorf("duplicate column name %q", col.Name)
		}
		if len(col.Values) != t.rows {
			return nil, fmt.Errorf("column %q has %d rows, expected %d", col.Name, len(col.Values), t.rows)
		}
		t.byName[col.Name] = i
	}

	return t, nil
}

// RowCount returns the number of rows shared by all columns.
func (t *Table) RowCount() int { return t.rows }

// ColumnCount returns the number of columns.
func (t *Table) ColumnCount() int { return len(t.columns) }

// Columns returns all columns in declared order.
func (t *Table) Columns() []Column { return t.columns }

// Column returns the named column, or false if it does not exist.
func (t *Table) Column(name string) (Column, bool) {
	i, ok := t.byName[name]
	if !ok {
		return Column{}, false
	}
	return t.columns[i], true
}

// ColumnNames returns column names in declared order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.columns))
	for i, col := range t.columns {
		names[i] = col.Name
	}
	return names
}
